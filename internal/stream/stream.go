// Package stream implements the machine's three character/number I/O
// streams: a lazy, single-pass stdin reader and stdout/stderr writers
// that write each value through immediately, addressed by the memory-mapped cells in package memory.
package stream

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tinyasm/internal/word"
)

// NullTerm is the sentinel code Getc returns once the input stream is
// exhausted, and forever after.
const NullTerm int64 = 0

// Streams holds the three memory-mapped I/O channels.
type Streams struct {
	in       *bufio.Reader
	out      io.Writer
	errOut   io.Writer
	exhausted bool
}

// New wires stdin/stdout/stderr readers and writers into a Streams.
func New(in io.Reader, out, errOut io.Writer) *Streams {
	return &Streams{in: bufio.NewReader(in), out: out, errOut: errOut}
}

// Getc returns the next character code from stdin. Once the
// underlying reader reaches EOF it returns NullTerm, and continues to
// return NullTerm on every subsequent call: the stream is single-pass
// and only ever "resumes" in the sense that further reads keep
// observing the same exhausted end, rather than blocking or erroring.
func (s *Streams) Getc() (int64, error) {
	if s.exhausted {
		return NullTerm, nil
	}
	r, _, err := s.in.ReadRune()
	if err != nil {
		if err == io.EOF {
			s.exhausted = true
			return NullTerm, nil
		}
		return 0, fmt.Errorf("stream: read stdin: %w", err)
	}
	return word.TruncateRune(r), nil
}

// Getn accumulates characters from stdin (via Getc) up to the next
// null terminator, strips the terminator, and parses the result as a
// signed decimal integer.
func (s *Streams) Getn() (int64, error) {
	var b strings.Builder
	for {
		code, err := s.Getc()
		if err != nil {
			return 0, err
		}
		if code == NullTerm {
			break
		}
		b.WriteRune(rune(code))
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("stream: parse integer %q: %w", text, err)
	}
	return word.Truncate(n), nil
}

// Putc writes a single character to stdout.
func (s *Streams) Putc(code int64) error {
	_, err := fmt.Fprint(s.out, string(rune(code)))
	return err
}

// Putn writes a number to stdout in decimal.
func (s *Streams) Putn(value int64) error {
	_, err := fmt.Fprint(s.out, value)
	return err
}

// PutErr writes a single character to stderr. Used by memory cell 2.
func (s *Streams) PutErr(code int64) error {
	_, err := fmt.Fprint(s.errOut, string(rune(code)))
	return err
}
