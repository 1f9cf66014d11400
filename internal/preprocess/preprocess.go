// Package preprocess strips source text down to its meaningful
// content before lexing: comments removed, blank lines dropped, and
// interior whitespace collapsed.
package preprocess

import (
	"regexp"
	"strings"
)

var (
	reComment     = regexp.MustCompile(`;.*`)
	reExtraSpaces = regexp.MustCompile(`\s+`)
)

// Minify removes comments and blank lines from asmText and collapses
// runs of whitespace within each remaining line to a single space.
// It is idempotent: minifying already-minified text returns it
// unchanged.
func Minify(asmText string) string {
	lines := strings.Split(asmText, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = reComment.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = reExtraSpaces.ReplaceAllString(line, " ")
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
