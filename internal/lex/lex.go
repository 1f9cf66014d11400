// Package lex implements the lexical predicates and literal readers
// the parser uses to classify a token: numbers (decimal, hex, octal,
// binary), quoted strings and characters, registers, direct and
// indirect addresses, and labels.
package lex

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	reDec = regexp.MustCompile(`^-?[0-9]+$`)
	reHex = regexp.MustCompile(`^-?0[xX][0-9a-fA-F]+$`)
	reOct = regexp.MustCompile(`^-?0[oO][0-7]+$`)
	reBin = regexp.MustCompile(`^-?0[bB][01]+$`)

	reVar   = regexp.MustCompile(`^[a-zA-Z_][0-9a-zA-Z_]*$`)
	reLabel = regexp.MustCompile(`^\.?[a-zA-Z_][0-9a-zA-Z_]*$`)

	reString = regexp.MustCompile(`^"(?:[^"\\]|\\.)*"$`)
	reChar   = regexp.MustCompile(`^'(?:[^'\\]|\\.)'$`)

	reRegister = regexp.MustCompile(`^%[a-zA-Z]+$`)

	reDirectAddress   = regexp.MustCompile(`^#([a-zA-Z_][0-9a-zA-Z_]*)$`)
	reIndirectAddress = regexp.MustCompile(`^#([a-zA-Z_][0-9a-zA-Z_]*)\[(.+)\]$`)
)

// IsNumber reports whether s is a decimal, hex, octal or binary
// integer literal, with an optional leading '-'.
func IsNumber(s string) bool {
	return reDec.MatchString(s) || reHex.MatchString(s) || reOct.MatchString(s) || reBin.MatchString(s)
}

// ParseNumber parses s as a decimal, hex ("0x"), octal ("0o") or
// binary ("0b") integer literal.
func ParseNumber(s string) (int64, error) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var (
		n   int64
		err error
	)
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "0x"):
		n, err = strconv.ParseInt(s[2:], 16, 64)
	case strings.HasPrefix(lower, "0o"):
		n, err = strconv.ParseInt(s[2:], 8, 64)
	case strings.HasPrefix(lower, "0b"):
		n, err = strconv.ParseInt(s[2:], 2, 64)
	default:
		n, err = strconv.ParseInt(s, 10, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("lex: invalid number %q: %w", s, err)
	}
	if neg {
		n = -n
	}
	return n, nil
}

// IsQuotedString reports whether s is a double-quoted string literal.
func IsQuotedString(s string) bool {
	return reString.MatchString(s)
}

// UnquoteString strips the surrounding quotes from s and expands
// \n, \t, \r escapes.
func UnquoteString(s string) (string, error) {
	if !IsQuotedString(s) {
		return "", fmt.Errorf("lex: not a quoted string: %q", s)
	}
	return regularize(s[1 : len(s)-1]), nil
}

// IsQuotedChar reports whether s is a single-quoted character
// literal.
func IsQuotedChar(s string) bool {
	return reChar.MatchString(s)
}

// UnquoteChar strips the surrounding quotes from s and returns the
// single rune it contains.
func UnquoteChar(s string) (rune, error) {
	if !IsQuotedChar(s) {
		return 0, fmt.Errorf("lex: not a quoted char: %q", s)
	}
	inner := regularize(s[1 : len(s)-1])
	runes := []rune(inner)
	if len(runes) != 1 {
		return 0, fmt.Errorf("lex: char literal must be one character: %q", s)
	}
	return runes[0], nil
}

func regularize(s string) string {
	replacer := strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\r`, "\r", `\"`, `"`, `\'`, `'`, `\\`, `\`)
	return replacer.Replace(s)
}

// IsRegister reports whether s is a register token, e.g. "%RAX".
func IsRegister(s string) bool {
	return reRegister.MatchString(s)
}

// RegisterName strips the leading '%' from a register token and
// upper-cases it, so lowercase and mixed-case spellings (e.g. "%rax")
// match the registry's upper-cased names.
func RegisterName(s string) string {
	return strings.ToUpper(strings.TrimPrefix(s, "%"))
}

// IsDirectAddress reports whether s is a direct-address token, e.g.
// "#buf".
func IsDirectAddress(s string) bool {
	return reDirectAddress.MatchString(s)
}

// DirectAddressName extracts the variable name from a direct-address
// token.
func DirectAddressName(s string) string {
	m := reDirectAddress.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

// IsIndirectAddress reports whether s is an indirect-address token,
// e.g. "#buf[%RAX]" or "#buf[2]".
func IsIndirectAddress(s string) bool {
	return reIndirectAddress.MatchString(s)
}

// SplitIndirectAddress splits s into its variable name and offset
// expression.
func SplitIndirectAddress(s string) (name, offset string, ok bool) {
	m := reIndirectAddress.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// IsVariableName reports whether s is a bare identifier, used for
// data-section variable names.
func IsVariableName(s string) bool {
	return reVar.MatchString(s)
}

// IsLabel reports whether s is a label token: an optional leading '.'
// followed by an identifier, and not itself a register, address, or
// number token.
func IsLabel(s string) bool {
	if !reLabel.MatchString(s) {
		return false
	}
	return !IsNumber(s) && !IsRegister(s) && !IsDirectAddress(s) && !IsIndirectAddress(s)
}

// LabelName strips the leading '.' from a label token, if present.
func LabelName(s string) string {
	return strings.TrimPrefix(s, ".")
}
