// Package sqlsplit breaks raw SQL text into individual statements.
//
// The scanner knows just enough SQL lexing to avoid splitting inside
// single-quoted and double-quoted literals, line comments, block comments,
// and PostgreSQL dollar-quoted strings. Dialect validation is not its job;
// callers treat the output as an opaque normalization of their input.
package sqlsplit

import "strings"

// Statements splits raw SQL text on top-level semicolons and returns the
// trimmed, non-empty statements in input order. Input consisting only of
// whitespace and comments yields an empty slice.
func Statements(raw string) []string {
	var (
		out     []string
		current strings.Builder
	)

	flush := func() {
		stmt := strings.TrimSpace(current.String())
		current.Reset()
		if stmt != "" && !commentOnly(stmt) {
			out = append(out, stmt)
		}
	}

	i := 0
	for i < len(raw) {
		c := raw[i]
		switch {
		case c == '\'':
			j := scanQuoted(raw, i, '\'')
			current.WriteString(raw[i:j])
			i = j
		case c == '"':
			j := scanQuoted(raw, i, '"')
			current.WriteString(raw[i:j])
			i = j
		case c == '-' && i+1 < len(raw) && raw[i+1] == '-':
			j := scanLineComment(raw, i)
			current.WriteString(raw[i:j])
			i = j
		case c == '/' && i+1 < len(raw) && raw[i+1] == '*':
			j := scanBlockComment(raw, i)
			current.WriteString(raw[i:j])
			i = j
		case c == '$':
			j := scanDollarQuoted(raw, i)
			current.WriteString(raw[i:j])
			i = j
		case c == ';':
			flush()
			i++
		default:
			current.WriteByte(c)
			i++
		}
	}
	flush()
	return out
}

// scanQuoted returns the index just past a quoted literal starting at i.
// A doubled quote inside the literal is an escape, not a terminator.
func scanQuoted(s string, i int, quote byte) int {
	j := i + 1
	for j < len(s) {
		if s[j] == quote {
			if j+1 < len(s) && s[j+1] == quote {
				j += 2
				continue
			}
			return j + 1
		}
		j++
	}
	return j
}

func scanLineComment(s string, i int) int {
	j := strings.IndexByte(s[i:], '\n')
	if j < 0 {
		return len(s)
	}
	return i + j + 1
}

func scanBlockComment(s string, i int) int {
	j := strings.Index(s[i+2:], "*/")
	if j < 0 {
		return len(s)
	}
	return i + 2 + j + 2
}

// scanDollarQuoted handles $tag$ ... $tag$ literals. A lone '$' that does not
// open a valid dollar quote is consumed as a plain character.
func scanDollarQuoted(s string, i int) int {
	tagEnd := i + 1
	for tagEnd < len(s) && isTagChar(s[tagEnd]) {
		tagEnd++
	}
	if tagEnd >= len(s) || s[tagEnd] != '$' {
		return i + 1
	}
	tag := s[i : tagEnd+1]
	j := strings.Index(s[tagEnd+1:], tag)
	if j < 0 {
		return len(s)
	}
	return tagEnd + 1 + j + len(tag)
}

func isTagChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func commentOnly(stmt string) bool {
	rest := stmt
	for {
		rest = strings.TrimSpace(rest)
		switch {
		case rest == "":
			return true
		case strings.HasPrefix(rest, "--"):
			nl := strings.IndexByte(rest, '\n')
			if nl < 0 {
				return true
			}
			rest = rest[nl+1:]
		case strings.HasPrefix(rest, "/*"):
			end := strings.Index(rest, "*/")
			if end < 0 {
				return true
			}
			rest = rest[end+2:]
		default:
			return false
		}
	}
}
