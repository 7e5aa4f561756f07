package expression

import (
	"strings"
)

// Variables returns the distinct variable names referenced by expr, in order of first
// appearance. Names compare case-insensitively; the first spelling is kept.
func Variables(expr string) []string {
	var (
		out  []string
		seen = make(map[string]bool)
	)
	eachVariable(expr, func(start, end int) {
		name := strings.TrimSpace(expr[start:end])
		key := strings.ToLower(name)
		if name != "" && !seen[key] {
			seen[key] = true
			out = append(out, name)
		}
	})
	return out
}

// Root returns the leading identifier of a variable path: "q1" for "q1.name",
// "row.q1" and "q1[0]" yield "row" and "q1".
func Root(name string) string {
	if i := strings.IndexAny(name, ".["); i >= 0 {
		return strings.TrimSpace(name[:i])
	}
	return strings.TrimSpace(name)
}

// ReplaceVariables rewrites the content of every {...} reference with fn.
// Text outside braces is left untouched.
func ReplaceVariables(expr string, fn func(name string) string) string {
	var (
		sb   strings.Builder
		last int
	)
	eachVariable(expr, func(start, end int) {
		sb.WriteString(expr[last:start])
		sb.WriteString(fn(strings.TrimSpace(expr[start:end])))
		last = end
	})
	sb.WriteString(expr[last:])
	return sb.String()
}

// eachVariable calls fn with the byte range inside each {...} pair outside string literals.
func eachVariable(expr string, fn func(start, end int)) {
	var quote byte
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case quote != 0:
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '{':
			end := strings.IndexByte(expr[i+1:], '}')
			if end < 0 {
				return
			}
			fn(i+1, i+1+end)
			i += end + 1
		}
	}
}
