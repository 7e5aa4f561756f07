package expression

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokVariable tokenKind = iota
	tokString
	tokNumber
	tokWord
	tokOperator
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// SyntaxError reports the first offending position of an expression.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: %s", e.Pos, e.Msg)
}

var twoCharOps = []string{"==", "!=", "<>", ">=", "<=", "&&", "||", "*="}

func lex(src string) ([]token, error) {
	var out []token
	rs := []rune(src)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '{':
			end := indexRune(rs, i+1, '}')
			if end < 0 {
				return nil, &SyntaxError{Pos: i, Msg: "unterminated variable"}
			}
			name := strings.TrimSpace(string(rs[i+1 : end]))
			if name == "" {
				return nil, &SyntaxError{Pos: i, Msg: "empty variable"}
			}
			out = append(out, token{tokVariable, name, i})
			i = end + 1
		case r == '\'' || r == '"':
			text, end, ok := scanString(rs, i)
			if !ok {
				return nil, &SyntaxError{Pos: i, Msg: "unterminated string"}
			}
			out = append(out, token{tokString, text, i})
			i = end + 1
		case unicode.IsDigit(r) || (r == '.' && i+1 < len(rs) && unicode.IsDigit(rs[i+1])):
			j := i
			for j < len(rs) && (unicode.IsDigit(rs[j]) || rs[j] == '.') {
				j++
			}
			j = scanExponent(rs, j)
			text := string(rs[i:j])
			if strings.Count(text, ".") > 1 {
				return nil, &SyntaxError{Pos: i, Msg: "malformed number " + text}
			}
			out = append(out, token{tokNumber, text, i})
			i = j
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(rs) && (unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j]) || rs[j] == '_') {
				j++
			}
			out = append(out, token{tokWord, string(rs[i:j]), i})
			i = j
		case r == '(':
			out = append(out, token{tokLParen, "(", i})
			i++
		case r == ')':
			out = append(out, token{tokRParen, ")", i})
			i++
		case r == '[':
			out = append(out, token{tokLBracket, "[", i})
			i++
		case r == ']':
			out = append(out, token{tokRBracket, "]", i})
			i++
		case r == ',':
			out = append(out, token{tokComma, ",", i})
			i++
		default:
			if i+1 < len(rs) {
				pair := string(rs[i : i+2])
				if contains(twoCharOps, pair) {
					out = append(out, token{tokOperator, pair, i})
					i += 2
					continue
				}
			}
			if strings.ContainsRune("=<>+-*/%^!", r) {
				out = append(out, token{tokOperator, string(r), i})
				i++
				continue
			}
			return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	return out, nil
}

// scanString reads the literal opened by the quote at rs[from]. A backslash escapes
// the next character. It returns the unescaped text and the closing index.
func scanString(rs []rune, from int) (string, int, bool) {
	quote := rs[from]
	var sb strings.Builder
	for i := from + 1; i < len(rs); i++ {
		switch rs[i] {
		case '\\':
			if i+1 < len(rs) {
				i++
				sb.WriteRune(rs[i])
			}
		case quote:
			return sb.String(), i, true
		default:
			sb.WriteRune(rs[i])
		}
	}
	return "", -1, false
}

// scanExponent extends a number ending at j over an exponent such as e3 or E-2.
func scanExponent(rs []rune, j int) int {
	if j >= len(rs) || (rs[j] != 'e' && rs[j] != 'E') {
		return j
	}
	k := j + 1
	if k < len(rs) && (rs[k] == '+' || rs[k] == '-') {
		k++
	}
	if k >= len(rs) || !unicode.IsDigit(rs[k]) {
		return j
	}
	for k < len(rs) && unicode.IsDigit(rs[k]) {
		k++
	}
	return k
}

func indexRune(rs []rune, from int, r rune) int {
	for i := from; i < len(rs); i++ {
		if rs[i] == r {
			return i
		}
	}
	return -1
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
