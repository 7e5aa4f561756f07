package expression

import (
	"strconv"
	"strings"
)

// Binary operators written as words, mapped to an ECMAScript operator of the same
// precedence class. Only parsing matters, so the mapping is structural.
var wordBinary = map[string]string{
	"and":            "&&",
	"or":             "||",
	"contains":       "==",
	"notcontains":    "!=",
	"anyof":          "==",
	"allof":          "==",
	"equal":          "==",
	"notequal":       "!=",
	"greater":        ">",
	"less":           "<",
	"greaterorequal": ">=",
	"lessorequal":    "<=",
}

var symbolBinary = map[string]string{
	"=":  "==",
	"==": "==",
	"!=": "!=",
	"<>": "!=",
	"<":  "<",
	">":  ">",
	"<=": "<=",
	">=": ">=",
	"+":  "+",
	"-":  "-",
	"*":  "*",
	"/":  "/",
	"%":  "%",
	"^":  "*",
	"&&": "&&",
	"||": "||",
	"*=": "==",
}

var wordPostfix = map[string]string{
	"empty":    "== null",
	"notempty": "!= null",
}

type frame int

const (
	frameParen frame = iota
	frameCall
	frameArray
)

// translate checks tokens against the expression grammar and renders an equivalent
// ECMAScript expression.
func translate(tokens []token) (string, error) {
	if len(tokens) == 0 {
		return "", &SyntaxError{Msg: "empty expression"}
	}

	var (
		out           []string
		stack         []frame
		expectOperand = true
		afterOpen     = false
		afterSign     = false
	)

	fail := func(t token, msg string) error {
		return &SyntaxError{Pos: t.pos, Msg: msg + " " + strconv.Quote(t.text)}
	}

	for i, t := range tokens {
		opened, sign := false, false
		switch t.kind {
		case tokVariable:
			if !expectOperand {
				return "", fail(t, "unexpected variable")
			}
			out = append(out, "_v")
			expectOperand = false

		case tokString, tokNumber:
			if !expectOperand {
				return "", fail(t, "unexpected value")
			}
			if t.kind == tokString {
				out = append(out, strconv.Quote(t.text))
			} else {
				out = append(out, t.text)
			}
			expectOperand = false

		case tokWord:
			word := strings.ToLower(t.text)
			if op, ok := wordBinary[word]; ok {
				if expectOperand {
					return "", fail(t, "missing left operand for")
				}
				out = append(out, op)
				expectOperand = true
				break
			}
			if op, ok := wordPostfix[word]; ok {
				if expectOperand {
					return "", fail(t, "missing operand for")
				}
				out = append(out, op)
				break
			}
			if word == "not" {
				if !expectOperand {
					return "", fail(t, "unexpected")
				}
				out = append(out, "!")
				break
			}
			if !expectOperand {
				return "", fail(t, "unexpected word")
			}
			if i+1 < len(tokens) && tokens[i+1].kind == tokLParen {
				out = append(out, "_f")
				// The following parenthesis opens a call.
				expectOperand = false
				break
			}
			switch word {
			case "true", "false":
				out = append(out, word)
			default:
				out = append(out, strconv.Quote(t.text))
			}
			expectOperand = false

		case tokOperator:
			switch {
			case t.text == "!":
				if !expectOperand {
					return "", fail(t, "unexpected")
				}
				out = append(out, "!")
			case (t.text == "-" || t.text == "+") && expectOperand:
				if afterSign {
					return "", fail(t, "repeated sign")
				}
				out = append(out, t.text)
				sign = true
			default:
				op, ok := symbolBinary[t.text]
				if !ok || expectOperand {
					return "", fail(t, "unexpected operator")
				}
				out = append(out, op)
				expectOperand = true
			}

		case tokLParen:
			if i > 0 && tokens[i-1].kind == tokWord && out[len(out)-1] == "_f" {
				stack = append(stack, frameCall)
			} else if expectOperand {
				stack = append(stack, frameParen)
			} else {
				return "", fail(t, "unexpected")
			}
			out = append(out, "(")
			expectOperand = true
			opened = true

		case tokLBracket:
			if !expectOperand {
				return "", fail(t, "unexpected")
			}
			stack = append(stack, frameArray)
			out = append(out, "[")
			opened = true

		case tokRParen, tokRBracket:
			want := frameArray
			if t.kind == tokRParen {
				want = frameCall
			}
			if len(stack) == 0 {
				return "", fail(t, "unbalanced")
			}
			top := stack[len(stack)-1]
			if t.kind == tokRParen && top == frameParen {
				want = frameParen
			}
			if top != want {
				return "", fail(t, "unbalanced")
			}
			emptyList := afterOpen && top != frameParen
			if expectOperand && !emptyList {
				return "", fail(t, "missing operand before")
			}
			stack = stack[:len(stack)-1]
			out = append(out, t.text)
			expectOperand = false

		case tokComma:
			if len(stack) == 0 || stack[len(stack)-1] == frameParen || expectOperand {
				return "", fail(t, "unexpected")
			}
			out = append(out, ",")
			expectOperand = true
		}
		afterOpen = opened
		afterSign = sign
	}

	if expectOperand {
		return "", &SyntaxError{Pos: tokens[len(tokens)-1].pos, Msg: "expression ends with an operator"}
	}
	if len(stack) > 0 {
		return "", &SyntaxError{Pos: tokens[len(tokens)-1].pos, Msg: "unbalanced brackets"}
	}
	return strings.Join(out, " "), nil
}
