package calculator

import (
	"math/big"
	"strconv"
	"strings"
)

// tokens splits a line into token strings. Brackets always become separate
// tokens. An equals sign becomes a separate token only if it is the only one
// in the line, so that "a=b=c" stays one invalid token. Adjacent runs of +
// and - join into one token, so "1 - - 2" folds the same as "1 -- 2".
func tokens(line string) []string {
	if strings.Count(line, "=") == 1 {
		line = strings.Replace(line, "=", " = ", 1)
	}
	line = strings.ReplaceAll(line, "(", " ( ")
	line = strings.ReplaceAll(line, ")", " ) ")
	var toks []string
	for _, tok := range strings.Fields(line) {
		if n := len(toks); n > 0 && isSignRun(tok) && isSignRun(toks[n-1]) {
			toks[n-1] += tok
			continue
		}
		toks = append(toks, tok)
	}
	return toks
}

// rules are the token classification rules in the order they are tried. The
// first match decides the kind.
var rules = []struct {
	match func(string) bool
	kind  itemKind
}{
	{isNumber, itemOperand},
	{isName, itemVariable},
	{exactly("="), itemAssign},
	{exactly("("), itemOpen},
	{exactly(")"), itemClose},
	{isSignRun, itemOperator},
	{isMulDiv, itemOperator},
}

// classify finds the kind of a token. The result is itemNone if no rule
// matches.
func classify(tok string) itemKind {
	for _, r := range rules {
		if r.match(tok) {
			return r.kind
		}
	}
	return itemNone
}

// newItem classifies a token and creates its item.
func newItem(tok string) (item, error) {
	switch classify(tok) {
	case itemOperand:
		v, ok := new(big.Int).SetString(tok, 10)
		if !ok {
			return item{}, invalid("bad number " + strconv.Quote(tok))
		}
		return operand(v), nil
	case itemVariable:
		// The name keeps its sign, so -x names a different variable than x.
		return variable(tok), nil
	case itemAssign:
		return assignment(), nil
	case itemOpen:
		return openParen(), nil
	case itemClose:
		return closeParen(), nil
	case itemOperator:
		if isMulDiv(tok) {
			return operator(tok[0]), nil
		}
		if isSignRun(tok) {
			return operator(fold(tok)), nil
		}
		return item{}, invalid("unknown operator " + strconv.Quote(tok))
	default:
		return item{}, invalid("invalid token " + strconv.Quote(tok))
	}
}

// fold collapses a run of + and - into the operator it means: - when there
// is an odd number of minus signs, otherwise +.
func fold(run string) byte {
	if strings.Count(run, "-")%2 == 1 {
		return '-'
	}
	return '+'
}

func exactly(s string) func(string) bool {
	return func(tok string) bool { return tok == s }
}

// isNumber matches an optional sign followed by decimal digits.
func isNumber(tok string) bool {
	return signed(tok, isDigit)
}

// isName matches an optional sign followed by ASCII letters.
func isName(tok string) bool {
	return signed(tok, isLetter)
}

// isSignRun matches one or more + and - characters.
func isSignRun(tok string) bool {
	return tok != "" && all(tok, func(c byte) bool { return c == '+' || c == '-' })
}

func isMulDiv(tok string) bool {
	return tok == "*" || tok == "/"
}

// signed checks that tok is an optional sign followed by at least one byte
// satisfying body.
func signed(tok string, body func(byte) bool) bool {
	if tok != "" && (tok[0] == '+' || tok[0] == '-') {
		tok = tok[1:]
	}
	return tok != "" && all(tok, body)
}

func all(s string, f func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if !f(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
