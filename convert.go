package calculator

import "strings"

// Expr is a parsed expression in postfix order that can be evaluated with a
// context.
type Expr struct {
	// postfix holds operands, variables, operators, and assignments in
	// evaluation order. It never contains brackets.
	postfix []item
	// names is the sorted list of variable names used in the expression.
	names []string
}

// Parse parses a single line so it can be evaluated with a context. Every
// error Parse returns is an *ExpressionError.
func Parse(line string) (*Expr, error) {
	toks := tokens(line)
	items := make([]item, 0, len(toks))
	seen := make(map[string]bool)
	for _, tok := range toks {
		it, err := newItem(tok)
		if err != nil {
			return nil, err
		}
		if it.kind == itemVariable {
			seen[it.name] = true
		}
		items = append(items, it)
	}
	postfix, err := convert(items)
	if err != nil {
		return nil, err
	}
	ex := Expr{
		postfix: postfix,
		names:   make([]string, 0, len(seen)),
	}
	for k := range seen {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// convert rearranges infix items into postfix order. Operators of equal
// precedence are left-associative.
func convert(items []item) ([]item, error) {
	out := make([]item, 0, len(items))
	var stack []item
	for _, it := range items {
		switch it.kind {
		case itemOperand, itemVariable:
			out = append(out, it)
		case itemOpen:
			stack = append(stack, it)
		case itemClose:
			for {
				if len(stack) == 0 {
					return nil, invalid("close bracket with no open bracket")
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.kind == itemOpen {
					break
				}
				out = append(out, top)
			}
		case itemOperator, itemAssign:
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.kind == itemOpen || top.prec < it.prec {
					break
				}
				// An assignment waits for its whole right-hand side. Only
				// another assignment pops it.
				if top.kind == itemAssign && it.kind != itemAssign {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, it)
		default:
			panic("calculator: convert on " + it.kind.String() + " item")
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.kind == itemOpen {
			return nil, invalid("open bracket with no close bracket")
		}
		out = append(out, top)
	}
	return out, nil
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// Vars returns the variable names used in the expression, including the
// target of an assignment.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// Assigns reports whether evaluating the expression may write a variable.
func (e *Expr) Assigns() bool {
	for _, it := range e.postfix {
		if it.kind == itemAssign {
			return true
		}
	}
	return false
}

// String creates a string representation of the expression in postfix order,
// e.g. "1 2 3 * +" for "1 + 2 * 3".
func (e *Expr) String() string {
	var b strings.Builder
	for i, it := range e.postfix {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(it.String())
	}
	return b.String()
}
