package calculator

import (
	"math/big"
	"strconv"
)

// item is a classified token of an expression.
type item struct {
	kind itemKind
	// prec decides pop order when converting to postfix. Higher pops first.
	// It means nothing during evaluation.
	prec int8

	op   byte
	name string
	val  *big.Int
}

type itemKind int8

const (
	itemNone itemKind = iota

	itemOperand  // push val
	itemVariable // push name; consumers resolve it
	itemOperator // pop b, pop a, push a op b
	itemAssign   // pop value, pop variable, store

	itemOpen  // never reaches postfix order
	itemClose // never reaches postfix order
)

func (k itemKind) String() string {
	switch k {
	case itemNone:
		return "None"
	case itemOperand:
		return "Operand"
	case itemVariable:
		return "Variable"
	case itemOperator:
		return "Operator"
	case itemAssign:
		return "Assign"
	case itemOpen:
		return "Open"
	case itemClose:
		return "Close"
	default:
		return "itemKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Precedences of each item that enters the precedence stack. Assignment is
// the highest, so an operator that follows it never pops it.
const (
	addprec    = 1
	subprec    = 2
	mulprec    = 3
	parenprec  = 6
	assignprec = 10
)

func operand(v *big.Int) item {
	return item{kind: itemOperand, val: v}
}

func variable(name string) item {
	return item{kind: itemVariable, name: name}
}

// operator creates a binary operator item. op must be one of + - * /.
func operator(op byte) item {
	it := item{kind: itemOperator, op: op}
	switch op {
	case '+':
		it.prec = addprec
	case '-':
		it.prec = subprec
	case '*', '/':
		it.prec = mulprec
	default:
		panic("calculator: invalid operator " + strconv.QuoteRune(rune(op)))
	}
	return it
}

func assignment() item {
	return item{kind: itemAssign, prec: assignprec}
}

func openParen() item {
	return item{kind: itemOpen, prec: parenprec}
}

func closeParen() item {
	return item{kind: itemClose, prec: parenprec}
}

func (it item) String() string {
	switch it.kind {
	case itemOperand:
		return it.val.String()
	case itemVariable:
		return it.name
	case itemOperator:
		return string(it.op)
	case itemAssign:
		return "="
	case itemOpen:
		return "("
	case itemClose:
		return ")"
	default:
		return "$" + it.kind.String() + "$"
	}
}
