package calculator

import (
	"errors"
	"io"
	"math/big"
	"strconv"

	"github.com/edwingeng/deque"
	"github.com/sirupsen/logrus"
)

// Context is a calculator session. It holds the variables that assignments
// create, which persist across evaluations. It is not safe to use a Context
// concurrently.
type Context struct {
	names map[string]*big.Int
	log   logrus.FieldLogger
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  *big.Int
	}
	varsopt map[string]*big.Int
	logopt  struct {
		log logrus.FieldLogger
	}
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}
func (logopt) ctxOption()  {}

// SetVar assigns a variable in the context as if by evaluating
// "name = val". Creating or cloning a context with an option naming an
// invalid variable panics.
func SetVar(name string, val *big.Int) ContextOption {
	return varopt{name, val}
}

// SetVars assigns any number of variables in the context.
func SetVars(vars map[string]*big.Int) ContextOption {
	return varsopt(vars)
}

// Logger sets the logger that receives debug messages about parsed
// expressions, variable writes, and failed evaluations. The default discards
// everything.
func Logger(log logrus.FieldLogger) ContextOption {
	return logopt{log}
}

// NewContext creates a new session with no variables.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{names: make(map[string]*big.Int), log: discard()}
	return ctx.Clone(opts...)
}

func discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Clone creates a copy of a context and applies options to it. Assignments
// in either context are not visible in the other.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		names: make(map[string]*big.Int, len(ctx.names)),
		log:   ctx.log,
	}
	// Stored values are never modified in place, so pointers can be shared.
	for name, val := range ctx.names {
		n.names[name] = val
	}
	for _, opt := range opts {
		if opt, ok := opt.(logopt); ok && opt.log != nil {
			n.log = opt.log
		}
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.mustSet(opt.name, opt.val)
		case varsopt:
			for k, v := range opt {
				n.mustSet(k, v)
			}
		case logopt:
			// Already done. Do nothing.
		default:
			panic("calculator: unknown option type")
		}
	}
	return &n
}

func (ctx *Context) mustSet(name string, val *big.Int) {
	if err := ctx.Set(name, val); err != nil {
		panic("calculator: cannot set " + strconv.Quote(name) + ": " + detail(err))
	}
}

// Set assigns a variable as if by evaluating "name = value". The name must be
// a valid variable token, i.e. letters with an optional leading sign.
func (ctx *Context) Set(name string, value *big.Int) error {
	if !isName(name) {
		return invalid("invalid variable name " + strconv.Quote(name))
	}
	if value == nil {
		return invalid("no value for " + strconv.Quote(name))
	}
	e := Expr{
		postfix: []item{variable(name), operand(value), assignment()},
		names:   []string{name},
	}
	_, err := ctx.Eval(&e)
	return err
}

// Lookup returns a copy of the value of a variable. If there is no such
// variable in the context, then the result is nil.
func (ctx *Context) Lookup(name string) *big.Int {
	v := ctx.names[name]
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

// Vars returns the names of all variables in the context in sorted order.
func (ctx *Context) Vars() []string {
	names := make([]string, 0, len(ctx.names))
	for k := range ctx.names {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// Eval evaluates an expression. If the expression is an assignment, the
// result is nil with a nil error, and the assigned variable is visible to
// later evaluations. Otherwise, the result is the value of the expression.
//
// Errors are *ExpressionError, *UnknownVariableError, or *DivisionError.
// A failed evaluation leaves variables as they were, except for assignments
// that completed before the failure.
func (ctx *Context) Eval(e *Expr) (*big.Int, error) {
	r, err := ctx.eval(e)
	if err != nil {
		ctx.log.WithFields(logrus.Fields{
			"expr":   e.String(),
			"reason": detail(err),
		}).Debug("evaluation failed")
		return nil, err
	}
	return r, nil
}

func (ctx *Context) eval(e *Expr) (*big.Int, error) {
	// An unknown variable anywhere on the right of an assignment makes the
	// whole assignment invalid.
	assigns := e.Assigns()
	unresolved := func(err error) error {
		if assigns {
			return invalid("assigned value: " + detail(err))
		}
		return err
	}
	stack := deque.NewDeque()
	for _, it := range e.postfix {
		switch it.kind {
		case itemOperand, itemVariable:
			stack.PushBack(it)
		case itemOperator:
			if stack.Len() < 2 {
				return nil, invalid("operator " + it.String() + " is missing an operand")
			}
			b := stack.PopBack().(item)
			a := stack.PopBack().(item)
			x, err := ctx.resolve(a)
			if err != nil {
				return nil, unresolved(err)
			}
			y, err := ctx.resolve(b)
			if err != nil {
				return nil, unresolved(err)
			}
			r, err := apply(it.op, x, y)
			if err != nil {
				return nil, err
			}
			stack.PushBack(operand(r))
		case itemAssign:
			if err := ctx.assign(stack); err != nil {
				return nil, err
			}
		default:
			panic("calculator: invalid postfix item " + it.kind.String())
		}
	}
	switch stack.Len() {
	case 0:
		// Assignment. Nothing to print.
		return nil, nil
	case 1:
		r, err := ctx.resolve(stack.Front().(item))
		if err != nil {
			return nil, err
		}
		return new(big.Int).Set(r), nil
	default:
		return nil, invalid(strconv.Itoa(stack.Len()) + " values with no operator between them")
	}
}

// assign pops a value and the variable to assign it to. The variable must be
// the only thing left on the stack, so there can be only one assignment in an
// expression and it must be outermost.
func (ctx *Context) assign(stack deque.Deque) error {
	if stack.Len() < 2 {
		return invalid("assignment is missing a variable or value")
	}
	a := stack.PopBack().(item)
	v := stack.PopBack().(item)
	val, err := ctx.resolve(a)
	if err != nil {
		return invalid("assigned value: " + detail(err))
	}
	if v.kind != itemVariable {
		return invalid("cannot assign to " + v.String())
	}
	if stack.Len() != 0 {
		return invalid("assignment is not the whole expression")
	}
	ctx.names[v.name] = new(big.Int).Set(val)
	ctx.log.WithFields(logrus.Fields{
		"name":  v.name,
		"value": val.String(),
	}).Debug("assigned variable")
	return nil
}

// resolve gets the value of an operand or variable. The result must not be
// modified.
func (ctx *Context) resolve(it item) (*big.Int, error) {
	switch it.kind {
	case itemOperand:
		return it.val, nil
	case itemVariable:
		v := ctx.names[it.name]
		if v == nil {
			return nil, &UnknownVariableError{Name: it.name}
		}
		return v, nil
	default:
		return nil, invalid(it.kind.String() + " " + it.String() + " has no value")
	}
}

// apply computes a op b into a new value. Division truncates toward zero.
func apply(op byte, a, b *big.Int) (*big.Int, error) {
	r := new(big.Int)
	switch op {
	case '+':
		r.Add(a, b)
	case '-':
		r.Sub(a, b)
	case '*':
		r.Mul(a, b)
	case '/':
		if b.Sign() == 0 {
			return nil, &DivisionError{Dividend: a.String()}
		}
		r.Quo(a, b)
	default:
		panic("calculator: invalid operator " + strconv.QuoteRune(rune(op)))
	}
	return r, nil
}

// Parse parses a line like the package-level Parse and logs the outcome to
// the context's logger.
func (ctx *Context) Parse(line string) (*Expr, error) {
	e, err := Parse(line)
	if err != nil {
		ctx.log.WithFields(logrus.Fields{
			"line":   line,
			"reason": detail(err),
		}).Debug("parse failed")
		return nil, err
	}
	ctx.log.WithFields(logrus.Fields{
		"line":    line,
		"postfix": e.String(),
	}).Debug("parsed")
	return e, nil
}

// EvalString parses and evaluates a line with ctx.
func (ctx *Context) EvalString(line string) (*big.Int, error) {
	e, err := ctx.Parse(line)
	if err != nil {
		return nil, err
	}
	return ctx.Eval(e)
}

// EvalString is a shortcut to parse and evaluate a line in a new context.
func EvalString(line string, opts ...ContextOption) (*big.Int, error) {
	return NewContext(opts...).EvalString(line)
}

// detail describes an error for logs, including information that error
// messages leave out.
func detail(err error) string {
	var ee *ExpressionError
	if errors.As(err, &ee) {
		return ee.Reason
	}
	var ue *UnknownVariableError
	if errors.As(err, &ue) {
		return ue.Detail()
	}
	var de *DivisionError
	if errors.As(err, &de) {
		return de.Dividend + " / 0"
	}
	return err.Error()
}
