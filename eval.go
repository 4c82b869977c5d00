package calculate

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/zephyrtronium/calculate/decimal"
)

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently.
type Context struct {
	stack []decimal.Number
	dec   decimal.Context
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type precopt int

func (precopt) ctxOption() {}

// Prec sets the number of extra digits computed for a quotient that is not
// exact. Zero truncates quotients to integer mantissas.
func Prec(digits int) ContextOption {
	return precopt(digits)
}

// NewContext creates a new evaluation context. The defaults are those of
// decimal.DefaultContext.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{dec: decimal.DefaultContext}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it. The returned
// context is safe to use concurrently with the original.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack: make([]decimal.Number, 0, cap(ctx.stack)),
		dec:   ctx.dec,
	}
	for _, opt := range opts {
		switch o := opt.(type) {
		case precopt:
			n.dec.Prec = int(o)
		case maxdigitsopt:
			n.dec.MaxDigits = int(o)
		default:
			panic(fmt.Errorf("calculate: unknown context option %T", opt))
		}
	}
	return &n
}

// Prec returns the number of extra digits computed for inexact quotients.
func (ctx *Context) Prec() int {
	return ctx.dec.Prec
}

// Decimal returns the arithmetic parameters of the context.
func (ctx *Context) Decimal() decimal.Context {
	return ctx.dec
}

// Eval evaluates an expression and returns the result. The only errors are
// *EvalError values.
func (ctx *Context) Eval(n Node) (decimal.Number, error) {
	if len(ctx.stack) != 0 {
		panic("calculate: Eval during Eval")
	}
	defer func() { ctx.stack = ctx.stack[:0] }()
	if err := ctx.eval(n); err != nil {
		return decimal.Number{}, err
	}
	if len(ctx.stack) != 1 {
		panic("calculate: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad AST?)")
	}
	return ctx.stack[0], nil
}

// EvalString parses and evaluates an expression with a new context. Parse
// errors are returned as from Parse.
func EvalString(src string, opts ...ContextOption) (decimal.Number, error) {
	ctx := NewContext(opts...)
	n, err := parse(src, parsectx{dec: ctx.dec, maxDepth: defaultMaxDepth})
	if err != nil {
		return decimal.Number{}, err
	}
	return ctx.Eval(n)
}

// eval visits n in post order, leaving its value on the stack.
func (ctx *Context) eval(n Node) error {
	switch n := n.(type) {
	case *Constant:
		ctx.push(n.Value)
	case *Unary:
		if err := ctx.eval(n.Operand); err != nil {
			return err
		}
		if n.Op == UnaryMinus {
			ctx.push(ctx.pop().Neg())
		}
	case *Binary:
		if err := ctx.eval(n.Left); err != nil {
			return err
		}
		if err := ctx.eval(n.Right); err != nil {
			return err
		}
		y := ctx.pop()
		x := ctx.pop()
		r, err := ctx.apply(n.Op, x, y)
		if err != nil {
			return newEvalError(n, err)
		}
		ctx.push(r)
	case *Grouped:
		return ctx.eval(n.Operand)
	default:
		panic(fmt.Errorf("calculate: invalid node %#v", n))
	}
	return nil
}

func (ctx *Context) apply(op BinaryOp, x, y decimal.Number) (decimal.Number, error) {
	switch op {
	case OpAdd:
		return ctx.dec.Add(x, y)
	case OpSub:
		return ctx.dec.Sub(x, y)
	case OpMul:
		return ctx.dec.Mul(x, y)
	case OpDiv:
		return ctx.dec.Quo(x, y)
	default:
		panic("calculate: invalid binary operator " + op.String())
	}
}

func (ctx *Context) push(x decimal.Number) {
	ctx.stack = append(ctx.stack, x)
}

func (ctx *Context) pop() decimal.Number {
	x := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return x
}

// ErrorKind classifies evaluation errors.
type ErrorKind int

const (
	// DivisionByZero is a quotient whose divisor is zero.
	DivisionByZero ErrorKind = iota + 1
	// Overflow is a result whose exponent or mantissa is too large.
	Overflow
)

func (k ErrorKind) String() string {
	switch k {
	case DivisionByZero:
		return "division by zero"
	case Overflow:
		return "overflow"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// EvalError is an error that occurs while evaluating an expression.
type EvalError struct {
	// Kind is the class of the error.
	Kind ErrorKind
	// Op is the text of the operation that failed.
	Op string
	// Err is the underlying error from package decimal.
	Err error
}

func newEvalError(n Node, err error) *EvalError {
	kind := Overflow
	if errors.Is(err, decimal.ErrDivisionByZero) {
		kind = DivisionByZero
	}
	return &EvalError{Kind: kind, Op: n.String(), Err: err}
}

func (err *EvalError) Error() string {
	return err.Kind.String() + " evaluating " + err.Op
}

func (err *EvalError) Unwrap() error {
	return err.Err
}
