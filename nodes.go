package calculate

import (
	"strconv"
	"strings"

	"github.com/zephyrtronium/calculate/decimal"
)

// Node is a node in the syntax tree of an expression. The concrete types are
// *Constant, *Unary, *Binary, and *Grouped. Nodes are not modified after
// parsing.
//
// String formats a node as infix text. Parentheses appear only where the
// source had them, so the text of a tree built by hand might not parse back
// to the same tree.
type Node interface {
	String() string
	format(b *strings.Builder)
}

// Constant is a literal number.
type Constant struct {
	Value decimal.Number
}

// Unary applies a sign to its operand.
type Unary struct {
	Op      UnaryOp
	Operand Node
}

// Binary is an arithmetic operation on two operands.
type Binary struct {
	Op          BinaryOp
	Left, Right Node
}

// Grouped is a parenthesized expression. It evaluates to its operand.
type Grouped struct {
	Operand Node
}

// UnaryOp is a unary operator.
type UnaryOp int8

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryPlus:
		return "+"
	case UnaryMinus:
		return "-"
	default:
		return "UnaryOp(" + strconv.Itoa(int(op)) + ")"
	}
}

// BinaryOp is a binary operator.
type BinaryOp int8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "BinaryOp(" + strconv.Itoa(int(op)) + ")"
	}
}

func (n *Constant) String() string { return nodeString(n) }
func (n *Unary) String() string    { return nodeString(n) }
func (n *Binary) String() string   { return nodeString(n) }
func (n *Grouped) String() string  { return nodeString(n) }

func nodeString(n Node) string {
	var b strings.Builder
	n.format(&b)
	return b.String()
}

func (n *Constant) format(b *strings.Builder) {
	b.WriteString(n.Value.Text())
}

func (n *Unary) format(b *strings.Builder) {
	b.WriteString(n.Op.String())
	n.Operand.format(b)
}

func (n *Binary) format(b *strings.Builder) {
	n.Left.format(b)
	b.WriteString(n.Op.String())
	n.Right.format(b)
}

func (n *Grouped) format(b *strings.Builder) {
	b.WriteByte('(')
	n.Operand.format(b)
	b.WriteByte(')')
}
