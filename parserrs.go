package calculate

import (
	"strconv"
	"strings"
)

// Position is a location in an expression's source text.
type Position struct {
	// Offset is the number of runes preceding the position.
	Offset int
	// Line and Col are the 1-based line and column of the position. Newlines
	// start new lines.
	Line, Col int
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

// ParseError is an error indicating input that does not match the grammar of
// expressions. It implements InputError.
type ParseError struct {
	// At is the position of the token where parsing failed. When several
	// alternatives fail, it is the furthest position any of them reached.
	At Position
	// Expected lists the constructs that would have been accepted at At.
	Expected []string
	// Found describes the token that was found instead.
	Found string
}

func (err *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(errpos(err.At, "expected "))
	switch len(err.Expected) {
	case 0:
		b.WriteString("nothing")
	case 1:
		b.WriteString(err.Expected[0])
	default:
		b.WriteString(strings.Join(err.Expected[:len(err.Expected)-1], ", "))
		b.WriteString(" or ")
		b.WriteString(err.Expected[len(err.Expected)-1])
	}
	b.WriteString(", found ")
	b.WriteString(err.Found)
	return b.String()
}

func (err *ParseError) Pos() Position {
	return err.At
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos Position, msg string) string {
	return pos.String() + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the token that caused the error.
	Pos() Position
}

var (
	_ InputError = (*ParseError)(nil)
	_ InputError = (*LexError)(nil)
)
