package calculate

import (
	"strconv"

	"github.com/zephyrtronium/calculate/decimal"
)

type token struct {
	kind tokenKind
	text string
	// num is the value of a number token.
	num decimal.Number
	pos Position
	// err describes an invalid token.
	err *LexError
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text + "@" + t.pos.String()
}

// describe names the token for error messages.
func (t token) describe() string {
	if t.kind == tokenEnd {
		return "end of input"
	}
	return strconv.Quote(t.text)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenNumber is a decimal literal.
	tokenNumber
	tokenPlus
	tokenDash
	tokenMultiply
	tokenDivide
	tokenLeftParen
	tokenRightParen
	// tokenEnd indicates the end of the input.
	tokenEnd
	// tokenInvalid is a rune or literal the lexer does not understand.
	tokenInvalid
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenNumber:
		return "Number"
	case tokenPlus:
		return "Plus"
	case tokenDash:
		return "Dash"
	case tokenMultiply:
		return "Multiply"
	case tokenDivide:
		return "Divide"
	case tokenLeftParen:
		return "LeftParen"
	case tokenRightParen:
		return "RightParen"
	case tokenEnd:
		return "End"
	case tokenInvalid:
		return "Invalid"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/"

var opkinds = [...]tokenKind{tokenPlus, tokenDash, tokenMultiply, tokenDivide}

type lexer struct {
	src *cursor
	// dec is used to compose number literals.
	dec decimal.Context
	// line and col are the position of the cursor.
	line, col int
	tok       token
	// eof is set once advance has reached the end of the input.
	eof bool
}

func lex(src string, dec decimal.Context) *lexer {
	return &lexer{
		src:  newCursor(src),
		dec:  dec,
		line: 1,
		col:  1,
	}
}

// lexCheckpoint is a saved lexer state.
type lexCheckpoint struct {
	cp        checkpoint
	line, col int
	tok       token
	eof       bool
}

// checkpoint saves the lexer's state, including its current token.
func (l *lexer) checkpoint() lexCheckpoint {
	return lexCheckpoint{
		cp:   l.src.checkpoint(),
		line: l.line,
		col:  l.col,
		tok:  l.tok,
		eof:  l.eof,
	}
}

// restore returns the lexer to the state saved in cp. Checkpoints taken after
// cp are discarded.
func (l *lexer) restore(cp lexCheckpoint) {
	l.src.restore(cp.cp)
	l.line, l.col = cp.line, cp.col
	l.tok = cp.tok
	l.eof = cp.eof
}

// commit discards cp, keeping the lexer's current state.
func (l *lexer) commit(cp lexCheckpoint) {
	l.src.commit(cp.cp)
}

// current returns the token most recently scanned by advance.
func (l *lexer) current() token {
	return l.tok
}

// exhausted reports whether advance has reached the end of the input.
func (l *lexer) exhausted() bool {
	return l.eof
}

// offset returns the number of runes the lexer has consumed.
func (l *lexer) offset() int {
	return l.src.offset()
}

// pos returns the position of the cursor.
func (l *lexer) pos() Position {
	return Position{Offset: l.src.offset(), Line: l.line, Col: l.col}
}

// read consumes a rune that is part of a token.
func (l *lexer) read() rune {
	r, _ := l.src.read()
	l.col++
	return r
}

// skip passes over whitespace.
func (l *lexer) skip() {
	for {
		r, ok := l.src.peek()
		switch {
		case !ok:
			return
		case r == '\n':
			l.src.read()
			l.line++
			l.col = 1
		case r == ' ', r == '\t', r == '\r':
			l.src.read()
			l.col++
		default:
			return
		}
	}
}

// advance scans the next token, which becomes the current token. At the end of
// the input, the current token is an end token and the result is false.
// Invalid input produces a current token of kind tokenInvalid, with a true
// result.
func (l *lexer) advance() bool {
	l.skip()
	tok := token{pos: l.pos()}
	r, ok := l.src.peek()
	if !ok {
		tok.kind = tokenEnd
		l.tok = tok
		l.eof = true
		return false
	}
	switch {
	case '0' <= r && r <= '9':
		l.scanNumber(&tok)
	case r == '(':
		l.read()
		tok.kind, tok.text = tokenLeftParen, "("
	case r == ')':
		l.read()
		tok.kind, tok.text = tokenRightParen, ")"
	default:
		l.read()
		tok.text = string(r)
		for k, op := range Operators {
			if r == op {
				tok.kind = opkinds[k]
				break
			}
		}
		if tok.kind == tokenNone {
			tok.kind = tokenInvalid
			tok.err = &LexError{Text: tok.text, At: tok.pos}
		}
	}
	l.tok = tok
	return true
}

// scanNumber scans a literal of the form digits[.digits][(e|E)[+|-]digits].
func (l *lexer) scanNumber(tok *token) {
	start := l.offset()
	l.digits()
	if r, ok := l.src.peek(); ok && r == '.' {
		l.read()
		l.digits()
	}
	if r, ok := l.src.peek(); ok && (r == 'e' || r == 'E') {
		l.read()
		if r, ok := l.src.peek(); ok && (r == '+' || r == '-') {
			l.read()
		}
		if l.digits() == 0 {
			l.invalid(tok, start, "exponent", nil)
			return
		}
	}
	tok.text = l.src.text(start)
	v, err := l.dec.Parse(tok.text)
	if err != nil {
		l.invalid(tok, start, "number", err)
		return
	}
	tok.kind = tokenNumber
	tok.num = v
}

// digits consumes a run of decimal digits and returns its length.
func (l *lexer) digits() int {
	n := 0
	for {
		r, ok := l.src.peek()
		if !ok || r < '0' || '9' < r {
			return n
		}
		l.read()
		n++
	}
}

// invalid makes tok an invalid token spanning from start to the cursor.
func (l *lexer) invalid(tok *token, start int, kind string, err error) {
	tok.kind = tokenInvalid
	tok.text = l.src.text(start)
	tok.err = &LexError{
		Text: tok.text,
		Kind: kind,
		At:   tok.pos,
		Err:  err,
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when it found the error,
	// including the rune that caused it.
	Text string
	// Kind is the part of a number token that was malformed, either "number"
	// or "exponent", or the empty string if the rune does not start a token.
	Kind string
	// At is the position of the start of the token.
	At Position
	// Err is the reason a number literal could not be represented, if any.
	Err error
}

func (err *LexError) Error() string {
	var msg string
	if err.Kind == "" {
		msg = "invalid token " + strconv.Quote(err.Text)
	} else {
		msg = "invalid " + err.Kind + " " + strconv.Quote(err.Text)
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return errpos(err.At, msg)
}

func (err *LexError) Pos() Position {
	return err.At
}

func (err *LexError) Unwrap() error {
	return err.Err
}
