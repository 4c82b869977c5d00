package calculate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calculate/decimal"
)

// scanAll returns the tokens in src up to but not including the end token.
func scanAll(src string, dec decimal.Context) []token {
	l := lex(src, dec)
	var r []token
	for l.advance() {
		r = append(r, l.current())
	}
	return r
}

func TestLex(t *testing.T) {
	type tk struct {
		kind tokenKind
		text string
		col  int
	}
	cases := []struct {
		name   string
		src    string
		tokens []tk
	}{
		{"empty", "", nil},
		{"spaces", " \t \r\n ", nil},
		{"int", "0", []tk{{tokenNumber, "0", 1}}},
		{"long", "9876543210", []tk{{tokenNumber, "9876543210", 1}}},
		{"two", "1 0", []tk{{tokenNumber, "1", 1}, {tokenNumber, "0", 3}}},
		{"fraction", "1.0", []tk{{tokenNumber, "1.0", 1}}},
		{"trailing-dot", "1.", []tk{{tokenNumber, "1.", 1}}},
		{"neg", "-1", []tk{{tokenDash, "-", 1}, {tokenNumber, "1", 2}}},
		{"exp", "1e1", []tk{{tokenNumber, "1e1", 1}}},
		{"exp-plus", "1E+1", []tk{{tokenNumber, "1E+1", 1}}},
		{"exp-minus", "1e-1", []tk{{tokenNumber, "1e-1", 1}}},
		{"full", "1.0e1", []tk{{tokenNumber, "1.0e1", 1}}},
		{"bad-exp", "1e", []tk{{tokenInvalid, "1e", 1}}},
		{"bad-exp-sign", "1e+", []tk{{tokenInvalid, "1e+", 1}}},
		{"two-dots", "1.1.1", []tk{{tokenNumber, "1.1", 1}, {tokenInvalid, ".", 4}, {tokenNumber, "1", 5}}},
		{"leading-dot", ".1", []tk{{tokenInvalid, ".", 1}, {tokenNumber, "1", 2}}},
		{"add", "1+0", []tk{{tokenNumber, "1", 1}, {tokenPlus, "+", 2}, {tokenNumber, "0", 3}}},
		{"ops", "*/", []tk{{tokenMultiply, "*", 1}, {tokenDivide, "/", 2}}},
		{"parens", "(1)", []tk{{tokenLeftParen, "(", 1}, {tokenNumber, "1", 2}, {tokenRightParen, ")", 3}}},
		{"letter", "1a", []tk{{tokenNumber, "1", 1}, {tokenInvalid, "a", 2}}},
		{"symbol", "$", []tk{{tokenInvalid, "$", 1}}},
		{"unicode", "×", []tk{{tokenInvalid, "×", 1}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := scanAll(c.src, decimal.DefaultContext)
			require.Len(t, got, len(c.tokens))
			for i, want := range c.tokens {
				assert.Equal(t, want.kind, got[i].kind, "token %d", i)
				assert.Equal(t, want.text, got[i].text, "token %d", i)
				assert.Equal(t, want.col, got[i].pos.Col, "token %d", i)
				if want.kind == tokenInvalid {
					require.NotNil(t, got[i].err)
					assert.Equal(t, got[i].pos, got[i].err.Pos())
				}
			}
		})
	}
}

func TestLexValues(t *testing.T) {
	cases := []struct {
		src  string
		want decimal.Number
	}{
		{"123", decimal.NewInt(123, 0)},
		{"0.25", decimal.NewInt(25, -2)},
		{"1.50", decimal.NewInt(15, -1)},
		{"100", decimal.NewInt(100, 0)},
		{"1e3", decimal.NewInt(1000, 0)},
		{"1e-2", decimal.NewInt(1, -2)},
		{"2.5E+1", decimal.NewInt(250, -1)},
	}
	for _, c := range cases {
		got := scanAll(c.src, decimal.DefaultContext)
		require.Len(t, got, 1, c.src)
		require.Equal(t, tokenNumber, got[0].kind, c.src)
		assert.Truef(t, c.want.Equal(got[0].num), "%q: want %v, got %v", c.src, c.want, got[0].num)
	}
}

func TestLexPositions(t *testing.T) {
	got := scanAll("1 +\n\t22\n\n(", decimal.DefaultContext)
	want := []Position{
		{Offset: 0, Line: 1, Col: 1},
		{Offset: 2, Line: 1, Col: 3},
		{Offset: 5, Line: 2, Col: 2},
		{Offset: 9, Line: 4, Col: 1},
	}
	require.Len(t, got, len(want))
	for i, p := range want {
		assert.Equal(t, p, got[i].pos, "token %d", i)
	}
}

func TestLexEnd(t *testing.T) {
	l := lex(" 1 ", decimal.DefaultContext)
	require.True(t, l.advance())
	assert.False(t, l.exhausted())
	require.False(t, l.advance())
	assert.True(t, l.exhausted())
	assert.Equal(t, tokenEnd, l.current().kind)
	assert.Equal(t, Position{Offset: 3, Line: 1, Col: 4}, l.current().pos)
	assert.Equal(t, "end of input", l.current().describe())
	require.False(t, l.advance())
}

func TestLexRestore(t *testing.T) {
	l := lex("12\n+ 3", decimal.DefaultContext)
	require.True(t, l.advance())
	cp := l.checkpoint()
	before := l.current()
	require.True(t, l.advance())
	require.True(t, l.advance())
	require.False(t, l.advance())
	l.restore(cp)
	assert.Equal(t, before, l.current())
	assert.Equal(t, 2, l.offset())
	assert.False(t, l.exhausted())
	require.True(t, l.advance())
	assert.Equal(t, Position{Offset: 3, Line: 2, Col: 1}, l.current().pos)
}

func TestLexOverflow(t *testing.T) {
	dec := decimal.Context{Prec: 28, MaxDigits: 5}
	cases := []string{"123456", "1e5", "1.000001", "1e99999999999"}
	for _, src := range cases {
		got := scanAll(src, dec)
		require.Len(t, got, 1, src)
		require.Equal(t, tokenInvalid, got[0].kind, src)
		assert.Equal(t, src, got[0].err.Text)
		assert.True(t, errors.Is(got[0].err, decimal.ErrOverflow), "%q: %v", src, got[0].err)
	}
	got := scanAll("12345 1e4", dec)
	require.Len(t, got, 2)
	assert.Equal(t, tokenNumber, got[0].kind)
	assert.Equal(t, tokenNumber, got[1].kind)
}

func TestLexErrorMessage(t *testing.T) {
	got := scanAll("1 $", decimal.DefaultContext)
	require.Len(t, got, 2)
	assert.EqualError(t, got[1].err, `1:3: invalid token "$"`)
	got = scanAll("\n1e", decimal.DefaultContext)
	require.Len(t, got, 1)
	assert.EqualError(t, got[0].err, `2:1: invalid exponent "1e"`)
}
