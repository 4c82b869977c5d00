package decimal

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ErrSyntax is returned by Parse for text that is not a decimal literal.
var ErrSyntax = errors.New("decimal: invalid syntax")

// FromFloat64 converts f using the shortest decimal that reads back as f, so
// 0.1 becomes 1e-1 rather than the exact binary value. The result has the
// largest exponent not above zero that represents that decimal.
func FromFloat64(f float64) (Number, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Number{}, ErrNotFinite
	}
	// The 'e' format always has the form [-]d[.ddd]e±dd.
	s := strconv.FormatFloat(f, 'e', -1, 64)
	k := strings.IndexByte(s, 'e')
	exp, err := strconv.Atoi(s[k+1:])
	if err != nil {
		panic("decimal: bad float format " + s)
	}
	ds := strings.Replace(s[:k], ".", "", 1)
	if dot := strings.IndexByte(s[:k], '.'); dot >= 0 {
		exp -= k - dot - 1
	}
	m, ok := new(big.Int).SetString(ds, 10)
	if !ok {
		panic("decimal: bad float format " + s)
	}
	return reduce(m, exp), nil
}

// reduce returns m × 10^exp with the largest exponent not above zero.
func reduce(m *big.Int, exp int) Number {
	if exp > 0 {
		return Number{mant: scale(m, int64(exp))}
	}
	if m.Sign() == 0 {
		return Zero
	}
	t, r := new(big.Int), new(big.Int)
	for exp < 0 {
		t.QuoRem(m, bigTen, r)
		if r.Sign() != 0 {
			break
		}
		m, t = t, m
		exp++
	}
	return Number{mant: m, exp: int32(exp)}
}

// Parse parses a decimal literal of the form [-]digits[.digits][(e|E)[±]digits].
// The literal is composed the way an expression's numeric literals are: the
// integer part has exponent 0, trailing zeros of the fraction are dropped,
// and the exponent part multiplies by Pow10. So "1.50" is 15e-1 and "12e2" is
// 1200e0. Parse uses DefaultContext for its limits.
func Parse(s string) (Number, error) {
	return DefaultContext.Parse(s)
}

// Parse parses a decimal literal like the Parse function, checking the result
// against c.MaxDigits.
func (c Context) Parse(s string) (Number, error) {
	t := s
	neg := strings.HasPrefix(t, "-")
	if neg {
		t = t[1:]
	}
	i := 0
	for i < len(t) && isDigit(t[i]) {
		i++
	}
	if i == 0 {
		return Number{}, ErrSyntax
	}
	if c.MaxDigits > 0 && len(strings.TrimLeft(t[:i], "0")) > c.MaxDigits {
		return Number{}, ErrOverflow
	}
	ip, _ := new(big.Int).SetString(t[:i], 10)
	v := Number{mant: ip}
	t = t[i:]
	if strings.HasPrefix(t, ".") {
		t = t[1:]
		i = 0
		for i < len(t) && isDigit(t[i]) {
			i++
		}
		f := strings.TrimRight(t[:i], "0")
		if c.MaxDigits > 0 && len(f) > c.MaxDigits {
			return Number{}, ErrOverflow
		}
		if f != "" {
			fm, _ := new(big.Int).SetString(f, 10)
			var err error
			if v, err = c.Add(v, Number{mant: fm, exp: int32(-len(f))}); err != nil {
				return Number{}, err
			}
		}
		t = t[i:]
	}
	if t != "" {
		if t[0] != 'e' && t[0] != 'E' {
			return Number{}, ErrSyntax
		}
		e, err := strconv.ParseInt(t[1:], 10, 32)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return Number{}, ErrOverflow
			}
			return Number{}, ErrSyntax
		}
		p, err := c.Pow10(int32(e))
		if err != nil {
			return Number{}, err
		}
		if v, err = c.Mul(v, p); err != nil {
			return Number{}, err
		}
	}
	if neg {
		v = v.Neg()
	}
	return v, nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
