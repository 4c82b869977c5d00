// Package decimal implements arbitrary-precision decimal numbers, each an
// integer mantissa scaled by a power of ten.
//
// Numbers are never normalized. 1e0 and 10e-1 have the same value, but they
// are different Numbers: Equal reports false for them while Cmp reports 0.
// Arithmetic that can fail or that needs a precision is done through a
// Context.
package decimal

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Number is the decimal value mant × 10^exp. The zero value is 0e0. A Number
// is immutable; operations always produce new mantissas.
type Number struct {
	mant *big.Int
	exp  int32
}

var (
	bigZero = new(big.Int)
	bigOne  = big.NewInt(1)
	bigTen  = big.NewInt(10)
)

// Zero and One are 0e0 and 1e0.
var (
	Zero = Number{}
	One  = Number{mant: bigOne}
)

// New returns mant × 10^exp. mant is copied.
func New(mant *big.Int, exp int32) Number {
	return Number{mant: new(big.Int).Set(mant), exp: exp}
}

// NewInt returns mant × 10^exp.
func NewInt(mant int64, exp int32) Number {
	return Number{mant: big.NewInt(mant), exp: exp}
}

// m returns the mantissa without copying. The result must not be modified.
func (x Number) m() *big.Int {
	if x.mant == nil {
		return bigZero
	}
	return x.mant
}

// Mantissa returns a copy of the mantissa of x.
func (x Number) Mantissa() *big.Int {
	return new(big.Int).Set(x.m())
}

// Exponent returns the power of ten by which the mantissa of x is scaled.
func (x Number) Exponent() int32 {
	return x.exp
}

// Sign returns -1, 0, or 1 according to the sign of x.
func (x Number) Sign() int {
	return x.m().Sign()
}

// IsZero reports whether x has a zero mantissa, whatever its exponent.
func (x Number) IsZero() bool {
	return x.Sign() == 0
}

// Neg returns -x with the same exponent.
func (x Number) Neg() Number {
	return Number{mant: new(big.Int).Neg(x.m()), exp: x.exp}
}

// Equal reports whether x and y have identical mantissas and exponents.
// Numbers with equal values but different representations are not Equal.
func (x Number) Equal(y Number) bool {
	return x.exp == y.exp && x.m().Cmp(y.m()) == 0
}

// Cmp compares the values of x and y and returns -1, 0, or 1.
func (x Number) Cmp(y Number) int {
	sx, sy := x.Sign(), y.Sign()
	switch {
	case sx < sy:
		return -1
	case sx > sy:
		return 1
	case sx == 0:
		return 0
	case x.exp == y.exp:
		return x.m().Cmp(y.m())
	}
	// Compare orders of magnitude first so that numbers with wildly different
	// exponents never need to be aligned.
	ax := int64(x.exp) + int64(digits(x.m()))
	ay := int64(y.exp) + int64(digits(y.m()))
	switch {
	case ax < ay:
		return -sx
	case ax > ay:
		return sx
	}
	mx, my, _ := align(x, y)
	return mx.Cmp(my)
}

// String formats x as its mantissa and exponent, e.g. "25e-2".
func (x Number) String() string {
	return x.m().String() + "e" + strconv.FormatInt(int64(x.exp), 10)
}

// maxPad is the most zeros Text pads with before falling back to String.
const maxPad = 64

// Text formats x as a plain decimal, e.g. "0.25" for 25e-2 or "1200" for
// 12e2. The digits after the point reflect the exponent, so 250e-3 is
// "0.250". Numbers that would need more than a few dozen padding zeros are
// formatted as with String.
func (x Number) Text() string {
	m := x.m()
	s := new(big.Int).Abs(m).String()
	var b strings.Builder
	if m.Sign() < 0 {
		b.WriteByte('-')
	}
	switch {
	case x.exp == 0, m.Sign() == 0 && x.exp > 0:
		b.WriteString(s)
	case x.exp > 0:
		if x.exp > maxPad {
			return x.String()
		}
		b.WriteString(s)
		b.WriteString(strings.Repeat("0", int(x.exp)))
	default:
		k := -int(x.exp)
		if k < len(s) {
			b.WriteString(s[:len(s)-k])
			b.WriteByte('.')
			b.WriteString(s[len(s)-k:])
			break
		}
		if k-len(s) > maxPad {
			return x.String()
		}
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", k-len(s)))
		b.WriteString(s)
	}
	return b.String()
}

// Float returns x rounded to a big.Float of the given precision in bits.
// Values beyond the range of big.Float become infinities or zeros.
func (x Number) Float(prec uint) *big.Float {
	r := new(big.Float).SetPrec(prec)
	if x.Sign() == 0 {
		return r
	}
	r.SetInt(x.m())
	if x.exp == 0 {
		return r
	}
	e := int64(x.exp)
	if e < 0 {
		e = -e
	}
	p := pow10Float(uint64(e), prec+32)
	if x.exp > 0 {
		return r.Mul(r, p)
	}
	return r.Quo(r, p)
}

// Float64 returns the float64 nearest to x.
func (x Number) Float64() float64 {
	f, _ := x.Float(64).Float64()
	return f
}

// pow10Float computes 10^n by repeated squaring in binary floating point.
func pow10Float(n uint64, prec uint) *big.Float {
	r := new(big.Float).SetPrec(prec).SetInt64(1)
	b := new(big.Float).SetPrec(prec).SetInt64(10)
	for n > 0 {
		if n&1 != 0 {
			r.Mul(r, b)
		}
		n >>= 1
		if n > 0 {
			b.Mul(b, b)
		}
		if r.IsInf() {
			break
		}
	}
	return r
}

// digits returns the number of decimal digits in |m|. Zero has one digit.
func digits(m *big.Int) int {
	b := m.BitLen()
	if b == 0 {
		return 1
	}
	// m has at least lo and at most hi digits.
	lo := int(float64(b-1)*math.Log10(2)) + 1
	hi := int(float64(b)*math.Log10(2)) + 1
	if lo == hi {
		return lo
	}
	return len(new(big.Int).Abs(m).String())
}

// align returns the mantissas of x and y scaled to their common smaller
// exponent, along with that exponent.
func align(x, y Number) (*big.Int, *big.Int, int32) {
	switch {
	case x.exp > y.exp:
		return scale(x.m(), int64(x.exp)-int64(y.exp)), y.m(), y.exp
	case x.exp < y.exp:
		return x.m(), scale(y.m(), int64(y.exp)-int64(x.exp)), x.exp
	}
	return x.m(), y.m(), x.exp
}

// scale returns m × 10^n as a new integer.
func scale(m *big.Int, n int64) *big.Int {
	if m.Sign() == 0 {
		return new(big.Int)
	}
	p := new(big.Int).Exp(bigTen, big.NewInt(n), nil)
	return p.Mul(p, m)
}
