package decimal

import (
	"errors"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

var (
	// ErrDivisionByZero is returned when a divisor has a zero mantissa.
	ErrDivisionByZero = errors.New("decimal: division by zero")
	// ErrOverflow is returned when a result's exponent does not fit in an
	// int32 or its mantissa would exceed a Context's MaxDigits.
	ErrOverflow = errors.New("decimal: overflow")
	// ErrNotFinite is returned when converting an infinity or NaN.
	ErrNotFinite = errors.New("decimal: value is not finite")
)

// Context holds the parameters of arithmetic on Numbers. The zero Context
// divides truncating to integer mantissas and places no bound on mantissas.
type Context struct {
	// Prec is the number of extra decimal digits Quo computes when a division
	// is inexact. It also bounds the search in FromRat.
	Prec int
	// MaxDigits is the largest number of decimal digits any result mantissa
	// may have. Zero or less means no limit.
	MaxDigits int
}

// DefaultContext computes inexact quotients to 28 extra digits and limits
// mantissas to 100000 digits.
var DefaultContext = Context{Prec: 28, MaxDigits: 100000}

// powChunk is the largest exponent Pow applies in one step.
const powChunk = 100

// ln10 is the natural logarithm of 10 to 64 bits.
var ln10 = bigfloat.Log(new(big.Float).SetPrec(64), new(big.Float).SetPrec(64).SetInt64(10))

// bound checks a result against the context's limits.
func (c Context) bound(m *big.Int, exp int64) (Number, error) {
	if exp < math.MinInt32 || exp > math.MaxInt32 {
		return Number{}, ErrOverflow
	}
	if c.MaxDigits > 0 && digits(m) > c.MaxDigits {
		return Number{}, ErrOverflow
	}
	return Number{mant: m, exp: int32(exp)}, nil
}

// Add returns x + y. The result has the smaller of the two exponents, with the
// other mantissa scaled to match, so addition is exact.
func (c Context) Add(x, y Number) (Number, error) {
	d := int64(x.exp) - int64(y.exp)
	if d < 0 {
		d = -d
	}
	if c.MaxDigits > 0 && d > int64(c.MaxDigits) {
		// The aligned mantissa has more than d digits unless it is zero.
		hi := x
		if y.exp > x.exp {
			hi = y
		}
		if hi.Sign() != 0 {
			return Number{}, ErrOverflow
		}
	}
	mx, my, exp := align(x, y)
	return c.bound(new(big.Int).Add(mx, my), int64(exp))
}

// Sub returns x - y, i.e. x + -y.
func (c Context) Sub(x, y Number) (Number, error) {
	return c.Add(x, y.Neg())
}

// Mul returns x × y: the product of the mantissas with the sum of the
// exponents. Multiplication is exact.
func (c Context) Mul(x, y Number) (Number, error) {
	return c.bound(new(big.Int).Mul(x.m(), y.m()), int64(x.exp)+int64(y.exp))
}

// Quo returns x / y. If the mantissa of y divides that of x, the result is
// the exact quotient of the mantissas with the difference of the exponents.
// Otherwise, the mantissa of x is first extended by c.Prec digits and the
// quotient truncated toward zero, then any trailing zeros introduced by the
// extension are removed. So 1/4 is 25e-2, and (x*y)/y is x whenever y is
// nonzero.
func (c Context) Quo(x, y Number) (Number, error) {
	if y.Sign() == 0 {
		return Number{}, ErrDivisionByZero
	}
	exp := int64(x.exp) - int64(y.exp)
	q, r := new(big.Int).QuoRem(x.m(), y.m(), new(big.Int))
	if r.Sign() == 0 || c.Prec <= 0 {
		return c.bound(q, exp)
	}
	q.Quo(scale(x.m(), int64(c.Prec)), y.m())
	exp -= int64(c.Prec)
	for k := 0; k < c.Prec; k++ {
		t, u := new(big.Int).QuoRem(q, bigTen, new(big.Int))
		if u.Sign() != 0 {
			break
		}
		q = t
		exp++
	}
	return c.bound(q, exp)
}

// Pow returns x^n. Positive powers are exact; they are computed in steps of
// at most 100 factors so that each step can be checked against the limits.
// Negative powers are the quotient 1 / x^-n.
func (c Context) Pow(x Number, n int) (Number, error) {
	switch {
	case n == 0:
		return One, nil
	case n < 0:
		if x.Sign() == 0 {
			return Number{}, ErrDivisionByZero
		}
		if n == math.MinInt {
			return Number{}, ErrOverflow
		}
		p, err := c.Pow(x, -n)
		if err != nil {
			return Number{}, err
		}
		return c.Quo(One, p)
	case x.Sign() == 0:
		return Zero, nil
	}
	if m := x.m(); m.CmpAbs(bigOne) == 0 {
		// ±1 × 10^exp needs no multiplication.
		if x.exp != 0 && n > math.MaxInt32 {
			return Number{}, ErrOverflow
		}
		r := new(big.Int).Set(m)
		if n%2 == 0 {
			r.Abs(r)
		}
		return c.bound(r, int64(x.exp)*int64(n))
	}
	if c.tooLarge(x, n) {
		return Number{}, ErrOverflow
	}
	r := One
	for n > 0 {
		k := n
		if k > powChunk {
			k = powChunk
		}
		m := new(big.Int).Exp(x.m(), big.NewInt(int64(k)), nil)
		p, err := c.bound(m, int64(x.exp)*int64(k))
		if err != nil {
			return Number{}, err
		}
		if r, err = c.Mul(r, p); err != nil {
			return Number{}, err
		}
		n -= k
	}
	return r, nil
}

// tooLarge estimates whether the mantissa of x^n would exceed MaxDigits. x
// must have a mantissa of magnitude at least 2.
func (c Context) tooLarge(x Number, n int) bool {
	if c.MaxDigits <= 0 {
		return false
	}
	f := new(big.Float).SetPrec(64).SetInt(new(big.Int).Abs(x.m()))
	bigfloat.Log(f, f)
	f.Quo(f, ln10)
	f.Mul(f, new(big.Float).SetInt64(int64(n)))
	d, _ := f.Float64()
	return d >= float64(c.MaxDigits)
}

// Pow10 returns 10^n, represented as 10^n × 10^0 when n is non-negative and
// as 1 × 10^n otherwise.
func (c Context) Pow10(n int32) (Number, error) {
	if n < 0 {
		return Number{mant: bigOne, exp: n}, nil
	}
	if c.MaxDigits > 0 && int64(n) >= int64(c.MaxDigits) {
		return Number{}, ErrOverflow
	}
	return Number{mant: new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)}, nil
}

// FromRat converts a fraction. It searches exponents 0, -1, -2, … for the
// first at which r is an integer mantissa, stopping at -c.Prec. The second
// result reports whether the conversion is exact; if not, the mantissa is
// truncated toward zero at exponent -c.Prec.
func (c Context) FromRat(r *big.Rat) (Number, bool) {
	n := new(big.Int).Set(r.Num())
	den := r.Denom()
	for k := 0; ; k++ {
		q, rem := new(big.Int).QuoRem(n, den, new(big.Int))
		if rem.Sign() == 0 || k >= c.Prec || k >= math.MaxInt32 {
			return Number{mant: q, exp: int32(-k)}, rem.Sign() == 0
		}
		n.Mul(n, bigTen)
	}
}

// FromBigFloat converts f exactly. Every finite binary floating-point value
// has a terminating decimal expansion, so the conversion never searches; the
// result has the largest exponent not above zero that represents f.
func (c Context) FromBigFloat(f *big.Float) (Number, error) {
	if f.IsInf() {
		return Number{}, ErrNotFinite
	}
	if f.Sign() == 0 {
		return Zero, nil
	}
	// f = i × 2^shift with i an odd integer.
	prec := f.MinPrec()
	mant := new(big.Float)
	e := f.MantExp(mant)
	i, _ := mant.SetMantExp(mant, int(prec)).Int(nil)
	shift := int64(e) - int64(prec)
	if shift >= 0 {
		if shift > math.MaxInt32 || c.MaxDigits > 0 && float64(shift)*math.Log10(2) > float64(c.MaxDigits) {
			return Number{}, ErrOverflow
		}
		return c.bound(i.Lsh(i, uint(shift)), 0)
	}
	// i × 2^-k = i × 5^k × 10^-k, and i × 5^k is odd.
	k := -shift
	if k > math.MaxInt32 || c.MaxDigits > 0 && float64(k)*math.Log10(5) > float64(c.MaxDigits) {
		return Number{}, ErrOverflow
	}
	p := new(big.Int).Exp(big.NewInt(5), big.NewInt(k), nil)
	return c.bound(p.Mul(p, i), -k)
}
