package recon

import (
	"fmt"
	"math/big"
)

var bigOne = big.NewInt(1)

// Rational is an exact fraction over arbitrary-precision integers, always
// stored in lowest terms with a positive denominator. Rationals are value
// types: every operation returns a fresh, normalized rational and never
// mutates its operands. The zero value is 0/1 and ready to use.
type Rational struct {
	num *big.Int
	den *big.Int
}

// NewRational builds a normalized rational num/den. A zero denominator
// fails with ErrDivisionByZero. Both arguments are copied.
func NewRational(num, den *big.Int) (Rational, error) {
	if den.Sign() == 0 {
		return Rational{}, fmt.Errorf("%w: rational %s/0", ErrDivisionByZero, num)
	}

	n := new(big.Int).Set(num)
	d := new(big.Int).Set(den)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}

	return reduce(n, d), nil
}

// IntRat builds the rational x/1. The argument is copied.
func IntRat(x *big.Int) Rational {
	return Rational{num: new(big.Int).Set(x), den: big.NewInt(1)}
}

// reduce divides n and d by their gcd. It owns its arguments and requires
// d > 0. GCD(0, d) is d, so 0/d collapses to 0/1.
func reduce(n, d *big.Int) Rational {
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(n), d)
	n.Quo(n, g)
	d.Quo(d, g)

	return Rational{num: n, den: d}
}

// norm substitutes 0/1 for the zero value so that methods can rely on the
// num/den fields being set.
func (r Rational) norm() Rational {
	if r.den == nil {
		return Rational{num: big.NewInt(0), den: big.NewInt(1)}
	}

	return r
}

// Add returns r + o.
func (r Rational) Add(o Rational) Rational {
	r, o = r.norm(), o.norm()

	n := new(big.Int).Mul(r.num, o.den)
	n.Add(n, new(big.Int).Mul(o.num, r.den))

	return reduce(n, new(big.Int).Mul(r.den, o.den))
}

// Sub returns r - o.
func (r Rational) Sub(o Rational) Rational {
	return r.Add(o.Neg())
}

// Mul returns r * o.
func (r Rational) Mul(o Rational) Rational {
	r, o = r.norm(), o.norm()

	n := new(big.Int).Mul(r.num, o.num)

	return reduce(n, new(big.Int).Mul(r.den, o.den))
}

// Div returns r / o. A zero divisor fails with ErrDivisionByZero.
func (r Rational) Div(o Rational) (Rational, error) {
	r, o = r.norm(), o.norm()

	if o.num.Sign() == 0 {
		return Rational{}, fmt.Errorf("%w: dividing %s by zero", ErrDivisionByZero, r)
	}

	n := new(big.Int).Mul(r.num, o.den)
	d := new(big.Int).Mul(r.den, o.num)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}

	return reduce(n, d), nil
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	r = r.norm()

	return Rational{num: new(big.Int).Neg(r.num), den: new(big.Int).Set(r.den)}
}

// IsZero reports whether r is exactly zero.
func (r Rational) IsZero() bool {
	return r.norm().num.Sign() == 0
}

// IsInt reports whether r is an integer, i.e. its reduced denominator is 1.
func (r Rational) IsInt() bool {
	return r.norm().den.Cmp(bigOne) == 0
}

// Int returns the integer value of r. A non-integral rational fails with
// ErrNonIntegerResult.
func (r Rational) Int() (*big.Int, error) {
	r = r.norm()

	if r.den.Cmp(bigOne) != 0 {
		return nil, fmt.Errorf("%w: %s", ErrNonIntegerResult, r)
	}

	return new(big.Int).Set(r.num), nil
}

// Num returns a copy of the reduced numerator.
func (r Rational) Num() *big.Int {
	return new(big.Int).Set(r.norm().num)
}

// Den returns a copy of the reduced denominator. It is always positive.
func (r Rational) Den() *big.Int {
	return new(big.Int).Set(r.norm().den)
}

// Equal reports whether r and o represent the same value.
func (r Rational) Equal(o Rational) bool {
	r, o = r.norm(), o.norm()

	return r.num.Cmp(o.num) == 0 && r.den.Cmp(o.den) == 0
}

func (r Rational) String() string {
	r = r.norm()

	if r.den.Cmp(bigOne) == 0 {
		return r.num.String()
	}

	return r.num.String() + "/" + r.den.String()
}
