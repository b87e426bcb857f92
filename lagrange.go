package recon

import "math/big"

// Interpolator reconstructs the value at x = 0 of the unique polynomial of
// degree len(points)-1 passing through the given points.
type Interpolator interface {
	SecretAt0(points []Point) (*big.Int, error)
}

// Lagrange evaluates the interpolating polynomial at x = 0 directly, without
// computing its coefficients. For each sample i it accumulates the basis
// value
//
//	L_i(0) = Π_{j≠i} (-x_j) / (x_i - x_j)
//
// as an exact rational and sums y_i * L_i(0). Two points sharing an
// x-coordinate fail with ErrDivisionByZero; a non-integral sum fails with
// ErrNonIntegerResult.
type Lagrange struct{}

// SecretAt0 implements Interpolator. It costs O(k^2) rational operations.
func (Lagrange) SecretAt0(points []Point) (*big.Int, error) {
	var sum Rational

	for i, p := range points {
		num := big.NewInt(1)
		den := big.NewInt(1)

		for j, q := range points {
			if j == i {
				continue
			}
			num.Mul(num, new(big.Int).Neg(q.X))
			den.Mul(den, new(big.Int).Sub(p.X, q.X))
		}

		basis, err := NewRational(num, den)
		if err != nil {
			return nil, err
		}

		sum = sum.Add(IntRat(p.Y).Mul(basis))
	}

	return sum.Int()
}
