package recon

import (
	"fmt"
	"math/big"
)

// Gauss reconstructs the full coefficient vector of the interpolating
// polynomial by solving the generalized Vandermonde system with Gaussian
// elimination over exact rationals. It is roughly twice the arithmetic cost
// of Lagrange for the same subset, but yields every coefficient rather than
// only the value at zero.
type Gauss struct{}

// SecretAt0 implements Interpolator. The secret is the constant coefficient.
func (g Gauss) SecretAt0(points []Point) (*big.Int, error) {
	coeffs, err := g.Coefficients(points)
	if err != nil {
		return nil, err
	}

	return coeffs[len(coeffs)-1].Int()
}

// Coefficients solves for the polynomial's coefficients, highest degree
// first, so the last entry is the constant term. A system with no pivot in
// some column fails with ErrSingularSystem.
func (Gauss) Coefficients(points []Point) ([]Rational, error) {
	k := len(points)

	// row i is [x_i^(k-1), x_i^(k-2), ..., x_i, 1 | y_i]
	m := make([][]Rational, k)
	for i, p := range points {
		m[i] = make([]Rational, k+1)
		pows(m[i][:k], p.X)
		m[i][k] = IntRat(p.Y)
	}

	if err := eliminate(m); err != nil {
		return nil, err
	}

	// back substitute; the diagonal is 1 after pivot normalization
	coeffs := make([]Rational, k)
	for r := k - 1; r >= 0; r-- {
		v := m[r][k]
		for c := r + 1; c < k; c++ {
			v = v.Sub(m[r][c].Mul(coeffs[c]))
		}
		coeffs[r] = v
	}

	return coeffs, nil
}

// eliminate reduces m to upper triangular form with a unit diagonal.
func eliminate(m [][]Rational) error {
	for r := 0; r < len(m); r++ {
		i := findPivot(m, r)
		if i == -1 {
			return fmt.Errorf("%w: no pivot in column %d", ErrSingularSystem, r)
		}
		m[r], m[i] = m[i], m[r]

		pivot := m[r][r]
		for c := r; c < len(m[r]); c++ {
			q, err := m[r][c].Div(pivot)
			if err != nil {
				return err
			}
			m[r][c] = q
		}

		for i := r + 1; i < len(m); i++ {
			f := m[i][r]
			if f.IsZero() {
				continue
			}
			for c := r; c < len(m[i]); c++ {
				m[i][c] = m[i][c].Sub(m[r][c].Mul(f))
			}
		}
	}

	return nil
}

// findPivot returns the index of the first row in m[r:] whose entry in
// column r is nonzero, or -1 otherwise.
func findPivot(m [][]Rational, r int) int {
	for i := r; i < len(m); i++ {
		if !m[i][r].IsZero() {
			return i
		}
	}

	return -1
}

// pows fills v with descending powers of x: [x^(len-1), ..., x^1, 1].
func pows(v []Rational, x *big.Int) {
	p := big.NewInt(1)
	for i := len(v) - 1; i >= 0; i-- {
		v[i] = IntRat(p)
		p = new(big.Int).Mul(p, x)
	}
}
