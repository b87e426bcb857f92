package recon

import "math/big"

// Point is a single share of the secret: one sample (X, Y) of the hidden
// polynomial. X must be distinct across all points of a problem instance.
// The engine never mutates a point.
type Point struct {
	X *big.Int
	Y *big.Int
}

// NewPoint builds a point from int64 coordinates.
func NewPoint(x, y int64) Point {
	return Point{X: big.NewInt(x), Y: big.NewInt(y)}
}
