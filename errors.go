package recon

import "errors"

var (
	// ErrDivisionByZero is returned when a rational is constructed with a
	// zero denominator or used as a zero divisor. During interpolation it
	// indicates two points in the subset share an x-coordinate.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrNonIntegerResult is returned when an interpolation attempt
	// produces a value that is not an exact integer.
	ErrNonIntegerResult = errors.New("result is not an integer")

	// ErrSingularSystem is returned when the Vandermonde system for a
	// subset has no usable pivot in some column.
	ErrSingularSystem = errors.New("linear system is singular")

	// ErrNoConsistentSubset is returned when voting exhausts every
	// k-subset without a single integral result.
	ErrNoConsistentSubset = errors.New("no subset of shares is consistent")

	// ErrWrongSubsetSize is returned when a caller-picked subset does not
	// contain exactly the threshold number of distinct share keys.
	ErrWrongSubsetSize = errors.New("wrong subset size")

	// ErrUnknownKey is returned when a caller-picked share key matches no
	// point.
	ErrUnknownKey = errors.New("unknown share key")

	// ErrTooFewPoints is returned when fewer points than the threshold
	// are supplied.
	ErrTooFewPoints = errors.New("not enough points")
)
