// Package recon reconstructs the hidden constant term of a polynomial from
// threshold-shared sample points using exact rational arithmetic. Given n
// points and a threshold k, it recovers the unique degree-(k-1) polynomial
// through some k-subset of the points and reports its value at x = 0, the
// secret. When n exceeds k, every k-subset is evaluated and the value
// supported by the most mutually consistent subsets wins, so a small number
// of corrupted points is voted out without being identified in advance.
//
// All arithmetic is performed over arbitrary-precision rationals; no step
// truncates or rounds.
package recon
