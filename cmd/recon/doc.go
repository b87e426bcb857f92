// recon reconstructs the constant term of a threshold-shared polynomial
// from encoded shares.
//
// Usage:
// recon recover -i <test case> [--pick k1,k2,...] [--strategy lagrange|gauss]
// recon recover -i <test case> [--workers N] [--json] [-v]
//
// The test case is a JSON document holding a "keys" object with the share
// count n and threshold k, plus one entry per share keyed by its decimal
// x-coordinate, each carrying the share's y-value written in an arbitrary
// radix between 2 and 36. If <test case> is omitted or '-', it is read from
// stdin.
//
// Without --pick, recon evaluates every threshold-sized subset of the
// shares and reports the secret supported by the most subsets, so a few
// corrupted shares are voted out automatically. With --pick, exactly the
// named shares are used and any inconsistency among them is an error.
package main
