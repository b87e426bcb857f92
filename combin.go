package recon

import "math/big"

// Combinations lazily enumerates all C(n, k) k-element subsets of the index
// set [0, n), each a strictly increasing slice, in lexicographic order
// starting from [0, 1, ..., k-1]. A Combinations value is single-use per
// pass; Reset starts a fresh enumeration.
type Combinations struct {
	n, k    int
	idx     []int
	started bool
	done    bool
}

// NewCombinations creates an enumerator over k-subsets of [0, n).
func NewCombinations(n, k int) *Combinations {
	c := &Combinations{n: n, k: k}
	c.Reset()

	return c
}

// Reset restarts the enumeration from the first subset.
func (c *Combinations) Reset() {
	c.started = false
	c.done = c.k < 0 || c.k > c.n
	c.idx = make([]int, c.k)
	for i := range c.idx {
		c.idx[i] = i
	}
}

// Next returns the next subset and true, or nil and false when the
// enumeration is exhausted. The returned slice is a private copy.
func (c *Combinations) Next() ([]int, bool) {
	if c.done {
		return nil, false
	}

	if !c.started {
		c.started = true

		return c.current(), true
	}

	// rightmost index not yet at its maximum allowed position
	i := c.k - 1
	for i >= 0 && c.idx[i] == i+c.n-c.k {
		i--
	}
	if i < 0 {
		c.done = true

		return nil, false
	}

	c.idx[i]++
	for j := i + 1; j < c.k; j++ {
		c.idx[j] = c.idx[j-1] + 1
	}

	return c.current(), true
}

func (c *Combinations) current() []int {
	out := make([]int, c.k)
	copy(out, c.idx)

	return out
}

// Count returns C(n, k), the total number of subsets the enumeration
// produces.
func (c *Combinations) Count() *big.Int {
	if c.k < 0 || c.k > c.n {
		return big.NewInt(0)
	}

	return new(big.Int).Binomial(int64(c.n), int64(c.k))
}
