package recon

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

// Recoverer reconstructs the constant term of a threshold-shared polynomial
// from sample points, tolerating corrupted points when more points than the
// threshold are available. A zero-value Recoverer is ready to use: the
// default strategy is Lagrange, logging is off, and subsets are evaluated
// sequentially.
type Recoverer struct {
	Interp  Interpolator // interpolation strategy for each subset
	Logger  hclog.Logger // diagnostics for discarded subsets
	Workers int          // parallel subset evaluations in voting mode
}

// Candidate is one value reconstructed by at least one subset, with the
// number of supporting subsets and the first supporting subset's indices.
type Candidate struct {
	Value   *big.Int
	Votes   int
	Witness []int

	// firstSeq is the lexicographic sequence number of the witness
	// subset, used to break vote ties deterministically.
	firstSeq int
}

// Result is the outcome of a reconstruction: the winning secret, its
// support, and the full candidate summary in descending vote order.
type Result struct {
	Secret     *big.Int
	Votes      int
	Witness    []int
	Candidates []Candidate
}

// Recover reconstructs the secret from points with threshold k. With
// exactly k points it runs a single interpolation and surfaces any failure.
// With more, it evaluates every k-subset, discards subsets that fail or
// produce a non-integral value, and returns the value supported by the most
// subsets; ties go to the value first produced in lexicographic subset
// order. If no subset produces an integer, Recover fails with
// ErrNoConsistentSubset.
func (r *Recoverer) Recover(points []Point, k int) (*Result, error) {
	r.init()

	if k < 1 {
		return nil, errors.New("threshold must be greater than 0")
	}
	if len(points) < k {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrTooFewPoints, k, len(points))
	}

	if len(points) == k {
		secret, err := r.Interp.SecretAt0(points)
		if err != nil {
			return nil, err
		}

		witness := make([]int, k)
		for i := range witness {
			witness[i] = i
		}

		return &Result{
			Secret:     secret,
			Votes:      1,
			Witness:    witness,
			Candidates: []Candidate{{Value: secret, Votes: 1, Witness: witness}},
		}, nil
	}

	return r.vote(points, k)
}

// RecoverPick reconstructs the secret from exactly the points whose
// x-coordinates match keys. The subset is strictly caller-specified: a key
// list whose length differs from k, or that repeats a key, fails with
// ErrWrongSubsetSize, and a key matching no point fails with ErrUnknownKey,
// in both cases before any arithmetic. Interpolation failures are fatal
// here since a single caller-picked subset leaves nothing to vote over.
func (r *Recoverer) RecoverPick(points []Point, k int, keys []*big.Int) (*big.Int, error) {
	r.init()

	if len(keys) != k {
		return nil, fmt.Errorf("%w: expected %d share keys, got %d", ErrWrongSubsetSize, k, len(keys))
	}

	subset := make([]Point, 0, k)
	seen := make(map[string]struct{}, k)
	for _, key := range keys {
		if _, ok := seen[key.String()]; ok {
			return nil, fmt.Errorf("%w: key %s picked twice", ErrWrongSubsetSize, key)
		}
		seen[key.String()] = struct{}{}

		p, ok := findPoint(points, key)
		if !ok {
			return nil, fmt.Errorf("%w: no share with x = %s", ErrUnknownKey, key)
		}
		subset = append(subset, p)
	}

	return r.Interp.SecretAt0(subset)
}

func (r *Recoverer) init() {
	if r.Interp == nil {
		r.Interp = Lagrange{}
	}
	if r.Logger == nil {
		r.Logger = hclog.NewNullLogger()
	}
	if r.Workers < 1 {
		r.Workers = 1
	}
}

func findPoint(points []Point, key *big.Int) (Point, bool) {
	for _, p := range points {
		if p.X.Cmp(key) == 0 {
			return p, true
		}
	}

	return Point{}, false
}

// vote evaluates every k-subset of points and tallies the integral results.
func (r *Recoverer) vote(points []Point, k int) (*Result, error) {
	combs := NewCombinations(len(points), k)
	r.Logger.Debug("voting over subsets",
		"shares", len(points), "threshold", k, "subsets", combs.Count())

	t := newTally()
	if r.Workers > 1 {
		r.voteParallel(points, combs, t)
	} else {
		seq := 0
		for idxs, ok := combs.Next(); ok; idxs, ok = combs.Next() {
			if v, err := r.attempt(points, idxs); err != nil {
				r.Logger.Debug("subset discarded", "indices", idxs, "err", err)
			} else {
				t.add(v, seq, idxs)
			}
			seq++
		}
	}

	candidates := t.ranked()
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: all %s subsets discarded", ErrNoConsistentSubset, combs.Count())
	}

	best := candidates[0]
	r.Logger.Debug("vote complete",
		"secret", best.Value, "votes", best.Votes, "candidates", len(candidates))

	return &Result{
		Secret:     best.Value,
		Votes:      best.Votes,
		Witness:    best.Witness,
		Candidates: candidates,
	}, nil
}

// attempt runs one interpolation over the points selected by idxs.
func (r *Recoverer) attempt(points []Point, idxs []int) (*big.Int, error) {
	subset := make([]Point, len(idxs))
	for i, idx := range idxs {
		subset[i] = points[idx]
	}

	return r.Interp.SecretAt0(subset)
}

type voteMsg struct {
	seq   int
	idxs  []int
	value *big.Int
}

// voteParallel fans subsets out to Workers goroutines. Votes carry their
// subset's sequence number and are folded into the tally by a single
// collector, so the outcome is identical to the sequential path.
func (r *Recoverer) voteParallel(points []Point, combs *Combinations, t *tally) {
	jobs := make(chan voteMsg, r.Workers)
	votes := make(chan voteMsg, r.Workers)

	var g errgroup.Group
	for w := 0; w < r.Workers; w++ {
		g.Go(func() error {
			for j := range jobs {
				v, err := r.attempt(points, j.idxs)
				if err != nil {
					r.Logger.Debug("subset discarded", "indices", j.idxs, "err", err)

					continue
				}
				votes <- voteMsg{seq: j.seq, idxs: j.idxs, value: v}
			}

			return nil
		})
	}

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for v := range votes {
			t.add(v.value, v.seq, v.idxs)
		}
	}()

	seq := 0
	for idxs, ok := combs.Next(); ok; idxs, ok = combs.Next() {
		jobs <- voteMsg{seq: seq, idxs: idxs}
		seq++
	}
	close(jobs)

	_ = g.Wait() // workers only ever return nil
	close(votes)
	<-collected
}

// tally maps candidate values to their supporting subsets. It is owned by a
// single reconstruction call and never shared.
type tally struct {
	byValue map[string]*Candidate
}

func newTally() *tally {
	return &tally{byValue: make(map[string]*Candidate)}
}

func (t *tally) add(v *big.Int, seq int, witness []int) {
	key := v.String()

	c, ok := t.byValue[key]
	if !ok {
		t.byValue[key] = &Candidate{Value: v, Votes: 1, Witness: witness, firstSeq: seq}

		return
	}

	c.Votes++
	if seq < c.firstSeq {
		c.firstSeq = seq
		c.Witness = witness
	}
}

// ranked returns the candidates ordered by descending votes, with ties
// broken by whichever value was produced by an earlier subset.
func (t *tally) ranked() []Candidate {
	out := make([]Candidate, 0, len(t.byValue))
	for _, c := range t.byValue {
		out = append(out, *c)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Votes != out[j].Votes {
			return out[i].Votes > out[j].Votes
		}

		return out[i].firstSeq < out[j].firstSeq
	})

	return out
}
