package recon

import (
	"math/big"
	mrand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// corruptedSextet is the canonical outlier scenario: f(x) = 3x^2 + 2x + 5
// sampled at x = 1..5, plus a corrupted share at x = 6 (true y would be
// 125). With k = 3 the 10 all-genuine subsets agree on 5 while the
// corrupted share scatters its subsets across other values.
func corruptedSextet() []Point {
	points := pointsOn([]int64{5, 2, 3}, []int64{1, 2, 3, 4, 5})

	return append(points, NewPoint(6, 126))
}

func keys(xs ...int64) []*big.Int {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = big.NewInt(x)
	}

	return out
}

func TestRecoverDirect(t *testing.T) {
	var r Recoverer

	points := pointsOn([]int64{5, 2, 3}, []int64{1, 2, 3})

	res, err := r.Recover(points, 3)
	require.NoError(t, err)
	require.Equal(t, int64(5), res.Secret.Int64())
	require.Equal(t, 1, res.Votes)
	require.Equal(t, []int{0, 1, 2}, res.Witness)
}

func TestRecoverDirectSurfacesFailure(t *testing.T) {
	var r Recoverer

	// n == k, so the single non-integral attempt is fatal
	points := []Point{NewPoint(1, 1), NewPoint(3, 2)}

	_, err := r.Recover(points, 2)
	require.ErrorIs(t, err, ErrNonIntegerResult)
}

func TestRecoverTooFewPoints(t *testing.T) {
	var r Recoverer

	_, err := r.Recover(pointsOn([]int64{5, 2, 3}, []int64{1, 2}), 3)
	require.ErrorIs(t, err, ErrTooFewPoints)
}

func TestRecoverVoting(t *testing.T) {
	for _, interp := range []Interpolator{Lagrange{}, Gauss{}} {
		r := Recoverer{Interp: interp}

		res, err := r.Recover(corruptedSextet(), 3)
		require.NoError(t, err)

		// all C(5,3) = 10 genuine subsets agree on 5
		require.Equal(t, int64(5), res.Secret.Int64())
		require.Equal(t, 10, res.Votes)
		require.Equal(t, []int{0, 1, 2}, res.Witness)

		// the winner's support is strictly larger than any rival's
		for _, c := range res.Candidates[1:] {
			require.Less(t, c.Votes, res.Votes)
		}

		// the corrupted share's subsets that happen to produce an
		// integer land on scattered values; the largest rival is 6,
		// first seen from subset {0, 4, 5}
		require.Equal(t, int64(6), res.Candidates[1].Value.Int64())
		require.Equal(t, 2, res.Candidates[1].Votes)
		require.Equal(t, []int{0, 4, 5}, res.Candidates[1].Witness)
	}
}

func TestRecoverVotingParallel(t *testing.T) {
	seq := Recoverer{}
	par := Recoverer{Workers: 4}

	want, err := seq.Recover(corruptedSextet(), 3)
	require.NoError(t, err)

	got, err := par.Recover(corruptedSextet(), 3)
	require.NoError(t, err)

	// the parallel path must be indistinguishable from the sequential
	// one, witnesses and tie-breaks included
	require.Equal(t, want, got)
}

func TestRecoverNoConsistentSubset(t *testing.T) {
	var r Recoverer

	// all three points lie on y = (x+2)/3, so every pair reconstructs
	// the non-integral intercept 2/3
	points := []Point{NewPoint(1, 1), NewPoint(4, 2), NewPoint(7, 3)}

	_, err := r.Recover(points, 2)
	require.ErrorIs(t, err, ErrNoConsistentSubset)
}

func TestRecoverOrderIndependence(t *testing.T) {
	var r Recoverer

	base := corruptedSextet()

	want, err := r.Recover(base, 3)
	require.NoError(t, err)

	rapid.Check(t, func(tt *rapid.T) {
		s1 := rapid.Uint64().Draw(tt, "seed1")
		s2 := rapid.Uint64().Draw(tt, "seed2")

		shuffled := append([]Point(nil), base...)
		rng := mrand.New(mrand.NewPCG(s1, s2))
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got, err := r.Recover(shuffled, 3)
		if err != nil {
			tt.Fatal(err)
		}

		// the winner and the value->votes mapping are order
		// independent; witnesses are "first seen" and may differ
		if got.Secret.Cmp(want.Secret) != 0 {
			tt.Fatalf("winner changed to %s after shuffling", got.Secret)
		}
		if len(got.Candidates) != len(want.Candidates) {
			tt.Fatalf("candidate count changed: %d vs %d", len(got.Candidates), len(want.Candidates))
		}

		votes := make(map[string]int, len(want.Candidates))
		for _, c := range want.Candidates {
			votes[c.Value.String()] = c.Votes
		}
		for _, c := range got.Candidates {
			if votes[c.Value.String()] != c.Votes {
				tt.Fatalf("value %s has %d votes, want %d", c.Value, c.Votes, votes[c.Value.String()])
			}
		}
	})
}

func TestRecoverPick(t *testing.T) {
	var r Recoverer

	points := corruptedSextet()

	secret, err := r.RecoverPick(points, 3, keys(2, 4, 5))
	require.NoError(t, err)
	require.Equal(t, int64(5), secret.Int64())
}

func TestRecoverPickWrongSubsetSize(t *testing.T) {
	var r Recoverer

	points := corruptedSextet()

	_, err := r.RecoverPick(points, 3, keys(2, 4))
	require.ErrorIs(t, err, ErrWrongSubsetSize)

	_, err = r.RecoverPick(points, 3, keys(2, 2, 4))
	require.ErrorIs(t, err, ErrWrongSubsetSize)
}

func TestRecoverPickUnknownKey(t *testing.T) {
	var r Recoverer

	_, err := r.RecoverPick(corruptedSextet(), 3, keys(2, 4, 17))
	require.ErrorIs(t, err, ErrUnknownKey)
}

func TestRecoverPickSurfacesFailure(t *testing.T) {
	var r Recoverer

	// the subset {1, 2, 6} includes the corrupted share and lands on
	// f(0) + 1/10, which is not an integer
	_, err := r.RecoverPick(corruptedSextet(), 3, keys(1, 2, 6))
	require.ErrorIs(t, err, ErrNonIntegerResult)
}

func TestTallyTieBreak(t *testing.T) {
	t.Run("earlier value wins the tie", func(t *testing.T) {
		tl := newTally()
		tl.add(big.NewInt(7), 0, []int{0, 1})
		tl.add(big.NewInt(9), 1, []int{0, 2})
		tl.add(big.NewInt(9), 2, []int{1, 2})
		tl.add(big.NewInt(7), 3, []int{1, 3})

		ranked := tl.ranked()
		require.Equal(t, int64(7), ranked[0].Value.Int64())
		require.Equal(t, 2, ranked[0].Votes)
	})

	t.Run("witness is the lowest-sequence subset", func(t *testing.T) {
		// out-of-order arrival, as under parallel evaluation
		tl := newTally()
		tl.add(big.NewInt(7), 5, []int{1, 3})
		tl.add(big.NewInt(7), 2, []int{0, 2})

		ranked := tl.ranked()
		require.Equal(t, []int{0, 2}, ranked[0].Witness)
	})
}
