package minsim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Score is the estimated Jaccard similarity of one unordered document pair.
// I and J are positions in the signature slice handed to the estimator, with
// I < J; they follow document load order, not any content-derived identity.
type Score struct {
	I          int     `json:"i"`
	J          int     `json:"j"`
	Similarity float64 `json:"similarity"`
}

// Similarity estimates the Jaccard similarity of two documents as the
// fraction of signature slots that agree. The estimate is unbiased and its
// variance shrinks as the signature length grows.
func Similarity(a, b Signature) (float64, error) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, ErrSignatureLengthMismatch
	}

	matches := 0
	for k := range a {
		if a[k] == b[k] {
			matches++
		}
	}
	return float64(matches) / float64(len(a)), nil
}

// AllPairs scores every unordered pair (i, j), i < j, over the ordered
// signature slice and returns the scores eagerly in row-major pair order.
// This stage is O(n² × numHashes) and dominates the pipeline cost, which
// bounds the practical corpus size; StreamPairs bounds memory instead.
//
// The pair index space is partitioned by row: each worker owns the disjoint
// output range of its row, so the pre-sized result slice needs no locking.
// Cancellation is checked once per row. Workers below 1 means one per CPU.
func AllPairs(ctx context.Context, sigs []Signature, workers int) ([]Score, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	n := len(sigs)
	if n < 2 {
		return nil, nil
	}
	for _, sig := range sigs[1:] {
		if len(sig) != len(sigs[0]) {
			return nil, ErrSignatureLengthMismatch
		}
	}

	scores := make([]Score, n*(n-1)/2)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n-1; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// row i starts after the (n-1) + (n-2) + ... + (n-i) pairs above it
			base := i*(n-1) - i*(i-1)/2
			for j := i + 1; j < n; j++ {
				sim, err := Similarity(sigs[i], sigs[j])
				if err != nil {
					return err
				}
				scores[base+j-i-1] = Score{I: i, J: j, Similarity: sim}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

// StreamPairs walks the same pair space as AllPairs but hands each score to
// fn as it is produced, skipping pairs below minSimilarity during generation
// rather than filtering afterwards. Returning an error from fn stops the
// stream. Memory use is constant in the number of pairs.
func StreamPairs(ctx context.Context, sigs []Signature, minSimilarity float64, fn func(Score) error) error {
	n := len(sigs)
	for i := 0; i < n-1; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for j := i + 1; j < n; j++ {
			sim, err := Similarity(sigs[i], sigs[j])
			if err != nil {
				return err
			}
			if sim < minSimilarity {
				continue
			}
			if err := fn(Score{I: i, J: j, Similarity: sim}); err != nil {
				return err
			}
		}
	}
	return nil
}
