package minsim

import (
	"context"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// maxShingle is the largest value a 32-bit shingle hash can take
	maxShingle = 1<<32 - 1

	// minhashPrime is the first prime above maxShingle, keeping
	// (a*x + b) mod p near-uniform over the shingle domain
	minhashPrime uint64 = 4294967311

	// emptySlot marks a signature slot no shingle hashed below. It exceeds
	// every reachable hash value, so it survives only for empty shingle sets.
	emptySlot uint64 = minhashPrime + 1
)

// HashFamily is a fixed family of universal hash functions of the form
// h_i(x) = (A[i]*x + B[i]) mod p. Each coefficient pool is duplicate-free.
// A family is immutable once drawn and safe for concurrent use.
type HashFamily struct {
	A []uint64
	B []uint64
}

// NewHashFamily draws a family of numHashes hash functions from rnd. A nil
// rnd falls back to a time-seeded source; pass a seeded rand.Rand for
// reproducible signatures.
func NewHashFamily(numHashes int, rnd *rand.Rand) (*HashFamily, error) {
	if numHashes < 1 {
		return nil, ErrInvalidNumHashes
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &HashFamily{
		A: pickCoefficients(numHashes, rnd),
		B: pickCoefficients(numHashes, rnd),
	}, nil
}

// pickCoefficients draws n distinct values uniformly from [0, maxShingle] by
// rejection sampling, redrawing on collision until the pool is full.
func pickCoefficients(n int, rnd *rand.Rand) []uint64 {
	seen := make(map[uint64]struct{}, n)
	out := make([]uint64, 0, n)
	for len(out) < n {
		v := uint64(rnd.Int63n(maxShingle + 1))
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Len returns the number of hash functions in the family, which is also the
// length of every signature it produces.
func (h *HashFamily) Len() int {
	return len(h.A)
}

// Hash applies the i-th hash function to a shingle value. The product cannot
// overflow: a, b and x are all below 2³², so a*x + b < 2⁶⁴.
func (h *HashFamily) Hash(i int, x uint32) uint64 {
	return (h.A[i]*uint64(x) + h.B[i]) % minhashPrime
}

// SignAll signs every document, at most workers at a time; workers below 1
// means one per CPU. The output slice is pre-sized and each goroutine writes
// only its own slot, so no locking is needed. Output order matches input
// order.
func (h *HashFamily) SignAll(ctx context.Context, docs []Document, workers int) ([]Signature, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	sigs := make([]Signature, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sigs[i] = h.Sign(doc.Shingles)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sigs, nil
}
