package minsim

import (
	"math/rand"
	"testing"
)

func TestNewHashFamily(t *testing.T) {
	testData := []struct {
		numHashes int
		err       error
	}{
		{1, nil},
		{100, nil},
		{500, nil},
		{0, ErrInvalidNumHashes},
		{-5, ErrInvalidNumHashes},
	}
	for _, td := range testData {
		h, err := NewHashFamily(td.numHashes, rand.New(rand.NewSource(42)))
		if err != td.err {
			t.Errorf("expected %v, but got %v", td.err, err)
			continue
		}
		if err != nil {
			continue
		}
		if h.Len() != td.numHashes {
			t.Errorf("expected %d hash functions, but got %d", td.numHashes, h.Len())
		}
	}
}

func TestHashFamilyDistinctCoefficients(t *testing.T) {
	// every seed must yield fully distinct pools no matter how many
	// rejection retries that takes
	for seed := int64(0); seed < 10; seed++ {
		h, err := NewHashFamily(500, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatal(err)
		}
		for name, pool := range map[string][]uint64{"a": h.A, "b": h.B} {
			if len(pool) != 500 {
				t.Fatalf("seed %d: pool %s has %d values, expected 500", seed, name, len(pool))
			}
			seen := make(map[uint64]struct{}, len(pool))
			for _, v := range pool {
				if v > maxShingle {
					t.Errorf("seed %d: pool %s value %d out of range", seed, name, v)
				}
				if _, exists := seen[v]; exists {
					t.Errorf("seed %d: pool %s contains duplicate %d", seed, name, v)
				}
				seen[v] = struct{}{}
			}
		}
	}
}

// dupSource feeds the generator every value twice in a row, forcing a
// collision retry on every other draw.
type dupSource struct {
	n int64
}

func (s *dupSource) Int63() int64 {
	v := s.n / 2
	s.n++
	return v
}

func (s *dupSource) Seed(seed int64) {}

func TestHashFamilyCollisionRetries(t *testing.T) {
	src := &dupSource{}
	h, err := NewHashFamily(100, rand.New(src))
	if err != nil {
		t.Fatal(err)
	}

	// every accepted draw costs a rejected duplicate, so the source must
	// have been consumed well past one draw per coefficient
	if src.n <= 200 {
		t.Fatalf("source consumed %d values, retry path never taken", src.n)
	}

	for name, pool := range map[string][]uint64{"a": h.A, "b": h.B} {
		if len(pool) != 100 {
			t.Fatalf("pool %s has %d values, expected 100", name, len(pool))
		}
		seen := make(map[uint64]struct{}, len(pool))
		for _, v := range pool {
			if _, exists := seen[v]; exists {
				t.Errorf("pool %s contains duplicate %d despite retries", name, v)
			}
			seen[v] = struct{}{}
		}
	}
}

func TestHashFamilyReproducible(t *testing.T) {
	a, err := NewHashFamily(100, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewHashFamily(100, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		if a.A[i] != b.A[i] || a.B[i] != b.B[i] {
			t.Fatalf("families differ at slot %d with the same seed", i)
		}
	}
}

func TestHashFamilyHashRange(t *testing.T) {
	h, err := NewHashFamily(50, rand.New(rand.NewSource(13)))
	if err != nil {
		t.Fatal(err)
	}
	inputs := []uint32{0, 1, 12345, 1<<32 - 1}
	for i := 0; i < h.Len(); i++ {
		for _, x := range inputs {
			if hc := h.Hash(i, x); hc >= minhashPrime {
				t.Errorf("hash %d of %d is %d, not below the prime", i, x, hc)
			}
		}
	}
}
