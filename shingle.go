package minsim

import (
	"hash/crc32"
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// ShingleSet is the set of 32-bit shingle hashes for one document. Each entry
// hashes one window of ShingleSize consecutive words; duplicate windows
// collapse to a single entry.
type ShingleSet struct {
	rb *roaring.Bitmap
}

// NewShingleSet shingles already-normalized text with a k-word sliding
// window. Windows are rejoined with single spaces and hashed with CRC-32
// (IEEE), which is stable across runs and processes. Text with fewer than k
// words yields an empty set, not an error.
func NewShingleSet(text string, k int) (*ShingleSet, error) {
	if k < 1 {
		return nil, ErrInvalidShingleSize
	}

	rb := roaring.New()
	words := strings.Fields(text)
	for i := 0; i+k <= len(words); i++ {
		shingle := strings.Join(words[i:i+k], " ")
		rb.Add(crc32.ChecksumIEEE([]byte(shingle)))
	}
	return &ShingleSet{rb: rb}, nil
}

// NewEmptyShingleSet returns a set with no shingles.
func NewEmptyShingleSet() *ShingleSet {
	return &ShingleSet{rb: roaring.New()}
}

// Add inserts a raw shingle hash into the set.
func (s *ShingleSet) Add(v uint32) {
	s.rb.Add(v)
}

// Contains reports whether the shingle hash is in the set.
func (s *ShingleSet) Contains(v uint32) bool {
	return s.rb.Contains(v)
}

// Size returns the number of distinct shingles in the set.
func (s *ShingleSet) Size() int {
	return int(s.rb.GetCardinality())
}

// ToArray returns the shingle hashes in ascending order.
func (s *ShingleSet) ToArray() []uint32 {
	return s.rb.ToArray()
}

// Jaccard computes the exact Jaccard similarity |A∩B| / |A∪B| with the other
// set. Two empty sets are considered identical with similarity 1, matching
// the minhash estimate for two all-sentinel signatures.
func (s *ShingleSet) Jaccard(o *ShingleSet) float64 {
	inter := s.rb.AndCardinality(o.rb)
	union := s.rb.GetCardinality() + o.rb.GetCardinality() - inter
	if union == 0 {
		return 1
	}
	return float64(inter) / float64(union)
}
