package minsim

import (
	"context"
	"errors"
	"math/rand"
	"runtime"
)

var (
	ErrInvalidShingleSize      = errors.New("invalid shingle size, must be at least 1")
	ErrInvalidNumHashes        = errors.New("invalid number of hashes, must be at least 1")
	ErrInvalidThreshold        = errors.New("invalid similarity threshold, must be between 0 and 1 inclusive")
	ErrInvalidNumWorkers       = errors.New("invalid number of workers, must be at least 0")
	ErrEmptyCorpus             = errors.New("no documents in corpus")
	ErrSignatureLengthMismatch = errors.New("signature length mismatch")
)

// Options represents a set of parameters that configure a similarity run
type Options struct {
	// ShingleSize is the number of consecutive words hashed into each shingle
	ShingleSize int

	// NumHashes is the length of every minhash signature. More hashes lowers
	// the variance of the similarity estimate at a linear cost in signature
	// generation and pairwise comparison time.
	NumHashes int

	// SimilarityThreshold is carried for downstream reporting and filtering.
	// The pairwise estimator itself scores every pair regardless of threshold.
	SimilarityThreshold float64

	// NumWorkers bounds the goroutines used for signature generation and
	// pairwise scoring. Zero means one worker per CPU.
	NumWorkers int
}

// NewDefaultOptions returns a set of default options for a similarity run
func NewDefaultOptions() *Options {
	return &Options{
		ShingleSize:         3,   // word trigrams
		NumHashes:           100, // standard error at s=0.5 is 0.05
		SimilarityThreshold: 0.5,
	}
}

// Validate returns an error if any of the options are invalid
func (o *Options) Validate() error {
	if o.ShingleSize < 1 {
		return ErrInvalidShingleSize
	}

	if o.NumHashes < 1 {
		return ErrInvalidNumHashes
	}

	if o.SimilarityThreshold < 0 || o.SimilarityThreshold > 1 {
		return ErrInvalidThreshold
	}

	if o.NumWorkers < 0 {
		return ErrInvalidNumWorkers
	}

	return nil
}

func (o *Options) workers() int {
	if o.NumWorkers > 0 {
		return o.NumWorkers
	}
	return runtime.NumCPU()
}

// MinSim estimates pairwise document similarity with minhash signatures. The
// hash family is drawn once at construction and shared read-only by every
// stage, so a single instance may sign documents from multiple goroutines.
type MinSim struct {
	Opt    *Options
	Family *HashFamily
}

// New returns a MinSim ready to sign documents, drawing its hash family from
// a time-seeded source.
func New(opt *Options) (*MinSim, error) {
	return NewWithSource(opt, nil)
}

// NewWithSource constructs a MinSim drawing its hash family from rnd, which
// makes signatures reproducible across runs. A nil rnd falls back to a
// time-seeded source.
func NewWithSource(opt *Options, rnd *rand.Rand) (*MinSim, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	family, err := NewHashFamily(opt.NumHashes, rnd)
	if err != nil {
		return nil, err
	}
	return &MinSim{Opt: opt, Family: family}, nil
}

// Signatures generates one minhash signature per document, preserving the
// input order. Result indices elsewhere refer to positions in this slice.
func (m *MinSim) Signatures(ctx context.Context, docs []Document) ([]Signature, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}
	return m.Family.SignAll(ctx, docs, m.Opt.workers())
}

// Run executes the full pipeline over an ordered corpus: signature generation
// followed by eager scoring of every unordered pair. The pairwise stage is
// O(numDocs² × NumHashes) and dominates the total cost; for large corpora
// prefer Signatures followed by StreamPairs with a cutoff.
func (m *MinSim) Run(ctx context.Context, docs []Document) ([]Score, error) {
	sigs, err := m.Signatures(ctx, docs)
	if err != nil {
		return nil, err
	}
	return AllPairs(ctx, sigs, m.Opt.workers())
}
