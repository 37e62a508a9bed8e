package minsim

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Statistics summarizes a completed pairwise run: the shape of the score
// distribution along with the estimator's standard error at a range of true
// similarities. The error column helps judge whether the configured NumHashes
// can separate pairs around a desired threshold.
type Statistics struct {
	NumDocs        int              `json:"num_docs"`
	NumPairs       int              `json:"num_pairs"`
	MeanSimilarity float64          `json:"mean_similarity"`
	StdDev         float64          `json:"std_dev"`
	StandardErrors []EstimatorError `json:"standard_errors"`
}

// EstimatorError is the standard error sqrt(s*(1-s)/numHashes) of the
// match-fraction estimate for a pair whose true Jaccard similarity is
// Similarity. One signature slot matching is a Bernoulli trial with success
// probability equal to the true similarity.
type EstimatorError struct {
	Similarity float64 `json:"similarity"`
	StdErr     float64 `json:"std_err"`
}

// Stats summarizes the scores of a pairwise run over numDocs documents with
// signatures of length numHashes.
func Stats(scores []Score, numDocs, numHashes int) *Statistics {
	s := &Statistics{
		NumDocs:  numDocs,
		NumPairs: len(scores),
	}

	if len(scores) > 0 {
		sims := Scores(scores).Similarities()
		s.MeanSimilarity = stat.Mean(sims, nil)
		if len(sims) > 1 {
			s.StdDev = stat.StdDev(sims, nil)
		}
	}

	simInc := 0.1
	simStart := 0.1
	simEnd := 1.0

	s.StandardErrors = make([]EstimatorError, 0, int((simEnd-simStart)/simInc)+1)
	for sim := simStart; sim < simEnd; sim += simInc {
		se := math.Sqrt(sim * (1 - sim) / float64(numHashes))
		s.StandardErrors = append(s.StandardErrors, EstimatorError{sim, se})
	}
	return s
}
