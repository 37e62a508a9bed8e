package minsim

import (
	"container/heap"
)

// Results collects the top scoring pairs at or above a similarity threshold.
// Thresholding lives here, outside the estimator, so callers that want the
// full score distribution can skip this collector entirely.
type Results struct {
	TopN      int
	Threshold float64
	scores    Scores
}

// NewResults creates a collector keeping at most topN pairs with similarity
// at or above threshold. A topN of 0 keeps every passing pair.
func NewResults(topN int, threshold float64) *Results {
	scores := make(Scores, 0, topN)

	// priority queue of size TopN so we never sort the full pair collection
	heap.Init(&scores)

	return &Results{
		TopN:      topN,
		Threshold: threshold,
		scores:    scores,
	}
}

// Update records the score if it passes the threshold, evicting the current
// minimum when the collector is full.
func (r *Results) Update(s Score) {
	if s.Similarity < r.Threshold {
		return
	}
	if r.TopN > 0 && r.scores.Len() == r.TopN {
		if s.Similarity > r.scores[0].Similarity {
			heap.Pop(&r.scores)
			heap.Push(&r.scores, s)
		}
	} else {
		heap.Push(&r.scores, s)
	}
}

// Fetch drains the collector and returns the kept scores in descending
// similarity order.
func (r *Results) Fetch() Scores {
	s := make(Scores, len(r.scores))
	for i := len(s) - 1; i >= 0; i-- {
		s[i] = heap.Pop(&r.scores).(Score)
	}
	return s
}

// Scores is a slice of pair Score's ordered as a min-heap on similarity
type Scores []Score

func (s Scores) Len() int {
	return len(s)
}

func (s Scores) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

func (s Scores) Less(i, j int) bool {
	return s[i].Similarity < s[j].Similarity
}

// Push implements the function in the heap interface
func (s *Scores) Push(x interface{}) {
	*s = append(*s, x.(Score))
}

// Pop implements the function in the heap interface
func (s *Scores) Pop() interface{} {
	x := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return x
}

// Similarities returns just the similarity values of the collected scores
func (s Scores) Similarities() []float64 {
	out := make([]float64, 0, len(s))
	for _, score := range s {
		out = append(out, score.Similarity)
	}
	return out
}
