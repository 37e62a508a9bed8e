package minsim

// Document pairs a corpus identifier with the document's shingle set. The ID
// is assigned by discovery order, so it is not stable across re-runs when the
// input listing order changes. A document is immutable once built and owned
// by the pipeline run that built it.
type Document struct {
	ID       int
	Name     string
	Shingles *ShingleSet
}

// NewDocument builds a document from an already-extracted shingle set.
func NewDocument(id int, name string, shingles *ShingleSet) Document {
	return Document{
		ID:       id,
		Name:     name,
		Shingles: shingles,
	}
}
