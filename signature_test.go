package minsim

import (
	"context"
	"math/rand"
	"testing"
)

func TestSignLength(t *testing.T) {
	testData := []struct {
		numHashes int
		text      string
	}{
		{1, "the cat sat on the mat"},
		{100, "the cat sat on the mat"},
		{100, "too short"}, // empty shingle set
		{7, ""},
	}
	for _, td := range testData {
		h, err := NewHashFamily(td.numHashes, rand.New(rand.NewSource(1)))
		if err != nil {
			t.Fatal(err)
		}
		set, err := NewShingleSet(td.text, 3)
		if err != nil {
			t.Fatal(err)
		}
		sig := h.Sign(set)
		if len(sig) != td.numHashes {
			t.Errorf("expected signature of length %d, but got %d", td.numHashes, len(sig))
		}
	}
}

func TestSignEmptySetIsAllSentinel(t *testing.T) {
	h, err := NewHashFamily(64, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatal(err)
	}

	for _, set := range []*ShingleSet{NewEmptyShingleSet(), nil} {
		sig := h.Sign(set)
		for i, v := range sig {
			if v != emptySlot {
				t.Errorf("slot %d is %d, expected the sentinel %d", i, v, emptySlot)
			}
		}
	}
}

func TestSignIdenticalSets(t *testing.T) {
	h, err := NewHashFamily(100, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewShingleSet("the quick brown fox jumps over the lazy dog", 3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewShingleSet("the quick brown fox jumps over the lazy dog", 3)
	if err != nil {
		t.Fatal(err)
	}

	sim, err := Similarity(h.Sign(a), h.Sign(b))
	if err != nil {
		t.Fatal(err)
	}
	if sim != 1.0 {
		t.Errorf("identical shingle sets must estimate 1.0, got %f", sim)
	}
}

func TestSignAllPreservesOrder(t *testing.T) {
	h, err := NewHashFamily(32, rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatal(err)
	}

	texts := []string{
		"alpha beta gamma delta epsilon",
		"one two three four five six",
		"zz", // degenerate
		"alpha beta gamma delta epsilon",
	}
	docs := make([]Document, 0, len(texts))
	for i, text := range texts {
		set, err := NewShingleSet(text, 3)
		if err != nil {
			t.Fatal(err)
		}
		docs = append(docs, NewDocument(i, "", set))
	}

	sigs, err := h.SignAll(context.Background(), docs, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(sigs) != len(docs) {
		t.Fatalf("expected %d signatures, but got %d", len(docs), len(sigs))
	}

	// position 2 is the degenerate document, positions 0 and 3 are identical
	for _, v := range sigs[2] {
		if v != emptySlot {
			t.Fatalf("degenerate document signature not all sentinel, got %d", v)
		}
	}
	sim, err := Similarity(sigs[0], sigs[3])
	if err != nil {
		t.Fatal(err)
	}
	if sim != 1.0 {
		t.Errorf("expected signatures at 0 and 3 to match exactly, got %f", sim)
	}
}

func TestSignAllCanceled(t *testing.T) {
	h, err := NewHashFamily(8, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}
	set, err := NewShingleSet("a b c d e", 2)
	if err != nil {
		t.Fatal(err)
	}
	docs := []Document{NewDocument(0, "", set), NewDocument(1, "", set)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := h.SignAll(ctx, docs, 1); err == nil {
		t.Error("expected an error from a canceled context")
	}
}
