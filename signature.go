package minsim

// Signature is the ordered vector of per-hash-function minimums representing
// one document. Its length is always the family's NumHashes, and a document
// with an empty shingle set keeps the sentinel in every slot.
type Signature []uint64

// Sign produces the minhash signature of a shingle set: for each hash
// function the minimum hash value over every shingle in the set. A nil or
// empty set yields an all-sentinel signature.
func (h *HashFamily) Sign(set *ShingleSet) Signature {
	sig := make(Signature, h.Len())
	for i := range sig {
		sig[i] = emptySlot
	}
	if set == nil {
		return sig
	}

	shingles := set.ToArray()
	for i := range sig {
		a, b := h.A[i], h.B[i]
		min := sig[i]
		for _, s := range shingles {
			if hc := (a*uint64(s) + b) % minhashPrime; hc < min {
				min = hc
			}
		}
		sig[i] = min
	}
	return sig
}
