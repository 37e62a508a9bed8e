package minsim

import (
	"encoding/gob"
	"os"
)

// signatureIndex is the on-disk layout for a cached signature run. The family
// is saved alongside the signatures so a cache is only reused with the exact
// hash functions that produced it.
type signatureIndex struct {
	Family     *HashFamily
	Signatures []Signature
}

// SaveSignatures writes the hash family and its signatures to disk with gob.
// This is a local cache for re-running the pairwise stage without re-signing
// a corpus, not a defined interchange format.
func SaveSignatures(filepath string, family *HashFamily, sigs []Signature) error {
	f, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := gob.NewEncoder(f)
	return enc.Encode(signatureIndex{Family: family, Signatures: sigs})
}

// LoadSignatures reads a signature cache previously written by SaveSignatures.
func LoadSignatures(filepath string) (*HashFamily, []Signature, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	dec := gob.NewDecoder(f)

	var idx signatureIndex
	if err := dec.Decode(&idx); err != nil {
		return nil, nil, err
	}
	return idx.Family, idx.Signatures, nil
}
