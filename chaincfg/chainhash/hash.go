// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash provides the 32-byte hash type used throughout Kexa as
// the product of SHA-256: transaction ids, header hashes, and merkle nodes.
package chainhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// HashSize is the number of bytes in a Hash.
const HashSize = 32

// Hash is a 32-byte hash, always the output of SHA-256.
type Hash [HashSize]byte

// Zero is the all-zero hash, used as the null previous-block/outpoint value.
var Zero = Hash{}

// String returns the lowercase hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether the hash is the all-zero value.
func (h Hash) IsZero() bool {
	return h == Zero
}

// NewFromSlice builds a Hash from a byte slice, which must be exactly
// HashSize bytes long.
func NewFromSlice(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashSize {
		return h, fmt.Errorf("chainhash: invalid length %d, expected %d", len(b), HashSize)
	}
	copy(h[:], b)
	return h, nil
}

// NewFromHex decodes a hex string into a Hash.
func NewFromHex(s string) (Hash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("chainhash: invalid hex: %w", err)
	}
	return NewFromSlice(b)
}

// Sum256 returns the single SHA-256 digest of data.
func Sum256(data []byte) Hash {
	return Hash(sha256.Sum256(data))
}

// DoubleSum256 returns SHA-256(SHA-256(data)).
func DoubleSum256(data []byte) Hash {
	first := sha256.Sum256(data)
	return Hash(sha256.Sum256(first[:]))
}
