// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package consensus implements the network-wide rules every node must agree
// on independent of any particular chain state: the merkle commitment over a
// block's transactions, the proof-of-work predicate, and the emission
// schedule governing coinbase rewards.
package consensus

import (
	"crypto/sha256"

	"github.com/kexa-network/kexa/chaincfg"
	"github.com/kexa-network/kexa/chaincfg/chainhash"
	"github.com/kexa-network/kexa/wire"
)

// MerkleRoot computes the root of the binary hash tree over txs' txids. An
// odd layer duplicates its last element before pairing, and an empty list
// roots to the zero hash.
func MerkleRoot(txs []wire.Transaction) chainhash.Hash {
	if len(txs) == 0 {
		return chainhash.Zero
	}
	layer := make([]chainhash.Hash, len(txs))
	for i, tx := range txs {
		layer[i] = tx.Txid()
	}
	for len(layer) > 1 {
		next := make([]chainhash.Hash, 0, (len(layer)+1)/2)
		for i := 0; i < len(layer); i += 2 {
			left := layer[i]
			right := left
			if i+1 < len(layer) {
				right = layer[i+1]
			}
			h := sha256.New()
			h.Write(left[:])
			h.Write(right[:])
			var sum chainhash.Hash
			copy(sum[:], h.Sum(nil))
			next = append(next, sum)
		}
		layer = next
	}
	return layer[0]
}

// CheckPow reports whether header's hash has at least header.Bits leading
// zero bits, checked most-significant-byte first: full zero bytes consume 8
// bits each, and a final partial bit count is checked against the mask
// 0xFF << (8 - remaining).
func CheckPow(header wire.BlockHeader) bool {
	hash := header.Hash()
	remaining := header.Bits
	for _, b := range hash {
		switch {
		case remaining >= 8:
			if b != 0 {
				return false
			}
			remaining -= 8
		case remaining == 0:
			return true
		default:
			mask := byte(0xFF << (8 - remaining))
			return b&mask == 0
		}
	}
	return true
}

// BlockSubsidy returns the coinbase reward owed at height h: zero at the
// genesis height, chaincfg.Subsidy for every height through
// chaincfg.MineableBlocks, and zero for every height beyond it. This is the
// mainnet emission schedule; testnets that want a fixed subsidy for all
// heights > 0 compute it independently rather than through this function.
func BlockSubsidy(height uint64) uint64 {
	if height == 0 || height > chaincfg.MineableBlocks {
		return 0
	}
	return chaincfg.Subsidy
}

// CheckBlockStructure validates the properties of a block that depend only
// on the block itself, not on chain state: a non-empty transaction list
// whose merkle commitment matches the header, and a header that satisfies
// proof of work. Chain-extension rules (height, prev-hash, coinbase
// accounting) live in the chain package, which has access to the tip.
func CheckBlockStructure(block wire.Block) error {
	if len(block.Txs) == 0 {
		return errBlockEmpty
	}
	if MerkleRoot(block.Txs) != block.Header.MerkleRoot {
		return errMerkleMismatch
	}
	if !CheckPow(block.Header) {
		return errPowInvalid
	}
	return nil
}
