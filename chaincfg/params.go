// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg holds the network-parameterized constants: the testnet's
// locked genesis hash, and the emission schedule shared by both networks.
package chaincfg

// DifficultyBits is the number of leading zero bits a header's double-SHA256
// hash must have to satisfy proof of work. Fixed for both networks; there is
// no variable-difficulty retargeting in v0.
const DifficultyBits uint32 = 16

// Emission schedule (locked mainnet parameters, spec.md §4.2).
const (
	// Subsidy is the coinbase reward paid for each mineable block.
	Subsidy uint64 = 50

	// MaxSupply is the total number of coins that will ever exist.
	MaxSupply uint64 = 18_000_000

	// FoundersReserve is carved out of MaxSupply and is not emitted by
	// block_subsidy; v0 does not enforce its accounting at the protocol
	// layer (spec.md §4.2).
	FoundersReserve uint64 = 270_000

	// MineableSupply is the portion of MaxSupply emitted via block
	// subsidies.
	MineableSupply uint64 = MaxSupply - FoundersReserve

	// MineableBlocks is the height at which the last subsidy-bearing block
	// is mined; block_subsidy returns 0 for any height beyond it.
	MineableBlocks uint64 = MineableSupply / Subsidy
)

// TestnetGenesisHashHex is the locked hash of the deterministic testnet
// genesis block (spec.md §4.6, §8 scenario 1). Startup fails if a freshly
// built testnet genesis does not hash to this value.
const TestnetGenesisHashHex = "1b9c1803328d95518a0fd921ce8fd1d5f93c9a88ca02c0b1440248effc763159"

// Network identifies which of the two supported networks a node is running.
type Network int

const (
	// Testnet is the deterministic, zero-configuration network whose
	// genesis block is locked to TestnetGenesisHashHex.
	Testnet Network = iota
	// Mainnet is parameterized by an externally supplied genesis spec
	// file (see the genesis package).
	Mainnet
)

// String returns the lowercase network name used in flags, logs, and error
// messages.
func (n Network) String() string {
	switch n {
	case Testnet:
		return "testnet"
	case Mainnet:
		return "mainnet"
	default:
		return "unknown"
	}
}
