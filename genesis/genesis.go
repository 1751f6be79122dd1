// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package genesis builds the first block of either supported network and
// enforces that a node's persisted chain, if any, was bootstrapped from the
// same genesis the node is currently configured for.
package genesis

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/kexa-network/kexa/chaincfg"
	"github.com/kexa-network/kexa/chaincfg/chainhash"
	"github.com/kexa-network/kexa/consensus"
	"github.com/kexa-network/kexa/storage"
	"github.com/kexa-network/kexa/wire"
)

// Built pairs a genesis block with its hash, since both are needed by every
// caller and recomputing the hash is wasteful.
type Built struct {
	Block wire.Block
	Hash  chainhash.Hash
}

// BuildTestnet constructs the deterministic testnet genesis: one coinbase
// transaction paying Subsidy to the all-zero address, timestamp zero, with
// the fixed difficulty and a zero nonce. Its hash is locked to
// chaincfg.TestnetGenesisHashHex; a build that disagrees indicates drift in
// the canonical serializer or an accidental change to one of the fixed
// fields, and startup must refuse to proceed.
func BuildTestnet() (Built, error) {
	coinbase := wire.Transaction{
		Version: 0,
		Outputs: []wire.TxOut{{Amount: chaincfg.Subsidy}},
	}
	header := wire.BlockHeader{
		Version:    0,
		MerkleRoot: consensus.MerkleRoot([]wire.Transaction{coinbase}),
		Timestamp:  0,
		Bits:       chaincfg.DifficultyBits,
		Nonce:      0,
		Height:     0,
	}
	block := wire.Block{Header: header, Txs: []wire.Transaction{coinbase}}
	hash := header.Hash()

	if hash.String() != chaincfg.TestnetGenesisHashHex {
		return Built{}, fmt.Errorf("genesis: testnet genesis hash drifted from locked baseline: got %s, want %s",
			hash.String(), chaincfg.TestnetGenesisHashHex)
	}
	return Built{Block: block, Hash: hash}, nil
}

// Spec is the on-disk JSON schema for a mainnet genesis (spec.md §4.6, §6).
type Spec struct {
	Network         string       `json:"network"`
	Header          HeaderSpec   `json:"header"`
	CoinbaseOutputs []OutputSpec `json:"coinbase_outputs"`
}

// HeaderSpec carries the mainnet genesis header fields an operator supplies;
// PrevHash, MerkleRoot, and Height are always the genesis-fixed values and
// are not configurable.
type HeaderSpec struct {
	Version   uint8  `json:"version"`
	Timestamp uint64 `json:"timestamp"`
	Bits      uint32 `json:"bits"`
	Nonce     uint64 `json:"nonce"`
}

// OutputSpec is a single mainnet genesis coinbase output.
type OutputSpec struct {
	Amount        uint64 `json:"amount"`
	AddressBech32 string `json:"address_bech32"`
}

// LoadSpec reads and parses a genesis spec file from path.
func LoadSpec(path string) (Spec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("genesis: reading spec %s: %w", path, err)
	}
	var spec Spec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return Spec{}, fmt.Errorf("genesis: parsing spec %s: %w", path, err)
	}
	return spec, nil
}

// BuildFromSpec constructs the mainnet genesis block described by spec. Two
// calls with the same spec always produce identical blocks and hashes: the
// only inputs are the spec's own fields, and bech32 address decoding is
// deterministic.
func BuildFromSpec(spec Spec) (Built, error) {
	if spec.Network != "mainnet" {
		return Built{}, fmt.Errorf("genesis: spec network must be %q, got %q", "mainnet", spec.Network)
	}
	if len(spec.CoinbaseOutputs) == 0 {
		return Built{}, fmt.Errorf("genesis: spec must include at least one coinbase output")
	}

	outputs := make([]wire.TxOut, len(spec.CoinbaseOutputs))
	for i, o := range spec.CoinbaseOutputs {
		addr, err := wire.ParseAddress(o.AddressBech32)
		if err != nil {
			return Built{}, fmt.Errorf("genesis: invalid genesis address %q: %w", o.AddressBech32, err)
		}
		outputs[i] = wire.TxOut{Amount: o.Amount, Address: addr.Payload}
	}

	coinbase := wire.Transaction{Version: 0, Outputs: outputs}
	header := wire.BlockHeader{
		Version:    spec.Header.Version,
		MerkleRoot: consensus.MerkleRoot([]wire.Transaction{coinbase}),
		Timestamp:  spec.Header.Timestamp,
		Bits:       spec.Header.Bits,
		Nonce:      spec.Header.Nonce,
		Height:     0,
	}
	block := wire.Block{Header: header, Txs: []wire.Transaction{coinbase}}
	return Built{Block: block, Hash: header.Hash()}, nil
}

// Resolve returns the expected genesis for network, loading and building a
// mainnet spec from genesisPath when network is mainnet.
func Resolve(network chaincfg.Network, genesisPath string) (Built, error) {
	switch network {
	case chaincfg.Testnet:
		return BuildTestnet()
	case chaincfg.Mainnet:
		spec, err := LoadSpec(genesisPath)
		if err != nil {
			return Built{}, err
		}
		return BuildFromSpec(spec)
	default:
		return Built{}, fmt.Errorf("genesis: unknown network %v", network)
	}
}

// EnsureIdentity enforces spec.md §4.6's persistence-identity check: if the
// store already has a tip, its genesis (height_hash[0], falling back to
// hash(header[0])) must match expected; otherwise the store is freshly
// initialized with expected's block, header, height-hash, and tip. When the
// hashes differ, the returned error names network.
func EnsureIdentity(store *storage.Storage, network chaincfg.Network, expected Built) error {
	_, err := store.GetTip()
	if err == nil {
		storedHash, err := store.GetHashByHeight(0)
		if err != nil {
			header, herr := store.GetHeader(0)
			if herr != nil {
				return fmt.Errorf("genesis: existing chain missing genesis at height 0: %w", herr)
			}
			storedHash = header.Hash()
		}
		if storedHash != expected.Hash {
			return fmt.Errorf(
				"genesis mismatch for network %s: expected %s, found %s. choose correct --network/--genesis or wipe data-dir",
				network, expected.Hash.String(), storedHash.String(),
			)
		}
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("genesis: reading tip: %w", err)
	}

	if err := store.PutBlock(expected.Hash, expected.Block); err != nil {
		return fmt.Errorf("genesis: writing genesis block: %w", err)
	}
	if err := store.PutHeader(0, expected.Block.Header); err != nil {
		return fmt.Errorf("genesis: writing genesis header: %w", err)
	}
	if err := store.PutHeightHash(0, expected.Hash); err != nil {
		return fmt.Errorf("genesis: writing genesis height index: %w", err)
	}
	if err := store.SetTip(0, expected.Hash); err != nil {
		return fmt.Errorf("genesis: setting tip: %w", err)
	}
	return nil
}
