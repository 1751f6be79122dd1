// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"time"

	"github.com/kexa-network/kexa/chaincfg"
	"github.com/kexa-network/kexa/chaincfg/chainhash"
	"github.com/kexa-network/kexa/consensus"
	"github.com/kexa-network/kexa/storage"
	"github.com/kexa-network/kexa/wire"
)

// txFee returns the fee tx pays: the sum of its looked-up input UTXOs minus
// the sum of its outputs. A missing input (already spent, or never
// existed) contributes zero rather than failing the whole block assembly,
// matching the reference miner's tolerant fee accounting — a malformed or
// already-mined transaction simply earns the miner nothing for it.
func txFee(store *storage.Storage, tx wire.Transaction) uint64 {
	var inputSum uint64
	for _, in := range tx.Inputs {
		utxo, err := store.GetUTXO(in.Outpoint)
		if err != nil {
			continue
		}
		inputSum += utxo.Amount
	}
	var outputSum uint64
	for _, out := range tx.Outputs {
		outputSum += out.Amount
	}
	if outputSum > inputSum {
		return 0
	}
	return inputSum - outputSum
}

// MineBlock drains the mempool, assembles a block paying the miner's
// address the block subsidy plus the drained transactions' fees, searches
// for a nonce satisfying proof of work, applies the block, and returns its
// hash. The tip-and-mempool snapshot is taken under the chain lock; the
// (CPU-bound) nonce search runs without it, so a long search never blocks
// RPC or P2P traffic against the rest of chain state, and the final
// ApplyBlock re-acquires the lock to validate and apply the block (spec.md
// §4.5, §5).
func (s *State) MineBlock(minerAddr wire.Address) (chainhash.Hash, error) {
	unlock := s.Lock()
	tip, err := s.storage.GetTip()
	if err != nil {
		unlock()
		return chainhash.Hash{}, newRuleErrorf(KindInternal, "chain: reading tip: %v", err)
	}
	drained := s.mempool.Drain()
	unlock()

	var feeTotal uint64
	for _, tx := range drained {
		feeTotal += txFee(s.storage, tx)
	}

	nextHeight := tip.Height + 1
	coinbase := wire.Transaction{
		Version: 0,
		Outputs: []wire.TxOut{{
			Amount:  consensus.BlockSubsidy(nextHeight) + feeTotal,
			Address: minerAddr.Payload,
		}},
	}

	txs := make([]wire.Transaction, 0, 1+len(drained))
	txs = append(txs, coinbase)
	txs = append(txs, drained...)

	header := wire.BlockHeader{
		Version:    0,
		PrevHash:   tip.Hash,
		MerkleRoot: consensus.MerkleRoot(txs),
		Timestamp:  uint64(time.Now().Unix()),
		Bits:       chaincfg.DifficultyBits,
		Nonce:      0,
		Height:     nextHeight,
	}
	for !consensus.CheckPow(header) {
		header.Nonce++
	}

	block := wire.Block{Header: header, Txs: txs}
	if err := s.ApplyBlock(block); err != nil {
		return chainhash.Hash{}, err
	}
	return block.Header.Hash(), nil
}
