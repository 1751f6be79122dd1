// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"github.com/kexa-network/kexa/wire"
)

// SubmitTx runs transaction admission under the chain lock and, on success,
// appends tx to the mempool. It returns the fee the transaction pays.
func (s *State) SubmitTx(tx wire.Transaction) (uint64, error) {
	unlock := s.Lock()
	defer unlock()

	fee, err := ValidateTx(s.storage, s.mempool, tx)
	if err != nil {
		return 0, err
	}
	s.mempool.Add(tx)
	return fee, nil
}

// ApplyBlock validates block against the current tip and, if it passes,
// spends every non-coinbase input, commits every output as a new UTXO, and
// advances the tip — all under the chain lock as a single critical section,
// so a validation failure never leaves storage partially mutated (spec.md
// §5, §7).
func (s *State) ApplyBlock(block wire.Block) error {
	unlock := s.Lock()
	defer unlock()
	return s.applyBlockLocked(block)
}

func (s *State) applyBlockLocked(block wire.Block) error {
	if err := ValidateBlock(s.storage, block); err != nil {
		return err
	}

	for i, tx := range block.Txs {
		if i > 0 {
			for _, in := range tx.Inputs {
				if err := s.storage.DeleteUTXO(in.Outpoint); err != nil {
					return newRuleErrorf(KindInternal, "chain: deleting spent utxo: %v", err)
				}
			}
		}
		txid := tx.Txid()
		for index, out := range tx.Outputs {
			op := wire.OutPoint{Txid: txid, Index: uint32(index)}
			if err := s.storage.PutUTXO(op, out); err != nil {
				return newRuleErrorf(KindInternal, "chain: writing utxo: %v", err)
			}
		}
	}

	hash := block.Header.Hash()
	if err := s.storage.PutBlock(hash, block); err != nil {
		return newRuleErrorf(KindInternal, "chain: writing block: %v", err)
	}
	if err := s.storage.PutHeader(block.Header.Height, block.Header); err != nil {
		return newRuleErrorf(KindInternal, "chain: writing header: %v", err)
	}
	if err := s.storage.PutHeightHash(block.Header.Height, hash); err != nil {
		return newRuleErrorf(KindInternal, "chain: writing height index: %v", err)
	}
	if err := s.storage.SetTip(block.Header.Height, hash); err != nil {
		return newRuleErrorf(KindInternal, "chain: setting tip: %v", err)
	}
	return nil
}
