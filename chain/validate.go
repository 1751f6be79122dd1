// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"errors"

	"github.com/kexa-network/kexa/consensus"
	"github.com/kexa-network/kexa/storage"
	"github.com/kexa-network/kexa/wire"
)

// CoinbaseMaturity is a compile-time constant fixed at 0 (spec.md §1, §9
// open question (a)): coinbase outputs are spendable the instant they are
// mined. There is no path in this codebase for raising it; it exists so the
// invariant is named and checked once, rather than silently assumed.
const CoinbaseMaturity = 0

func init() {
	if CoinbaseMaturity != 0 {
		panic("chain: CoinbaseMaturity must be 0; v0 has no maturity-enforcement path")
	}
}

// mempoolQuery is the subset of mempool.Pool's read surface ValidateTx
// needs, letting callers pass either a live pool or, for intra-block
// validation, nil (an always-empty pool — spec.md §4.5 step 7 validates
// each non-coinbase tx "against an empty mempool").
type mempoolQuery interface {
	SpendsAny(outpoints map[wire.OutPoint]struct{}) bool
}

type emptyPool struct{}

func (emptyPool) SpendsAny(map[wire.OutPoint]struct{}) bool { return false }

// ValidateTx runs the transaction-admission pipeline from spec.md §4.5
// against store and pool, returning the first rule the transaction fails.
// pool may be nil to validate against an empty mempool (used during block
// validation, where intra-block conflicts are tracked separately).
func ValidateTx(store *storage.Storage, pool mempoolQuery, tx wire.Transaction) (uint64, error) {
	if pool == nil {
		pool = emptyPool{}
	}
	if len(tx.Inputs) == 0 {
		return 0, newRuleError(KindValidation, msgNonCoinbaseNoInputs)
	}

	seen := make(map[wire.OutPoint]struct{}, len(tx.Inputs))
	var inputSum uint64
	for _, in := range tx.Inputs {
		if _, dup := seen[in.Outpoint]; dup {
			return 0, newRuleError(KindValidation, msgDoubleSpendInTx)
		}
		seen[in.Outpoint] = struct{}{}

		utxo, err := store.GetUTXO(in.Outpoint)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return 0, newRuleError(KindUnknownEntity, msgUTXOMissing)
			}
			return 0, newRuleErrorf(KindInternal, "chain: reading utxo: %v", err)
		}
		inputSum += utxo.Amount

		inputAddr := wire.AddressFromPubkeyBytes(in.Pubkey)
		if inputAddr.Payload != utxo.Address {
			return 0, newRuleError(KindValidation, msgPubkeyMismatch)
		}

		signingHash := wire.TxSigningHash(tx)
		if !wire.VerifyTxSignature(in.Pubkey, in.Signature, signingHash[:]) {
			return 0, newRuleError(KindValidation, msgInvalidSignature)
		}
	}

	if pool.SpendsAny(seen) {
		return 0, newRuleError(KindValidation, msgDoubleSpendInMempool)
	}

	var outputSum uint64
	for _, out := range tx.Outputs {
		outputSum += out.Amount
	}
	if outputSum > inputSum {
		return 0, newRuleError(KindValidation, msgOutputsExceedInputs)
	}
	return inputSum - outputSum, nil
}

// ValidateBlock runs the chain-extension and coinbase-accounting pipeline
// from spec.md §4.5 against store's current tip. It does not mutate
// storage; ApplyBlock calls it before writing anything.
func ValidateBlock(store *storage.Storage, block wire.Block) error {
	if len(block.Txs) == 0 {
		return newRuleError(KindValidation, msgBlockEmpty)
	}

	if block.Header.Height == 0 {
		tip, err := store.GetTip()
		if err == nil {
			if tip.Height == 0 && tip.Hash == block.Header.Hash() {
				return nil
			}
			return newRuleError(KindValidation, msgUnexpectedGenesisBlock)
		}
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return newRuleErrorf(KindInternal, "chain: reading tip: %v", err)
	}

	tip, err := store.GetTip()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return newRuleError(KindUnknownEntity, msgTipMissing)
		}
		return newRuleErrorf(KindInternal, "chain: reading tip: %v", err)
	}
	if block.Header.Height != tip.Height+1 {
		return newRuleError(KindValidation, msgUnexpectedHeight)
	}
	if block.Header.PrevHash != tip.Hash {
		return newRuleError(KindValidation, msgPrevHashMismatch)
	}
	if consensus.MerkleRoot(block.Txs) != block.Header.MerkleRoot {
		return newRuleError(KindValidation, msgMerkleMismatch)
	}
	if !consensus.CheckPow(block.Header) {
		return newRuleError(KindValidation, msgPowInvalid)
	}

	coinbase := block.Txs[0]
	if !coinbase.IsCoinbase() {
		return newRuleError(KindValidation, msgCoinbaseInputsPresent)
	}

	spentInBlock := make(map[wire.OutPoint]struct{})
	var totalFees uint64
	for i, tx := range block.Txs {
		if i == 0 {
			continue
		}
		for _, in := range tx.Inputs {
			if _, dup := spentInBlock[in.Outpoint]; dup {
				return newRuleError(KindValidation, msgIntraBlockDoubleSpend)
			}
			spentInBlock[in.Outpoint] = struct{}{}
		}
		fee, err := ValidateTx(store, nil, tx)
		if err != nil {
			return err
		}
		totalFees += fee
	}

	var coinbaseTotal uint64
	for _, out := range coinbase.Outputs {
		coinbaseTotal += out.Amount
	}
	maxReward := consensus.BlockSubsidy(block.Header.Height) + totalFees
	if coinbaseTotal > maxReward {
		return newRuleError(KindValidation, msgCoinbaseExceedsSubsidy)
	}
	return nil
}
