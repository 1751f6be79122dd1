// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mempool holds transactions that have been admitted but not yet
// mined. It is deliberately the simplest possible structure: an ordered,
// unbounded, slice-backed queue with no fee-priority reordering (spec.md
// §4.5, §5) and no eviction policy (spec.md §9 open question (b)). Every
// caller reaches a Pool under the chain package's single lock, so Pool does
// no locking of its own.
package mempool

import "github.com/kexa-network/kexa/wire"

// Pool is an ordered, admitted-transaction queue.
type Pool struct {
	txs []wire.Transaction
}

// New returns an empty pool.
func New() *Pool {
	return &Pool{}
}

// Add appends tx to the end of the pool. Callers are expected to have
// already run admission validation; Add itself performs none.
func (p *Pool) Add(tx wire.Transaction) {
	p.txs = append(p.txs, tx)
}

// Txs returns the pool's current contents in admission order. The returned
// slice, including each transaction's input and output slices, is owned by
// the caller; mutating it does not affect the pool.
func (p *Pool) Txs() []wire.Transaction {
	out := make([]wire.Transaction, len(p.txs))
	for i, tx := range p.txs {
		tx.Inputs = append([]wire.TxIn(nil), tx.Inputs...)
		tx.Outputs = append([]wire.TxOut(nil), tx.Outputs...)
		out[i] = tx
	}
	return out
}

// Len reports the number of pending transactions.
func (p *Pool) Len() int {
	return len(p.txs)
}

// Drain atomically removes and returns every transaction currently in the
// pool, in admission order, leaving the pool empty. Block assembly (mining)
// is the only caller.
func (p *Pool) Drain() []wire.Transaction {
	out := p.txs
	p.txs = nil
	return out
}

// SpendsAny reports whether any transaction already in the pool spends one
// of outpoints. This backs the "double spend in mempool" admission rule
// (spec.md §4.5 step 6).
func (p *Pool) SpendsAny(outpoints map[wire.OutPoint]struct{}) bool {
	for _, tx := range p.txs {
		for _, in := range tx.Inputs {
			if _, ok := outpoints[in.Outpoint]; ok {
				return true
			}
		}
	}
	return false
}
