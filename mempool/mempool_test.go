// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"testing"

	"github.com/kexa-network/kexa/wire"
	"github.com/stretchr/testify/require"
)

func TestAddAndDrainPreservesOrder(t *testing.T) {
	p := New()
	tx1 := wire.Transaction{Outputs: []wire.TxOut{{Amount: 1}}}
	tx2 := wire.Transaction{Outputs: []wire.TxOut{{Amount: 2}}}
	p.Add(tx1)
	p.Add(tx2)

	require.Equal(t, 2, p.Len())
	drained := p.Drain()
	require.Equal(t, []wire.Transaction{tx1, tx2}, drained)
	require.Zero(t, p.Len())
}

func TestTxsReturnsCopy(t *testing.T) {
	p := New()
	p.Add(wire.Transaction{Outputs: []wire.TxOut{{Amount: 1}}})
	txs := p.Txs()
	txs[0].Outputs[0].Amount = 999
	require.EqualValues(t, 1, p.Txs()[0].Outputs[0].Amount)
}

func TestSpendsAny(t *testing.T) {
	p := New()
	op := wire.OutPoint{Index: 1}
	p.Add(wire.Transaction{Inputs: []wire.TxIn{{Outpoint: op}}})

	require.True(t, p.SpendsAny(map[wire.OutPoint]struct{}{op: {}}))
	require.False(t, p.SpendsAny(map[wire.OutPoint]struct{}{{Index: 2}: {}}))
}
