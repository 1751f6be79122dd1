// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"testing"

	"github.com/kexa-network/kexa/consensus"
	"github.com/kexa-network/kexa/wire"
	"github.com/stretchr/testify/require"
)

func genesisBlock(t *testing.T, addr wire.Address, amount uint64) wire.Block {
	t.Helper()
	block := wire.Block{
		Header: wire.BlockHeader{Version: 0, Height: 0, Bits: 0},
		Txs: []wire.Transaction{{
			Version: 0,
			Outputs: []wire.TxOut{{Amount: amount, Address: addr.Payload}},
		}},
	}
	block.Header.MerkleRoot = consensus.MerkleRoot(block.Txs)
	return block
}

func TestApplyBlockGenesisThenExtend(t *testing.T) {
	store := openTemp(t)
	s := New(store, nil)

	pub, _, err := quickKey()
	require.NoError(t, err)
	addr := wire.AddressFromPubkey(pub)

	genesis := genesisBlock(t, addr, 1000)
	require.NoError(t, s.ApplyBlock(genesis))

	tip, err := store.GetTip()
	require.NoError(t, err)
	require.Equal(t, uint64(0), tip.Height)
	require.Equal(t, genesis.Header.Hash(), tip.Hash)

	utxo, err := store.GetUTXO(wire.OutPoint{Txid: genesis.Txs[0].Txid(), Index: 0})
	require.NoError(t, err)
	require.Equal(t, uint64(1000), utxo.Amount)

	next := wire.Block{
		Header: wire.BlockHeader{
			Version:  0,
			PrevHash: genesis.Header.Hash(),
			Height:   1,
			Bits:     0,
		},
		Txs: []wire.Transaction{{
			Version: 0,
			Outputs: []wire.TxOut{{Amount: consensus.BlockSubsidy(1), Address: addr.Payload}},
		}},
	}
	next.Header.MerkleRoot = consensus.MerkleRoot(next.Txs)
	require.NoError(t, s.ApplyBlock(next))

	tip, err = store.GetTip()
	require.NoError(t, err)
	require.Equal(t, uint64(1), tip.Height)
	require.Equal(t, next.Header.Hash(), tip.Hash)
}

func TestApplyBlockSpendsInputsAndCreatesOutputs(t *testing.T) {
	store := openTemp(t)
	s := New(store, nil)

	pub, priv, err := quickKey()
	require.NoError(t, err)
	addr := wire.AddressFromPubkey(pub)

	genesis := genesisBlock(t, addr, 1000)
	require.NoError(t, s.ApplyBlock(genesis))

	spendOp := wire.OutPoint{Txid: genesis.Txs[0].Txid(), Index: 0}
	tx := spendTx(t, spendOp, priv, pub, []wire.TxOut{{Amount: 400, Address: addr.Payload}})

	coinbase := wire.Transaction{
		Version: 0,
		Outputs: []wire.TxOut{{Amount: consensus.BlockSubsidy(1) + 600, Address: addr.Payload}},
	}
	block := wire.Block{
		Header: wire.BlockHeader{
			Version:  0,
			PrevHash: genesis.Header.Hash(),
			Height:   1,
			Bits:     0,
		},
		Txs: []wire.Transaction{coinbase, tx},
	}
	block.Header.MerkleRoot = consensus.MerkleRoot(block.Txs)
	require.NoError(t, s.ApplyBlock(block))

	_, err = store.GetUTXO(spendOp)
	require.Error(t, err)

	created, err := store.GetUTXO(wire.OutPoint{Txid: tx.Txid(), Index: 0})
	require.NoError(t, err)
	require.Equal(t, uint64(400), created.Amount)
}

func TestSubmitTxAddsToMempool(t *testing.T) {
	store := openTemp(t)
	s := New(store, nil)

	pub, priv, err := quickKey()
	require.NoError(t, err)
	addr := wire.AddressFromPubkey(pub)

	genesis := genesisBlock(t, addr, 500)
	require.NoError(t, s.ApplyBlock(genesis))

	op := wire.OutPoint{Txid: genesis.Txs[0].Txid(), Index: 0}
	tx := spendTx(t, op, priv, pub, []wire.TxOut{{Amount: 100, Address: addr.Payload}})

	fee, err := s.SubmitTx(tx)
	require.NoError(t, err)
	require.Equal(t, uint64(400), fee)
	require.Equal(t, 1, s.mempool.Len())
}
