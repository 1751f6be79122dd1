// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransactionSerializationGolden(t *testing.T) {
	var addr [32]byte
	for i := range addr {
		addr[i] = 1
	}
	tx := Transaction{
		Version: 0,
		Inputs:  nil,
		Outputs: []TxOut{{Amount: 42, Address: addr}},
	}

	got := hex.EncodeToString(tx.Serialize())
	want := "000000000000010000002a000000000000000101010101010101010101010101010101010101010101010101010101010101"
	require.Equal(t, want, got)
}

func TestTransactionRoundTrip(t *testing.T) {
	tx := Transaction{
		Version: 0,
		Inputs: []TxIn{{
			Outpoint:  OutPoint{Index: 3},
			Signature: [64]byte{1, 2, 3},
			Pubkey:    [32]byte{4, 5, 6},
		}},
		Outputs: []TxOut{{Amount: 7, Address: [32]byte{8, 9}}},
	}

	decoded, err := DecodeTransaction(tx.Serialize())
	require.NoError(t, err)
	require.Equal(t, tx, decoded)
}

func TestTransactionIsCoinbase(t *testing.T) {
	require.True(t, Transaction{}.IsCoinbase())
	require.False(t, Transaction{Inputs: []TxIn{{}}}.IsCoinbase())
}

func TestTxidChangesWithContent(t *testing.T) {
	a := Transaction{Outputs: []TxOut{{Amount: 1}}}
	b := Transaction{Outputs: []TxOut{{Amount: 2}}}
	require.NotEqual(t, a.Txid(), b.Txid())
}
