// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyTxSignature(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	var pubArr [32]byte
	copy(pubArr[:], pub)

	tx := Transaction{
		Version: 0,
		Inputs: []TxIn{{
			Outpoint: OutPoint{Index: 0},
			Pubkey:   pubArr,
		}},
		Outputs: []TxOut{{Amount: 10}},
	}

	signingHash := TxSigningHash(tx)
	sig := SignTx(priv, signingHash[:])

	require.True(t, VerifyTxSignature(pubArr, sig, signingHash[:]))
}

func TestVerifyTxSignatureRejectsTamperedMessage(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	var pubArr [32]byte
	copy(pubArr[:], pub)

	sig := SignTx(priv, []byte("original"))
	require.False(t, VerifyTxSignature(pubArr, sig, []byte("tampered")))
}

func TestTxSigningHashZeroesSignaturesBeforeHashing(t *testing.T) {
	tx := Transaction{
		Inputs: []TxIn{{Signature: [64]byte{9, 9, 9}}},
	}
	zeroed := tx
	zeroed.Inputs = []TxIn{{Signature: [64]byte{}}}

	require.Equal(t, TxSigningHash(zeroed), TxSigningHash(tx))
}
