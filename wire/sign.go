// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"crypto/ed25519"

	"github.com/kexa-network/kexa/chaincfg/chainhash"
)

// SignTx signs message (normally a transaction's signing hash) with priv
// and returns the raw 64-byte ed25519 signature.
func SignTx(priv ed25519.PrivateKey, message []byte) [64]byte {
	var sig [64]byte
	copy(sig[:], ed25519.Sign(priv, message))
	return sig
}

// VerifyTxSignature reports whether signature is a valid ed25519 signature
// by pubkey over message. The standard library's Verify implements RFC
// 8032 strict verification, rejecting the non-canonical signature
// encodings a malleable signer could otherwise produce.
func VerifyTxSignature(pubkey [32]byte, signature [64]byte, message []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(pubkey[:]), message, signature[:])
}

// TxSigningHash returns the hash every input's Signature must cover: the
// SHA-256 digest of tx's canonical serialization with every input
// signature zeroed out first, so a signature never has to sign over
// itself.
func TxSigningHash(tx Transaction) chainhash.Hash {
	sanitized := Transaction{
		Version: tx.Version,
		Inputs:  make([]TxIn, len(tx.Inputs)),
		Outputs: tx.Outputs,
	}
	for i, in := range tx.Inputs {
		sanitized.Inputs[i] = TxIn{
			Outpoint: in.Outpoint,
			Pubkey:   in.Pubkey,
		}
	}
	return chainhash.Sum256(sanitized.Serialize())
}
