// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"

	"github.com/kexa-network/kexa/chaincfg/chainhash"
)

// OutPoint identifies a single transaction output by the id of the
// transaction that created it and its index within that transaction's
// output list.
type OutPoint struct {
	Txid  chainhash.Hash `json:"txid"`
	Index uint32         `json:"index"`
}

func (o OutPoint) encode(e *encoder) {
	e.writeHash(o.Txid)
	e.writeU32(o.Index)
}

func decodeOutPoint(d *decoder) (OutPoint, error) {
	var o OutPoint
	txid, err := d.readHash()
	if err != nil {
		return o, err
	}
	index, err := d.readU32()
	if err != nil {
		return o, err
	}
	o.Txid = txid
	o.Index = index
	return o, nil
}

// TxIn spends the output identified by Outpoint. Signature is an ed25519
// signature over the transaction's signing hash, and Pubkey is the raw
// 32-byte ed25519 public key that must both hash to the spent output's
// address and verify the signature.
type TxIn struct {
	Outpoint  OutPoint `json:"outpoint"`
	Signature [64]byte `json:"signature"`
	Pubkey    [32]byte `json:"pubkey"`
}

func (in TxIn) encode(e *encoder) {
	in.Outpoint.encode(e)
	e.writeFixed(in.Signature[:])
	e.writeFixed(in.Pubkey[:])
}

func decodeTxIn(d *decoder) (TxIn, error) {
	var in TxIn
	outpoint, err := decodeOutPoint(d)
	if err != nil {
		return in, err
	}
	sig, err := d.readFixed(64)
	if err != nil {
		return in, err
	}
	pub, err := d.readFixed(32)
	if err != nil {
		return in, err
	}
	in.Outpoint = outpoint
	copy(in.Signature[:], sig)
	copy(in.Pubkey[:], pub)
	return in, nil
}

// TxOut credits Amount to Address. Address is stored as the raw 32-byte
// payload rather than an Address value so zero-valued TxOuts decode without
// allocation.
type TxOut struct {
	Amount  uint64   `json:"amount"`
	Address [32]byte `json:"address"`
}

func (out TxOut) encode(e *encoder) {
	e.writeU64(out.Amount)
	e.writeFixed(out.Address[:])
}

func decodeTxOut(d *decoder) (TxOut, error) {
	var out TxOut
	amount, err := d.readU64()
	if err != nil {
		return out, err
	}
	addr, err := d.readFixed(32)
	if err != nil {
		return out, err
	}
	out.Amount = amount
	copy(out.Address[:], addr)
	return out, nil
}

// Serialize returns the canonical encoding of out: a leading ProtocolVersion
// byte followed by its fields. Storage persists UTXO records in this form
// (spec.md §4.4).
func (out TxOut) Serialize() []byte {
	e := newEncoder()
	e.writeByte(ProtocolVersion)
	out.encode(e)
	return e.bytes()
}

// DecodeTxOut parses a TxOut previously produced by Serialize.
func DecodeTxOut(b []byte) (TxOut, error) {
	d := newDecoder(b)
	version, err := d.readByte()
	if err != nil {
		return TxOut{}, err
	}
	if version != ProtocolVersion {
		return TxOut{}, fmt.Errorf("wire: unsupported protocol version %d", version)
	}
	return decodeTxOut(d)
}

// Transaction moves value from the outputs named in Inputs to new Outputs.
// A transaction with no inputs is a coinbase, valid only as the first
// transaction of a block.
type Transaction struct {
	Version uint8   `json:"version"`
	Inputs  []TxIn  `json:"inputs"`
	Outputs []TxOut `json:"outputs"`
}

func (tx Transaction) encode(e *encoder) {
	e.writeByte(tx.Version)
	e.writeU32(uint32(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		in.encode(e)
	}
	e.writeU32(uint32(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		out.encode(e)
	}
}

func decodeTransaction(d *decoder) (Transaction, error) {
	var tx Transaction
	version, err := d.readByte()
	if err != nil {
		return tx, err
	}
	numIn, err := d.readU32()
	if err != nil {
		return tx, err
	}
	inputs := make([]TxIn, numIn)
	for i := range inputs {
		in, err := decodeTxIn(d)
		if err != nil {
			return tx, err
		}
		inputs[i] = in
	}
	numOut, err := d.readU32()
	if err != nil {
		return tx, err
	}
	outputs := make([]TxOut, numOut)
	for i := range outputs {
		out, err := decodeTxOut(d)
		if err != nil {
			return tx, err
		}
		outputs[i] = out
	}
	tx.Version = version
	tx.Inputs = inputs
	tx.Outputs = outputs
	return tx, nil
}

// Serialize returns the canonical encoding of tx: a leading ProtocolVersion
// byte followed by tx's fields in declaration order. This, not txid() or
// any in-memory representation, is the authoritative form signed and
// hashed throughout Kexa.
func (tx Transaction) Serialize() []byte {
	e := newEncoder()
	e.writeByte(ProtocolVersion)
	tx.encode(e)
	return e.bytes()
}

// DecodeTransaction parses a transaction previously produced by Serialize.
func DecodeTransaction(b []byte) (Transaction, error) {
	d := newDecoder(b)
	version, err := d.readByte()
	if err != nil {
		return Transaction{}, err
	}
	if version != ProtocolVersion {
		return Transaction{}, fmt.Errorf("wire: unsupported protocol version %d", version)
	}
	return decodeTransaction(d)
}

// Txid is the SHA-256 digest of tx's canonical serialization.
func (tx Transaction) Txid() chainhash.Hash {
	return chainhash.Sum256(tx.Serialize())
}

// IsCoinbase reports whether tx has no inputs, the defining property of the
// single reward transaction a block is allowed to place first.
func (tx Transaction) IsCoinbase() bool {
	return len(tx.Inputs) == 0
}
