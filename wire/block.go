// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"

	"github.com/kexa-network/kexa/chaincfg/chainhash"
)

// BlockHeader commits to a block's ancestry, contents, and proof of work.
type BlockHeader struct {
	Version    uint8
	PrevHash   chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  uint64
	Bits       uint32
	Nonce      uint64
	Height     uint64
}

func (h BlockHeader) encode(e *encoder) {
	e.writeByte(h.Version)
	e.writeHash(h.PrevHash)
	e.writeHash(h.MerkleRoot)
	e.writeU64(h.Timestamp)
	e.writeU32(h.Bits)
	e.writeU64(h.Nonce)
	e.writeU64(h.Height)
}

func decodeBlockHeader(d *decoder) (BlockHeader, error) {
	var h BlockHeader
	version, err := d.readByte()
	if err != nil {
		return h, err
	}
	prevHash, err := d.readHash()
	if err != nil {
		return h, err
	}
	merkleRoot, err := d.readHash()
	if err != nil {
		return h, err
	}
	timestamp, err := d.readU64()
	if err != nil {
		return h, err
	}
	bits, err := d.readU32()
	if err != nil {
		return h, err
	}
	nonce, err := d.readU64()
	if err != nil {
		return h, err
	}
	height, err := d.readU64()
	if err != nil {
		return h, err
	}
	h.Version = version
	h.PrevHash = prevHash
	h.MerkleRoot = merkleRoot
	h.Timestamp = timestamp
	h.Bits = bits
	h.Nonce = nonce
	h.Height = height
	return h, nil
}

// Serialize returns the canonical encoding of h: a leading ProtocolVersion
// byte followed by h's fields in declaration order.
func (h BlockHeader) Serialize() []byte {
	e := newEncoder()
	e.writeByte(ProtocolVersion)
	h.encode(e)
	return e.bytes()
}

// DecodeBlockHeader parses a header previously produced by Serialize.
func DecodeBlockHeader(b []byte) (BlockHeader, error) {
	d := newDecoder(b)
	version, err := d.readByte()
	if err != nil {
		return BlockHeader{}, err
	}
	if version != ProtocolVersion {
		return BlockHeader{}, fmt.Errorf("wire: unsupported protocol version %d", version)
	}
	return decodeBlockHeader(d)
}

// Hash is the double SHA-256 digest of h's canonical serialization, and is
// the value proof of work is checked against.
func (h BlockHeader) Hash() chainhash.Hash {
	return chainhash.DoubleSum256(h.Serialize())
}

// Block pairs a header with the transactions it commits to via MerkleRoot.
// The first transaction, if any, must be the block's coinbase.
type Block struct {
	Header BlockHeader
	Txs    []Transaction
}

func (b Block) encode(e *encoder) {
	b.Header.encode(e)
	e.writeU32(uint32(len(b.Txs)))
	for _, tx := range b.Txs {
		tx.encode(e)
	}
}

// Serialize returns the canonical encoding of b: a leading ProtocolVersion
// byte followed by the header and then each transaction in order.
func (b Block) Serialize() []byte {
	e := newEncoder()
	e.writeByte(ProtocolVersion)
	b.encode(e)
	return e.bytes()
}

// DecodeBlock parses a block previously produced by Serialize.
func DecodeBlock(b []byte) (Block, error) {
	d := newDecoder(b)
	version, err := d.readByte()
	if err != nil {
		return Block{}, err
	}
	if version != ProtocolVersion {
		return Block{}, fmt.Errorf("wire: unsupported protocol version %d", version)
	}
	return decodeBlock(d)
}

func decodeBlock(d *decoder) (Block, error) {
	var blk Block
	header, err := decodeBlockHeader(d)
	if err != nil {
		return blk, err
	}
	numTxs, err := d.readU32()
	if err != nil {
		return blk, err
	}
	txs := make([]Transaction, numTxs)
	for i := range txs {
		tx, err := decodeTransaction(d)
		if err != nil {
			return blk, err
		}
		txs[i] = tx
	}
	blk.Header = header
	blk.Txs = txs
	return blk, nil
}
