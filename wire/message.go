// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"

	"github.com/kexa-network/kexa/chaincfg/chainhash"
)

// messageKind tags the variant of a Message on the wire. Values match the
// declaration order below and must never be reordered or reused.
type messageKind byte

const (
	kindVersion messageKind = iota
	kindGetBlock
	kindGetBlocks
	kindBlock
	kindGetTip
	kindTip
)

// Message is the peer-to-peer protocol's tagged union. Exactly one of the
// concrete Msg* types below satisfies it.
type Message interface {
	kind() messageKind
	encode(e *encoder)
}

// MsgVersion announces a peer's current height and tip, sent once when a
// connection is established.
type MsgVersion struct {
	Height uint64
	Tip    chainhash.Hash
}

func (m MsgVersion) kind() messageKind { return kindVersion }
func (m MsgVersion) encode(e *encoder) {
	e.writeU64(m.Height)
	e.writeHash(m.Tip)
}

// MsgGetBlock requests the single block identified by Hash.
type MsgGetBlock struct {
	Hash chainhash.Hash
}

func (m MsgGetBlock) kind() messageKind { return kindGetBlock }
func (m MsgGetBlock) encode(e *encoder) {
	e.writeHash(m.Hash)
}

// MsgGetBlocks requests every block from StartHeight to the receiver's tip,
// inclusive, sent in ascending height order as a stream of MsgBlock.
type MsgGetBlocks struct {
	StartHeight uint64
}

func (m MsgGetBlocks) kind() messageKind { return kindGetBlocks }
func (m MsgGetBlocks) encode(e *encoder) {
	e.writeU64(m.StartHeight)
}

// MsgBlock carries a full block, sent in response to MsgGetBlock or as part
// of a MsgGetBlocks backfill stream.
type MsgBlock struct {
	Block Block
}

func (m MsgBlock) kind() messageKind { return kindBlock }
func (m MsgBlock) encode(e *encoder) {
	m.Block.encode(e)
}

// MsgGetTip requests the receiver's current height and tip hash. Sent
// periodically on an idle connection to keep sync progressing.
type MsgGetTip struct{}

func (m MsgGetTip) kind() messageKind { return kindGetTip }
func (m MsgGetTip) encode(e *encoder) {}

// MsgTip reports the sender's current height and tip hash, sent in
// response to MsgGetTip or in reply to a MsgVersion/MsgTip whose sender the
// receiver's tip-exchange decision says should hear its tip.
type MsgTip struct {
	Height uint64
	Tip    chainhash.Hash
}

func (m MsgTip) kind() messageKind { return kindTip }
func (m MsgTip) encode(e *encoder) {
	e.writeU64(m.Height)
	e.writeHash(m.Tip)
}

// encodeMessagePayload returns msg's borsh-style encoding: a one-byte
// variant tag followed by its fields, with no length prefix or protocol
// version byte (those belong to the framing codec, not the message body).
func encodeMessagePayload(msg Message) []byte {
	e := newEncoder()
	e.writeByte(byte(msg.kind()))
	msg.encode(e)
	return e.bytes()
}

func decodeMessagePayload(b []byte) (Message, error) {
	d := newDecoder(b)
	tag, err := d.readByte()
	if err != nil {
		return nil, err
	}
	switch messageKind(tag) {
	case kindVersion:
		height, err := d.readU64()
		if err != nil {
			return nil, err
		}
		tip, err := d.readHash()
		if err != nil {
			return nil, err
		}
		return MsgVersion{Height: height, Tip: tip}, nil
	case kindGetBlock:
		hash, err := d.readHash()
		if err != nil {
			return nil, err
		}
		return MsgGetBlock{Hash: hash}, nil
	case kindGetBlocks:
		startHeight, err := d.readU64()
		if err != nil {
			return nil, err
		}
		return MsgGetBlocks{StartHeight: startHeight}, nil
	case kindBlock:
		blk, err := decodeBlock(d)
		if err != nil {
			return nil, err
		}
		return MsgBlock{Block: blk}, nil
	case kindGetTip:
		return MsgGetTip{}, nil
	case kindTip:
		height, err := d.readU64()
		if err != nil {
			return nil, err
		}
		tip, err := d.readHash()
		if err != nil {
			return nil, err
		}
		return MsgTip{Height: height, Tip: tip}, nil
	default:
		return nil, fmt.Errorf("wire: unknown message tag %d", tag)
	}
}
