// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire defines Kexa's on-chain and on-wire types: transactions,
// block headers, addresses, and the peer-to-peer message set, along with
// their canonical binary encodings.
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/kexa-network/kexa/chaincfg/chainhash"
)

// ProtocolVersion is the single leading byte every top-level serialized
// transaction and block header carries. There is only one wire version in
// v0; the byte exists so a future version can be introduced without
// ambiguity.
const ProtocolVersion uint8 = 0

// encoder accumulates a canonical, field-order encoding: fixed-width
// integers little-endian, vectors as a u32 length prefix followed by their
// elements, fixed-size byte arrays raw with no prefix at all. This mirrors
// borsh, the encoding the reference implementation derives for its structs.
type encoder struct {
	buf bytes.Buffer
}

func newEncoder() *encoder {
	return &encoder{}
}

func (e *encoder) writeByte(b byte) {
	e.buf.WriteByte(b)
}

func (e *encoder) writeU32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	e.buf.Write(tmp[:])
}

func (e *encoder) writeU64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	e.buf.Write(tmp[:])
}

func (e *encoder) writeHash(h chainhash.Hash) {
	e.buf.Write(h[:])
}

func (e *encoder) writeFixed(b []byte) {
	e.buf.Write(b)
}

func (e *encoder) bytes() []byte {
	return e.buf.Bytes()
}

// decoder reads a canonical encoding produced by encoder, failing with an
// error rather than panicking on a short buffer.
type decoder struct {
	buf []byte
	off int
}

func newDecoder(b []byte) *decoder {
	return &decoder{buf: b}
}

func (d *decoder) remaining() int {
	return len(d.buf) - d.off
}

func (d *decoder) readByte() (byte, error) {
	if d.remaining() < 1 {
		return 0, fmt.Errorf("wire: unexpected end of buffer reading byte")
	}
	b := d.buf[d.off]
	d.off++
	return b, nil
}

func (d *decoder) readU32() (uint32, error) {
	if d.remaining() < 4 {
		return 0, fmt.Errorf("wire: unexpected end of buffer reading u32")
	}
	v := binary.LittleEndian.Uint32(d.buf[d.off : d.off+4])
	d.off += 4
	return v, nil
}

func (d *decoder) readU64() (uint64, error) {
	if d.remaining() < 8 {
		return 0, fmt.Errorf("wire: unexpected end of buffer reading u64")
	}
	v := binary.LittleEndian.Uint64(d.buf[d.off : d.off+8])
	d.off += 8
	return v, nil
}

func (d *decoder) readHash() (chainhash.Hash, error) {
	var h chainhash.Hash
	if d.remaining() < chainhash.HashSize {
		return h, fmt.Errorf("wire: unexpected end of buffer reading hash")
	}
	copy(h[:], d.buf[d.off:d.off+chainhash.HashSize])
	d.off += chainhash.HashSize
	return h, nil
}

func (d *decoder) readFixed(n int) ([]byte, error) {
	if d.remaining() < n {
		return nil, fmt.Errorf("wire: unexpected end of buffer reading %d bytes", n)
	}
	b := make([]byte, n)
	copy(b, d.buf[d.off:d.off+n])
	d.off += n
	return b, nil
}
