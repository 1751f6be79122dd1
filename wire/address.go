// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// AddressHRP is the human-readable part of every Kexa bech32 address.
const AddressHRP = "kexa"

// AddressSize is the length in bytes of an address payload.
const AddressSize = 32

// Address is the SHA-256 digest of an ed25519 public key, bech32-encoded
// for display with the "kexa" human-readable part.
type Address struct {
	Payload [AddressSize]byte
}

// AddressFromPubkey derives the address that owns pub.
func AddressFromPubkey(pub ed25519.PublicKey) Address {
	var addr Address
	sum := sha256.Sum256(pub)
	addr.Payload = sum
	return addr
}

// AddressFromPubkeyBytes derives the address owning the 32-byte raw ed25519
// public key pub. It mirrors AddressFromPubkey but accepts the bytes found
// directly in a TxIn.
func AddressFromPubkeyBytes(pub [32]byte) Address {
	return AddressFromPubkey(ed25519.PublicKey(pub[:]))
}

// String returns the bech32 encoding of the address.
func (a Address) String() string {
	conv, err := bech32.ConvertBits(a.Payload[:], 8, 5, true)
	if err != nil {
		// ConvertBits only fails on malformed input; a.Payload is always
		// a full 32-byte array, so this is unreachable.
		panic(fmt.Sprintf("wire: address conversion: %v", err))
	}
	encoded, err := bech32.Encode(AddressHRP, conv)
	if err != nil {
		panic(fmt.Sprintf("wire: address encoding: %v", err))
	}
	return encoded
}

// ParseAddress decodes a bech32-encoded Kexa address.
func ParseAddress(s string) (Address, error) {
	var addr Address
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return addr, fmt.Errorf("wire: invalid address: %w", err)
	}
	if hrp != AddressHRP {
		return addr, fmt.Errorf("wire: invalid address prefix %q", hrp)
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return addr, fmt.Errorf("wire: invalid address encoding: %w", err)
	}
	if len(payload) != AddressSize {
		return addr, fmt.Errorf("wire: invalid address length %d", len(payload))
	}
	copy(addr.Payload[:], payload)
	return addr, nil
}
