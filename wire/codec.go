// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
)

// MaxMessageSize bounds both the encoded payload a peer will ever send and
// the declared length a peer will ever be believed about, checked before
// any allocation proportional to the declared size.
const MaxMessageSize = 2 * 1024 * 1024

// messageLengthPrefixSize is the width of the big-endian length prefix
// that precedes every message payload on the wire.
const messageLengthPrefixSize = 4

// EncodeMessage frames msg as a 4-byte big-endian length prefix followed by
// its payload, ready to write to a peer connection.
func EncodeMessage(msg Message) ([]byte, error) {
	payload := encodeMessagePayload(msg)
	if len(payload) > MaxMessageSize {
		return nil, fmt.Errorf("wire: message too large")
	}
	buf := make([]byte, messageLengthPrefixSize+len(payload))
	binary.BigEndian.PutUint32(buf[:messageLengthPrefixSize], uint32(len(payload)))
	copy(buf[messageLengthPrefixSize:], payload)
	return buf, nil
}

// DecodeMessage attempts to pull one complete framed message off the front
// of buf. It returns the decoded message and the number of bytes consumed.
// A nil message with a nil error means buf does not yet hold a complete
// message; the caller should read more bytes and try again. The declared
// length is checked against MaxMessageSize before any allocation, so an
// attacker cannot force a large allocation merely by claiming one.
func DecodeMessage(buf []byte) (Message, int, error) {
	if len(buf) < messageLengthPrefixSize {
		return nil, 0, nil
	}
	length := int(binary.BigEndian.Uint32(buf[:messageLengthPrefixSize]))
	if length > MaxMessageSize {
		return nil, 0, fmt.Errorf("wire: message too large")
	}
	total := messageLengthPrefixSize + length
	if len(buf) < total {
		return nil, 0, nil
	}
	msg, err := decodeMessagePayload(buf[messageLengthPrefixSize:total])
	if err != nil {
		return nil, 0, err
	}
	return msg, total, nil
}
