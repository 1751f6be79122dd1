// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import "github.com/kexa-network/kexa/chaincfg/chainhash"

// IncomingKind distinguishes the two P2P messages that carry a peer's
// height/tip and therefore drive sync decisions (spec.md §5.2).
type IncomingKind int

const (
	// IncomingVersion is the handshake message a peer sends on connect.
	IncomingVersion IncomingKind = iota
	// IncomingTip is the message a peer sends in reply to a GetTip probe,
	// or in reply to our own tip report when it finds us behind or (for a
	// Version) tied but divergent.
	IncomingTip
)

// TipActionKind names what a peer's reported height/tip tells us to do.
type TipActionKind int

const (
	// ActionNoop means no action is required.
	ActionNoop TipActionKind = iota
	// ActionRequestBlocks means we are behind and should ask the peer for
	// blocks starting at StartHeight.
	ActionRequestBlocks
	// ActionSendTip means the peer is behind (or tied but divergent) and
	// we should tell it our tip so it can catch up.
	ActionSendTip
)

// TipAction is the pure result of DecideTipAction: what, if anything, the
// caller should do next. Only the fields relevant to Kind are meaningful.
type TipAction struct {
	Kind        TipActionKind
	StartHeight uint64
	Height      uint64
	Tip         chainhash.Hash
}

// DecideTipAction is the pure decision function behind tip exchange
// (spec.md §5.2): given what a peer just told us (incoming, at peerHeight
// with peerTip) and our own local height/tip, decide whether to request
// blocks, announce our own tip, or do nothing.
//
// The three height comparisons:
//
//   - peerHeight > localHeight: we are behind. Request blocks starting at
//     our next height.
//   - peerHeight < localHeight: the peer is behind. Announce our tip.
//   - peerHeight == localHeight: if the tips also match, there is nothing
//     to do. If they differ, an unconditional SendTip would have both
//     sides responding to each other's Tip message forever — so only a
//     Version message (the one-shot handshake) triggers a SendTip back;
//     a Tip message (itself already a reply) gets Noop, breaking the
//     ping-pong.
func DecideTipAction(incoming IncomingKind, peerHeight uint64, peerTip chainhash.Hash, localHeight uint64, localTip chainhash.Hash) TipAction {
	switch {
	case peerHeight > localHeight:
		return TipAction{Kind: ActionRequestBlocks, StartHeight: localHeight + 1}
	case peerHeight < localHeight:
		return TipAction{Kind: ActionSendTip, Height: localHeight, Tip: localTip}
	default:
		if peerTip == localTip {
			return TipAction{Kind: ActionNoop}
		}
		if incoming == IncomingVersion {
			return TipAction{Kind: ActionSendTip, Height: localHeight, Tip: localTip}
		}
		return TipAction{Kind: ActionNoop}
	}
}
