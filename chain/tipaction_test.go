// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"testing"

	"github.com/kexa-network/kexa/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDecideTipActionPeerAhead(t *testing.T) {
	action := DecideTipAction(IncomingVersion, 10, chainhashOf("peer"), 5, chainhashOf("local"))
	require.Equal(t, ActionRequestBlocks, action.Kind)
	require.Equal(t, uint64(6), action.StartHeight)
}

func TestDecideTipActionPeerBehind(t *testing.T) {
	local := chainhashOf("local")
	action := DecideTipAction(IncomingTip, 3, chainhashOf("peer"), 10, local)
	require.Equal(t, ActionSendTip, action.Kind)
	require.Equal(t, uint64(10), action.Height)
	require.Equal(t, local, action.Tip)
}

func TestDecideTipActionEqualHeightEqualTip(t *testing.T) {
	tip := chainhashOf("same")
	for _, kind := range []IncomingKind{IncomingVersion, IncomingTip} {
		action := DecideTipAction(kind, 7, tip, 7, tip)
		require.Equal(t, ActionNoop, action.Kind)
	}
}

func TestDecideTipActionEqualHeightVersionDivergesSendsTip(t *testing.T) {
	local := chainhashOf("local")
	action := DecideTipAction(IncomingVersion, 7, chainhashOf("peer"), 7, local)
	require.Equal(t, ActionSendTip, action.Kind)
	require.Equal(t, local, action.Tip)
}

// TestDecideTipActionEqualHeightTipDivergesNoPingPong is the literal
// property from spec.md §8: decide_tip_action(Tip, h, t', h, t) with
// t != t' must be Noop, or two peers with divergent equal-height tips
// would exchange Tip messages forever.
func TestDecideTipActionEqualHeightTipDivergesNoPingPong(t *testing.T) {
	action := DecideTipAction(IncomingTip, 7, chainhashOf("peer"), 7, chainhashOf("local"))
	require.Equal(t, ActionNoop, action.Kind)
}

// TestDecideTipActionEqualHeightTipDivergesNoPingPongProperty generalizes
// TestDecideTipActionEqualHeightTipDivergesNoPingPong over arbitrary
// heights and arbitrary divergent tip hashes, rather than one fixed pair.
func TestDecideTipActionEqualHeightTipDivergesNoPingPongProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		height := rapid.Uint64().Draw(t, "height")
		peerBytes := rapid.SliceOfN(rapid.Uint8(), chainhash.HashSize, chainhash.HashSize).Draw(t, "peerTip")
		localBytes := rapid.SliceOfN(rapid.Uint8(), chainhash.HashSize, chainhash.HashSize).Draw(t, "localTip")

		var peerTip, localTip chainhash.Hash
		copy(peerTip[:], peerBytes)
		copy(localTip[:], localBytes)
		if peerTip == localTip {
			return
		}

		action := DecideTipAction(IncomingTip, height, peerTip, height, localTip)
		require.Equal(t, ActionNoop, action.Kind)
	})
}

func TestDecideTipActionPurity(t *testing.T) {
	var zero chainhash.Hash
	a := DecideTipAction(IncomingVersion, 1, zero, 1, zero)
	b := DecideTipAction(IncomingVersion, 1, zero, 1, zero)
	require.Equal(t, a, b)
}
