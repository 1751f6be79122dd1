// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/kexa-network/kexa/chain"
	"github.com/kexa-network/kexa/chaincfg/chainhash"
	"github.com/kexa-network/kexa/consensus"
	"github.com/kexa-network/kexa/storage"
	"github.com/kexa-network/kexa/wire"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T, peers []string) *chain.State {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	s := chain.New(store, peers)

	genesis := wire.Block{
		Header: wire.BlockHeader{Version: 0, Height: 0, Bits: 0},
		Txs: []wire.Transaction{{
			Version: 0,
			Outputs: []wire.TxOut{{Amount: 1, Address: [32]byte{9}}},
		}},
	}
	genesis.Header.MerkleRoot = consensus.MerkleRoot(genesis.Txs)
	require.NoError(t, s.ApplyBlock(genesis))
	return s
}

func mineOn(t *testing.T, s *chain.State) wire.Block {
	t.Helper()
	store := s.Storage()
	tip, err := store.GetTip()
	require.NoError(t, err)

	block := wire.Block{
		Header: wire.BlockHeader{
			Version:  0,
			PrevHash: tip.Hash,
			Height:   tip.Height + 1,
			Bits:     0,
		},
		Txs: []wire.Transaction{{
			Version: 0,
			Outputs: []wire.TxOut{{Amount: consensus.BlockSubsidy(tip.Height + 1), Address: [32]byte{9}}},
		}},
	}
	block.Header.MerkleRoot = consensus.MerkleRoot(block.Txs)
	require.NoError(t, s.ApplyBlock(block))
	return block
}

func readRawFrame(t *testing.T, conn net.Conn) wire.Message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	msg, err := readFrame(conn)
	require.NoError(t, err)
	return msg
}

func TestIsSyncNoiseClassification(t *testing.T) {
	require.True(t, isSyncNoise("unexpected height"))
	require.True(t, isSyncNoise("prev hash mismatch"))
	require.True(t, isSyncNoise("p2p: message too large"))
	require.False(t, isSyncNoise("invalid signature"))
}

func TestWriteReadFrameRoundTrip(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	go func() {
		_ = writeFrame(server, wire.MsgGetTip{})
	}()

	msg := readRawFrame(t, client)
	require.Equal(t, wire.MsgGetTip{}, msg)
}

func TestDispatchGetTipRespondsWithLocalTip(t *testing.T) {
	s := newTestState(t, nil)
	tip, err := s.Storage().GetTip()
	require.NoError(t, err)

	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	go func() {
		_ = dispatch(s, server, wire.MsgGetTip{})
	}()

	msg := readRawFrame(t, client)
	got, ok := msg.(wire.MsgTip)
	require.True(t, ok)
	require.Equal(t, tip.Height, got.Height)
	require.Equal(t, tip.Hash, got.Tip)
}

func TestDispatchBlockAppliesThroughChain(t *testing.T) {
	s := newTestState(t, nil)
	tip, err := s.Storage().GetTip()
	require.NoError(t, err)

	next := wire.Block{
		Header: wire.BlockHeader{
			Version:  0,
			PrevHash: tip.Hash,
			Height:   1,
			Bits:     0,
		},
		Txs: []wire.Transaction{{
			Version: 0,
			Outputs: []wire.TxOut{{Amount: consensus.BlockSubsidy(1), Address: [32]byte{9}}},
		}},
	}
	next.Header.MerkleRoot = consensus.MerkleRoot(next.Txs)

	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	err = dispatch(s, server, wire.MsgBlock{Block: next})
	require.NoError(t, err)

	newTip, err := s.Storage().GetTip()
	require.NoError(t, err)
	require.Equal(t, uint64(1), newTip.Height)
	require.Equal(t, next.Header.Hash(), newTip.Hash)
}

func TestRespondToTipReportRequestsBlocksWhenBehind(t *testing.T) {
	behind := newTestState(t, nil)
	ahead := newTestState(t, nil)
	mineOn(t, ahead)

	aheadTip, err := ahead.Storage().GetTip()
	require.NoError(t, err)

	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	go func() {
		_ = respondToTipReport(behind, server, chain.IncomingVersion, aheadTip.Height, aheadTip.Hash)
	}()

	msg := readRawFrame(t, client)
	got, ok := msg.(wire.MsgGetBlocks)
	require.True(t, ok)
	require.Equal(t, uint64(1), got.StartHeight)
}

func TestRespondToTipReportEqualHeightDivergentTipBreaksPingPong(t *testing.T) {
	s := newTestState(t, nil)
	tip, err := s.Storage().GetTip()
	require.NoError(t, err)

	var otherTip chainhash.Hash
	copy(otherTip[:], "different-tip-hash")
	require.NotEqual(t, tip.Hash, otherTip)

	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	done := make(chan error, 1)
	go func() {
		done <- respondToTipReport(s, server, chain.IncomingTip, tip.Height, otherTip)
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("respondToTipReport with IncomingTip+divergent tip should return Noop without writing")
	}
}

func TestSendBackfillStreamsAscendingBlocks(t *testing.T) {
	s := newTestState(t, nil)
	first := mineOn(t, s)
	second := mineOn(t, s)

	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	go func() {
		_ = sendBackfill(s, server, 1)
	}()

	msg1 := readRawFrame(t, client)
	block1, ok := msg1.(wire.MsgBlock)
	require.True(t, ok)
	require.Equal(t, uint64(1), block1.Block.Header.Height)
	require.Equal(t, first.Header.Hash(), block1.Block.Header.Hash())

	msg2 := readRawFrame(t, client)
	block2, ok := msg2.(wire.MsgBlock)
	require.True(t, ok)
	require.Equal(t, uint64(2), block2.Block.Header.Height)
	require.Equal(t, second.Header.Hash(), block2.Block.Header.Hash())
}
