// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consensus

import (
	"encoding/hex"
	"testing"

	"github.com/kexa-network/kexa/chaincfg"
	"github.com/kexa-network/kexa/chaincfg/chainhash"
	"github.com/kexa-network/kexa/wire"
	"github.com/stretchr/testify/require"
)

func TestMerkleRootEmptyIsZero(t *testing.T) {
	require.Equal(t, chainhash.Zero, MerkleRoot(nil))
}

func TestMerkleRootSingleTxIsItsTxid(t *testing.T) {
	tx := wire.Transaction{Outputs: []wire.TxOut{{Amount: 1}}}
	require.Equal(t, tx.Txid(), MerkleRoot([]wire.Transaction{tx}))
}

func TestMerkleRootGolden(t *testing.T) {
	var addr [32]byte
	for i := range addr {
		addr[i] = 2
	}
	tx := wire.Transaction{
		Version: 0,
		Outputs: []wire.TxOut{{Amount: 1, Address: addr}},
	}
	root := MerkleRoot([]wire.Transaction{tx})
	require.Equal(t, "f17fa62d5443ba6f40363093a346f426c65a96095c6e88580d263b721a07c20d", hex.EncodeToString(root[:]))
}

func TestMerkleRootOddLayerDuplicatesLast(t *testing.T) {
	tx0 := wire.Transaction{Outputs: []wire.TxOut{{Amount: 1}}}
	tx1 := wire.Transaction{Outputs: []wire.TxOut{{Amount: 2}}}
	tx2 := wire.Transaction{Outputs: []wire.TxOut{{Amount: 3}}}

	threeRoot := MerkleRoot([]wire.Transaction{tx0, tx1, tx2})
	fourRoot := MerkleRoot([]wire.Transaction{tx0, tx1, tx2, tx2})
	require.Equal(t, fourRoot, threeRoot)
}

func headerWithBits(bits uint32, nonce uint64) wire.BlockHeader {
	return wire.BlockHeader{Version: 0, Bits: bits, Nonce: nonce}
}

func TestCheckPowZeroBitsAlwaysPasses(t *testing.T) {
	require.True(t, CheckPow(headerWithBits(0, 0)))
}

func TestCheckPowFindsSolutionForSmallDifficulty(t *testing.T) {
	var header wire.BlockHeader
	header.Bits = 8
	for !CheckPow(header) {
		header.Nonce++
	}
	hash := header.Hash()
	require.Equal(t, byte(0), hash[0])
}

func TestCheckPowPartialByteMask(t *testing.T) {
	// bits=4 requires the top nibble of the first hash byte to be zero.
	var header wire.BlockHeader
	header.Bits = 4
	for !CheckPow(header) {
		header.Nonce++
	}
	hash := header.Hash()
	require.Zero(t, hash[0]&0xF0)
}

func TestBlockSubsidySchedule(t *testing.T) {
	require.EqualValues(t, 0, BlockSubsidy(0))
	require.EqualValues(t, chaincfg.Subsidy, BlockSubsidy(1))
	require.EqualValues(t, chaincfg.Subsidy, BlockSubsidy(chaincfg.MineableBlocks))
	require.EqualValues(t, 0, BlockSubsidy(chaincfg.MineableBlocks+1))
}

func TestBlockSubsidyEmissionIdentity(t *testing.T) {
	require.Equal(t, chaincfg.MaxSupply, chaincfg.Subsidy*chaincfg.MineableBlocks+chaincfg.FoundersReserve)
}

func TestCheckBlockStructureRejectsEmptyTxs(t *testing.T) {
	err := CheckBlockStructure(wire.Block{})
	require.ErrorIs(t, err, errBlockEmpty)
}

func TestCheckBlockStructureRejectsMerkleMismatch(t *testing.T) {
	tx := wire.Transaction{Outputs: []wire.TxOut{{Amount: 1}}}
	block := wire.Block{
		Header: wire.BlockHeader{MerkleRoot: chainhash.Sum256([]byte("wrong"))},
		Txs:    []wire.Transaction{tx},
	}
	err := CheckBlockStructure(block)
	require.ErrorIs(t, err, errMerkleMismatch)
}

func TestCheckBlockStructureRejectsBadPow(t *testing.T) {
	tx := wire.Transaction{Outputs: []wire.TxOut{{Amount: 1}}}
	header := wire.BlockHeader{MerkleRoot: MerkleRoot([]wire.Transaction{tx}), Bits: 256}
	err := CheckBlockStructure(wire.Block{Header: header, Txs: []wire.Transaction{tx}})
	require.ErrorIs(t, err, errPowInvalid)
}
