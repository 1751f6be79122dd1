// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmissionIdentity(t *testing.T) {
	require.Equal(t, MaxSupply, Subsidy*MineableBlocks+FoundersReserve)
}

func TestMineableBlocksValue(t *testing.T) {
	require.EqualValues(t, 354_600, MineableBlocks)
}

func TestNetworkString(t *testing.T) {
	require.Equal(t, "testnet", Testnet.String())
	require.Equal(t, "mainnet", Mainnet.String())
}
