// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/kexa-network/kexa/chaincfg"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(nil)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:8030", cfg.RPCAddr)
	require.Equal(t, "0.0.0.0:9030", cfg.P2PAddr)
	require.Equal(t, "./data", cfg.DataDir)
	require.Equal(t, chaincfg.Testnet, cfg.network())
	require.Nil(t, cfg.peerList())
}

func TestLoadConfigMineRequiresMinerAddress(t *testing.T) {
	_, err := loadConfig([]string{"--mine"})
	require.ErrorContains(t, err, "--miner-address required")
}

func TestLoadConfigMainnetRequiresGenesis(t *testing.T) {
	_, err := loadConfig([]string{"--network", "mainnet"})
	require.ErrorContains(t, err, "--genesis required")
}

func TestLoadConfigPeerList(t *testing.T) {
	cfg, err := loadConfig([]string{"--peers", "a:1, b:2 ,,c:3"})
	require.NoError(t, err)
	require.Equal(t, []string{"a:1", "b:2", "c:3"}, cfg.peerList())
}

func TestLoadConfigRejectsUnknownNetwork(t *testing.T) {
	_, err := loadConfig([]string{"--network", "signet"})
	require.Error(t, err)
}
