// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import "github.com/kexa-network/kexa/wire"

// TipResponse reports the chain's current height and tip hash, hex-encoded
// for readability (spec.md §6).
type TipResponse struct {
	Height uint64 `json:"height"`
	Hash   string `json:"hash"`
}

// BlockSummary is one entry of the /blocks walk-backward listing.
type BlockSummary struct {
	Height    uint64 `json:"height"`
	Hash      string `json:"hash"`
	TxCount   int    `json:"tx_count"`
	Timestamp uint64 `json:"timestamp"`
}

// ErrorResponse is the JSON body of every non-2xx RPC error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MineRequest is the /mine_blocks request body.
type MineRequest struct {
	Count        uint64 `json:"count"`
	MinerAddress string `json:"miner_address"`
}

// MineResponse is the /mine_blocks response body.
type MineResponse struct {
	Hashes []string `json:"hashes"`
}

// SubmitRequest is the /submit_tx request body. tx is serialized with plain
// field-wise JSON (byte arrays render as arrays of numbers), matching
// original_source's derive(Serialize, Deserialize) on the same struct.
type SubmitRequest struct {
	Tx wire.Transaction `json:"tx"`
}

// UtxoResponse is one entry of the /utxos listing.
type UtxoResponse struct {
	Txid  string `json:"txid"`
	Index uint32 `json:"index"`
	Amount uint64 `json:"amount"`
}
