// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc implements the node's HTTP JSON API (spec.md §6): chain
// queries, transaction submission, and mining, all served by routing
// directly against the shared chain.State the P2P and mining subsystems
// also mutate.
package rpc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/kexa-network/kexa/chain"
	"github.com/kexa-network/kexa/chaincfg/chainhash"
	"github.com/kexa-network/kexa/storage"
	"github.com/kexa-network/kexa/wire"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server wires a chain.State to the route table spec.md §6 names.
type Server struct {
	state *chain.State
	echo  *echo.Echo
}

// NewServer builds a Server ready to Start against state.
func NewServer(state *chain.State) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsoniterSerializer{}
	e.Use(middleware.Recover())

	s := &Server{state: state, echo: e}

	e.GET("/health", s.health)
	e.GET("/ready", s.getTip)
	e.GET("/tip", s.getTip)
	e.GET("/blocks", s.getBlocks)
	e.GET("/block/:hash", s.getBlock)
	e.GET("/balance/:address", s.getBalance)
	e.GET("/utxos/:address", s.getUtxos)
	e.POST("/submit_tx", s.submitTx)
	e.POST("/mine_blocks", s.mineBlocks)
	e.GET("/peers", s.getPeers)
	e.GET("/peers/live", s.getLivePeers)

	return s
}

// Start serves the API on addr, blocking until the listener fails or
// Shutdown is called.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown gracefully stops a running server, honoring ctx's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *Server) getTip(c echo.Context) error {
	tip, err := s.state.Storage().GetTip()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, TipResponse{Height: tip.Height, Hash: tip.Hash.String()})
}

func (s *Server) getBlocks(c echo.Context) error {
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "limit must be 1..=500")
		}
		limit = n
	}
	if limit < 1 || limit > 500 {
		return badRequest(c, "limit must be 1..=500")
	}

	tip, err := s.state.Storage().GetTip()
	if err != nil {
		return internalError(c, err)
	}

	summaries := make([]BlockSummary, 0, limit)
	cur := tip.Hash
	for i := 0; i < limit; i++ {
		block, err := s.state.Storage().GetBlock(cur)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return notFound(c, "block not found")
			}
			return internalError(c, err)
		}
		summaries = append(summaries, BlockSummary{
			Height:    block.Header.Height,
			Hash:      cur.String(),
			TxCount:   len(block.Txs),
			Timestamp: block.Header.Timestamp,
		})
		if block.Header.Height == 0 {
			break
		}
		cur = block.Header.PrevHash
	}
	return c.JSON(http.StatusOK, summaries)
}

func (s *Server) getBlock(c echo.Context) error {
	hash, err := chainhash.NewFromHex(c.Param("hash"))
	if err != nil {
		return badRequest(c, "invalid hash")
	}
	block, err := s.state.Storage().GetBlock(hash)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound(c, "block not found")
		}
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, block)
}

func (s *Server) getBalance(c echo.Context) error {
	addr, err := wire.ParseAddress(c.Param("address"))
	if err != nil {
		return badRequest(c, "invalid address")
	}
	utxos, err := s.state.ListUTXOsByAddress(addr.Payload)
	if err != nil {
		return internalError(c, err)
	}
	var total uint64
	for _, u := range utxos {
		total += u.Output.Amount
	}
	return c.JSON(http.StatusOK, total)
}

func (s *Server) getUtxos(c echo.Context) error {
	addr, err := wire.ParseAddress(c.Param("address"))
	if err != nil {
		return badRequest(c, "invalid address")
	}
	utxos, err := s.state.ListUTXOsByAddress(addr.Payload)
	if err != nil {
		return internalError(c, err)
	}
	out := make([]UtxoResponse, len(utxos))
	for i, u := range utxos {
		out[i] = UtxoResponse{
			Txid:   u.OutPoint.Txid.String(),
			Index:  u.OutPoint.Index,
			Amount: u.Output.Amount,
		}
	}
	return c.JSON(http.StatusOK, out)
}

// submitTx admits req.Tx into the mempool. Unlike every other handler,
// validation failures do not become a non-2xx response: spec.md §6/§7
// have /submit_tx answer 200 with a literal "error: ..." body so wallet
// clients can always decode the response the same way.
func (s *Server) submitTx(c echo.Context) error {
	var req SubmitRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if _, err := s.state.SubmitTx(req.Tx); err != nil {
		return c.JSON(http.StatusOK, "error: "+err.Error())
	}
	return c.JSON(http.StatusOK, req.Tx.Txid().String())
}

func (s *Server) mineBlocks(c echo.Context) error {
	var req MineRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	minerAddr, err := wire.ParseAddress(req.MinerAddress)
	if err != nil {
		return badRequest(c, "invalid miner address")
	}

	hashes := make([]string, 0, req.Count)
	for i := uint64(0); i < req.Count; i++ {
		hash, err := s.state.MineBlock(minerAddr)
		if err != nil {
			return internalErrorf(c, "mining failed: %v", err)
		}
		hashes = append(hashes, hash.String())
	}
	return c.JSON(http.StatusOK, MineResponse{Hashes: hashes})
}

func (s *Server) getPeers(c echo.Context) error {
	peers := s.state.ConfiguredPeers
	if peers == nil {
		peers = []string{}
	}
	return c.JSON(http.StatusOK, peers)
}

func (s *Server) getLivePeers(c echo.Context) error {
	live := s.state.LivePeers()
	if live == nil {
		live = []string{}
	}
	return c.JSON(http.StatusOK, live)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func notFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{Error: msg})
}

func internalError(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

func internalErrorf(c echo.Context, format string, args ...any) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fmt.Sprintf(format, args...)})
}
