// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command kexanode runs a single Kexa node: chain storage, the validation
// and mining core, the P2P listener/dialer, and the HTTP RPC surface
// (spec.md §6).
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flags "github.com/jessevdk/go-flags"
	"github.com/kexa-network/kexa/chain"
	"github.com/kexa-network/kexa/chaincfg"
	"github.com/kexa-network/kexa/genesis"
	"github.com/kexa-network/kexa/p2p"
	"github.com/kexa-network/kexa/rpc"
	"github.com/kexa-network/kexa/storage"
	"github.com/kexa-network/kexa/wire"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "kexanode:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}
	network := cfg.network()

	if cfg.PrintGenesis {
		return printGenesis(network, cfg.Genesis)
	}

	if err := initLogRotator(cfg.DataDir); err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	useLoggers()
	setLogLevel("info")

	store, err := storage.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage at %s: %w", cfg.DataDir, err)
	}
	defer store.Close()

	expected, err := genesis.Resolve(network, cfg.Genesis)
	if err != nil {
		return fmt.Errorf("building genesis: %w", err)
	}
	if err := genesis.EnsureIdentity(store, network, expected); err != nil {
		return err
	}
	log.Infof("network %s genesis %s", network, expected.Hash)

	state := chain.New(store, cfg.peerList())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return p2p.Listen(gCtx, state, cfg.P2PAddr)
	})

	g.Go(func() error {
		p2p.DialLoop(gCtx, state)
		return nil
	})

	if cfg.Mine {
		minerAddr, err := wire.ParseAddress(cfg.MinerAddress)
		if err != nil {
			return fmt.Errorf("--miner-address: %w", err)
		}
		g.Go(func() error {
			return minerLoop(gCtx, state, minerAddr)
		})
	}

	server := rpc.NewServer(state)
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		log.Infof("rpc listening on %s", cfg.RPCAddr)
		err := server.Start(cfg.RPCAddr)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	return g.Wait()
}

// minerLoop mines one block after another against state, stopping when ctx
// is canceled. After each mined block it runs a dial pass right away rather
// than waiting for the next dialer tick, so configured peers without a live
// session receive the new tip in the Version sent on connect. Peers that
// already have a live session are not messaged here; they learn of the
// block through their session's idle GetTip probe.
func minerLoop(ctx context.Context, state *chain.State, minerAddr wire.Address) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		hash, err := state.MineBlock(minerAddr)
		if err != nil {
			log.Errorf("mining: %v", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}
		log.Infof("mined block %s", hash)
		p2p.SyncWithPeers(state)
	}
}

func printGenesis(network chaincfg.Network, genesisPath string) error {
	built, err := genesis.Resolve(network, genesisPath)
	if err != nil {
		return err
	}
	fmt.Printf("network: %s\n", network)
	fmt.Printf("genesis_hash: %s\n", built.Hash)
	h := built.Block.Header
	fmt.Printf("header: version=%d timestamp=%d bits=%d nonce=%d\n", h.Version, h.Timestamp, h.Bits, h.Nonce)
	for i, out := range built.Block.Txs[0].Outputs {
		addr := wire.Address{Payload: out.Address}
		fmt.Printf("coinbase_output[%d]: amount=%d address=%s\n", i, out.Amount, addr.String())
	}
	return nil
}
