// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain is the system's single point of mutation: it owns the
// storage handle and mempool, enforces transaction admission and block
// validation (spec.md §4.5), and applies accepted blocks. Every mutation,
// and every read that must be consistent with the tip, goes through
// State's lock, which is held for the duration of one logical
// operation but never across network I/O (spec.md §5).
package chain

import (
	"sync"

	"github.com/kexa-network/kexa/mempool"
	"github.com/kexa-network/kexa/storage"
)

// State is the shared chain state a node's RPC server, P2P sessions, and
// miner all operate against. Construct with New; the zero value is not
// usable.
type State struct {
	mu      sync.Mutex
	storage *storage.Storage
	mempool *mempool.Pool

	// ConfiguredPeers is the static dial list from startup configuration.
	// It never changes after New, so it is safe to read without the lock.
	ConfiguredPeers []string

	livePeersMu sync.Mutex
	livePeers   map[string]struct{}
}

// New wraps store and an empty mempool in a State ready to serve traffic.
// configuredPeers is the static, comma-split peer list from CLI flags.
func New(store *storage.Storage, configuredPeers []string) *State {
	return &State{
		storage:         store,
		mempool:         mempool.New(),
		ConfiguredPeers: configuredPeers,
		livePeers:       make(map[string]struct{}),
	}
}

// Storage exposes the underlying store for read-only callers (RPC handlers)
// that do not need the chain lock, such as point lookups that are already
// monotonic (blocks and headers are immutable once written).
func (s *State) Storage() *storage.Storage {
	return s.storage
}

// Lock acquires the chain lock for the duration of one logical operation.
// Callers must call the returned unlock function exactly once. This is
// exported, rather than hidden behind per-operation methods only, because
// the P2P session loop needs to interleave locked snapshots with unlocked
// network I/O within a single higher-level operation (spec.md §5).
func (s *State) Lock() func() {
	s.mu.Lock()
	return s.mu.Unlock
}

// ListUTXOsByAddress runs storage's full UTXO scan under the chain lock.
// Unlike block/header reads, the UTXO set is mutated in place by every
// ApplyBlock (spec.md §4.5's delete-then-insert sequence is not a single
// atomic storage write), so a caller reading it through Storage() directly
// could observe a torn set mid-apply. Route every UTXO scan through here
// instead (spec.md §4.4, §5).
func (s *State) ListUTXOsByAddress(addr [32]byte) ([]storage.AddressUTXO, error) {
	unlock := s.Lock()
	defer unlock()
	return s.storage.ListUTXOsByAddress(addr)
}

// AddLivePeer registers id as currently connected.
func (s *State) AddLivePeer(id string) {
	s.livePeersMu.Lock()
	defer s.livePeersMu.Unlock()
	s.livePeers[id] = struct{}{}
}

// RemoveLivePeer deregisters id.
func (s *State) RemoveLivePeer(id string) {
	s.livePeersMu.Lock()
	defer s.livePeersMu.Unlock()
	delete(s.livePeers, id)
}

// IsLivePeer reports whether id currently has a connected session.
func (s *State) IsLivePeer(id string) bool {
	s.livePeersMu.Lock()
	defer s.livePeersMu.Unlock()
	_, ok := s.livePeers[id]
	return ok
}

// LivePeers returns a snapshot of the currently connected peer ids.
func (s *State) LivePeers() []string {
	s.livePeersMu.Lock()
	defer s.livePeersMu.Unlock()
	out := make([]string, 0, len(s.livePeers))
	for id := range s.livePeers {
		out = append(out, id)
	}
	return out
}
