// Copyright (c) 2026 The Kexa developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage persists the chain's append-only records and the single
// mutable tip pointer in an embedded goleveldb database. The five logical
// namespaces spec.md calls "trees" (blocks, headers, height_hash, utxo,
// meta) are implemented as key prefixes over one physical database, since
// goleveldb has no native notion of a tree the way sled does; each prefix
// gets its own iteration range and never collides with another's keys.
package storage

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/kexa-network/kexa/chaincfg/chainhash"
	"github.com/kexa-network/kexa/wire"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Tree name prefixes. A single byte tag keeps keys short and sorts each
// tree's keyspace contiguously, which the full utxo scan behind
// list_utxos_by_address relies on; every other tree is read by point lookup.
const (
	prefixBlock      byte = 'b'
	prefixHeader     byte = 'h'
	prefixHeightHash byte = 'i'
	prefixUTXO       byte = 'u'
	prefixMeta       byte = 'm'
)

var metaTipKey = []byte{prefixMeta, 't', 'i', 'p'}

// ErrNotFound is returned by Get-style methods and list scans are not
// affected by it; callers use errors.Is against this sentinel to
// distinguish "key absent" from a genuine I/O failure.
var ErrNotFound = errors.New("storage: not found")

// Storage is the single embedded key-value database backing a node's chain
// state. All of its methods are safe to call concurrently; callers that need
// read-after-write consistency across multiple calls must hold chain's own
// lock around the whole operation (see spec.md §5) since Storage itself does
// no cross-call locking.
type Storage struct {
	db *leveldb.DB
}

// Open opens (creating if necessary) the goleveldb database rooted at path.
func Open(path string) (*Storage, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	return &Storage{db: db}, nil
}

// Close releases the underlying database's file handles.
func (s *Storage) Close() error {
	return s.db.Close()
}

func heightKey(prefix byte, height uint64) []byte {
	key := make([]byte, 1+8)
	key[0] = prefix
	binary.BigEndian.PutUint64(key[1:], height)
	return key
}

func outpointKey(op wire.OutPoint) []byte {
	key := make([]byte, 1+chainhash.HashSize+4)
	key[0] = prefixUTXO
	copy(key[1:1+chainhash.HashSize], op.Txid[:])
	binary.BigEndian.PutUint32(key[1+chainhash.HashSize:], op.Index)
	return key
}

func wrapNotFound(err error) error {
	if errors.Is(err, leveldb.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// PutBlock persists block under its hash. Blocks are immutable once
// written; callers never overwrite an existing key with different content.
func (s *Storage) PutBlock(hash chainhash.Hash, block wire.Block) error {
	key := append([]byte{prefixBlock}, hash[:]...)
	return s.db.Put(key, block.Serialize(), nil)
}

// GetBlock returns the block stored under hash, or ErrNotFound.
func (s *Storage) GetBlock(hash chainhash.Hash) (wire.Block, error) {
	key := append([]byte{prefixBlock}, hash[:]...)
	value, err := s.db.Get(key, nil)
	if err != nil {
		return wire.Block{}, wrapNotFound(err)
	}
	return wire.DecodeBlock(value)
}

// PutHeader indexes header by its height.
func (s *Storage) PutHeader(height uint64, header wire.BlockHeader) error {
	return s.db.Put(heightKey(prefixHeader, height), header.Serialize(), nil)
}

// GetHeader returns the header stored at height, or ErrNotFound.
func (s *Storage) GetHeader(height uint64) (wire.BlockHeader, error) {
	value, err := s.db.Get(heightKey(prefixHeader, height), nil)
	if err != nil {
		return wire.BlockHeader{}, wrapNotFound(err)
	}
	return wire.DecodeBlockHeader(value)
}

// PutHeightHash records the canonical block hash at height.
func (s *Storage) PutHeightHash(height uint64, hash chainhash.Hash) error {
	return s.db.Put(heightKey(prefixHeightHash, height), hash[:], nil)
}

// GetHashByHeight returns the canonical block hash at height, or
// ErrNotFound.
func (s *Storage) GetHashByHeight(height uint64) (chainhash.Hash, error) {
	value, err := s.db.Get(heightKey(prefixHeightHash, height), nil)
	if err != nil {
		return chainhash.Hash{}, wrapNotFound(err)
	}
	return chainhash.NewFromSlice(value)
}

// Tip is the chain's current canonical head.
type Tip struct {
	Height uint64
	Hash   chainhash.Hash
}

// SetTip rewrites the single tip record. It is the only storage write that
// ever overwrites an existing key with different content.
func (s *Storage) SetTip(height uint64, hash chainhash.Hash) error {
	value := make([]byte, 8+chainhash.HashSize)
	binary.BigEndian.PutUint64(value[:8], height)
	copy(value[8:], hash[:])
	return s.db.Put(metaTipKey, value, nil)
}

// GetTip returns the current tip, or ErrNotFound before genesis has been
// initialized.
func (s *Storage) GetTip() (Tip, error) {
	value, err := s.db.Get(metaTipKey, nil)
	if err != nil {
		return Tip{}, wrapNotFound(err)
	}
	if len(value) != 8+chainhash.HashSize {
		return Tip{}, fmt.Errorf("storage: malformed tip record")
	}
	hash, err := chainhash.NewFromSlice(value[8:])
	if err != nil {
		return Tip{}, err
	}
	return Tip{Height: binary.BigEndian.Uint64(value[:8]), Hash: hash}, nil
}

// PutUTXO records output as unspent at outpoint.
func (s *Storage) PutUTXO(outpoint wire.OutPoint, output wire.TxOut) error {
	return s.db.Put(outpointKey(outpoint), output.Serialize(), nil)
}

// GetUTXO returns the unspent output at outpoint, or ErrNotFound if it has
// never existed or has already been spent.
func (s *Storage) GetUTXO(outpoint wire.OutPoint) (wire.TxOut, error) {
	value, err := s.db.Get(outpointKey(outpoint), nil)
	if err != nil {
		return wire.TxOut{}, wrapNotFound(err)
	}
	return wire.DecodeTxOut(value)
}

// DeleteUTXO removes the record at outpoint. Deleting an already-absent
// outpoint is not an error; storage operations are idempotent at the key
// level per spec.md §4.4.
func (s *Storage) DeleteUTXO(outpoint wire.OutPoint) error {
	return s.db.Delete(outpointKey(outpoint), nil)
}

// AddressUTXO is one row of a ListUTXOsByAddress scan.
type AddressUTXO struct {
	OutPoint wire.OutPoint
	Output   wire.TxOut
}

// ListUTXOsByAddress performs a full scan of the utxo tree, returning every
// entry whose output address matches addr. There is no secondary index;
// callers should not rely on this on hot paths (spec.md §4.4, §9).
func (s *Storage) ListUTXOsByAddress(addr [32]byte) ([]AddressUTXO, error) {
	rng := util.BytesPrefix([]byte{prefixUTXO})
	iter := s.db.NewIterator(rng, nil)
	defer iter.Release()

	var results []AddressUTXO
	for iter.Next() {
		key := iter.Key()
		if len(key) != 1+chainhash.HashSize+4 {
			continue
		}
		output, err := wire.DecodeTxOut(iter.Value())
		if err != nil {
			return nil, err
		}
		if output.Address != addr {
			continue
		}
		var txid chainhash.Hash
		copy(txid[:], key[1:1+chainhash.HashSize])
		index := binary.BigEndian.Uint32(key[1+chainhash.HashSize:])
		results = append(results, AddressUTXO{
			OutPoint: wire.OutPoint{Txid: txid, Index: index},
			Output:   output,
		})
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return results, nil
}
