// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// DurableConfig holds configuration for a BadgerDB-backed store.
type DurableConfig struct {
	// Path is the directory for BadgerDB files.
	// Required unless InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence).
	// Useful for testing.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// Namespace prefixes every key, isolating stores that share a DB
	// directory (e.g. "explorer|" vs "masters|").
	Namespace string

	// Logger receives BadgerDB's internal logging. If nil, that logging
	// is disabled.
	Logger *slog.Logger
}

// DefaultDurableConfig returns production defaults for path.
func DefaultDurableConfig(path string) DurableConfig {
	return DurableConfig{Path: path, SyncWrites: true}
}

// InMemoryDurableConfig returns a configuration for tests.
func InMemoryDurableConfig() DurableConfig {
	return DurableConfig{InMemory: true}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Durable is a Store backed by BadgerDB. Expiry uses BadgerDB's native
// per-entry TTL.
type Durable struct {
	db        *badger.DB
	prefix    []byte
	ownsDB    bool
	namespace string
}

// OpenDurable opens a BadgerDB-backed store.
//
// Description:
//
//	Opens (or creates) a BadgerDB database per cfg and wraps it as a
//	Store. The returned store owns the DB and closes it on Close.
//
// Inputs:
//
//	cfg - Store configuration. Path is required unless InMemory is true.
//
// Outputs:
//
//	*Durable - The opened store. Caller must call Close() when done.
//	error - Non-nil if the path is invalid or the DB cannot be opened.
//
// Thread Safety: The returned store is safe for concurrent use.
func OpenDurable(cfg DurableConfig) (*Durable, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent cache")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create cache directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	opts = opts.WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	return &Durable{db: db, prefix: []byte(cfg.Namespace), ownsDB: true, namespace: cfg.Namespace}, nil
}

// OpenDurableOrMemory opens a BadgerDB store, falling back to an
// in-memory store when the DB cannot be opened (read-only filesystem,
// lock held by another process). The fallback is logged at warn level
// rather than failing startup: a cold cache degrades latency, not
// correctness.
func OpenDurableOrMemory(cfg DurableConfig, logger *slog.Logger) Store {
	store, err := OpenDurable(cfg)
	if err != nil {
		if logger != nil {
			logger.Warn("durable cache unavailable, using in-memory fallback",
				"path", cfg.Path, "error", err)
		}
		return NewMemory()
	}
	return store
}

// NamespaceView returns a store sharing this store's DB under a
// different namespace. The view does not own the DB; closing it is a
// no-op.
func (d *Durable) NamespaceView(namespace string) *Durable {
	return &Durable{db: d.db, prefix: []byte(namespace), namespace: namespace}
}

func (d *Durable) fullKey(key string) []byte {
	return append(append([]byte(nil), d.prefix...), key...)
}

// Get returns the value for key. Expired entries are absent.
func (d *Durable) Get(_ context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(d.fullKey(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key for ttl using BadgerDB's entry TTL.
func (d *Durable) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	err := d.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(d.fullKey(key), value)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (d *Durable) Delete(_ context.Context, key string) error {
	err := d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(d.fullKey(key))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("cache delete %q: %w", key, err)
	}
	return nil
}

// Clear drops every entry under this store's namespace.
func (d *Durable) Clear(_ context.Context) error {
	if err := d.db.DropPrefix(d.prefix); err != nil {
		return fmt.Errorf("cache clear %q: %w", d.namespace, err)
	}
	return nil
}

// Close closes the underlying DB when this store owns it.
func (d *Durable) Close() error {
	if !d.ownsDB {
		return nil
	}
	return d.db.Close()
}
