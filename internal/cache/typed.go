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
	"encoding/json"
	"fmt"
	"time"
)

// Typed wraps a Store with JSON encoding for values of type V.
type Typed[V any] struct {
	store Store
}

// NewTyped wraps store.
func NewTyped[V any](store Store) *Typed[V] {
	return &Typed[V]{store: store}
}

// Get returns the decoded value for key. Entries that fail to decode
// (schema drift across versions) are treated as absent and deleted.
func (t *Typed[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	raw, ok, err := t.store.Get(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}
	var value V
	if err := json.Unmarshal(raw, &value); err != nil {
		_ = t.store.Delete(ctx, key)
		return zero, false, nil
	}
	return value, true, nil
}

// Set encodes value and stores it under key for ttl.
func (t *Typed[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value %q: %w", key, err)
	}
	return t.store.Set(ctx, key, raw, ttl)
}

// Delete removes key.
func (t *Typed[V]) Delete(ctx context.Context, key string) error {
	return t.store.Delete(ctx, key)
}

// Clear removes every entry in the underlying store's namespace.
func (t *Typed[V]) Clear(ctx context.Context) error {
	return t.store.Clear(ctx)
}
