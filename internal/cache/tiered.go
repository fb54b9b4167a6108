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
	"time"
)

// Tiered layers a hot store over a warm one. Reads check hot first and
// promote warm hits; writes go to both.
type Tiered struct {
	hot  Store
	warm Store

	// PromoteTTL bounds the hot-tier lifetime of promoted entries. The
	// warm tier tracks the real expiry, so the hot copy only needs to
	// live long enough to absorb bursts.
	PromoteTTL time.Duration
}

// NewTiered composes hot over warm.
func NewTiered(hot, warm Store) *Tiered {
	return &Tiered{hot: hot, warm: warm, PromoteTTL: 5 * time.Minute}
}

// Get checks the hot tier first, then the warm tier, promoting warm
// hits into the hot tier.
func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if value, ok, err := t.hot.Get(ctx, key); err != nil || ok {
		if ok {
			tierHits.WithLabelValues("hot").Inc()
		}
		return value, ok, err
	}
	value, ok, err := t.warm.Get(ctx, key)
	if err != nil || !ok {
		if err == nil {
			tierMisses.Inc()
		}
		return nil, false, err
	}
	tierHits.WithLabelValues("warm").Inc()
	// Promotion failure is not a read failure.
	_ = t.hot.Set(ctx, key, value, t.PromoteTTL)
	return value, true, nil
}

// Set writes to both tiers.
func (t *Tiered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	hotTTL := ttl
	if t.PromoteTTL > 0 && (ttl <= 0 || t.PromoteTTL < ttl) {
		hotTTL = t.PromoteTTL
	}
	if err := t.hot.Set(ctx, key, value, hotTTL); err != nil {
		return err
	}
	return t.warm.Set(ctx, key, value, ttl)
}

// Delete removes key from both tiers.
func (t *Tiered) Delete(ctx context.Context, key string) error {
	hotErr := t.hot.Delete(ctx, key)
	warmErr := t.warm.Delete(ctx, key)
	if hotErr != nil {
		return hotErr
	}
	return warmErr
}

// Clear clears both tiers.
func (t *Tiered) Clear(ctx context.Context) error {
	hotErr := t.hot.Clear(ctx)
	warmErr := t.warm.Clear(ctx)
	if hotErr != nil {
		return hotErr
	}
	return warmErr
}

// Close closes both tiers.
func (t *Tiered) Close() error {
	hotErr := t.hot.Close()
	warmErr := t.warm.Close()
	if hotErr != nil {
		return hotErr
	}
	return warmErr
}
