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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySetGet(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	_, ok, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Hour))
	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryTTLExpiry(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Minute))
	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(time.Minute + time.Second)
	_, ok, err = m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire after its TTL")
	assert.Zero(t, m.Len())
}

func TestMemoryZeroTTLNeverExpires(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", []byte("v"), 0))
	now = now.Add(1000 * time.Hour)
	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryClearAndClose(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, m.Clear(ctx))
	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Close())
	err = m.Set(ctx, "k", []byte("v"), 0)
	assert.ErrorIs(t, err, ErrClosed)
	_, _, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestTieredPromotesWarmHits(t *testing.T) {
	hot := NewMemory()
	warm := NewMemory()
	tiered := NewTiered(hot, warm)
	defer tiered.Close()
	ctx := context.Background()

	// Seed the warm tier only, as if the process restarted with a cold
	// hot tier.
	require.NoError(t, warm.Set(ctx, "k", []byte("v"), time.Hour))

	got, ok, err := tiered.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	// The hit must now be served from the hot tier.
	_, ok, err = hot.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTieredWritesBothTiers(t *testing.T) {
	hot := NewMemory()
	warm := NewMemory()
	tiered := NewTiered(hot, warm)
	defer tiered.Close()
	ctx := context.Background()

	require.NoError(t, tiered.Set(ctx, "k", []byte("v"), time.Hour))
	_, ok, _ := hot.Get(ctx, "k")
	assert.True(t, ok)
	_, ok, _ = warm.Get(ctx, "k")
	assert.True(t, ok)

	require.NoError(t, tiered.Delete(ctx, "k"))
	_, ok, _ = hot.Get(ctx, "k")
	assert.False(t, ok)
	_, ok, _ = warm.Get(ctx, "k")
	assert.False(t, ok)
}

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestTypedRoundTrip(t *testing.T) {
	store := NewMemory()
	defer store.Close()
	typed := NewTyped[sample](store)
	ctx := context.Background()

	require.NoError(t, typed.Set(ctx, "k", sample{Name: "najdorf", Count: 3}, time.Hour))
	got, ok, err := typed.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sample{Name: "najdorf", Count: 3}, got)
}

func TestTypedCorruptEntryTreatedAsMiss(t *testing.T) {
	store := NewMemory()
	defer store.Close()
	typed := NewTyped[sample](store)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("{not json"), time.Hour))
	_, ok, err := typed.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	// The corrupt entry is purged so the next fill succeeds.
	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
