// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package lichess

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicolala/chess-openings-analyzer/internal/cache"
	"github.com/magicolala/chess-openings-analyzer/internal/reqpool"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func testPool(client *http.Client) *reqpool.Pool {
	return reqpool.New(reqpool.Options{Interval: time.Millisecond, MaxConcurrent: 2, Client: client})
}

func TestExplorerFetchByPositionCachesResult(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, startFEN, r.URL.Query().Get("fen"))
		assert.Equal(t, "standard", r.URL.Query().Get("variant"))
		w.Write([]byte(`{"moves":[{"uci":"e2e4","san":"e4","white":5,"draws":2,"black":3}],"white":5,"draws":2,"black":3}`))
	}))
	defer server.Close()

	store := cache.NewMemory()
	defer store.Close()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return now })
	client := NewExplorerClient(testPool(server.Client()), store, ClientOptions{BaseURL: server.URL, TTL: time.Minute})
	ctx := context.Background()
	q := Query{FEN: startFEN}

	first, err := client.FetchByPosition(ctx, q)
	require.NoError(t, err)
	require.Len(t, first.Moves, 1)
	assert.Equal(t, "e2e4", first.Moves[0].UCI)

	second, err := client.FetchByPosition(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, first.Moves, second.Moves)
	assert.Equal(t, int64(1), calls.Load(), "identical queries share one upstream call")

	// TTL elapse forces a refetch.
	now = now.Add(time.Minute + time.Second)
	_, err = client.FetchByPosition(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestExplorerEquivalentQueriesShareCacheEntry(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"moves":[]}`))
	}))
	defer server.Close()

	store := cache.NewMemory()
	defer store.Close()
	client := NewExplorerClient(testPool(server.Client()), store, ClientOptions{BaseURL: server.URL})
	ctx := context.Background()

	_, err := client.FetchByPosition(ctx, Query{FEN: startFEN, Speeds: []Speed{SpeedBlitz, SpeedRapid}, Ratings: []int{1800, 1600}})
	require.NoError(t, err)
	_, err = client.FetchByPosition(ctx, Query{FEN: startFEN, Speeds: []Speed{SpeedRapid, SpeedBlitz}, Ratings: []int{1600, 1800}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())
}

func TestExplorerSingleflightCollapsesConcurrentFetches(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(50 * time.Millisecond)
		w.Write([]byte(`{"moves":[]}`))
	}))
	defer server.Close()

	store := cache.NewMemory()
	defer store.Close()
	client := NewExplorerClient(testPool(server.Client()), store, ClientOptions{BaseURL: server.URL})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.FetchByPosition(context.Background(), Query{FEN: startFEN})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1), calls.Load(), "concurrent identical fetches collapse into one call")
}

func TestExplorerFetchBestAvailableFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fen") != "" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		assert.Equal(t, "e2e4,e7e5", r.URL.Query().Get("play"))
		w.Write([]byte(`{"moves":[{"uci":"g1f3","san":"Nf3","white":1,"draws":0,"black":0}]}`))
	}))
	defer server.Close()

	store := cache.NewMemory()
	defer store.Close()
	client := NewExplorerClient(testPool(server.Client()), store, ClientOptions{BaseURL: server.URL})
	ctx := context.Background()

	stats, err := client.FetchBestAvailable(ctx, Query{FEN: startFEN, UCIMoves: []string{"e2e4", "e7e5"}})
	require.NoError(t, err)
	require.Len(t, stats.Moves, 1)
	assert.Equal(t, "g1f3", stats.Moves[0].UCI)

	// Without a move list the position error surfaces unchanged.
	_, err = client.FetchBestAvailable(ctx, Query{FEN: startFEN})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, reqpool.StatusOf(err))
}

func TestExplorerValidation(t *testing.T) {
	store := cache.NewMemory()
	defer store.Close()
	client := NewExplorerClient(testPool(http.DefaultClient), store, ClientOptions{})
	ctx := context.Background()

	_, err := client.FetchByPosition(ctx, Query{})
	assert.ErrorIs(t, err, ErrMissingFEN)
	_, err = client.FetchByMoveList(ctx, Query{FEN: startFEN})
	assert.ErrorIs(t, err, ErrMissingMoves)
}

func TestMastersFetchCachesByFEN(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, startFEN, r.URL.Query().Get("fen"))
		w.Write([]byte(`{"moves":[{"uci":"e2e4","san":"e4","white":40,"draws":30,"black":30}]}`))
	}))
	defer server.Close()

	store := cache.NewMemory()
	defer store.Close()
	client := NewMastersClient(testPool(server.Client()), store, ClientOptions{BaseURL: server.URL})
	ctx := context.Background()

	first, err := client.Fetch(ctx, startFEN)
	require.NoError(t, err)
	require.Len(t, first.Moves, 1)

	_, err = client.Fetch(ctx, "  "+startFEN+"  ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load(), "whitespace-trimmed FEN shares the cache entry")

	_, err = client.Fetch(ctx, "")
	assert.ErrorIs(t, err, ErrMissingFEN)
}
