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
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/magicolala/chess-openings-analyzer/internal/cache"
	"github.com/magicolala/chess-openings-analyzer/internal/reqpool"
)

// Public endpoints of the lichess opening explorer.
const (
	DefaultExplorerBaseURL = "https://explorer.lichess.ovh/lichess"
	DefaultMastersBaseURL  = "https://explorer.lichess.ovh/master"
)

// Dataset TTLs. Masters data changes far less often than the community
// pool, so it keeps a much longer TTL.
const (
	DefaultExplorerTTL = time.Hour
	DefaultMastersTTL  = 24 * time.Hour
)

// ClientOptions configures a client. Zero fields take defaults.
type ClientOptions struct {
	BaseURL string
	TTL     time.Duration
	Logger  *slog.Logger
}

// ExplorerClient queries the community explorer dataset.
//
// Thread Safety: safe for concurrent use. Concurrent fetches of the
// same canonical query collapse into one upstream call.
type ExplorerClient struct {
	pool   *reqpool.Pool
	cache  *cache.Typed[Stats]
	base   string
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

// NewExplorerClient builds a client over pool and store. The store is
// the client's cache tier; keys are canonicalized query strings.
func NewExplorerClient(pool *reqpool.Pool, store cache.Store, opts ClientOptions) *ExplorerClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultExplorerBaseURL
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultExplorerTTL
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &ExplorerClient{
		pool:   pool,
		cache:  cache.NewTyped[Stats](store),
		base:   opts.BaseURL,
		ttl:    opts.TTL,
		logger: opts.Logger,
	}
}

// FetchByPosition looks the position up by FEN.
func (c *ExplorerClient) FetchByPosition(ctx context.Context, q Query) (*Stats, error) {
	n := q.normalized()
	if n.FEN == "" {
		return nil, ErrMissingFEN
	}
	return c.fetch(ctx, n.CacheKey("fen"), c.positionURL(n))
}

// FetchByMoveList looks the position up by its UCI move list from the
// start position.
func (c *ExplorerClient) FetchByMoveList(ctx context.Context, q Query) (*Stats, error) {
	n := q.normalized()
	if len(n.UCIMoves) == 0 {
		return nil, ErrMissingMoves
	}
	return c.fetch(ctx, n.CacheKey("play"), c.moveListURL(n))
}

// FetchBestAvailable tries a position lookup first and falls back to
// the move-list lookup when the query carries one. Without a move list
// the position error is returned as-is.
func (c *ExplorerClient) FetchBestAvailable(ctx context.Context, q Query) (*Stats, error) {
	stats, err := c.FetchByPosition(ctx, q)
	if err == nil {
		return stats, nil
	}
	if len(q.UCIMoves) == 0 {
		return nil, err
	}
	c.logger.Debug("position lookup failed, falling back to move list", "error", err)
	return c.FetchByMoveList(ctx, q)
}

func (c *ExplorerClient) fetch(ctx context.Context, key, fetchURL string) (*Stats, error) {
	if stats, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		return &stats, nil
	} else if err != nil {
		c.logger.Warn("cache read failed", "key", key, "error", err)
	}

	value, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check after winning the flight; a concurrent caller may
		// have filled the cache while we queued.
		if stats, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			return &stats, nil
		}
		var stats Stats
		if err := c.pool.GetJSON(ctx, fetchURL, &stats); err != nil {
			return nil, err
		}
		if err := c.cache.Set(ctx, key, stats, c.ttl); err != nil {
			c.logger.Warn("cache write failed", "key", key, "error", err)
		}
		return &stats, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*Stats), nil
}

func (c *ExplorerClient) positionURL(q Query) string {
	params := url.Values{}
	params.Set("variant", q.Variant)
	params.Set("fen", q.FEN)
	setPoolParams(params, q)
	return c.base + "?" + params.Encode()
}

func (c *ExplorerClient) moveListURL(q Query) string {
	params := url.Values{}
	params.Set("variant", q.Variant)
	params.Set("play", strings.Join(q.UCIMoves, ","))
	setPoolParams(params, q)
	return c.base + "?" + params.Encode()
}

func setPoolParams(params url.Values, q Query) {
	if len(q.Speeds) > 0 {
		speeds := make([]string, len(q.Speeds))
		for i, s := range q.Speeds {
			speeds[i] = string(s)
		}
		params.Set("speeds", strings.Join(speeds, ","))
	}
	if len(q.Ratings) > 0 {
		ratings := make([]string, len(q.Ratings))
		for i, r := range q.Ratings {
			ratings[i] = strconv.Itoa(r)
		}
		params.Set("ratings", strings.Join(ratings, ","))
	}
}

// MastersClient queries the masters (OTB reference games) dataset.
//
// Thread Safety: safe for concurrent use.
type MastersClient struct {
	pool   *reqpool.Pool
	cache  *cache.Typed[Stats]
	base   string
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

// NewMastersClient builds a client over pool and store.
func NewMastersClient(pool *reqpool.Pool, store cache.Store, opts ClientOptions) *MastersClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultMastersBaseURL
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultMastersTTL
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &MastersClient{
		pool:   pool,
		cache:  cache.NewTyped[Stats](store),
		base:   opts.BaseURL,
		ttl:    opts.TTL,
		logger: opts.Logger,
	}
}

// Fetch looks the position up by FEN in the masters dataset.
func (c *MastersClient) Fetch(ctx context.Context, fen string) (*Stats, error) {
	fen = strings.TrimSpace(fen)
	if fen == "" {
		return nil, ErrMissingFEN
	}
	key := "masters|" + fen

	if stats, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		return &stats, nil
	} else if err != nil {
		c.logger.Warn("cache read failed", "key", key, "error", err)
	}

	value, err, _ := c.group.Do(key, func() (any, error) {
		if stats, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			return &stats, nil
		}
		params := url.Values{}
		params.Set("fen", fen)
		var stats Stats
		if err := c.pool.GetJSON(ctx, c.base+"?"+params.Encode(), &stats); err != nil {
			return nil, err
		}
		if err := c.cache.Set(ctx, key, stats, c.ttl); err != nil {
			c.logger.Warn("cache write failed", "key", key, "error", err)
		}
		return &stats, nil
	})
	if err != nil {
		return nil, fmt.Errorf("masters fetch: %w", err)
	}
	return value.(*Stats), nil
}
