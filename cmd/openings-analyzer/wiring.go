// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"log/slog"

	"github.com/magicolala/chess-openings-analyzer/cmd/openings-analyzer/config"
	"github.com/magicolala/chess-openings-analyzer/internal/analysis"
	"github.com/magicolala/chess-openings-analyzer/internal/cache"
	"github.com/magicolala/chess-openings-analyzer/internal/chesscom"
	"github.com/magicolala/chess-openings-analyzer/internal/lichess"
	"github.com/magicolala/chess-openings-analyzer/internal/openings"
	"github.com/magicolala/chess-openings-analyzer/internal/reqpool"
	"github.com/magicolala/chess-openings-analyzer/internal/traps"
)

const userAgent = "chess-openings-analyzer/1.0 (github.com/magicolala/chess-openings-analyzer)"

func newPool(name string, pc config.PoolConfig, logger *slog.Logger) *reqpool.Pool {
	return reqpool.New(reqpool.Options{
		Name:          name,
		Interval:      pc.Interval(),
		MaxConcurrent: pc.MaxConcurrent,
		MaxRetries:    pc.Retries,
		RetryDelay:    pc.RetryDelay(),
		Max429Retries: pc.Max429Retries,
		UserAgent:     userAgent,
		Logger:        logger,
	})
}

// buildStores opens the durable cache and hands out one tiered store
// per dataset. A disk failure degrades to memory-only caching.
func buildStores(cc config.CacheConfig, logger *slog.Logger) (explorer, masters cache.Store, cleanup func()) {
	durable, err := cache.OpenDurable(cache.DurableConfig{
		Path:       cc.Dir,
		InMemory:   cc.InMemory,
		SyncWrites: cc.SyncWrites,
		Logger:     logger,
	})
	if err != nil {
		logger.Warn("durable cache unavailable, caching in memory only", "path", cc.Dir, "error", err)
		e, m := cache.NewMemory(), cache.NewMemory()
		return e, m, func() {
			e.Close()
			m.Close()
		}
	}
	explorerTier := cache.NewTiered(cache.NewMemory(), durable.NamespaceView("explorer|"))
	mastersTier := cache.NewTiered(cache.NewMemory(), durable.NamespaceView("masters|"))
	return explorerTier, mastersTier, func() {
		explorerTier.Close()
		mastersTier.Close()
		durable.Close()
	}
}

func buildMajority(mc config.MajorityConfig) (lichess.MajorityConfig, error) {
	var policy lichess.Policy
	var err error
	switch mc.Mode {
	case "", "top1":
		policy = lichess.Top1()
	case "topk":
		policy, err = lichess.TopK(mc.TopK)
	case "coverage":
		policy, err = lichess.Coverage(mc.CoverageThreshold)
	default:
		err = fmt.Errorf("unknown majority mode %q", mc.Mode)
	}
	if err != nil {
		return lichess.MajorityConfig{}, err
	}
	return lichess.MajorityConfig{Policy: policy, MinGames: mc.MinGames}, nil
}

func analysisConfig(ac config.AnalysisConfig) (analysis.Config, error) {
	majority, err := buildMajority(ac.Majority)
	if err != nil {
		return analysis.Config{}, err
	}
	return analysis.Config{
		SpeedOverride:        ac.Speed,
		RatingOffset:         ac.RatingOffset,
		Majority:             majority,
		MinExpectedScore:     ac.MinExpectedScore,
		ImprovementThreshold: ac.ImprovementThreshold,
	}, nil
}

// buildAnalyzer assembles the full pipeline from the loaded config.
// The returned cleanup flushes and closes the caches.
func buildAnalyzer(cfg config.Config, logger *slog.Logger) (*analysis.Analyzer, func(), error) {
	book := openings.NewBook()
	if err := book.Register(openings.DefaultPack()); err != nil {
		return nil, nil, fmt.Errorf("register opening book: %w", err)
	}
	engine := traps.NewEngine()
	if err := engine.Register(traps.DefaultPack()); err != nil {
		return nil, nil, fmt.Errorf("register traps: %w", err)
	}

	explorerStore, mastersStore, cleanup := buildStores(cfg.Cache, logger)
	lichessPool := newPool("lichess", cfg.Lichess, logger)
	chesscomPool := newPool("chesscom", cfg.Chesscom, logger)

	analyzer := analysis.NewAnalyzer(analysis.Analyzer{
		Chesscom: chesscom.NewClient(chesscomPool, chesscom.Options{
			Months: cfg.Analysis.Months,
			Logger: logger,
		}),
		Explorer: lichess.NewExplorerClient(lichessPool, explorerStore, lichess.ClientOptions{
			TTL:    cfg.Cache.ExplorerTTL(),
			Logger: logger,
		}),
		Masters: lichess.NewMastersClient(lichessPool, mastersStore, lichess.ClientOptions{
			TTL:    cfg.Cache.MastersTTL(),
			Logger: logger,
		}),
		Traps:  engine,
		Book:   book,
		Logger: logger,
	})
	return analyzer, cleanup, nil
}

// buildTraps registers the default trap pack for commands that do not
// need the full pipeline.
func buildTraps() (*traps.Engine, error) {
	engine := traps.NewEngine()
	if err := engine.Register(traps.DefaultPack()); err != nil {
		return nil, fmt.Errorf("register traps: %w", err)
	}
	return engine, nil
}
