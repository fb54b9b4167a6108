// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"time"
)

// Config is the full on-disk configuration of the analyzer.
type Config struct {
	// Server: where the HTTP API listens
	Server ServerConfig `yaml:"server"`

	// Cache: durable cache placement and retention
	Cache CacheConfig `yaml:"cache"`

	// Lichess: request pacing against the opening explorer
	Lichess PoolConfig `yaml:"lichess"`

	// Chesscom: request pacing against the chess.com archives
	Chesscom PoolConfig `yaml:"chesscom"`

	// Analysis: report tuning knobs
	Analysis AnalysisConfig `yaml:"analysis"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"` // e.g. :8080
}

type CacheConfig struct {
	Dir              string `yaml:"dir"`       // empty means <config dir>/cache
	InMemory         bool   `yaml:"in_memory"` // skip the disk entirely
	SyncWrites       bool   `yaml:"sync_writes"`
	ExplorerTTLHours int    `yaml:"explorer_ttl_hours"`
	MastersTTLHours  int    `yaml:"masters_ttl_hours"`
}

func (c CacheConfig) ExplorerTTL() time.Duration {
	return time.Duration(c.ExplorerTTLHours) * time.Hour
}

func (c CacheConfig) MastersTTL() time.Duration {
	return time.Duration(c.MastersTTLHours) * time.Hour
}

// PoolConfig paces one upstream. Durations are in milliseconds to keep
// the YAML plain.
type PoolConfig struct {
	IntervalMs    int `yaml:"interval_ms"`
	MaxConcurrent int `yaml:"max_concurrent"`
	Retries       int `yaml:"retries"`
	RetryDelayMs  int `yaml:"retry_delay_ms"`
	Max429Retries int `yaml:"max_429_retries"`
}

func (p PoolConfig) Interval() time.Duration {
	return time.Duration(p.IntervalMs) * time.Millisecond
}

func (p PoolConfig) RetryDelay() time.Duration {
	return time.Duration(p.RetryDelayMs) * time.Millisecond
}

type AnalysisConfig struct {
	// Months of chess.com archives to read.
	Months int `yaml:"months"`

	// Speed forces a time class; empty or "auto" follows the player.
	Speed string `yaml:"speed"`

	// RatingOffset shifts the explorer bucket, e.g. 200 to prepare
	// against stronger opposition.
	RatingOffset int `yaml:"rating_offset"`

	Majority MajorityConfig `yaml:"majority"`

	MinExpectedScore     float64 `yaml:"min_expected_score"`
	ImprovementThreshold float64 `yaml:"improvement_threshold"`
}

// MajorityConfig selects how the master reference set is built.
type MajorityConfig struct {
	// Mode is one of "top1", "topk", "coverage".
	Mode string `yaml:"mode"`

	// TopK applies in "topk" mode.
	TopK int `yaml:"top_k"`

	// CoverageThreshold applies in "coverage" mode, in (0, 1].
	CoverageThreshold float64 `yaml:"coverage_threshold"`

	// MinGames is the volume floor below which a position is skipped.
	// Zero picks the built-in default; a negative value disables the
	// floor.
	MinGames int `yaml:"min_games"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Cache: CacheConfig{
			ExplorerTTLHours: 1,
			MastersTTLHours:  24,
		},
		Lichess: PoolConfig{
			IntervalMs:    200,
			MaxConcurrent: 2,
			Retries:       3,
			RetryDelayMs:  500,
			Max429Retries: 2,
		},
		Chesscom: PoolConfig{
			IntervalMs:    100,
			MaxConcurrent: 3,
			Retries:       3,
			RetryDelayMs:  500,
			Max429Retries: 2,
		},
		Analysis: AnalysisConfig{
			Months:               3,
			Speed:                "auto",
			Majority:             MajorityConfig{Mode: "top1"},
			MinExpectedScore:     0.57,
			ImprovementThreshold: 0.08,
		},
	}
}
