// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magicolala/chess-openings-analyzer/internal/chesscom"
	"github.com/magicolala/chess-openings-analyzer/internal/chessio"
	"github.com/magicolala/chess-openings-analyzer/internal/lichess"
	"github.com/magicolala/chess-openings-analyzer/internal/openings"
	"github.com/magicolala/chess-openings-analyzer/internal/traps"
)

// Analyzer runs the full preparation pipeline for one player.
type Analyzer struct {
	Chesscom   *chesscom.Client
	Explorer   *lichess.ExplorerClient
	Masters    *lichess.MastersClient
	Traps      *traps.Engine
	Book       *openings.Book
	Normalizer chessio.Normalizer
	Logger     *slog.Logger

	now   func() time.Time
	newID func() string
}

// NewAnalyzer wires the pipeline. All collaborators are required except
// Logger.
func NewAnalyzer(a Analyzer) *Analyzer {
	if a.Logger == nil {
		a.Logger = slog.Default()
	}
	if a.Normalizer == nil {
		a.Normalizer = chessio.NewNormalizer()
	}
	a.now = time.Now
	a.newID = func() string { return uuid.NewString() }
	return &a
}

// Report is the complete analysis of one player's recent openings.
type Report struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	GeneratedAt time.Time `json:"generatedAt"`

	Rating       int           `json:"rating"`
	Speed        lichess.Speed `json:"speed"`
	RatingBucket int           `json:"ratingBucket"`
	GamesSeen    int           `json:"gamesSeen"`

	White Buckets `json:"white"`
	Black Buckets `json:"black"`
}

// Analyze fetches the player's recent games and runs every stage:
// aggregation, trap scan, explorer advice, master-theory deviations,
// and improvement plans.
func (a *Analyzer) Analyze(ctx context.Context, username string, cfg Config) (*Report, error) {
	pc, err := a.Chesscom.FetchPlayerContext(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("analyze %q: %w", username, err)
	}
	rating := pc.Stats.Rating()
	meta := ResolveMeta(pc.Stats, rating, cfg)
	a.Logger.Info("analysis started",
		"username", pc.Profile.Username, "games", len(pc.Games),
		"rating", rating, "speed", meta.Speed, "ratingBucket", meta.RatingBucket)

	games := make([]GamePGN, 0, len(pc.Games))
	for _, g := range pc.Games {
		games = append(games, GamePGN{
			PGN:           g.PGN,
			URL:           g.URL,
			EndTime:       g.EndTime,
			WhiteUsername: g.White.Username,
			BlackUsername: g.Black.Username,
			WhiteResult:   g.White.Result,
			BlackResult:   g.Black.Result,
		})
	}

	agg := Aggregate(games, pc.Profile.Username, Deps{
		Normalizer: a.Normalizer,
		Traps:      a.Traps,
		Book:       a.Book,
	})

	enricher := &Enricher{Explorer: a.Explorer, Masters: a.Masters, Logger: a.Logger}
	for _, side := range []struct {
		buckets Buckets
		color   chessio.Side
	}{
		{agg.White, chessio.SideWhite},
		{agg.Black, chessio.SideBlack},
	} {
		enricher.EnrichWithExplorer(ctx, side.buckets, meta, cfg)
		enricher.AnnotateTheory(ctx, side.buckets, side.color, meta, cfg)
		enricher.ImprovementPlans(ctx, side.buckets, side.color, meta, cfg)
	}

	report := &Report{
		ID:           a.newID(),
		Username:     pc.Profile.Username,
		GeneratedAt:  a.now().UTC(),
		Rating:       rating,
		Speed:        meta.Speed,
		RatingBucket: meta.RatingBucket,
		GamesSeen:    len(pc.Games),
		White:        agg.White,
		Black:        agg.Black,
	}
	a.Logger.Info("analysis finished",
		"username", report.Username, "report", report.ID,
		"whiteOpenings", len(report.White), "blackOpenings", len(report.Black))
	return report, nil
}
