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
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/magicolala/chess-openings-analyzer/internal/chessio"
	"github.com/magicolala/chess-openings-analyzer/internal/lichess"
	"github.com/magicolala/chess-openings-analyzer/internal/reqpool"
)

// DefaultImprovementThreshold is the minimum expected-score gain worth
// reporting.
const DefaultImprovementThreshold = 0.08

// maxImprovementsPerBucket caps improvements per opening.
const maxImprovementsPerBucket = 3

// adviceMoves and replyMoves bound suggestion lists.
const (
	adviceMoves = 5
	replyMoves  = 3
)

// Config tunes the enrichment stages. Zero fields take defaults.
type Config struct {
	// SpeedOverride forces a time class; empty means the player's
	// preferred class.
	SpeedOverride string

	// RatingOffset shifts the explorer rating bucket, e.g. +200 to
	// prepare against stronger opposition.
	RatingOffset int

	// Majority parameterizes the master-reference evaluation.
	Majority lichess.MajorityConfig

	// MinExpectedScore filters advice suggestions. Default:
	// lichess.MinExpectedScore.
	MinExpectedScore float64

	// ImprovementThreshold is the minimum score delta for an
	// improvement. Default: DefaultImprovementThreshold.
	ImprovementThreshold float64
}

func (c Config) minExpectedScore() float64 {
	if c.MinExpectedScore > 0 {
		return c.MinExpectedScore
	}
	return lichess.MinExpectedScore
}

func (c Config) improvementThreshold() float64 {
	if c.ImprovementThreshold > 0 {
		return c.ImprovementThreshold
	}
	return DefaultImprovementThreshold
}

// Meta records the explorer parameters one analysis ran with.
type Meta struct {
	Speed        lichess.Speed
	RatingBucket int
}

// TheoryErrorKind classifies why theory annotation failed.
type TheoryErrorKind string

const (
	TheoryRateLimited TheoryErrorKind = "rate-limited"
	TheoryNotFound    TheoryErrorKind = "not-found"
	TheoryUnavailable TheoryErrorKind = "unavailable"
)

// TheoryError is a per-bucket theory annotation failure, typed so the
// caller can offer "resume later" for rate limits.
type TheoryError struct {
	Kind       TheoryErrorKind `json:"kind"`
	Message    string          `json:"message"`
	RetryAfter time.Duration   `json:"retryAfter,omitempty"` // only meaningful for TheoryRateLimited
}

func describeTheoryError(err error) *TheoryError {
	var throttled *reqpool.ThrottledError
	if errors.As(err, &throttled) {
		return &TheoryError{
			Kind:       TheoryRateLimited,
			Message:    "masters service is rate limiting; resume the theory check later",
			RetryAfter: throttled.RetryAfter,
		}
	}
	if reqpool.StatusOf(err) == http.StatusNotFound {
		return &TheoryError{
			Kind:    TheoryNotFound,
			Message: "no master reference available for this line",
		}
	}
	return &TheoryError{
		Kind:    TheoryUnavailable,
		Message: "master theory check unavailable: " + err.Error(),
	}
}

// Enricher runs the explorer- and masters-backed stages over buckets.
type Enricher struct {
	Explorer *lichess.ExplorerClient
	Masters  *lichess.MastersClient
	Logger   *slog.Logger
}

func (e *Enricher) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// ResolveMeta picks the speed and rating bucket for a run.
func ResolveMeta(stats interface{ PreferredTimeClass() string }, playerRating int, cfg Config) Meta {
	class := cfg.SpeedOverride
	if class == "" || class == "auto" {
		class = stats.PreferredTimeClass()
	}
	return Meta{
		Speed:        lichess.MapSpeed(class),
		RatingBucket: lichess.PickRatingBucket(playerRating, cfg.RatingOffset),
	}
}

// EnrichWithExplorer attaches explorer advice to the most played
// buckets. Per-bucket failures are logged and skipped; the rest of the
// report stays usable.
func (e *Enricher) EnrichWithExplorer(ctx context.Context, buckets Buckets, meta Meta, cfg Config) {
	for _, bucket := range topBuckets(buckets, topEnrich) {
		if len(bucket.SampleTokens) == 0 || bucket.SamplePGN == "" {
			continue
		}
		fen, uciMoves, err := chessio.PositionAfter(bucket.SamplePGN, openingDetectionPlies)
		if err != nil {
			e.logger().Warn("cannot replay sample line", "opening", bucket.Name, "error", err)
			continue
		}
		stats, err := e.Explorer.FetchBestAvailable(ctx, lichess.Query{
			FEN:      fen,
			UCIMoves: uciMoves,
			Speeds:   []lichess.Speed{meta.Speed},
			Ratings:  []int{meta.RatingBucket},
		})
		if err != nil {
			e.logger().Warn("explorer advice unavailable", "opening", bucket.Name, "error", err)
			continue
		}

		sideToMove := chessio.SideToMove(len(uciMoves))
		suggestions := lichess.ScoreMoves(stats, sideToMove, cfg.minExpectedScore())
		if len(suggestions) > adviceMoves {
			suggestions = suggestions[:adviceMoves]
		}

		advice := &Advice{
			FEN:          fen,
			Speed:        meta.Speed,
			RatingBucket: meta.RatingBucket,
			Suggestions:  suggestions,
		}
		advice.Totals.White = stats.White
		advice.Totals.Draws = stats.Draws
		advice.Totals.Black = stats.Black
		if stats.Opening != nil {
			advice.OpeningName = stats.Opening.Name
			advice.ECO = stats.Opening.ECO
			if bucket.ECO == "" {
				bucket.ECO = stats.Opening.ECO
			}
		}
		bucket.Advice = advice
	}
}

// AnnotateTheory checks the player's moves in the most played buckets
// against the master reference set and records deviations with
// suggested punishments for the side that now gets to move.
//
// The masters lookups run sequentially: the dataset rate limits
// aggressively, and a rate-limit error aborts the remaining plies of
// the bucket with a typed TheoryErr instead of failing the report.
func (e *Enricher) AnnotateTheory(ctx context.Context, buckets Buckets, playerColor chessio.Side, meta Meta, cfg Config) {
	replySide := playerColor.Opposite()
	for _, bucket := range topBuckets(buckets, topTheory) {
		if bucket.SamplePGN == "" {
			continue
		}
		bucket.TheoryErr = nil

		plies, err := chessio.ExtractPlies(bucket.SamplePGN, theoryPlies)
		if err != nil {
			e.logger().Warn("cannot replay sample game", "opening", bucket.Name, "error", err)
			continue
		}

		var deviations []Deviation
		failed := false
		for _, ply := range plies {
			if ply.Color != playerColor {
				continue
			}
			masters, err := e.Masters.Fetch(ctx, ply.FENBefore)
			if err != nil {
				e.logger().Warn("masters lookup failed", "opening", bucket.Name, "ply", ply.Index, "error", err)
				bucket.TheoryErr = describeTheoryError(err)
				failed = true
				break
			}
			eval := lichess.EvaluateMove(masters, ply.UCI, cfg.Majority)
			if !eval.Considered || eval.InBook == nil || *eval.InBook {
				continue
			}

			// Out of book: ask the community explorer how the side to
			// move now punishes it.
			replies, err := e.Explorer.FetchByPosition(ctx, lichess.Query{
				FEN:     ply.FENAfter,
				Speeds:  []lichess.Speed{meta.Speed},
				Ratings: []int{meta.RatingBucket},
			})
			if err != nil {
				e.logger().Warn("reply suggestions unavailable", "opening", bucket.Name, "ply", ply.Index, "error", err)
				continue
			}
			scored := lichess.ScoreMoves(replies, replySide, 0)
			if len(scored) == 0 {
				continue
			}
			if len(scored) > replyMoves {
				scored = scored[:replyMoves]
			}
			tokensBefore := bucket.SampleTokens
			if cut := ply.Index - 1; cut >= 0 && len(tokensBefore) > cut {
				tokensBefore = tokensBefore[:cut]
			}
			deviations = append(deviations, Deviation{
				Ply:            ply,
				Evaluation:     eval,
				Recommendation: scored[0],
				Alternatives:   scored,
				TokensBefore:   tokensBefore,
			})
		}
		if !failed {
			bucket.Deviations = deviations
		}
	}
}

// ImprovementPlans compares the player's moves against the best-scoring
// explorer continuation and keeps the plies with the largest gaps.
func (e *Enricher) ImprovementPlans(ctx context.Context, buckets Buckets, playerColor chessio.Side, meta Meta, cfg Config) {
	threshold := cfg.improvementThreshold()
	for _, bucket := range topBuckets(buckets, topPlans) {
		if bucket.SamplePGN == "" {
			continue
		}
		plies, err := chessio.ExtractPlies(bucket.SamplePGN, theoryPlies)
		if err != nil {
			e.logger().Warn("cannot replay sample game", "opening", bucket.Name, "error", err)
			continue
		}

		var improvements []Improvement
		for _, ply := range plies {
			if ply.Color != playerColor {
				continue
			}
			stats, err := e.Explorer.FetchByPosition(ctx, lichess.Query{
				FEN:     ply.FENBefore,
				Speeds:  []lichess.Speed{meta.Speed},
				Ratings: []int{meta.RatingBucket},
			})
			if err != nil {
				e.logger().Warn("improvement lookup failed", "opening", bucket.Name, "ply", ply.Index, "error", err)
				continue
			}
			moves := lichess.ScoreMoves(stats, playerColor, 0)
			if len(moves) == 0 {
				continue
			}
			if len(moves) > adviceMoves {
				moves = moves[:adviceMoves]
			}
			best := moves[0]

			var ourMove *lichess.ScoredMove
			ourScore := 0.0
			for i := range moves {
				if moves[i].UCI == ply.UCI {
					ourMove = &moves[i]
					ourScore = moves[i].ExpectedScore
					break
				}
			}
			delta := best.ExpectedScore - ourScore
			if delta < threshold {
				continue
			}

			tokensBefore := bucket.SampleTokens
			if cut := ply.Index - 1; cut >= 0 && len(tokensBefore) > cut {
				tokensBefore = tokensBefore[:cut]
			}
			improvements = append(improvements, Improvement{
				Ply:            ply,
				Delta:          delta,
				Recommendation: best,
				Alternatives:   moves,
				OurMove:        ourMove,
				TokensBefore:   tokensBefore,
			})
			if len(improvements) >= maxImprovementsPerBucket {
				break
			}
		}
		if len(improvements) > 0 {
			bucket.Improvements = improvements
		}
	}
}
