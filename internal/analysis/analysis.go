// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package analysis orchestrates a player's opening preparation report:
// it buckets recent games by opening, scans them for traps, enriches
// the most played lines with explorer advice, annotates deviations from
// master theory, and derives concrete improvement plans.
package analysis

import (
	"sort"
	"strings"

	"github.com/magicolala/chess-openings-analyzer/internal/chessio"
	"github.com/magicolala/chess-openings-analyzer/internal/lichess"
	"github.com/magicolala/chess-openings-analyzer/internal/traps"
)

// Ply limits per concern.
const (
	// openingDetectionPlies bounds how deep opening naming looks.
	openingDetectionPlies = 20

	// trapScanPlies bounds how late a trap may start.
	trapScanPlies = 24

	// theoryPlies bounds deviation and improvement scans.
	theoryPlies = 32
)

// Bucket selection widths per stage.
const (
	topEnrich = 8
	topTheory = 6
	topPlans  = 5
)

// maxTrapHitsPerGame caps trap hits recorded per game.
const maxTrapHitsPerGame = 2

// GameRef points back to one archived game inside a bucket.
type GameRef struct {
	PGN         string `json:"pgn,omitempty"`
	URL         string `json:"url,omitempty"`
	Opponent    string `json:"opponent,omitempty"`
	EndTime     int64  `json:"endTime,omitempty"`
	YouAreWhite bool   `json:"youAreWhite"`
	Result      string `json:"result"`
}

// Bucket aggregates a player's games in one opening, one color.
type Bucket struct {
	Name   string    `json:"name"`
	ECO    string    `json:"eco,omitempty"`
	Count  int       `json:"count"`
	Wins   int       `json:"wins"`
	Draws  int       `json:"draws"`
	Losses int       `json:"losses"`
	Games  []GameRef `json:"games,omitempty"`

	TrapHits []traps.Match `json:"trapHits,omitempty"`

	// SampleTokens and SamplePGN come from the first game seen in the
	// bucket; later stages replay them for positions.
	SampleTokens []string `json:"sampleTokens,omitempty"`
	SamplePGN    string   `json:"-"`

	// Filled by the enrichment stages.
	Advice       *Advice       `json:"advice,omitempty"`
	Deviations   []Deviation   `json:"deviations,omitempty"`
	TheoryErr    *TheoryError  `json:"theoryError,omitempty"`
	Improvements []Improvement `json:"improvements,omitempty"`
}

// Buckets maps opening name to bucket for one color.
type Buckets map[string]*Bucket

// Aggregation is the per-color bucketing of a player's games.
type Aggregation struct {
	White Buckets
	Black Buckets
}

// Deps are the collaborators Aggregate needs.
type Deps struct {
	Normalizer chessio.Normalizer
	Traps      *traps.Engine
	Book       interface {
		NameFor(tokens []string) (string, int)
	}
}

// Aggregate buckets games by opening name per color, tallies results,
// and scans each game for known traps.
func Aggregate(games []GamePGN, username string, deps Deps) Aggregation {
	lower := strings.ToLower(strings.TrimSpace(username))
	agg := Aggregation{White: Buckets{}, Black: Buckets{}}

	for _, game := range games {
		if game.PGN == "" {
			continue
		}
		youAreWhite := strings.ToLower(game.WhiteUsername) == lower
		tokens := deps.Normalizer.Normalize(game.PGN)
		if len(tokens) > openingDetectionPlies {
			tokens = tokens[:openingDetectionPlies]
		}
		name, _ := deps.Book.NameFor(tokens)

		buckets := agg.White
		playerSide := chessio.SideWhite
		if !youAreWhite {
			buckets = agg.Black
			playerSide = chessio.SideBlack
		}
		bucket, ok := buckets[name]
		if !ok {
			bucket = &Bucket{Name: name}
			buckets[name] = bucket
		}

		if len(bucket.SampleTokens) == 0 && len(tokens) > 0 {
			bucket.SampleTokens = tokens
		}
		if bucket.SamplePGN == "" {
			bucket.SamplePGN = game.PGN
		}

		bucket.Count++
		result := classifyResult(game, youAreWhite)
		switch result {
		case "win":
			bucket.Wins++
		case "loss":
			bucket.Losses++
		default:
			bucket.Draws++
		}

		opponent := game.BlackUsername
		if !youAreWhite {
			opponent = game.WhiteUsername
		}
		bucket.Games = append(bucket.Games, GameRef{
			PGN:         game.PGN,
			URL:         game.URL,
			Opponent:    opponent,
			EndTime:     game.EndTime,
			YouAreWhite: youAreWhite,
			Result:      result,
		})

		scan := deps.Traps.MatchGameRecord(game.PGN, deps.Normalizer, traps.Options{
			OpeningLabel: name,
			Side:         playerSide,
			MaxStartPly:  trapScanPlies,
		})
		if len(scan.Hits) > 0 {
			hits := scan.Hits
			if len(hits) > maxTrapHitsPerGame {
				hits = hits[:maxTrapHitsPerGame]
			}
			bucket.TrapHits = append(bucket.TrapHits, hits...)
		}
	}
	return agg
}

// GamePGN is the minimal game shape Aggregate consumes.
type GamePGN struct {
	PGN           string
	URL           string
	EndTime       int64
	WhiteUsername string
	BlackUsername string
	WhiteResult   string
	BlackResult   string
}

// classifyResult reduces chess.com's result codes to win/draw/loss from
// the player's perspective. A timeout is only a loss when the other
// side actually won.
func classifyResult(game GamePGN, youAreWhite bool) string {
	whiteTimeoutLoss := game.WhiteResult == "timeout" && game.BlackResult == "win"
	blackTimeoutLoss := game.BlackResult == "timeout" && game.WhiteResult == "win"
	switch {
	case game.WhiteResult == "win" || blackTimeoutLoss:
		if youAreWhite {
			return "win"
		}
		return "loss"
	case game.BlackResult == "win" || whiteTimeoutLoss:
		if youAreWhite {
			return "loss"
		}
		return "win"
	default:
		return "draw"
	}
}

// topBuckets returns up to limit buckets ordered by descending game
// count, name ascending on ties so selection is deterministic.
func topBuckets(buckets Buckets, limit int) []*Bucket {
	ordered := make([]*Bucket, 0, len(buckets))
	for _, bucket := range buckets {
		ordered = append(ordered, bucket)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Count != ordered[j].Count {
			return ordered[i].Count > ordered[j].Count
		}
		return ordered[i].Name < ordered[j].Name
	})
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}

// Advice is explorer-backed guidance for one opening line.
type Advice struct {
	OpeningName  string               `json:"openingName,omitempty"`
	ECO          string               `json:"eco,omitempty"`
	FEN          string               `json:"fen"`
	Speed        lichess.Speed        `json:"speed"`
	RatingBucket int                  `json:"ratingBucket"`
	Suggestions  []lichess.ScoredMove `json:"suggestions"`
	Totals       struct {
		White int `json:"white"`
		Draws int `json:"draws"`
		Black int `json:"black"`
	} `json:"totals"`
}

// Deviation is one ply where the player left master theory, with the
// statistically best replies from that position.
type Deviation struct {
	Ply            chessio.Ply          `json:"ply"`
	Evaluation     lichess.Evaluation   `json:"evaluation"`
	Recommendation lichess.ScoredMove   `json:"recommendation"`
	Alternatives   []lichess.ScoredMove `json:"alternatives"`
	TokensBefore   []string             `json:"tokensBefore,omitempty"` // line up to, not including, the deviating move
}

// Improvement is one ply where a better-scoring continuation exists.
type Improvement struct {
	Ply            chessio.Ply          `json:"ply"`
	Delta          float64              `json:"delta"`
	Recommendation lichess.ScoredMove   `json:"recommendation"`
	Alternatives   []lichess.ScoredMove `json:"alternatives"`
	OurMove        *lichess.ScoredMove  `json:"ourMove,omitempty"` // nil when the played move has no explorer data
	TokensBefore   []string             `json:"tokensBefore,omitempty"`
}
