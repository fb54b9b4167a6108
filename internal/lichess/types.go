// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package lichess provides cached, rate-limited clients for the Lichess
// opening explorer services, plus move scoring and the reference-set
// (master-majority) evaluator built on their statistics.
package lichess

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// Sentinel errors for query validation.
var (
	ErrMissingFEN   = errors.New("lichess: query has no FEN")
	ErrMissingMoves = errors.New("lichess: query has no move list")
)

// Speed is a lichess time-control class.
type Speed string

const (
	SpeedBullet         Speed = "bullet"
	SpeedBlitz          Speed = "blitz"
	SpeedRapid          Speed = "rapid"
	SpeedClassical      Speed = "classical"
	SpeedCorrespondence Speed = "correspondence"
)

// DefaultVariant is assumed when a query names none.
const DefaultVariant = "standard"

// Query identifies an explorer position lookup.
type Query struct {
	// FEN of the position. Required for position lookups.
	FEN string

	// UCIMoves from the start position. Required for move-list lookups.
	// Order is significant.
	UCIMoves []string

	// Speeds filters the game pool. Order is not significant.
	Speeds []Speed

	// Ratings filters the game pool by rating bucket. Order is not
	// significant.
	Ratings []int

	// Variant of the game pool. Defaults to "standard".
	Variant string
}

// normalized returns a copy with defaults applied and the unordered
// sets sorted, so equivalent queries canonicalize identically.
func (q Query) normalized() Query {
	q.FEN = strings.TrimSpace(q.FEN)
	if q.Variant == "" {
		q.Variant = DefaultVariant
	}
	if len(q.Speeds) == 0 {
		q.Speeds = []Speed{SpeedBlitz}
	} else {
		speeds := append([]Speed(nil), q.Speeds...)
		sort.Slice(speeds, func(i, j int) bool { return speeds[i] < speeds[j] })
		q.Speeds = speeds
	}
	if len(q.Ratings) == 0 {
		q.Ratings = []int{1600}
	} else {
		ratings := append([]int(nil), q.Ratings...)
		sort.Ints(ratings)
		q.Ratings = ratings
	}
	return q
}

// CacheKey canonicalizes the query under kind ("fen" or "play").
// Speeds and Ratings are order-invariant; UCIMoves keep their order.
func (q Query) CacheKey(kind string) string {
	n := q.normalized()
	speeds := make([]string, len(n.Speeds))
	for i, s := range n.Speeds {
		speeds[i] = string(s)
	}
	ratings := make([]string, len(n.Ratings))
	for i, r := range n.Ratings {
		ratings[i] = strconv.Itoa(r)
	}
	return strings.Join([]string{
		kind,
		n.Variant,
		n.FEN,
		strings.Join(n.UCIMoves, ","),
		strings.Join(speeds, ","),
		strings.Join(ratings, ","),
	}, "|")
}

// Move is one continuation in an explorer response.
type Move struct {
	UCI           string `json:"uci"`
	SAN           string `json:"san"`
	White         int    `json:"white"`
	Draws         int    `json:"draws"`
	Black         int    `json:"black"`
	AverageRating int    `json:"averageRating,omitempty"`
}

// Total is the number of games in which the move was played.
func (m Move) Total() int {
	return m.White + m.Draws + m.Black
}

// Opening is the explorer's name for the queried position.
type Opening struct {
	ECO  string `json:"eco"`
	Name string `json:"name"`
}

// Stats is an explorer or masters response for one position.
type Stats struct {
	Moves   []Move   `json:"moves"`
	Opening *Opening `json:"opening,omitempty"`
	White   int      `json:"white"`
	Draws   int      `json:"draws"`
	Black   int      `json:"black"`
}

// TotalGames is the number of games reaching the position.
func (s *Stats) TotalGames() int {
	if s == nil {
		return 0
	}
	return s.White + s.Draws + s.Black
}
