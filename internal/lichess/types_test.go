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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKeySetOrderInvariance(t *testing.T) {
	a := Query{
		FEN:     "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		Speeds:  []Speed{SpeedBlitz, SpeedRapid},
		Ratings: []int{1600, 1800},
	}
	b := Query{
		FEN:     "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		Speeds:  []Speed{SpeedRapid, SpeedBlitz},
		Ratings: []int{1800, 1600},
	}
	assert.Equal(t, a.CacheKey("fen"), b.CacheKey("fen"),
		"speeds and ratings are sets; their order must not change the key")
}

func TestCacheKeyMoveOrderSignificant(t *testing.T) {
	a := Query{UCIMoves: []string{"e2e4", "e7e5"}}
	b := Query{UCIMoves: []string{"e7e5", "e2e4"}}
	assert.NotEqual(t, a.CacheKey("play"), b.CacheKey("play"),
		"move lists are ordered; reordering reaches a different position")
}

func TestCacheKeyDefaults(t *testing.T) {
	bare := Query{FEN: " fen "}
	explicit := Query{
		FEN:     "fen",
		Speeds:  []Speed{SpeedBlitz},
		Ratings: []int{1600},
		Variant: "standard",
	}
	assert.Equal(t, explicit.CacheKey("fen"), bare.CacheKey("fen"),
		"defaults and whitespace trimming canonicalize into the explicit form")
}

func TestCacheKeyKindSeparation(t *testing.T) {
	q := Query{FEN: "fen", UCIMoves: []string{"e2e4"}}
	assert.NotEqual(t, q.CacheKey("fen"), q.CacheKey("play"))
}

func TestNormalizedDoesNotMutateInput(t *testing.T) {
	q := Query{Speeds: []Speed{SpeedRapid, SpeedBlitz}, Ratings: []int{1800, 1600}}
	_ = q.CacheKey("fen")
	assert.Equal(t, []Speed{SpeedRapid, SpeedBlitz}, q.Speeds)
	assert.Equal(t, []int{1800, 1600}, q.Ratings)
}

func TestMoveTotal(t *testing.T) {
	move := Move{White: 3, Draws: 2, Black: 1}
	assert.Equal(t, 6, move.Total())
	assert.Equal(t, 0, Move{}.Total())
}
