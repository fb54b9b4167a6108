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
	"github.com/stretchr/testify/require"

	"github.com/magicolala/chess-openings-analyzer/internal/chessio"
)

func TestScoreMovesExpectedScore(t *testing.T) {
	stats := &Stats{Moves: []Move{
		{UCI: "e2e4", SAN: "e4", White: 80, Draws: 10, Black: 10},
	}}

	scored := ScoreMoves(stats, chessio.SideWhite, 0)
	require.Len(t, scored, 1)
	assert.InDelta(t, 0.85, scored[0].ExpectedScore, 1e-9)
	assert.Equal(t, 100, scored[0].Games)

	// The same move scored for black mirrors around the draws.
	scored = ScoreMoves(stats, chessio.SideBlack, 0)
	require.Len(t, scored, 1)
	assert.InDelta(t, 0.15, scored[0].ExpectedScore, 1e-9)
}

func TestScoreMovesFiltersBelowThreshold(t *testing.T) {
	stats := &Stats{Moves: []Move{
		{UCI: "e2e4", SAN: "e4", White: 80, Draws: 10, Black: 10}, // 0.85
		{UCI: "g2g4", SAN: "g4", White: 20, Draws: 10, Black: 70}, // 0.25
		{UCI: "d2d4", SAN: "d4", White: 55, Draws: 10, Black: 35}, // 0.60
	}}

	scored := ScoreMoves(stats, chessio.SideWhite, MinExpectedScore)
	require.Len(t, scored, 2)
	assert.Equal(t, "e2e4", scored[0].UCI)
	assert.Equal(t, "d2d4", scored[1].UCI)
}

func TestScoreMovesOrdering(t *testing.T) {
	stats := &Stats{Moves: []Move{
		{UCI: "b1c3", White: 6, Draws: 0, Black: 4},   // 0.6, 10 games
		{UCI: "a2a3", White: 60, Draws: 0, Black: 40}, // 0.6, 100 games
		{UCI: "c2c4", White: 70, Draws: 0, Black: 30}, // 0.7
	}}

	scored := ScoreMoves(stats, chessio.SideWhite, 0)
	require.Len(t, scored, 3)
	assert.Equal(t, "c2c4", scored[0].UCI, "higher score first")
	assert.Equal(t, "a2a3", scored[1].UCI, "equal score breaks on volume")
	assert.Equal(t, "b1c3", scored[2].UCI)
}

func TestScoreMovesZeroGames(t *testing.T) {
	stats := &Stats{Moves: []Move{{UCI: "e2e4"}}}
	scored := ScoreMoves(stats, chessio.SideWhite, 0)
	require.Len(t, scored, 1)
	assert.Zero(t, scored[0].ExpectedScore)

	assert.Empty(t, ScoreMoves(nil, chessio.SideWhite, 0))
}
