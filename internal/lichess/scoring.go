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
	"sort"

	"github.com/magicolala/chess-openings-analyzer/internal/chessio"
)

// MinExpectedScore is the default advice threshold: continuations below
// it are not worth recommending.
const MinExpectedScore = 0.57

// ScoredMove is a continuation with its expected score for one side.
type ScoredMove struct {
	Move
	Games         int     `json:"games"`
	ExpectedScore float64 `json:"expectedScore"`
}

// ScoreMoves ranks the continuations in stats for the given side.
//
// Description:
//
//	The expected score of a move is (wins + 0.5*draws) / games from the
//	perspective of side, or 0 when the move has no games. Moves scoring
//	below minExpectedScore are dropped. The result is ordered by
//	descending expected score, then descending games, then ascending
//	UCI so equal lines rank deterministically.
//
// Inputs:
//
//	stats - Explorer statistics. nil yields an empty slice.
//	side - The side whose score is computed.
//	minExpectedScore - Inclusive lower bound; 0 keeps everything.
//
// Outputs:
//
//	[]ScoredMove - Ranked continuations, possibly empty, never nil.
func ScoreMoves(stats *Stats, side chessio.Side, minExpectedScore float64) []ScoredMove {
	scored := []ScoredMove{}
	if stats == nil {
		return scored
	}
	for _, move := range stats.Moves {
		games := move.Total()
		wins := move.White
		if side == chessio.SideBlack {
			wins = move.Black
		}
		score := 0.0
		if games > 0 {
			score = (float64(wins) + 0.5*float64(move.Draws)) / float64(games)
		}
		if score < minExpectedScore {
			continue
		}
		scored = append(scored, ScoredMove{Move: move, Games: games, ExpectedScore: score})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].ExpectedScore != scored[j].ExpectedScore {
			return scored[i].ExpectedScore > scored[j].ExpectedScore
		}
		if scored[i].Games != scored[j].Games {
			return scored[i].Games > scored[j].Games
		}
		return scored[i].UCI < scored[j].UCI
	})
	return scored
}
