// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package chessio

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

// Ply describes one half-move of a game with the positions around it.
//
// FENBefore is the position the move was played from; FENAfter the
// resulting position. UCI is coordinate notation (e2e4, e7e8q), SAN is the
// undecorated short-algebraic move.
type Ply struct {
	Index      int    `json:"index"`      // 1-based ply number
	MoveNumber int    `json:"moveNumber"` // full-move number (1 for plies 1 and 2)
	Color      Side   `json:"color"`      // side that played the move
	SAN        string `json:"san"`
	UCI        string `json:"uci"`
	FENBefore  string `json:"fenBefore"`
	FENAfter   string `json:"fenAfter"`
}

// ExtractPlies replays a game record and returns up to limit plies with
// their surrounding positions.
//
// A record the parser cannot read at all yields an error; a record that
// stops being replayable mid-way yields the plies read so far.
func ExtractPlies(raw string, limit int) ([]Ply, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("extract plies: empty game record")
	}
	pgnFunc, err := chess.PGN(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("extract plies: %w", err)
	}
	game := chess.NewGame(pgnFunc)
	moves := game.Moves()
	positions := game.Positions()
	if limit <= 0 || limit > len(moves) {
		limit = len(moves)
	}

	encoder := chess.AlgebraicNotation{}
	plies := make([]Ply, 0, limit)
	for i := 0; i < limit; i++ {
		mv := moves[i]
		color := SideWhite
		if positions[i].Turn() == chess.Black {
			color = SideBlack
		}
		plies = append(plies, Ply{
			Index:      i + 1,
			MoveNumber: i/2 + 1,
			Color:      color,
			SAN:        CanonicalToken(encoder.Encode(positions[i], mv)),
			UCI:        mv.String(),
			FENBefore:  positions[i].String(),
			FENAfter:   positions[i+1].String(),
		})
	}
	return plies, nil
}

// PositionAfter replays up to limit plies of a record and returns the
// resulting FEN plus the UCI moves that reached it.
func PositionAfter(raw string, limit int) (fen string, uciMoves []string, err error) {
	plies, err := ExtractPlies(raw, limit)
	if err != nil {
		return "", nil, err
	}
	if len(plies) == 0 {
		return chess.NewGame().Position().String(), nil, nil
	}
	uciMoves = make([]string, len(plies))
	for i, p := range plies {
		uciMoves[i] = p.UCI
	}
	return plies[len(plies)-1].FENAfter, uciMoves, nil
}
