// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package chessio adapts the underlying chess rules library to the small
// surface the analysis core needs: turning raw game records into canonical
// move tokens and extracting per-ply positions.
//
// The core never talks to the rules library directly. Everything flows
// through the Normalizer interface so tests (and future library swaps) can
// substitute a deterministic implementation.
//
// Canonical move tokens are short-algebraic moves with decorations removed:
// no capture 'x', no check '+' or mate '#', no promotion suffix, no
// annotation glyphs, and castling spelled O-O / O-O-O. Equality between
// tokens is plain string equality.
package chessio

import (
	"strings"

	"github.com/notnil/chess"
)

// Side identifies the color to move or the color a trap belongs to.
type Side string

const (
	SideWhite Side = "white"
	SideBlack Side = "black"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideWhite {
		return SideBlack
	}
	return SideWhite
}

// SideToMove returns the side to move at a given ply. Ply 0 is White.
func SideToMove(ply int) Side {
	if ply%2 == 0 {
		return SideWhite
	}
	return SideBlack
}

// SideToMoveAfter returns the side to move once all tokens have been played.
func SideToMoveAfter(tokens []string) Side {
	return SideToMove(len(tokens))
}

// Normalizer turns a raw game record (PGN or bare movetext) into an ordered
// sequence of canonical move tokens.
//
// Implementations must be idempotent: normalizing an already-normalized
// sequence yields the same tokens.
type Normalizer interface {
	Normalize(raw string) []string
}

// PGNNormalizer is the default Normalizer. It parses full PGN through the
// rules library and falls back to a lexical tokenizer for bare movetext
// fragments the parser rejects.
type PGNNormalizer struct{}

// NewNormalizer returns the default normalizer.
func NewNormalizer() *PGNNormalizer {
	return &PGNNormalizer{}
}

// Normalize implements Normalizer.
//
// Malformed input degrades to whatever legal prefix could be read; a record
// with no readable moves yields an empty slice, never an error.
func (n *PGNNormalizer) Normalize(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if pgnFunc, err := chess.PGN(strings.NewReader(raw)); err == nil {
		game := chess.NewGame(pgnFunc)
		moves := game.Moves()
		positions := game.Positions()
		if len(moves) > 0 {
			encoder := chess.AlgebraicNotation{}
			tokens := make([]string, 0, len(moves))
			for i, mv := range moves {
				tok := CanonicalToken(encoder.Encode(positions[i], mv))
				if tok != "" {
					tokens = append(tokens, tok)
				}
			}
			return tokens
		}
	}
	return TokenizeMovetext(raw)
}

// CanonicalToken strips decorations from a single SAN token. Returns ""
// when nothing move-like remains.
func CanonicalToken(token string) string {
	tok := strings.TrimSpace(token)
	if tok == "" {
		return ""
	}
	switch tok {
	case "0-0", "O-O":
		return "O-O"
	case "0-0-0", "O-O-O":
		return "O-O-O"
	}
	tok = strings.NewReplacer("x", "", "+", "", "#", "", "!", "", "?", "").Replace(tok)
	if i := strings.IndexByte(tok, '='); i >= 0 {
		tok = tok[:i]
	}
	if !looksLikeMove(tok) {
		return ""
	}
	return tok
}

// CanonicalSequence canonicalizes every token and drops the ones that do
// not survive (comments, results, move numbers).
func CanonicalSequence(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if c := CanonicalToken(t); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// SanitizeSAN strips annotation decorations (+, #, ?, !) from a SAN
// sequence without touching captures or promotions. Used for display
// sequences that still need to be replayable by the rules library.
func SanitizeSAN(seq []string) []string {
	out := make([]string, 0, len(seq))
	for _, san := range seq {
		s := strings.TrimSpace(san)
		s = strings.NewReplacer("+", "", "#", "", "?", "", "!", "").Replace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// looksLikeMove reports whether a cleaned token has the shape of a SAN
// move: castling, a pawn push/capture, or a piece move.
func looksLikeMove(tok string) bool {
	if tok == "O-O" || tok == "O-O-O" {
		return true
	}
	if len(tok) < 2 || len(tok) > 5 {
		return false
	}
	i := 0
	switch tok[0] {
	case 'K', 'Q', 'R', 'N', 'B':
		i = 1
	}
	// Optional disambiguation file/rank, then a mandatory destination square.
	rest := tok[i:]
	switch len(rest) {
	case 2:
		return isFile(rest[0]) && isRank(rest[1])
	case 3:
		return (isFile(rest[0]) || isRank(rest[0])) && isFile(rest[1]) && isRank(rest[2])
	case 4:
		return isFile(rest[0]) && isRank(rest[1]) && isFile(rest[2]) && isRank(rest[3])
	default:
		return false
	}
}

func isFile(c byte) bool { return c >= 'a' && c <= 'h' }

func isRank(c byte) bool { return c >= '1' && c <= '8' }
