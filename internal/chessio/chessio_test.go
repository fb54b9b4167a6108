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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shortPGN = `[Event "Test"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bc4 Nf6 4. Ng5 d5 5. exd5 Nxd5 1-0`

// TestNormalizePGN verifies full PGN records produce canonical tokens.
func TestNormalizePGN(t *testing.T) {
	n := NewNormalizer()
	tokens := n.Normalize(shortPGN)
	require.Equal(t, []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Nf6", "Ng5", "d5", "ed5", "Nd5"}, tokens)
}

// TestNormalizeIdempotent verifies normalizing normalized output is stable.
func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer()
	first := n.Normalize(shortPGN)
	second := n.Normalize(strings.Join(first, " "))
	assert.Equal(t, first, second)
}

// TestNormalizeBareMovetext verifies the lexical fallback handles fragments
// with comments, numbering, and decorations.
func TestNormalizeBareMovetext(t *testing.T) {
	n := NewNormalizer()
	tokens := n.Normalize("1. e4 {best by test} e5 2. Nf3! Nc6?! 3. Bb5+ a6 $4 1/2-1/2")
	assert.Equal(t, []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6"}, tokens)
}

// TestNormalizeEmpty verifies malformed input degrades to empty, not error.
func TestNormalizeEmpty(t *testing.T) {
	n := NewNormalizer()
	assert.Empty(t, n.Normalize(""))
	assert.Empty(t, n.Normalize("   \n  "))
	assert.Empty(t, n.Normalize("not a game at all %%%"))
}

func TestCanonicalToken(t *testing.T) {
	cases := map[string]string{
		"Nf3":    "Nf3",
		"Nxf3":   "Nf3",
		"exd5":   "ed5",
		"Qxf7#":  "Qf7",
		"Bb5+":   "Bb5",
		"e8=Q":   "e8",
		"O-O":    "O-O",
		"0-0-0":  "O-O-O",
		"Rad1":   "Rad1",
		"R1d2":   "R1d2",
		"1.":     "",
		"{note}": "",
		"1-0":    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, CanonicalToken(in), "token %q", in)
	}
}

func TestSideToMove(t *testing.T) {
	assert.Equal(t, SideWhite, SideToMove(0))
	assert.Equal(t, SideBlack, SideToMove(1))
	assert.Equal(t, SideWhite, SideToMove(8))
	assert.Equal(t, SideBlack, SideToMoveAfter([]string{"e4"}))
	assert.Equal(t, SideWhite, SideToMoveAfter([]string{"e4", "e5"}))
}

// TestExtractPlies verifies per-ply positions, colors, and encodings.
func TestExtractPlies(t *testing.T) {
	plies, err := ExtractPlies(shortPGN, 4)
	require.NoError(t, err)
	require.Len(t, plies, 4)

	assert.Equal(t, 1, plies[0].Index)
	assert.Equal(t, SideWhite, plies[0].Color)
	assert.Equal(t, "e4", plies[0].SAN)
	assert.Equal(t, "e2e4", plies[0].UCI)
	assert.True(t, strings.HasPrefix(plies[0].FENBefore, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w"))

	assert.Equal(t, SideBlack, plies[1].Color)
	assert.Equal(t, "e7e5", plies[1].UCI)
	assert.Equal(t, plies[0].FENAfter, plies[1].FENBefore)

	assert.Equal(t, 2, plies[2].MoveNumber)
	assert.Equal(t, "Nf3", plies[2].SAN)
}

func TestExtractPliesRejectsEmpty(t *testing.T) {
	_, err := ExtractPlies("", 10)
	require.Error(t, err)
}

func TestPositionAfter(t *testing.T) {
	fen, uci, err := PositionAfter(shortPGN, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"e2e4", "e7e5"}, uci)
	assert.Contains(t, fen, " w ")
}
