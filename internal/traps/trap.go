// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package traps detects known opening trap sequences, and near-misses of
// them, inside arbitrary move streams.
//
// Traps are registered once at startup into a shared prefix tree; matching
// walks the tree from every candidate start ply. Two traps may share a
// prefix, and a node may terminate several traps at once.
package traps

import (
	"errors"

	"github.com/magicolala/chess-openings-analyzer/internal/chessio"
)

// Sentinel errors for trap registration.
var (
	// ErrEmptySequence indicates a trap was registered without moves.
	ErrEmptySequence = errors.New("trap sequence must not be empty")

	// ErrEmptyID indicates a trap was registered without an id.
	ErrEmptyID = errors.New("trap id must not be empty")
)

// Trap is one known trap line, starting from ply 0 of the game.
//
// Traps are immutable after registration.
type Trap struct {
	// ID uniquely identifies the trap.
	ID string

	// Name is the human label.
	Name string

	// Side is the side that springs the trap.
	Side chessio.Side

	// OpeningTags are free-text labels matched case-insensitively as
	// substrings against an opening's display name.
	OpeningTags []string

	// Sequence is the exact canonical-token line of the trap.
	Sequence []string

	// Advice is short display text for the player.
	Advice string
}

// Match is a recognized trap occurrence inside a token stream.
type Match struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Side         chessio.Side `json:"side"`
	StartPly     int          `json:"startPly"`
	Length       int          `json:"length"`       // full registered sequence length
	MatchedPlies int          `json:"matchedPlies"` // consecutive tokens matched up to a terminal node
	Advice       string       `json:"advice,omitempty"`
	OpeningTags  []string     `json:"openingTags,omitempty"`
}

// NearMatch records a walk of at least nearThreshold plies that deviated
// before reaching any registered sequence end.
type NearMatch struct {
	StartPly     int
	MatchedPlies int

	// NextRequired is one still-reachable continuation token, or "" when
	// the walk ended on a childless node.
	NextRequired string
}

// Result bundles the outcome of a token scan.
type Result struct {
	Hits []Match
	Near []NearMatch
}

// Options filter a scan.
type Options struct {
	// OpeningLabel filters hits by trap tags when non-empty.
	OpeningLabel string

	// Side keeps only start plies where this side is to move and traps
	// belonging to this side. Empty means no side filter.
	Side chessio.Side

	// MaxStartPly bounds the candidate start plies. Zero or negative
	// means DefaultMaxStartPly.
	MaxStartPly int
}

// Recommendation is a trap suggested for a given opening.
type Recommendation struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Side     chessio.Side `json:"side"`
	Sequence []string     `json:"sequence"`
	Advice   string       `json:"advice,omitempty"`
}
