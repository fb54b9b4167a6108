// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package openings names opening lines by longest-prefix lookup over a
// registered set of token sequences.
package openings

import (
	"fmt"

	"github.com/magicolala/chess-openings-analyzer/internal/chessio"
)

// UnknownOpening is returned when no registered line prefixes the tokens.
const UnknownOpening = "Unknown opening"

// Line couples a token sequence with its display name.
type Line struct {
	Sequence []string
	Name     string
}

type bookNode struct {
	children map[string]*bookNode
	name     string // non-empty when a line ends here
}

func newBookNode() *bookNode {
	return &bookNode{children: make(map[string]*bookNode)}
}

// Book resolves token sequences to opening names.
//
// Thread Safety:
//
//	Register must complete before concurrent use; lookups afterwards are
//	read-only and safe for concurrent use.
type Book struct {
	root *bookNode
	size int
}

// NewBook returns an empty book.
func NewBook() *Book {
	return &Book{root: newBookNode()}
}

// Register inserts lines. Later registrations of the same sequence
// overwrite the name. Empty sequences fail fast.
func (b *Book) Register(lines []Line) error {
	for i, line := range lines {
		seq := chessio.CanonicalSequence(line.Sequence)
		if len(seq) == 0 {
			return fmt.Errorf("register opening line %d (%q): empty sequence", i, line.Name)
		}
		node := b.root
		for _, tok := range seq {
			child, ok := node.children[tok]
			if !ok {
				child = newBookNode()
				node.children[tok] = child
			}
			node = child
		}
		if node.name == "" {
			b.size++
		}
		node.name = line.Name
	}
	return nil
}

// Len reports how many named lines are registered.
func (b *Book) Len() int {
	return b.size
}

// NameFor returns the name of the deepest registered line that prefixes
// the tokens, with the number of plies it covers. Falls back to
// UnknownOpening with depth 0.
func (b *Book) NameFor(tokens []string) (name string, depth int) {
	name, depth = UnknownOpening, 0
	node := b.root
	for i, tok := range tokens {
		child, ok := node.children[tok]
		if !ok {
			break
		}
		node = child
		if node.name != "" {
			name, depth = node.name, i+1
		}
	}
	return name, depth
}
