// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package traps

import (
	"fmt"
	"sort"
	"strings"

	"github.com/magicolala/chess-openings-analyzer/internal/chessio"
)

const (
	// DefaultMaxStartPly bounds how deep into a game candidate start
	// plies are considered.
	DefaultMaxStartPly = 30

	// nearThreshold is the minimum walk depth before a deviation counts
	// as a near-miss.
	nearThreshold = 3
)

type trieNode struct {
	children map[string]*trieNode

	// ends lists the ids of every trap whose full sequence terminates at
	// this node. Distinct traps with identical sequences must both survive.
	ends []string
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[string]*trieNode)}
}

// Engine owns the prefix tree of registered traps.
//
// Thread Safety:
//
//	Register must complete before concurrent use. After registration the
//	engine is read-only and safe for concurrent matching.
type Engine struct {
	root *trieNode
	byID map[string]*Trap

	// order preserves registration order for stable recommendations.
	order []string
}

// NewEngine returns an empty engine.
func NewEngine() *Engine {
	return &Engine{
		root: newTrieNode(),
		byID: make(map[string]*Trap),
	}
}

// Register inserts traps into the prefix tree.
//
// Sequences are canonicalized through chessio before insertion so that
// pack data written with capture/check decorations still lines up with
// normalized game tokens. Registering a trap with no surviving tokens or
// no id fails fast.
func (e *Engine) Register(traps []Trap) error {
	for i := range traps {
		t := traps[i]
		if t.ID == "" {
			return fmt.Errorf("register trap %d: %w", i, ErrEmptyID)
		}
		seq := chessio.CanonicalSequence(t.Sequence)
		if len(seq) == 0 {
			return fmt.Errorf("register trap %q: %w", t.ID, ErrEmptySequence)
		}
		t.Sequence = seq

		if _, seen := e.byID[t.ID]; !seen {
			e.order = append(e.order, t.ID)
		}
		e.byID[t.ID] = &t

		node := e.root
		for _, tok := range seq {
			child, ok := node.children[tok]
			if !ok {
				child = newTrieNode()
				node.children[tok] = child
			}
			node = child
		}
		node.ends = append(node.ends, t.ID)
	}
	return nil
}

// Len reports how many distinct traps are registered.
func (e *Engine) Len() int {
	return len(e.byID)
}

// MatchTokens scans a token stream for registered traps.
//
// For every candidate start ply the trie is walked as far as the stream
// allows. Each terminal node passed on the way emits a hit (subject to tag
// and side filters); a walk of at least three plies that ends off any
// sequence endpoint emits a near-miss. Hits are deduplicated per trap id,
// keeping the deepest match, and ordered by descending matched plies then
// ascending start ply.
//
// Malformed or empty input yields an empty Result, never an error.
func (e *Engine) MatchTokens(tokens []string, opts Options) Result {
	res := Result{Hits: []Match{}, Near: []NearMatch{}}
	if len(tokens) == 0 {
		return res
	}

	maxStart := opts.MaxStartPly
	if maxStart <= 0 {
		maxStart = DefaultMaxStartPly
	}
	if maxStart > len(tokens) {
		maxStart = len(tokens)
	}
	openingLower := strings.ToLower(opts.OpeningLabel)

	for i := 0; i < maxStart; i++ {
		// Cheaper to reject the whole start ply than to filter per node.
		if opts.Side != "" && opts.Side != chessio.SideToMove(i) {
			continue
		}

		node := e.root
		progressed := 0
		for j := i; j < len(tokens); j++ {
			child, ok := node.children[tokens[j]]
			if !ok {
				break
			}
			node = child
			progressed++
			for _, id := range node.ends {
				trap := e.byID[id]
				if !e.tagOK(trap, openingLower) {
					continue
				}
				if opts.Side != "" && trap.Side != opts.Side {
					continue
				}
				res.Hits = append(res.Hits, Match{
					ID:           id,
					Name:         trap.Name,
					Side:         trap.Side,
					StartPly:     i,
					Length:       len(trap.Sequence),
					MatchedPlies: progressed,
					Advice:       trap.Advice,
					OpeningTags:  trap.OpeningTags,
				})
			}
		}
		if progressed >= nearThreshold && len(node.ends) == 0 {
			res.Near = append(res.Near, NearMatch{
				StartPly:     i,
				MatchedPlies: progressed,
				NextRequired: anyChildToken(node),
			})
		}
	}

	res.Hits = dedupeHits(res.Hits)
	return res
}

// MatchGameRecord normalizes a raw game record and scans the result.
func (e *Engine) MatchGameRecord(raw string, normalizer chessio.Normalizer, opts Options) Result {
	if normalizer == nil {
		normalizer = chessio.NewNormalizer()
	}
	return e.MatchTokens(normalizer.Normalize(raw), opts)
}

// RecommendByOpening suggests traps whose tags match an opening label,
// shortest sequences first (easier to reach over the board).
func (e *Engine) RecommendByOpening(openingLabel string, side chessio.Side, limit int) []Recommendation {
	lower := strings.ToLower(openingLabel)
	picks := make([]Recommendation, 0, limit)
	for _, id := range e.order {
		t := e.byID[id]
		if side != "" && t.Side != side {
			continue
		}
		if len(t.OpeningTags) == 0 {
			continue
		}
		if !e.tagOK(t, lower) {
			continue
		}
		picks = append(picks, Recommendation{
			ID:       t.ID,
			Name:     t.Name,
			Side:     t.Side,
			Sequence: t.Sequence,
			Advice:   t.Advice,
		})
	}
	sort.SliceStable(picks, func(a, b int) bool {
		return len(picks[a].Sequence) < len(picks[b].Sequence)
	})
	if limit > 0 && len(picks) > limit {
		picks = picks[:limit]
	}
	return picks
}

// tagOK reports whether a trap passes the opening-label filter: no tags
// registered, or at least one tag appearing case-insensitively inside the
// label.
func (e *Engine) tagOK(t *Trap, openingLower string) bool {
	if len(t.OpeningTags) == 0 {
		return true
	}
	for _, tag := range t.OpeningTags {
		if strings.Contains(openingLower, strings.ToLower(tag)) {
			return true
		}
	}
	return false
}

// anyChildToken returns an arbitrary but deterministic continuation token.
func anyChildToken(node *trieNode) string {
	best := ""
	for tok := range node.children {
		if best == "" || tok < best {
			best = tok
		}
	}
	return best
}

// dedupeHits keeps, per trap id, the match with the greatest depth (ties
// broken by smallest start ply), then orders the survivors by descending
// depth and ascending start ply.
func dedupeHits(hits []Match) []Match {
	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].MatchedPlies != hits[b].MatchedPlies {
			return hits[a].MatchedPlies > hits[b].MatchedPlies
		}
		return hits[a].StartPly < hits[b].StartPly
	})
	seen := make(map[string]struct{}, len(hits))
	uniq := hits[:0]
	for _, h := range hits {
		if _, dup := seen[h.ID]; dup {
			continue
		}
		seen[h.ID] = struct{}{}
		uniq = append(uniq, h)
	}
	return uniq
}
