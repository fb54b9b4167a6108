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
	"fmt"
	"sort"
)

// DefaultMinGames is the volume below which a position's reference set
// is not considered meaningful.
const DefaultMinGames = 50

type policyKind int

const (
	policyTop1 policyKind = iota
	policyTopK
	policyCoverage
)

// Policy selects which moves form the reference set. Construct one with
// Top1, TopK, or Coverage; the zero value behaves as Top1.
type Policy struct {
	kind      policyKind
	k         int
	threshold float64
}

// Top1 keeps only the most played move.
func Top1() Policy {
	return Policy{kind: policyTop1}
}

// TopK keeps the k most played moves. k must be at least 1.
func TopK(k int) (Policy, error) {
	if k < 1 {
		return Policy{}, fmt.Errorf("majority policy: top-k requires k >= 1, got %d", k)
	}
	return Policy{kind: policyTopK, k: k}, nil
}

// Coverage keeps the most played moves until their cumulative share of
// games reaches threshold. threshold must be in (0, 1].
func Coverage(threshold float64) (Policy, error) {
	if threshold <= 0 || threshold > 1 {
		return Policy{}, fmt.Errorf("majority policy: coverage threshold must be in (0, 1], got %v", threshold)
	}
	return Policy{kind: policyCoverage, threshold: threshold}, nil
}

// MajorityConfig parameterizes the reference-set computation.
type MajorityConfig struct {
	Policy Policy

	// MinGames is the minimum total volume for the position to be
	// considered. Zero means DefaultMinGames; a negative value disables
	// the floor entirely.
	MinGames int
}

// Reason explains why a position was not considered.
type Reason string

const (
	ReasonNoData    Reason = "no-data"
	ReasonLowVolume Reason = "low-volume"
)

// RankedMove is a reference move with its share of the position.
type RankedMove struct {
	UCI         string  `json:"uci"`
	SAN         string  `json:"san"`
	Volume      int     `json:"volume"`
	CumCoverage float64 `json:"cumCoverage"` // cumulative share up to and including this move
}

// MajorityResult is the outcome of ComputeMajority.
type MajorityResult struct {
	// Considered is false when the position has no data or too few
	// games; the remaining fields are then partial (TotalGames only).
	Considered bool   `json:"considered"`
	Reason     Reason `json:"reason,omitempty"`

	TotalGames  int          `json:"totalGames"`
	CoveragePct float64      `json:"coveragePct"`
	Ranked      []RankedMove `json:"ranked,omitempty"`
	Top         *RankedMove  `json:"top,omitempty"`

	// Reference is the set of reference-move UCIs.
	Reference map[string]struct{} `json:"-"`
}

// InReference reports whether uci is in the reference set.
func (r MajorityResult) InReference(uci string) bool {
	_, ok := r.Reference[uci]
	return ok
}

// ComputeMajority derives the reference move set for a position from
// masters statistics.
//
// Description:
//
//	Moves are ranked by descending volume (games played); equal volumes
//	break ties lexicographically ascending by UCI so results are
//	deterministic. The policy then keeps the top move, the top k, or a
//	prefix whose cumulative coverage reaches the threshold. Positions
//	with fewer than MinGames total games are not considered.
//
// Inputs:
//
//	stats - Masters statistics. nil means no data.
//	cfg - Policy and volume floor.
//
// Outputs:
//
//	MajorityResult - Considered=false with a Reason, or the ranked
//	reference set with coverage figures.
func ComputeMajority(stats *Stats, cfg MajorityConfig) MajorityResult {
	if stats == nil || stats.Moves == nil {
		return MajorityResult{Considered: false, Reason: ReasonNoData}
	}
	minGames := cfg.MinGames
	switch {
	case minGames == 0:
		minGames = DefaultMinGames
	case minGames < 0:
		minGames = 0
	}

	sorted := append([]Move(nil), stats.Moves...)
	sort.Slice(sorted, func(i, j int) bool {
		ti, tj := sorted[i].Total(), sorted[j].Total()
		if ti != tj {
			return ti > tj
		}
		return sorted[i].UCI < sorted[j].UCI
	})
	total := 0
	for _, move := range sorted {
		total += move.Total()
	}
	if total < minGames {
		return MajorityResult{Considered: false, Reason: ReasonLowVolume, TotalGames: total}
	}

	limit := 1
	switch cfg.Policy.kind {
	case policyTopK:
		limit = cfg.Policy.k
	case policyCoverage:
		limit = len(sorted)
	}
	if limit > len(sorted) {
		limit = len(sorted)
	}

	result := MajorityResult{
		Considered: true,
		TotalGames: total,
		Reference:  make(map[string]struct{}),
	}
	accumulated := 0
	for i := 0; i < limit; i++ {
		move := sorted[i]
		accumulated += move.Total()
		cum := float64(accumulated) / float64(total)
		result.Ranked = append(result.Ranked, RankedMove{
			UCI:         move.UCI,
			SAN:         move.SAN,
			Volume:      move.Total(),
			CumCoverage: cum,
		})
		result.Reference[move.UCI] = struct{}{}
		if cfg.Policy.kind == policyCoverage && cum >= cfg.Policy.threshold {
			break
		}
	}
	result.CoveragePct = float64(accumulated) / float64(total)
	if len(sorted) > 0 {
		top := RankedMove{
			UCI:         sorted[0].UCI,
			SAN:         sorted[0].SAN,
			Volume:      sorted[0].Total(),
			CumCoverage: float64(sorted[0].Total()) / float64(total),
		}
		result.Top = &top
	}
	return result
}

// Evaluation is a MajorityResult plus the verdict for one played move.
type Evaluation struct {
	MajorityResult

	// InBook is nil when the position was not considered, otherwise
	// whether the played move is in the reference set.
	InBook *bool `json:"inBook"`
}

// EvaluateMove computes the reference set and checks playedUCI against
// it.
func EvaluateMove(stats *Stats, playedUCI string, cfg MajorityConfig) Evaluation {
	result := ComputeMajority(stats, cfg)
	if !result.Considered {
		return Evaluation{MajorityResult: result}
	}
	inBook := result.InReference(playedUCI)
	return Evaluation{MajorityResult: result, InBook: &inBook}
}
