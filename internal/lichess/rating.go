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

import "strings"

// RatingBuckets are the rating classes the explorer accepts.
var RatingBuckets = []int{400, 1000, 1200, 1400, 1600, 1800, 2000, 2200, 2500}

// DefaultRating stands in when a player's rating is unknown.
const DefaultRating = 1500

// PickRatingBucket maps rating+offset to the nearest explorer bucket.
// A non-positive rating falls back to DefaultRating; out-of-range
// targets clamp into [400, 3000] rather than erroring, so extreme
// ratings still query the nearest pool.
func PickRatingBucket(rating, offset int) int {
	if rating <= 0 {
		rating = DefaultRating
	}
	target := rating + offset
	if target < 400 {
		target = 400
	}
	if target > 3000 {
		target = 3000
	}
	best := RatingBuckets[0]
	bestDiff := -1
	for _, bucket := range RatingBuckets {
		diff := bucket - target
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best, bestDiff = bucket, diff
		}
	}
	return best
}

// MapSpeed translates a chess.com time class into a lichess speed.
// Unknown classes default to blitz, the largest pool.
func MapSpeed(chesscomClass string) Speed {
	switch strings.ToLower(strings.TrimSpace(chesscomClass)) {
	case "bullet":
		return SpeedBullet
	case "rapid":
		return SpeedRapid
	case "daily", "correspondence":
		return SpeedCorrespondence
	case "classical":
		return SpeedClassical
	default:
		return SpeedBlitz
	}
}
