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
)

func TestPickRatingBucket(t *testing.T) {
	cases := []struct {
		name   string
		rating int
		offset int
		want   int
	}{
		{"unknown rating uses default", 0, 0, 1400},
		{"exact bucket", 1600, 0, 1600},
		{"rounds to nearest", 1750, 0, 1800},
		{"clamps low", 100, 0, 400},
		{"clamps high", 3400, 0, 2500},
		{"offset shifts target", 1600, 300, 1800},
		{"negative offset", 1600, -300, 1200},
		{"tie keeps lower bucket", 1500, 0, 1400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PickRatingBucket(tc.rating, tc.offset))
		})
	}
}

func TestMapSpeed(t *testing.T) {
	cases := map[string]Speed{
		"bullet":         SpeedBullet,
		"Blitz":          SpeedBlitz,
		"rapid":          SpeedRapid,
		"classical":      SpeedClassical,
		"daily":          SpeedCorrespondence,
		"correspondence": SpeedCorrespondence,
		"":               SpeedBlitz,
		"chess960":       SpeedBlitz,
	}
	for in, want := range cases {
		assert.Equal(t, want, MapSpeed(in), "category %q", in)
	}
}
