// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// tierHits counts lookups served by a tier.
	// Labels: tier (hot, warm)
	tierHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "openings_analyzer",
		Subsystem: "cache",
		Name:      "tier_hits_total",
		Help:      "Cache lookups served, by tier",
	}, []string{"tier"})

	// tierMisses counts lookups that missed every tier.
	tierMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "openings_analyzer",
		Subsystem: "cache",
		Name:      "tier_misses_total",
		Help:      "Cache lookups that missed every tier",
	})
)
