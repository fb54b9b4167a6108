// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package reqpool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsDispatched counts pool dispatches.
	// Labels: pool (pool name)
	requestsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "openings_analyzer",
		Subsystem: "reqpool",
		Name:      "dispatched_total",
		Help:      "Total requests dispatched by the pool",
	}, []string{"pool"})

	// requestsRetried counts retries of retryable upstream statuses.
	// Labels: pool, status
	requestsRetried = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "openings_analyzer",
		Subsystem: "reqpool",
		Name:      "retried_total",
		Help:      "Total request retries by upstream status",
	}, []string{"pool", "status"})

	// requestsThrottled counts 429 responses from upstream.
	// Labels: pool
	requestsThrottled = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "openings_analyzer",
		Subsystem: "reqpool",
		Name:      "throttled_total",
		Help:      "Total 429 responses received from upstream",
	}, []string{"pool"})

	// queueWait measures how long requests sit queued before dispatch.
	// Labels: pool
	queueWait = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "openings_analyzer",
		Subsystem: "reqpool",
		Name:      "queue_wait_seconds",
		Help:      "Time spent queued before dispatch",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"pool"})
)
