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
	"errors"
	"fmt"
	"time"
)

// StatusError reports a non-2xx response that was not (or could no
// longer be) retried.
type StatusError struct {
	Status int
	URL    string
	Body   string // truncated response body, for diagnostics
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request %s: status %d", e.URL, e.Status)
}

// ThrottledError reports an exhausted 429 retry budget. RetryAfter is
// the wait the server last asked for.
type ThrottledError struct {
	StatusError
	RetryAfter time.Duration
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("request %s: rate limited, retry after %s", e.URL, e.RetryAfter)
}

// IsThrottled reports whether err is (or wraps) a ThrottledError.
func IsThrottled(err error) bool {
	var throttled *ThrottledError
	return errors.As(err, &throttled)
}

// StatusOf returns the HTTP status carried by err, or 0 when err has
// none.
func StatusOf(err error) int {
	var throttled *ThrottledError
	if errors.As(err, &throttled) {
		return throttled.Status
	}
	var status *StatusError
	if errors.As(err, &status) {
		return status.Status
	}
	return 0
}
