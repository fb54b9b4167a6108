// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package reqpool dispatches HTTP work through a rate-limited FIFO
// pool. It bounds concurrency, enforces a minimum spacing between
// dispatches, and retries retryable upstream statuses with backoff.
// Rate-limit (429) responses are handled on a separate budget honoring
// Retry-After.
package reqpool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// HTTPClient abstracts *http.Client for test mocking.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// errorBodySnippet bounds how much body is carried inside errors.
const errorBodySnippet = 512

// Options configures a Pool. Zero fields take defaults.
type Options struct {
	// Name labels the pool in metrics and logs.
	Name string

	// MaxConcurrent bounds in-flight tasks. Default: 3.
	MaxConcurrent int

	// Interval is the minimum spacing between dispatches. Default: 100ms.
	Interval time.Duration

	// Client performs HTTP requests. Default: http.DefaultClient.
	Client HTTPClient

	// UserAgent is sent on every request when non-empty.
	UserAgent string

	// MaxRetries bounds retries of retryable statuses (502/503/504).
	// Default: 3.
	MaxRetries int

	// RetryDelay is the base backoff, doubled per retry. Default: 500ms.
	RetryDelay time.Duration

	// Max429Retries bounds retries after 429 responses, separately from
	// MaxRetries. Default: 2.
	Max429Retries int

	// RetryAfterFloor is the minimum wait after a 429, applied even when
	// the server asks for less. Default: 60s.
	RetryAfterFloor time.Duration

	// Logger receives retry/throttle events. Default: slog.Default().
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Name == "" {
		o.Name = "default"
	}
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = 3
	}
	if o.Interval <= 0 {
		o.Interval = 100 * time.Millisecond
	}
	if o.Client == nil {
		o.Client = http.DefaultClient
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = 3
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = 500 * time.Millisecond
	}
	if o.Max429Retries <= 0 {
		o.Max429Retries = 2
	}
	if o.RetryAfterFloor <= 0 {
		o.RetryAfterFloor = 60 * time.Second
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

type waiter struct {
	ready chan struct{}
}

// Pool is a rate-limited FIFO dispatcher.
//
// Thread Safety: safe for concurrent use.
type Pool struct {
	opts Options

	mu     sync.Mutex
	queue  []*waiter
	active int
	last   time.Time // last dispatch time
	timer  *time.Timer

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a pool with opts.
func New(opts Options) *Pool {
	return &Pool{
		opts:  opts.withDefaults(),
		now:   time.Now,
		sleep: sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do runs fn inside a dispatched slot, blocking until the pool has
// capacity and the dispatch spacing has elapsed. Waiters are served in
// FIFO order. Cancelling ctx while queued removes the waiter.
func (p *Pool) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	enqueued := p.now()

	p.mu.Lock()
	if p.active < p.opts.MaxConcurrent && len(p.queue) == 0 && p.spacingElapsedLocked() {
		p.markDispatchLocked()
		p.mu.Unlock()
		return p.run(ctx, fn, enqueued)
	}
	w := &waiter{ready: make(chan struct{})}
	p.queue = append(p.queue, w)
	p.armTimerLocked()
	p.mu.Unlock()

	select {
	case <-w.ready:
		return p.run(ctx, fn, enqueued)
	case <-ctx.Done():
		p.mu.Lock()
		for i, queued := range p.queue {
			if queued == w {
				p.queue = append(p.queue[:i], p.queue[i+1:]...)
				p.mu.Unlock()
				return ctx.Err()
			}
		}
		p.mu.Unlock()
		// Dispatched between Done and the lock; consume the slot and
		// release it.
		<-w.ready
		p.release()
		return ctx.Err()
	}
}

func (p *Pool) run(ctx context.Context, fn func(ctx context.Context) error, enqueued time.Time) error {
	requestsDispatched.WithLabelValues(p.opts.Name).Inc()
	queueWait.WithLabelValues(p.opts.Name).Observe(p.now().Sub(enqueued).Seconds())
	defer p.release()
	return fn(ctx)
}

func (p *Pool) release() {
	p.mu.Lock()
	p.active--
	p.drainLocked()
	p.mu.Unlock()
}

func (p *Pool) spacingElapsedLocked() bool {
	return p.last.IsZero() || p.now().Sub(p.last) >= p.opts.Interval
}

func (p *Pool) markDispatchLocked() {
	p.active++
	p.last = p.now()
}

// drainLocked dispatches queued waiters while capacity and spacing
// allow, arming the timer for the next spacing window otherwise.
func (p *Pool) drainLocked() {
	for p.active < p.opts.MaxConcurrent && len(p.queue) > 0 {
		if !p.spacingElapsedLocked() {
			p.armTimerLocked()
			return
		}
		w := p.queue[0]
		p.queue = p.queue[1:]
		p.markDispatchLocked()
		close(w.ready)
	}
}

func (p *Pool) armTimerLocked() {
	if len(p.queue) == 0 {
		return
	}
	wait := p.opts.Interval - p.now().Sub(p.last)
	if wait < time.Millisecond {
		wait = time.Millisecond
	}
	if p.timer == nil {
		p.timer = time.AfterFunc(wait, func() {
			p.mu.Lock()
			p.drainLocked()
			p.mu.Unlock()
		})
		return
	}
	p.timer.Reset(wait)
}

// GetJSON fetches url through the pool and decodes the JSON response
// into out. Retries and 429 waits happen inside the dispatched slot so
// a struggling upstream also slows the rest of the queue down.
func (p *Pool) GetJSON(ctx context.Context, url string, out any) error {
	return p.Do(ctx, func(ctx context.Context) error {
		return p.fetchJSON(ctx, url, out)
	})
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func (p *Pool) fetchJSON(ctx context.Context, url string, out any) error {
	retries := 0
	throttles := 0
	for {
		res, err := p.getOnce(ctx, url)
		if err != nil {
			return err
		}
		switch {
		case res.status >= 200 && res.status < 300:
			if out == nil {
				return nil
			}
			if err := json.Unmarshal(res.body, out); err != nil {
				return fmt.Errorf("decode %s: %w", url, err)
			}
			return nil

		case res.status == http.StatusTooManyRequests:
			wait := p.retryAfter(res.retryAfter)
			throttles++
			requestsThrottled.WithLabelValues(p.opts.Name).Inc()
			if throttles > p.opts.Max429Retries {
				return &ThrottledError{
					StatusError: StatusError{Status: res.status, URL: url, Body: snippet(res.body)},
					RetryAfter:  wait,
				}
			}
			p.opts.Logger.Warn("rate limited, waiting",
				"pool", p.opts.Name, "url", url, "wait", wait, "attempt", throttles)
			if err := p.sleep(ctx, wait); err != nil {
				return err
			}

		case retryableStatus(res.status):
			retries++
			if retries > p.opts.MaxRetries {
				return &StatusError{Status: res.status, URL: url, Body: snippet(res.body)}
			}
			delay := p.opts.RetryDelay << (retries - 1)
			requestsRetried.WithLabelValues(p.opts.Name, strconv.Itoa(res.status)).Inc()
			p.opts.Logger.Warn("retrying upstream error",
				"pool", p.opts.Name, "url", url, "status", res.status, "delay", delay, "attempt", retries)
			if err := p.sleep(ctx, delay); err != nil {
				return err
			}

		default:
			return &StatusError{Status: res.status, URL: url, Body: snippet(res.body)}
		}
	}
}

type response struct {
	status     int
	body       []byte
	retryAfter string // Retry-After header, verbatim
}

// getOnce performs a single GET. A transport error is returned as err;
// any response, success or not, comes back as a response value.
func (p *Pool) getOnce(ctx context.Context, url string) (response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return response{}, fmt.Errorf("build request %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")
	if p.opts.UserAgent != "" {
		req.Header.Set("User-Agent", p.opts.UserAgent)
	}

	resp, err := p.opts.Client.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return response{}, fmt.Errorf("read %s: %w", url, err)
	}
	return response{
		status:     resp.StatusCode,
		body:       body,
		retryAfter: resp.Header.Get("Retry-After"),
	}, nil
}

// retryAfter converts a Retry-After header (delay seconds form) into a
// wait, applying the configured floor. Lichess only ever asks for more
// time, never less, so the floor also covers a missing header.
func (p *Pool) retryAfter(header string) time.Duration {
	wait := p.opts.RetryAfterFloor
	if secs, err := strconv.Atoi(header); err == nil && secs > 0 {
		if asked := time.Duration(secs) * time.Second; asked > wait {
			wait = asked
		}
	}
	return wait
}

func snippet(body []byte) string {
	if len(body) > errorBodySnippet {
		body = body[:errorBodySnippet]
	}
	return string(body)
}
