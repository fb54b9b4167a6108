// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package analysis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicolala/chess-openings-analyzer/internal/cache"
	"github.com/magicolala/chess-openings-analyzer/internal/chessio"
	"github.com/magicolala/chess-openings-analyzer/internal/lichess"
	"github.com/magicolala/chess-openings-analyzer/internal/reqpool"
)

// theoryPGN keeps white's third ply (g3) outside the masters fixture so
// the deviation path triggers deterministically.
const theoryPGN = "1. Nf3 d5 2. g3 c5 1-0"

type fakeStats struct{ class string }

func (f fakeStats) PreferredTimeClass() string { return f.class }

func testLichessPool(client *http.Client) *reqpool.Pool {
	return reqpool.New(reqpool.Options{
		Interval:        time.Millisecond,
		MaxConcurrent:   2,
		Client:          client,
		RetryAfterFloor: time.Millisecond,
	})
}

func newTestExplorer(t *testing.T, handler http.HandlerFunc) *lichess.ExplorerClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	store := cache.NewMemory()
	t.Cleanup(func() { store.Close() })
	return lichess.NewExplorerClient(testLichessPool(server.Client()), store, lichess.ClientOptions{BaseURL: server.URL})
}

func newTestMasters(t *testing.T, handler http.HandlerFunc) *lichess.MastersClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	store := cache.NewMemory()
	t.Cleanup(func() { store.Close() })
	return lichess.NewMastersClient(testLichessPool(server.Client()), store, lichess.ClientOptions{BaseURL: server.URL})
}

func italianBucket() (Buckets, *Bucket) {
	bucket := &Bucket{
		Name:         "Italian Game: Giuoco Pianissimo",
		Count:        3,
		SamplePGN:    italianPGN,
		SampleTokens: []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5", "c3", "Nf6", "d3", "d6"},
	}
	return Buckets{bucket.Name: bucket}, bucket
}

func TestResolveMeta(t *testing.T) {
	stats := fakeStats{class: "rapid"}

	meta := ResolveMeta(stats, 1750, Config{})
	assert.Equal(t, lichess.SpeedRapid, meta.Speed, "empty override uses the preferred class")
	assert.Equal(t, 1800, meta.RatingBucket)

	meta = ResolveMeta(stats, 1750, Config{SpeedOverride: "auto"})
	assert.Equal(t, lichess.SpeedRapid, meta.Speed)

	meta = ResolveMeta(stats, 1750, Config{SpeedOverride: "bullet", RatingOffset: -300})
	assert.Equal(t, lichess.SpeedBullet, meta.Speed)
	assert.Equal(t, 1400, meta.RatingBucket)
}

func TestEnrichWithExplorerAttachesAdvice(t *testing.T) {
	explorer := newTestExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "blitz", r.URL.Query().Get("speeds"))
		assert.Equal(t, "1800", r.URL.Query().Get("ratings"))
		w.Write([]byte(`{
			"moves":[
				{"uci":"d2d4","san":"d4","white":80,"draws":10,"black":10},
				{"uci":"a2a3","san":"a3","white":10,"draws":10,"black":80}
			],
			"white":90,"draws":20,"black":90,
			"opening":{"eco":"C50","name":"Italian Game"}
		}`))
	})

	buckets, bucket := italianBucket()
	meta := Meta{Speed: lichess.SpeedBlitz, RatingBucket: 1800}
	enricher := &Enricher{Explorer: explorer}
	enricher.EnrichWithExplorer(context.Background(), buckets, meta, Config{})

	require.NotNil(t, bucket.Advice)
	assert.Equal(t, "Italian Game", bucket.Advice.OpeningName)
	assert.Equal(t, "C50", bucket.Advice.ECO)
	assert.Equal(t, "C50", bucket.ECO, "bucket ECO backfilled from the explorer")
	assert.NotEmpty(t, bucket.Advice.FEN)
	assert.Equal(t, lichess.SpeedBlitz, bucket.Advice.Speed)
	assert.Equal(t, 1800, bucket.Advice.RatingBucket)
	assert.Equal(t, 90, bucket.Advice.Totals.White)

	// a2a3 scores 0.15 for white and falls under the default cutoff.
	require.Len(t, bucket.Advice.Suggestions, 1)
	assert.Equal(t, "d2d4", bucket.Advice.Suggestions[0].UCI)
	assert.InDelta(t, 0.85, bucket.Advice.Suggestions[0].ExpectedScore, 1e-9)
}

func TestEnrichWithExplorerSkipsBucketsWithoutSamples(t *testing.T) {
	called := false
	explorer := newTestExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte(`{"moves":[],"white":0,"draws":0,"black":0}`))
	})

	buckets := Buckets{"Unknown Opening": {Name: "Unknown Opening", Count: 1}}
	enricher := &Enricher{Explorer: explorer}
	enricher.EnrichWithExplorer(context.Background(), buckets, Meta{Speed: lichess.SpeedBlitz, RatingBucket: 1600}, Config{})

	assert.False(t, called)
	assert.Nil(t, buckets["Unknown Opening"].Advice)
}

func TestAnnotateTheoryRecordsDeviation(t *testing.T) {
	masters := newTestMasters(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"moves":[{"uci":"g1f3","san":"Nf3","white":40,"draws":15,"black":5}],"white":40,"draws":15,"black":5}`))
	})
	explorer := newTestExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"moves":[
				{"uci":"e7e5","san":"e5","white":10,"draws":10,"black":80},
				{"uci":"c7c5","san":"c5","white":30,"draws":20,"black":50}
			],
			"white":40,"draws":30,"black":130
		}`))
	})

	bucket := &Bucket{
		Name:         "Zukertort Opening",
		Count:        2,
		SamplePGN:    theoryPGN,
		SampleTokens: []string{"Nf3", "d5", "g3", "c5"},
	}
	buckets := Buckets{bucket.Name: bucket}
	meta := Meta{Speed: lichess.SpeedBlitz, RatingBucket: 1600}
	enricher := &Enricher{Explorer: explorer, Masters: masters}
	enricher.AnnotateTheory(context.Background(), buckets, chessio.SideWhite, meta, Config{})

	assert.Nil(t, bucket.TheoryErr)
	require.Len(t, bucket.Deviations, 1)
	dev := bucket.Deviations[0]
	assert.Equal(t, 3, dev.Ply.Index, "the book move Nf3 is not flagged")
	assert.Equal(t, "g2g3", dev.Ply.UCI)
	require.NotNil(t, dev.Evaluation.InBook)
	assert.False(t, *dev.Evaluation.InBook)
	assert.Equal(t, "e7e5", dev.Recommendation.UCI, "replies scored for the side punishing the deviation")
	assert.Len(t, dev.Alternatives, 2)
	assert.Equal(t, []string{"Nf3", "d5"}, dev.TokensBefore, "the deviating move itself is excluded")
}

func TestAnnotateTheoryRateLimited(t *testing.T) {
	masters := newTestMasters(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	explorer := newTestExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"moves":[],"white":0,"draws":0,"black":0}`))
	})

	buckets, bucket := italianBucket()
	enricher := &Enricher{Explorer: explorer, Masters: masters}
	enricher.AnnotateTheory(context.Background(), buckets, chessio.SideWhite, Meta{Speed: lichess.SpeedBlitz, RatingBucket: 1600}, Config{})

	require.NotNil(t, bucket.TheoryErr)
	assert.Equal(t, TheoryRateLimited, bucket.TheoryErr.Kind)
	assert.Equal(t, time.Millisecond, bucket.TheoryErr.RetryAfter, "floor applies when the header is missing")
	assert.Nil(t, bucket.Deviations, "a failed bucket keeps no partial deviations")
}

func TestAnnotateTheoryNotFound(t *testing.T) {
	masters := newTestMasters(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no reference games", http.StatusNotFound)
	})
	explorer := newTestExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"moves":[],"white":0,"draws":0,"black":0}`))
	})

	buckets, bucket := italianBucket()
	enricher := &Enricher{Explorer: explorer, Masters: masters}
	enricher.AnnotateTheory(context.Background(), buckets, chessio.SideWhite, Meta{Speed: lichess.SpeedBlitz, RatingBucket: 1600}, Config{})

	require.NotNil(t, bucket.TheoryErr)
	assert.Equal(t, TheoryNotFound, bucket.TheoryErr.Kind)
}

func TestImprovementPlansKeepLargestGaps(t *testing.T) {
	explorer := newTestExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"moves":[{"uci":"e2e4","san":"e4","white":80,"draws":10,"black":10}],"white":80,"draws":10,"black":10}`))
	})

	buckets, bucket := italianBucket()
	enricher := &Enricher{Explorer: explorer}
	enricher.ImprovementPlans(context.Background(), buckets, chessio.SideWhite, Meta{Speed: lichess.SpeedBlitz, RatingBucket: 1600}, Config{})

	// Ply 1 actually plays the explorer's best move (delta 0) and is
	// skipped; the later white plies all gap by 0.85 and hit the cap.
	require.Len(t, bucket.Improvements, maxImprovementsPerBucket)
	first := bucket.Improvements[0]
	assert.Equal(t, 3, first.Ply.Index)
	assert.Equal(t, "g1f3", first.Ply.UCI)
	assert.InDelta(t, 0.85, first.Delta, 1e-9)
	assert.Equal(t, "e2e4", first.Recommendation.UCI)
	assert.Nil(t, first.OurMove, "played move absent from explorer data")
	assert.Equal(t, []string{"e4", "e5"}, first.TokensBefore)
}

func TestImprovementPlansRespectThreshold(t *testing.T) {
	explorer := newTestExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"moves":[{"uci":"e2e4","san":"e4","white":80,"draws":10,"black":10}],"white":80,"draws":10,"black":10}`))
	})

	buckets, bucket := italianBucket()
	enricher := &Enricher{Explorer: explorer}
	enricher.ImprovementPlans(context.Background(), buckets, chessio.SideWhite, Meta{Speed: lichess.SpeedBlitz, RatingBucket: 1600}, Config{ImprovementThreshold: 0.9})

	assert.Empty(t, bucket.Improvements)
}
