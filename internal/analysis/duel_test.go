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

	"github.com/magicolala/chess-openings-analyzer/internal/chesscom"
)

func newDuelServer(t *testing.T) *httptest.Server {
	t.Helper()
	var baseURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/alpha":
			w.Write([]byte(`{"username":"alpha","title":"IM","country":"https://api.chess.com/pub/country/FR","joined":1500000000}`))
		case "/beta":
			w.Write([]byte(`{"username":"beta"}`))
		case "/alpha/games/archives":
			w.Write([]byte(`{"archives":["` + baseURL + `/alpha/games/2026/03"]}`))
		case "/beta/games/archives":
			w.Write([]byte(`{"archives":["` + baseURL + `/beta/games/2026/03"]}`))
		case "/alpha/games/2026/03":
			w.Write([]byte(`{"games":[
				{"pgn":"1. e4 e5 2. Nf3 Nc6 3. Bb5","rules":"chess","white":{"username":"alpha"},"black":{"username":"someone"}},
				{"pgn":"1. e4 e5 2. Nf3 Nc6 3. Bc4","rules":"chess","white":{"username":"someone"},"black":{"username":"alpha"}},
				{"pgn":"1. d4 d5","rules":"chess","white":{"username":"alpha"},"black":{"username":"someone"}}
			]}`))
		case "/beta/games/2026/03":
			w.Write([]byte(`{"games":[
				{"pgn":"1. e4 e5 2. Nf3 Nc6","rules":"chess","white":{"username":"beta"},"black":{"username":"someone"}},
				{"pgn":"1. e4","rules":"crazyhouse","white":{"username":"beta"},"black":{"username":"someone"}}
			]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	baseURL = server.URL
	return server
}

func newDuelAnalyzer(t *testing.T, server *httptest.Server) *Analyzer {
	t.Helper()
	return NewAnalyzer(Analyzer{
		Chesscom: chesscom.NewClient(testLichessPool(server.Client()), chesscom.Options{BaseURL: server.URL}),
	})
}

func TestDuelBuildsCombinedOpeningTree(t *testing.T) {
	analyzer := newDuelAnalyzer(t, newDuelServer(t))

	report, err := analyzer.Duel(context.Background(), " Alpha ", "Beta", 0)
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.False(t, report.GeneratedAt.IsZero())

	assert.Equal(t, "alpha", report.White.Username)
	assert.Equal(t, "IM", report.White.Title)
	assert.Equal(t, "FR", report.White.Country)
	require.NotNil(t, report.White.Joined)
	assert.Equal(t, time.Unix(1500000000, 0).UTC(), *report.White.Joined)
	assert.Equal(t, "beta", report.Black.Username)
	assert.Nil(t, report.Black.Joined)

	// Three open games share the first four plies; the variant game is
	// filtered out before counting.
	require.Len(t, report.Openings, 2)
	top := report.Openings[0]
	assert.Equal(t, "1.e4 e5 2.Nf3 Nc6", top.Line)
	assert.Equal(t, 3, top.Count)
	assert.Equal(t, "alpha", top.FirstPlayer)
	assert.Equal(t, DuelOpeningStat{Line: "1.d4 d5", Count: 1, FirstPlayer: "alpha"}, report.Openings[1])
	assert.Equal(t, 4, report.TotalGames)
}

func TestDuelValidatesUsernames(t *testing.T) {
	analyzer := newDuelAnalyzer(t, newDuelServer(t))

	_, err := analyzer.Duel(context.Background(), "  ", "beta", 0)
	assert.ErrorIs(t, err, chesscom.ErrInvalidUsername)
	_, err = analyzer.Duel(context.Background(), "alpha", "", 0)
	assert.ErrorIs(t, err, chesscom.ErrInvalidUsername)
}

func TestDuelRequiresBothProfiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	analyzer := newDuelAnalyzer(t, server)

	_, err := analyzer.Duel(context.Background(), "alpha", "ghost", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duel")
}

func TestBuildOpeningTreeTieBreak(t *testing.T) {
	games := []chesscom.Game{
		{PGN: "1. d4 d5", White: chesscom.GameSide{Username: "p1"}},
		{PGN: "1. c4 e5", White: chesscom.GameSide{Username: "p2"}},
		{PGN: "", White: chesscom.GameSide{Username: "p3"}},
	}
	stats := buildOpeningTree(games)
	require.Len(t, stats, 2, "an empty movetext contributes nothing")
	assert.Equal(t, "1.c4 e5", stats[0].Line, "equal counts order by line text")
	assert.Equal(t, "1.d4 d5", stats[1].Line)
}

func TestSummarizeOpeningLine(t *testing.T) {
	assert.Equal(t, "1.e4 e5 2.Nf3 Nc6", summarizeOpeningLine([]string{"e4", "e5", "Nf3", "Nc6", "Bb5"}, 4))
	assert.Equal(t, "1.e4 e5 2.Nf3", summarizeOpeningLine([]string{"e4", "e5", "Nf3"}, 4))
	assert.Equal(t, "", summarizeOpeningLine(nil, 4))
}

func TestDuelCapsGamesPerPlayer(t *testing.T) {
	analyzer := newDuelAnalyzer(t, newDuelServer(t))

	report, err := analyzer.Duel(context.Background(), "alpha", "beta", 1)
	require.NoError(t, err)
	// Each player contributes only their most recent standard game.
	assert.Equal(t, 2, report.TotalGames)
}
