// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package chesscom fetches a player's public profile, ratings, and
// recent games from the chess.com API.
package chesscom

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/magicolala/chess-openings-analyzer/internal/reqpool"
)

// DefaultBaseURL is the public chess.com player API.
const DefaultBaseURL = "https://api.chess.com/pub/player"

// DefaultMonths is how many monthly archives (current month included)
// are pulled for recent games.
const DefaultMonths = 3

// defaultRating stands in when no rating is published.
const defaultRating = 1500

// Sentinel errors.
var (
	ErrInvalidUsername = errors.New("chesscom: invalid username")
	ErrNoRecentGames   = errors.New("chesscom: no recent games found")
)

// Profile is the subset of the player profile we use.
type Profile struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Country  string `json:"country"` // API URL, e.g. .../pub/country/FR
	Avatar   string `json:"avatar"`
	URL      string `json:"url"`
	Joined   int64  `json:"joined"` // epoch seconds, 0 when unpublished
}

// CountryCode extracts the two-letter code from the profile's country
// URL. Empty when no country is published.
func (p Profile) CountryCode() string {
	trimmed := strings.TrimRight(p.Country, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

type ratingPoint struct {
	Rating int `json:"rating"`
}

type statsBlock struct {
	Last ratingPoint `json:"last"`
	Best ratingPoint `json:"best"`
}

// PlayerStats carries per-time-class ratings.
type PlayerStats struct {
	Blitz  statsBlock `json:"chess_blitz"`
	Rapid  statsBlock `json:"chess_rapid"`
	Bullet statsBlock `json:"chess_bullet"`
}

// Rating picks the most representative published rating: current
// blitz, rapid, then bullet; then best-ever in rapid, blitz, bullet;
// finally the site-median default.
func (s PlayerStats) Rating() int {
	for _, r := range []int{
		s.Blitz.Last.Rating,
		s.Rapid.Last.Rating,
		s.Bullet.Last.Rating,
		s.Rapid.Best.Rating,
		s.Blitz.Best.Rating,
		s.Bullet.Best.Rating,
	} {
		if r > 0 {
			return r
		}
	}
	return defaultRating
}

// PreferredTimeClass is the time class the player actually plays,
// preferring blitz over rapid over bullet. Defaults to blitz.
func (s PlayerStats) PreferredTimeClass() string {
	switch {
	case s.Blitz.Last.Rating > 0:
		return "blitz"
	case s.Rapid.Last.Rating > 0:
		return "rapid"
	case s.Bullet.Last.Rating > 0:
		return "bullet"
	}
	return "blitz"
}

// GameSide is one seat of an archived game.
type GameSide struct {
	Username string `json:"username"`
	Result   string `json:"result"`
}

// Game is one archived game.
type Game struct {
	PGN       string   `json:"pgn"`
	URL       string   `json:"url"`
	EndTime   int64    `json:"end_time"`
	Rules     string   `json:"rules"`
	TimeClass string   `json:"time_class"`
	White     GameSide `json:"white"`
	Black     GameSide `json:"black"`
}

// PlayerContext is everything the analyzer needs about a player.
type PlayerContext struct {
	Profile Profile
	Stats   PlayerStats
	Games   []Game
}

// Client fetches player data through a request pool.
//
// Thread Safety: safe for concurrent use.
type Client struct {
	pool   *reqpool.Pool
	base   string
	months int
	logger *slog.Logger
	now    func() time.Time
}

// Options configures a Client. Zero fields take defaults.
type Options struct {
	BaseURL string
	Months  int
	Logger  *slog.Logger
}

// NewClient builds a client over pool.
func NewClient(pool *reqpool.Pool, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Months <= 0 {
		opts.Months = DefaultMonths
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Client{
		pool:   pool,
		base:   opts.BaseURL,
		months: opts.Months,
		logger: opts.Logger,
		now:    time.Now,
	}
}

// SanitizeUsername lowercases and trims a username. Empty input is
// invalid.
func SanitizeUsername(username string) (string, error) {
	clean := strings.ToLower(strings.TrimSpace(username))
	if clean == "" {
		return "", ErrInvalidUsername
	}
	return clean, nil
}

// FetchPlayerContext loads profile, stats, and recent games.
//
// Description:
//
//	The profile is mandatory: a missing player fails the fetch. Stats
//	degrade to zero values (rating falls back to the default) and a
//	failed monthly archive degrades to an empty month, both logged at
//	warn level. Games with variant rules are filtered out. A context
//	with no playable games at all is an error.
//
// Inputs:
//
//	ctx - Bounds the whole fetch including pool waits.
//	username - chess.com username, case-insensitive.
//
// Outputs:
//
//	*PlayerContext - Profile, stats, and up to Months of recent games.
//	error - ErrInvalidUsername, ErrNoRecentGames, or the profile
//	fetch error.
func (c *Client) FetchPlayerContext(ctx context.Context, username string) (*PlayerContext, error) {
	clean, err := SanitizeUsername(username)
	if err != nil {
		return nil, err
	}
	playerURL := c.base + "/" + url.PathEscape(clean)

	profile, err := c.FetchProfile(ctx, clean)
	if err != nil {
		return nil, err
	}

	var stats PlayerStats
	if err := c.pool.GetJSON(ctx, playerURL+"/stats", &stats); err != nil {
		c.logger.Warn("player stats unavailable, using defaults", "username", clean, "error", err)
		stats = PlayerStats{}
	}

	games := c.fetchRecentGames(ctx, clean, playerURL)
	if len(games) == 0 {
		return nil, ErrNoRecentGames
	}
	return &PlayerContext{Profile: *profile, Stats: stats, Games: games}, nil
}

// FetchProfile loads just the public profile.
func (c *Client) FetchProfile(ctx context.Context, username string) (*Profile, error) {
	clean, err := SanitizeUsername(username)
	if err != nil {
		return nil, err
	}
	var profile Profile
	if err := c.pool.GetJSON(ctx, c.base+"/"+url.PathEscape(clean), &profile); err != nil {
		return nil, fmt.Errorf("fetch player %q: %w", clean, err)
	}
	return &profile, nil
}

// FetchArchives lists the player's monthly archive URLs, oldest first.
func (c *Client) FetchArchives(ctx context.Context, username string) ([]string, error) {
	clean, err := SanitizeUsername(username)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Archives []string `json:"archives"`
	}
	archivesURL := c.base + "/" + url.PathEscape(clean) + "/games/archives"
	if err := c.pool.GetJSON(ctx, archivesURL, &payload); err != nil {
		return nil, fmt.Errorf("fetch archives for %q: %w", clean, err)
	}
	return payload.Archives, nil
}

// FetchLatestGames returns up to limit standard games from the player's
// most recent monthly archive, oldest first.
//
// Description:
//
//	The archive list is authoritative: a failure there is an error. A
//	failure loading the latest archive itself degrades to an empty
//	result with a warning, matching how FetchPlayerContext treats a
//	broken month. Variant games are filtered out before the limit is
//	applied.
func (c *Client) FetchLatestGames(ctx context.Context, username string, limit int) ([]Game, error) {
	archives, err := c.FetchArchives(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(archives) == 0 {
		return nil, nil
	}

	latest := archives[len(archives)-1]
	var payload struct {
		Games []Game `json:"games"`
	}
	if err := c.pool.GetJSON(ctx, latest, &payload); err != nil {
		c.logger.Warn("latest archive unavailable", "username", username, "archive", latest, "error", err)
		return nil, nil
	}

	games := make([]Game, 0, len(payload.Games))
	for _, game := range payload.Games {
		if game.Rules != "" && game.Rules != "chess" {
			continue
		}
		games = append(games, game)
	}
	if limit > 0 && len(games) > limit {
		games = games[len(games)-limit:]
	}
	return games, nil
}

// fetchRecentGames pulls the last Months monthly archives, newest
// first. A failed month degrades to an empty month.
func (c *Client) fetchRecentGames(ctx context.Context, username, playerURL string) []Game {
	now := c.now()
	var games []Game
	for i := 0; i < c.months; i++ {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		archiveURL := fmt.Sprintf("%s/games/%04d/%02d", playerURL, month.Year(), int(month.Month()))

		var payload struct {
			Games []Game `json:"games"`
		}
		if err := c.pool.GetJSON(ctx, archiveURL, &payload); err != nil {
			c.logger.Warn("monthly archive unavailable, skipping",
				"username", username, "month", month.Format("2006-01"), "error", err)
			continue
		}
		for _, game := range payload.Games {
			// Keep standard chess only; archives mix in variants.
			if game.Rules != "" && game.Rules != "chess" {
				continue
			}
			games = append(games, game)
		}
	}
	return games
}
