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
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/magicolala/chess-openings-analyzer/internal/chesscom"
	"github.com/magicolala/chess-openings-analyzer/internal/chessio"
)

// DefaultDuelGames is how many recent games per player feed the duel
// comparison.
const DefaultDuelGames = 20

// duelLineDepth is how many plies identify an opening line in the
// frequency tree.
const duelLineDepth = 4

// DuelPlayer is one side of a head-to-head comparison.
type DuelPlayer struct {
	Username string     `json:"username"`
	Name     string     `json:"name,omitempty"`
	Title    string     `json:"title,omitempty"`
	Country  string     `json:"country,omitempty"`
	Avatar   string     `json:"avatar,omitempty"`
	URL      string     `json:"url,omitempty"`
	Joined   *time.Time `json:"joined,omitempty"`
}

func duelPlayer(profile chesscom.Profile) DuelPlayer {
	player := DuelPlayer{
		Username: profile.Username,
		Name:     profile.Name,
		Title:    profile.Title,
		Country:  profile.CountryCode(),
		Avatar:   profile.Avatar,
		URL:      profile.URL,
	}
	if profile.Joined > 0 {
		joined := time.Unix(profile.Joined, 0).UTC()
		player.Joined = &joined
	}
	return player
}

// DuelOpeningStat is one opening line in the combined frequency tree.
type DuelOpeningStat struct {
	Line        string `json:"line"`
	Count       int    `json:"count"`
	FirstPlayer string `json:"firstPlayer,omitempty"`
}

// DuelReport compares the recent opening repertoires of two players.
type DuelReport struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"`

	White DuelPlayer `json:"white"`
	Black DuelPlayer `json:"black"`

	Openings   []DuelOpeningStat `json:"openings"`
	TotalGames int               `json:"totalGames"`
}

// Duel fetches both players' profiles and recent games and builds the
// combined opening-frequency tree.
//
// Description:
//
//	Both profiles are mandatory: a missing player fails the duel. The
//	two fetches run concurrently; the request pool keeps the upstream
//	rate honest. maxGames bounds the recent games pulled per player
//	(DefaultDuelGames when non-positive).
//
// Inputs:
//
//	ctx - Bounds both fetches including pool waits.
//	white, black - chess.com usernames, case-insensitive.
//	maxGames - Recent games per player; <= 0 takes the default.
//
// Outputs:
//
//	*DuelReport - Profiles plus opening lines sorted by frequency.
//	error - chesscom.ErrInvalidUsername or a profile/archive fetch
//	error.
func (a *Analyzer) Duel(ctx context.Context, white, black string, maxGames int) (*DuelReport, error) {
	whiteClean, err := chesscom.SanitizeUsername(white)
	if err != nil {
		return nil, fmt.Errorf("duel white player: %w", err)
	}
	blackClean, err := chesscom.SanitizeUsername(black)
	if err != nil {
		return nil, fmt.Errorf("duel black player: %w", err)
	}
	if maxGames <= 0 {
		maxGames = DefaultDuelGames
	}

	var (
		profiles [2]*chesscom.Profile
		games    [2][]chesscom.Game
	)
	group, groupCtx := errgroup.WithContext(ctx)
	for i, username := range []string{whiteClean, blackClean} {
		i, username := i, username
		group.Go(func() error {
			profile, err := a.Chesscom.FetchProfile(groupCtx, username)
			if err != nil {
				return err
			}
			recent, err := a.Chesscom.FetchLatestGames(groupCtx, username, maxGames)
			if err != nil {
				return err
			}
			profiles[i] = profile
			games[i] = recent
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("duel %q vs %q: %w", whiteClean, blackClean, err)
	}

	openings := buildOpeningTree(append(append([]chesscom.Game(nil), games[0]...), games[1]...))
	total := 0
	for _, entry := range openings {
		total += entry.Count
	}

	report := &DuelReport{
		ID:          a.newID(),
		GeneratedAt: a.now().UTC(),
		White:       duelPlayer(*profiles[0]),
		Black:       duelPlayer(*profiles[1]),
		Openings:    openings,
		TotalGames:  total,
	}
	a.Logger.Info("duel finished",
		"white", report.White.Username, "black", report.Black.Username,
		"report", report.ID, "lines", len(openings), "games", total)
	return report, nil
}

// buildOpeningTree counts opening lines across games. Lines are keyed
// case-insensitively on the first duelLineDepth plies; ties in count
// break on the line text so output is deterministic.
func buildOpeningTree(games []chesscom.Game) []DuelOpeningStat {
	counter := make(map[string]*DuelOpeningStat)
	for _, game := range games {
		tokens := chessio.TokenizeMovetext(game.PGN)
		line := summarizeOpeningLine(tokens, duelLineDepth)
		if line == "" {
			continue
		}
		first := game.White.Username
		if first == "" {
			first = game.Black.Username
		}
		key := strings.ToLower(line)
		entry, ok := counter[key]
		if !ok {
			entry = &DuelOpeningStat{Line: line, FirstPlayer: first}
			counter[key] = entry
		}
		entry.Count++
		if entry.FirstPlayer == "" {
			entry.FirstPlayer = first
		}
	}

	stats := make([]DuelOpeningStat, 0, len(counter))
	for _, entry := range counter {
		stats = append(stats, *entry)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Line < stats[j].Line
	})
	return stats
}

// summarizeOpeningLine renders the first maxDepth plies as numbered
// move pairs, e.g. "1.e4 e5 2.Nf3 Nc6".
func summarizeOpeningLine(tokens []string, maxDepth int) string {
	if len(tokens) == 0 {
		return ""
	}
	if len(tokens) > maxDepth {
		tokens = tokens[:maxDepth]
	}
	var pairs []string
	for i := 0; i < len(tokens); i += 2 {
		turn := i/2 + 1
		if i+1 < len(tokens) {
			pairs = append(pairs, fmt.Sprintf("%d.%s %s", turn, tokens[i], tokens[i+1]))
		} else {
			pairs = append(pairs, fmt.Sprintf("%d.%s", turn, tokens[i]))
		}
	}
	return strings.Join(pairs, " ")
}
