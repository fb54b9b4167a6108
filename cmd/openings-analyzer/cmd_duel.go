// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/magicolala/chess-openings-analyzer/internal/analysis"
)

var (
	duelMaxGames   int
	duelJSONOutput bool
	duelTimeout    string
)

// duelCmd compares two players' recent opening repertoires.
//
// # Examples
//
//	openings-analyzer duel magnuscarlsen hikaru
//	openings-analyzer duel hero rival --max-games 50 --json
var duelCmd = &cobra.Command{
	Use:   "duel [white] [black]",
	Short: "Compare the recent openings of two chess.com players",
	Args:  cobra.ExactArgs(2),
	RunE:  runDuelCommand,
}

func init() {
	duelCmd.Flags().IntVar(&duelMaxGames, "max-games", analysis.DefaultDuelGames,
		"Recent games per player to compare")
	duelCmd.Flags().BoolVar(&duelJSONOutput, "json", false,
		"Print the full report as JSON")
	duelCmd.Flags().StringVar(&duelTimeout, "timeout", "2m",
		"Overall deadline for the comparison (e.g. 30s, 5m)")
}

func runDuelCommand(cmd *cobra.Command, args []string) error {
	timeout, err := time.ParseDuration(duelTimeout)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", duelTimeout, err)
	}

	analyzer, cleanup, err := buildAnalyzer(cfg, slog.Default())
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	report, err := analyzer.Duel(ctx, args[0], args[1], duelMaxGames)
	if err != nil {
		return err
	}

	if duelJSONOutput {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	printDuelReport(report)
	return nil
}

func printDuelReport(report *analysis.DuelReport) {
	fmt.Printf("Duel %s: %s vs %s (%d games)\n\n",
		report.ID, describeDuelPlayer(report.White), describeDuelPlayer(report.Black), report.TotalGames)
	if len(report.Openings) == 0 {
		fmt.Println("no recent games to compare")
		return
	}
	for _, entry := range report.Openings {
		fmt.Printf("  %3dx  %s", entry.Count, entry.Line)
		if entry.FirstPlayer != "" {
			fmt.Printf("  (first seen: %s)", entry.FirstPlayer)
		}
		fmt.Println()
	}
}

func describeDuelPlayer(player analysis.DuelPlayer) string {
	name := player.Username
	if player.Title != "" {
		name = player.Title + " " + name
	}
	if player.Country != "" {
		name += " [" + player.Country + "]"
	}
	return name
}
