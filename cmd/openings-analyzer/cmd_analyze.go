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
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/magicolala/chess-openings-analyzer/internal/analysis"
)

var (
	analyzeSpeed        string // force a time class instead of the player's preferred one
	analyzeRatingOffset int    // shift the explorer rating bucket
	analyzeJSONOutput   bool   // full report as JSON
	analyzeTimeout      string // overall deadline
)

// analyzeCmd builds a preparation report for one player.
//
// # Examples
//
//	openings-analyzer analyze magnuscarlsen
//	openings-analyzer analyze hikaru --speed blitz --rating-offset 200
//	openings-analyzer analyze hero --json > report.json
var analyzeCmd = &cobra.Command{
	Use:   "analyze [username]",
	Short: "Analyze a chess.com player's recent openings",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyzeCommand,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeSpeed, "speed", "",
		"Time class to prepare for (bullet, blitz, rapid, classical); default follows the player")
	analyzeCmd.Flags().IntVar(&analyzeRatingOffset, "rating-offset", 0,
		"Shift the explorer rating bucket, e.g. 200 to prepare against stronger opposition")
	analyzeCmd.Flags().BoolVar(&analyzeJSONOutput, "json", false,
		"Print the full report as JSON")
	analyzeCmd.Flags().StringVar(&analyzeTimeout, "timeout", "5m",
		"Overall deadline for the analysis (e.g. 2m, 10m)")
}

func runAnalyzeCommand(cmd *cobra.Command, args []string) error {
	timeout, err := time.ParseDuration(analyzeTimeout)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", analyzeTimeout, err)
	}

	runCfg, err := analysisConfig(cfg.Analysis)
	if err != nil {
		return err
	}
	if analyzeSpeed != "" {
		runCfg.SpeedOverride = analyzeSpeed
	}
	if analyzeRatingOffset != 0 {
		runCfg.RatingOffset = analyzeRatingOffset
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

	report, err := analyzer.Analyze(ctx, args[0], runCfg)
	if err != nil {
		return err
	}

	if analyzeJSONOutput {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	printReport(report)
	return nil
}

func printReport(report *analysis.Report) {
	fmt.Printf("Report %s for %s (rating %d, %s pool, bucket %d, %d games)\n\n",
		report.ID, report.Username, report.Rating, report.Speed, report.RatingBucket, report.GamesSeen)
	printColor("As White", report.White)
	printColor("As Black", report.Black)
}

func printColor(title string, buckets analysis.Buckets) {
	fmt.Printf("%s\n", title)
	if len(buckets) == 0 {
		fmt.Println("  no games")
		return
	}
	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if buckets[names[i]].Count != buckets[names[j]].Count {
			return buckets[names[i]].Count > buckets[names[j]].Count
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		b := buckets[name]
		fmt.Printf("  %s: %d games (+%d =%d -%d)\n", b.Name, b.Count, b.Wins, b.Draws, b.Losses)
		if len(b.TrapHits) > 0 {
			fmt.Printf("    traps seen: %d\n", len(b.TrapHits))
		}
		if b.Advice != nil && len(b.Advice.Suggestions) > 0 {
			best := b.Advice.Suggestions[0]
			fmt.Printf("    best continuation: %s (%.0f%% expected)\n", best.SAN, best.ExpectedScore*100)
		}
		for _, dev := range b.Deviations {
			fmt.Printf("    left theory at move %d (%s); punish with %s\n",
				dev.Ply.MoveNumber, dev.Ply.SAN, dev.Recommendation.SAN)
		}
		if b.TheoryErr != nil {
			fmt.Printf("    theory check: %s\n", b.TheoryErr.Message)
		}
		for _, imp := range b.Improvements {
			fmt.Printf("    move %d: prefer %s (+%.0f%% expected)\n",
				imp.Ply.MoveNumber, imp.Recommendation.SAN, imp.Delta*100)
		}
	}
	fmt.Println()
}
