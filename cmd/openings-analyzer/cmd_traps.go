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
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/magicolala/chess-openings-analyzer/internal/chessio"
)

var (
	trapsSide  string // white, black, or empty for both
	trapsLimit int
)

var trapsCmd = &cobra.Command{
	Use:   "traps",
	Short: "Work with the opening trap catalog",
}

// trapsRecommendCmd lists traps worth learning for an opening.
//
// # Examples
//
//	openings-analyzer traps recommend "Italian Game"
//	openings-analyzer traps recommend "Caro-Kann" --side white --limit 3
var trapsRecommendCmd = &cobra.Command{
	Use:   "recommend [opening]",
	Short: "Suggest traps to learn for an opening",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrapsRecommendCommand,
}

func init() {
	trapsRecommendCmd.Flags().StringVar(&trapsSide, "side", "",
		"Restrict to traps for one side (white or black)")
	trapsRecommendCmd.Flags().IntVar(&trapsLimit, "limit", 5,
		"Maximum number of suggestions")
	trapsCmd.AddCommand(trapsRecommendCmd)
}

func runTrapsRecommendCommand(cmd *cobra.Command, args []string) error {
	var side chessio.Side
	switch trapsSide {
	case "":
	case "white":
		side = chessio.SideWhite
	case "black":
		side = chessio.SideBlack
	default:
		return fmt.Errorf("side must be white or black, got %q", trapsSide)
	}

	engine, err := buildTraps()
	if err != nil {
		return err
	}

	picks := engine.RecommendByOpening(args[0], side, trapsLimit)
	if len(picks) == 0 {
		fmt.Printf("No traps cataloged for %q\n", args[0])
		return nil
	}
	for _, pick := range picks {
		fmt.Printf("%s (%s)\n", pick.Name, pick.Side)
		fmt.Printf("  line: %s\n", strings.Join(pick.Sequence, " "))
		if pick.Advice != "" {
			fmt.Printf("  %s\n", pick.Advice)
		}
	}
	return nil
}
