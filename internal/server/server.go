// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package server exposes the analyzer over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magicolala/chess-openings-analyzer/internal/analysis"
	"github.com/magicolala/chess-openings-analyzer/internal/chesscom"
	"github.com/magicolala/chess-openings-analyzer/internal/chessio"
	"github.com/magicolala/chess-openings-analyzer/internal/reqpool"
	"github.com/magicolala/chess-openings-analyzer/internal/traps"
)

// defaultRecommendLimit bounds trap recommendations per request.
const defaultRecommendLimit = 5

// Analyzer is the report pipeline the server fronts.
type Analyzer interface {
	Analyze(ctx context.Context, username string, cfg analysis.Config) (*analysis.Report, error)
}

// Dueler builds head-to-head opening comparisons.
type Dueler interface {
	Duel(ctx context.Context, white, black string, maxGames int) (*analysis.DuelReport, error)
}

// Server wires the HTTP surface. Defaults is the baseline analysis
// config from the config file; requests may override parts of it.
type Server struct {
	Analyzer Analyzer
	Dueler   Dueler
	Traps    *traps.Engine
	Defaults analysis.Config
	Logger   *slog.Logger
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	{
		v1.POST("/analyze", s.handleAnalyze)
		v1.GET("/duel", s.handleDuel)
		v1.GET("/traps/recommend", s.handleRecommend)
	}
	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "traps": s.Traps.Len()})
}

// AnalyzeRequest is the POST /v1/analyze body. Only Username is
// required; the other fields override the configured defaults.
type AnalyzeRequest struct {
	Username             string  `json:"username"`
	Speed                string  `json:"speed,omitempty"`
	RatingOffset         *int    `json:"ratingOffset,omitempty"`
	MinExpectedScore     float64 `json:"minExpectedScore,omitempty"`
	ImprovementThreshold float64 `json:"improvementThreshold,omitempty"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	cfg := s.Defaults
	if req.Speed != "" {
		cfg.SpeedOverride = req.Speed
	}
	if req.RatingOffset != nil {
		cfg.RatingOffset = *req.RatingOffset
	}
	if req.MinExpectedScore > 0 {
		cfg.MinExpectedScore = req.MinExpectedScore
	}
	if req.ImprovementThreshold > 0 {
		cfg.ImprovementThreshold = req.ImprovementThreshold
	}

	report, err := s.Analyzer.Analyze(c.Request.Context(), req.Username, cfg)
	if err != nil {
		s.logger().Warn("analysis failed", "username", req.Username, "error", err)
		writePlayerError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// writePlayerError maps upstream player-fetch failures onto HTTP
// statuses shared by the analyze and duel endpoints.
func writePlayerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chesscom.ErrInvalidUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid username"})
	case errors.Is(err, chesscom.ErrNoRecentGames):
		c.JSON(http.StatusNotFound, gin.H{"error": "no recent standard games for this player"})
	case reqpool.StatusOf(err) == http.StatusNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
	case reqpool.IsThrottled(err):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "upstream rate limit, retry later"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

// handleDuel compares two players' recent opening repertoires.
// Query parameters: white, black (required), maxGames (optional).
func (s *Server) handleDuel(c *gin.Context) {
	white := c.Query("white")
	black := c.Query("black")
	if white == "" || black == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "white and black usernames are required"})
		return
	}

	maxGames := 0
	if raw := c.Query("maxGames"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "maxGames must be a positive integer"})
			return
		}
		maxGames = parsed
	}

	report, err := s.Dueler.Duel(c.Request.Context(), white, black, maxGames)
	if err != nil {
		s.logger().Warn("duel failed", "white", white, "black", black, "error", err)
		writePlayerError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleRecommend(c *gin.Context) {
	opening := c.Query("opening")
	if opening == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "opening is required"})
		return
	}

	var side chessio.Side
	switch c.Query("side") {
	case "":
		side = ""
	case "white":
		side = chessio.SideWhite
	case "black":
		side = chessio.SideBlack
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "side must be white or black"})
		return
	}

	limit := defaultRecommendLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	picks := s.Traps.RecommendByOpening(opening, side, limit)
	c.JSON(http.StatusOK, gin.H{"opening": opening, "recommendations": picks})
}
