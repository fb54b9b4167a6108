// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package chessio

import (
	"regexp"
	"strings"
)

// Lexical movetext cleanup. Applied in order before splitting on
// whitespace; each step removes one category of PGN noise.
var (
	reComment    = regexp.MustCompile(`\{[^}]*\}`)
	reLineNote   = regexp.MustCompile(`;[^\n]*`)
	reVariation  = regexp.MustCompile(`\([^)]*\)`)
	reNAG        = regexp.MustCompile(`\$\d+`)
	reResult     = regexp.MustCompile(`\b(1-0|0-1|1/2-1/2|\*)\b`)
	reMoveNumber = regexp.MustCompile(`\d+\.(\.\.)?\.?`)
	reTagPair    = regexp.MustCompile(`(?m)^\[[^\]]*\]\s*$`)
)

// TokenizeMovetext extracts canonical move tokens from bare movetext
// without consulting the rules library. It performs no legality checking;
// anything that does not look like a move is dropped.
//
// This is the fallback path for fragments the PGN parser rejects, such as
// a half-finished line pasted from a study.
func TokenizeMovetext(raw string) []string {
	s := raw
	s = reTagPair.ReplaceAllString(s, " ")
	s = reComment.ReplaceAllString(s, " ")
	s = reLineNote.ReplaceAllString(s, " ")
	s = reVariation.ReplaceAllString(s, " ")
	s = reNAG.ReplaceAllString(s, " ")
	s = reResult.ReplaceAllString(s, " ")
	s = reMoveNumber.ReplaceAllString(s, " ")
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	return CanonicalSequence(fields)
}
