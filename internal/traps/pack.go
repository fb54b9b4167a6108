// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package traps

import "github.com/magicolala/chess-openings-analyzer/internal/chessio"

// DefaultPack is the built-in trap repertoire. Sequences are written in
// plain SAN; Register canonicalizes them.
func DefaultPack() []Trap {
	return []Trap{
		{
			ID:          "fried-liver",
			Name:        "Trap: Fried Liver",
			Side:        chessio.SideWhite,
			OpeningTags: []string{"Italian", "Two Knights"},
			Sequence:    []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Nf6", "Ng5", "d5", "exd5", "Nxd5"},
			Advice:      "Prefer ...Na5 or ...Nd4; after ...Nxd5?? the f7 sacrifice is winning.",
		},
		{
			ID:          "traxler",
			Name:        "Trap: Traxler (Wilkes-Barre)",
			Side:        chessio.SideBlack,
			OpeningTags: []string{"Two Knights"},
			Sequence:    []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Nf6", "Ng5", "Bc5"},
			Advice:      "...Bc5 invites Bxf7+ tactics; know the refutations or avoid it.",
		},
		{
			ID:          "legall",
			Name:        "Trap: Legal's Mate motif",
			Side:        chessio.SideWhite,
			OpeningTags: []string{"Italian", "Giuoco", "Philidor"},
			Sequence:    []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "d6", "Nc3", "Bg4", "h3", "Bh5", "Nxe5"},
			Advice:      "If ...Bxd1?? then Qxf7+ and mate follows. Stronger players are vaccinated.",
		},
		{
			ID:          "open-spanish-tactic",
			Name:        "Trap: Open Spanish tactics",
			Side:        chessio.SideBlack,
			OpeningTags: []string{"Ruy Lopez", "Spanish"},
			Sequence:    []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6", "Ba4", "Nf6", "O-O", "Nxe4"},
			Advice:      "...Nxe4 forces complications; learn the quiet ...Be7 lines first.",
		},
		{
			ID:          "noah-ark",
			Name:        "Trap: Noah's Ark",
			Side:        chessio.SideBlack,
			OpeningTags: []string{"Ruy Lopez", "Spanish"},
			Sequence:    []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6", "Ba4", "b5", "Bb3", "Na5", "c3", "Nxb3", "Qxb3", "d6", "d4"},
			Advice:      "...exd4 then ...c5-c4 buries the white bishop on b3 if mishandled.",
		},
		{
			ID:          "najdorf-poisoned",
			Name:        "Trap: Najdorf Poisoned Pawn",
			Side:        chessio.SideBlack,
			OpeningTags: []string{"Najdorf", "Sicilian"},
			Sequence:    []string{"e4", "c5", "Nf3", "d6", "d4", "cxd4", "Nxd4", "Nf6", "Nc3", "a6", "Bg5", "e6", "f4", "Qb6"},
			Advice:      "...Qb6 targets b2. Without the theory, stay out of it in blitz.",
		},
		{
			ID:          "rossolimo-b4",
			Name:        "Trap: Rossolimo b4-b5 break",
			Side:        chessio.SideWhite,
			OpeningTags: []string{"Rossolimo", "Moscow", "Sicilian"},
			Sequence:    []string{"e4", "c5", "Nf3", "Nc6", "Bb5", "g6", "O-O", "Bg7", "Re1", "e5", "b4"},
			Advice:      "b4-b5 rips the structure; ...axb5? allows tactics on e5 and c6.",
		},
		{
			ID:          "morra-tactics",
			Name:        "Trap: Smith-Morra motifs",
			Side:        chessio.SideWhite,
			OpeningTags: []string{"Smith-Morra", "Sicilian"},
			Sequence:    []string{"e4", "c5", "d4", "cxd4", "c3", "dxc3", "Nxc3"},
			Advice:      "Turbo development aimed at e5 and f7. Adapt if Black returns the pawn early.",
		},
		{
			ID:          "winawer-poisoned",
			Name:        "Trap: Winawer Poisoned Pawn",
			Side:        chessio.SideWhite,
			OpeningTags: []string{"French", "Winawer"},
			Sequence:    []string{"e4", "e6", "d4", "d5", "Nc3", "Bb4", "e5", "c5", "a3", "Bxc3+", "bxc3", "Ne7", "Qg4"},
			Advice:      "Qg4 scrapes g7 and b7. Know the open files to punish a careless ...Qc7.",
		},
		{
			ID:          "ck-advance-bishop-trap",
			Name:        "Trap: Caro-Kann Advance, trapped bishop",
			Side:        chessio.SideWhite,
			OpeningTags: []string{"Caro-Kann"},
			Sequence:    []string{"e4", "c6", "d4", "d5", "e5", "Bf5", "g4", "Be4", "f3"},
			Advice:      "The g4/f3 plan boxes the bishop in. Do not force it against an accurate ...h5.",
		},
		{
			ID:          "scandi-d5-push",
			Name:        "Trap: Scandinavian d5 push",
			Side:        chessio.SideWhite,
			OpeningTags: []string{"Scandinavian"},
			Sequence:    []string{"e4", "d5", "exd5", "Qxd5", "Nc3", "Qa5", "d4", "Bd7", "Nf3", "Nc6", "d5"},
			Advice:      "Tempo gains against the black queen. Watch for ...Nb4 ideas.",
		},
		{
			ID:          "elephant-trap",
			Name:        "Trap: Elephant Trap (QGD)",
			Side:        chessio.SideBlack,
			OpeningTags: []string{"QGD", "Cambridge Springs"},
			Sequence:    []string{"d4", "d5", "c4", "e6", "Nc3", "Nf6", "Bg5", "Nbd7", "cxd5", "exd5", "Nxd5"},
			Advice:      "...Nxd5! and if Bxd8?? then ...Bb4+ wins the queen. A club classic.",
		},
		{
			ID:          "slav-qb3",
			Name:        "Trap: Slav Qb3 against b7",
			Side:        chessio.SideWhite,
			OpeningTags: []string{"Slav"},
			Sequence:    []string{"d4", "d5", "c4", "c6", "cxd5", "cxd5", "Nc3", "Nc6", "Bf4", "Nf6", "e3", "Bf5", "Qb3"},
			Advice:      "Bait on b7. If ...Qb6 equalizes, switch to the quick e4 plan.",
		},
		{
			ID:          "qga-central",
			Name:        "Trap: QGA central crush",
			Side:        chessio.SideWhite,
			OpeningTags: []string{"QGA"},
			Sequence:    []string{"d4", "d5", "c4", "dxc4", "e4", "e5", "Nf3", "exd4", "Bxc4"},
			Advice:      "The center explodes fast. Avoid it when Black returns the pawn cleanly.",
		},
		{
			ID:          "nimzo-qc2-tactics",
			Name:        "Trap: Nimzo Qc2 tactics",
			Side:        chessio.SideWhite,
			OpeningTags: []string{"Nimzo-Indian"},
			Sequence:    []string{"d4", "Nf6", "c4", "e6", "Nc3", "Bb4", "Qc2", "O-O", "a3", "Bxc3+", "Qxc3"},
			Advice:      "Tactics on e4 and c7. Do not sleep on a quick ...d5.",
		},
		{
			ID:          "grunfeld-exchange",
			Name:        "Trap: Grunfeld Exchange pressure",
			Side:        chessio.SideWhite,
			OpeningTags: []string{"Grunfeld"},
			Sequence:    []string{"d4", "Nf6", "c4", "g6", "Nc3", "d5", "cxd5", "Nxd5", "e4", "Nxc3", "bxc3", "Bg7", "Nf3", "c5", "Rb1"},
			Advice:      "Diagonal and b-file pressure. Have h3/Bg5 ready against ...Qa5+.",
		},
		{
			ID:          "kid-saemisch-d5",
			Name:        "Trap: KID Saemisch d5!",
			Side:        chessio.SideWhite,
			OpeningTags: []string{"KID", "King's Indian"},
			Sequence:    []string{"d4", "Nf6", "c4", "g6", "Nc3", "Bg7", "e4", "d6", "f3", "O-O", "Be3", "e5", "Nge2", "Nc6", "d5"},
			Advice:      "d5 at the right moment punishes a superficial ...Nc6-e5.",
		},
		{
			ID:          "benko-accept",
			Name:        "Trap: Benko accepted initiative",
			Side:        chessio.SideBlack,
			OpeningTags: []string{"Benko", "Volga"},
			Sequence:    []string{"d4", "Nf6", "c4", "c5", "d5", "b5", "cxb5", "a6"},
			Advice:      "Long-term initiative for the pawn. Do not tilt if White returns it with bxa6.",
		},
		{
			ID:          "london-anti-qb6",
			Name:        "Trap: London anti-...Qb6",
			Side:        chessio.SideWhite,
			OpeningTags: []string{"London"},
			Sequence:    []string{"d4", "Nf6", "Bf4", "c5", "d5", "Qb6", "Nc3"},
			Advice:      "Tactics on b2 and d5. Avoid it against a precise ...Qxb2!?",
		},
		{
			ID:          "tromp-qb6",
			Name:        "Trap: Trompowsky anti-...Qb6",
			Side:        chessio.SideWhite,
			OpeningTags: []string{"Trompowsky"},
			Sequence:    []string{"d4", "Nf6", "Bg5", "c5", "d5", "Qb6", "Nc3"},
			Advice:      "Same motif as the London. Remember the b2/c5 tactics.",
		},
		{
			ID:          "dutch-leningrad-e-file",
			Name:        "Trap: Leningrad e-file pin",
			Side:        chessio.SideWhite,
			OpeningTags: []string{"Dutch", "Leningrad"},
			Sequence:    []string{"d4", "f5", "c4", "Nf6", "g3", "e6", "Bg2", "Be7", "Nf3", "O-O", "O-O", "d6", "Nc3", "Qe8", "Re1"},
			Advice:      "Pins the e-file rook. Mind the ambushes on h2 and h7.",
		},
		{
			ID:          "blackburne-shilling",
			Name:        "Trap: Blackburne-Shilling",
			Side:        chessio.SideBlack,
			OpeningTags: []string{"e4 e5"},
			Sequence:    []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Nd4", "Nxe5", "Qg5", "Bxf7+"},
			Advice:      "...Nd4?! sets an ambush. Do not fall in love with it against strong players.",
		},
		{
			ID:          "scholars-mate",
			Name:        "Trap: Scholar's Mate",
			Side:        chessio.SideWhite,
			OpeningTags: []string{"e4 e5", "Beginner"},
			Sequence:    []string{"e4", "e5", "Qh5", "Nc6", "Bc4", "Nf6", "Qxf7"},
			Advice:      "Dirty but instructive. Retire it above 800.",
		},
	}
}
