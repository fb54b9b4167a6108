// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package openings

// DefaultPack is the built-in repertoire of named lines. Deeper lines
// shadow shallower ones during longest-prefix lookup.
func DefaultPack() []Line {
	return []Line{
		// Ruy Lopez.
		{Sequence: []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6", "Ba4", "Nf6", "O-O", "Be7", "Re1", "b5", "Bb3", "d6", "c3", "O-O", "h3"}, Name: "Ruy Lopez: Closed, Chigorin"},
		{Sequence: []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "Nf6"}, Name: "Ruy Lopez: Berlin Defense"},
		{Sequence: []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "Nxe4"}, Name: "Ruy Lopez: Open"},
		{Sequence: []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "d6"}, Name: "Ruy Lopez: Steinitz Defense"},
		{Sequence: []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "f5"}, Name: "Ruy Lopez: Schliemann Defense"},
		{Sequence: []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "Bc5"}, Name: "Ruy Lopez: Classical Defense"},
		{Sequence: []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6"}, Name: "Ruy Lopez: Morphy Defense"},

		// Italian / Two Knights.
		{Sequence: []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5", "c3", "Nf6", "d3", "d6"}, Name: "Italian Game: Giuoco Pianissimo"},
		{Sequence: []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5", "b4"}, Name: "Italian Game: Evans Gambit"},
		{Sequence: []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5"}, Name: "Italian Game: Giuoco Piano"},
		{Sequence: []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Nf6", "Ng5", "d5", "exd5", "Na5"}, Name: "Italian Game: Two Knights Defense, Main Line"},
		{Sequence: []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Nf6", "Ng5", "Bc5"}, Name: "Italian Game: Two Knights Defense, Traxler"},
		{Sequence: []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Nf6"}, Name: "Italian Game: Two Knights Defense"},

		// Vienna / King's Gambit / Petrov / Philidor.
		{Sequence: []string{"e4", "e5", "Nc3", "Nf6", "f4"}, Name: "Vienna Gambit"},
		{Sequence: []string{"e4", "e5", "f4", "exf4", "Nf3", "g5", "h4"}, Name: "King's Gambit Accepted: Kieseritzky"},
		{Sequence: []string{"e4", "e5", "f4", "d5"}, Name: "King's Gambit Declined: Falkbeer"},
		{Sequence: []string{"e4", "e5", "Nf3", "Nf6", "Nxe5", "d6", "Nf3", "Nxe4"}, Name: "Petrov Defense: Main Line"},
		{Sequence: []string{"e4", "e5", "Nf3", "d6", "d4", "Nf6", "Nc3", "Nbd7"}, Name: "Philidor Defense: Hanham"},

		// Sicilian.
		{Sequence: []string{"e4", "c5", "Nf3", "d6", "d4", "cxd4", "Nxd4", "Nf6", "Nc3", "a6"}, Name: "Sicilian Defense: Najdorf Variation"},
		{Sequence: []string{"e4", "c5", "Nf3", "d6", "d4", "cxd4", "Nxd4", "Nf6", "Nc3", "g6"}, Name: "Sicilian Defense: Dragon Variation"},
		{Sequence: []string{"e4", "c5", "Nf3", "Nc6", "d4", "cxd4", "Nxd4", "Nf6", "Nc3", "e5"}, Name: "Sicilian Defense: Sveshnikov Variation"},
		{Sequence: []string{"e4", "c5", "Nf3", "e6", "d4", "cxd4", "Nxd4", "Nc6"}, Name: "Sicilian Defense: Taimanov Variation"},
		{Sequence: []string{"e4", "c5", "Nf3", "e6", "d4", "cxd4", "Nxd4", "a6"}, Name: "Sicilian Defense: Kan Variation"},
		{Sequence: []string{"e4", "c5", "Nf3", "Nc6", "d4", "cxd4", "Nxd4", "g6"}, Name: "Sicilian Defense: Accelerated Dragon"},
		{Sequence: []string{"e4", "c5", "Nf3", "Nc6", "Bb5"}, Name: "Sicilian Defense: Rossolimo Variation"},
		{Sequence: []string{"e4", "c5", "Nc3", "Nc6", "f4"}, Name: "Sicilian Defense: Grand Prix Attack"},
		{Sequence: []string{"e4", "c5", "d4", "cxd4", "c3"}, Name: "Sicilian Defense: Smith-Morra Gambit"},
		{Sequence: []string{"e4", "c5", "c3", "d5"}, Name: "Sicilian Defense: Alapin, 2...d5"},
		{Sequence: []string{"e4", "c5"}, Name: "Sicilian Defense"},

		// French.
		{Sequence: []string{"e4", "e6", "d4", "d5", "Nc3", "Bb4"}, Name: "French Defense: Winawer"},
		{Sequence: []string{"e4", "e6", "d4", "d5", "Nd2"}, Name: "French Defense: Tarrasch"},
		{Sequence: []string{"e4", "e6", "d4", "d5", "e5", "c5", "c3", "Nc6"}, Name: "French Defense: Advance"},
		{Sequence: []string{"e4", "e6", "d4", "d5", "exd5", "exd5"}, Name: "French Defense: Exchange"},
		{Sequence: []string{"e4", "e6", "d4", "d5", "Nc3", "Nf6"}, Name: "French Defense: Classical"},
		{Sequence: []string{"e4", "e6"}, Name: "French Defense"},

		// Caro-Kann.
		{Sequence: []string{"e4", "c6", "d4", "d5", "e5", "Bf5", "Nf3", "e6"}, Name: "Caro-Kann Defense: Advance"},
		{Sequence: []string{"e4", "c6", "d4", "d5", "Nc3", "dxe4", "Nxe4", "Bf5"}, Name: "Caro-Kann Defense: Classical"},
		{Sequence: []string{"e4", "c6", "d4", "d5", "exd5", "cxd5", "c4"}, Name: "Caro-Kann Defense: Panov-Botvinnik"},
		{Sequence: []string{"e4", "c6", "d4", "d5", "exd5", "cxd5"}, Name: "Caro-Kann Defense: Exchange"},
		{Sequence: []string{"e4", "c6"}, Name: "Caro-Kann Defense"},

		// Other 1.e4.
		{Sequence: []string{"e4", "d5", "exd5", "Qxd5", "Nc3", "Qa5"}, Name: "Scandinavian Defense: 3...Qa5"},
		{Sequence: []string{"e4", "d5", "exd5", "Qxd5", "Nc3", "Qd6"}, Name: "Scandinavian Defense: 3...Qd6"},
		{Sequence: []string{"e4", "d6", "d4", "Nf6", "Nc3", "g6"}, Name: "Pirc Defense"},
		{Sequence: []string{"e4", "g6", "d4", "Bg7", "Nc3", "d6"}, Name: "Modern Defense"},
		{Sequence: []string{"e4", "Nf6", "e5", "Nd5", "d4", "d6", "Nf3"}, Name: "Alekhine Defense: Modern"},

		// Queen's Gambit family.
		{Sequence: []string{"d4", "d5", "c4", "e6", "Nc3", "Nf6", "Bg5", "Be7", "e3", "O-O"}, Name: "Queen's Gambit Declined: Orthodox"},
		{Sequence: []string{"d4", "d5", "c4", "e6", "Nc3", "Nf6", "Bg5", "Nbd7"}, Name: "Queen's Gambit Declined: Cambridge Springs setup"},
		{Sequence: []string{"d4", "d5", "c4", "e6", "Nc3", "c5"}, Name: "Queen's Gambit Declined: Tarrasch"},
		{Sequence: []string{"d4", "d5", "c4", "e6"}, Name: "Queen's Gambit Declined"},
		{Sequence: []string{"d4", "d5", "c4", "c6", "Nc3", "Nf6", "Nf3", "e6"}, Name: "Semi-Slav Defense"},
		{Sequence: []string{"d4", "d5", "c4", "c6", "cxd5", "cxd5", "Nc3", "Nc6", "Bf4"}, Name: "Slav Defense: Exchange, Bf4"},
		{Sequence: []string{"d4", "d5", "c4", "c6"}, Name: "Slav Defense"},
		{Sequence: []string{"d4", "d5", "c4", "dxc4", "Nf3", "Nf6", "e3", "e6", "Bxc4", "c5"}, Name: "Queen's Gambit Accepted: Classical"},
		{Sequence: []string{"d4", "d5", "c4", "dxc4", "e4"}, Name: "Queen's Gambit Accepted: Central Variation"},
		{Sequence: []string{"d4", "d5", "c4", "dxc4"}, Name: "Queen's Gambit Accepted"},

		// Indian defenses.
		{Sequence: []string{"d4", "Nf6", "c4", "e6", "Nc3", "Bb4", "Qc2"}, Name: "Nimzo-Indian Defense: Classical"},
		{Sequence: []string{"d4", "Nf6", "c4", "e6", "Nc3", "Bb4", "e3", "O-O", "Bd3", "d5"}, Name: "Nimzo-Indian Defense: Rubinstein"},
		{Sequence: []string{"d4", "Nf6", "c4", "e6", "Nc3", "Bb4", "a3", "Bxc3+", "bxc3"}, Name: "Nimzo-Indian Defense: Saemisch"},
		{Sequence: []string{"d4", "Nf6", "c4", "e6", "Nf3", "b6", "g3", "Bb7", "Bg2", "Be7", "O-O", "O-O"}, Name: "Queen's Indian Defense: Main Line"},
		{Sequence: []string{"d4", "Nf6", "c4", "g6", "Nc3", "d5", "cxd5", "Nxd5"}, Name: "Grunfeld Defense: Exchange"},
		{Sequence: []string{"d4", "Nf6", "c4", "g6", "Nc3", "Bg7", "e4", "d6", "Be2", "O-O", "Nf3", "e5"}, Name: "King's Indian Defense: Classical"},
		{Sequence: []string{"d4", "Nf6", "c4", "g6", "Nc3", "Bg7", "e4", "d6", "f3"}, Name: "King's Indian Defense: Saemisch"},
		{Sequence: []string{"d4", "Nf6", "c4", "c5", "d5", "e6", "Nc3", "exd5", "cxd5", "d6"}, Name: "Benoni Defense: Modern"},
		{Sequence: []string{"d4", "Nf6", "c4", "c5", "d5", "b5"}, Name: "Benko Gambit"},
		{Sequence: []string{"d4", "Nf6", "c4", "e6", "g3", "d5", "Bg2", "Be7", "Nf3", "O-O", "O-O"}, Name: "Catalan Opening: Closed"},

		// d4 systems without c4.
		{Sequence: []string{"d4", "Nf6", "Bf4", "g6", "e3", "Bg7", "Nf3", "O-O", "h3"}, Name: "London System"},
		{Sequence: []string{"d4", "Nf6", "Bf4"}, Name: "London System"},
		{Sequence: []string{"d4", "Nf6", "Nc3", "d5", "Bf4"}, Name: "Jobava London System"},
		{Sequence: []string{"d4", "Nf6", "Bg5"}, Name: "Trompowsky Attack"},
		{Sequence: []string{"d4", "Nf6", "Nf3", "e6", "Bg5"}, Name: "Torre Attack"},
		{Sequence: []string{"d4", "d5", "Nc3", "Nf6", "e4"}, Name: "Blackmar-Diemer Gambit"},

		// Dutch.
		{Sequence: []string{"d4", "f5", "c4", "Nf6", "g3", "g6", "Bg2", "Bg7", "Nf3", "O-O"}, Name: "Dutch Defense: Leningrad"},
		{Sequence: []string{"d4", "f5", "c4", "e6", "Nc3", "Nf6", "g3", "d5"}, Name: "Dutch Defense: Stonewall"},
		{Sequence: []string{"d4", "f5"}, Name: "Dutch Defense"},

		// English / Reti.
		{Sequence: []string{"c4", "e5", "Nc3", "Nc6", "g3", "g6", "Bg2", "Bg7"}, Name: "English Opening: Four Knights, Fianchetto"},
		{Sequence: []string{"c4", "e5", "g3", "Nf6", "Bg2", "d5"}, Name: "English Opening: Reversed Sicilian"},
		{Sequence: []string{"c4", "e5"}, Name: "English Opening: King's English"},
		{Sequence: []string{"c4"}, Name: "English Opening"},
		{Sequence: []string{"Nf3", "d5", "g3", "Nf6", "Bg2", "c6", "O-O", "Bf5"}, Name: "Reti Opening: Reversed Caro setup"},
		{Sequence: []string{"Nf3", "d5", "c4", "e6", "g3", "Nf6", "Bg2", "Be7", "O-O", "O-O"}, Name: "Reti Opening: QGD transposition"},
		{Sequence: []string{"Nf3"}, Name: "Reti Opening"},

		// First-move fallbacks.
		{Sequence: []string{"e4", "e5"}, Name: "King's Pawn Game"},
		{Sequence: []string{"e4"}, Name: "King's Pawn Opening"},
		{Sequence: []string{"d4", "d5"}, Name: "Queen's Pawn Game"},
		{Sequence: []string{"d4"}, Name: "Queen's Pawn Opening"},
	}
}
