package fen

import (
	"errors"
	"testing"

	"chess_rules/internal/shared"
)

func TestParseStartingPosition(t *testing.T) {
	d, err := Parse(StartingFEN)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Ranks[0] != "rnbqkbnr" || d.Ranks[7] != "RNBQKBNR" {
		t.Fatalf("unexpected back ranks %q / %q", d.Ranks[0], d.Ranks[7])
	}
	if d.SideToMove != shared.White {
		t.Fatalf("side to move = %v, want white", d.SideToMove)
	}
	if d.Castling != CastlingAll {
		t.Fatalf("castling = %v, want KQkq", d.Castling)
	}
	if d.EnPassant != "-" || d.HalfMove != 0 || d.FullMove != 1 {
		t.Fatalf("unexpected tail fields: %+v", d)
	}
	if got := d.String(); got != StartingFEN {
		t.Fatalf("String() = %q, want %q", got, StartingFEN)
	}
}

func TestParseOptionalClocks(t *testing.T) {
	d, err := Parse("4k3/8/8/8/8/8/8/4K3 b - e3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.HalfMove != 0 || d.FullMove != 1 {
		t.Fatalf("clocks = %d/%d, want 0/1", d.HalfMove, d.FullMove)
	}
	if d.SideToMove != shared.Black || d.EnPassant != "e3" {
		t.Fatalf("unexpected descriptor %+v", d)
	}
}

func TestParseRejectsMalformedRecords(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"seven ranks", "8/8/8/8/8/8/8 w - - 0 1"},
		{"short rank", "7/8/8/8/8/8/8/8 w - - 0 1"},
		{"wide rank", "9/8/8/8/8/8/8/8 w - - 0 1"},
		{"digits overflow", "ppppppp2/8/8/8/8/8/8/8 w - - 0 1"},
		{"unknown piece", "xxxxxxxx/8/8/8/8/8/8/8 w - - 0 1"},
		{"bad side", "8/8/8/8/8/8/8/8 x - - 0 1"},
		{"bad castling", "8/8/8/8/8/8/8/8 w KX - 0 1"},
		{"bad en passant", "8/8/8/8/8/8/8/8 w - z9 0 1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.fen)
			if err == nil {
				t.Fatalf("expected error for %q", tt.fen)
			}
			if !errors.Is(err, ErrInvalidFEN) {
				t.Fatalf("error %v does not wrap ErrInvalidFEN", err)
			}
		})
	}
}

func TestExpandAndPackRank(t *testing.T) {
	tests := []string{"8", "rnbqkbnr", "4k3", "p1P1p1P1", "1n4n1"}
	for _, rank := range tests {
		squares, err := ExpandRank(rank)
		if err != nil {
			t.Fatalf("expand %q: %v", rank, err)
		}
		if got := PackRank(squares); got != rank {
			t.Fatalf("PackRank(ExpandRank(%q)) = %q", rank, got)
		}
	}

	squares, err := ExpandRank("4k3")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if squares[4] != 'k' || squares[0] != 0 || squares[7] != 0 {
		t.Fatalf("unexpected expansion %v", squares)
	}
}

func TestCastlingRightsRoundTrip(t *testing.T) {
	for _, s := range []string{"-", "K", "Qk", "KQkq", "kq"} {
		cr, err := ParseCastlingRights(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if cr.String() != s {
			t.Fatalf("String() = %q, want %q", cr.String(), s)
		}
	}
	cr := CastlingAll.Without(CastlingRight(shared.White, CastleQueenside))
	if cr.HasSide(shared.White, CastleQueenside) || !cr.HasSide(shared.Black, CastleQueenside) {
		t.Fatalf("unexpected rights %v", cr)
	}
	if _, err := ParseCastlingRights("KZ"); err == nil {
		t.Fatalf("expected error for invalid flag")
	}
}

func TestPresetsParse(t *testing.T) {
	for _, p := range Presets {
		p := p
		t.Run(p.Name, func(t *testing.T) {
			d, err := Parse(p.FEN)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if d.String() != p.FEN {
				t.Fatalf("round trip = %q, want %q", d.String(), p.FEN)
			}
		})
	}
	if _, ok := LookupPreset("PIN"); !ok {
		t.Fatalf("lookup should ignore case")
	}
	if _, ok := LookupPreset("nope"); ok {
		t.Fatalf("unexpected preset")
	}
}
