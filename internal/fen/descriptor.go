package fen

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"chess_rules/internal/shared"
)

// StartingFEN is the standard initial position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var ErrInvalidFEN = errors.New("invalid FEN")

var fenPattern = regexp.MustCompile(`^((?:[1-8pnbrqkPNBRQK]{1,8}/){7}[1-8pnbrqkPNBRQK]{1,8})\s+([wb])\s+([KQkq]{1,4}|-)\s+([a-h][1-8]|-)(?:\s+(\d+)\s+(\d+))?$`)

// Descriptor is a parsed position: piece placement, side to move,
// castling rights, en-passant target and the two clocks.
type Descriptor struct {
	// Ranks[0] is rank 8, Ranks[7] is rank 1.
	Ranks      [8]string
	SideToMove shared.Faction
	Castling   CastlingRights
	// EnPassant is the skipped square of the last double push, or "-".
	EnPassant string
	HalfMove  int
	FullMove  int
}

// Parse reads a FEN record. The two clock fields may be omitted and
// default to 0 and 1.
func Parse(s string) (Descriptor, error) {
	m := fenPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrInvalidFEN, s)
	}

	var d Descriptor
	for i, rank := range strings.Split(m[1], "/") {
		if _, err := ExpandRank(rank); err != nil {
			return Descriptor{}, fmt.Errorf("%w: rank %d: %v", ErrInvalidFEN, 8-i, err)
		}
		d.Ranks[i] = rank
	}

	d.SideToMove = shared.White
	if m[2] == "b" {
		d.SideToMove = shared.Black
	}

	castling, err := ParseCastlingRights(m[3])
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	d.Castling = castling
	d.EnPassant = m[4]

	d.HalfMove, d.FullMove = 0, 1
	if m[5] != "" {
		if d.HalfMove, err = strconv.Atoi(m[5]); err != nil {
			return Descriptor{}, fmt.Errorf("%w: half-move clock: %v", ErrInvalidFEN, err)
		}
		if d.FullMove, err = strconv.Atoi(m[6]); err != nil {
			return Descriptor{}, fmt.Errorf("%w: full-move clock: %v", ErrInvalidFEN, err)
		}
	}
	return d, nil
}

// ExpandRank unpacks one rank into eight piece codes, 0 for an empty square.
func ExpandRank(rank string) ([8]byte, error) {
	var out [8]byte
	n := 0
	for i := 0; i < len(rank); i++ {
		c := rank[i]
		if c >= '1' && c <= '8' {
			n += int(c - '0')
			if n > 8 {
				return out, fmt.Errorf("rank %q is wider than 8 squares", rank)
			}
			continue
		}
		if _, _, ok := shared.ParsePieceCode(c); !ok {
			return out, fmt.Errorf("unknown piece %q", c)
		}
		if n >= 8 {
			return out, fmt.Errorf("rank %q is wider than 8 squares", rank)
		}
		out[n] = c
		n++
	}
	if n != 8 {
		return out, fmt.Errorf("rank %q covers %d squares, want 8", rank, n)
	}
	return out, nil
}

// PackRank is the inverse of ExpandRank.
func PackRank(squares [8]byte) string {
	var b strings.Builder
	run := 0
	for _, c := range squares {
		if c == 0 {
			run++
			continue
		}
		if run > 0 {
			b.WriteByte(byte('0' + run))
			run = 0
		}
		b.WriteByte(c)
	}
	if run > 0 {
		b.WriteByte(byte('0' + run))
	}
	return b.String()
}

func (d Descriptor) String() string {
	side := "w"
	if d.SideToMove == shared.Black {
		side = "b"
	}
	ep := d.EnPassant
	if ep == "" {
		ep = "-"
	}
	return fmt.Sprintf("%s %s %s %s %d %d",
		strings.Join(d.Ranks[:], "/"), side, d.Castling, ep, d.HalfMove, d.FullMove)
}

func (d Descriptor) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Descriptor) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
