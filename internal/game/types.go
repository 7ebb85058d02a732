package game

import (
	"fmt"
	"strings"

	"chess_rules/internal/shared"
)

type (
	Square  = shared.Square
	Vector  = shared.Vector
	Faction = shared.Faction
	Kind    = shared.Kind
)

// Tile is the content of one grid cell.
type Tile struct {
	Kind  Kind
	Owner Faction
}

var (
	emptyTile  = Tile{Kind: shared.Empty, Owner: shared.NonAligned}
	borderTile = Tile{Kind: shared.Border, Owner: shared.NonAligned}
)

func (t Tile) IsEmpty() bool  { return t.Kind == shared.Empty }
func (t Tile) IsBorder() bool { return t.Kind == shared.Border }

// IsEnemyOf reports whether the tile holds a piece owned by the other side.
func (t Tile) IsEnemyOf(f Faction) bool {
	return t.Kind.IsPiece() && t.Owner != f && t.Owner != shared.NonAligned
}

func (t Tile) IsFriendOf(f Faction) bool {
	return t.Kind.IsPiece() && t.Owner == f
}

// Code is the FEN letter of the tile, or 0 when it holds no piece.
func (t Tile) Code() byte {
	if !t.Kind.IsPiece() {
		return 0
	}
	return shared.PieceCode(t.Kind, t.Owner)
}

// State is the terminal classification of a position.
type State uint8

const (
	Legal State = iota
	Checkmate
	Stalemate
)

func (s State) String() string {
	switch s {
	case Legal:
		return "legal"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "?"
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(text []byte) error {
	for _, candidate := range []State{Legal, Checkmate, Stalemate} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("invalid state %q", string(text))
}

// CoordToSquare converts algebraic notation such as "e4" to a grid index.
func CoordToSquare(coord string) (Square, bool) {
	coord = strings.ToLower(strings.TrimSpace(coord))
	if len(coord) != 2 {
		return shared.NoSquare, false
	}
	file := int(coord[0] - 'a')
	rank := int(coord[1] - '0')
	if file < 0 || file > 7 || rank < 1 || rank > 8 {
		return shared.NoSquare, false
	}
	return shared.SquareAt(file, rank), true
}
