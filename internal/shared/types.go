package shared

import (
	"fmt"
	"strings"
)

// Faction is the side a tile or piece belongs to.
type Faction uint8

const (
	NonAligned Faction = iota
	White
	Black
)

func (f Faction) Opposite() Faction {
	switch f {
	case White:
		return Black
	case Black:
		return White
	default:
		return NonAligned
	}
}

func (f Faction) String() string {
	switch f {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// Name is the display name used for players.
func (f Faction) Name() string {
	switch f {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "Nobody"
	}
}

func (f Faction) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Faction) UnmarshalText(text []byte) error {
	parsed, ok := ParseFaction(string(text))
	if !ok {
		return fmt.Errorf("invalid faction %q", string(text))
	}
	*f = parsed
	return nil
}

func ParseFaction(s string) (Faction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	case "none", "":
		return NonAligned, true
	default:
		return NonAligned, false
	}
}

// Kind is what occupies a tile. Border only ever appears on sentinel tiles.
type Kind uint8

const (
	Empty Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	Border
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Pawn:
		return "P"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Border:
		return "border"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(text []byte) error {
	for candidate := Empty; candidate <= Border; candidate++ {
		if candidate.String() == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("invalid kind %q", string(text))
}

// IsPiece reports whether the kind is an actual chessman.
func (k Kind) IsPiece() bool { return k >= Pawn && k <= King }

func (k Kind) IsSlider() bool { return k == Bishop || k == Rook || k == Queen }

// PieceCode returns the FEN letter for a piece: upper case for White, lower for Black.
func PieceCode(kind Kind, owner Faction) byte {
	var c byte
	switch kind {
	case Pawn:
		c = 'P'
	case Knight:
		c = 'N'
	case Bishop:
		c = 'B'
	case Rook:
		c = 'R'
	case Queen:
		c = 'Q'
	case King:
		c = 'K'
	default:
		return ' '
	}
	if owner == Black {
		c += 'a' - 'A'
	}
	return c
}

// ParsePieceCode is the inverse of PieceCode.
func ParsePieceCode(c byte) (Kind, Faction, bool) {
	owner := White
	if c >= 'a' && c <= 'z' {
		owner = Black
		c -= 'a' - 'A'
	}
	switch c {
	case 'P':
		return Pawn, owner, true
	case 'N':
		return Knight, owner, true
	case 'B':
		return Bishop, owner, true
	case 'R':
		return Rook, owner, true
	case 'Q':
		return Queen, owner, true
	case 'K':
		return King, owner, true
	default:
		return Empty, NonAligned, false
	}
}

// ParsePromotionPiece accepts a letter or a piece name, in any case.
func ParsePromotionPiece(s string) (Kind, bool) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "q", "queen":
		return Queen, true
	case "r", "rook":
		return Rook, true
	case "b", "bishop":
		return Bishop, true
	case "n", "knight":
		return Knight, true
	default:
		return Empty, false
	}
}
