package fen

import (
	"fmt"
	"strings"

	"chess_rules/internal/shared"
)

// CastlingSide selects the king-side or queen-side rook.
type CastlingSide uint8

const (
	CastleKingside CastlingSide = iota
	CastleQueenside
)

func (cs CastlingSide) String() string {
	switch cs {
	case CastleKingside:
		return "kingside"
	case CastleQueenside:
		return "queenside"
	default:
		return "?"
	}
}

// Vector is the direction the king travels when castling to this side.
func (cs CastlingSide) Vector() shared.Vector {
	if cs == CastleQueenside {
		return shared.West
	}
	return shared.East
}

// CastlingRights is the set of castling permissions from the third FEN field.
type CastlingRights uint8

const (
	CastlingWhiteKingside CastlingRights = 1 << iota
	CastlingWhiteQueenside
	CastlingBlackKingside
	CastlingBlackQueenside

	CastlingNone CastlingRights = 0
	CastlingAll                 = CastlingWhiteKingside | CastlingWhiteQueenside | CastlingBlackKingside | CastlingBlackQueenside
)

func CastlingRight(owner shared.Faction, side CastlingSide) CastlingRights {
	switch owner {
	case shared.White:
		if side == CastleQueenside {
			return CastlingWhiteQueenside
		}
		return CastlingWhiteKingside
	case shared.Black:
		if side == CastleQueenside {
			return CastlingBlackQueenside
		}
		return CastlingBlackKingside
	default:
		return CastlingNone
	}
}

func (cr CastlingRights) Has(right CastlingRights) bool { return cr&right != 0 }

func (cr CastlingRights) HasSide(owner shared.Faction, side CastlingSide) bool {
	return cr.Has(CastlingRight(owner, side))
}

func (cr CastlingRights) With(right CastlingRights) CastlingRights { return cr | right }

func (cr CastlingRights) Without(right CastlingRights) CastlingRights { return cr &^ right }

func (cr CastlingRights) String() string {
	if cr == CastlingNone {
		return "-"
	}
	var b strings.Builder
	if cr.Has(CastlingWhiteKingside) {
		b.WriteByte('K')
	}
	if cr.Has(CastlingWhiteQueenside) {
		b.WriteByte('Q')
	}
	if cr.Has(CastlingBlackKingside) {
		b.WriteByte('k')
	}
	if cr.Has(CastlingBlackQueenside) {
		b.WriteByte('q')
	}
	return b.String()
}

func ParseCastlingRights(s string) (CastlingRights, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return CastlingNone, nil
	}
	var cr CastlingRights
	for _, ch := range s {
		switch ch {
		case 'K':
			cr = cr.With(CastlingWhiteKingside)
		case 'Q':
			cr = cr.With(CastlingWhiteQueenside)
		case 'k':
			cr = cr.With(CastlingBlackKingside)
		case 'q':
			cr = cr.With(CastlingBlackQueenside)
		default:
			return CastlingNone, fmt.Errorf("invalid castling flag %q", ch)
		}
	}
	return cr, nil
}

func (cr CastlingRights) MarshalText() ([]byte, error) { return []byte(cr.String()), nil }

func (cr *CastlingRights) UnmarshalText(text []byte) error {
	parsed, err := ParseCastlingRights(string(text))
	if err != nil {
		return err
	}
	*cr = parsed
	return nil
}
