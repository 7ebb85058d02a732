package console

import (
	"strings"

	"chess_rules/internal/game"
	"chess_rules/internal/shared"
)

// Render draws the board from White's side. Pieces of the side to move
// that have legal moves are shown as [P], the rest of that side as (P).
// When highlight names a square with moves, its empty destinations are
// marked X and its captures {p}.
func Render(b *game.Board, highlight game.Square) string {
	origins := b.Origins()
	var dests game.SquareSet
	if highlight != shared.NoSquare {
		dests = b.Destinations(highlight)
	}
	turn := b.Turn()

	var sb strings.Builder
	sb.WriteString("     a  b  c  d  e  f  g  h\n")
	sb.WriteString("   +------------------------+\n")
	for rank := 8; rank >= 1; rank-- {
		sb.WriteByte(' ')
		sb.WriteByte(byte('0' + rank))
		sb.WriteString(" |")
		for file := 0; file < 8; file++ {
			sq := shared.SquareAt(file, rank)
			sb.WriteString(cell(b.TileAt(sq), sq == highlight, origins.Has(sq), dests.Has(sq), turn))
		}
		sb.WriteString("| ")
		sb.WriteByte(byte('0' + rank))
		sb.WriteByte('\n')
	}
	sb.WriteString("   +------------------------+\n")
	sb.WriteString("     a  b  c  d  e  f  g  h\n")
	return sb.String()
}

// cell returns a fixed-width 3-char cell.
func cell(t game.Tile, selected, hasMoves, target bool, turn shared.Faction) string {
	code := t.Code()
	switch {
	case code == 0 && target:
		return " X "
	case code == 0:
		return " . "
	case target:
		return "{" + string(code) + "}"
	case selected || hasMoves:
		return "[" + string(code) + "]"
	case t.Owner == turn:
		return "(" + string(code) + ")"
	default:
		return " " + string(code) + " "
	}
}
