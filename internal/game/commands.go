package game

import (
	"fmt"

	"chess_rules/internal/shared"
)

// CommandKind tags a Command variant.
type CommandKind uint8

const (
	CmdMove CommandKind = iota
	CmdCapture
	CmdKingMove
	CmdKingCapture
	CmdDoublePush
	CmdEnPassant
	CmdCastle
	CmdPromotion
)

func (k CommandKind) String() string {
	switch k {
	case CmdMove:
		return "move"
	case CmdCapture:
		return "capture"
	case CmdKingMove:
		return "king-move"
	case CmdKingCapture:
		return "king-capture"
	case CmdDoublePush:
		return "double-push"
	case CmdEnPassant:
		return "en-passant"
	case CmdCastle:
		return "castle"
	case CmdPromotion:
		return "promotion"
	default:
		return "?"
	}
}

func (k CommandKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *CommandKind) UnmarshalText(text []byte) error {
	for candidate := CmdMove; candidate <= CmdPromotion; candidate++ {
		if candidate.String() == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("invalid command kind %q", string(text))
}

// Command is one reversible move. Victim is set for en passant, the rook
// fields and Vector for castling, and Capture for a promotion that takes.
type Command struct {
	Kind     CommandKind
	From     Square
	To       Square
	Victim   Square
	RookFrom Square
	RookTo   Square
	Vector   Vector
	Capture  bool
}

// Captures reports whether executing the command removes an enemy piece.
func (c Command) Captures() bool {
	switch c.Kind {
	case CmdCapture, CmdKingCapture, CmdEnPassant:
		return true
	case CmdPromotion:
		return c.Capture
	default:
		return false
	}
}

func (c Command) String() string {
	sep := "-"
	if c.Captures() {
		sep = "x"
	}
	switch c.Kind {
	case CmdCastle:
		if c.Vector == shared.West {
			return "O-O-O"
		}
		return "O-O"
	case CmdEnPassant:
		return fmt.Sprintf("%s%s%s e.p.", c.From, sep, c.To)
	case CmdPromotion:
		return fmt.Sprintf("%s%s%s=?", c.From, sep, c.To)
	default:
		return fmt.Sprintf("%s%s%s", c.From, sep, c.To)
	}
}

func (c Command) execute(b *Board) {
	switch c.Kind {
	case CmdMove, CmdKingMove:
		b.move(c.From, c.To)
	case CmdDoublePush:
		b.move(c.From, c.To)
		b.enPassant = c.To
	case CmdCapture, CmdKingCapture:
		b.capture(c.To)
		b.move(c.From, c.To)
	case CmdEnPassant:
		b.capture(c.Victim)
		b.move(c.From, c.To)
	case CmdCastle:
		b.move(c.From, c.To)
		b.move(c.RookFrom, c.RookTo)
	case CmdPromotion:
		b.pending = &pendingPromotion{from: c.From, to: c.To, capture: c.Capture}
	}
}

func (c Command) undo(b *Board) {
	switch c.Kind {
	case CmdMove, CmdKingMove:
		b.undoMove(c.From, c.To)
	case CmdDoublePush:
		b.undoMove(c.From, c.To)
		b.enPassant = shared.NoSquare
	case CmdCapture, CmdKingCapture, CmdEnPassant:
		b.undoMove(c.From, c.To)
		b.revive()
	case CmdCastle:
		b.undoMove(c.RookFrom, c.RookTo)
		b.undoMove(c.From, c.To)
	case CmdPromotion:
		b.pending = nil
	}
}

// validate reports whether the command leaves the mover's king safe.
func (c Command) validate(b *Board) bool {
	switch c.Kind {
	case CmdMove, CmdCapture, CmdDoublePush:
		if !b.inCheck {
			return true
		}
		return b.probe(c)
	case CmdKingMove, CmdKingCapture, CmdEnPassant:
		return b.probe(c)
	case CmdCastle:
		if b.inCheck {
			return false
		}
		for sq := c.From.Step(c.Vector); ; sq = sq.Step(c.Vector) {
			if !b.probe(Command{Kind: CmdKingMove, From: c.From, To: sq}) {
				return false
			}
			if sq == c.To {
				return true
			}
		}
	case CmdPromotion:
		stand := Command{Kind: CmdMove, From: c.From, To: c.To}
		if c.Capture {
			stand.Kind = CmdCapture
		}
		return b.probe(stand)
	default:
		return false
	}
}
