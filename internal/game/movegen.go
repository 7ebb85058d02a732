package game

import "chess_rules/internal/shared"

// MoveList is the validated set of commands for one origin square,
// in the order the piece's vectors produced them.
type MoveList struct {
	Origin   Square
	Commands []Command
}

// Find returns the command landing on to.
func (ml MoveList) Find(to Square) (Command, bool) {
	for _, c := range ml.Commands {
		if c.To == to {
			return c, true
		}
	}
	return Command{}, false
}

// Destinations lists target squares in catalog order.
func (ml MoveList) Destinations() []Square {
	out := make([]Square, 0, len(ml.Commands))
	for _, c := range ml.Commands {
		out = append(out, c.To)
	}
	return out
}

// generateMoveList builds the validated move list for p. Any pin on p is
// consumed here.
func (b *Board) generateMoveList(p *Piece) MoveList {
	ml := MoveList{Origin: p.Pos}
	vectors := p.takeVectors()
	add := func(c Command) {
		if c.validate(b) {
			ml.Commands = append(ml.Commands, c)
		}
	}

	switch {
	case p.Kind == shared.Pawn:
		b.pawnCandidates(p, vectors, add)
	case p.Kind.IsSlider():
		b.sliderCandidates(p, vectors, add)
	default:
		b.leaperCandidates(p, vectors, add)
		if p.Kind == shared.King {
			b.castleCandidates(p, add)
		}
	}
	return ml
}

func (b *Board) leaperCandidates(p *Piece, vectors []Vector, add func(Command)) {
	moveKind, captureKind := CmdMove, CmdCapture
	if p.Kind == shared.King {
		moveKind, captureKind = CmdKingMove, CmdKingCapture
	}
	for _, v := range vectors {
		to := p.Pos.Step(v)
		t := b.grid[to]
		switch {
		case t.IsEmpty():
			add(Command{Kind: moveKind, From: p.Pos, To: to})
		case t.IsEnemyOf(p.Owner):
			add(Command{Kind: captureKind, From: p.Pos, To: to})
		}
	}
}

func (b *Board) sliderCandidates(p *Piece, vectors []Vector, add func(Command)) {
	for _, v := range vectors {
		to := p.Pos.Step(v)
		for b.grid[to].IsEmpty() {
			add(Command{Kind: CmdMove, From: p.Pos, To: to})
			to = to.Step(v)
		}
		if b.grid[to].IsEnemyOf(p.Owner) {
			add(Command{Kind: CmdCapture, From: p.Pos, To: to})
		}
	}
}

func (b *Board) pawnCandidates(p *Piece, vectors []Vector, add func(Command)) {
	fwd := pawnForward(p.Owner)
	for _, v := range vectors {
		to := p.Pos.Step(v)
		lastRank := b.grid[to.Step(fwd)].IsBorder()

		if v == fwd {
			if !b.grid[to].IsEmpty() {
				continue
			}
			if lastRank {
				add(Command{Kind: CmdPromotion, From: p.Pos, To: to})
				continue
			}
			add(Command{Kind: CmdMove, From: p.Pos, To: to})
			double := to.Step(fwd)
			if p.Moves == 0 && p.Pos.Row() == pawnHomeRow(p.Owner) && b.grid[double].IsEmpty() {
				add(Command{Kind: CmdDoublePush, From: p.Pos, To: double})
			}
			continue
		}

		t := b.grid[to]
		switch {
		case t.IsEnemyOf(p.Owner):
			if lastRank {
				add(Command{Kind: CmdPromotion, From: p.Pos, To: to, Capture: true})
			} else {
				add(Command{Kind: CmdCapture, From: p.Pos, To: to})
			}
		case t.IsEmpty() && b.enPassant != shared.NoSquare:
			// The marker holds the pushed pawn's landing square, which sits
			// beside this pawn and directly behind the capture target.
			victim := to.Step(-fwd)
			if victim == b.enPassant && b.grid[victim].IsEnemyOf(p.Owner) && b.grid[victim].Kind == shared.Pawn {
				add(Command{Kind: CmdEnPassant, From: p.Pos, To: to, Victim: victim})
			}
		}
	}
}

// castleCandidates scans each permitted castling direction for an unmoved
// friendly rook with nothing in between.
func (b *Board) castleCandidates(king *Piece, add func(Command)) {
	if king.Moves != 0 {
		return
	}
	for _, right := range b.players[b.active].castle {
		if !right.Permitted {
			continue
		}
		v := right.Vector
		for sq := king.Pos.Step(v); ; sq = sq.Step(v) {
			t := b.grid[sq]
			if t.IsEmpty() {
				continue
			}
			// The rook must stand beyond the king's landing square.
			if t.Kind == shared.Rook && t.Owner == king.Owner && int(sq-king.Pos)/int(v) > 2 {
				if rook := b.pieceAt(sq); rook != nil && rook.Moves == 0 {
					add(Command{
						Kind:     CmdCastle,
						From:     king.Pos,
						To:       king.Pos.Step(2 * v),
						RookFrom: sq,
						RookTo:   king.Pos.Step(v),
						Vector:   v,
					})
				}
			}
			break
		}
	}
}
