package game

import (
	"fmt"

	"chess_rules/internal/shared"
)

// fiftyMoveLimit is the half-move clock value that ends the game.
const fiftyMoveLimit = 50

func (b *Board) kingSquare(owner Faction) Square {
	for _, p := range b.pieces {
		if p.Kind == shared.King && p.Owner == owner {
			return p.Pos
		}
	}
	panic(fmt.Sprintf("game: %s king not found", owner))
}

// isSquareAttacked reports whether any piece of the side not on move could
// capture onto sq. Only occupied targets are considered.
func (b *Board) isSquareAttacked(sq Square) bool {
	attacker := b.players[b.active].Faction.Opposite()
	if !b.grid[sq].IsEnemyOf(attacker) {
		return false
	}
	for _, p := range b.pieces {
		if p.Owner == attacker && b.attacks(p, sq) {
			return true
		}
	}
	return false
}

// attacks reports whether p has a capture onto sq under its own movement rule.
func (b *Board) attacks(p *Piece, sq Square) bool {
	for _, v := range p.attackVectors() {
		to := p.Pos.Step(v)
		if p.Kind.IsSlider() {
			for b.grid[to].IsEmpty() {
				to = to.Step(v)
			}
		}
		if to == sq {
			return true
		}
	}
	return false
}

// probe executes c, tests the mover's king, and reverts.
func (b *Board) probe(c Command) bool {
	ep := b.enPassant
	c.execute(b)
	safe := !b.isSquareAttacked(b.kingSquare(b.players[b.active].Faction))
	c.undo(b)
	b.enPassant = ep
	return safe
}

// alignment returns the vector along which slider s sees square target
// when the board between them is ignored.
func (b *Board) alignment(s *Piece, target Square) (Vector, bool) {
	for _, v := range s.vectors {
		for sq := s.Pos.Step(v); !b.grid[sq].IsBorder(); sq = sq.Step(v) {
			if sq == target {
				return v, true
			}
		}
	}
	return 0, false
}

// computePins marks every friendly piece that is the only blocker between
// an enemy slider and the friendly king.
func (b *Board) computePins() {
	us := b.players[b.active].Faction
	king := b.kingSquare(us)
	for _, s := range b.pieces {
		if s.Owner == us || !s.Kind.IsSlider() {
			continue
		}
		v, ok := b.alignment(s, king)
		if !ok {
			continue
		}
		var blocker Square
		count := 0
		for sq := s.Pos.Step(v); sq != king; sq = sq.Step(v) {
			if b.grid[sq].IsEmpty() {
				continue
			}
			count++
			blocker = sq
		}
		if count != 1 || !b.grid[blocker].IsFriendOf(us) {
			continue
		}
		if p := b.pieceAt(blocker); p != nil {
			p.setPin(v)
			b.pinned = b.pinned.Add(blocker)
			b.pinLines[blocker] = v
		}
	}
}

func (b *Board) clearPins() {
	for _, p := range b.pieces {
		p.pin = pinState{}
	}
	b.pinned = SquareSet{}
	b.pinLines = [shared.GridSize]Vector{}
}

// PinLine reports the line a piece on sq is pinned to this turn: the
// direction toward the pinning slider and its negation.
func (b *Board) PinLine(sq Square) ([]Vector, bool) {
	if !b.pinned.Has(sq) {
		return nil, false
	}
	v := b.pinLines[sq]
	return []Vector{v, -v}, true
}

// Pins lists the squares of the side to move's pinned pieces.
func (b *Board) Pins() []Square { return b.pinned.Squares() }

// State classifies the current position for the side to move.
func (b *Board) State() State {
	if b.halfMove >= fiftyMoveLimit {
		return Stalemate
	}
	if len(b.moves) == 0 {
		if b.inCheck {
			return Checkmate
		}
		return Stalemate
	}
	return Legal
}

func (b *Board) IsInCheck() bool { return b.inCheck }

// Winner returns the side that delivered mate, if any.
func (b *Board) Winner() (Faction, bool) {
	if b.State() != Checkmate {
		return shared.NonAligned, false
	}
	return b.players[b.active].Faction.Opposite(), true
}
