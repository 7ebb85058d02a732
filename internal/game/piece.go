package game

import "chess_rules/internal/shared"

// Vector tables, listed in ascending offset order. Move lists follow this order.
var (
	kingVectors = []Vector{
		shared.NorthWest, shared.North, shared.NorthEast, shared.West,
		shared.East, shared.SouthWest, shared.South, shared.SouthEast,
	}
	queenVectors  = kingVectors
	knightVectors = []Vector{
		2*shared.North + shared.West, 2*shared.North + shared.East,
		shared.North + 2*shared.West, shared.North + 2*shared.East,
		shared.South + 2*shared.West, shared.South + 2*shared.East,
		2*shared.South + shared.West, 2*shared.South + shared.East,
	}
	bishopVectors = []Vector{shared.NorthWest, shared.NorthEast, shared.SouthWest, shared.SouthEast}
	rookVectors   = []Vector{shared.North, shared.West, shared.East, shared.South}
)

// Piece is a live or captured chessman.
type Piece struct {
	Owner Faction
	Kind  Kind
	Pos   Square
	Moves int

	vectors []Vector
	pin     pinState
}

// pinState restricts a piece to one line for the current turn.
type pinState struct {
	active  bool
	vectors [2]Vector
}

func newPiece(kind Kind, owner Faction, pos Square) *Piece {
	p := &Piece{Owner: owner, Kind: kind, Pos: pos}
	switch kind {
	case shared.King:
		p.vectors = kingVectors
	case shared.Queen:
		p.vectors = queenVectors
	case shared.Knight:
		p.vectors = knightVectors
	case shared.Bishop:
		p.vectors = bishopVectors
	case shared.Rook:
		p.vectors = rookVectors
	case shared.Pawn:
		fwd := pawnForward(owner)
		p.vectors = []Vector{fwd, fwd + shared.West, fwd + shared.East}
	}
	return p
}

func pawnForward(owner Faction) Vector {
	if owner == shared.Black {
		return shared.South
	}
	return shared.North
}

// pawnHomeRow is the grid row a side's pawns start on.
func pawnHomeRow(owner Faction) int {
	if owner == shared.Black {
		return 3
	}
	return 8
}

func (p *Piece) Tile() Tile { return Tile{Kind: p.Kind, Owner: p.Owner} }

func (p *Piece) Code() byte { return shared.PieceCode(p.Kind, p.Owner) }

// Vectors returns the piece's own movement vectors.
func (p *Piece) Vectors() []Vector { return append([]Vector(nil), p.vectors...) }

func (p *Piece) Pinned() bool { return p.pin.active }

// PinVectors returns the pin line, if any.
func (p *Piece) PinVectors() []Vector {
	if !p.pin.active {
		return nil
	}
	return p.pin.vectors[:]
}

// attackVectors are the vectors along which the piece can capture.
func (p *Piece) attackVectors() []Vector {
	if p.Kind == shared.Pawn {
		return p.vectors[1:]
	}
	return p.vectors
}

func (p *Piece) setPin(v Vector) {
	p.pin = pinState{active: true, vectors: [2]Vector{v, -v}}
}

// takeVectors returns the vectors usable this turn and clears any pin.
func (p *Piece) takeVectors() []Vector {
	if !p.pin.active {
		return p.vectors
	}
	pin := p.pin
	p.pin = pinState{}
	allowed := make([]Vector, 0, 2)
	for _, v := range p.vectors {
		if v == pin.vectors[0] || v == pin.vectors[1] {
			allowed = append(allowed, v)
		}
	}
	return allowed
}
