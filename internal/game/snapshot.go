package game

import (
	"chess_rules/internal/fen"
	"chess_rules/internal/shared"
)

// PieceState is a serializable representation of a Piece.
type PieceState struct {
	Owner  Faction `json:"owner"`
	Kind   Kind    `json:"kind"`
	Code   string  `json:"code"`
	Square string  `json:"square"`
	Moves  int     `json:"moves"`
	Pinned bool    `json:"pinned,omitempty"`
}

// PromotionState describes an unresolved promotion.
type PromotionState struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// BoardState is a serializable representation of the game state. While a
// promotion is pending it still describes the position before the pawn
// moved.
type BoardState struct {
	FEN       string              `json:"fen"`
	Pieces    []PieceState        `json:"pieces"`
	Captured  []PieceState        `json:"captured"`
	Turn      Faction             `json:"turn"`
	TurnName  string              `json:"turnName"`
	LastNote  string              `json:"lastNote"`
	InCheck   bool                `json:"inCheck"`
	State     State               `json:"state"`
	GameOver  bool                `json:"gameOver"`
	Winner    Faction             `json:"winner,omitempty"`
	HalfMove  int                 `json:"halfMove"`
	FullMove  int                 `json:"fullMove"`
	Castling  fen.CastlingRights  `json:"castling"`
	EnPassant string              `json:"enPassant"`
	Pending   *PromotionState     `json:"pendingPromotion,omitempty"`
	Moves     map[string][]string `json:"moves"`
	MoveCount int                 `json:"moveCount"`
	History   []HistoryItem       `json:"history"`
}

func pieceState(p *Piece, pinned bool) PieceState {
	return PieceState{
		Owner:  p.Owner,
		Kind:   p.Kind,
		Code:   string(p.Code()),
		Square: p.Pos.String(),
		Moves:  p.Moves,
		Pinned: pinned,
	}
}

// Snapshot returns a serializable representation of the current game state.
func (b *Board) Snapshot() BoardState {
	d := b.Descriptor()
	state := BoardState{
		FEN:       d.String(),
		Pieces:    make([]PieceState, 0, len(b.pieces)),
		Captured:  make([]PieceState, 0, len(b.captured)),
		Turn:      b.Turn(),
		TurnName:  b.ActivePlayer().Name,
		LastNote:  b.lastNote,
		InCheck:   b.inCheck,
		State:     b.State(),
		HalfMove:  b.halfMove,
		FullMove:  b.fullMove,
		Castling:  d.Castling,
		EnPassant: d.EnPassant,
		Moves:     make(map[string][]string, len(b.moves)),
		MoveCount: b.MoveCount(),
		History:   b.History(),
	}
	state.GameOver = state.State != Legal
	if w, ok := b.Winner(); ok {
		state.Winner = w
	}
	for _, p := range b.pieces {
		state.Pieces = append(state.Pieces, pieceState(p, b.pinned.Has(p.Pos)))
	}
	for _, e := range b.captured {
		state.Captured = append(state.Captured, pieceState(e.piece, false))
	}
	if from, to, ok := b.PendingPromotion(); ok {
		state.Pending = &PromotionState{From: from.String(), To: to.String()}
	}
	for _, ml := range b.moves {
		dests := make([]string, 0, len(ml.Commands))
		for _, sq := range ml.Destinations() {
			dests = append(dests, sq.String())
		}
		state.Moves[ml.Origin.String()] = dests
	}
	return state
}

// Descriptor exports the current position. A castling flag survives only
// while the permission holds and both the king and a rook on that side
// are unmoved.
func (b *Board) Descriptor() fen.Descriptor {
	d := fen.Descriptor{
		SideToMove: b.Turn(),
		EnPassant:  "-",
		HalfMove:   b.halfMove,
		FullMove:   b.fullMove,
	}
	for r := 0; r < 8; r++ {
		var squares [8]byte
		for c := 0; c < 8; c++ {
			squares[c] = b.grid[(r+2)*shared.GridWidth+c+1].Code()
		}
		d.Ranks[r] = fen.PackRank(squares)
	}

	for _, pl := range b.players {
		for i, right := range pl.castle {
			side := fen.CastleKingside
			if i == 1 {
				side = fen.CastleQueenside
			}
			if right.Permitted && b.castleIntact(pl.Faction, right.Vector) {
				d.Castling = d.Castling.With(fen.CastlingRight(pl.Faction, side))
			}
		}
	}

	if b.enPassant != shared.NoSquare {
		pusher := b.Turn().Opposite()
		d.EnPassant = b.enPassant.Step(-pawnForward(pusher)).String()
	}
	return d
}

func (b *Board) castleIntact(owner Faction, v Vector) bool {
	var king *Piece
	for _, p := range b.pieces {
		if p.Kind == shared.King && p.Owner == owner {
			king = p
			break
		}
	}
	if king == nil || king.Moves != 0 {
		return false
	}
	for sq := king.Pos.Step(v); !b.grid[sq].IsBorder(); sq = sq.Step(v) {
		t := b.grid[sq]
		if t.Kind == shared.Rook && t.Owner == owner {
			if rook := b.pieceAt(sq); rook != nil && rook.Moves == 0 {
				return true
			}
		}
	}
	return false
}
