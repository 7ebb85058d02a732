// Package game implements chess legality on a padded 10x12 grid: move
// generation, check and pin analysis, and reversible move execution.
package game

import (
	"fmt"
	"strings"

	"chess_rules/internal/fen"
	"chess_rules/internal/shared"
)

// Player holds a side's name, faction and castling permissions.
type Player struct {
	Name    string
	Faction Faction
	castle  []CastleRight
}

// CastleRight is permission to castle along Vector.
type CastleRight struct {
	Vector    Vector
	Permitted bool
}

func (p Player) CastleRights() []CastleRight { return append([]CastleRight(nil), p.castle...) }

type pendingPromotion struct {
	from    Square
	to      Square
	capture bool
}

// capturedEntry remembers where a captured piece sat in the live list so
// revive restores the exact ordering.
type capturedEntry struct {
	piece *Piece
	index int
	tile  Tile
}

// Board is the game controller. It is not safe for concurrent use.
type Board struct {
	grid     [shared.GridSize]Tile
	pieces   []*Piece
	captured []capturedEntry
	players  [2]Player
	active   int
	inCheck  bool

	// enPassant is the landing square of the last double push.
	enPassant Square
	halfMove  int
	fullMove  int
	pending   *pendingPromotion
	moves     []MoveList

	// pinned and pinLines record this turn's pins for readers; the pieces'
	// own pin state is consumed by move generation.
	pinned   SquareSet
	pinLines [shared.GridSize]Vector

	history   []historyEntry
	coords    map[string]Square
	lastNote  string
}

// NewBoard builds a board from a parsed position.
func NewBoard(d fen.Descriptor) (*Board, error) {
	b := &Board{
		players: [2]Player{
			{Name: shared.White.Name(), Faction: shared.White},
			{Name: shared.Black.Name(), Faction: shared.Black},
		},
		coords: make(map[string]Square, 64),
	}
	for i := range b.grid {
		b.grid[i] = borderTile
	}

	kings := map[Faction]int{}
	for r, rank := range d.Ranks {
		squares, err := fen.ExpandRank(rank)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
		}
		row := r + 2
		for c, code := range squares {
			sq := Square(row*shared.GridWidth + c + 1)
			if code == 0 {
				b.grid[sq] = emptyTile
				continue
			}
			kind, owner, ok := shared.ParsePieceCode(code)
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidPosition, code)
			}
			if kind == shared.Pawn && (row == 2 || row == 9) {
				return nil, fmt.Errorf("%w: pawn on %s", ErrInvalidPosition, sq)
			}
			if kind == shared.King {
				kings[owner]++
			}
			b.pieces = append(b.pieces, newPiece(kind, owner, sq))
			b.grid[sq] = Tile{Kind: kind, Owner: owner}
		}
	}
	for _, f := range []Faction{shared.White, shared.Black} {
		if kings[f] != 1 {
			return nil, fmt.Errorf("%w: %s has %d kings", ErrInvalidPosition, f, kings[f])
		}
	}

	for i, t := range b.grid {
		if !t.IsBorder() {
			sq := Square(i)
			b.coords[sq.String()] = sq
		}
	}

	for i := range b.players {
		f := b.players[i].Faction
		b.players[i].castle = []CastleRight{
			{Vector: fen.CastleKingside.Vector(), Permitted: d.Castling.HasSide(f, fen.CastleKingside)},
			{Vector: fen.CastleQueenside.Vector(), Permitted: d.Castling.HasSide(f, fen.CastleQueenside)},
		}
	}

	if d.SideToMove == shared.Black {
		b.active = 1
	}
	b.halfMove = d.HalfMove
	b.fullMove = d.FullMove
	if b.fullMove < 1 {
		b.fullMove = 1
	}
	b.enPassant = b.landingSquare(d.EnPassant)
	b.lastNote = "New game"
	b.beginTurn()
	return b, nil
}

// NewBoardFromFEN parses s and builds a board from it.
func NewBoardFromFEN(s string) (*Board, error) {
	d, err := fen.Parse(s)
	if err != nil {
		return nil, err
	}
	return NewBoard(d)
}

// landingSquare turns a FEN en-passant target, the skipped square, into the
// square the pushed pawn occupies. It returns NoSquare unless an enemy pawn
// is actually there.
func (b *Board) landingSquare(target string) Square {
	skipped, ok := b.coords[target]
	if !ok {
		return shared.NoSquare
	}
	pusher := b.players[b.active].Faction.Opposite()
	landing := skipped.Step(pawnForward(pusher))
	if t := b.grid[landing]; t.Kind == shared.Pawn && t.Owner == pusher {
		return landing
	}
	return shared.NoSquare
}

// beginTurn recomputes check, pins and the move catalog, in that order.
func (b *Board) beginTurn() {
	b.inCheck = b.isSquareAttacked(b.kingSquare(b.players[b.active].Faction))
	b.clearPins()
	b.computePins()
	b.generateLegalMoves()
}

func (b *Board) generateLegalMoves() {
	b.moves = b.moves[:0]
	us := b.players[b.active].Faction
	// Probes capture and revive pieces, so walk a stable copy.
	live := append([]*Piece(nil), b.pieces...)
	for _, p := range live {
		if p.Owner != us {
			continue
		}
		if ml := b.generateMoveList(p); len(ml.Commands) > 0 {
			b.moves = append(b.moves, ml)
		}
	}
}

func (b *Board) passTurn() {
	b.active ^= 1
	b.beginTurn()
}

func (b *Board) pieceAt(sq Square) *Piece {
	for _, p := range b.pieces {
		if p.Pos == sq {
			return p
		}
	}
	return nil
}

func (b *Board) pieceIndex(sq Square) int {
	for i, p := range b.pieces {
		if p.Pos == sq {
			return i
		}
	}
	return -1
}

// move relocates the piece on from to the empty square to.
func (b *Board) move(from, to Square) {
	p := b.pieceAt(from)
	if p == nil {
		panic(fmt.Sprintf("game: no piece to move on %s", from))
	}
	p.Pos = to
	p.Moves++
	b.grid[to] = b.grid[from]
	b.grid[from] = emptyTile
}

func (b *Board) undoMove(from, to Square) {
	p := b.pieceAt(to)
	if p == nil {
		panic(fmt.Sprintf("game: no piece to return from %s", to))
	}
	p.Pos = from
	p.Moves--
	b.grid[from] = b.grid[to]
	b.grid[to] = emptyTile
}

// capture moves the piece on sq from the live list to the captured stack.
func (b *Board) capture(sq Square) {
	i := b.pieceIndex(sq)
	if i < 0 {
		panic(fmt.Sprintf("game: capture target %s not in live set", sq))
	}
	p := b.pieces[i]
	b.captured = append(b.captured, capturedEntry{piece: p, index: i, tile: b.grid[sq]})
	b.pieces = append(b.pieces[:i], b.pieces[i+1:]...)
	b.grid[sq] = emptyTile
}

// revive restores the most recently captured piece.
func (b *Board) revive() {
	n := len(b.captured)
	if n == 0 {
		panic("game: revive with empty captured stack")
	}
	e := b.captured[n-1]
	b.captured = b.captured[:n-1]
	if !b.grid[e.piece.Pos].IsEmpty() || e.index > len(b.pieces) {
		panic(fmt.Sprintf("game: revive mismatch on %s", e.piece.Pos))
	}
	b.pieces = append(b.pieces, nil)
	copy(b.pieces[e.index+1:], b.pieces[e.index:])
	b.pieces[e.index] = e.piece
	b.grid[e.piece.Pos] = e.tile
}

// execute applies a catalog command and advances the clocks. A promotion
// only records the pending choice; Promote finishes the turn.
func (b *Board) execute(c Command) {
	mover := b.players[b.active]
	entry := historyEntry{
		cmd:       c,
		halfMove:  b.halfMove,
		fullMove:  b.fullMove,
		enPassant: b.enPassant,
		note:      b.lastNote,
	}
	if c.Kind == CmdPromotion {
		c.execute(b)
		b.history = append(b.history, entry)
		b.lastNote = fmt.Sprintf("%s: %s, choose a piece", mover.Name, c)
		return
	}

	b.enPassant = shared.NoSquare
	c.execute(b)
	b.advanceClocks(b.grid[c.To].Kind == shared.Pawn)
	b.lastNote = fmt.Sprintf("%s: %s", mover.Name, c)

	entry.turnPassed = true
	b.history = append(b.history, entry)
	b.passTurn()
}

// advanceClocks updates both clocks for the side to move finishing its turn.
func (b *Board) advanceClocks(pawnMoved bool) {
	if pawnMoved {
		b.halfMove = 0
	} else {
		b.halfMove++
	}
	if b.players[b.active].Faction == shared.Black {
		b.fullMove++
	}
}

// Move plays the catalog command from -> to.
func (b *Board) Move(from, to Square) error {
	if b.pending != nil {
		return ErrPromotionPending
	}
	if b.State() != Legal {
		return ErrGameOver
	}
	ml, ok := b.moveList(from)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoMoveFromOrigin, from)
	}
	c, ok := ml.Find(to)
	if !ok {
		return fmt.Errorf("%w: %s to %s", ErrNoLegalDestination, from, to)
	}
	b.execute(c)
	return nil
}

// TryExecuteMove is Move reduced to success or failure.
func (b *Board) TryExecuteMove(from, to Square) bool { return b.Move(from, to) == nil }

// Promote resolves a pending promotion with the piece named by code
// (q, r, b or n in either case).
func (b *Board) Promote(code byte) error {
	if b.pending == nil {
		return ErrNoPromotionPending
	}
	kind, ok := shared.ParsePromotionPiece(string(code))
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPromotion, code)
	}
	pp := b.pending
	owner := b.players[b.active].Faction

	pawn := b.pieceAt(pp.from)
	if pawn == nil {
		panic(fmt.Sprintf("game: promoting pawn missing from %s", pp.from))
	}
	moves := pawn.Moves
	b.capture(pp.from)
	if pp.capture {
		b.capture(pp.to)
	}
	promoted := newPiece(kind, owner, pp.to)
	promoted.Moves = moves + 1
	b.pieces = append(b.pieces, promoted)
	b.grid[pp.to] = promoted.Tile()
	b.pending = nil
	b.enPassant = shared.NoSquare
	b.advanceClocks(true)

	entry := &b.history[len(b.history)-1]
	entry.promoted = promoted
	entry.turnPassed = true
	b.lastNote = fmt.Sprintf("%s: %s%s", b.players[b.active].Name, strings.TrimSuffix(entry.cmd.String(), "?"), kind)
	b.passTurn()
	return nil
}

// undoPromote removes the promoted piece and restores what it replaced.
func (b *Board) undoPromote(e historyEntry) {
	i := -1
	for idx, p := range b.pieces {
		if p == e.promoted {
			i = idx
			break
		}
	}
	if i < 0 {
		panic("game: promoted piece not in live set")
	}
	b.pieces = append(b.pieces[:i], b.pieces[i+1:]...)
	b.grid[e.promoted.Pos] = emptyTile
	if e.cmd.Capture {
		b.revive()
	}
	b.revive()
}

// Undo reverts the last command, including any promotion it led to.
func (b *Board) Undo() error {
	n := len(b.history)
	if n == 0 {
		return ErrNoHistory
	}
	e := b.history[n-1]
	b.history = b.history[:n-1]

	if e.promoted != nil {
		b.undoPromote(e)
	}
	e.cmd.undo(b)
	b.halfMove = e.halfMove
	b.fullMove = e.fullMove
	b.enPassant = e.enPassant
	b.lastNote = e.note
	if e.turnPassed {
		b.active ^= 1
	}
	b.beginTurn()
	return nil
}

func (b *Board) TryExecuteUndo() bool { return b.Undo() == nil }

func (b *Board) moveList(from Square) (MoveList, bool) {
	for _, ml := range b.moves {
		if ml.Origin == from {
			return ml, true
		}
	}
	return MoveList{}, false
}

// FindMoves lists the legal destinations from a square.
func (b *Board) FindMoves(from Square) []Square {
	ml, ok := b.moveList(from)
	if !ok {
		return nil
	}
	return ml.Destinations()
}

// Destinations is FindMoves as a set.
func (b *Board) Destinations(from Square) SquareSet {
	return SquareSetOf(b.FindMoves(from)...)
}

// Origins is the set of squares that have at least one legal move.
func (b *Board) Origins() SquareSet {
	var s SquareSet
	for _, ml := range b.moves {
		s = s.Add(ml.Origin)
	}
	return s
}

// LegalMoves returns a copy of the current move catalog.
func (b *Board) LegalMoves() []MoveList {
	out := make([]MoveList, len(b.moves))
	for i, ml := range b.moves {
		out[i] = MoveList{Origin: ml.Origin, Commands: append([]Command(nil), ml.Commands...)}
	}
	return out
}

// MoveCount is the number of legal commands for the side to move.
func (b *Board) MoveCount() int {
	n := 0
	for _, ml := range b.moves {
		n += len(ml.Commands)
	}
	return n
}

func (b *Board) IsPromotionPending() bool { return b.pending != nil }

// PendingPromotion returns the squares of an unresolved promotion.
func (b *Board) PendingPromotion() (from, to Square, ok bool) {
	if b.pending == nil {
		return shared.NoSquare, shared.NoSquare, false
	}
	return b.pending.from, b.pending.to, true
}

// ConvertCoordinate maps algebraic text such as "e4" to a grid index.
func (b *Board) ConvertCoordinate(text string) (Square, bool) {
	sq, ok := b.coords[text]
	return sq, ok
}

func (b *Board) Turn() Faction { return b.players[b.active].Faction }

func (b *Board) ActivePlayer() Player { return b.players[b.active] }

func (b *Board) Player(f Faction) Player {
	if f == shared.Black {
		return b.players[1]
	}
	return b.players[0]
}

func (b *Board) TileAt(sq Square) Tile {
	if sq < 0 || int(sq) >= len(b.grid) {
		return borderTile
	}
	return b.grid[sq]
}

// PieceAt returns a copy of the live piece on sq.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	p := b.pieceAt(sq)
	if p == nil {
		return Piece{}, false
	}
	return b.exported(p), true
}

func (b *Board) Pieces() []Piece {
	out := make([]Piece, len(b.pieces))
	for i, p := range b.pieces {
		out[i] = b.exported(p)
	}
	return out
}

// exported copies a live piece and carries over this turn's pin.
func (b *Board) exported(p *Piece) Piece {
	cp := *p
	cp.pin = pinState{}
	if line, ok := b.PinLine(p.Pos); ok {
		cp.pin = pinState{active: true, vectors: [2]Vector{line[0], line[1]}}
	}
	return cp
}

// Captured lists captured pieces, oldest first.
func (b *Board) Captured() []Piece {
	out := make([]Piece, len(b.captured))
	for i, e := range b.captured {
		out[i] = *e.piece
	}
	return out
}

func (b *Board) HalfMoveClock() int  { return b.halfMove }
func (b *Board) FullMoveNumber() int { return b.fullMove }
func (b *Board) HistoryLen() int     { return len(b.history) }
func (b *Board) LastNote() string    { return b.lastNote }

// EnPassant returns the landing square of the last double push, or NoSquare.
func (b *Board) EnPassant() Square { return b.enPassant }
