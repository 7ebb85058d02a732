package game

import (
	"errors"
	"reflect"
	"testing"

	"chess_rules/internal/shared"
)

func TestDoubleCheckAllowsOnlyKingMoves(t *testing.T) {
	b := mustBoard(t, "4k3/6N1/5b2/4R3/8/8/8/4K3 b - - 0 1")
	if !b.IsInCheck() {
		t.Fatalf("black should be in check")
	}
	king := mustSquare(t, "e8")
	moves := b.LegalMoves()
	if len(moves) != 1 || moves[0].Origin != king {
		t.Fatalf("expected only king moves, got %d origins", len(moves))
	}
	for _, c := range moves[0].Commands {
		if c.Kind != CmdKingMove && c.Kind != CmdKingCapture {
			t.Fatalf("unexpected command %s (%s)", c, c.Kind)
		}
	}
	if got := destinations(b, king); !reflect.DeepEqual(got, []string{"d7", "d8", "f7", "f8"}) {
		t.Fatalf("king destinations = %v", got)
	}
}

func TestPinnedRookStaysOnFile(t *testing.T) {
	b := mustBoard(t, "4k3/8/4r3/8/8/8/4Q3/4K3 b - - 0 1")
	rook := mustSquare(t, "e6")
	got := destinations(b, rook)
	want := []string{"e2", "e3", "e4", "e5", "e7"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("pinned rook destinations = %v, want %v", got, want)
	}
	for _, sq := range b.FindMoves(rook) {
		if sq.Col() != rook.Col() {
			t.Fatalf("pinned rook left the file: %s", sq)
		}
	}
}

func TestPinContainment(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		pinned string
		line   []Vector
	}{
		{"rook on file", "4k3/8/4r3/8/8/8/4Q3/4K3 b - - 0 1", "e6", []Vector{shared.North, shared.South}},
		{"bishop on diagonal", "4k3/8/8/8/1b6/8/3B4/4K3 w - - 0 1", "d2", []Vector{shared.NorthWest, shared.SouthEast}},
		{"knight frozen", "4r1k1/8/8/8/8/8/4N3/4K3 w - - 0 1", "e2", nil},
		{"pawn on file", "4k3/4r3/8/8/8/8/4P3/4K3 w - - 0 1", "e2", []Vector{shared.North}},
		{"pawn on diagonal", "4k3/8/8/8/8/5b2/4P3/3K4 w - - 0 1", "e2", []Vector{shared.NorthEast}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.fen)
			from := mustSquare(t, tt.pinned)
			ml, _ := b.moveList(from)
			for _, c := range ml.Commands {
				if !onLine(from, c.To, tt.line) {
					t.Fatalf("%s leaves the pin line", c)
				}
			}
		})
	}
}

func onLine(from, to Square, line []Vector) bool {
	for _, v := range line {
		for _, dir := range []Vector{v, -v} {
			for sq := from.Step(dir); sq.Playable(); sq = sq.Step(dir) {
				if sq == to {
					return true
				}
			}
		}
	}
	return false
}

func TestUnpinnedMovesAreSupersetOfPinned(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/3Q4/8/8/4K3 w - - 0 1")
	queen := b.pieceAt(mustSquare(t, "d4"))
	free := SquareSetOf(b.generateMoveList(queen).Destinations()...)
	for _, v := range queen.Vectors() {
		queen.setPin(v)
		pinned := b.generateMoveList(queen)
		if queen.Pinned() {
			t.Fatalf("generation should consume the pin")
		}
		for _, sq := range pinned.Destinations() {
			if !free.Has(sq) {
				t.Fatalf("pin %s produced %s outside the free set", v, sq)
			}
		}
		if len(pinned.Commands) == 0 {
			t.Fatalf("pin %s left a queen with no moves", v)
		}
	}
}

func TestEnPassantEligibility(t *testing.T) {
	b := mustBoard(t, "4k3/3p4/8/4P3/8/8/8/4K3 b - - 0 1")
	mustMove(t, b, "d7", "d5")
	e5 := mustSquare(t, "e5")
	if got := destinations(b, e5); !reflect.DeepEqual(got, []string{"d6", "e6"}) {
		t.Fatalf("after double push e5 destinations = %v", got)
	}
	if b.EnPassant() != mustSquare(t, "d5") {
		t.Fatalf("marker = %s, want d5", b.EnPassant())
	}

	// Declining the capture for one turn forfeits it.
	mustMove(t, b, "e1", "e2")
	mustMove(t, b, "e8", "e7")
	if got := destinations(b, e5); reflect.DeepEqual(got, []string{"d6", "e6"}) {
		t.Fatalf("en passant offered a turn late: %v", got)
	}
	if b.EnPassant() != shared.NoSquare {
		t.Fatalf("marker should be cleared, got %s", b.EnPassant())
	}

	// Undo brings the opportunity back exactly.
	for i := 0; i < 2; i++ {
		if err := b.Undo(); err != nil {
			t.Fatalf("undo: %v", err)
		}
	}
	if b.EnPassant() != mustSquare(t, "d5") {
		t.Fatalf("undo should restore marker, got %s", b.EnPassant())
	}
	mustMove(t, b, "e5", "d6")
	if _, ok := b.PieceAt(mustSquare(t, "d5")); ok {
		t.Fatalf("captured pawn still on d5")
	}
	if p, ok := b.PieceAt(mustSquare(t, "d6")); !ok || p.Kind != shared.Pawn || p.Owner != shared.White {
		t.Fatalf("white pawn not on d6")
	}
}

func TestEnPassantNotOfferedAfterTwoSingleSteps(t *testing.T) {
	b := mustBoard(t, "4k3/3p4/8/4P3/8/8/8/4K3 b - - 0 1")
	mustMove(t, b, "d7", "d6")
	mustMove(t, b, "e1", "e2")
	mustMove(t, b, "d6", "d5")
	if got := destinations(b, mustSquare(t, "e5")); !reflect.DeepEqual(got, []string{"e6"}) {
		t.Fatalf("e5 destinations = %v, want [e6]", got)
	}
}

func TestEnPassantDiscoveredCheckRejected(t *testing.T) {
	b := mustBoard(t, "8/8/8/8/k4p1Q/8/4P3/4K3 w - - 0 1")
	mustMove(t, b, "e2", "e4")
	if got := destinations(b, mustSquare(t, "f4")); !reflect.DeepEqual(got, []string{"f3"}) {
		t.Fatalf("f4 destinations = %v, want [f3]", got)
	}
}

func TestEnPassantAsCheckEvasion(t *testing.T) {
	b := mustBoard(t, "8/8/8/2k5/4p3/8/3P4/4K3 w - - 0 1")
	mustMove(t, b, "d2", "d4")
	if !b.IsInCheck() {
		t.Fatalf("d4 should give check")
	}
	if got := destinations(b, mustSquare(t, "e4")); !reflect.DeepEqual(got, []string{"d3"}) {
		t.Fatalf("e4 destinations = %v, want [d3]", got)
	}
}

func TestDoublePushNeedsClearPath(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1")
	if got := b.FindMoves(mustSquare(t, "e2")); len(got) != 0 {
		t.Fatalf("blocked pawn moves = %v", got)
	}
	b = mustBoard(t, "4k3/8/8/8/4n3/8/4P3/4K3 w - - 0 1")
	if got := destinations(b, mustSquare(t, "e2")); !reflect.DeepEqual(got, []string{"e3"}) {
		t.Fatalf("half-blocked pawn moves = %v", got)
	}
}

func TestCastling(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []string
	}{
		{"both sides", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"c1", "d1", "d2", "e2", "f1", "f2", "g1"}},
		{"no permission", "r3k2r/8/8/8/8/8/8/R3K2R w Kkq - 0 1", []string{"d1", "d2", "e2", "f1", "f2", "g1"}},
		{"blocked", "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1", []string{"d1", "d2", "e2", "f1", "f2", "g1"}},
		{"attacked transit", "r3k2r/8/8/8/8/5r2/8/R3K2R w KQkq - 0 1", []string{"c1", "d1", "d2", "e2"}},
		{"in check", "4k3/8/8/8/8/8/8/R3K2r w Q - 0 1", []string{"d2", "e2", "f2"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.fen)
			if got := destinations(b, mustSquare(t, "e1")); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("king destinations = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCastlingExecuteAndUndo(t *testing.T) {
	b := mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	mustMove(t, b, "e1", "c1")
	for coord, code := range map[string]byte{"c1": 'K', "d1": 'R', "a1": 0, "e1": 0} {
		if got := b.TileAt(mustSquare(t, coord)).Code(); got != code {
			t.Fatalf("%s = %q, want %q", coord, got, code)
		}
	}
	mustMove(t, b, "e8", "g8")
	if got := b.TileAt(mustSquare(t, "f8")).Code(); got != 'r' {
		t.Fatalf("f8 = %q, want r", got)
	}
	if err := b.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if err := b.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got := b.Descriptor().String(); got != "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1" {
		t.Fatalf("descriptor after undo = %q", got)
	}
}

func TestCastlingLostAfterKingReturns(t *testing.T) {
	b := mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	mustMove(t, b, "e1", "e2")
	mustMove(t, b, "e8", "e7")
	mustMove(t, b, "e2", "e1")
	mustMove(t, b, "e7", "e8")
	got := destinations(b, mustSquare(t, "e1"))
	for _, sq := range got {
		if sq == "c1" || sq == "g1" {
			t.Fatalf("castling offered after the king moved: %v", got)
		}
	}
}

func TestPromotion(t *testing.T) {
	b := mustBoard(t, "4k3/2P5/8/8/8/8/6p1/4K3 w - - 0 1")
	c7, c8 := mustSquare(t, "c7"), mustSquare(t, "c8")
	before := takeFingerprint(b)

	mustMove(t, b, "c7", "c8")
	if !b.IsPromotionPending() {
		t.Fatalf("promotion should be pending")
	}
	if b.Turn() != shared.White {
		t.Fatalf("turn should not pass before the piece is chosen")
	}
	if err := b.Move(mustSquare(t, "e1"), mustSquare(t, "d1")); !errors.Is(err, ErrPromotionPending) {
		t.Fatalf("move during promotion: %v", err)
	}
	if err := b.Promote('x'); !errors.Is(err, ErrInvalidPromotion) {
		t.Fatalf("invalid piece: %v", err)
	}

	if err := b.Promote('Q'); err != nil {
		t.Fatalf("promote: %v", err)
	}
	p, ok := b.PieceAt(c8)
	if !ok || p.Kind != shared.Queen || p.Owner != shared.White {
		t.Fatalf("c8 holds %+v, want white queen", p)
	}
	if _, ok := b.PieceAt(c7); ok {
		t.Fatalf("pawn still on c7")
	}
	for _, live := range b.Pieces() {
		if live.Kind == shared.Pawn && live.Owner == shared.White {
			t.Fatalf("white pawn still in the live set")
		}
	}
	if b.Turn() != shared.Black || !b.IsInCheck() {
		t.Fatalf("turn=%v check=%v, want black in check", b.Turn(), b.IsInCheck())
	}
	if err := b.Promote('q'); !errors.Is(err, ErrNoPromotionPending) {
		t.Fatalf("second promote: %v", err)
	}

	if err := b.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got := takeFingerprint(b); !reflect.DeepEqual(got, before) {
		t.Fatalf("undo did not restore the position")
	}
	pawn, ok := b.PieceAt(c7)
	if !ok || pawn.Kind != shared.Pawn || pawn.Moves != 0 {
		t.Fatalf("pawn not restored: %+v", pawn)
	}
}

func TestUndoUnresolvedPromotion(t *testing.T) {
	b := mustBoard(t, "4k3/2P5/8/8/8/8/6p1/4K3 w - - 0 1")
	before := takeFingerprint(b)
	mustMove(t, b, "c7", "c8")
	if err := b.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if b.IsPromotionPending() {
		t.Fatalf("pending promotion survived undo")
	}
	if got := takeFingerprint(b); !reflect.DeepEqual(got, before) {
		t.Fatalf("undo did not restore the position")
	}
}

func TestCapturePromotion(t *testing.T) {
	b := mustBoard(t, "1n2k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	if got := destinations(b, mustSquare(t, "a7")); !reflect.DeepEqual(got, []string{"a8", "b8"}) {
		t.Fatalf("a7 destinations = %v", got)
	}
	mustMove(t, b, "a7", "b8")
	if err := b.Promote('r'); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if p, ok := b.PieceAt(mustSquare(t, "b8")); !ok || p.Kind != shared.Rook {
		t.Fatalf("b8 should hold a rook")
	}
	if got := len(b.Captured()); got != 2 {
		t.Fatalf("captured = %d, want pawn and knight", got)
	}
	if b.HalfMoveClock() != 0 {
		t.Fatalf("promotion should reset the clock")
	}
	if err := b.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if p, ok := b.PieceAt(mustSquare(t, "b8")); !ok || p.Kind != shared.Knight || p.Owner != shared.Black {
		t.Fatalf("knight not restored on b8")
	}
}

func TestPromotionAnswersCheck(t *testing.T) {
	b := mustBoard(t, "K7/1P4rk/8/8/8/8/8/8 b - - 0 1")
	mustMove(t, b, "g7", "g8")
	if !b.IsInCheck() {
		t.Fatalf("Rg8 should check the white king")
	}
	if got := destinations(b, mustSquare(t, "b7")); !reflect.DeepEqual(got, []string{"b8"}) {
		t.Fatalf("b7 destinations = %v, want [b8]", got)
	}
	mustMove(t, b, "b7", "b8")
	if err := b.Promote('q'); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if b.Turn() != shared.Black {
		t.Fatalf("turn = %v", b.Turn())
	}
}

func TestPinsAreReported(t *testing.T) {
	b := mustBoard(t, "4k3/8/4r3/8/8/8/4Q3/4K3 b - - 0 1")
	e6 := mustSquare(t, "e6")
	if got := b.Pins(); !reflect.DeepEqual(got, []Square{e6}) {
		t.Fatalf("pins = %v, want [e6]", got)
	}
	rook, ok := b.PieceAt(e6)
	if !ok || !rook.Pinned() {
		t.Fatalf("rook on e6 should report its pin")
	}
	if got, want := rook.PinVectors(), []Vector{shared.North, shared.South}; !reflect.DeepEqual(got, want) {
		t.Fatalf("pin vectors = %v, want %v", got, want)
	}
	if king, _ := b.PieceAt(mustSquare(t, "e8")); king.Pinned() {
		t.Fatalf("king should not be pinned")
	}

	for _, ps := range b.Snapshot().Pieces {
		if ps.Pinned != (ps.Square == "e6") {
			t.Fatalf("snapshot pin for %s on %s = %v", ps.Code, ps.Square, ps.Pinned)
		}
	}

	// Generation consumes the pieces' own pins; the reported set stays.
	b.beginTurn()
	if line, ok := b.PinLine(e6); !ok || len(line) != 2 {
		t.Fatalf("pin line lost after regeneration")
	}

	// With the king gone the rook now pins the white queen to its king.
	mustMove(t, b, "e8", "d8")
	if got, want := b.Pins(), []Square{mustSquare(t, "e2")}; !reflect.DeepEqual(got, want) {
		t.Fatalf("white pins = %v, want %v", got, want)
	}
	if err := b.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if _, ok := b.PinLine(e6); !ok {
		t.Fatalf("undo should restore the pin")
	}
}

func TestPendingPromotionKeepsPosition(t *testing.T) {
	const start = "4k3/8/8/8/8/8/6p1/4K3 b - - 3 7"
	b := mustBoard(t, start)
	mustMove(t, b, "g2", "g1")
	if !b.IsPromotionPending() {
		t.Fatalf("expected pending promotion")
	}
	if got := b.Descriptor().String(); got != start {
		t.Fatalf("pending fen = %q, want %q", got, start)
	}
	if b.HalfMoveClock() != 3 || b.FullMoveNumber() != 7 || b.Turn() != shared.Black {
		t.Fatalf("pending clocks half=%d full=%d turn=%v", b.HalfMoveClock(), b.FullMoveNumber(), b.Turn())
	}

	if err := b.Promote('q'); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if got, want := b.Descriptor().String(), "4k3/8/8/8/8/8/8/4K1q1 w - - 0 8"; got != want {
		t.Fatalf("fen after promotion = %q, want %q", got, want)
	}
	hist := b.History()
	if len(hist) != 1 || hist[0].Notation != "g2-g1=Q" || hist[0].Promoted != shared.Queen || hist[0].Kind != CmdPromotion {
		t.Fatalf("history = %+v", hist)
	}

	if err := b.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got := b.Descriptor().String(); got != start {
		t.Fatalf("fen after undo = %q", got)
	}
}

func TestPendingPromotionKeepsEnPassantMarker(t *testing.T) {
	b := mustBoard(t, "4k3/2Pp4/8/4P3/8/8/8/4K3 b - - 0 1")
	mustMove(t, b, "d7", "d5")
	const pushed = "4k3/2P5/8/3pP3/8/8/8/4K3 w - d6 0 2"
	if got := b.Descriptor().String(); got != pushed {
		t.Fatalf("after d5 fen = %q", got)
	}
	mustMove(t, b, "c7", "c8")
	if got := b.Descriptor().String(); got != pushed {
		t.Fatalf("pending fen = %q, want %q", got, pushed)
	}
	if err := b.Promote('q'); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if got, want := b.Descriptor().String(), "2Q1k3/8/8/3pP3/8/8/8/4K3 b - - 0 2"; got != want {
		t.Fatalf("fen after promotion = %q, want %q", got, want)
	}
}
