package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"chess_rules/internal/game"
	"chess_rules/internal/shared"
)

const helpText = `Help:
To enter a move type two coordinates separated by a semi-colon, e.g. 'a2;a4'.
Pieces of the side to move that can move are shown in square brackets, e.g. [R].
To view the moves of a piece type its coordinate followed by a question mark, e.g. 'a1?'.
When a pawn promotes, type q, r, b or n.
Other commands: undo, moves, history, fen, board, resign, quit.`

// Reply is the outcome of one dispatched line.
type Reply struct {
	Lines []string
	// Board is a fresh rendering when the line changed or inspected the position.
	Board string
	// Done is set once the session has ended.
	Done bool
}

// Session drives one board from typed commands.
type Session struct {
	board *game.Board
	ended bool
}

func NewSession(b *game.Board) *Session { return &Session{board: b} }

func (s *Session) Board() *game.Board { return s.board }

func (s *Session) Ended() bool { return s.ended }

// Dispatch parses and executes one line.
func (s *Session) Dispatch(line string) Reply {
	if s.ended {
		return Reply{Lines: []string{"The game has ended."}, Done: true}
	}
	in, err := Parse(line)
	if err != nil {
		return Reply{Lines: []string{"Command was not executed. Type 'help' for help."}}
	}

	b := s.board
	switch in.Action {
	case ActMove:
		from, okFrom := b.ConvertCoordinate(in.From)
		to, okTo := b.ConvertCoordinate(in.To)
		if !okFrom || !okTo {
			return Reply{Lines: []string{fmt.Sprintf("Invalid Move: [%s, %s].", in.From, in.To)}}
		}
		if err := b.Move(from, to); err != nil {
			if errors.Is(err, game.ErrPromotionPending) {
				return Reply{Lines: []string{promotionPrompt(b)}}
			}
			return Reply{Lines: []string{fmt.Sprintf("Invalid Move: [%s, %s].", in.From, in.To)}}
		}
		return s.afterTurn()

	case ActShow:
		from, ok := b.ConvertCoordinate(in.From)
		if !ok || len(b.FindMoves(from)) == 0 {
			return Reply{Lines: []string{fmt.Sprintf("Invalid Selection: [%s] has no moves!", in.From)}}
		}
		var dests []string
		for _, sq := range b.FindMoves(from) {
			dests = append(dests, sq.String())
		}
		return Reply{
			Lines: []string{fmt.Sprintf("%s: %s", in.From, strings.Join(dests, " "))},
			Board: Render(b, from),
		}

	case ActPromote:
		if !b.IsPromotionPending() {
			return Reply{Lines: []string{"No promotion is pending."}}
		}
		if err := b.Promote(in.Piece); err != nil {
			return Reply{Lines: []string{promotionPrompt(b)}}
		}
		return s.afterTurn()

	case ActUndo:
		if err := b.Undo(); err != nil {
			return Reply{Lines: []string{"Cannot undo move as no previous move exists!"}}
		}
		return Reply{Lines: append([]string{"Move undone."}, s.Status()...), Board: Render(b, shared.NoSquare)}

	case ActHelp:
		return Reply{Lines: strings.Split(helpText, "\n")}

	case ActResign:
		s.ended = true
		loser := b.ActivePlayer()
		winner := b.Player(loser.Faction.Opposite())
		return Reply{Lines: []string{fmt.Sprintf("%s resigns. %s wins!", loser.Name, winner.Name)}, Done: true}

	case ActQuit:
		s.ended = true
		return Reply{Lines: []string{"Game abandoned."}, Done: true}

	case ActFEN:
		return Reply{Lines: []string{b.Descriptor().String()}}

	case ActMoves:
		return Reply{Lines: movesSummary(b)}

	case ActBoard:
		return Reply{Lines: s.Status(), Board: Render(b, shared.NoSquare)}

	case ActHistory:
		return Reply{Lines: historyLines(b)}
	}
	return Reply{Lines: []string{"Command was not executed. Type 'help' for help."}}
}

func (s *Session) afterTurn() Reply {
	b := s.board
	r := Reply{Board: Render(b, shared.NoSquare)}
	if note := b.LastNote(); note != "" {
		r.Lines = append(r.Lines, note)
	}
	if b.IsPromotionPending() {
		r.Lines = append(r.Lines, promotionPrompt(b))
		return r
	}
	r.Lines = append(r.Lines, s.Status()...)
	if b.State() != game.Legal {
		s.ended = true
		r.Done = true
	}
	return r
}

// Status describes whose turn it is, check, and any terminal state.
func (s *Session) Status() []string {
	b := s.board
	switch b.State() {
	case game.Checkmate:
		winner, _ := b.Winner()
		return []string{fmt.Sprintf("Checkmate! %s wins.", b.Player(winner).Name)}
	case game.Stalemate:
		if b.HalfMoveClock() >= 50 {
			return []string{"Stalemate! Fifty moves without a pawn move."}
		}
		return []string{"Stalemate!"}
	}
	if b.IsPromotionPending() {
		return []string{promotionPrompt(b)}
	}
	player := b.ActivePlayer()
	lines := []string{fmt.Sprintf("%s to play! %s is the enemy...", player.Name, b.Player(player.Faction.Opposite()).Name)}
	if b.IsInCheck() {
		lines = append(lines, "You are in Check!")
	}
	return lines
}

func promotionPrompt(b *game.Board) string {
	if b.Turn() == shared.Black {
		return "Promote to: 'b' 'n' 'q' 'r'"
	}
	return "Promote to: 'B' 'N' 'Q' 'R'"
}

func movesSummary(b *game.Board) []string {
	var lines []string
	for _, ml := range b.LegalMoves() {
		var dests []string
		for _, sq := range ml.Destinations() {
			dests = append(dests, sq.String())
		}
		lines = append(lines, fmt.Sprintf("%s: %s", ml.Origin, strings.Join(dests, " ")))
	}
	sort.Strings(lines)
	if len(lines) == 0 {
		return []string{"No legal moves."}
	}
	return lines
}

// historyLines numbers the played commands, one per line.
func historyLines(b *game.Board) []string {
	hist := b.History()
	if len(hist) == 0 {
		return []string{"No moves played."}
	}
	lines := make([]string, 0, len(hist))
	for i, item := range hist {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, item.Notation))
	}
	return lines
}

// Run plays the session over plain text streams until the game ends, the
// player quits, or input runs out.
func (s *Session) Run(r io.Reader, w io.Writer) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	fmt.Fprintln(bw, "The game has begun: Please enter 'help' for a list of commands.")
	fmt.Fprint(bw, Render(s.board, shared.NoSquare))
	for _, line := range s.Status() {
		fmt.Fprintln(bw, line)
	}
	if s.board.State() != game.Legal {
		s.ended = true
		return bw.Flush()
	}

	sc := bufio.NewScanner(r)
	for {
		fmt.Fprint(bw, "Please enter a move: ")
		if err := bw.Flush(); err != nil {
			return err
		}
		if !sc.Scan() {
			fmt.Fprintln(bw)
			return sc.Err()
		}
		reply := s.Dispatch(sc.Text())
		if reply.Board != "" {
			fmt.Fprint(bw, reply.Board)
		}
		for _, line := range reply.Lines {
			fmt.Fprintln(bw, line)
		}
		if reply.Done {
			return bw.Flush()
		}
	}
}
