// Package console implements the line-oriented front end: a small command
// grammar, a session that drives a board, and a plain-text board renderer.
package console

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

// Action is what a parsed line asks for.
type Action uint8

const (
	ActMove Action = iota
	ActShow
	ActPromote
	ActUndo
	ActHelp
	ActResign
	ActQuit
	ActFEN
	ActMoves
	ActBoard
	ActHistory
)

func (a Action) String() string {
	switch a {
	case ActMove:
		return "move"
	case ActShow:
		return "show"
	case ActPromote:
		return "promote"
	case ActUndo:
		return "undo"
	case ActHelp:
		return "help"
	case ActResign:
		return "resign"
	case ActQuit:
		return "quit"
	case ActFEN:
		return "fen"
	case ActMoves:
		return "moves"
	case ActBoard:
		return "board"
	case ActHistory:
		return "history"
	default:
		return "?"
	}
}

// Input is one parsed command line.
type Input struct {
	Action Action
	From   string
	To     string
	Piece  byte
}

var ErrUnknownCommand = errors.New("unknown command")

var (
	reMove    = regexp.MustCompile(`^([a-h][1-8])\s*[;\s-]\s*([a-h][1-8])$`)
	reShow    = regexp.MustCompile(`^([a-h][1-8])\s*\?$`)
	rePromote = regexp.MustCompile(`^[qrbn]$`)
)

var keywords = map[string]Action{
	"undo":    ActUndo,
	"help":    ActHelp,
	"resign":  ActResign,
	"quit":    ActQuit,
	"exit":    ActQuit,
	"fen":     ActFEN,
	"moves":   ActMoves,
	"board":   ActBoard,
	"history": ActHistory,
}

// Normalize folds full-width characters to ASCII, lower-cases and trims.
func Normalize(line string) string {
	return strings.ToLower(strings.TrimSpace(width.Fold.String(line)))
}

// Parse reads one command line. Moves are written "a2;a4" (a space or dash
// also separates the squares) and "e2?" lists a piece's moves.
func Parse(line string) (Input, error) {
	s := Normalize(line)
	if m := reMove.FindStringSubmatch(s); m != nil {
		return Input{Action: ActMove, From: m[1], To: m[2]}, nil
	}
	if m := reShow.FindStringSubmatch(s); m != nil {
		return Input{Action: ActShow, From: m[1]}, nil
	}
	if rePromote.MatchString(s) {
		return Input{Action: ActPromote, Piece: s[0]}, nil
	}
	if act, ok := keywords[s]; ok {
		return Input{Action: act}, nil
	}
	return Input{}, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}
