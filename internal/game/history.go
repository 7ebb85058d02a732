package game

import "strings"

// historyEntry holds one executed command and everything its undo needs
// beyond the command itself.
type historyEntry struct {
	cmd       Command
	halfMove  int
	fullMove  int
	enPassant Square
	note      string

	// promoted is the piece created when a pending promotion was resolved.
	promoted *Piece
	// turnPassed is false only for a promotion still awaiting its piece.
	turnPassed bool
}

// HistoryItem is one played command as reported to front ends.
type HistoryItem struct {
	Kind     CommandKind `json:"kind"`
	From     string      `json:"from"`
	To       string      `json:"to"`
	Notation string      `json:"notation"`
	Promoted Kind        `json:"promoted,omitempty"`
}

// History lists executed commands, oldest first. A resolved promotion
// carries the chosen piece in its notation.
func (b *Board) History() []HistoryItem {
	out := make([]HistoryItem, 0, len(b.history))
	for _, e := range b.history {
		item := HistoryItem{
			Kind:     e.cmd.Kind,
			From:     e.cmd.From.String(),
			To:       e.cmd.To.String(),
			Notation: e.cmd.String(),
		}
		if e.promoted != nil {
			item.Promoted = e.promoted.Kind
			item.Notation = strings.TrimSuffix(item.Notation, "?") + e.promoted.Kind.String()
		}
		out = append(out, item)
	}
	return out
}
