package fen

import "strings"

// Preset is a named position used for debugging and demos.
type Preset struct {
	Name string
	FEN  string
	Note string
}

var Presets = []Preset{
	{"standard", StartingFEN, "initial position"},
	{"ep-evasion", "8/8/8/2k5/4p3/8/3P4/4K3 w - - 0 1", "d2-d4 gives check; exd3 e.p. is an evasion"},
	{"double-check", "4k3/6N1/5b2/4R3/8/8/8/4K3 b - - 0 1", "only the king may move"},
	{"evasion-bishop", "4k3/8/6B1/8/8/8/8/2KR4 b - - 0 1", "king must step out of check"},
	{"evasion-rook", "8/8/4k3/8/8/8/8/4RK2 b - - 0 1", "king must leave the e-file"},
	{"single-evasion", "8/8/4k1n1/b7/8/8/8/4RK2 b - - 0 1", "knight interposes or bishop captures"},
	{"pin", "4k3/8/4r3/8/8/8/4Q3/4K3 b - - 0 1", "black rook pinned to the e-file"},
	{"ep-discovered", "8/8/8/8/k4p1Q/8/4P3/4K3 w - - 0 1", "e2-e4 fxe3 e.p. would expose the king"},
	{"castling", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "all four castles available"},
	{"promotion", "4k3/2P5/8/8/8/8/6p1/4K3 w - - 0 1", "both sides one step from promoting"},
	{"promotion-evasion", "K7/1P4rk/8/8/8/8/8/8 b - - 0 1", "promotion that answers a check"},
	{"fifty", "8/8/3k4/8/8/3K4/8/8 w - - 49 1", "next quiet move ends the game"},
	{"stalemate", "4k3/4p3/4Q3/2B5/8/8/8/4K3 w - - 0 1", "stalemate motifs around the black king"},
}

// LookupPreset finds a preset by name, ignoring case.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}
