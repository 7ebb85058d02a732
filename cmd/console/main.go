// Console front end. Runs the full-screen UI unless -plain is given.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"chess_rules/internal/console"
	"chess_rules/internal/fen"
	"chess_rules/internal/game"
	"chess_rules/internal/tui"
)

func main() {
	position := flag.String("fen", getenv("CHESS_FEN", ""), "starting position (FEN)")
	preset := flag.String("preset", getenv("CHESS_PRESET", ""), "named starting position, e.g. pin or castling")
	plain := flag.Bool("plain", getenb("CHESS_PLAIN", false), "line mode on stdin/stdout instead of the full-screen UI")
	flag.Parse()

	start := fen.StartingFEN
	switch {
	case *position != "":
		start = *position
	case *preset != "":
		p, ok := fen.LookupPreset(*preset)
		if !ok {
			names := make([]string, 0, len(fen.Presets))
			for _, p := range fen.Presets {
				names = append(names, p.Name)
			}
			log.Fatalf("unknown preset %q; valid: %s", *preset, strings.Join(names, ", "))
		}
		start = p.FEN
	}

	board, err := game.NewBoardFromFEN(start)
	if err != nil {
		log.Fatalf("starting position: %v", err)
	}
	session := console.NewSession(board)

	if *plain {
		err = session.Run(os.Stdin, os.Stdout)
	} else {
		err = tui.Run(session)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
