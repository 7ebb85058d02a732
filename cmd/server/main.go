// Local rules service: one in-memory game behind a JSON API.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"

	"chess_rules/internal/fen"
	"chess_rules/internal/game"
	"chess_rules/internal/httpx"
)

func main() {
	addr := flag.String("addr", getenv("CHESS_ADDR", "127.0.0.1:8080"), "listen address")
	position := flag.String("fen", getenv("CHESS_FEN", fen.StartingFEN), "starting position (FEN)")
	release := flag.Bool("release", getenb("CHESS_RELEASE", false), "run gin in release mode")
	flag.Parse()

	if *release {
		gin.SetMode(gin.ReleaseMode)
	}

	board, err := game.NewBoardFromFEN(*position)
	fatalIf(err, "starting position")
	log.Printf("Starting position: %s (%s to move, %d legal moves)", board.Descriptor(), board.Turn().Name(), board.MoveCount())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpx.NewServer(board, *position)
	if err := srv.Run(ctx, *addr); err != nil {
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

func fatalIf(err error, label string) {
	if err != nil {
		log.Fatalf("%s: %v", label, err)
	}
}
