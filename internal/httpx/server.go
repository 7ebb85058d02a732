package httpx

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"chess_rules/internal/fen"
	"chess_rules/internal/game"
	"chess_rules/internal/shared"
)

// Server exposes one in-memory game over a JSON API.
type Server struct {
	mu       sync.Mutex
	board    *game.Board
	startFEN string
}

const (
	maxJSONBodyBytes int64 = 1 << 20
	apiCSP                 = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"

	shutdownGrace = 5 * time.Second
)

// NewServer builds a Server around board. Reset without a FEN returns to startFEN.
func NewServer(board *game.Board, startFEN string) *Server {
	if startFEN == "" {
		startFEN = fen.StartingFEN
	}
	return &Server{board: board, startFEN: startFEN}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
// It returns nil after a clean shutdown.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	served := make(chan error, 1)
	go func() {
		log.Printf("rules service listening on %s", addr)
		served <- srv.ListenAndServe()
	}()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("rules service shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-served; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) routes() http.Handler {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api", withJSON)
	api.GET("/state", s.handleState)
	api.POST("/move", s.handleMove)
	api.POST("/promote", s.handlePromote)
	api.POST("/undo", s.handleUndo)
	api.POST("/reset", s.handleReset)
	api.GET("/moves/:square", s.handleMoves)
	api.POST("/analyze", s.handleAnalyze)

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

// ---- JSON helpers ----

func withJSON(c *gin.Context) {
	applyAPISecurityHeaders(c.Writer.Header())
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxJSONBodyBytes)
	}
	c.Next()
}

func writeJSON(c *gin.Context, v any) {
	c.JSON(http.StatusOK, v)
}

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// bindJSON decodes the request body into v. An empty body leaves v untouched
// when optional is set.
func bindJSON(c *gin.Context, v any, optional bool) bool {
	err := c.ShouldBindJSON(v)
	if err == nil {
		return true
	}
	if optional && errors.Is(err, io.EOF) {
		return true
	}
	if isBodyTooLarge(err) {
		writeError(c, http.StatusRequestEntityTooLarge, "request too large")
		return false
	}
	writeError(c, http.StatusBadRequest, "invalid json")
	return false
}

func applyAPISecurityHeaders(h http.Header) {
	h.Set("Content-Security-Policy", apiCSP)
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	h.Set("X-Content-Type-Options", "nosniff")
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// ---- API: state ----

func (s *Server) handleState(c *gin.Context) {
	s.mu.Lock()
	state := s.board.Snapshot()
	s.mu.Unlock()
	writeJSON(c, gin.H{"state": state})
}

// ---- API: move ----

type moveBody struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion"`
}

func (s *Server) handleMove(c *gin.Context) {
	var body moveBody
	if !bindJSON(c, &body, false) {
		return
	}
	from, ok := game.CoordToSquare(body.From)
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid from square")
		return
	}
	to, ok := game.CoordToSquare(body.To)
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid to square")
		return
	}
	var promotion byte
	if p := strings.TrimSpace(body.Promotion); p != "" {
		kind, ok := shared.ParsePromotionPiece(p)
		if !ok {
			writeError(c, http.StatusBadRequest, "invalid promotion choice")
			return
		}
		promotion = shared.PieceCode(kind, shared.White)
	}

	s.mu.Lock()
	err := s.board.Move(from, to)
	if err == nil && promotion != 0 && s.board.IsPromotionPending() {
		err = s.board.Promote(promotion)
	}
	state := s.board.Snapshot()
	s.mu.Unlock()

	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(c, gin.H{"state": state})
}

// ---- API: promote ----

type promoteBody struct {
	Piece string `json:"piece"`
}

func (s *Server) handlePromote(c *gin.Context) {
	var body promoteBody
	if !bindJSON(c, &body, false) {
		return
	}
	kind, ok := shared.ParsePromotionPiece(body.Piece)
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid promotion choice")
		return
	}

	s.mu.Lock()
	err := s.board.Promote(shared.PieceCode(kind, shared.White))
	state := s.board.Snapshot()
	s.mu.Unlock()

	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(c, gin.H{"state": state})
}

// ---- API: undo ----

func (s *Server) handleUndo(c *gin.Context) {
	s.mu.Lock()
	err := s.board.Undo()
	state := s.board.Snapshot()
	s.mu.Unlock()

	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(c, gin.H{"state": state})
}

// ---- API: reset ----

type resetBody struct {
	FEN    string `json:"fen"`
	Preset string `json:"preset"`
}

func (s *Server) handleReset(c *gin.Context) {
	var body resetBody
	if !bindJSON(c, &body, true) {
		return
	}
	position := s.startFEN
	switch {
	case strings.TrimSpace(body.FEN) != "":
		position = body.FEN
	case body.Preset != "":
		p, ok := fen.LookupPreset(body.Preset)
		if !ok {
			writeError(c, http.StatusBadRequest, "unknown preset")
			return
		}
		position = p.FEN
	}
	board, err := game.NewBoardFromFEN(position)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	s.board = board
	state := s.board.Snapshot()
	s.mu.Unlock()
	writeJSON(c, gin.H{"state": state})
}

// ---- API: moves ----

func (s *Server) handleMoves(c *gin.Context) {
	square := c.Param("square")
	from, ok := game.CoordToSquare(square)
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid square")
		return
	}

	s.mu.Lock()
	dests := s.board.FindMoves(from)
	s.mu.Unlock()

	out := make([]string, 0, len(dests))
	for _, sq := range dests {
		out = append(out, sq.String())
	}
	writeJSON(c, gin.H{"square": from.String(), "destinations": out})
}

// ---- API: analyze ----

type analyzeBody struct {
	FEN string `json:"fen"`
}

// handleAnalyze reports the legal-move catalog for any position without
// touching the session board.
func (s *Server) handleAnalyze(c *gin.Context) {
	var body analyzeBody
	if !bindJSON(c, &body, false) {
		return
	}
	board, err := game.NewBoardFromFEN(body.FEN)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(c, gin.H{"state": board.Snapshot()})
}
