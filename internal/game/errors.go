package game

import "errors"

var (
	ErrInvalidPosition    = errors.New("invalid position")
	ErrNoMoveFromOrigin   = errors.New("no move from this origin")
	ErrNoLegalDestination = errors.New("no legal destination")
	ErrNoHistory          = errors.New("no history to undo")
	ErrPromotionPending   = errors.New("promotion pending")
	ErrNoPromotionPending = errors.New("no promotion pending")
	ErrInvalidPromotion   = errors.New("invalid promotion piece")
	ErrGameOver           = errors.New("game over")
)
