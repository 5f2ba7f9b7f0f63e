package squad

import "errors"

var (
	ErrNoHomeTeam          = errors.New("no home team selected")
	ErrDuplicatePlayer     = errors.New("player is already in the squad")
	ErrSlotMismatch        = errors.New("player does not fit the requested slot")
	ErrInsufficientBudget  = errors.New("insufficient budget")
	ErrInvalidIndex        = errors.New("invalid squad entry index")
	ErrIncompleteFormation = errors.New("formation is incomplete")
	ErrSessionNotFound     = errors.New("session not found")
)
