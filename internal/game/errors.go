// Package game defines the shared outcome-resolver contract: the error
// kinds every resolver reports and the descriptor registry the command
// layer uses to enumerate playable games.
//
// Resolvers are pure: they map (player snapshot, action parameters,
// random source) to a typed result, never perform I/O and never mutate
// their inputs. All failures below are recoverable rejections surfaced
// to the player, never fatal to the process.
package game

import (
	"errors"
	"fmt"
	"time"
)

// Resolver error kinds. Callers match with errors.Is and translate
// into user-visible messages.
var (
	ErrInvalidWager      = errors.New("wager must be positive")
	ErrInvalidBet        = errors.New("unrecognized bet")
	ErrInvalidPrediction = errors.New("prediction must be between 2 and 12")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyOwned      = errors.New("territory already owned")
	ErrNoTerritories     = errors.New("no territories owned")
	ErrCooldownActive    = errors.New("cooldown active")
	ErrInJail            = errors.New("player is in jail")
	ErrNotInJail         = errors.New("player is not in jail")
	ErrEscapeInProgress  = errors.New("escape attempt already in progress")
	ErrUnknownEntity     = errors.New("unknown entity")
)

// CooldownErr carries the remaining wait so the presentation layer can
// show it. It matches ErrCooldownActive under errors.Is.
type CooldownErr struct {
	Remaining time.Duration
}

func (e *CooldownErr) Error() string {
	secs := int64(e.Remaining.Seconds())
	if e.Remaining > 0 && secs == 0 {
		secs = 1
	}
	return fmt.Sprintf("cooldown active: %d seconds remaining", secs)
}

func (e *CooldownErr) Unwrap() error { return ErrCooldownActive }

// CooldownError wraps ErrCooldownActive with the remaining wait.
func CooldownError(remaining time.Duration) error {
	return &CooldownErr{Remaining: remaining}
}
