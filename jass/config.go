package jass

import (
	"fmt"
	"time"
)

// Config tunes a match. Zero values are filled in by DefaultConfig, a
// hand-built Config must pass validate.
type Config struct {
	// TargetScore ends a Schieber match once a team reaches it.
	TargetScore int

	// Rounds is the fixed round count of a Differenzler match.
	Rounds int

	// AllowUnderTrump permits laying a trump below a trump already
	// winning the trick even while holding other playable cards.
	AllowUnderTrump bool

	// TrickPause is the delay after each completed trick, so clients
	// can show the result before it is cleared.
	TrickPause time.Duration

	// Seed fixes the shuffle RNG, 0 seeds from the clock.
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		TargetScore: 1000,
		Rounds:      4,
		TrickPause:  1500 * time.Millisecond,
	}
}

func (c Config) validate() error {
	if c.TargetScore <= 0 {
		return fmt.Errorf("target score must be positive, got %d", c.TargetScore)
	}
	if c.Rounds <= 0 {
		return fmt.Errorf("round count must be positive, got %d", c.Rounds)
	}
	if c.TrickPause < 0 {
		return fmt.Errorf("trick pause must not be negative, got %v", c.TrickPause)
	}
	return nil
}
