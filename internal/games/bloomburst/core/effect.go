package core

import (
	"fmt"
	"time"
)

// TimeBase is the unit an effect's duration is measured in.
type TimeBase uint8

const (
	TimeBaseTurns TimeBase = iota
	TimeBaseSeconds
)

// String returns the string representation of a time base.
func (b TimeBase) String() string {
	switch b {
	case TimeBaseTurns:
		return "turns"
	case TimeBaseSeconds:
		return "seconds"
	default:
		return "unknown"
	}
}

// EffectFunc applies or reverts an effect of the given magnitude.
type EffectFunc func(magnitude float64)

// Effect is a timed modifier. It is inert until activated, counts down from
// the first tick after activation and reverts itself once when time runs out.
type Effect struct {
	Name        string
	Description string
	Magnitude   float64

	base      TimeBase
	duration  float64
	remaining float64
	apply     EffectFunc
	revert    EffectFunc
}

// NewEffect creates an inert effect. duration is in units of base.
// Nil apply or revert functions are treated as no-ops.
func NewEffect(name string, magnitude, duration float64, base TimeBase, apply, revert EffectFunc) *Effect {
	if apply == nil {
		apply = func(float64) {}
	}
	if revert == nil {
		revert = func(float64) {}
	}
	return &Effect{
		Name:      name,
		Magnitude: magnitude,
		base:      base,
		duration:  duration,
		apply:     apply,
		revert:    revert,
	}
}

// Base returns the effect's time base.
func (e *Effect) Base() TimeBase { return e.base }

// Duration returns the total duration in base units.
func (e *Effect) Duration() float64 { return e.duration }

// Remaining returns the time left in base units; 0 means inactive.
func (e *Effect) Remaining() float64 { return e.remaining }

// Active reports whether the effect is running.
func (e *Effect) Active() bool { return e.remaining > 0 }

// Activate starts the effect and applies it once.
func (e *Effect) Activate() error {
	if e.Active() {
		return fmt.Errorf("%s: %w", e.Name, ErrAlreadyActive)
	}
	if e.duration <= 0 {
		// Instant effect: apply and revert in one step.
		e.apply(e.Magnitude)
		e.revert(e.Magnitude)
		return nil
	}
	e.remaining = e.duration
	e.apply(e.Magnitude)
	return nil
}

// Tick consumes one turn. Returns true if the effect expired on this tick.
func (e *Effect) Tick() (bool, error) {
	if e.base != TimeBaseTurns {
		return false, fmt.Errorf("%s tick: %w", e.Name, ErrTimeBaseMismatch)
	}
	return e.consume(1), nil
}

// Elapse consumes wall-clock time. Returns true if the effect expired.
func (e *Effect) Elapse(d time.Duration) (bool, error) {
	if e.base != TimeBaseSeconds {
		return false, fmt.Errorf("%s elapse: %w", e.Name, ErrTimeBaseMismatch)
	}
	return e.consume(d.Seconds()), nil
}

func (e *Effect) consume(units float64) bool {
	if !e.Active() || units <= 0 {
		return false
	}
	e.remaining -= units
	if e.remaining > 0 {
		return false
	}
	e.remaining = 0
	e.revert(e.Magnitude)
	return true
}

// Deactivate cancels a running effect and reverts it immediately.
func (e *Effect) Deactivate() error {
	if !e.Active() {
		return fmt.Errorf("%s: %w", e.Name, ErrNotActive)
	}
	e.remaining = 0
	e.revert(e.Magnitude)
	return nil
}

// restore sets the remaining time without applying anything. The caller is
// responsible for the applied state already being in place.
func (e *Effect) restore(remaining float64) {
	if remaining < 0 {
		remaining = 0
	}
	e.remaining = remaining
}
