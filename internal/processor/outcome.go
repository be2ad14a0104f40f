package processor

import (
	"math/rand/v2"
	"time"
)

// Outcome decides whether a simulated processor call succeeds.
type Outcome interface {
	Succeeds(rate float64) bool
}

type RandomOutcome struct{}

func (RandomOutcome) Succeeds(rate float64) bool {
	return rand.Float64() < rate
}

// FixedOutcome always answers with its own value.
type FixedOutcome bool

func (f FixedOutcome) Succeeds(float64) bool {
	return bool(f)
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
