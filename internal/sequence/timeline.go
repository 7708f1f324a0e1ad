// Package sequence drives the reveal: a clock-driven state machine that turns
// elapsed time into a light intensity and two audio channel states.
//
// State is a plain value. Tick is a pure function of the previous state, the
// timings and the current instant, so the whole script can be replayed on a
// synthetic clock. Sequencer wraps it for the frame loop and forwards the
// audio side effects to players.
package sequence

import (
	"math"
	"time"
)

// Timings holds every delay and duration of the script.
type Timings struct {
	// StartDelay separates the start gesture from the timeline start.
	StartDelay time.Duration
	// DarkDuration is how long the light stays at zero after the timeline starts.
	DarkDuration time.Duration
	// RevealDuration is the length of the 0→1 light ramp.
	RevealDuration time.Duration

	// AmbientDelay is measured from the timeline start.
	AmbientDelay time.Duration
	// AmbientFade is the length of the ambient 0→1 volume ramp.
	AmbientFade time.Duration

	// SecondaryDelay is measured from the timeline start.
	SecondaryDelay time.Duration
	// SecondaryOffset is the source position playback begins from.
	SecondaryOffset time.Duration
	// SecondaryFadeStart is measured from the secondary track's own start.
	SecondaryFadeStart    time.Duration
	SecondaryFadeDuration time.Duration
	SecondaryMaxVolume    float64

	// MuteRevealDelay is measured from the start gesture.
	MuteRevealDelay time.Duration
}

// DefaultTimings returns the reference script.
func DefaultTimings() Timings {
	const reveal = 24000 * time.Millisecond
	return Timings{
		StartDelay:            1000 * time.Millisecond,
		DarkDuration:          3000 * time.Millisecond,
		RevealDuration:        reveal,
		AmbientDelay:          3000 * time.Millisecond,
		AmbientFade:           reveal,
		SecondaryDelay:        10000 * time.Millisecond,
		SecondaryOffset:       37 * time.Second,
		SecondaryFadeStart:    5000 * time.Millisecond,
		SecondaryFadeDuration: 3000 * time.Millisecond,
		SecondaryMaxVolume:    0.8,
		MuteRevealDelay:       4000 * time.Millisecond,
	}
}

// Total returns the timeline length from the timeline start to Settled.
func (t Timings) Total() time.Duration { return t.DarkDuration + t.RevealDuration }

// Phase enumerates the sequencer states.
type Phase int

const (
	// Idle waits for the start gesture.
	Idle Phase = iota
	// Waiting is the buffer between the gesture and the timeline start.
	Waiting
	// Dark holds the light at zero.
	Dark
	// Reveal ramps the light from zero to one.
	Reveal
	// Settled keeps the light at one.
	Settled
	// TornDown is entered from any phase on teardown and never left.
	TornDown
)

var phaseNames = [...]string{"idle", "waiting", "dark", "reveal", "settled", "torn-down"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Active reports whether the timeline has been started and not torn down.
func (p Phase) Active() bool { return p >= Waiting && p <= Settled }

// Ease maps reveal progress to light intensity: a quadratic ease-in joined at
// p = 0.5 to a cubic ease-out. Input is clamped to [0, 1].
func Ease(p float64) float64 {
	p = clamp01(p)
	if p < 0.5 {
		return 2 * p * p
	}
	return 1 - math.Pow(-2*p+2, 3)/2
}

// HaloVisibility delays the halo until the light passes 0.3.
func HaloVisibility(light float64) float64 {
	return onset(light, 0.3)
}

// SpotlightFactor delays the spotlights until the light passes 0.75.
func SpotlightFactor(light float64) float64 {
	return onset(light, 0.75)
}

func onset(light, threshold float64) float64 {
	if light >= 1 {
		return 1
	}
	return clamp01((light - threshold) / (1 - threshold))
}

// Scalars are the per-frame values the render layer reads.
type Scalars struct {
	Started bool
	Light   float64
	Halo    float64
	Spot    float64
}

// ScalarsFor derives the render scalars from a light intensity.
func ScalarsFor(light float64, started bool) Scalars {
	return Scalars{
		Started: started,
		Light:   light,
		Halo:    HaloVisibility(light),
		Spot:    SpotlightFactor(light),
	}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func ratio(num, den time.Duration) float64 {
	if den <= 0 {
		if num >= 0 {
			return 1
		}
		return 0
	}
	return clamp01(float64(num) / float64(den))
}
