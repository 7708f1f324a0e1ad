// Package audio plays the two reveal tracks through ebiten's audio context.
// Tracks implement sequence.Player; a channel without a usable source is
// represented by Silent so the sequence runs the same with or without sound.
package audio

import (
	"errors"
	"math"
	"time"

	"coal-reveal/internal/sequence"
)

// ErrNoSource is returned by players that have nothing to play.
var ErrNoSource = errors.New("no audio source")

// DefaultSampleRate is the output rate of the audio context.
const DefaultSampleRate = 44100

// Config names the track files. An empty path leaves that channel silent.
type Config struct {
	Ambient    string
	Secondary  string
	SampleRate int
}

// DefaultConfig returns the bundled track locations.
func DefaultConfig() Config {
	return Config{
		Ambient:    "audio/ambient.mp3",
		Secondary:  "audio/secondary.mp3",
		SampleRate: DefaultSampleRate,
	}
}

// gain keeps the requested volume apart from the mute flag, so unmuting
// lands on the current point of the fade.
type gain struct {
	volume float64
	muted  bool
}

func (g gain) effective() float64 {
	if g.muted {
		return 0
	}
	return g.volume
}

func (g *gain) setVolume(v float64) {
	switch {
	case v < 0 || math.IsNaN(v):
		v = 0
	case v > 1:
		v = 1
	}
	g.volume = v
}

// Silent is a player without a source. Play reports ErrNoSource; everything
// else only tracks state.
type Silent struct {
	Name string

	gain     gain
	position time.Duration
}

var _ sequence.Player = (*Silent)(nil)

// NewSilent returns a silent player at full volume.
func NewSilent(name string) *Silent {
	return &Silent{Name: name, gain: gain{volume: 1}}
}

// Seek records the position.
func (s *Silent) Seek(offset time.Duration) error {
	s.position = offset
	return nil
}

// Play always fails.
func (s *Silent) Play() error { return ErrNoSource }

// Pause is a no-op.
func (s *Silent) Pause() {}

// SetVolume records the volume.
func (s *Silent) SetVolume(v float64) { s.gain.setVolume(v) }

// SetMuted records the mute flag.
func (s *Silent) SetMuted(muted bool) { s.gain.muted = muted }

// Volume returns the effective volume.
func (s *Silent) Volume() float64 { return s.gain.effective() }

// Position returns the last seek offset.
func (s *Silent) Position() time.Duration { return s.position }
