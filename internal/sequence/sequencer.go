package sequence

import (
	"fmt"
	"log"
	"time"

	"coal-reveal/internal/core"
)

// Player is the audio collaborator for one channel. Play may fail (missing
// device, undecodable source); the sequencer logs the failure and carries on.
type Player interface {
	Seek(offset time.Duration) error
	Play() error
	Pause()
	SetVolume(v float64)
	SetMuted(muted bool)
}

// Frame is what one Update produced.
type Frame struct {
	State   State
	Scalars Scalars
	Events  []Event
}

// Sequencer owns the reveal state and the two audio channels. It is driven
// from a single frame loop and is not safe for concurrent use.
type Sequencer struct {
	timings Timings
	clock   core.Clock
	logger  *log.Logger

	state   State
	players [2]Player
	failed  [2]bool
}

// New constructs an Idle sequencer. Either player may be nil, in which case
// that channel is tracked but silent.
func New(clock core.Clock, timings Timings, ambient, secondary Player) *Sequencer {
	if clock == nil {
		clock = core.SystemClock()
	}
	return &Sequencer{
		timings: timings,
		clock:   clock,
		logger:  log.Default(),
		state:   NewState(),
		players: [2]Player{ambient, secondary},
	}
}

// SetLogger redirects failure logging.
func (s *Sequencer) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Timings returns the script the sequencer runs.
func (s *Sequencer) Timings() Timings { return s.timings }

// State returns the current snapshot.
func (s *Sequencer) State() State { return s.state }

// Start handles the start gesture.
func (s *Sequencer) Start() {
	s.state = s.state.Start(s.timings, s.clock.Now())
}

// Update advances the sequencer to the clock's current instant and pushes the
// resulting audio state to the players. After teardown it does nothing.
func (s *Sequencer) Update() Frame {
	prev := s.state
	next, events := prev.Tick(s.timings, s.clock.Now())
	s.state = next
	for _, ev := range events {
		if ev.Kind == EventChannelStart {
			s.startPlayer(ev.Channel, ev.Offset)
		}
	}
	if next.Phase.Active() {
		s.syncVolume(Ambient, prev.Ambient, next.Ambient)
		s.syncVolume(Secondary, prev.Secondary, next.Secondary)
	}
	return Frame{State: next, Scalars: next.Scalars(), Events: events}
}

// ToggleMute flips mute on both channels when the control is visible.
func (s *Sequencer) ToggleMute() bool {
	prev := s.state
	s.state = s.state.ToggleMute()
	if s.state.Muted == prev.Muted {
		return false
	}
	for _, p := range s.players {
		if p != nil {
			p.SetMuted(s.state.Muted)
		}
	}
	return true
}

// Teardown stops the sequence from any phase: both players are paused,
// rewound and set back to full volume. Calling it again is a no-op.
func (s *Sequencer) Teardown() {
	if s.state.Phase == TornDown {
		return
	}
	s.state = s.state.Teardown()
	for i, p := range s.players {
		if p == nil {
			continue
		}
		p.Pause()
		if err := p.Seek(0); err != nil {
			s.logger.Printf("audio: %s rewind failed: %v", ChannelID(i), err)
		}
		p.SetVolume(1)
	}
}

// Parameters exposes the live values to the debug HUD.
func (s *Sequencer) Parameters() core.ParameterSnapshot {
	st := s.state
	sc := st.Scalars()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Timeline",
			Params: []core.Parameter{
				core.StringParam("phase", "Phase", st.Phase.String()),
				core.StringParam("elapsed", "Elapsed", st.Elapsed.Truncate(10*time.Millisecond).String()),
				core.FloatParam("light", "Light", sc.Light),
				core.FloatParam("halo", "Halo", sc.Halo),
				core.FloatParam("spot", "Spot", sc.Spot),
			},
		},
		{
			Name: "Audio",
			Params: []core.Parameter{
				core.FloatParam("ambient_volume", "Ambient vol", st.Ambient.Volume),
				core.FloatParam("secondary_volume", "Secondary vol", st.Secondary.Volume),
				core.BoolParam("muted", "Muted", st.Muted),
			},
		},
	}}
}

func (s *Sequencer) startPlayer(id ChannelID, offset time.Duration) {
	p := s.players[id]
	if p == nil {
		return
	}
	if err := s.play(p, offset); err != nil {
		// Best effort: never retried, the visuals continue regardless.
		s.failed[id] = true
		s.logger.Printf("audio: %s playback failed: %v", id, err)
		return
	}
	s.logger.Printf("audio: %s playing", id)
}

func (s *Sequencer) play(p Player, offset time.Duration) error {
	if err := p.Seek(offset); err != nil {
		return fmt.Errorf("seek to %v: %w", offset, err)
	}
	p.SetVolume(0)
	p.SetMuted(s.state.Muted)
	return p.Play()
}

func (s *Sequencer) syncVolume(id ChannelID, prev, next Channel) {
	p := s.players[id]
	if p == nil || s.failed[id] || !next.Started {
		return
	}
	if prev.Started && prev.Volume == next.Volume {
		return
	}
	p.SetVolume(next.Volume)
}

// Failed reports whether a channel's playback could not be started.
func (s *Sequencer) Failed(id ChannelID) bool { return s.failed[id] }
