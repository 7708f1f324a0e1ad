package sequence

import "time"

// ChannelID names one of the two audio channels.
type ChannelID int

const (
	// Ambient is the looping music bed.
	Ambient ChannelID = iota
	// Secondary is the one-shot track that joins later.
	Secondary
)

func (c ChannelID) String() string {
	switch c {
	case Ambient:
		return "ambient"
	case Secondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// Channel is the sequencer's view of one audio channel.
type Channel struct {
	Started   bool
	StartedAt time.Time
	Playing   bool
	// Offset is the source position playback starts from.
	Offset time.Duration
	Volume float64
	Muted  bool
}

// restingChannel is the state of an untouched or torn-down channel: paused,
// rewound, full volume.
func restingChannel(muted bool) Channel {
	return Channel{Volume: 1, Muted: muted}
}

// EventKind enumerates the one-shot transitions reported by Tick.
type EventKind int

const (
	// EventChannelStart asks the audio layer to begin playback of a channel.
	EventChannelStart EventKind = iota
	// EventMuteRevealed makes the mute control visible.
	EventMuteRevealed
	// EventRevealBegan marks the end of the dark phase.
	EventRevealBegan
	// EventSettled marks the end of the reveal.
	EventSettled
)

// Event is a transition that happened during a Tick.
type Event struct {
	Kind    EventKind
	Channel ChannelID
	Offset  time.Duration
}

// State is an immutable snapshot of the sequencer.
type State struct {
	Phase Phase

	// StartedAt is the instant of the start gesture.
	StartedAt time.Time
	// TimelineStart is StartedAt plus the start delay.
	TimelineStart time.Time
	// Elapsed is measured from TimelineStart and is zero before it.
	Elapsed time.Duration

	Light       float64
	MuteVisible bool
	Muted       bool

	Ambient   Channel
	Secondary Channel
}

// NewState returns the Idle state.
func NewState() State {
	return State{
		Phase:     Idle,
		Ambient:   restingChannel(false),
		Secondary: restingChannel(false),
	}
}

// Channel returns the state of the given channel.
func (s State) Channel(id ChannelID) Channel {
	if id == Secondary {
		return s.Secondary
	}
	return s.Ambient
}

// Scalars derives the render scalars for this state.
func (s State) Scalars() Scalars {
	return ScalarsFor(s.Light, s.Phase.Active())
}

// Start moves Idle to Waiting. Any other phase is returned unchanged.
func (s State) Start(t Timings, now time.Time) State {
	if s.Phase != Idle {
		return s
	}
	s.Phase = Waiting
	s.StartedAt = now
	s.TimelineStart = now.Add(t.StartDelay)
	s.Elapsed = 0
	s.Light = 0
	return s
}

// Tick advances the state to now and reports the transitions that happened.
// It never moves time backwards: an instant earlier than the last tick is
// treated as the last tick.
func (s State) Tick(t Timings, now time.Time) (State, []Event) {
	if !s.Phase.Active() {
		return s, nil
	}
	var events []Event

	if !s.MuteVisible && !now.Before(s.StartedAt.Add(t.MuteRevealDelay)) {
		s.MuteVisible = true
		events = append(events, Event{Kind: EventMuteRevealed})
	}

	if s.Phase == Settled {
		return s, events
	}
	if now.Before(s.TimelineStart) {
		return s, events
	}

	elapsed := now.Sub(s.TimelineStart)
	if elapsed < s.Elapsed {
		elapsed = s.Elapsed
	}
	s.Elapsed = elapsed

	// Audio first starts, then ramps.
	if !s.Ambient.Started && elapsed >= t.AmbientDelay {
		s.Ambient = startChannel(s.Ambient, s.TimelineStart.Add(t.AmbientDelay), 0)
		events = append(events, Event{Kind: EventChannelStart, Channel: Ambient})
	}
	if !s.Secondary.Started && elapsed >= t.SecondaryDelay {
		s.Secondary = startChannel(s.Secondary, s.TimelineStart.Add(t.SecondaryDelay), t.SecondaryOffset)
		events = append(events, Event{Kind: EventChannelStart, Channel: Secondary, Offset: t.SecondaryOffset})
	}
	if s.Ambient.Started {
		s.Ambient.Volume = ratio(elapsed-t.AmbientDelay, t.AmbientFade)
	}
	if s.Secondary.Started {
		since := elapsed - t.SecondaryDelay
		if since >= t.SecondaryFadeStart {
			s.Secondary.Volume = ratio(since-t.SecondaryFadeStart, t.SecondaryFadeDuration) * t.SecondaryMaxVolume
		}
	}

	if elapsed < t.DarkDuration {
		s.Phase = Dark
		s.Light = 0
		return s, events
	}
	if s.Phase != Reveal {
		events = append(events, Event{Kind: EventRevealBegan})
	}
	progress := ratio(elapsed-t.DarkDuration, t.RevealDuration)
	s.Light = Ease(progress)
	s.Phase = Reveal
	if progress >= 1 {
		s.Light = 1
		s.Phase = Settled
		events = append(events, Event{Kind: EventSettled})
	}
	return s, events
}

// ToggleMute flips the muted flag on both channels. It only has an effect
// while the mute control is visible.
func (s State) ToggleMute() State {
	if !s.Phase.Active() || !s.MuteVisible {
		return s
	}
	s.Muted = !s.Muted
	s.Ambient.Muted = s.Muted
	s.Secondary.Muted = s.Muted
	return s
}

// Teardown ends the sequence from any phase. Both channels are paused,
// rewound and returned to full volume. Tearing down twice is a no-op.
func (s State) Teardown() State {
	if s.Phase == TornDown {
		return s
	}
	s.Phase = TornDown
	s.Light = 0
	s.MuteVisible = false
	s.Ambient = restingChannel(s.Muted)
	s.Secondary = restingChannel(s.Muted)
	return s
}

func startChannel(c Channel, at time.Time, offset time.Duration) Channel {
	c.Started = true
	c.StartedAt = at
	c.Playing = true
	c.Offset = offset
	c.Volume = 0
	return c
}
