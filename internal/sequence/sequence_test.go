package sequence

import (
	"bytes"
	"errors"
	"log"
	"math"
	"strings"
	"testing"
	"time"

	"coal-reveal/internal/core"
)

var epoch = time.Date(2024, 12, 24, 20, 0, 0, 0, time.UTC)

// startedAt returns a state whose timeline began at epoch (gesture at epoch-1s).
func startedAt(t Timings) State {
	return NewState().Start(t, epoch.Add(-t.StartDelay))
}

func at(ms int) time.Time { return epoch.Add(time.Duration(ms) * time.Millisecond) }

func TestEaseBoundariesAndMonotonic(t *testing.T) {
	if Ease(0) != 0 {
		t.Fatalf("Ease(0) = %v", Ease(0))
	}
	if Ease(1) != 1 {
		t.Fatalf("Ease(1) = %v", Ease(1))
	}
	if math.Abs(Ease(0.5)-0.5) > 1e-12 {
		t.Fatalf("Ease(0.5) = %v", Ease(0.5))
	}
	prev := 0.0
	for i := 0; i <= 1000; i++ {
		v := Ease(float64(i) / 1000)
		if v < prev {
			t.Fatalf("Ease decreased at step %d: %v < %v", i, v, prev)
		}
		prev = v
	}
	if Ease(-1) != 0 || Ease(2) != 1 {
		t.Fatal("Ease must clamp its input")
	}
}

func TestDerivedScalars(t *testing.T) {
	for i := 0; i <= 100; i++ {
		light := float64(i) / 100
		h, s := HaloVisibility(light), SpotlightFactor(light)
		if h < 0 || s < 0 {
			t.Fatalf("negative scalar at light %v: halo %v spot %v", light, h, s)
		}
		if light < 1 && (h >= 1 || s >= 1) {
			t.Fatalf("scalar reached max early at light %v: halo %v spot %v", light, h, s)
		}
	}
	if HaloVisibility(1) != 1 || SpotlightFactor(1) != 1 {
		t.Fatal("scalars must reach 1 at full light")
	}
	if HaloVisibility(0.3) != 0 || SpotlightFactor(0.75) != 0 {
		t.Fatal("onset thresholds wrong")
	}
}

func TestIdleIgnoresTicks(t *testing.T) {
	s, ev := NewState().Tick(DefaultTimings(), at(50000))
	if s.Phase != Idle || s.Light != 0 || len(ev) != 0 {
		t.Fatalf("idle state changed: %+v %v", s, ev)
	}
}

func TestWaitingHoldsUntilTimelineStart(t *testing.T) {
	tm := DefaultTimings()
	s := NewState().Start(tm, epoch)
	if s.Phase != Waiting {
		t.Fatalf("phase = %v, want waiting", s.Phase)
	}
	s, _ = s.Tick(tm, epoch.Add(999*time.Millisecond))
	if s.Phase != Waiting || s.Elapsed != 0 {
		t.Fatalf("left waiting early: %v elapsed %v", s.Phase, s.Elapsed)
	}
	s, _ = s.Tick(tm, epoch.Add(time.Second))
	if s.Phase != Dark || s.Elapsed != 0 {
		t.Fatalf("phase = %v elapsed %v, want dark at 0", s.Phase, s.Elapsed)
	}
	if again := s.Start(tm, epoch.Add(5*time.Second)); again.StartedAt != s.StartedAt {
		t.Fatal("second start gesture restarted the timeline")
	}
}

func TestScenarioTimelineStart(t *testing.T) {
	tm := DefaultTimings()
	s, _ := startedAt(tm).Tick(tm, at(0))
	if s.Light != 0 {
		t.Fatalf("light at 0ms = %v", s.Light)
	}
	if s.Ambient.Started || s.Ambient.Playing || s.Secondary.Started || s.Secondary.Playing {
		t.Fatal("audio running at timeline start")
	}
}

func TestScenarioDarkBoundary(t *testing.T) {
	tm := DefaultTimings()
	s, _ := startedAt(tm).Tick(tm, at(2999))
	if s.Phase != Dark || s.Light != 0 || s.Ambient.Started {
		t.Fatalf("before boundary: %v light %v ambient %v", s.Phase, s.Light, s.Ambient.Started)
	}
	s, ev := s.Tick(tm, at(3000))
	if s.Phase != Reveal || s.Light != 0 {
		t.Fatalf("at boundary: %v light %v", s.Phase, s.Light)
	}
	if !s.Ambient.Started || !s.Ambient.Playing || s.Ambient.Volume != 0 || s.Ambient.Offset != 0 {
		t.Fatalf("ambient at boundary: %+v", s.Ambient)
	}
	if !hasEvent(ev, EventChannelStart, Ambient) || !hasEvent(ev, EventRevealBegan, Ambient) {
		t.Fatalf("missing boundary events: %v", ev)
	}
	s, _ = s.Tick(tm, at(3100))
	if s.Light <= 0 {
		t.Fatal("light did not start increasing after the dark phase")
	}
}

func TestScenarioSecondaryStart(t *testing.T) {
	tm := DefaultTimings()
	s, _ := startedAt(tm).Tick(tm, at(9999))
	if s.Secondary.Started {
		t.Fatal("secondary started early")
	}
	s, ev := s.Tick(tm, at(10000))
	if !hasEvent(ev, EventChannelStart, Secondary) {
		t.Fatalf("no secondary start event: %v", ev)
	}
	s, ev = s.Tick(tm, at(13000))
	if hasEvent(ev, EventChannelStart, Secondary) {
		t.Fatal("secondary started twice")
	}
	if !s.Secondary.Started || s.Secondary.Offset != 37*time.Second || s.Secondary.Volume != 0 {
		t.Fatalf("secondary at 13s: %+v", s.Secondary)
	}
}

func TestSecondaryFade(t *testing.T) {
	tm := DefaultTimings()
	cases := []struct {
		ms   int
		want float64
	}{
		{14999, 0},
		{15000, 0},
		{16500, 0.4},
		{18000, 0.8},
		{25000, 0.8},
	}
	s := startedAt(tm)
	for _, c := range cases {
		s, _ = s.Tick(tm, at(c.ms))
		if math.Abs(s.Secondary.Volume-c.want) > 1e-9 {
			t.Fatalf("secondary volume at %dms = %v, want %v", c.ms, s.Secondary.Volume, c.want)
		}
	}
}

func TestAmbientFade(t *testing.T) {
	tm := DefaultTimings()
	s := startedAt(tm)
	for _, c := range []struct {
		ms   int
		want float64
	}{{3000, 0}, {15000, 0.5}, {27000, 1}} {
		s, _ = s.Tick(tm, at(c.ms))
		if math.Abs(s.Ambient.Volume-c.want) > 1e-9 {
			t.Fatalf("ambient volume at %dms = %v, want %v", c.ms, s.Ambient.Volume, c.want)
		}
	}
}

func TestScenarioSettled(t *testing.T) {
	tm := DefaultTimings()
	s, _ := startedAt(tm).Tick(tm, at(15000))
	if math.Abs(s.Light-0.5) > 1e-9 {
		t.Fatalf("light at reveal midpoint = %v, want 0.5", s.Light)
	}
	s, ev := s.Tick(tm, at(27000))
	if s.Phase != Settled || s.Light != 1 || !hasEvent(ev, EventSettled, Ambient) {
		t.Fatalf("at 27s: %v light %v events %v", s.Phase, s.Light, ev)
	}
	later, ev := s.Tick(tm, at(90000))
	if later.Light != 1 || later.Phase != Settled || len(ev) != 0 {
		t.Fatalf("settled state changed: %+v %v", later, ev)
	}
}

func TestLightMonotonicOverTimeline(t *testing.T) {
	tm := DefaultTimings()
	s := startedAt(tm)
	prev := 0.0
	for ms := 0; ms <= 30000; ms += 16 {
		s, _ = s.Tick(tm, at(ms))
		if s.Light < prev {
			t.Fatalf("light decreased at %dms", ms)
		}
		prev = s.Light
	}
}

func TestTickIgnoresClockGoingBackwards(t *testing.T) {
	tm := DefaultTimings()
	s, _ := startedAt(tm).Tick(tm, at(20000))
	back, _ := s.Tick(tm, at(5000))
	if back.Light < s.Light || back.Elapsed != s.Elapsed {
		t.Fatalf("state rewound: %v -> %v", s.Light, back.Light)
	}
}

func TestMuteRevealAndToggle(t *testing.T) {
	tm := DefaultTimings()
	s := NewState().Start(tm, epoch)
	if s.ToggleMute().Muted {
		t.Fatal("mute toggled before the control was visible")
	}
	s, ev := s.Tick(tm, epoch.Add(3999*time.Millisecond))
	if s.MuteVisible || len(ev) != 0 {
		t.Fatal("mute revealed early")
	}
	s, ev = s.Tick(tm, epoch.Add(4000*time.Millisecond))
	if !s.MuteVisible || !hasEvent(ev, EventMuteRevealed, Ambient) {
		t.Fatal("mute not revealed at 4s")
	}
	before := s
	s = s.ToggleMute()
	if !s.Muted || !s.Ambient.Muted || !s.Secondary.Muted {
		t.Fatal("toggle did not mute both channels")
	}
	if s.Ambient.Volume != before.Ambient.Volume {
		t.Fatal("mute changed the volume ramp")
	}
	if s.ToggleMute().Muted {
		t.Fatal("second toggle did not unmute")
	}
}

func TestTeardownFromEveryPhase(t *testing.T) {
	tm := DefaultTimings()
	for _, ms := range []int{-1, -500, 0, 2000, 3000, 12000, 16000, 40000} {
		var s State
		if ms == -1 {
			s = NewState()
		} else {
			s, _ = startedAt(tm).Tick(tm, at(ms))
		}
		down := s.Teardown()
		if down.Phase != TornDown {
			t.Fatalf("%dms: phase %v", ms, down.Phase)
		}
		for _, c := range []Channel{down.Ambient, down.Secondary} {
			if c.Playing || c.Started || c.Offset != 0 || c.Volume != 1 {
				t.Fatalf("%dms: channel not reset: %+v", ms, c)
			}
		}
		if again := down.Teardown(); again != down {
			t.Fatalf("%dms: teardown not idempotent", ms)
		}
		after, ev := down.Tick(tm, at(ms+60000))
		if after != down || len(ev) != 0 {
			t.Fatalf("%dms: tick mutated torn-down state", ms)
		}
		if down.ToggleMute() != down || down.Start(tm, at(0)) != down {
			t.Fatalf("%dms: torn-down state accepted input", ms)
		}
	}
}

type call struct {
	op  string
	arg float64
}

type fakePlayer struct {
	calls   []call
	playErr error
	muted   bool
	volume  float64
}

func (p *fakePlayer) Seek(offset time.Duration) error {
	p.calls = append(p.calls, call{"seek", offset.Seconds()})
	return nil
}

func (p *fakePlayer) Play() error {
	p.calls = append(p.calls, call{"play", 0})
	return p.playErr
}

func (p *fakePlayer) Pause() { p.calls = append(p.calls, call{"pause", 0}) }

func (p *fakePlayer) SetVolume(v float64) {
	p.volume = v
	p.calls = append(p.calls, call{"volume", v})
}

func (p *fakePlayer) SetMuted(m bool) {
	p.muted = m
	p.calls = append(p.calls, call{"muted", 0})
}

func (p *fakePlayer) count(op string) int {
	n := 0
	for _, c := range p.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func newTestSequencer(t *testing.T) (*Sequencer, *core.ManualClock, *fakePlayer, *fakePlayer, *bytes.Buffer) {
	t.Helper()
	clock := core.NewManualClock(epoch)
	amb, sec := &fakePlayer{}, &fakePlayer{}
	seq := New(clock, DefaultTimings(), amb, sec)
	var buf bytes.Buffer
	seq.SetLogger(log.New(&buf, "", 0))
	return seq, clock, amb, sec, &buf
}

func runFrames(seq *Sequencer, clock *core.ManualClock, until time.Duration) Frame {
	var f Frame
	for clock.Now().Before(epoch.Add(until)) {
		clock.Advance(16 * time.Millisecond)
		f = seq.Update()
	}
	return f
}

func TestSequencerDrivesPlayers(t *testing.T) {
	seq, clock, amb, sec, logs := newTestSequencer(t)
	seq.Start()
	runFrames(seq, clock, 4100*time.Millisecond)
	if amb.count("play") != 1 {
		t.Fatalf("ambient play calls = %d", amb.count("play"))
	}
	if amb.calls[0] != (call{"seek", 0}) {
		t.Fatalf("ambient first call = %+v", amb.calls[0])
	}
	if sec.count("play") != 0 {
		t.Fatal("secondary started before its delay")
	}
	runFrames(seq, clock, 11100*time.Millisecond)
	if sec.count("play") != 1 || sec.calls[0] != (call{"seek", 37}) {
		t.Fatalf("secondary calls = %+v", sec.calls)
	}
	f := runFrames(seq, clock, 29*time.Second)
	if f.State.Phase != Settled || f.Scalars.Light != 1 || f.Scalars.Halo != 1 || f.Scalars.Spot != 1 {
		t.Fatalf("final frame = %+v", f.Scalars)
	}
	if math.Abs(amb.volume-1) > 1e-9 || math.Abs(sec.volume-0.8) > 1e-9 {
		t.Fatalf("final volumes ambient %v secondary %v", amb.volume, sec.volume)
	}
	if !strings.Contains(logs.String(), "audio: ambient playing") {
		t.Fatalf("missing playback log: %q", logs.String())
	}
}

func TestSequencerPlaybackFailureIsNotRetried(t *testing.T) {
	seq, clock, amb, _, logs := newTestSequencer(t)
	amb.playErr = errors.New("autoplay blocked")
	seq.Start()
	f := runFrames(seq, clock, 20*time.Second)
	if amb.count("play") != 1 {
		t.Fatalf("play attempted %d times", amb.count("play"))
	}
	if !seq.Failed(Ambient) {
		t.Fatal("failure not recorded")
	}
	if !strings.Contains(logs.String(), "ambient playback failed: autoplay blocked") {
		t.Fatalf("failure not logged: %q", logs.String())
	}
	if f.Scalars.Light <= 0 {
		t.Fatal("visual timeline stalled after audio failure")
	}
}

func TestSequencerMuteToggle(t *testing.T) {
	seq, clock, amb, sec, _ := newTestSequencer(t)
	seq.Start()
	if seq.ToggleMute() {
		t.Fatal("toggle accepted before reveal")
	}
	runFrames(seq, clock, 4100*time.Millisecond)
	if !seq.ToggleMute() {
		t.Fatal("toggle rejected after reveal")
	}
	if !amb.muted || !sec.muted {
		t.Fatal("players not muted")
	}
	runFrames(seq, clock, 11*time.Second)
	if !sec.muted {
		t.Fatal("secondary started unmuted while muted")
	}
}

func TestSequencerTeardownStopsEverything(t *testing.T) {
	for _, stop := range []time.Duration{0, 500 * time.Millisecond, 2 * time.Second, 12 * time.Second, 30 * time.Second} {
		seq, clock, amb, sec, _ := newTestSequencer(t)
		seq.Start()
		runFrames(seq, clock, stop)
		seq.Teardown()
		for _, p := range []*fakePlayer{amb, sec} {
			n := len(p.calls)
			if n < 3 {
				t.Fatalf("stop %v: teardown calls missing: %+v", stop, p.calls)
			}
			tail := p.calls[n-3:]
			if tail[0].op != "pause" || tail[1] != (call{"seek", 0}) || tail[2] != (call{"volume", 1}) {
				t.Fatalf("stop %v: teardown sequence = %+v", stop, tail)
			}
		}
		snapshot := seq.State()
		ambCalls, secCalls := len(amb.calls), len(sec.calls)
		runFrames(seq, clock, stop+40*time.Second)
		seq.Teardown()
		seq.ToggleMute()
		if seq.State() != snapshot {
			t.Fatalf("stop %v: state mutated after teardown", stop)
		}
		if len(amb.calls) != ambCalls || len(sec.calls) != secCalls {
			t.Fatalf("stop %v: players touched after teardown", stop)
		}
	}
}

func TestSequencerNilPlayers(t *testing.T) {
	clock := core.NewManualClock(epoch)
	seq := New(clock, DefaultTimings(), nil, nil)
	seq.Start()
	f := runFrames(seq, clock, 20*time.Second)
	if !f.State.Ambient.Started || !f.State.Secondary.Started {
		t.Fatal("channel state must be tracked without players")
	}
	seq.Teardown()
}

func TestSequencerParameters(t *testing.T) {
	seq, clock, _, _, _ := newTestSequencer(t)
	seq.Start()
	runFrames(seq, clock, 16*time.Second)
	snap := seq.Parameters()
	p, ok := snap.Lookup("phase")
	if !ok || p.Value != "reveal" {
		t.Fatalf("phase parameter = %+v", p)
	}
	if _, ok := snap.Lookup("ambient_volume"); !ok {
		t.Fatal("missing ambient volume")
	}
}

func hasEvent(events []Event, kind EventKind, ch ChannelID) bool {
	for _, e := range events {
		if e.Kind != kind {
			continue
		}
		if kind != EventChannelStart || e.Channel == ch {
			return true
		}
	}
	return false
}
