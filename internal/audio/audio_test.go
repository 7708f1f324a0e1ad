package audio

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"coal-reveal/internal/core"
	"coal-reveal/internal/sequence"
)

func TestGainMuteKeepsVolume(t *testing.T) {
	g := gain{volume: 1}
	g.setVolume(0.4)
	g.muted = true
	if g.effective() != 0 {
		t.Fatalf("muted gain = %v", g.effective())
	}
	g.setVolume(0.6)
	g.muted = false
	if g.effective() != 0.6 {
		t.Fatalf("unmuted gain = %v, want 0.6", g.effective())
	}
	for _, c := range []struct{ in, want float64 }{{-1, 0}, {2, 1}} {
		g.setVolume(c.in)
		if g.volume != c.want {
			t.Fatalf("setVolume(%v) = %v", c.in, g.volume)
		}
	}
}

func TestSilentPlayer(t *testing.T) {
	s := NewSilent("ambient")
	if err := s.Play(); !errors.Is(err, ErrNoSource) {
		t.Fatalf("Play error = %v", err)
	}
	if err := s.Seek(37 * time.Second); err != nil || s.Position() != 37*time.Second {
		t.Fatalf("seek: %v, %v", err, s.Position())
	}
	s.SetVolume(0.5)
	s.SetMuted(true)
	if s.Volume() != 0 {
		t.Fatal("muted silent player reports volume")
	}
}

func TestSilentDeckDrivesSequencer(t *testing.T) {
	var buf bytes.Buffer
	d := &Deck{Ambient: NewSilent("ambient"), Secondary: NewSilent("secondary")}
	start := time.Unix(0, 0)
	clock := core.NewManualClock(start)
	seq := sequence.New(clock, sequence.DefaultTimings(), d.Ambient, d.Secondary)
	seq.SetLogger(log.New(&buf, "", 0))
	seq.Start()
	for clock.Now().Before(start.Add(30 * time.Second)) {
		clock.Advance(50 * time.Millisecond)
		seq.Update()
	}
	if seq.State().Phase != sequence.Settled {
		t.Fatalf("phase = %v", seq.State().Phase)
	}
	out := buf.String()
	for _, want := range []string{"ambient playback failed: no audio source", "secondary playback failed: no audio source"} {
		if strings.Count(out, want) != 1 {
			t.Fatalf("log %q should contain %q once", out, want)
		}
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
