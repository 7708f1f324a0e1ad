//go:build ebiten

package audio

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"coal-reveal/internal/sequence"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

type stream interface {
	io.ReadSeeker
	Length() int64
}

// Track is one decoded file bound to an ebiten audio player.
type Track struct {
	name   string
	player *audio.Player
	gain   gain
}

var _ sequence.Player = (*Track)(nil)

// Load decodes path (MP3, or WAV by extension) and prepares a paused player.
// A looping track wraps around at the end of the stream.
func Load(ctx *audio.Context, name, path string, loop bool) (*Track, error) {
	if path == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrNoSource)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: read: %w", name, err)
	}
	s, err := decode(ctx.SampleRate(), path, data)
	if err != nil {
		return nil, fmt.Errorf("%s: decode %s: %w", name, filepath.Base(path), err)
	}
	var src io.Reader = s
	if loop {
		src = audio.NewInfiniteLoop(s, s.Length())
	}
	p, err := ctx.NewPlayer(src)
	if err != nil {
		return nil, fmt.Errorf("%s: player: %w", name, err)
	}
	t := &Track{name: name, player: p, gain: gain{volume: 1}}
	t.apply()
	return t, nil
}

func decode(sampleRate int, path string, data []byte) (stream, error) {
	r := bytes.NewReader(data)
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		return wav.DecodeWithSampleRate(sampleRate, r)
	}
	return mp3.DecodeWithSampleRate(sampleRate, r)
}

// Seek moves the playhead to offset.
func (t *Track) Seek(offset time.Duration) error {
	if err := t.player.SetPosition(offset); err != nil {
		return fmt.Errorf("%s: seek: %w", t.name, err)
	}
	return nil
}

// Play starts or resumes playback.
func (t *Track) Play() error {
	t.player.Play()
	return nil
}

// Pause stops playback without rewinding.
func (t *Track) Pause() { t.player.Pause() }

// SetVolume sets the fade volume in [0, 1].
func (t *Track) SetVolume(v float64) {
	t.gain.setVolume(v)
	t.apply()
}

// SetMuted silences the track without losing its volume.
func (t *Track) SetMuted(muted bool) {
	t.gain.muted = muted
	t.apply()
}

// Close releases the player.
func (t *Track) Close() error { return t.player.Close() }

func (t *Track) apply() { t.player.SetVolume(t.gain.effective()) }

// Deck owns the audio context and both channel players.
type Deck struct {
	Ambient   sequence.Player
	Secondary sequence.Player

	tracks []*Track
}

// NewDeck loads both tracks. A track that cannot be loaded is logged and
// replaced by a silent player; the sequencer then reports its playback
// failure once when the channel is due.
func NewDeck(cfg Config, logger *log.Logger) *Deck {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(cfg.SampleRate)
	}
	d := &Deck{}
	d.Ambient = d.open(ctx, logger, sequence.Ambient.String(), cfg.Ambient, true)
	d.Secondary = d.open(ctx, logger, sequence.Secondary.String(), cfg.Secondary, false)
	return d
}

func (d *Deck) open(ctx *audio.Context, logger *log.Logger, name, path string, loop bool) sequence.Player {
	t, err := Load(ctx, name, path, loop)
	if err != nil {
		if path != "" {
			logger.Printf("audio: %v", err)
		}
		return NewSilent(name)
	}
	d.tracks = append(d.tracks, t)
	return t
}

// Close releases every loaded track.
func (d *Deck) Close() error {
	var first error
	for _, t := range d.tracks {
		if err := t.Close(); err != nil && first == nil {
			first = err
		}
	}
	d.tracks = nil
	return first
}
