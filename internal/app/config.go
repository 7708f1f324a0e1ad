package app

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"coal-reveal/internal/audio"
	"coal-reveal/internal/coal"
	"coal-reveal/internal/core"
	"coal-reveal/internal/sequence"
)

// Config represents the command-line parameters for the application.
type Config struct {
	// Seed selects the coal piece; 0 draws a random one.
	Seed   int64
	Scale  int
	Width  int
	Height int
	TPS    int

	Ambient   string
	Secondary string
	Muted     bool
	Debug     bool

	// TimeScale speeds up or slows down the whole script.
	TimeScale float64
	Overrides KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	a := audio.DefaultConfig()
	return &Config{
		Scale:     2,
		Width:     480,
		Height:    320,
		TPS:       60,
		Ambient:   a.Ambient,
		Secondary: a.Secondary,
		TimeScale: 1,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.Int64Var(&c.Seed, "seed", c.Seed, "coal piece seed (0 = random)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.Width, "width", c.Width, "render width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "render height in pixels")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.StringVar(&c.Ambient, "ambient", c.Ambient, "looping ambient track (mp3 or wav, empty for none)")
	fs.StringVar(&c.Secondary, "secondary", c.Secondary, "secondary track (mp3 or wav, empty for none)")
	fs.BoolVar(&c.Muted, "muted", c.Muted, "start with audio muted")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "show the debug HUD")
	fs.Float64Var(&c.TimeScale, "timescale", c.TimeScale, "script speed multiplier")
	fs.Var(&c.Overrides, "set", "coal parameter override in key=value form (repeatable)")
}

// Validate reports the first unusable value.
func (c *Config) Validate() error {
	switch {
	case c.Scale <= 0:
		return fmt.Errorf("scale must be positive, got %d", c.Scale)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("render size must be positive, got %dx%d", c.Width, c.Height)
	case c.TPS <= 0:
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	case c.TimeScale <= 0:
		return fmt.Errorf("timescale must be positive, got %v", c.TimeScale)
	}
	if _, err := c.Overrides.Map(); err != nil {
		return err
	}
	return nil
}

// RenderSize is the size of the rasterized frame.
func (c *Config) RenderSize() core.Size { return core.Size{W: c.Width, H: c.Height} }

// WindowSize is the size of the window and the logical screen.
func (c *Config) WindowSize() core.Size { return c.RenderSize().Scaled(c.Scale) }

// PieceConfig applies -set overrides to the default piece parameters.
func (c *Config) PieceConfig() coal.Config {
	m, _ := c.Overrides.Map()
	return coal.FromMap(m)
}

// Piece builds the configured coal piece.
func (c *Config) Piece() coal.Piece {
	seed := c.Seed
	if seed == 0 {
		seed = core.RandomSeed()
	}
	return coal.NewPieceWithConfig(c.PieceConfig(), seed)
}

// Timings returns the script stretched by TimeScale.
func (c *Config) Timings() sequence.Timings {
	t := sequence.DefaultTimings()
	if c.TimeScale <= 0 || c.TimeScale == 1 {
		return t
	}
	scale := func(d *time.Duration) { *d = time.Duration(float64(*d) / c.TimeScale) }
	for _, d := range []*time.Duration{
		&t.StartDelay, &t.DarkDuration, &t.RevealDuration,
		&t.AmbientDelay, &t.AmbientFade,
		&t.SecondaryDelay, &t.SecondaryFadeStart, &t.SecondaryFadeDuration,
		&t.MuteRevealDelay,
	} {
		scale(d)
	}
	return t
}

// Audio returns the track configuration.
func (c *Config) Audio() audio.Config {
	a := audio.DefaultConfig()
	a.Ambient, a.Secondary = c.Ambient, c.Secondary
	return a
}

// KVList collects repeated key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set appends one override.
func (l *KVList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Map parses the collected overrides. Later keys win.
func (l KVList) Map() (map[string]string, error) {
	m := make(map[string]string, len(l))
	for _, kv := range l {
		k, v, ok := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("override %q: %w", kv, errBadOverride)
		}
		m[k] = strings.TrimSpace(v)
	}
	return m, nil
}

var errBadOverride = errors.New("want key=value")
