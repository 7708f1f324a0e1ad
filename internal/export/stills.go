package export

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"log"
	"slices"
	"strconv"
	"strings"
	"time"

	"coal-reveal/internal/audio"
	"coal-reveal/internal/coal"
	"coal-reveal/internal/core"
	"coal-reveal/internal/render"
	"coal-reveal/internal/scene"
	"coal-reveal/internal/sequence"
)

// DefaultStep is the simulated frame interval.
const DefaultStep = time.Second / 60

var errEmptyTimes = errors.New("no times given")

// Shot is one rendered instant. At is measured from the timeline start.
type Shot struct {
	At    time.Duration
	Phase sequence.Phase
	Light float64
	Frame *render.Frame
}

// Options configures a stills run.
type Options struct {
	Size    core.Size
	Timings sequence.Timings
	// Step is the simulated frame interval; DefaultStep when zero.
	Step   time.Duration
	Logger *log.Logger
}

// Stills replays the reveal on a manual clock and renders the scene at each
// requested instant. The start gesture happens at clock zero, so the
// timeline starts after Timings.StartDelay. Audio runs on silent players.
func Stills(piece coal.Piece, opts Options, at []time.Duration) ([]Shot, error) {
	if len(at) == 0 {
		return nil, errEmptyTimes
	}
	if !opts.Size.Valid() {
		return nil, fmt.Errorf("invalid size %dx%d", opts.Size.W, opts.Size.H)
	}
	step := opts.Step
	if step <= 0 {
		step = DefaultStep
	}
	times := slices.Clone(at)
	slices.Sort(times)
	if times[0] < 0 {
		return nil, fmt.Errorf("time %v is before the timeline start", times[0])
	}

	epoch := time.Unix(0, 0).UTC()
	clock := core.NewManualClock(epoch)
	seq := sequence.New(clock, opts.Timings, audio.NewSilent("ambient"), audio.NewSilent("secondary"))
	if opts.Logger != nil {
		seq.SetLogger(opts.Logger)
	} else {
		seq.SetLogger(log.New(io.Discard, "", 0))
	}
	fps := max(int(time.Second/step), 1)
	sc := scene.New(piece, fps)
	r := render.NewRenderer(opts.Size.W, opts.Size.H)

	seq.Start()
	start := epoch.Add(opts.Timings.StartDelay)
	shots := make([]Shot, 0, len(times))
	frame := seq.Update()
	for _, t := range times {
		target := start.Add(t)
		for clock.Now().Before(target) {
			dt := step
			if rem := target.Sub(clock.Now()); rem < dt {
				dt = rem
			}
			clock.Advance(dt)
			frame = seq.Update()
			sc.Update(dt, frame.Scalars)
		}
		shots = append(shots, Shot{
			At:    t,
			Phase: frame.State.Phase,
			Light: frame.State.Light,
			Frame: r.Render(sc).Clone(),
		})
	}
	seq.Teardown()
	return shots, nil
}

// Timeline returns instants from 0 to total inclusive every interval.
func Timeline(total, interval time.Duration) []time.Duration {
	if interval <= 0 {
		return []time.Duration{0}
	}
	var out []time.Duration
	for t := time.Duration(0); t <= total; t += interval {
		out = append(out, t)
	}
	return out
}

// WriteGIF encodes the shots as an animation, delay in 100ths of a second.
func WriteGIF(w io.Writer, shots []Shot, delay int) error {
	if len(shots) == 0 {
		return errEmptyTimes
	}
	out := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(shots)),
		Delay: make([]int, 0, len(shots)),
	}
	for _, s := range shots {
		src := s.Frame.Image()
		dst := image.NewPaletted(src.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(dst, src.Bounds(), src, image.Point{})
		out.Image = append(out.Image, dst)
		out.Delay = append(out.Delay, delay)
	}
	if err := gif.EncodeAll(w, out); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

// ParseTimes parses a comma-separated list of durations such as "0s,5s,27s".
func ParseTimes(s string) ([]time.Duration, error) {
	var out []time.Duration
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := time.ParseDuration(part)
		if err != nil {
			return nil, fmt.Errorf("parse time %q: %w", part, err)
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, errEmptyTimes
	}
	return out, nil
}

// ParseSize parses "WxH".
func ParseSize(s string) (core.Size, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return core.Size{}, fmt.Errorf("parse size %q: want WxH", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return core.Size{}, fmt.Errorf("parse size %q: %w", s, err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return core.Size{}, fmt.Errorf("parse size %q: %w", s, err)
	}
	size := core.Size{W: w, H: h}
	if !size.Valid() {
		return core.Size{}, fmt.Errorf("parse size %q: dimensions must be positive", s)
	}
	return size, nil
}
