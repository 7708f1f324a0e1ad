package ui

import (
	"fmt"
	"image"
	"strings"

	"coal-reveal/internal/core"
)

// Prompt copy.
const (
	Title    = "REVEAL THE LIGHT"
	Subtitle = "Click to begin"
)

const (
	panelPadding = 12
	lineHeight   = 16
	glyphWidth   = 7
	muteWidth    = 72
	muteHeight   = 28
	promptWidth  = 220
	promptHeight = 72
)

// Action is what a frame of overlay input asked for.
type Action struct {
	Start      bool
	ToggleMute bool
	// Consumed is set when a click landed on the overlay and must not reach
	// the orbit control.
	Consumed bool
}

// MuteLabel returns the button caption for the current state.
func MuteLabel(muted bool) string {
	if muted {
		return "Unmute"
	}
	return "Mute"
}

// MuteRect places the mute button in the top-right corner.
func MuteRect(screenW int) image.Rectangle {
	return image.Rect(screenW-panelPadding-muteWidth, panelPadding, screenW-panelPadding, panelPadding+muteHeight)
}

// PromptRect centres the start prompt box on the screen.
func PromptRect(screenW, screenH int) image.Rectangle {
	w, h := promptWidth, promptHeight
	if w > screenW {
		w = screenW
	}
	if h > screenH {
		h = screenH
	}
	x := (screenW - w) / 2
	y := (screenH - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

// HUDLines flattens a snapshot into aligned "label value" rows, one header
// row per group.
func HUDLines(s core.ParameterSnapshot) []string {
	width := 0
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if len(p.Label) > width {
				width = len(p.Label)
			}
		}
	}
	var lines []string
	for _, g := range s.Groups {
		lines = append(lines, g.Name)
		for _, p := range g.Params {
			lines = append(lines, fmt.Sprintf("  %-*s  %s", width, p.Label, p.Value))
		}
	}
	return lines
}

// HUDSize returns the panel size needed for lines.
func HUDSize(lines []string) (w, h int) {
	longest := 0
	for _, l := range lines {
		if n := len(strings.TrimRight(l, " ")); n > longest {
			longest = n
		}
	}
	return longest*glyphWidth + 2*panelPadding, len(lines)*lineHeight + 2*panelPadding
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

// Resolve maps a click to an action. Clicks on the visible mute button only
// toggle mute; any other click before the start starts the sequence.
func Resolve(x, y, screenW int, started, muteVisible bool) Action {
	if muteVisible && pointInRect(x, y, MuteRect(screenW)) {
		return Action{ToggleMute: true, Consumed: true}
	}
	if !started {
		return Action{Start: true, Consumed: true}
	}
	return Action{}
}
