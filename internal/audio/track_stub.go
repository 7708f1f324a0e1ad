//go:build !ebiten

package audio

import (
	"log"

	"coal-reveal/internal/sequence"
)

// Deck holds two silent players in the headless build.
type Deck struct {
	Ambient   sequence.Player
	Secondary sequence.Player
}

// NewDeck returns silent players; audio output requires the ebiten build tag.
func NewDeck(Config, *log.Logger) *Deck {
	return &Deck{
		Ambient:   NewSilent(sequence.Ambient.String()),
		Secondary: NewSilent(sequence.Secondary.String()),
	}
}

// Close is a no-op in the headless build.
func (d *Deck) Close() error { return nil }
