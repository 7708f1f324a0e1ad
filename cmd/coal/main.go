//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"coal-reveal/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	game := app.New(cfg)
	size := cfg.WindowSize()

	ebiten.SetWindowTitle("coal")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W, size.H)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		game.Close()
		log.Fatal(err)
	}
}
