package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"coal-reveal/internal/app"
	"coal-reveal/internal/export"
)

func main() {
	cfg := app.NewConfig()
	objPath := flag.String("obj", "", "write the coal mesh as Wavefront OBJ to this path")
	pngPrefix := flag.String("png", "", "write PNG stills as <prefix>_<time>.png")
	gifPath := flag.String("gif", "", "write an animated GIF of the whole reveal")
	gifStep := flag.Duration("gif-step", 500*time.Millisecond, "time between GIF frames")
	at := flag.String("at", "0s,5s,15s,27s", "comma-separated stills times, measured from the timeline start")
	sizeFlag := flag.String("size", "480x320", "render size WxH")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "coal piece seed (0 = random)")
	flag.Float64Var(&cfg.TimeScale, "timescale", cfg.TimeScale, "script speed multiplier")
	flag.Var(&cfg.Overrides, "set", "coal parameter override in key=value form (repeatable)")
	flag.Parse()

	size, err := export.ParseSize(*sizeFlag)
	if err != nil {
		log.Fatal(err)
	}
	cfg.Width, cfg.Height = size.W, size.H
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if *objPath == "" && *pngPrefix == "" && *gifPath == "" {
		log.Fatal("nothing to do: pass -obj, -png or -gif")
	}

	piece := cfg.Piece()
	log.Printf("coal-export: seed %d, %d vertices, %d triangles",
		piece.Seed, piece.Mesh.VertexCount(), piece.Mesh.TriangleCount())

	if *objPath != "" {
		if err := writeFile(*objPath, func(f *os.File) error {
			return export.WriteOBJ(f, fmt.Sprintf("coal_%d", piece.Seed), piece.Mesh)
		}); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", *objPath)
	}

	opts := export.Options{Size: size, Timings: cfg.Timings()}
	if *pngPrefix != "" {
		times, err := export.ParseTimes(*at)
		if err != nil {
			log.Fatal(err)
		}
		shots, err := export.Stills(piece, opts, times)
		if err != nil {
			log.Fatal(err)
		}
		for _, s := range shots {
			path := fmt.Sprintf("%s_%05dms.png", *pngPrefix, s.At.Milliseconds())
			if err := writeFile(path, func(f *os.File) error { return s.Frame.WritePNG(f) }); err != nil {
				log.Fatal(err)
			}
			log.Printf("wrote %s (%s, light %.3f)", path, s.Phase, s.Light)
		}
	}

	if *gifPath != "" {
		shots, err := export.Stills(piece, opts, export.Timeline(opts.Timings.Total(), *gifStep))
		if err != nil {
			log.Fatal(err)
		}
		delay := int(gifStep.Milliseconds() / 10)
		if err := writeFile(*gifPath, func(f *os.File) error { return export.WriteGIF(f, shots, delay) }); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s (%d frames)", *gifPath, len(shots))
	}
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
