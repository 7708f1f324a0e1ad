//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The GUI build of coal requires the ebiten build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/coal` or build with `-tags ebiten`.")
	fmt.Fprintln(os.Stderr, "For headless output use ./cmd/coal-export.")
	os.Exit(2)
}
