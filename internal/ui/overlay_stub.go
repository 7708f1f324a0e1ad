//go:build !ebiten

package ui

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay() *Overlay { return &Overlay{} }

// Update never reports input in headless builds.
func (o *Overlay) Update(int, bool, bool, bool) Action { return Action{} }

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
