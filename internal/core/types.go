package core

// Size describes pixel dimensions of a render target.
type Size struct {
	W int
	H int
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.W > 0 && s.H > 0 }

// Aspect returns W/H, or 1 for a degenerate size.
func (s Size) Aspect() float64 {
	if s.H <= 0 {
		return 1
	}
	return float64(s.W) / float64(s.H)
}

// Scaled multiplies both dimensions by scale (minimum 1).
func (s Size) Scaled(scale int) Size {
	if scale <= 0 {
		scale = 1
	}
	return Size{W: s.W * scale, H: s.H * scale}
}
