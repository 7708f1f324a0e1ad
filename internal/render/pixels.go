package render

import "coal-reveal/internal/scene"

// encodeLinear converts linear colours into opaque sRGB pixels in buf.
func encodeLinear(buf []byte, src []scene.RGB) {
	for i, c := range src {
		base := i * 4
		if base+3 >= len(buf) {
			return
		}
		buf[base+0] = toByte(scene.LinearToSRGB(c.R))
		buf[base+1] = toByte(scene.LinearToSRGB(c.G))
		buf[base+2] = toByte(scene.LinearToSRGB(c.B))
		buf[base+3] = 0xff
	}
}

func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*255 + 0.5)
}
