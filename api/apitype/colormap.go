package apitype

import "image/color"

// Colormap returns the n-entry label palette where the bits of each class id
// are spread over the high bits of R, G and B. Class 0 is black.
func Colormap(n int) []color.RGBA {
	palette := make([]color.RGBA, n)
	for i := 0; i < n; i++ {
		var r, g, b uint8
		c := i
		for j := 0; j < 8; j++ {
			r |= bitAt(c, 0) << (7 - j)
			g |= bitAt(c, 1) << (7 - j)
			b |= bitAt(c, 2) << (7 - j)
			c >>= 3
		}
		palette[i] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return palette
}

// NormalizedColormap is Colormap scaled into [0, 1], shaped (n, 3).
func NormalizedColormap(n int) *PixelBuffer {
	values := make([]float64, 0, n*3)
	for _, c := range Colormap(n) {
		values = append(values, float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
	}
	buffer, _ := FromFloat64s(Float32, n, 3, 0, values)
	return buffer
}

func bitAt(value int, index int) uint8 {
	return uint8((value >> index) & 1)
}
