package frp

import "math"

// PixelArea computes the along-scan ground area of a pixel (§4.6), which
// grows sharply away from nadir as the VIIRS/MODIS bow-tie effect widens
// the footprint. col is the zero-based sample index across the scan.
func PixelArea(col int) float64 {
	s := (float64(col) - 676.6) / 700.0
	z := math.Asin(1.111 * math.Sin(s))
	pt := 9 * math.Sin(z-s) / math.Sin(s)
	ps := pt / math.Cos(z)
	return pt * ps
}

// PixelAreaGrid materializes PixelArea across every column of a w-wide
// scan line, broadcast to h rows, for callers that want a Grid to combine
// pointwise with FRP.
func PixelAreaGrid(h, w int) *Grid {
	areas := make([]float64, w)
	for c := 0; c < w; c++ {
		areas[c] = PixelArea(c)
	}

	out := NewGrid(h, w)
	for r := 0; r < h; r++ {
		copy(out.Data[r*w:(r+1)*w], areas)
	}
	return out
}
