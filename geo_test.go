package frp

import "testing"

func TestPixelAreaGrowsAwayFromNadir(t *testing.T) {
	nadir := PixelArea(677)
	edge := PixelArea(1)
	if !(edge > nadir) {
		t.Fatalf("edge area %v should exceed nadir area %v", edge, nadir)
	}
}

func TestPixelAreaGridBroadcastsAcrossRows(t *testing.T) {
	g := PixelAreaGrid(3, 4)
	if g.H != 3 || g.W != 4 {
		t.Fatalf("unexpected shape: %dx%d", g.H, g.W)
	}
	for r := 1; r < g.H; r++ {
		for c := 0; c < g.W; c++ {
			if g.At(r, c) != g.At(0, c) {
				t.Fatalf("row %d col %d diverges from row 0: %v != %v", r, c, g.At(r, c), g.At(0, c))
			}
		}
	}
}
