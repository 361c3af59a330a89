package frp

import (
	"math"
	"testing"
)

// uniformBackground builds an H x W grid of a constant valid background
// value, large enough that chooseWindow succeeds at cfg.MinK everywhere
// away from the border.
func uniformBackground(h, w int, v float64) *Grid {
	g := NewGrid(h, w)
	for i := range g.Data {
		g.Data[i] = v
	}
	return g
}

func TestAdaptiveMeanMADConstantFieldGivesZeroMad(t *testing.T) {
	cfg := defaultCfg()
	field := uniformBackground(25, 25, 300)

	mean, mad := AdaptiveMeanMAD(field, cfg)

	r, c := 12, 12
	if math.Abs(mean.At(r, c)-300) > 1e-9 {
		t.Fatalf("mean over a constant field should be 300, got %v", mean.At(r, c))
	}
	if mad.At(r, c) != 0 {
		t.Fatalf("MAD over a constant field should be 0, got %v", mad.At(r, c))
	}
}

func TestAdaptiveMeanMADSentinelPixelUnset(t *testing.T) {
	cfg := defaultCfg()
	field := uniformBackground(25, 25, 300)
	field.Set(12, 12, SentinelWater)

	mean, mad := AdaptiveMeanMAD(field, cfg)

	if mean.At(12, 12) != SentinelUnset || mad.At(12, 12) != SentinelUnset {
		t.Fatalf("a water-sentinel pixel should get SentinelUnset mean/mad, got mean=%v mad=%v",
			mean.At(12, 12), mad.At(12, 12))
	}
}

func TestAdaptiveMeanMADFailsClosedWhenSparse(t *testing.T) {
	cfg := defaultCfg()
	field := NewGrid(25, 25)
	fillGrid(field, SentinelBackground)
	field.Set(12, 12, 310)

	mean, mad := AdaptiveMeanMAD(field, cfg)

	if mean.At(12, 12) != SentinelUnset {
		t.Fatalf("a pixel with no valid neighbors at any window should get SentinelUnset, got %v", mean.At(12, 12))
	}
	if mad.At(12, 12) != SentinelUnset {
		t.Fatalf("a pixel with no valid neighbors at any window should get SentinelUnset MAD, got %v", mad.At(12, 12))
	}
}

func TestChooseWindowSucceedsWithEnoughValidNeighbors(t *testing.T) {
	cfg := defaultCfg()
	field := NewGrid(25, 25)
	fillGrid(field, SentinelBackground)
	for r := 10; r <= 14; r++ {
		for c := 10; c <= 14; c++ {
			field.Set(r, c, 300)
		}
	}

	w := chooseWindow(field, 12, 12, cfg)
	if !w.ok {
		t.Fatalf("expected a successful window with a 5x5 valid block available")
	}
	if w.k < cfg.MinK {
		t.Fatalf("chosen window %d should be at least MinK %d", w.k, cfg.MinK)
	}
}

func TestReflectIndexSymmetricBoundary(t *testing.T) {
	cases := []struct {
		i, n, want int
	}{
		{-1, 10, 0},
		{-2, 10, 1},
		{10, 10, 9},
		{11, 10, 8},
		{5, 10, 5},
	}
	for _, c := range cases {
		if got := reflectIndex(c.i, c.n); got != c.want {
			t.Errorf("reflectIndex(%d, %d) = %d, want %d", c.i, c.n, got, c.want)
		}
	}
}
