package frp

import "testing"

func TestNewFootprintSize(t *testing.T) {
	for _, k := range []int{5, 7, 21} {
		fp := NewFootprint(k)
		if fp.K != k {
			t.Fatalf("NewFootprint(%d): got k=%d", k, fp.K)
		}
	}
}

func TestFootprintExcludesCenterRowTriple(t *testing.T) {
	fp := NewFootprint(5)
	center := 5 / 2
	if fp.At(center, center) {
		t.Fatalf("footprint center should be excluded")
	}
	if fp.At(center, center-1) {
		t.Fatalf("footprint center row left neighbor should be excluded")
	}
	if fp.At(center, center+1) {
		t.Fatalf("footprint center row right neighbor should be excluded")
	}
	if !fp.At(center, 0) {
		t.Fatalf("footprint center row, column 0 should be included")
	}
	if !fp.At(0, center) {
		t.Fatalf("footprint row 0, center column should be included")
	}
}

func TestFootprintIncludesCorners(t *testing.T) {
	fp := NewFootprint(5)
	if !fp.At(0, 0) {
		t.Fatalf("footprint corner (0,0) should be included")
	}
	if !fp.At(4, 4) {
		t.Fatalf("footprint corner (4,4) should be included")
	}
}
