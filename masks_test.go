package frp

import "testing"

func TestDayMask(t *testing.T) {
	g := &Grid{H: 1, W: 3, Data: []float64{8000, 8500, 9000}}
	day := DayMask(g)
	want := []float64{1, 0, 0}
	for i, v := range want {
		if day.Data[i] != v {
			t.Fatalf("DayMask[%d] = %v, want %v", i, day.Data[i], v)
		}
	}
}

func TestWaterMask(t *testing.T) {
	g := &Grid{H: 1, W: 3, Data: []float64{1, 0, 2}}
	water := WaterMask(g)
	want := []float64{0, 1, 1}
	for i, v := range want {
		if water.Data[i] != v {
			t.Fatalf("WaterMask[%d] = %v, want %v", i, water.Data[i], v)
		}
	}
}

func TestCloudMaskRules(t *testing.T) {
	cases := []struct {
		name           string
		v1, v2, t32    float64
		want           float64
	}{
		{"bright sum", 500, 500, 290, 1},
		{"cold t32", 100, 100, 260, 1},
		{"moderate sum cold t32", 400, 400, 280, 1},
		{"clear", 100, 100, 300, 0},
	}

	for _, c := range cases {
		g := CloudMask(
			&Grid{H: 1, W: 1, Data: []float64{c.v1}},
			&Grid{H: 1, W: 1, Data: []float64{c.v2}},
			&Grid{H: 1, W: 1, Data: []float64{c.t32}},
		)
		if g.Data[0] != c.want {
			t.Errorf("%s: CloudMask = %v, want %v", c.name, g.Data[0], c.want)
		}
	}
}

func TestBuildWorkingFieldPrecedence(t *testing.T) {
	radiometric := &Grid{H: 1, W: 1, Data: []float64{300}}
	one := &Grid{H: 1, W: 1, Data: []float64{1}}
	zero := &Grid{H: 1, W: 1, Data: []float64{0}}

	// all three flagged: background-candidate must win.
	out := BuildWorkingField(radiometric, one, one, one)
	if out.Data[0] != SentinelBackground {
		t.Fatalf("all flagged: got %v, want SentinelBackground", out.Data[0])
	}

	// water and cloud flagged, no bg-candidate: cloud must win over water.
	out = BuildWorkingField(radiometric, one, one, zero)
	if out.Data[0] != SentinelCloud {
		t.Fatalf("water+cloud: got %v, want SentinelCloud", out.Data[0])
	}

	// only water flagged.
	out = BuildWorkingField(radiometric, one, zero, zero)
	if out.Data[0] != SentinelWater {
		t.Fatalf("water only: got %v, want SentinelWater", out.Data[0])
	}

	// nothing flagged: passthrough.
	out = BuildWorkingField(radiometric, zero, zero, zero)
	if out.Data[0] != 300 {
		t.Fatalf("unflagged: got %v, want passthrough 300", out.Data[0])
	}
}

func TestRejectedBackgroundOnlyField(t *testing.T) {
	radiometric := &Grid{H: 1, W: 2, Data: []float64{320, 310}}
	bgCandidate := &Grid{H: 1, W: 2, Data: []float64{1, 0}}

	out := RejectedBackgroundOnlyField(radiometric, bgCandidate)
	if out.Data[0] != 320 {
		t.Fatalf("bg-candidate pixel: got %v, want 320", out.Data[0])
	}
	if out.Data[1] != SentinelBackground {
		t.Fatalf("non-bg-candidate pixel: got %v, want SentinelBackground", out.Data[1])
	}
}

func TestBoundingBoxIndices(t *testing.T) {
	lat := &Grid{H: 3, W: 3, Data: []float64{
		64, 65, 66,
		64, 65.3, 66,
		64, 65, 66,
	}}
	lon := &Grid{H: 3, W: 3, Data: []float64{
		-149, -147, -145,
		-149, -147, -145,
		-149, -147, -145,
	}}

	rows, cols := BoundingBoxIndices(lat, lon, 65, 65.5, -148, -146)
	if len(rows) != 1 || rows[0] != 1 {
		t.Fatalf("rows = %v, want [1]", rows)
	}
	if len(cols) != 1 || cols[0] != 1 {
		t.Fatalf("cols = %v, want [1]", cols)
	}
}

func TestBoundingBoxIndicesEmpty(t *testing.T) {
	lat := &Grid{H: 2, W: 2, Data: []float64{0, 0, 0, 0}}
	lon := &Grid{H: 2, W: 2, Data: []float64{0, 0, 0, 0}}

	rows, cols := BoundingBoxIndices(lat, lon, 65, 65.5, -148, -146)
	if rows != nil || cols != nil {
		t.Fatalf("expected nil rows/cols for no matches, got %v / %v", rows, cols)
	}
}
