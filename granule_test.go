package frp

import (
	"errors"
	"testing"
	"time"
)

func TestParseGranuleTime(t *testing.T) {
	got, err := ParseGranuleTime("VNP14IMG.A2023045.1342.001.nc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2023, time.February, 14, 13, 42, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseGranuleTime = %v, want %v", got, want)
	}
}

func TestParseGranuleTimeNoMatch(t *testing.T) {
	_, err := ParseGranuleTime("not-a-granule-name.nc")
	if !errors.Is(err, ErrGranuleTime) {
		t.Fatalf("expected ErrGranuleTime, got %v", err)
	}
}

func TestSelectMidIRSubstitutesOnSaturation(t *testing.T) {
	cfg := defaultCfg()
	band21 := &Grid{H: 1, W: 2, Data: []float64{320, 321}}
	band22 := &Grid{H: 1, W: 2, Data: []float64{300, cfg.SaturationThreshold}}

	out := SelectMidIR(band21, band22, cfg)
	if out.Data[0] != 300 {
		t.Fatalf("unsaturated pixel should keep BAND22, got %v", out.Data[0])
	}
	if out.Data[1] != 321 {
		t.Fatalf("saturated pixel should substitute BAND21, got %v", out.Data[1])
	}
}

func TestCropGridExtractsRectangle(t *testing.T) {
	g := &Grid{H: 4, W: 4, Data: []float64{
		0, 1, 2, 3,
		4, 5, 6, 7,
		8, 9, 10, 11,
		12, 13, 14, 15,
	}}

	out := cropGrid(g, []int{1, 2}, []int{1, 2})
	want := []float64{5, 6, 9, 10}
	for i, v := range want {
		if out.Data[i] != v {
			t.Fatalf("cropGrid[%d] = %v, want %v", i, out.Data[i], v)
		}
	}
}

// flatGranule builds a synthetic, internally-consistent granule covering a
// small swath whose lat/lon grid spans the configured bounding box, with no
// pixel hot enough to survive the cascade -- used to exercise Detect's
// crop/offset plumbing without depending on the full fire-detection math.
func flatGranule(t *testing.T, rows, cols int, cfg *Config) *Granule {
	t.Helper()

	constGrid := func(v float64) *Grid {
		g := NewGrid(rows, cols)
		for i := range g.Data {
			g.Data[i] = v
		}
		return g
	}

	lat := NewGrid(rows, cols)
	lon := NewGrid(rows, cols)
	latStep := (cfg.MaxLat - cfg.MinLat) / float64(rows)
	lonStep := (cfg.MaxLon - cfg.MinLon) / float64(cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			lat.Set(r, c, cfg.MinLat+float64(r)*latStep)
			lon.Set(r, c, cfg.MinLon+float64(c)*lonStep)
		}
	}

	in := Inputs{
		Band21:   constGrid(280),
		Band22:   constGrid(280),
		Band31:   constGrid(275),
		Band32:   constGrid(275),
		Vis1:     constGrid(50),
		Vis2:     constGrid(50),
		Swir:     constGrid(20),
		SolZen:   constGrid(9000), // night everywhere
		SenZen:   constGrid(0),
		SolAz:    constGrid(0),
		SenAz:    constGrid(0),
		Landmask: constGrid(1), // land, not water
		Lat:      lat,
		Lon:      lon,
	}
	g, err := NewGranule("VNP14IMG.A2023045.1342.001.nc", in, cfg)
	if err != nil {
		t.Fatalf("NewGranule: %v", err)
	}
	return g
}

func TestDetectEmptyCrop(t *testing.T) {
	cfg := defaultCfg()
	cfg.MinLat, cfg.MaxLat = -10, -9
	cfg.MinLon, cfg.MaxLon = -10, -9

	g := flatGranule(t, 30, 30, defaultCfg())
	g.Config = cfg

	_, err := g.Detect()
	if !errors.Is(err, ErrEmptyCrop) {
		t.Fatalf("expected ErrEmptyCrop, got %v", err)
	}
}

func TestDetectQuietSceneYieldsNoFires(t *testing.T) {
	cfg := defaultCfg()
	g := flatGranule(t, 30, 30, cfg)

	records, err := g.Detect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("a uniformly cold scene should yield no fires, got %d", len(records))
	}
}

func TestQInfoReportsEmptyCrop(t *testing.T) {
	g := flatGranule(t, 10, 10, defaultCfg())
	qi := g.QInfo(nil, nil, nil)
	if !qi.EmptyCrop {
		t.Fatalf("QInfo should report EmptyCrop for a nil row/col selection")
	}
	if qi.NumFires != 0 {
		t.Fatalf("QInfo.NumFires should be 0, got %d", qi.NumFires)
	}
}
