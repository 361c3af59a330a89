package frp

import (
	"math"
	"testing"
)

func TestRamp(t *testing.T) {
	cases := []struct {
		v, min, max, want float64
	}{
		{0, 2.5, 6, 0},
		{2.5, 2.5, 6, 0},
		{4.25, 2.5, 6, 0.5},
		{6, 2.5, 6, 1},
		{10, 2.5, 6, 1},
	}
	for _, c := range cases {
		got := Ramp(c.v, c.min, c.max)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Ramp(%v, %v, %v) = %v, want %v", c.v, c.min, c.max, got, c.want)
		}
	}
}

func TestFRPMaskedToFiresAndPotential(t *testing.T) {
	tMid := &Grid{H: 1, W: 3, Data: []float64{400, 400, 400}}
	bg := &Grid{H: 1, W: 3, Data: []float64{300, 300, 300}}
	fires := &Grid{H: 1, W: 3, Data: []float64{1, 1, 0}}
	potential := &Grid{H: 1, W: 3, Data: []float64{1, 0, 1}}

	out := FRP(tMid, bg, fires, potential)

	if out.Data[0] <= 0 {
		t.Fatalf("fire+potential pixel should have positive FRP, got %v", out.Data[0])
	}
	if out.Data[1] != 0 {
		t.Fatalf("fire without potential should be zeroed, got %v", out.Data[1])
	}
	if out.Data[2] != 0 {
		t.Fatalf("non-fire pixel should be zeroed regardless of potential, got %v", out.Data[2])
	}
}

func TestFRPValid(t *testing.T) {
	cases := []struct {
		frp  float64
		want bool
	}{
		{0, false},
		{-5, false},
		{100, true},
		{3899.999, true},
		{3900, false},
		{5000, false},
	}
	for _, c := range cases {
		if got := FRPValid(c.frp); got != c.want {
			t.Errorf("FRPValid(%v) = %v, want %v", c.frp, got, c.want)
		}
	}
}

func TestComputeConfidenceDayUsesFiveSubScores(t *testing.T) {
	in := ConfidenceInputs{
		TMidBgMasked: &Grid{H: 1, W: 1, Data: []float64{340}},
		Z4:           &Grid{H: 1, W: 1, Data: []float64{6}},
		ZDeltaT:      &Grid{H: 1, W: 1, Data: []float64{6}},
		NCloudAdj:    &Grid{H: 1, W: 1, Data: []float64{0}},
		NWaterAdj:    &Grid{H: 1, W: 1, Data: []float64{0}},
	}
	conf := ComputeConfidence(in)

	if conf.Day.Data[0] != 1 {
		t.Fatalf("all sub-scores saturated should give Day confidence 1, got %v", conf.Day.Data[0])
	}
	if conf.Night.Data[0] != 1 {
		t.Fatalf("all sub-scores saturated should give Night confidence 1, got %v", conf.Night.Data[0])
	}
}

func TestComputeConfidenceZeroSubScoreZeroesGeometricMean(t *testing.T) {
	in := ConfidenceInputs{
		TMidBgMasked: &Grid{H: 1, W: 1, Data: []float64{0}}, // C1Day/C1Night both 0
		Z4:           &Grid{H: 1, W: 1, Data: []float64{6}},
		ZDeltaT:      &Grid{H: 1, W: 1, Data: []float64{6}},
		NCloudAdj:    &Grid{H: 1, W: 1, Data: []float64{0}},
		NWaterAdj:    &Grid{H: 1, W: 1, Data: []float64{0}},
	}
	conf := ComputeConfidence(in)

	if conf.Day.Data[0] != 0 {
		t.Fatalf("zero C1Day should zero the day geometric mean, got %v", conf.Day.Data[0])
	}
	if conf.Night.Data[0] != 0 {
		t.Fatalf("zero C1Night should zero the night geometric mean, got %v", conf.Night.Data[0])
	}
}
