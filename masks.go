package frp

import "github.com/samber/lo"

// DayMask reports, per pixel, whether solar zenith indicates daytime
// acquisition: solZen is encoded in centi-degrees such that < 8500 means day
// (§3, §4.4).
func DayMask(solZen *Grid) *Grid {
	out := NewGrid(solZen.H, solZen.W)
	for i, v := range solZen.Data {
		if v < 8500 {
			out.Data[i] = 1
		}
	}
	return out
}

// WaterMask flags pixels where landmask != 1 (§4.4).
func WaterMask(landmask *Grid) *Grid {
	out := NewGrid(landmask.H, landmask.W)
	for i, v := range landmask.Data {
		if v != 1 {
			out.Data[i] = 1
		}
	}
	return out
}

// CloudMask flags pixels matching any of the §4.4 spectral cloud rules.
// NaN-safe: a NaN in any operand simply fails every comparison, per §7.
func CloudMask(rVis1, rVis2, tLw2 *Grid) *Grid {
	out := NewGrid(rVis1.H, rVis1.W)
	for i := range out.Data {
		v1 := rVis1.Data[i]
		v2 := rVis2.Data[i]
		t32 := tLw2.Data[i]
		sum := v1 + v2

		cloudy := safeGT(sum, 900) ||
			safeLT(t32, 265) ||
			(safeGT(sum, 700) && safeLT(t32, 285))

		if cloudy {
			out.Data[i] = 1
		}
	}
	return out
}

// BackgroundCandidateMask flags pixels "too hot to be background" (§4.4):
// pixels that otherwise pass the loose day/night temperature and deltaT
// thresholds become background-candidates rather than plain land-valid
// background, because a fire nearby would bias the background estimate.
func BackgroundCandidateMask(tMid, deltaT, day *Grid, cfg *Config) *Grid {
	out := NewGrid(tMid.H, tMid.W)
	r := cfg.ReductionFactor

	for i := range out.Data {
		t := tMid.Data[i]
		dt := deltaT.Data[i]

		var candidate bool
		if day.Data[i] == 1 {
			candidate = safeGT(t, 325*r) && safeGT(dt, 20*r)
		} else {
			candidate = safeGT(t, 310*r) && safeGT(dt, 10*r)
		}

		if candidate {
			out.Data[i] = 1
		}
	}
	return out
}

// BuildWorkingField overlays the sentinel-coded mask state onto radiometric
// (the calibrated brightness-temperature or deltaT grid) in the fixed order
// required by §3/§4.4: water, then cloud, then background-candidate. This
// order is never reversed -- each later overwrite takes precedence over the
// earlier ones and over the raw radiometric value.
func BuildWorkingField(radiometric, water, cloud, bgCandidate *Grid) *Grid {
	out := radiometric.Clone()

	for i := range out.Data {
		switch {
		case bgCandidate.Data[i] == 1:
			out.Data[i] = SentinelBackground
		case cloud.Data[i] == 1:
			out.Data[i] = SentinelCloud
		case water.Data[i] == 1:
			out.Data[i] = SentinelWater
		}
	}

	return out
}

// RejectedBackgroundOnlyField builds the derived field used by cascade test
// 7 and the desert-boundary rejection (§4.5): the actual radiometric value
// is kept only where bgCandidate holds, every other cell is sentinelled so
// AdaptiveMeanMAD only ever sees background-candidate pixels as "valid".
func RejectedBackgroundOnlyField(radiometric, bgCandidate *Grid) *Grid {
	out := NewGrid(radiometric.H, radiometric.W)
	fillGrid(out, SentinelBackground)

	for i := range out.Data {
		if bgCandidate.Data[i] == 1 {
			out.Data[i] = radiometric.Data[i]
		}
	}

	return out
}

// BoundingBoxIndices returns every row index from the smallest to the
// largest row, and every column index from the smallest to the largest
// column, of the pixels whose lat/lon falls inside [minLat,maxLat] x
// [minLon,maxLon]. The result is a contiguous rectangle: rows or columns in
// between that hold no in-box pixel are still included. The extremes are
// found by reducing a slice of per-pixel samples with lo.Min/lo.Max rather
// than hand-rolled loops.
func BoundingBoxIndices(lat, lon *Grid, minLat, maxLat, minLon, maxLon float64) (rows, cols []int) {
	type cell struct{ row, col int }

	var hits []cell
	for r := 0; r < lat.H; r++ {
		for c := 0; c < lat.W; c++ {
			i := r*lat.W + c
			la := lat.Data[i]
			lo_ := lon.Data[i]
			if la >= minLat && la <= maxLat && lo_ >= minLon && lo_ <= maxLon {
				hits = append(hits, cell{r, c})
			}
		}
	}

	if len(hits) == 0 {
		return nil, nil
	}

	rowSet := lo.Map(hits, func(c cell, _ int) int { return c.row })
	colSet := lo.Map(hits, func(c cell, _ int) int { return c.col })

	minRow, maxRow := lo.Min(rowSet), lo.Max(rowSet)
	minCol, maxCol := lo.Min(colSet), lo.Max(colSet)

	rows = make([]int, 0, maxRow-minRow+1)
	for r := minRow; r <= maxRow; r++ {
		rows = append(rows, r)
	}
	cols = make([]int, 0, maxCol-minCol+1)
	for c := minCol; c <= maxCol; c++ {
		cols = append(cols, c)
	}

	return rows, cols
}
