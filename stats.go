package frp

import (
	"runtime"

	"github.com/alitto/pond"
)

// isBackgroundValid is the §4.2 validity predicate: a neighbor contributes
// to background statistics only if it is a strictly-positive brightness
// temperature (i.e. not one of the negative sentinels in §3).
func isBackgroundValid(v float64) bool {
	return v > 0
}

// window holds the result of growing a footprint around one pixel until
// enough valid neighbors were found (§4.2), or the failure to do so by MaxK.
type window struct {
	ok        bool
	k         int
	neighbors []float64 // every footprint cell, valid or not
}

// chooseWindow implements the smallest-successful-window search shared by
// AdaptiveMeanMAD and the context neighbor counters in neighbors.go. It is
// the single-pass equivalent of §9's "dictionary of per-window results,
// back-filled from the next k" -- observably identical, half the memory.
//
// field is read-only here: boundary reads are always against this immutable
// input grid, never against a stage's own output, per §5.
func chooseWindow(field *Grid, row, col int, cfg *Config) window {
	v := field.At(row, col)
	if v == SentinelWater || v == SentinelCloud {
		return window{}
	}

	for k := cfg.MinK; k <= cfg.MaxK; k += 2 {
		fp := footprintCache.get(k)
		neighbors := make([]float64, 0, k*k)
		valid := 0

		half := k / 2
		for dr := -half; dr <= half; dr++ {
			for dc := -half; dc <= half; dc++ {
				fr := dr + half
				fc := dc + half
				if !fp.At(fr, fc) {
					continue
				}
				nv := field.At(row+dr, col+dc)
				neighbors = append(neighbors, nv)
				if isBackgroundValid(nv) {
					valid++
				}
			}
		}

		if valid > cfg.MinNcount && float64(valid) > cfg.MinNfrac*float64(k*k) {
			return window{ok: true, k: k, neighbors: neighbors}
		}
	}

	return window{}
}

// AdaptiveMeanMAD computes the §4.2 mean and mean-absolute-deviation grids
// for field: for every pixel, the smallest window from MinK to MaxK (step 2)
// whose valid-neighbor count clears MinNcount and MinNfrac*k^2 yields the
// statistic; pixels where no window succeeds, or whose own value is a
// water/cloud sentinel, get SentinelUnset in both outputs (§3 invariant:
// Mean[p] == -4 iff MAD[p] == -4).
//
// Row tiles are processed by a fixed worker pool, following the same
// pool-per-unit-of-work idiom as cmd/frpdetect's detectBatch one level
// down: outputs depend only on the immutable input grid (§5), so rows are
// embarrassingly parallel.
func AdaptiveMeanMAD(field *Grid, cfg *Config) (mean, mad *Grid) {
	mean = NewGrid(field.H, field.W)
	mad = NewGrid(field.H, field.W)
	fillGrid(mean, SentinelUnset)
	fillGrid(mad, SentinelUnset)

	forEachRowTile(field.H, func(row int) {
		for col := 0; col < field.W; col++ {
			w := chooseWindow(field, row, col, cfg)
			if !w.ok {
				continue
			}

			var sum float64
			var n int
			for _, v := range w.neighbors {
				if isBackgroundValid(v) {
					sum += v
					n++
				}
			}
			m := sum / float64(n)

			var absSum float64
			for _, v := range w.neighbors {
				if isBackgroundValid(v) {
					d := v - m
					if d < 0 {
						d = -d
					}
					absSum += d
				}
			}

			mean.Set(row, col, m)
			mad.Set(row, col, absSum/float64(n))
		}
	})

	return mean, mad
}

func fillGrid(g *Grid, v float64) {
	for i := range g.Data {
		g.Data[i] = v
	}
}

// forEachRowTile splits [0, h) into contiguous row tiles and runs fn over
// each tile's rows concurrently via a fixed pool, then waits for all tiles
// to finish. Sized runtime.NumCPU()*2 (capped at h), the same pool sizing
// detectBatch uses.
func forEachRowTile(h int, fn func(row int)) {
	n := runtime.NumCPU() * 2
	if n > h {
		n = h
	}
	if n < 1 {
		n = 1
	}

	pool := pond.New(n, 0, pond.MinWorkers(n))
	defer pool.StopAndWait()

	tile := (h + n - 1) / n
	for start := 0; start < h; start += tile {
		end := start + tile
		if end > h {
			end = h
		}
		rowStart, rowEnd := start, end
		pool.Submit(func() {
			for row := rowStart; row < rowEnd; row++ {
				fn(row)
			}
		})
	}
}

// footprintSet caches the §4.1 footprint masks for MinK..MaxK so that the
// per-pixel window search in chooseWindow never rebuilds the same mask.
type footprintSet struct {
	byK map[int]*Footprint
}

func newFootprintSet() *footprintSet {
	fs := &footprintSet{byK: make(map[int]*Footprint)}
	for k := 5; k <= 21; k += 2 {
		fs.byK[k] = NewFootprint(k)
	}
	return fs
}

func (fs *footprintSet) get(k int) *Footprint {
	if fp, ok := fs.byK[k]; ok {
		return fp
	}
	return NewFootprint(k)
}

var footprintCache = newFootprintSet()
