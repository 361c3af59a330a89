package frp

// AdjacentCount3x3 returns, for every pixel, the count of its 8 immediate
// neighbors (center excluded) in indicator whose value equals 1 -- the
// nCloudAdj / nWaterAdj counters of §4.3. Boundary reads reflect
// symmetrically against indicator, which is treated as immutable input.
func AdjacentCount3x3(indicator *Grid) *Grid {
	out := NewGrid(indicator.H, indicator.W)

	forEachRowTile(indicator.H, func(row int) {
		for col := 0; col < indicator.W; col++ {
			n := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					if indicator.At(row+dr, col+dc) == 1 {
						n++
					}
				}
			}
			out.Set(row, col, float64(n))
		}
	})

	return out
}

// ContextCounts bundles the adaptive-window neighbor counters of §4.3 that
// share a single per-pixel window choice with AdaptiveMeanMAD: nValid,
// nRejectedBG and nRejectedWater are all tallied over the same footprint
// neighbor set that the smallest-successful-window search in chooseWindow
// already visits for bg, so they are computed together in one pass.
type ContextCounts struct {
	NValid         *Grid
	NRejectedBG    *Grid
	NRejectedWater *Grid
}

// AdaptiveContextCounts computes nValid, nRejectedBG and nRejectedWater over
// the masked background working field bg (the field carrying the
// water(-1)/cloud(-2)/background-candidate(-3) sentinel overlay from §4.4).
// Pixels for which no window succeeds by MaxK, or whose own value is a
// water/cloud sentinel, get SentinelUnset in all three outputs.
func AdaptiveContextCounts(bg *Grid, cfg *Config) ContextCounts {
	nValid := NewGrid(bg.H, bg.W)
	nRejBG := NewGrid(bg.H, bg.W)
	nRejWater := NewGrid(bg.H, bg.W)
	fillGrid(nValid, SentinelUnset)
	fillGrid(nRejBG, SentinelUnset)
	fillGrid(nRejWater, SentinelUnset)

	forEachRowTile(bg.H, func(row int) {
		for col := 0; col < bg.W; col++ {
			w := chooseWindow(bg, row, col, cfg)
			if !w.ok {
				continue
			}

			var valid, rejBG, rejWater int
			for _, v := range w.neighbors {
				switch {
				case isBackgroundValid(v):
					valid++
				case v == SentinelBackground:
					rejBG++
				case v == SentinelWater:
					rejWater++
				}
			}

			nValid.Set(row, col, float64(valid))
			nRejBG.Set(row, col, float64(rejBG))
			nRejWater.Set(row, col, float64(rejWater))
		}
	})

	return ContextCounts{NValid: nValid, NRejectedBG: nRejBG, NRejectedWater: nRejWater}
}

// AdaptiveUnmaskedWaterCount tallies the nUnmaskedWater counter of §4.3:
// neighbors flagged 1 in unmasked (the §4.5 coastal "unmasked water"
// indicator), using the same window chosen against bg. Per §4.3 this
// counter is only meaningful for pixels not already classified water,
// cloud or background-candidate; those pixels get SentinelUnset, matching
// the skip rule chooseWindow already applies for water/cloud, plus an
// explicit background-candidate exclusion here.
func AdaptiveUnmaskedWaterCount(bg, unmasked *Grid, cfg *Config) *Grid {
	out := NewGrid(bg.H, bg.W)
	fillGrid(out, SentinelUnset)

	forEachRowTile(bg.H, func(row int) {
		for col := 0; col < bg.W; col++ {
			if bg.At(row, col) == SentinelBackground {
				continue
			}

			w := chooseWindow(bg, row, col, cfg)
			if !w.ok {
				continue
			}

			half := w.k / 2
			count := 0
			fp := footprintCache.get(w.k)
			for dr := -half; dr <= half; dr++ {
				for dc := -half; dc <= half; dc++ {
					fr := dr + half
					fc := dc + half
					if !fp.At(fr, fc) {
						continue
					}
					if unmasked.At(row+dr, col+dc) == 1 {
						count++
					}
				}
			}

			out.Set(row, col, float64(count))
		}
	})

	return out
}
