package frp

import "math"

// PixelTests holds the two loose per-pixel temperature screens of §4.5
// that gate everything downstream: Potential (eligible for contextual
// testing) and Absolute (definite fire regardless of context).
type PixelTests struct {
	Potential *Grid
	Absolute  *Grid
}

// ComputePixelTests evaluates the §4.5 potential-fire and absolute tests.
// tMid and deltaT here are the raw (post BAND21/22 substitution) grids, not
// the sentinel-masked working fields -- the pixel-level screen runs before
// any water/cloud/background classification is consulted.
func ComputePixelTests(tMid, deltaT, rVis2, day *Grid, cfg *Config) PixelTests {
	pot := NewGrid(tMid.H, tMid.W)
	abs := NewGrid(tMid.H, tMid.W)

	r := cfg.ReductionFactor
	inc := cfg.IncreaseFactor

	for i := range tMid.Data {
		t := tMid.Data[i]
		dt := deltaT.Data[i]
		v2 := rVis2.Data[i]
		isDay := day.Data[i] == 1

		var potential, absolute bool
		if isDay {
			potential = safeGT(t, 310*r) && safeGT(dt, 10*r) && safeLT(v2, 300*inc)
			absolute = safeGT(t, 360*r)
		} else {
			potential = safeGT(t, 305*r) && safeGT(dt, 10*r)
			absolute = safeGT(t, 305*r)
		}

		if potential {
			pot.Data[i] = 1
		}
		if absolute {
			abs.Data[i] = 1
		}
	}

	return PixelTests{Potential: pot, Absolute: abs}
}

// ContextualTests holds the five intermediate boolean grids numbered 3-7 in
// §4.5, each built from the water/cloud-only masked fields compared against
// the background-masked fields' mean/MAD statistics.
type ContextualTests struct {
	DeltaTMad  *Grid // test 3: deltaT > deltaTmean + 3.5*deltaTmad
	DeltaTFlat *Grid // test 4: deltaT > deltaTmean + 6
	TMid       *Grid // test 5: T_mid_masked > T_mid_mean + 3*T_mid_mad
	TLw        *Grid // test 6: T_lw_masked > T_lw_mean + T_lw_mad - 4
	RejectedBG *Grid // test 7: rejected-background-only MAD > 5
}

// ContextualInputs bundles the masked fields and their background
// statistics that ComputeContextualTests needs. maskedTMid/maskedTLw/
// maskedDeltaT carry only the water/cloud sentinel overlay (§4.4, no
// background-candidate layer); the Mean/MAD grids are computed separately
// over the fully-overlaid background-masked fields, per the original
// algorithm's separation of "value under test" from "background estimate."
type ContextualInputs struct {
	MaskedTMid    *Grid
	MaskedTLw     *Grid
	MaskedDeltaT  *Grid
	TMidMean      *Grid
	TMidMad       *Grid
	TLwMean       *Grid
	TLwMad        *Grid
	DeltaTMean    *Grid
	DeltaTMad     *Grid
	RejBGMad      *Grid
}

// ComputeContextualTests evaluates cascade tests 3 through 7 (§4.5).
func ComputeContextualTests(in ContextualInputs) ContextualTests {
	h, w := in.MaskedTMid.H, in.MaskedTMid.W
	out := ContextualTests{
		DeltaTMad:  NewGrid(h, w),
		DeltaTFlat: NewGrid(h, w),
		TMid:       NewGrid(h, w),
		TLw:        NewGrid(h, w),
		RejectedBG: NewGrid(h, w),
	}

	for i := range in.MaskedTMid.Data {
		dt := in.MaskedDeltaT.Data[i]
		dtMean := in.DeltaTMean.Data[i]
		dtMad := in.DeltaTMad.Data[i]

		if safeGT(dt, dtMean+3.5*dtMad) {
			out.DeltaTMad.Data[i] = 1
		}
		if safeGT(dt, dtMean+6) {
			out.DeltaTFlat.Data[i] = 1
		}

		tMid := in.MaskedTMid.Data[i]
		if safeGT(tMid, in.TMidMean.Data[i]+3*in.TMidMad.Data[i]) {
			out.TMid.Data[i] = 1
		}

		tLw := in.MaskedTLw.Data[i]
		if safeGT(tLw, in.TLwMean.Data[i]+in.TLwMad.Data[i]-4) {
			out.TLw.Data[i] = 1
		}

		if safeGT(in.RejBGMad.Data[i], 5) {
			out.RejectedBG.Data[i] = 1
		}
	}

	return out
}

// CombineFires implements the §4.5 tentative/day/night combination:
//
//	tentative     = test3 ∧ test4 ∧ test5
//	dayTentative  = tentative ∧ potential ∧ (test6 ∨ test7), daytime only
//	dayFires      = day ∧ (absolute ∨ dayTentative)
//	nightFires    = ¬day ∧ (tentative ∨ absolute)
//	allFires      = dayFires ∨ nightFires
func CombineFires(pt PixelTests, ct ContextualTests, day *Grid) *Grid {
	out := NewGrid(day.H, day.W)

	for i := range out.Data {
		tentative := ct.DeltaTMad.Data[i] == 1 && ct.DeltaTFlat.Data[i] == 1 && ct.TMid.Data[i] == 1
		isDay := day.Data[i] == 1
		absolute := pt.Absolute.Data[i] == 1

		var dayFire, nightFire bool
		if isDay {
			dayTentative := pt.Potential.Data[i] == 1 && tentative &&
				(ct.TLw.Data[i] == 1 || ct.RejectedBG.Data[i] == 1)
			dayFire = absolute || dayTentative
		} else {
			nightFire = tentative || absolute
		}

		if dayFire || nightFire {
			out.Data[i] = 1
		}
	}

	return out
}

// Rejections bundles the three §4.5 daytime false-alarm rejection masks.
type Rejections struct {
	Sunglint *Grid
	Desert   *Grid
	Coastal  *Grid
}

// SunglintAngle computes θ_g in degrees from the raw angle grids, per §4.5
// and §9: the source consumes senZen/solZen/senAz/solAz without converting
// degrees to radians before the trig calls. That is geometrically wrong but
// is the literal behavior preserved here rather than silently corrected.
func SunglintAngle(senZen, solZen, senAz, solAz *Grid) *Grid {
	out := NewGrid(senZen.H, senZen.W)

	for i := range out.Data {
		sz := senZen.Data[i]
		lz := solZen.Data[i]
		relAz := senAz.Data[i] - solAz.Data[i]

		cosThetaG := math.Cos(sz)*math.Cos(lz) - math.Sin(sz)*math.Sin(lz)*math.Cos(relAz)
		thetaG := math.Acos(cosThetaG) * 180 / math.Pi
		out.Data[i] = thetaG
	}

	return out
}

// UnmaskedWaterMask flags the §4.5/§9 "unmasked water" indicator used by the
// coastal false-alarm rejection. The NDVI expression here is
// (R_vis2+R_vis1)/(R_vis2+R_vis1), which is identically 1 wherever the
// denominator is nonzero -- almost certainly a source bug (should be a
// difference over a sum), preserved literally per §9's open question rather
// than silently "fixed."
func UnmaskedWaterMask(rVis1, rVis2, rSwir *Grid) *Grid {
	out := NewGrid(rVis1.H, rVis1.W)

	for i := range out.Data {
		v1 := rVis1.Data[i]
		v2 := rVis2.Data[i]
		denom := v2 + v1
		ndvi := denom / denom // preserved literally, see §9

		if ndvi < 0 && safeLT(rSwir.Data[i], 50) && safeLT(v2, 150) {
			out.Data[i] = 1
		}
	}

	return out
}

// ComputeRejections evaluates the §4.5 sunglint, desert-boundary and
// coastal false-alarm rejection masks.
func ComputeRejections(
	thetaG *Grid,
	rVis1, rVis2, rSwir *Grid,
	nWaterAdj, nRejectedWater, nRejectedBG, nValid *Grid,
	maskedTMid *Grid,
	rejBGMean, rejBGMad *Grid,
	nUnmaskedWater *Grid,
	absolute *Grid,
) Rejections {
	h, w := thetaG.H, thetaG.W
	out := Rejections{
		Sunglint: NewGrid(h, w),
		Desert:   NewGrid(h, w),
		Coastal:  NewGrid(h, w),
	}

	for i := range out.Sunglint.Data {
		tg := thetaG.Data[i]

		sg8 := safeLT(tg, 2)
		sg9 := safeLT(tg, 8) && safeGT(rVis1.Data[i], 100) && safeGT(rVis2.Data[i], 200) && safeGT(rSwir.Data[i], 120)
		sg10 := safeLT(tg, 12) && (nWaterAdj.Data[i]+nRejectedWater.Data[i]) > 0

		if sg8 || sg9 || sg10 {
			out.Sunglint.Data[i] = 1
		}

		nrbg := nRejectedBG.Data[i]
		nv := nValid.Data[i]
		rbMean := rejBGMean.Data[i]
		rbMad := rejBGMad.Data[i]

		desert := safeGT(nrbg, 0.1*nv) &&
			nrbg >= 4 &&
			safeGT(rVis2.Data[i], 150) &&
			safeLT(rbMean, 345) &&
			safeLT(rbMad, 3) &&
			safeLT(maskedTMid.Data[i], rbMean+6*rbMad)

		if desert {
			out.Desert.Data[i] = 1
		}

		coastal := absolute.Data[i] != 1 && nUnmaskedWater.Data[i] > 0
		if coastal {
			out.Coastal.Data[i] = 1
		}
	}

	return out
}

// ApplyRejections removes sunglint/desert/coastal false alarms from
// allFires (§4.5's final "allFires ← allFires ∧ ¬(sunglint ∨ desert ∨ coastal)").
func ApplyRejections(allFires *Grid, rej Rejections) *Grid {
	out := allFires.Clone()
	for i := range out.Data {
		if rej.Sunglint.Data[i] == 1 || rej.Desert.Data[i] == 1 || rej.Coastal.Data[i] == 1 {
			out.Data[i] = 0
		}
	}
	return out
}
