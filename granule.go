package frp

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

var granuleTimePattern = regexp.MustCompile(`A(\d{4})(\d{3})\.(\d{2})(\d{2})`)

// ErrGranuleTime is returned by ParseGranuleTime when name does not contain
// a recognisable AYYYYDDD.HHMM acquisition timestamp.
var ErrGranuleTime = errors.New("granule filename does not contain a recognisable acquisition timestamp")

// ParseGranuleTime extracts the acquisition timestamp embedded in a granule
// filename of the form "*AYYYYDDD.HHMM*" (the naming convention shared by
// VIIRS and MODIS active-fire granules), converting a day-of-year field via
// julian.DayOfYearToCalendar rather than hand-rolling calendar arithmetic.
func ParseGranuleTime(name string) (time.Time, error) {
	m := granuleTimePattern.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, ErrGranuleTime
	}

	year, _ := strconv.Atoi(m[1])
	doy, _ := strconv.Atoi(m[2])
	hour, _ := strconv.Atoi(m[3])
	minute, _ := strconv.Atoi(m[4])

	month, day := julian.DayOfYearToCalendar(doy, julian.LeapYearGregorian(year))

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC), nil
}

// SelectMidIR builds the working mid-infrared brightness temperature grid
// (BAND22 in the Giglio fire algorithm) with the BAND21 saturation
// substitution of §9: BAND22 saturates at a lower radiance ceiling than
// BAND21, so wherever BAND22 reads at or above cfg.SaturationThreshold the
// BAND21 value is trusted instead.
func SelectMidIR(band21, band22 *Grid, cfg *Config) *Grid {
	out := NewGrid(band22.H, band22.W)
	for i := range out.Data {
		v := band22.Data[i]
		if v >= cfg.SaturationThreshold {
			out.Data[i] = band21.Data[i]
			continue
		}
		out.Data[i] = v
	}
	return out
}

// Inputs bundles the raw per-granule grids a Detect call consumes. Every
// field is a full-swath grid aligned pixel-for-pixel with every other
// field; CropIndices narrows the region actually scanned for fires.
type Inputs struct {
	Band21   *Grid // mid-infrared brightness temperature, channel 21
	Band22   *Grid // mid-infrared brightness temperature, channel 22 (primary)
	Band31   *Grid // long-wave brightness temperature
	Band32   *Grid // long-wave brightness temperature, secondary channel (cloud test)
	Vis1     *Grid // visible reflectance, band 1
	Vis2     *Grid // visible reflectance, band 2
	Swir     *Grid // short-wave infrared reflectance, band 7
	SolZen   *Grid // solar zenith angle, centi-degrees
	SenZen   *Grid // sensor zenith angle
	SolAz    *Grid // solar azimuth angle
	SenAz    *Grid // sensor azimuth angle
	Landmask *Grid
	Lat      *Grid
	Lon      *Grid
}

// Granule wraps one swath's raw inputs together with the configuration and
// acquisition time needed to run the detection cascade over it.
type Granule struct {
	Name   string
	Time   time.Time
	Inputs Inputs
	Config *Config
}

// NewGranule builds a Granule from its raw inputs, parsing the acquisition
// time out of name. Callers that already know the time (e.g. from a
// companion metadata file) can set g.Time after construction instead.
func NewGranule(name string, in Inputs, cfg *Config) (*Granule, error) {
	t, err := ParseGranuleTime(name)
	if err != nil {
		return nil, err
	}
	return &Granule{Name: name, Time: t, Inputs: in, Config: cfg}, nil
}

// CropIndices returns the contiguous row/column span covering every pixel
// that falls inside the granule's bounding box, per §4.1/§6 (see
// BoundingBoxIndices).
func (g *Granule) CropIndices(minLat, maxLat, minLon, maxLon float64) (rows, cols []int) {
	return BoundingBoxIndices(g.Inputs.Lat, g.Inputs.Lon, minLat, maxLat, minLon, maxLon)
}

// cropGrid extracts the rectangular region spanning rows x cols out of g.
func cropGrid(g *Grid, rows, cols []int) *Grid {
	h, w := len(rows), len(cols)
	out := NewGrid(h, w)
	r0, c0 := rows[0], cols[0]
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			out.Set(r, c, g.At(r0+r, c0+c))
		}
	}
	return out
}

// Detect runs the full §4 cascade over the granule's bounding-box crop
// (§4.1/§6, cfg.MinLat..cfg.MaxLon) and returns every fire pixel that
// survives rejection and the FRP plausibility gate, offset back into the
// coordinates of the full swath. Returns ErrEmptyCrop if the bounding box
// spans fewer than two rows or fewer than two columns.
//
// The pipeline mirrors the module layout: masks.go builds the sentinel
// overlays, stats.go/neighbors.go derive the adaptive background statistics
// and neighbor counts, cascade.go runs the detection tests and false-alarm
// rejections, and power.go computes FRP and confidence for whatever
// survives.
func (g *Granule) Detect() ([]FireRecord, error) {
	cfg := g.Config

	rows, cols := g.CropIndices(cfg.MinLat, cfg.MaxLat, cfg.MinLon, cfg.MaxLon)
	if len(rows) < 2 || len(cols) < 2 {
		return nil, ErrEmptyCrop
	}

	in := Inputs{
		Band21:   cropGrid(g.Inputs.Band21, rows, cols),
		Band22:   cropGrid(g.Inputs.Band22, rows, cols),
		Band31:   cropGrid(g.Inputs.Band31, rows, cols),
		Band32:   cropGrid(g.Inputs.Band32, rows, cols),
		Vis1:     cropGrid(g.Inputs.Vis1, rows, cols),
		Vis2:     cropGrid(g.Inputs.Vis2, rows, cols),
		Swir:     cropGrid(g.Inputs.Swir, rows, cols),
		SolZen:   cropGrid(g.Inputs.SolZen, rows, cols),
		SenZen:   cropGrid(g.Inputs.SenZen, rows, cols),
		SolAz:    cropGrid(g.Inputs.SolAz, rows, cols),
		SenAz:    cropGrid(g.Inputs.SenAz, rows, cols),
		Landmask: cropGrid(g.Inputs.Landmask, rows, cols),
		Lat:      cropGrid(g.Inputs.Lat, rows, cols),
		Lon:      cropGrid(g.Inputs.Lon, rows, cols),
	}

	records := g.detectOver(in)

	rowOffset, colOffset := rows[0], cols[0]
	for i := range records {
		records[i].Line += rowOffset
		records[i].Sample += colOffset
		records[i].Area = PixelArea(records[i].Sample)
	}

	return records, nil
}

// detectOver runs the cascade over in directly, with no cropping and no
// offset applied to the resulting records' Line/Sample fields.
func (g *Granule) detectOver(in Inputs) []FireRecord {
	cfg := g.Config

	deltaT := NewGrid(in.Band22.H, in.Band22.W)
	tMid := SelectMidIR(in.Band21, in.Band22, cfg)
	for i := range deltaT.Data {
		deltaT.Data[i] = tMid.Data[i] - in.Band31.Data[i]
	}

	day := DayMask(in.SolZen)
	water := WaterMask(in.Landmask)
	cloud := CloudMask(in.Vis1, in.Vis2, in.Band32)
	bgCandidate := BackgroundCandidateMask(tMid, deltaT, day, cfg)

	maskedTMid := BuildWorkingField(tMid, water, cloud, NewGrid(tMid.H, tMid.W))
	maskedTLw := BuildWorkingField(in.Band31, water, cloud, NewGrid(tMid.H, tMid.W))
	maskedDeltaT := BuildWorkingField(deltaT, water, cloud, NewGrid(tMid.H, tMid.W))

	bgTMid := BuildWorkingField(tMid, water, cloud, bgCandidate)
	bgTLw := BuildWorkingField(in.Band31, water, cloud, bgCandidate)
	bgDeltaT := BuildWorkingField(deltaT, water, cloud, bgCandidate)

	tMidMean, tMidMad := AdaptiveMeanMAD(bgTMid, cfg)
	tLwMean, tLwMad := AdaptiveMeanMAD(bgTLw, cfg)
	deltaTMean, deltaTMad := AdaptiveMeanMAD(bgDeltaT, cfg)

	rejBGField := RejectedBackgroundOnlyField(tMid, bgCandidate)
	rejBGMean, rejBGMad := AdaptiveMeanMAD(rejBGField, cfg)

	pixelTests := ComputePixelTests(tMid, deltaT, in.Vis2, day, cfg)

	ct := ComputeContextualTests(ContextualInputs{
		MaskedTMid:   maskedTMid,
		MaskedTLw:    maskedTLw,
		MaskedDeltaT: maskedDeltaT,
		TMidMean:     tMidMean,
		TMidMad:      tMidMad,
		TLwMean:      tLwMean,
		TLwMad:       tLwMad,
		DeltaTMean:   deltaTMean,
		DeltaTMad:    deltaTMad,
		RejBGMad:     rejBGMad,
	})

	allFires := CombineFires(pixelTests, ct, day)

	nCloudAdj := AdjacentCount3x3(cloud)
	nWaterAdj := AdjacentCount3x3(water)

	contextCounts := AdaptiveContextCounts(bgTMid, cfg)
	unmasked := UnmaskedWaterMask(in.Vis1, in.Vis2, in.Swir)
	nUnmaskedWater := AdaptiveUnmaskedWaterCount(bgTMid, unmasked, cfg)

	thetaG := SunglintAngle(in.SenZen, in.SolZen, in.SenAz, in.SolAz)
	rej := ComputeRejections(
		thetaG,
		in.Vis1, in.Vis2, in.Swir,
		nWaterAdj, contextCounts.NRejectedWater, contextCounts.NRejectedBG, contextCounts.NValid,
		maskedTMid,
		rejBGMean, rejBGMad,
		nUnmaskedWater,
		pixelTests.Absolute,
	)

	allFires = ApplyRejections(allFires, rej)

	frp := FRP(tMid, tMidMean, allFires, pixelTests.Potential)

	z4 := NewGrid(tMid.H, tMid.W)
	zDeltaT := NewGrid(tMid.H, tMid.W)
	for i := range z4.Data {
		z4.Data[i] = (maskedTMid.Data[i] - tMidMean.Data[i]) / tMidMad.Data[i]
		zDeltaT.Data[i] = (maskedDeltaT.Data[i] - deltaTMean.Data[i]) / deltaTMad.Data[i]
	}

	conf := ComputeConfidence(ConfidenceInputs{
		TMidBgMasked: maskedTMid,
		Z4:           z4,
		ZDeltaT:      zDeltaT,
		NCloudAdj:    nCloudAdj,
		NWaterAdj:    nWaterAdj,
	})

	var records []FireRecord

	for row := 0; row < in.Band22.H; row++ {
		for col := 0; col < in.Band22.W; col++ {
			i := row*in.Band22.W + col
			if allFires.Data[i] != 1 {
				continue
			}

			power := frp.Data[i]
			if !FRPValid(power) {
				continue
			}

			var confidence float64
			if day.Data[i] == 1 {
				confidence = conf.Day.Data[i]
			} else {
				confidence = conf.Night.Data[i]
			}

			records = append(records, FireRecord{
				Line:       row,
				Sample:     col,
				Lat:        in.Lat.Data[i],
				Lon:        in.Lon.Data[i],
				T21:        in.Band22.Data[i],
				T31:        in.Band31.Data[i],
				MeanT21:    tMidMean.Data[i],
				MeanT31:    tLwMean.Data[i],
				MeanDT:     deltaTMean.Data[i],
				MADT21:     tMidMad.Data[i],
				MADT31:     tLwMad.Data[i],
				MADDT:      deltaTMad.Data[i],
				Power:      power,
				AdjCloud:   int(nCloudAdj.Data[i]),
				AdjWater:   int(nWaterAdj.Data[i]),
				NumValid:   int(contextCounts.NValid.Data[i]),
				Confidence: confidence * 100,
			})
		}
	}

	return records
}
