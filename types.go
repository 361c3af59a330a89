package frp

// Sentinel values carried through the radiometric working fields so that
// mask state and brightness temperature can share the same float64 grid.
// Never confuse these with valid brightness temperatures, which are always
// positive. The total order of meaning follows spec §3 exactly and must
// never be reversed when overlaying masks (water -> cloud -> background).
const (
	SentinelWater         float64 = -1
	SentinelCloud         float64 = -2
	SentinelBackground    float64 = -3
	SentinelUnset         float64 = -4
	SentinelExclude       float64 = -5
	SentinelUnmaskedWater float64 = -6
)

// Grid is a row-major H x W raster of float64 values. All fields produced
// or consumed by the core share this one shape; integer-valued channels
// (reflectance x1000, landmask) are still carried as float64 so that the
// sentinel encoding in §3 can be applied uniformly.
type Grid struct {
	H, W int
	Data []float64
}

// NewGrid allocates a zeroed H x W grid.
func NewGrid(h, w int) *Grid {
	return &Grid{H: h, W: w, Data: make([]float64, h*w)}
}

// At returns the value at (row, col). Out-of-bounds reads are reflected
// symmetrically back into the grid, as required for the adaptive stencils
// in §4.2/§4.3 near the raster edge.
func (g *Grid) At(row, col int) float64 {
	return g.Data[g.reflect(row)*g.W+g.reflectCol(col)]
}

// Set writes the value at (row, col). No bounds reflection on write; callers
// only ever write in-bounds cells.
func (g *Grid) Set(row, col int, v float64) {
	g.Data[row*g.W+col] = v
}

func (g *Grid) reflect(row int) int {
	return reflectIndex(row, g.H)
}

func (g *Grid) reflectCol(col int) int {
	return reflectIndex(col, g.W)
}

// reflectIndex maps an out-of-bounds index back into [0, n) by symmetric
// reflection about the nearest edge, repeating if the offset is larger than
// one full grid width (relevant only for pathologically small grids).
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - i - 1
		}
	}
	return i
}

// Clone returns a deep copy of the grid, used whenever a stage must read an
// immutable snapshot of its input while another stage writes outputs (§5).
func (g *Grid) Clone() *Grid {
	out := &Grid{H: g.H, W: g.W, Data: make([]float64, len(g.Data))}
	copy(out.Data, g.Data)
	return out
}

// Config is the single immutable configuration record threaded through every
// stage (§9 "Global mutable state"). No process-wide state is required.
type Config struct {
	MinK      int
	MaxK      int
	MinNcount int
	MinNfrac  float64

	// ReductionFactor ("r" in §4.4/§4.5) tightens or loosens the pixel-level
	// thresholds; IncreaseFactor = 2 - ReductionFactor is the complementary
	// knob used by the daytime potential-fire VIS2 test. Both are kept, per
	// §9, even though they collapse to 1 when ReductionFactor == 1.
	ReductionFactor float64
	IncreaseFactor  float64

	// SaturationThreshold is the BAND22 brightness temperature at or above
	// which BAND21 is substituted in (§6, §9). An earlier BAND21-primary variant used 450 for a
	// BAND21-primary scheme; this module is BAND22-primary per §9, default 331.
	SaturationThreshold float64

	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// DefaultConfig returns the configuration named in §4/§6/§9, following a
// constructor-function pattern over a bundle of named constants rather than
// package-level vars.
func DefaultConfig() *Config {
	r := 1.0
	return &Config{
		MinK:                5,
		MaxK:                21,
		MinNcount:           8,
		MinNfrac:            0.25,
		ReductionFactor:     r,
		IncreaseFactor:      2 - r,
		SaturationThreshold: 331,
		MinLat:              65,
		MaxLat:              65.525,
		MinLon:              -148,
		MaxLon:              -146,
	}
}

// WithReductionFactor returns a copy of c with ReductionFactor (and its
// derived IncreaseFactor) replaced, for the sensitivity studies named in §9.
func (c *Config) WithReductionFactor(r float64) *Config {
	cp := *c
	cp.ReductionFactor = r
	cp.IncreaseFactor = 2 - r
	return &cp
}
