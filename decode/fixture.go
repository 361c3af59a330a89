package decode

// Fixture is an in-memory GranuleReader: every field is supplied directly
// rather than parsed out of a file on disk. Tests build one by hand, and
// ReadJSON returns one filled from a decoded JSON dump.
type Fixture struct {
	Rows, Cols int

	B21, B22, B31, B32   []float64
	V1, V2, SW            []float64
	SolZen, SenZen        []float64
	SolAz, SenAz          []float64
	Land, Lat, Lon        []float64
}

func (f *Fixture) Dims() (int, int)                     { return f.Rows, f.Cols }
func (f *Fixture) Band21() ([]float64, error)            { return f.B21, nil }
func (f *Fixture) Band22() ([]float64, error)            { return f.B22, nil }
func (f *Fixture) Band31() ([]float64, error)            { return f.B31, nil }
func (f *Fixture) Band32() ([]float64, error)            { return f.B32, nil }
func (f *Fixture) Vis1() ([]float64, error)              { return f.V1, nil }
func (f *Fixture) Vis2() ([]float64, error)              { return f.V2, nil }
func (f *Fixture) Swir() ([]float64, error)              { return f.SW, nil }
func (f *Fixture) SolarZenith() ([]float64, error)       { return f.SolZen, nil }
func (f *Fixture) SensorZenith() ([]float64, error)      { return f.SenZen, nil }
func (f *Fixture) SolarAzimuth() ([]float64, error)      { return f.SolAz, nil }
func (f *Fixture) SensorAzimuth() ([]float64, error)     { return f.SenAz, nil }
func (f *Fixture) Landmask() ([]float64, error)          { return f.Land, nil }
func (f *Fixture) Latitude() ([]float64, error)          { return f.Lat, nil }
func (f *Fixture) Longitude() ([]float64, error)         { return f.Lon, nil }
