// Package decode defines the boundary between this module and whatever
// format a granule actually arrives in (HDF5, NetCDF, a vendor-specific
// swath product). Decoding those formats is out of scope (§6, Non-goals):
// callers supply a GranuleReader, and everything downstream only ever sees
// plain grids.
package decode

// GranuleReader is the minimal surface frp.NewGranuleFromReader needs from a decoded
// granule file: every band, angle and geolocation field as a flat
// row-major slice, plus the swath dimensions. Implementations translate
// whatever on-disk layout a real product uses (HDF5 datasets, NetCDF
// variables, ...) into this shape; this module supplies none of those
// implementations itself.
type GranuleReader interface {
	Dims() (rows, cols int)

	Band21() ([]float64, error)
	Band22() ([]float64, error)
	Band31() ([]float64, error)
	Band32() ([]float64, error)
	Vis1() ([]float64, error)
	Vis2() ([]float64, error)
	Swir() ([]float64, error)
	SolarZenith() ([]float64, error)
	SensorZenith() ([]float64, error)
	SolarAzimuth() ([]float64, error)
	SensorAzimuth() ([]float64, error)
	Landmask() ([]float64, error)
	Latitude() ([]float64, error)
	Longitude() ([]float64, error)
}
