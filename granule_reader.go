package frp

import (
	"errors"

	"github.com/openwildfire/frp/decode"
)

// NewGranuleFromReader adapts a decode.GranuleReader into a Granule, wiring
// every flat band/angle/geolocation slice into the Grid shape the detection
// pipeline expects.
func NewGranuleFromReader(name string, r decode.GranuleReader, cfg *Config) (*Granule, error) {
	rows, cols := r.Dims()

	grid := func(data []float64, err error) (*Grid, error) {
		if err != nil {
			return nil, errors.Join(ErrDecodeFailure, err)
		}
		return &Grid{H: rows, W: cols, Data: data}, nil
	}

	var in Inputs
	var err error

	if in.Band21, err = grid(r.Band21()); err != nil {
		return nil, err
	}
	if in.Band22, err = grid(r.Band22()); err != nil {
		return nil, err
	}
	if in.Band31, err = grid(r.Band31()); err != nil {
		return nil, err
	}
	if in.Band32, err = grid(r.Band32()); err != nil {
		return nil, err
	}
	if in.Vis1, err = grid(r.Vis1()); err != nil {
		return nil, err
	}
	if in.Vis2, err = grid(r.Vis2()); err != nil {
		return nil, err
	}
	if in.Swir, err = grid(r.Swir()); err != nil {
		return nil, err
	}
	if in.SolZen, err = grid(r.SolarZenith()); err != nil {
		return nil, err
	}
	if in.SenZen, err = grid(r.SensorZenith()); err != nil {
		return nil, err
	}
	if in.SolAz, err = grid(r.SolarAzimuth()); err != nil {
		return nil, err
	}
	if in.SenAz, err = grid(r.SensorAzimuth()); err != nil {
		return nil, err
	}
	if in.Landmask, err = grid(r.Landmask()); err != nil {
		return nil, err
	}
	if in.Lat, err = grid(r.Latitude()); err != nil {
		return nil, err
	}
	if in.Lon, err = grid(r.Longitude()); err != nil {
		return nil, err
	}

	return NewGranule(name, in, cfg)
}
