package decode

import (
	"encoding/json"
	"errors"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
)

var ErrReadGranule = errors.New("error reading granule JSON")

// jsonGranule is the on-disk shape ReadJSON expects: one flat array per
// band/angle/geolocation field, row-major, rows*cols long. Producing this
// file from a real product (HDF5, NetCDF, ...) is the external collaborator's
// job (§6, Non-goals); this module only consumes the flattened result.
type jsonGranule struct {
	Rows, Cols int

	Band21   []float64
	Band22   []float64
	Band31   []float64
	Band32   []float64
	Vis1     []float64
	Vis2     []float64
	Swir     []float64
	SolZen   []float64
	SenZen   []float64
	SolAz    []float64
	SenAz    []float64
	Landmask []float64
	Lat      []float64
	Lon      []float64
}

// ReadJSON loads a granule dump written in the jsonGranule shape from uri
// (local path or object store), using TileDB's VFS layer the same way the
// encode package's CSV writer (encode.WriteCSV) does, mirrored here for
// reading instead.
func ReadJSON(uri, configURI string) (*Fixture, error) {
	var (
		config *tiledb.Config
		err    error
	)
	if configURI == "" {
		config, err = tiledb.NewConfig()
	} else {
		config, err = tiledb.LoadConfig(configURI)
	}
	if err != nil {
		return nil, errors.Join(ErrReadGranule, err)
	}
	defer config.Free()

	ctx, err := tiledb.NewContext(config)
	if err != nil {
		return nil, errors.Join(ErrReadGranule, err)
	}
	defer ctx.Free()

	vfs, err := tiledb.NewVFS(ctx, config)
	if err != nil {
		return nil, errors.Join(ErrReadGranule, err)
	}
	defer vfs.Free()

	size, err := vfs.FileSize(uri)
	if err != nil {
		return nil, errors.Join(ErrReadGranule, err)
	}

	stream, err := vfs.Open(uri, tiledb.TILEDB_VFS_READ)
	if err != nil {
		return nil, errors.Join(ErrReadGranule, err)
	}
	defer stream.Close()

	buf := make([]byte, size)
	if _, err := stream.Read(buf); err != nil {
		return nil, errors.Join(ErrReadGranule, err)
	}

	var g jsonGranule
	if err := json.Unmarshal(buf, &g); err != nil {
		return nil, errors.Join(ErrReadGranule, err)
	}

	return &Fixture{
		Rows: g.Rows, Cols: g.Cols,
		B21: g.Band21, B22: g.Band22, B31: g.Band31, B32: g.Band32,
		V1: g.Vis1, V2: g.Vis2, SW: g.Swir,
		SolZen: g.SolZen, SenZen: g.SenZen,
		SolAz: g.SolAz, SenAz: g.SenAz,
		Land: g.Landmask, Lat: g.Lat, Lon: g.Lon,
	}, nil
}
