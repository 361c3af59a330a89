package encode

import (
	"errors"
	"math"
	"reflect"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	stgpsr "github.com/yuin/stagparser"

	"github.com/openwildfire/frp"
)

var errArchiveSchema = frp.ErrArchiveSchema
var errArchiveWrite = frp.ErrArchiveWrite

// fireRecordSchema builds the sparse TileDB array schema for FireRecord:
// Lon/Lat are the dimensional axes (as a sparse schema keyed on point coordinates would,
// which dimensions beam data on X/Y), every other field is a compressed
// attribute, per the tiledb/filters struct tags on FireRecord.
func fireRecordSchema(ctx *tiledb.Context) (*tiledb.ArraySchema, error) {
	domain, err := tiledb.NewDomain(ctx)
	if err != nil {
		return nil, errors.Join(errArchiveSchema, err)
	}
	defer domain.Free()

	minF64 := -math.MaxFloat64
	tileSz := uint64(1000)

	xdim, err := tiledb.NewDimension(ctx, "X", tiledb.TILEDB_FLOAT64, []float64{minF64, math.MaxFloat64}, tileSz)
	if err != nil {
		return nil, errors.Join(errArchiveSchema, err)
	}
	defer xdim.Free()

	ydim, err := tiledb.NewDimension(ctx, "Y", tiledb.TILEDB_FLOAT64, []float64{minF64, math.MaxFloat64}, tileSz)
	if err != nil {
		return nil, errors.Join(errArchiveSchema, err)
	}
	defer ydim.Free()

	if err := domain.AddDimensions(xdim, ydim); err != nil {
		return nil, errors.Join(errArchiveSchema, err)
	}

	schema, err := tiledb.NewArraySchema(ctx, tiledb.TILEDB_SPARSE)
	if err != nil {
		return nil, errors.Join(errArchiveSchema, err)
	}

	if err := schema.SetDomain(domain); err != nil {
		return nil, errors.Join(errArchiveSchema, err)
	}
	if err := schema.SetCapacity(100_000); err != nil {
		return nil, errors.Join(errArchiveSchema, err)
	}
	if err := schema.SetCellOrder(tiledb.TILEDB_HILBERT); err != nil {
		return nil, errors.Join(errArchiveSchema, err)
	}
	if err := schema.SetTileOrder(tiledb.TILEDB_ROW_MAJOR); err != nil {
		return nil, errors.Join(errArchiveSchema, err)
	}
	if err := schema.SetAllowsDups(true); err != nil {
		return nil, errors.Join(errArchiveSchema, err)
	}

	rec := frp.FireRecord{}
	t := reflect.TypeOf(rec)
	filtDefs, _ := stgpsr.ParseStruct(rec, "filters")
	tdbDefs, _ := stgpsr.ParseStruct(rec, "tiledb")

	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Name

		fieldTdbDefs := make(map[string]stgpsr.Definition)
		for _, d := range tdbDefs[name] {
			fieldTdbDefs[d.Name()] = d
		}

		def, ok := fieldTdbDefs["ftype"]
		if !ok {
			return nil, errors.Join(errArchiveSchema, errors.New("ftype tag not found for "+name))
		}
		ftypeVal, _ := def.Attribute("ftype")
		if ftypeVal == "dim" {
			// Lat/Lon are the X/Y dimensions already added above.
			continue
		}

		if err := createAttr(name, filtDefs[name], fieldTdbDefs, schema, ctx); err != nil {
			return nil, errors.Join(errArchiveSchema, err)
		}
	}

	if err := schema.Check(); err != nil {
		return nil, errors.Join(errArchiveSchema, err)
	}

	return schema, nil
}

// WriteArchive creates a sparse TileDB array at uri and writes records into
// it, keyed on Lon/Lat. It always creates the array: if one already exists
// at uri, creation fails and that error is returned; records are not
// appended to an existing array. This is the optional
// archive output surface of §6: callers that only want CSV never need this
// package's TileDB-backed path.
func WriteArchive(uri, configURI string, records []frp.FireRecord) error {
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
		return errors.Join(errArchiveWrite, err)
	}
	defer config.Free()

	ctx, err := tiledb.NewContext(config)
	if err != nil {
		return errors.Join(errArchiveWrite, err)
	}
	defer ctx.Free()

	schema, err := fireRecordSchema(ctx)
	if err != nil {
		return err
	}
	defer schema.Free()

	array, err := tiledb.NewArray(ctx, uri)
	if err != nil {
		return errors.Join(errArchiveWrite, err)
	}
	defer array.Free()

	if err := array.Create(schema); err != nil {
		return errors.Join(errArchiveWrite, err)
	}

	if err := array.Open(tiledb.TILEDB_WRITE); err != nil {
		return errors.Join(errArchiveWrite, err)
	}
	defer array.Close()

	query, err := tiledb.NewQuery(ctx, array)
	if err != nil {
		return errors.Join(errArchiveWrite, err)
	}
	defer query.Free()

	if err := query.SetLayout(tiledb.TILEDB_UNORDERED); err != nil {
		return errors.Join(errArchiveWrite, err)
	}

	n := len(records)
	xs := make([]float64, n)
	ys := make([]float64, n)
	lines := make([]int32, n)
	samples := make([]int32, n)
	t21 := make([]float64, n)
	t31 := make([]float64, n)
	meanT21 := make([]float64, n)
	meanT31 := make([]float64, n)
	meanDT := make([]float64, n)
	madT21 := make([]float64, n)
	madT31 := make([]float64, n)
	madDT := make([]float64, n)
	power := make([]float64, n)
	area := make([]float64, n)
	adjCloud := make([]int32, n)
	adjWater := make([]int32, n)
	numValid := make([]int32, n)
	confidence := make([]float64, n)

	for i, r := range records {
		xs[i] = r.Lon
		ys[i] = r.Lat
		lines[i] = int32(r.Line)
		samples[i] = int32(r.Sample)
		t21[i] = r.T21
		t31[i] = r.T31
		meanT21[i] = r.MeanT21
		meanT31[i] = r.MeanT31
		meanDT[i] = r.MeanDT
		madT21[i] = r.MADT21
		madT31[i] = r.MADT31
		madDT[i] = r.MADDT
		power[i] = r.Power
		area[i] = r.Area
		adjCloud[i] = int32(r.AdjCloud)
		adjWater[i] = int32(r.AdjWater)
		numValid[i] = int32(r.NumValid)
		confidence[i] = r.Confidence
	}

	setBuffers := []struct {
		name string
		data any
	}{
		{"X", xs}, {"Y", ys},
		{"Line", lines}, {"Sample", samples},
		{"T21", t21}, {"T31", t31},
		{"MeanT21", meanT21}, {"MeanT31", meanT31}, {"MeanDT", meanDT},
		{"MADT21", madT21}, {"MADT31", madT31}, {"MADDT", madDT},
		{"Power", power}, {"Area", area},
		{"AdjCloud", adjCloud}, {"AdjWater", adjWater}, {"NumValid", numValid},
		{"Confidence", confidence},
	}

	for _, b := range setBuffers {
		switch data := b.data.(type) {
		case []float64:
			if _, err := query.SetDataBuffer(b.name, data); err != nil {
				return errors.Join(errArchiveWrite, err)
			}
		case []int32:
			if _, err := query.SetDataBuffer(b.name, data); err != nil {
				return errors.Join(errArchiveWrite, err)
			}
		}
	}

	if err := query.Submit(); err != nil {
		return errors.Join(errArchiveWrite, err)
	}

	return nil
}
