package encode

import (
	"bytes"
	encoding_csv "encoding/csv"
	"errors"
	"reflect"
	"strconv"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	stgpsr "github.com/yuin/stagparser"

	"github.com/openwildfire/frp"
)

// csvFields reads the csv struct tag off frp.FireRecord (via stagparser,
// the same tag-parsing library used for the tiledb/filters struct tags) and
// returns the field indices and header names of exactly the fields tagged
// with a csv name, in declaration order. A FireRecord field with no csv tag
// (e.g. Area, kept only for the TileDB archive) is omitted entirely, rather
// than appearing as a blank header cell -- the §6 CSV surface's column list
// is fixed, and fields outside it must not shift its positions.
func csvFields() (indices []int, names []string) {
	rec := frp.FireRecord{}
	defs, _ := stgpsr.ParseStruct(rec, "csv")

	t := reflect.TypeOf(rec)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		for _, d := range defs[field.Name] {
			if d.Name() != "name" {
				continue
			}
			v, ok := d.Attribute("name")
			if !ok {
				continue
			}
			s, ok := v.(string)
			if !ok {
				continue
			}
			indices = append(indices, i)
			names = append(names, s)
		}
	}
	return indices, names
}

// rowValues formats the csv-tagged fields of a single FireRecord, in the
// same order as csvFields, as strings for CSV encoding.
func rowValues(rec frp.FireRecord, indices []int) []string {
	v := reflect.ValueOf(rec)
	out := make([]string, len(indices))
	for i, idx := range indices {
		f := v.Field(idx)
		switch f.Kind() {
		case reflect.Int:
			out[i] = strconv.FormatInt(f.Int(), 10)
		case reflect.Float64:
			out[i] = strconv.FormatFloat(f.Float(), 'g', -1, 64)
		}
	}
	return out
}

// BuildCSV renders fire records into the §6 CSV layout: one header row
// naming every csv-tagged FireRecord column (Area is not included), one row
// per detection.
func BuildCSV(records []frp.FireRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := encoding_csv.NewWriter(&buf)

	indices, names := csvFields()
	if err := w.Write(names); err != nil {
		return nil, errorJoinCsv(err)
	}
	for _, rec := range records {
		if err := w.Write(rowValues(rec, indices)); err != nil {
			return nil, errorJoinCsv(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errorJoinCsv(err)
	}

	return buf.Bytes(), nil
}

func errorJoinCsv(err error) error {
	return errors.Join(frp.ErrCsvWrite, err)
}

// WriteCSV renders records to CSV and writes them to uri via TileDB's VFS
// layer, using a VFS stream
// as the one write path regardless of whether uri is a local path or an
// object store location.
func WriteCSV(uri, configURI string, records []frp.FireRecord) (int, error) {
	data, err := BuildCSV(records)
	if err != nil {
		return 0, err
	}

	var config *tiledb.Config
	if configURI == "" {
		config, err = tiledb.NewConfig()
	} else {
		config, err = tiledb.LoadConfig(configURI)
	}
	if err != nil {
		return 0, errorJoinCsv(err)
	}
	defer config.Free()

	ctx, err := tiledb.NewContext(config)
	if err != nil {
		return 0, errorJoinCsv(err)
	}
	defer ctx.Free()

	vfs, err := tiledb.NewVFS(ctx, config)
	if err != nil {
		return 0, errorJoinCsv(err)
	}
	defer vfs.Free()

	stream, err := vfs.Open(uri, tiledb.TILEDB_VFS_WRITE)
	if err != nil {
		return 0, errorJoinCsv(err)
	}
	defer stream.Close()

	n, err := stream.Write(data)
	if err != nil {
		return 0, errorJoinCsv(err)
	}

	return n, nil
}
