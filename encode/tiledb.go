package encode

import (
	"errors"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	stgpsr "github.com/yuin/stagparser"
)

var errCreateAttr = errors.New("error creating tiledb attribute")

// addFilters sequentially appends compression filters to a filter pipeline.
func addFilters(list *tiledb.FilterList, filters ...*tiledb.Filter) error {
	for _, f := range filters {
		if err := list.AddFilter(f); err != nil {
			return err
		}
	}
	return nil
}

// zstdFilter initialises the Zstandard compression filter at the given
// level.
func zstdFilter(ctx *tiledb.Context, level int32) (*tiledb.Filter, error) {
	filt, err := tiledb.NewFilter(ctx, tiledb.TILEDB_FILTER_ZSTD)
	if err != nil {
		return nil, err
	}
	if err := filt.SetOption(tiledb.TILEDB_COMPRESSION_LEVEL, level); err != nil {
		filt.Free()
		return nil, err
	}
	return filt, nil
}

// createAttr builds one tiledb attribute from a struct field's tiledb and
// filters tags, following the same tag-driven attribute construction. FireRecord
// only ever uses zstd, so a broader filter-name switch would have for
// gzip/lz4/rle/bzip2 is not reproduced here -- every column uses the same
// pipeline.
func createAttr(
	fieldName string,
	filterDefs []stgpsr.Definition,
	tiledbDefs map[string]stgpsr.Definition,
	schema *tiledb.ArraySchema,
	ctx *tiledb.Context,
) error {
	def, ok := tiledbDefs["dtype"]
	if !ok {
		return errors.Join(errCreateAttr, errors.New("dtype tag not found"))
	}
	dtypeVal, _ := def.Attribute("dtype")
	dtype, _ := dtypeVal.(string)

	var tdbType tiledb.Datatype
	switch dtype {
	case "int32":
		tdbType = tiledb.TILEDB_INT32
	case "int64":
		tdbType = tiledb.TILEDB_INT64
	case "float32":
		tdbType = tiledb.TILEDB_FLOAT32
	case "float64":
		tdbType = tiledb.TILEDB_FLOAT64
	default:
		return errors.Join(errCreateAttr, errors.New("unsupported dtype: "+dtype))
	}

	filts, err := tiledb.NewFilterList(ctx)
	if err != nil {
		return errors.Join(errCreateAttr, err)
	}
	defer filts.Free()

	for _, f := range filterDefs {
		if f.Name() != "zstd" {
			continue
		}
		levelVal, ok := f.Attribute("level")
		if !ok {
			return errors.Join(errCreateAttr, errors.New("zstd level not defined"))
		}
		level, _ := levelVal.(int64)
		filt, err := zstdFilter(ctx, int32(level))
		if err != nil {
			return errors.Join(errCreateAttr, err)
		}
		defer filt.Free()
		if err := addFilters(filts, filt); err != nil {
			return errors.Join(errCreateAttr, err)
		}
	}

	attr, err := tiledb.NewAttribute(ctx, fieldName, tdbType)
	if err != nil {
		return errors.Join(errCreateAttr, err)
	}
	defer attr.Free()

	if err := attr.SetFilterList(filts); err != nil {
		return errors.Join(errCreateAttr, err)
	}

	return schema.AddAttributes(attr)
}
