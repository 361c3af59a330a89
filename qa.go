package frp

// QualityInfo summarizes a single granule's detection run for downstream
// monitoring, mirroring a per-file quality summary.
type QualityInfo struct {
	NumFires  int
	EmptyCrop bool
	CropRows  int
	CropCols  int
}

// QInfo builds a quality summary from the fire records and crop rows/cols
// the caller passes in; it reads no state stored on g. EmptyCrop distinguishes "bounding box selected zero pixels" from
// "zero fires found within a non-empty crop" -- both produce no FireRecords,
// but only the former indicates the caller's bounding box missed the data.
func (g *Granule) QInfo(fires []FireRecord, rows, cols []int) QualityInfo {
	return QualityInfo{
		NumFires:  len(fires),
		EmptyCrop: len(rows) == 0 || len(cols) == 0,
		CropRows:  len(rows),
		CropCols:  len(cols),
	}
}
