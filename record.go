package frp

// FireRecord is one detected fire pixel surviving the full cascade (§4.5)
// and the FRP plausibility gate (§4.6). Field order and the csv tag values
// fix the column order and header text of the CSV output surface exactly,
// per §6. Area carries no csv tag: the §6 CSV header is the fixed 17-field
// list verbatim, so Area is only ever written to the TileDB archive.
type FireRecord struct {
	Line       int     `csv:"name=FRPline" tiledb:"dtype=int32,ftype=attr" filters:"zstd(level=16)"`
	Sample     int     `csv:"name=FRPsample" tiledb:"dtype=int32,ftype=attr" filters:"zstd(level=16)"`
	Lat        float64 `csv:"name=FRPlats" tiledb:"dtype=float64,ftype=dim" filters:"zstd(level=16)"`
	Lon        float64 `csv:"name=FRPlons" tiledb:"dtype=float64,ftype=dim" filters:"zstd(level=16)"`
	T21        float64 `csv:"name=FRPT21" tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	T31        float64 `csv:"name=FRPT31" tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	MeanT21    float64 `csv:"name=FRPMeanT21" tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	MeanT31    float64 `csv:"name=FRPMeanT31" tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	MeanDT     float64 `csv:"name=FRPMeanDT" tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	MADT21     float64 `csv:"name=FRPMADT21" tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	MADT31     float64 `csv:"name=FRPMADT31" tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	MADDT      float64 `csv:"name=FRP_MAD_DT" tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	Power      float64 `csv:"name=FRPpower" tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	Area       float64 `tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	AdjCloud   int     `csv:"name=FRP_AdjCloud" tiledb:"dtype=int32,ftype=attr" filters:"zstd(level=16)"`
	AdjWater   int     `csv:"name=FRP_AdjWater" tiledb:"dtype=int32,ftype=attr" filters:"zstd(level=16)"`
	NumValid   int     `csv:"name=FRP_NumValid" tiledb:"dtype=int32,ftype=attr" filters:"zstd(level=16)"`
	Confidence float64 `csv:"name=FRP_confidence" tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
}
