package frp

// safeGT and safeLT centralize the NaN-safe comparisons required by §4.5:
// every threshold test in the detection cascade (and the mask builder that
// feeds it) treats NaN as failing the comparison, never as succeeding.
// Go's native `>`/`<` already return false for NaN operands, so these are
// thin, explicitly-named wrappers rather than additional logic -- the point
// is a single place a reader checks to confirm the NaN-safety invariant
// holds everywhere it is asserted, mirroring a single
// apply_scale_factor helper used from many call sites.
func safeGT(a, b float64) bool {
	return a > b
}

func safeLT(a, b float64) bool {
	return a < b
}
