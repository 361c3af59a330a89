package frp

import "errors"

// Sentinel errors for the kinds named in §7. Callers wrap lower-level
// failures with errors.Join(ErrXxx, err) so errors.Is still resolves against
// these stable values.
var (
	ErrDecodeFailure = errors.New("granule decode failure")
	ErrEmptyCrop     = errors.New("bounding box crop yields fewer than two distinct rows or columns")
	ErrMissingLayer  = errors.New("granule missing required layer")
	ErrArchiveWrite  = errors.New("error writing fire record archive")
	ErrArchiveSchema = errors.New("error creating fire record archive schema")
	ErrCsvWrite      = errors.New("error writing csv output")
)
