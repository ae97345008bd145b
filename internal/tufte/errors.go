package tufte

import "errors"

// Sentinel errors returned by passes and the pipeline.
var (
	// Document errors: the author can fix these in the source.
	ErrAmbiguousKey        = errors.New("ambiguous citation key")
	ErrUnresolvedReference = errors.New("unresolved reference")

	// Programming and configuration errors.
	ErrMalformedRangeTest = errors.New("range test is not callable")
	ErrUnknownPass        = errors.New("unknown pass")
	ErrNilTree            = errors.New("nil document tree")
)
