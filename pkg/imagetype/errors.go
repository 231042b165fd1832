package imagetype

import "errors"

// Sentinel errors related to payload classification.
var (
	// ErrUndetectedFormat indicates neither the byte signature nor a declared
	// MIME type identified a known format.
	ErrUndetectedFormat = errors.New("image format could not be detected")

	// ErrUnsupportedFormat indicates a MIME type was identified but has no
	// file extension mapping. Reserved for forward compatibility; the current
	// closed format set cannot reach it from a detected format.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrMalformedPayload indicates base64 decoding produced zero usable bytes
	// from non-empty input, or the input was empty after trimming whitespace.
	ErrMalformedPayload = errors.New("malformed base64 payload")
)
