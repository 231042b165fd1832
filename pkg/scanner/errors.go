package scanner

import "errors"

// ErrNoPayloadsFound indicates a scan over HTML or text yielded zero
// candidate data URLs.
var ErrNoPayloadsFound = errors.New("no base64 image payloads found")
