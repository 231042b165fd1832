// Package convert turns individual base64 image payloads into decoded,
// classified image buffers ready to be written out.
package convert

import (
	"fmt"
	"strings"

	"b64img/pkg/imagetype"
)

// Image is a decoded payload together with its classification.
type Image struct {
	// MIME is the detected or declared MIME type, e.g. "image/png".
	MIME string
	// Ext is the file extension matching MIME, without the leading dot.
	Ext string
	// Data holds the decoded image bytes.
	Data []byte
}

// Payload decodes and classifies a single payload, given either as a raw
// base64 string or as a data URL. For data URLs the declared MIME type wins;
// raw payloads are classified by byte signature.
func Payload(payload string) (*Image, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, fmt.Errorf("empty payload: %w", imagetype.ErrMalformedPayload)
	}

	body := payload
	declared := ""
	if mime, data, ok := imagetype.ParseDataURL(payload); ok {
		declared = mime
		body = data
	}

	data := imagetype.DecodeLenient(body)
	if len(data) == 0 {
		return nil, fmt.Errorf("decoding payload: %w", imagetype.ErrMalformedPayload)
	}

	mime := declared
	if mime == "" {
		format, ok := imagetype.DetectBytes(data)
		if !ok {
			return nil, imagetype.ErrUndetectedFormat
		}
		mime = format.MIME()
	}

	ext, err := imagetype.ExtensionForMIME(mime)
	if err != nil {
		return nil, err
	}

	return &Image{MIME: mime, Ext: ext, Data: data}, nil
}

// Result is the outcome of converting one payload within a batch.
type Result struct {
	// Index is the payload's position in the input batch.
	Index int
	// Image is the converted image, nil when Err is set.
	Image *Image
	// Err records why this payload failed; other payloads are unaffected.
	Err error
}

// Batch converts each payload independently and in order. A failure on one
// payload never prevents the remaining payloads from being attempted.
func Batch(payloads []string) []Result {
	results := make([]Result, 0, len(payloads))
	for i, p := range payloads {
		img, err := Payload(p)
		results = append(results, Result{Index: i, Image: img, Err: err})
	}
	return results
}
