package imagetype

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
)

const dataURLPrefix = "data:"

// window is one byte-range comparison within a signature check.
type window struct {
	offset int
	magic  []byte
}

// signature maps a format to the byte windows that must all match.
// Checked in fixed priority order; first full match wins.
var signatures = []struct {
	format  Format
	windows []window
}{
	{FormatJPEG, []window{{0, []byte{0xFF, 0xD8, 0xFF}}}},
	{FormatPNG, []window{{0, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}}}},
	{FormatGIF, []window{{0, []byte("GIF8")}}},
	{FormatWebP, []window{{0, []byte("RIFF")}, {8, []byte("WEBP")}}},
	{FormatBMP, []window{{0, []byte("BM")}}},
	{FormatTIFF, []window{{0, []byte{0x49, 0x49, 0x2A, 0x00}}}},
	{FormatTIFF, []window{{0, []byte{0x4D, 0x4D, 0x00, 0x2A}}}},
}

// Detect classifies a payload string and returns its MIME type.
//
// If input is a data URL, the declared MIME type is returned verbatim without
// decoding the body. Otherwise the input is leniently base64-decoded and the
// leading bytes are matched against known signatures. A non-empty input that
// yields no usable bytes returns ErrMalformedPayload; decodable bytes with no
// recognized signature return ErrUndetectedFormat.
func Detect(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("empty input: %w", ErrMalformedPayload)
	}

	if mime, _, ok := ParseDataURL(input); ok {
		return mime, nil
	}

	buf := DecodeLenient(input)
	if len(buf) == 0 {
		return "", fmt.Errorf("no decodable base64 data: %w", ErrMalformedPayload)
	}

	format, ok := DetectBytes(buf)
	if !ok {
		return "", ErrUndetectedFormat
	}
	return format.MIME(), nil
}

// DetectBytes matches the leading bytes of data against the signature table.
// Buffers shorter than a signature window simply fail that window; short or
// empty input never faults.
func DetectBytes(data []byte) (Format, bool) {
	for _, sig := range signatures {
		if matchAll(data, sig.windows) {
			return sig.format, true
		}
	}
	return "", false
}

func matchAll(data []byte, windows []window) bool {
	for _, w := range windows {
		end := w.offset + len(w.magic)
		if len(data) < end || !bytes.Equal(data[w.offset:end], w.magic) {
			return false
		}
	}
	return true
}

// ParseDataURL splits a base64 data URL of the form
// "data:<mime-type>;base64,<payload>" into its declared MIME type and payload
// body. It reports ok=false for anything that does not fit that shape,
// including data URLs without the base64 marker.
func ParseDataURL(s string) (mime, payload string, ok bool) {
	if !strings.HasPrefix(s, dataURLPrefix) {
		return "", "", false
	}
	meta, body, found := strings.Cut(s[len(dataURLPrefix):], ",")
	if !found {
		return "", "", false
	}
	mime, encoding, found := strings.Cut(meta, ";")
	if !found || encoding != "base64" || mime == "" {
		return "", "", false
	}
	return mime, body, true
}

// DecodeLenient decodes standard-alphabet base64, tolerating malformed input.
// Decoding stops at the first character outside the base64 alphabet and at the
// first padding character, and a dangling partial quantum is dropped, so
// malformed trailing input truncates the result rather than raising an error.
// Input with no decodable prefix yields an empty buffer.
func DecodeLenient(s string) []byte {
	if i := strings.IndexFunc(s, func(r rune) bool { return !isBase64Char(r) }); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '='); i >= 0 {
		s = s[:i]
	}
	// A single leftover character cannot encode a full byte.
	if len(s)%4 == 1 {
		s = s[:len(s)-1]
	}
	if s == "" {
		return nil
	}
	dst := make([]byte, base64.RawStdEncoding.DecodedLen(len(s)))
	n, err := base64.RawStdEncoding.Decode(dst, []byte(s))
	if err != nil {
		return nil
	}
	return dst[:n]
}

func isBase64Char(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '+', r == '/', r == '=':
		return true
	}
	return false
}
