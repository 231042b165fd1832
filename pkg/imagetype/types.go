// Package imagetype classifies image payloads into a closed set of formats.
//
// Classification runs two independent paths composed by priority: a declared-MIME
// fast path for data URLs (the declared type is trusted verbatim and never
// cross-checked against the bytes) and a byte-signature path that inspects the
// leading magic numbers of the decoded buffer. SVG and ICO carry no reliable
// binary signature and are only ever identified via the declared-MIME path.
package imagetype

import (
	"fmt"
	"strings"
)

// Format identifies one of the supported image format families.
type Format string

// Supported image formats. The set is closed; unknown signatures yield
// ErrUndetectedFormat rather than a new variant.
const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatGIF  Format = "gif"
	FormatWebP Format = "webp"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatSVG  Format = "svg"
	FormatICO  Format = "ico"
)

// formatInfo maps each format to its canonical MIME type and file extension.
var formatInfo = map[Format]struct {
	mime string
	ext  string
}{
	FormatJPEG: {"image/jpeg", "jpg"},
	FormatPNG:  {"image/png", "png"},
	FormatGIF:  {"image/gif", "gif"},
	FormatWebP: {"image/webp", "webp"},
	FormatBMP:  {"image/bmp", "bmp"},
	FormatTIFF: {"image/tiff", "tiff"},
	FormatSVG:  {"image/svg+xml", "svg"},
	FormatICO:  {"image/ico", "ico"},
}

// MIME returns the canonical MIME type for the format.
func (f Format) MIME() string {
	return formatInfo[f].mime
}

// Ext returns the file extension for the format, without the leading dot.
func (f Format) Ext() string {
	return formatInfo[f].ext
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// extensionBySubtype maps MIME subtypes (lowercased) to file extensions.
var extensionBySubtype = map[string]string{
	"jpeg":    "jpg",
	"jpg":     "jpg",
	"png":     "png",
	"gif":     "gif",
	"webp":    "webp",
	"bmp":     "bmp",
	"tiff":    "tiff",
	"svg+xml": "svg",
	"ico":     "ico",
}

// ExtensionForMIME returns the file extension for a MIME type such as
// "image/png". Subtype matching is case-insensitive so a declared type like
// "image/PNG" still maps. A MIME type outside the supported set returns
// ErrUnsupportedFormat.
func ExtensionForMIME(mime string) (string, error) {
	subtype := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(mime), "image/"))
	if ext, ok := extensionBySubtype[subtype]; ok {
		return ext, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, mime)
}
