// Package scanner locates base64 image payloads embedded in plain text or
// HTML markup. Matching is purely pattern-based; no DOM is constructed.
package scanner

import (
	"regexp"
	"strings"
)

// Mode selects which patterns a scan applies.
type Mode int

const (
	// ModePlain matches bare data URLs anywhere in the text.
	ModePlain Mode = iota
	// ModeHTML additionally matches data URLs embedded in HTML and CSS
	// constructs (src attributes, background-image, inline style, content).
	ModeHTML
)

// dataURL is the core payload shape: a data URL with an image MIME type and a
// base64 body. The character class is authoritative; a payload followed by a
// disallowed character (whitespace, entity text) truncates there.
const dataURL = `data:image/[^;]+;base64,[A-Za-z0-9+/=]+`

// contextPattern pairs an outer matching pattern with the capture group that
// holds the inner data URL. Adding a new HTML context is a one-line addition.
type contextPattern struct {
	re    *regexp.Regexp
	group int
}

var (
	plainPattern = contextPattern{regexp.MustCompile(dataURL), 0}

	htmlPatterns = []contextPattern{
		{regexp.MustCompile(`src=["'](` + dataURL + `)["']`), 1},
		{regexp.MustCompile(`background-image:\s*url\(['"]?(` + dataURL + `)['"]?\)`), 1},
		{regexp.MustCompile(`style=["'][^"']*url\(['"]?(` + dataURL + `)['"]?\)`), 1},
		{regexp.MustCompile(`content:\s*url\(['"]?(` + dataURL + `)['"]?\)`), 1},
	}
)

// Scan extracts the base64 image payloads found in text, in order of first
// appearance, deduplicated by exact string value. A scan with no matches
// returns an empty result; the caller decides whether to treat the whole
// input as a single raw payload instead.
func Scan(text string, mode Mode) []string {
	patterns := []contextPattern{plainPattern}
	if mode == ModeHTML {
		patterns = append(patterns, htmlPatterns...)
	}

	var result []string
	seen := make(map[string]struct{})
	for _, p := range patterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			candidate := m[p.group]
			if _, dup := seen[candidate]; dup {
				continue
			}
			seen[candidate] = struct{}{}
			result = append(result, candidate)
		}
	}
	return result
}

// IsHTML reports whether text looks like an HTML document: a leading doctype
// declaration (case-insensitive) or an <html tag anywhere in the content.
// Callers with out-of-band knowledge (a text/html content type) declare HTML
// themselves instead of sniffing.
func IsHTML(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) >= len("<!doctype") && strings.EqualFold(trimmed[:len("<!doctype")], "<!doctype") {
		return true
	}
	return strings.Contains(strings.ToLower(trimmed), "<html")
}
