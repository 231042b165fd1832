// Package source resolves the text a command operates on from one of three
// places: a positional argument, a local file, or a fetched URL. It also
// decides whether that text should be scanned as HTML; the scanning core
// trusts this declaration.
package source

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"b64img/pkg/log"
	"b64img/pkg/scanner"
)

// DefaultTimeout bounds a URL fetch when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Options selects the input source. Exactly one field must be set.
type Options struct {
	// Argument is a payload or text passed directly on the command line.
	Argument string
	// FilePath is a local file to read (UTF-8).
	FilePath string
	// URL is a remote page to fetch with a single GET, no retries.
	URL string
}

// Input is resolved source text together with its HTML declaration.
type Input struct {
	Text   string
	IsHTML bool
}

// Resolver reads input text from the configured source.
type Resolver struct {
	Fs     afero.Fs
	Client *http.Client
}

// NewResolver returns a Resolver backed by fs and an HTTP client with the
// given timeout (DefaultTimeout when zero).
func NewResolver(fs afero.Fs, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{
		Fs:     fs,
		Client: &http.Client{Timeout: timeout},
	}
}

// Resolve produces the input text for opts. It returns an error when no
// source or more than one source is configured.
func (r *Resolver) Resolve(ctx context.Context, opts Options) (*Input, error) {
	set := 0
	for _, s := range []string{opts.Argument, opts.FilePath, opts.URL} {
		if s != "" {
			set++
		}
	}
	switch {
	case set == 0:
		return nil, errors.New("no input provided: pass a payload argument, --file, or --url")
	case set > 1:
		return nil, errors.New("multiple inputs provided: pass only one of payload argument, --file, or --url")
	}

	switch {
	case opts.FilePath != "":
		return r.resolveFile(opts.FilePath)
	case opts.URL != "":
		return r.resolveURL(ctx, opts.URL)
	default:
		return &Input{Text: opts.Argument, IsHTML: scanner.IsHTML(opts.Argument)}, nil
	}
}

func (r *Resolver) resolveFile(path string) (*Input, error) {
	data, err := afero.ReadFile(r.Fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read input file %s", path)
	}
	text := string(data)
	isHTML := isHTMLFilename(path) || scanner.IsHTML(text)
	log.Debug("Resolved input from file", "path", path, "bytes", len(data), "html", isHTML)
	return &Input{Text: text, IsHTML: isHTML}, nil
}

func (r *Resolver) resolveURL(ctx context.Context, url string) (*Input, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build request for %s", url)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", url)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Warn("Failed to close response body", "url", url, "error", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("unexpected status %s fetching %s", resp.Status, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read response body from %s", url)
	}

	text := string(body)
	contentType := resp.Header.Get("Content-Type")
	isHTML := strings.Contains(strings.ToLower(contentType), "text/html") || scanner.IsHTML(text)
	log.Debug("Resolved input from URL", "url", url, "bytes", len(body), "contentType", contentType, "html", isHTML)
	return &Input{Text: text, IsHTML: isHTML}, nil
}

func isHTMLFilename(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}
