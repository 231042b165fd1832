package main

import (
	"encoding/base64"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"b64img/pkg/exitcodes"
)

// onePxPNG is a valid 1x1 PNG.
const onePxPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func encodePNG(trailing ...byte) string {
	return base64.StdEncoding.EncodeToString(append(append([]byte{}, pngMagic...), trailing...))
}

func TestConvertDataURLArgument(t *testing.T) {
	fs := useMemFs(t)

	out, err := executeCommand(t, "convert", "data:image/png;base64,"+onePxPNG, "-o", "pic", "-d", "/out")
	require.NoError(t, err)
	assert.Contains(t, out, "/out/pic.png")

	data, err := afero.ReadFile(fs, "/out/pic.png")
	require.NoError(t, err)
	assert.Equal(t, pngMagic, data[:len(pngMagic)])

	expected, decodeErr := base64.StdEncoding.DecodeString(onePxPNG)
	require.NoError(t, decodeErr)
	assert.Equal(t, expected, data)
}

func TestConvertRawPayloadDefaultName(t *testing.T) {
	fs := useMemFs(t)
	freezeTime(t, 1700000000)

	jpeg := base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10})
	_, err := executeCommand(t, "convert", jpeg, "-d", "/out")
	require.NoError(t, err)

	exists, err := afero.Exists(fs, "/out/image_1700000000.jpg")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestConvertHTMLFileExtractsAndDedupes(t *testing.T) {
	fs := useMemFs(t)

	pngA := "data:image/png;base64," + encodePNG(0x01)
	pngB := "data:image/png;base64," + encodePNG(0x02)
	gif := "data:image/gif;base64," + base64.StdEncoding.EncodeToString([]byte("GIF89a1234"))

	page := `<!DOCTYPE html><html><body>` +
		`<img src="` + pngA + `">` +
		`<img src="` + pngB + `">` +
		`<div style="background-image: url('` + pngA + `')"></div>` +
		`<img src="` + gif + `">` +
		`</body></html>`
	require.NoError(t, afero.WriteFile(fs, "/in/page.html", []byte(page), 0o644))

	out, err := executeCommand(t, "convert", "--file", "/in/page.html", "-o", "img", "-d", "/out")
	require.NoError(t, err)

	// Three distinct payloads: the duplicated PNG collapses to one entry.
	assert.Contains(t, out, "/out/img.png")
	assert.Contains(t, out, "/out/img_1.png")
	assert.Contains(t, out, "/out/img.gif")

	for _, path := range []string{"/out/img.png", "/out/img_1.png", "/out/img.gif"} {
		exists, err := afero.Exists(fs, path)
		require.NoError(t, err)
		assert.True(t, exists, "expected %s to be written", path)
	}

	dupe, err := afero.Exists(fs, "/out/img_2.png")
	require.NoError(t, err)
	assert.False(t, dupe, "duplicate payload must not produce a third png")
}

func TestConvertHTMLWithoutPayloads(t *testing.T) {
	fs := useMemFs(t)
	page := `<html><body><img src="https://example.com/cat.png"></body></html>`
	require.NoError(t, afero.WriteFile(fs, "/in/page.html", []byte(page), 0o644))

	_, err := executeCommand(t, "convert", "--file", "/in/page.html", "-d", "/out")
	require.Error(t, err)
	code, ok := exitcodes.IsExitCodeError(err)
	require.True(t, ok)
	assert.Equal(t, exitcodes.ExitNoPayloadsFound, code)
}

// A payload failing mid-batch must not stop the remaining payloads from being
// converted; the command still exits non-zero.
func TestConvertPartialFailure(t *testing.T) {
	fs := useMemFs(t)

	good := "data:image/png;base64," + encodePNG(0x01)
	unsupported := "data:image/x-unknown;base64," + encodePNG(0x02)
	alsoGood := "data:image/png;base64," + encodePNG(0x03)

	page := `<html><body>` +
		`<img src="` + good + `">` +
		`<img src="` + unsupported + `">` +
		`<img src="` + alsoGood + `">` +
		`</body></html>`
	require.NoError(t, afero.WriteFile(fs, "/in/page.html", []byte(page), 0o644))

	out, err := executeCommand(t, "convert", "--file", "/in/page.html", "-o", "img", "-d", "/out")
	require.Error(t, err)
	code, ok := exitcodes.IsExitCodeError(err)
	require.True(t, ok)
	assert.Equal(t, exitcodes.ExitUnsupportedFormat, code)

	// Payloads 1 and 3 were still written.
	assert.Contains(t, out, "/out/img.png")
	assert.Contains(t, out, "/out/img_1.png")
	for _, path := range []string{"/out/img.png", "/out/img_1.png"} {
		exists, err := afero.Exists(fs, path)
		require.NoError(t, err)
		assert.True(t, exists, "expected %s to be written", path)
	}
}

func TestConvertMalformedArgument(t *testing.T) {
	useMemFs(t)

	_, err := executeCommand(t, "convert", "!!!!", "-d", "/out")
	require.Error(t, err)
	code, ok := exitcodes.IsExitCodeError(err)
	require.True(t, ok)
	assert.Equal(t, exitcodes.ExitMalformedPayload, code)
}

func TestConvertMissingInput(t *testing.T) {
	useMemFs(t)

	_, err := executeCommand(t, "convert")
	require.Error(t, err)
	code, ok := exitcodes.IsExitCodeError(err)
	require.True(t, ok)
	assert.Equal(t, exitcodes.ExitMissingInput, code)
}

func TestConvertConflictingInputs(t *testing.T) {
	useMemFs(t)

	_, err := executeCommand(t, "convert", "abc", "--file", "/in/x")
	require.Error(t, err)
	code, ok := exitcodes.IsExitCodeError(err)
	require.True(t, ok)
	assert.Equal(t, exitcodes.ExitInputConfigurationError, code)
}
