package fileutil

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniquePath(t *testing.T) {
	fs := afero.NewMemMapFs()

	path, err := UniquePath(fs, "/out/image.png")
	require.NoError(t, err)
	assert.Equal(t, "/out/image.png", path)

	require.NoError(t, afero.WriteFile(fs, "/out/image.png", []byte("a"), ReadWriteUserReadOthers))
	path, err = UniquePath(fs, "/out/image.png")
	require.NoError(t, err)
	assert.Equal(t, "/out/image_1.png", path)

	require.NoError(t, afero.WriteFile(fs, "/out/image_1.png", []byte("b"), ReadWriteUserReadOthers))
	path, err = UniquePath(fs, "/out/image.png")
	require.NoError(t, err)
	assert.Equal(t, "/out/image_2.png", path)
}

func TestUniquePathWithoutExtension(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out/image", []byte("a"), ReadWriteUserReadOthers))

	path, err := UniquePath(fs, "/out/image")
	require.NoError(t, err)
	assert.Equal(t, "/out/image_1", path)
}

func TestAppendExt(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		ext      string
		expected string
	}{
		{
			name:     "appends when missing",
			path:     "/out/image",
			ext:      "png",
			expected: "/out/image.png",
		},
		{
			name:     "keeps existing extension",
			path:     "/out/image.jpg",
			ext:      "png",
			expected: "/out/image.jpg",
		},
		{
			name:     "dotted directory does not count as extension",
			path:     "picture",
			ext:      "gif",
			expected: "picture.gif",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AppendExt(tt.path, tt.ext))
		})
	}
}

func TestEnsureDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, EnsureDir(fs, "/a/b/c"))

	info, err := fs.Stat("/a/b/c")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
