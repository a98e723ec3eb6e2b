package utils

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupportedImage(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"finger.png", true},
		{"finger.PNG", true},
		{"scan.jpg", true},
		{"scan.jpeg", true},
		{"scan.bmp", true},
		{"scan.tif", true},
		{"scan.tiff", true},
		{"notes.txt", false},
		{"archive.tar.gz", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSupportedImage(tt.path), tt.path)
	}
}

func TestLoadImageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gradient.png")

	src := image.NewGray(image.Rect(0, 0, 12, 9))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 7)
	}
	require.NoError(t, SavePNG(path, src))

	img, meta, err := LoadImage(path)
	require.NoError(t, err)

	assert.Equal(t, 12, meta.Width)
	assert.Equal(t, 9, meta.Height)
	assert.Equal(t, "png", meta.Format)
	assert.Equal(t, path, meta.Path)
	assert.Positive(t, meta.SizeBytes)

	got := ToGray(img)
	assert.Equal(t, src.Pix, got.Pix)
}

func TestLoadImageEmptyPath(t *testing.T) {
	_, _, err := LoadImage("")
	require.Error(t, err)

	var perr *ImageProcessingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "load", perr.Operation)
}

func TestLoadImageUnsupportedFormat(t *testing.T) {
	_, _, err := LoadImage("document.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestLoadImageMissingFile(t *testing.T) {
	_, _, err := LoadImage("/nonexistent/finger.png")
	require.Error(t, err)

	var perr *ImageProcessingError
	require.ErrorAs(t, err, &perr)
	assert.True(t, errors.Is(perr.Unwrap(), os.ErrNotExist))
}

func TestLoadImageCorruptData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o644))

	_, _, err := LoadImage(path)
	require.Error(t, err)

	var perr *ImageProcessingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "decode", perr.Operation)
}

func TestSavePNGNilImage(t *testing.T) {
	err := SavePNG(filepath.Join(t.TempDir(), "out.png"), nil)
	assert.Error(t, err)
}

func TestSavePNGCreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "out.png")

	require.NoError(t, SavePNG(path, image.NewGray(image.Rect(0, 0, 4, 4))))

	_, err := os.Stat(path)
	require.NoError(t, err)
}
