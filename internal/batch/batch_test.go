package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fingervision/ridgemark/internal/testutil"
	"github.com/fingervision/ridgemark/internal/utils"
)

func writeTestImage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	img := testutil.SyntheticFingerprint(160, 160, 8)
	require.NoError(t, utils.SavePNG(path, img))
	return path
}

func TestProcessBatchNoFiles(t *testing.T) {
	_, err := ProcessBatch([]string{t.TempDir()}, DefaultConfig())
	assert.Error(t, err)
}

func TestProcessBatchSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTestImage(t, dir, "finger.png")

	cfg := DefaultConfig()
	cfg.BlockSize = 4
	res, err := ProcessBatch([]string{path}, cfg)
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, path, res.Files[0].Path)
	assert.Empty(t, res.Files[0].Error)
	require.NotNil(t, res.Files[0].Result)
	assert.Equal(t, 160, res.Files[0].Result.Width)
}

func TestProcessBatchDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, dir, "a.png")
	writeTestImage(t, dir, "b.png")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	cfg := DefaultConfig()
	cfg.BlockSize = 4
	res, err := ProcessBatch([]string{dir}, cfg)
	require.NoError(t, err)
	assert.Len(t, res.Files, 2)
}

func TestProcessBatchWritesAnnotated(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, dir, "a.png")
	outDir := filepath.Join(t.TempDir(), "annotated")

	cfg := DefaultConfig()
	cfg.BlockSize = 4
	cfg.AnnotatedDir = outDir
	_, err := ProcessBatch([]string{dir}, cfg)
	require.NoError(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a_annotated.png", entries[0].Name())
}

func TestDiscoverRespectsPatterns(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, dir, "keep.png")
	writeTestImage(t, dir, "skip.png")

	files, err := discoverImageFiles([]string{dir}, false, []string{"keep*"}, nil)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0], "keep.png")

	files, err = discoverImageFiles([]string{dir}, false, nil, []string{"skip*"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0], "keep.png")
}

func TestDiscoverRecursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	writeTestImage(t, dir, "top.png")
	writeTestImage(t, sub, "nested.png")

	flat, err := discoverImageFiles([]string{dir}, false, nil, nil)
	require.NoError(t, err)
	assert.Len(t, flat, 1)

	all, err := discoverImageFiles([]string{dir}, true, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.BlockSize = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Workers = -1
	require.NoError(t, cfg.Validate())
	assert.Positive(t, cfg.Workers)
}

func TestFormatResultJSON(t *testing.T) {
	res := &Result{Files: []FileResult{{Path: "x.png"}}, WorkerCount: 2}
	out, err := FormatResult(res, "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"x.png"`)

	_, err = FormatResult(res, "xml")
	assert.Error(t, err)
}

func TestFormatResultText(t *testing.T) {
	res := &Result{Files: []FileResult{
		{Path: "bad.png", Error: "boom"},
		{Path: "empty.png"},
	}, WorkerCount: 2}
	out, err := FormatResult(res, "text")
	require.NoError(t, err)
	assert.Contains(t, out, "bad.png: error: boom")
	assert.Contains(t, out, "empty.png: no region found")
	assert.Contains(t, out, "1 failed")
}
