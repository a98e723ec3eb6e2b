package enhance

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fingervision/ridgemark/internal/testutil"
)

func TestNormalizeTargetsMean(t *testing.T) {
	e := NewBasic(DefaultBasicConfig())
	src := testutil.SyntheticFingerprint(64, 64, 8)

	out := e.Normalize(src)
	require.Equal(t, src.Bounds(), out.Bounds())

	var sum float64
	for _, v := range out.Pix {
		sum += float64(v)
	}
	mean := sum / float64(len(out.Pix))
	assert.InDelta(t, 128, mean, 20)
}

func TestNormalizeFlatImage(t *testing.T) {
	e := NewBasic(DefaultBasicConfig())
	src := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range src.Pix {
		src.Pix[i] = 77
	}

	out := e.Normalize(src)
	// Zero variance input collapses onto the target mean.
	for _, v := range out.Pix {
		require.EqualValues(t, 128, v)
	}
}

func TestOrientFieldShape(t *testing.T) {
	cfg := DefaultBasicConfig()
	cfg.BlockSize = 16
	e := NewBasic(cfg)
	src := testutil.SyntheticFingerprint(64, 48, 8)

	field := e.Orient(src)
	require.NotNil(t, field)
	assert.Len(t, field.Angles, 3)    // 48 rows / 16
	assert.Len(t, field.Angles[0], 4) // 64 cols / 16
}

func TestOrientationFieldAtClamps(t *testing.T) {
	field := &OrientationField{BlockSize: 16, Angles: [][]float64{{0.5, 1.0}}}
	assert.InDelta(t, 0.5, field.At(0, 0), 0)
	assert.InDelta(t, 1.0, field.At(500, 500), 0)
	var nilField *OrientationField
	assert.Zero(t, nilField.At(3, 3))
}

func TestFilterOutputBinary(t *testing.T) {
	e := NewBasic(DefaultBasicConfig())
	src := testutil.SyntheticFingerprint(64, 64, 8)
	norm := e.Normalize(src)
	field := e.Orient(norm)

	out := e.Filter(norm, field)
	require.Equal(t, norm.Bounds(), out.Bounds())
	for _, v := range out.Pix {
		require.True(t, v == 0 || v == 255)
	}
}

func TestSegmentMarksHighVarianceBlocks(t *testing.T) {
	cfg := DefaultBasicConfig()
	cfg.BlockSize = 16
	e := NewBasic(cfg)

	// Left half ridged (high variance), right half flat background.
	src := image.NewGray(image.Rect(0, 0, 64, 32))
	ridged := testutil.SyntheticFingerprint(32, 32, 6)
	for r := 0; r < 32; r++ {
		copy(src.Pix[r*src.Stride:r*src.Stride+32], ridged.Pix[r*ridged.Stride:r*ridged.Stride+32])
		for c := 32; c < 64; c++ {
			src.Pix[r*src.Stride+c] = 200
		}
	}

	mask := e.Segment(src)
	assert.EqualValues(t, 1, mask.Pix[8*mask.Stride+8])
	assert.EqualValues(t, 0, mask.Pix[8*mask.Stride+56])
	for _, v := range mask.Pix {
		require.True(t, v == 0 || v == 1)
	}
}

func TestOtsuSeparatesBimodal(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		if i%2 == 0 {
			img.Pix[i] = 30
		} else {
			img.Pix[i] = 220
		}
	}
	thresh := otsuThreshold(img)
	assert.Greater(t, thresh, uint8(30))
	assert.LessOrEqual(t, thresh, uint8(220))
}
