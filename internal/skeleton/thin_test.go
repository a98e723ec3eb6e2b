package skeleton

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fingervision/ridgemark/internal/testutil"
)

func ridgeWidthAtRow(img *image.Gray, row int) int {
	count := 0
	for c := 0; c < img.Bounds().Dx(); c++ {
		if img.Pix[row*img.Stride+c] == 0 {
			count++
		}
	}
	return count
}

func TestThinAllBackground(t *testing.T) {
	img := testutil.NewSkeleton(16, 16)
	out := Thin(img)
	for _, v := range out.Pix {
		require.EqualValues(t, 255, v)
	}
}

func TestThinThickBandToSingleLine(t *testing.T) {
	img := testutil.NewSkeleton(32, 32)
	// A 5-pixel-thick horizontal band.
	for r := 10; r <= 14; r++ {
		testutil.HorizontalRidge(img, r, 4, 27)
	}

	out := Thin(img)
	// Away from the endpoints the band reduces to a single-pixel line.
	for c := 8; c <= 23; c++ {
		ridges := 0
		for r := 9; r <= 15; r++ {
			if out.Pix[r*out.Stride+c] == 0 {
				ridges++
			}
		}
		assert.Equalf(t, 1, ridges, "column %d", c)
	}
}

func TestThinPreservesThinLine(t *testing.T) {
	img := testutil.NewSkeleton(32, 32)
	testutil.HorizontalRidge(img, 16, 4, 27)

	out := Thin(img)
	assert.Positive(t, ridgeWidthAtRow(out, 16), "an already thin line survives thinning")
}

func TestThinOutputBinary(t *testing.T) {
	img := testutil.NewSkeleton(24, 24)
	for r := 8; r <= 12; r++ {
		testutil.HorizontalRidge(img, r, 2, 21)
	}
	out := Thin(img)
	for _, v := range out.Pix {
		require.True(t, v == 0 || v == 255)
	}
}

func TestThinEmptyImage(t *testing.T) {
	out := Thin(image.NewGray(image.Rect(0, 0, 0, 0)))
	assert.Equal(t, 0, len(out.Pix))
}
