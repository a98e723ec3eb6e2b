package ridge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fingervision/ridgemark/internal/region"
	"github.com/fingervision/ridgemark/internal/testutil"
)

func TestCountAllBackground(t *testing.T) {
	skel := testutil.NewSkeleton(32, 32)
	reg := region.Region{RowStart: 8, RowEnd: 16, ColStart: 8, ColEnd: 16}

	res := Count(skel, reg)
	assert.Equal(t, 0, res.Count)
	assert.Equal(t, Secondary, res.Diagonal, "equal counts resolve to the secondary diagonal")
}

func TestCountAllRidge(t *testing.T) {
	skel := testutil.NewSkeleton(32, 32)
	for r := 8; r < 16; r++ {
		testutil.HorizontalRidge(skel, r, 8, 15)
	}
	reg := region.Region{RowStart: 8, RowEnd: 16, ColStart: 8, ColEnd: 16}

	// The whole diagonal is one contiguous ridge run: it counts once.
	res := Count(skel, reg)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, Secondary, res.Diagonal)
}

func TestCountMainDiagonalWins(t *testing.T) {
	skel := testutil.NewSkeleton(32, 32)
	// Two isolated ridge pixels on the region's main diagonal. Erosion
	// grows each into a 3x3 blob that the main diagonal crosses and the
	// secondary diagonal misses.
	testutil.SetRidge(skel, 2, 2)
	testutil.SetRidge(skel, 10, 10)
	reg := region.Region{RowStart: 0, RowEnd: 16, ColStart: 0, ColEnd: 16}

	res := Count(skel, reg)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, Main, res.Diagonal)
}

func TestCountTieGoesToSecondary(t *testing.T) {
	skel := testutil.NewSkeleton(32, 32)
	// A single centered blob crossed by both diagonals.
	testutil.SetRidge(skel, 8, 8)
	reg := region.Region{RowStart: 0, RowEnd: 16, ColStart: 0, ColEnd: 16}

	res := Count(skel, reg)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, Secondary, res.Diagonal)
}

func TestCountHysteresisSeparatesRuns(t *testing.T) {
	skel := testutil.NewSkeleton(32, 32)
	// Horizontal ridges at rows 4 and 10 within a 16-wide region: after
	// erosion they become 3-row bands, giving two separated diagonal runs.
	testutil.HorizontalRidge(skel, 4, 0, 15)
	testutil.HorizontalRidge(skel, 10, 0, 15)
	reg := region.Region{RowStart: 0, RowEnd: 16, ColStart: 0, ColEnd: 16}

	res := Count(skel, reg)
	assert.Equal(t, 2, res.Count)
}

func TestCountDegenerateRegion(t *testing.T) {
	skel := testutil.NewSkeleton(32, 32)
	reg := region.Region{RowStart: 8, RowEnd: 8, ColStart: 8, ColEnd: 8}

	res := Count(skel, reg)
	assert.Equal(t, 0, res.Count)
	assert.Equal(t, Secondary, res.Diagonal)
}

func TestErode3x3GrowsRidges(t *testing.T) {
	// Minimum filtering expands dark (ridge) pixels into their 3x3
	// neighborhood, matching the reference morphology.
	src := make([]uint8, 25)
	for i := range src {
		src[i] = 255
	}
	src[2*5+2] = 0
	dst := make([]uint8, 25)
	erode3x3(src, dst, 5, 5)

	for r := 1; r <= 3; r++ {
		for c := 1; c <= 3; c++ {
			assert.Zerof(t, dst[r*5+c], "pixel (%d,%d)", r, c)
		}
	}
	assert.EqualValues(t, 255, dst[0])
	assert.EqualValues(t, 255, dst[24])
}

func TestDiagonalString(t *testing.T) {
	assert.Equal(t, "main_diagonal", Main.String())
	assert.Equal(t, "secondary_diagonal", Secondary.String())
}
