package pipeline

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fingervision/ridgemark/internal/enhance"
	"github.com/fingervision/ridgemark/internal/testutil"
)

// stubEnhancer bypasses real enhancement and injects fixed ridge and mask
// images, so runs exercise the finishing steps deterministically.
type stubEnhancer struct {
	ridgeImg *image.Gray
	mask     *image.Gray
}

func (s *stubEnhancer) Normalize(src *image.Gray) *image.Gray { return src }

func (s *stubEnhancer) Orient(norm *image.Gray) *enhance.OrientationField {
	return &enhance.OrientationField{BlockSize: 16}
}

func (s *stubEnhancer) Filter(norm *image.Gray, field *enhance.OrientationField) *image.Gray {
	return s.ridgeImg
}

func (s *stubEnhancer) Segment(norm *image.Gray) *image.Gray { return s.mask }

func TestRunAllBackgroundPicksLastWindowSecondaryTie(t *testing.T) {
	stub := &stubEnhancer{
		ridgeImg: testutil.NewSkeleton(32, 32),
		mask:     testutil.FullMask(32, 32),
	}
	p, err := NewBuilder().WithBlockSize(1).WithEnhancer(stub).Build()
	require.NoError(t, err)

	src := image.NewGray(image.Rect(0, 0, 32, 32))
	res, annotated, err := p.Run(src)
	require.NoError(t, err)
	require.NotNil(t, annotated)
	require.NotNil(t, res.Region)

	// All windows tie at zero weight; the last scanned window wins, the
	// zero-count diagonal tie resolves to secondary.
	assert.Equal(t, 24, res.Region.Region.RowStart)
	assert.Equal(t, 32, res.Region.Region.RowEnd)
	assert.Equal(t, 24, res.Region.Region.ColStart)
	assert.Equal(t, 32, res.Region.Region.ColEnd)
	assert.Equal(t, 0, res.Region.RidgeCount)
	assert.Equal(t, "secondary_diagonal", res.Region.Diagonal)
	assert.Equal(t, 32, res.Width)
	assert.Equal(t, 32, res.Height)
}

func TestRunNoValidRegion(t *testing.T) {
	stub := &stubEnhancer{
		ridgeImg: testutil.NewSkeleton(32, 32),
		mask:     testutil.EmptyMask(32, 32),
	}
	p, err := NewBuilder().WithBlockSize(1).WithEnhancer(stub).Build()
	require.NoError(t, err)

	src := image.NewGray(image.Rect(0, 0, 32, 32))
	res, annotated, err := p.Run(src)
	require.NoError(t, err)
	require.NotNil(t, annotated)
	assert.Nil(t, res.Region, "absent region is a normal outcome")
}

func TestRunNilImage(t *testing.T) {
	p, err := NewBuilder().Build()
	require.NoError(t, err)
	_, _, err = p.Run(nil)
	assert.Error(t, err)
}

func TestRunContextCancelled(t *testing.T) {
	stub := &stubEnhancer{
		ridgeImg: testutil.NewSkeleton(32, 32),
		mask:     testutil.FullMask(32, 32),
	}
	p, err := NewBuilder().WithBlockSize(1).WithEnhancer(stub).Build()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = p.RunContext(ctx, image.NewGray(image.Rect(0, 0, 32, 32)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunFirstPhaseReturnsThinImage(t *testing.T) {
	ridgeImg := testutil.NewSkeleton(32, 32)
	for r := 10; r <= 14; r++ {
		testutil.HorizontalRidge(ridgeImg, r, 4, 27)
	}
	stub := &stubEnhancer{ridgeImg: ridgeImg, mask: testutil.FullMask(32, 32)}
	p, err := NewBuilder().WithBlockSize(1).WithEnhancer(stub).Build()
	require.NoError(t, err)

	thin, err := p.RunFirstPhase(image.NewGray(image.Rect(0, 0, 32, 32)))
	require.NoError(t, err)
	require.NotNil(t, thin)
	assert.Equal(t, ridgeImg.Bounds(), thin.Bounds())
}

func TestRunSecondPhaseWithoutFirstFails(t *testing.T) {
	p, err := NewBuilder().Build()
	require.NoError(t, err)
	_, _, err = p.RunSecondPhase()
	assert.Error(t, err)
}

func TestRunSecondPhaseAfterFirstDegradesWithoutMask(t *testing.T) {
	stub := &stubEnhancer{
		ridgeImg: testutil.NewSkeleton(32, 32),
		mask:     testutil.FullMask(32, 32),
	}
	p, err := NewBuilder().WithBlockSize(1).WithEnhancer(stub).Build()
	require.NoError(t, err)

	_, err = p.RunFirstPhase(image.NewGray(image.Rect(0, 0, 32, 32)))
	require.NoError(t, err)

	// The first phase skips segmentation, so the second phase sees an
	// empty mask and reports no region.
	res, annotated, err := p.RunSecondPhase()
	require.NoError(t, err)
	require.NotNil(t, annotated)
	assert.Nil(t, res.Region)
}

func TestRunRecordsTimings(t *testing.T) {
	stub := &stubEnhancer{
		ridgeImg: testutil.NewSkeleton(32, 32),
		mask:     testutil.FullMask(32, 32),
	}
	p, err := NewBuilder().WithBlockSize(1).WithEnhancer(stub).Build()
	require.NoError(t, err)

	res, _, err := p.Run(image.NewGray(image.Rect(0, 0, 32, 32)))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Processing.TotalNs, res.Processing.ScoreNs)
}
