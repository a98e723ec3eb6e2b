// Package enhance provides the pluggable ridge-enhancement strategy that
// runs ahead of skeletonization.
package enhance

import "image"

// OrientationField holds block-wise ridge orientation estimates in radians.
type OrientationField struct {
	BlockSize int
	Angles    [][]float64 // [blockRow][blockCol]
}

// At returns the orientation for the block containing pixel (row, col).
// Out-of-range pixels fold onto the nearest block.
func (f *OrientationField) At(row, col int) float64 {
	if f == nil || len(f.Angles) == 0 {
		return 0
	}
	br := row / f.BlockSize
	if br >= len(f.Angles) {
		br = len(f.Angles) - 1
	}
	bc := col / f.BlockSize
	if bc >= len(f.Angles[br]) {
		bc = len(f.Angles[br]) - 1
	}
	return f.Angles[br][bc]
}

// Enhancer is the strategy contract for the enhancement phases. A concrete
// strategy supplies the four hooks; the pipeline owns their sequencing and
// the finishing steps, which cannot be substituted.
type Enhancer interface {
	// Normalize adjusts the grayscale input to a canonical intensity range.
	Normalize(src *image.Gray) *image.Gray
	// Orient estimates the block-wise ridge flow of the normalized image.
	Orient(norm *image.Gray) *OrientationField
	// Filter produces a binary ridge image (ridge=0 on 255 background).
	Filter(norm *image.Gray, field *OrientationField) *image.Gray
	// Segment marks the usable foreground as a 0/1 validity mask.
	Segment(norm *image.Gray) *image.Gray
}
