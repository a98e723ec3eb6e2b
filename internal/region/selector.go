// Package region selects the cleanest fixed-size analysis window from a
// minutiae weight image.
package region

import (
	"errors"
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrShapeMismatch reports weight/mask grids of different shapes.
var ErrShapeMismatch = errors.New("weight and mask shapes differ")

// WindowMultiplier fixes the analysis window side at 8 block sizes.
const WindowMultiplier = 8

// Region is a square analysis window addressed in (row, col) coordinates,
// half-open on both axes.
type Region struct {
	RowStart int `json:"row_start"`
	RowEnd   int `json:"row_end"`
	ColStart int `json:"col_start"`
	ColEnd   int `json:"col_end"`
}

// Side returns the window side length in pixels.
func (r Region) Side() int { return r.RowEnd - r.RowStart }

// Rect converts the region to an image.Rectangle in (x, y) coordinates.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.ColStart, r.RowStart, r.ColEnd, r.RowEnd)
}

func (r Region) String() string {
	return fmt.Sprintf("rows [%d,%d) cols [%d,%d)", r.RowStart, r.RowEnd, r.ColStart, r.ColEnd)
}

// Select scans the block grid for the fully-valid window with the lowest
// aggregate minutiae weight. The scan enumerates origins at multiples of
// blockSize: the outer index, bounded by the column count, produces the row
// bounds and the inner index the column bounds. The mask and the weights are
// read with the same swapped ordering; region placement depends on it, so it
// must not be "straightened" without re-checking reference output.
//
// Later windows win weight ties, so the last tying window in scan order is
// returned. A false second return means no window had a fully valid mask
// footprint; that is a normal outcome, not an error.
func Select(weights *mat.Dense, mask *image.Gray, blockSize int) (Region, bool, error) {
	rows, cols := weights.Dims()
	mb := mask.Bounds()
	if mb.Dx() != cols || mb.Dy() != rows {
		return Region{}, false, fmt.Errorf("%w: weights %dx%d, mask %dx%d",
			ErrShapeMismatch, rows, cols, mb.Dy(), mb.Dx())
	}
	if blockSize <= 0 {
		return Region{}, false, fmt.Errorf("invalid block size %d", blockSize)
	}

	side := WindowMultiplier * blockSize
	span := side/blockSize - 1

	best := Region{}
	found := false
	bestWeight := math.Inf(1)

	for c := 1; c < cols/blockSize-span; c++ {
		for r := 1; r < rows/blockSize-span; r++ {
			rowStart := c * blockSize
			colStart := r * blockSize
			rowEnd := rowStart + side
			colEnd := colStart + side
			if rowEnd > rows || colEnd > cols {
				continue
			}
			if footprintSum(mask, rowStart, rowEnd, colStart, colEnd) != side*side {
				continue
			}
			w := mat.Sum(weights.Slice(rowStart, rowEnd, colStart, colEnd))
			if w <= bestWeight {
				bestWeight = w
				best = Region{RowStart: rowStart, RowEnd: rowEnd, ColStart: colStart, ColEnd: colEnd}
				found = true
			}
		}
	}
	return best, found, nil
}

// footprintSum adds the mask values over a window. The mask carries strict
// 0/1 values, so a fully valid footprint sums to exactly side².
func footprintSum(mask *image.Gray, rowStart, rowEnd, colStart, colEnd int) int {
	sum := 0
	for r := rowStart; r < rowEnd; r++ {
		row := mask.Pix[r*mask.Stride+colStart : r*mask.Stride+colEnd]
		for _, v := range row {
			sum += int(v)
		}
	}
	return sum
}
