// Package ridge counts ridge crossings along the diagonals of a selected
// skeleton region.
package ridge

import (
	"image"

	"github.com/fingervision/ridgemark/internal/mempool"
	"github.com/fingervision/ridgemark/internal/region"
)

// binarizeThreshold re-binarizes the eroded crop to strict {0, 255}.
const binarizeThreshold = 127

// Diagonal identifies which region diagonal carried the reported count.
type Diagonal int

const (
	// Main runs top-left to bottom-right.
	Main Diagonal = iota
	// Secondary runs top-right to bottom-left.
	Secondary
)

func (d Diagonal) String() string {
	if d == Secondary {
		return "secondary_diagonal"
	}
	return "main_diagonal"
}

// Result is the ridge count along the winning diagonal.
type Result struct {
	Count    int
	Diagonal Diagonal
}

// Count crops the skeleton to the region, suppresses fragments narrower than
// the 3x3 structuring element, and counts background-to-ridge transitions
// along both diagonals. The diagonal with more transitions wins; the
// secondary diagonal wins ties. Degenerate regions produce a zero count.
func Count(skel *image.Gray, reg region.Region) Result {
	rowStart, rowEnd := clamp(reg.RowStart, skel.Bounds().Dy()), clamp(reg.RowEnd, skel.Bounds().Dy())
	colStart, colEnd := clamp(reg.ColStart, skel.Bounds().Dx()), clamp(reg.ColEnd, skel.Bounds().Dx())
	rows := rowEnd - rowStart
	cols := colEnd - colStart
	if rows <= 0 || cols <= 0 {
		return Result{Count: 0, Diagonal: Secondary}
	}

	crop := mempool.GetUint8(rows * cols)
	defer mempool.PutUint8(crop)
	for r := 0; r < rows; r++ {
		src := skel.Pix[(rowStart+r)*skel.Stride+colStart : (rowStart+r)*skel.Stride+colEnd]
		copy(crop[r*cols:(r+1)*cols], src)
	}

	eroded := mempool.GetUint8(rows * cols)
	defer mempool.PutUint8(eroded)
	erode3x3(crop, eroded, rows, cols)
	for i, v := range eroded {
		if v > binarizeThreshold {
			eroded[i] = 255
		} else {
			eroded[i] = 0
		}
	}

	main := countDiagonal(eroded, rows, cols, false)
	secondary := countDiagonal(eroded, rows, cols, true)
	if main <= secondary {
		return Result{Count: secondary, Diagonal: Secondary}
	}
	return Result{Count: main, Diagonal: Main}
}

// erode3x3 writes the 3x3 minimum of src into dst. Neighbors outside the
// crop are ignored, matching OpenCV's border handling for erosion.
func erode3x3(src, dst []uint8, rows, cols int) {
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			minVal := uint8(255)
			for dr := -1; dr <= 1; dr++ {
				rr := r + dr
				if rr < 0 || rr >= rows {
					continue
				}
				for dc := -1; dc <= 1; dc++ {
					cc := c + dc
					if cc < 0 || cc >= cols {
						continue
					}
					if v := src[rr*cols+cc]; v < minVal {
						minVal = v
					}
				}
			}
			dst[r*cols+c] = minVal
		}
	}
}

// countDiagonal walks the main diagonal (or the main diagonal of the
// horizontally mirrored crop) with a hysteresis rule: a ridge pixel is
// counted only when entered from background, so a run of consecutive ridge
// pixels counts once.
func countDiagonal(bin []uint8, rows, cols int, mirrored bool) int {
	onWhite := true
	count := 0
	n := rows
	if cols < n {
		n = cols
	}
	for i := 0; i < n; i++ {
		c := i
		if mirrored {
			c = cols - 1 - i
		}
		v := bin[i*cols+c]
		if v == 0 && onWhite {
			count++
			onWhite = false
		}
		if v == 255 {
			onWhite = true
		}
	}
	return count
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
