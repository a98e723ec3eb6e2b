// Package skeleton reduces binary ridge images to 1-pixel-wide skeletons.
package skeleton

import (
	"image"

	"github.com/fingervision/ridgemark/internal/mempool"
)

// Thin applies Zhang-Suen thinning to a binary ridge image (ridge=0 on a
// 255 background) and returns a skeleton with the same encoding. Any
// function with this contract can stand in for it upstream of scoring.
func Thin(img *image.Gray) *image.Gray {
	b := img.Bounds()
	rows, cols := b.Dy(), b.Dx()
	out := image.NewGray(image.Rect(0, 0, cols, rows))
	if rows == 0 || cols == 0 {
		return out
	}

	// 1 = ridge, 0 = background.
	grid := mempool.GetUint8(rows * cols)
	defer mempool.PutUint8(grid)
	for r := 0; r < rows; r++ {
		src := img.Pix[r*img.Stride : r*img.Stride+cols]
		dst := grid[r*cols : (r+1)*cols]
		for c, v := range src {
			if v == 0 {
				dst[c] = 1
			}
		}
	}

	marks := mempool.GetUint8(rows * cols)
	defer mempool.PutUint8(marks)
	for changed := true; changed; {
		changed = subIteration(grid, marks, rows, cols, 0)
		changed = subIteration(grid, marks, rows, cols, 1) || changed
	}

	for r := 0; r < rows; r++ {
		dst := out.Pix[r*out.Stride : r*out.Stride+cols]
		src := grid[r*cols : (r+1)*cols]
		for c, v := range src {
			if v == 1 {
				dst[c] = 0
			} else {
				dst[c] = 255
			}
		}
	}
	return out
}

// subIteration deletes boundary pixels matching the Zhang-Suen conditions
// for the given pass (0 or 1). Returns whether any pixel was removed.
func subIteration(grid, marks []uint8, rows, cols, pass int) bool {
	for i := range marks {
		marks[i] = 0
	}
	changed := false
	for r := 1; r < rows-1; r++ {
		for c := 1; c < cols-1; c++ {
			if grid[r*cols+c] != 1 {
				continue
			}
			// Neighbors clockwise from north: p2..p9.
			p2 := grid[(r-1)*cols+c]
			p3 := grid[(r-1)*cols+c+1]
			p4 := grid[r*cols+c+1]
			p5 := grid[(r+1)*cols+c+1]
			p6 := grid[(r+1)*cols+c]
			p7 := grid[(r+1)*cols+c-1]
			p8 := grid[r*cols+c-1]
			p9 := grid[(r-1)*cols+c-1]

			bp := int(p2) + int(p3) + int(p4) + int(p5) + int(p6) + int(p7) + int(p8) + int(p9)
			if bp < 2 || bp > 6 {
				continue
			}
			if transitions(p2, p3, p4, p5, p6, p7, p8, p9) != 1 {
				continue
			}
			if pass == 0 {
				if p2*p4*p6 != 0 || p4*p6*p8 != 0 {
					continue
				}
			} else {
				if p2*p4*p8 != 0 || p2*p6*p8 != 0 {
					continue
				}
			}
			marks[r*cols+c] = 1
			changed = true
		}
	}
	if changed {
		for i, m := range marks {
			if m == 1 {
				grid[i] = 0
			}
		}
	}
	return changed
}

// transitions counts 0->1 patterns in the ordered neighbor ring p2..p9, p2.
func transitions(ps ...uint8) int {
	count := 0
	for i := range ps {
		if ps[i] == 0 && ps[(i+1)%len(ps)] == 1 {
			count++
		}
	}
	return count
}
