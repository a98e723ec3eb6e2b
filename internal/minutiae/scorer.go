// Package minutiae scores skeleton pixels by crossing-number analysis.
//
// A ridge termination or bifurcation is a local quality defect for region
// selection purposes: regions containing fewer minutiae carry cleaner,
// more countable ridge structure.
package minutiae

import (
	"image"

	"gonum.org/v1/gonum/mat"

	"github.com/fingervision/ridgemark/internal/mempool"
)

// Kind classifies the local ridge topology at a skeleton pixel.
type Kind int

const (
	None Kind = iota
	Termination
	Bifurcation
)

func (k Kind) String() string {
	switch k {
	case Termination:
		return "termination"
	case Bifurcation:
		return "bifurcation"
	default:
		return "none"
	}
}

// Weights applied per detected minutia. Terminations weigh twice as much as
// bifurcations when aggregated by the region selector.
const (
	TerminationWeight = 2.0
	BifurcationWeight = 1.0
)

// ring visits the 8-connected neighborhood as a closed loop: the first
// neighbor is repeated at the end so consecutive differences wrap around.
// Offsets are (row, col) deltas.
var ring = [9][2]int{
	{-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Detect classifies the pixel at (row, col) of a strict 0/1 ridge grid.
// Callers must guarantee (row, col) is an interior position.
func Detect(bin []uint8, cols, row, col int) Kind {
	if bin[row*cols+col] != 1 {
		return None
	}
	crossings := 0
	prev := int(bin[(row+ring[0][0])*cols+col+ring[0][1]])
	for _, off := range ring[1:] {
		v := int(bin[(row+off[0])*cols+col+off[1]])
		if d := v - prev; d < 0 {
			crossings -= d
		} else {
			crossings += d
		}
		prev = v
	}
	switch crossings / 2 {
	case 1:
		return Termination
	case 3:
		return Bifurcation
	default:
		return None
	}
}

// Score produces a weight image of the same shape as the skeleton.
// Each interior ridge pixel contributes TerminationWeight or
// BifurcationWeight according to its crossing number; everything else,
// including the one-pixel border, stays zero.
func Score(skel *image.Gray) *mat.Dense {
	b := skel.Bounds()
	rows, cols := b.Dy(), b.Dx()
	weights := mat.NewDense(rows, cols, nil)
	if rows < 3 || cols < 3 {
		return weights
	}

	// Recode ridge-on-white (0 on 255) into a strict 0/1 grid.
	bin := mempool.GetUint8(rows * cols)
	defer mempool.PutUint8(bin)
	for r := 0; r < rows; r++ {
		src := skel.Pix[r*skel.Stride : r*skel.Stride+cols]
		dst := bin[r*cols : (r+1)*cols]
		for c, v := range src {
			if v == 0 {
				dst[c] = 1
			}
		}
	}

	for r := 1; r < rows-1; r++ {
		for c := 1; c < cols-1; c++ {
			switch Detect(bin, cols, r, c) {
			case Termination:
				weights.Set(r, c, weights.At(r, c)+TerminationWeight)
			case Bifurcation:
				weights.Set(r, c, weights.At(r, c)+BifurcationWeight)
			case None:
			}
		}
	}
	return weights
}
