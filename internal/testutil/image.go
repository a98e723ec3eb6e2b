// Package testutil builds synthetic skeletons, masks, and fingerprint-like
// images for tests.
package testutil

import (
	"image"
	"math"
)

// NewSkeleton returns a w x h skeleton image that is entirely background
// (255). Ridge pixels are added with SetRidge.
func NewSkeleton(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

// SetRidge marks (row, col) as a ridge pixel (value 0).
func SetRidge(img *image.Gray, row, col int) {
	img.Pix[row*img.Stride+col] = 0
}

// HorizontalRidge draws a ridge run along one row from colStart to colEnd
// inclusive.
func HorizontalRidge(img *image.Gray, row, colStart, colEnd int) {
	for c := colStart; c <= colEnd; c++ {
		SetRidge(img, row, c)
	}
}

// VerticalRidge draws a ridge run along one column from rowStart to rowEnd
// inclusive.
func VerticalRidge(img *image.Gray, col, rowStart, rowEnd int) {
	for r := rowStart; r <= rowEnd; r++ {
		SetRidge(img, r, col)
	}
}

// FullMask returns a w x h validity mask with every pixel valid (value 1).
func FullMask(w, h int) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, w, h))
	for i := range mask.Pix {
		mask.Pix[i] = 1
	}
	return mask
}

// EmptyMask returns a w x h validity mask with no valid pixels.
func EmptyMask(w, h int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, w, h))
}

// MaskWindow marks the given half-open window of a mask as valid.
func MaskWindow(mask *image.Gray, rowStart, rowEnd, colStart, colEnd int) {
	for r := rowStart; r < rowEnd; r++ {
		for c := colStart; c < colEnd; c++ {
			mask.Pix[r*mask.Stride+c] = 1
		}
	}
}

// SyntheticFingerprint renders a w x h grayscale image with concentric
// sinusoidal ridges around the image center, a crude stand-in for a real
// scan with plausible ridge flow and contrast.
func SyntheticFingerprint(w, h int, wavelength float64) *image.Gray {
	if wavelength <= 0 {
		wavelength = 8
	}
	img := image.NewGray(image.Rect(0, 0, w, h))
	cx := float64(w) / 2
	cy := float64(h) / 2
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			d := math.Hypot(float64(c)-cx, float64(r)-cy)
			v := 128 + 100*math.Sin(2*math.Pi*d/wavelength)
			img.Pix[r*img.Stride+c] = uint8(math.Max(0, math.Min(255, v)))
		}
	}
	return img
}
