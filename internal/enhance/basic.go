package enhance

import (
	"image"
	"math"
)

// BasicConfig holds tuning for the default enhancement strategy.
type BasicConfig struct {
	TargetMean     float64 // desired mean intensity after normalization
	TargetVariance float64 // desired intensity variance after normalization
	BlockSize      int     // block side for orientation and segmentation
	VarianceFloor  float64 // minimum block variance counted as foreground
}

// DefaultBasicConfig returns defaults suitable for 500dpi fingerprint scans.
func DefaultBasicConfig() BasicConfig {
	return BasicConfig{
		TargetMean:     128,
		TargetVariance: 2000,
		BlockSize:      16,
		VarianceFloor:  150,
	}
}

// Basic is the default enhancement strategy: mean/variance normalization,
// gradient-based orientation, oriented smoothing with Otsu binarization,
// and block-variance segmentation.
type Basic struct {
	cfg BasicConfig
}

// NewBasic creates a Basic enhancer with the given configuration.
func NewBasic(cfg BasicConfig) *Basic {
	if cfg.BlockSize <= 0 {
		cfg.BlockSize = DefaultBasicConfig().BlockSize
	}
	return &Basic{cfg: cfg}
}

// Normalize maps the image to the configured target mean and variance.
func (e *Basic) Normalize(src *image.Gray) *image.Gray {
	b := src.Bounds()
	rows, cols := b.Dy(), b.Dx()
	out := image.NewGray(image.Rect(0, 0, cols, rows))
	if rows == 0 || cols == 0 {
		return out
	}

	mean, variance := meanVariance(src)
	if variance == 0 {
		variance = 1
	}
	for r := 0; r < rows; r++ {
		src0 := src.Pix[r*src.Stride : r*src.Stride+cols]
		dst := out.Pix[r*out.Stride : r*out.Stride+cols]
		for c, v := range src0 {
			d := float64(v) - mean
			adj := math.Sqrt(e.cfg.TargetVariance * d * d / variance)
			nv := e.cfg.TargetMean - adj
			if d > 0 {
				nv = e.cfg.TargetMean + adj
			}
			dst[c] = clampByte(nv)
		}
	}
	return out
}

// Orient estimates block orientations from Sobel gradients.
func (e *Basic) Orient(norm *image.Gray) *OrientationField {
	b := norm.Bounds()
	rows, cols := b.Dy(), b.Dx()
	bs := e.cfg.BlockSize
	brows := (rows + bs - 1) / bs
	bcols := (cols + bs - 1) / bs
	angles := make([][]float64, brows)
	for br := range angles {
		angles[br] = make([]float64, bcols)
		for bc := range angles[br] {
			var gxx, gyy, gxy float64
			for r := br * bs; r < (br+1)*bs && r < rows-1; r++ {
				if r < 1 {
					continue
				}
				for c := bc * bs; c < (bc+1)*bs && c < cols-1; c++ {
					if c < 1 {
						continue
					}
					gx := float64(norm.GrayAt(c+1, r).Y) - float64(norm.GrayAt(c-1, r).Y)
					gy := float64(norm.GrayAt(c, r+1).Y) - float64(norm.GrayAt(c, r-1).Y)
					gxx += gx * gx
					gyy += gy * gy
					gxy += gx * gy
				}
			}
			angles[br][bc] = 0.5 * math.Atan2(2*gxy, gxx-gyy)
		}
	}
	return &OrientationField{BlockSize: bs, Angles: angles}
}

// Filter smooths each pixel along its local ridge orientation and
// binarizes the result with Otsu's threshold. Ridges come out as 0 on a
// 255 background, the encoding the skeletonizer expects.
func (e *Basic) Filter(norm *image.Gray, field *OrientationField) *image.Gray {
	b := norm.Bounds()
	rows, cols := b.Dy(), b.Dx()
	smoothed := image.NewGray(image.Rect(0, 0, cols, rows))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			theta := field.At(r, c)
			dc := math.Cos(theta)
			dr := math.Sin(theta)
			sum := 0.0
			n := 0.0
			for step := -2; step <= 2; step++ {
				rr := r + int(math.Round(float64(step)*dr))
				cc := c + int(math.Round(float64(step)*dc))
				if rr < 0 || rr >= rows || cc < 0 || cc >= cols {
					continue
				}
				sum += float64(norm.Pix[rr*norm.Stride+cc])
				n++
			}
			smoothed.Pix[r*smoothed.Stride+c] = clampByte(sum / n)
		}
	}

	thresh := otsuThreshold(smoothed)
	out := image.NewGray(image.Rect(0, 0, cols, rows))
	for i, v := range smoothed.Pix {
		if v < thresh {
			out.Pix[i] = 0
		} else {
			out.Pix[i] = 255
		}
	}
	return out
}

// Segment marks blocks whose intensity variance clears the configured floor
// as foreground, producing a strict 0/1 validity mask.
func (e *Basic) Segment(norm *image.Gray) *image.Gray {
	b := norm.Bounds()
	rows, cols := b.Dy(), b.Dx()
	bs := e.cfg.BlockSize
	mask := image.NewGray(image.Rect(0, 0, cols, rows))
	for br := 0; br*bs < rows; br++ {
		for bc := 0; bc*bs < cols; bc++ {
			rEnd := min((br+1)*bs, rows)
			cEnd := min((bc+1)*bs, cols)
			if blockVariance(norm, br*bs, rEnd, bc*bs, cEnd) < e.cfg.VarianceFloor {
				continue
			}
			for r := br * bs; r < rEnd; r++ {
				for c := bc * bs; c < cEnd; c++ {
					mask.Pix[r*mask.Stride+c] = 1
				}
			}
		}
	}
	return mask
}

func meanVariance(img *image.Gray) (float64, float64) {
	b := img.Bounds()
	rows, cols := b.Dy(), b.Dx()
	n := float64(rows * cols)
	var sum float64
	for r := 0; r < rows; r++ {
		for _, v := range img.Pix[r*img.Stride : r*img.Stride+cols] {
			sum += float64(v)
		}
	}
	mean := sum / n
	var variance float64
	for r := 0; r < rows; r++ {
		for _, v := range img.Pix[r*img.Stride : r*img.Stride+cols] {
			d := float64(v) - mean
			variance += d * d
		}
	}
	return mean, variance / n
}

func blockVariance(img *image.Gray, rowStart, rowEnd, colStart, colEnd int) float64 {
	n := float64((rowEnd - rowStart) * (colEnd - colStart))
	if n == 0 {
		return 0
	}
	var sum float64
	for r := rowStart; r < rowEnd; r++ {
		for _, v := range img.Pix[r*img.Stride+colStart : r*img.Stride+colEnd] {
			sum += float64(v)
		}
	}
	mean := sum / n
	var variance float64
	for r := rowStart; r < rowEnd; r++ {
		for _, v := range img.Pix[r*img.Stride+colStart : r*img.Stride+colEnd] {
			d := float64(v) - mean
			variance += d * d
		}
	}
	return variance / n
}

// otsuThreshold picks the threshold maximizing between-class variance of
// the intensity histogram.
func otsuThreshold(img *image.Gray) uint8 {
	b := img.Bounds()
	rows, cols := b.Dy(), b.Dx()
	var hist [256]int
	total := rows * cols
	for r := 0; r < rows; r++ {
		for _, v := range img.Pix[r*img.Stride : r*img.Stride+cols] {
			hist[v]++
		}
	}
	if total == 0 {
		return 128
	}

	var sumAll float64
	for i, h := range hist {
		sumAll += float64(i) * float64(h)
	}

	var sumBack, weightBack float64
	bestThresh := uint8(128)
	bestVariance := -1.0
	for t := 0; t < 256; t++ {
		weightBack += float64(hist[t])
		if weightBack == 0 {
			continue
		}
		weightFore := float64(total) - weightBack
		if weightFore == 0 {
			break
		}
		sumBack += float64(t) * float64(hist[t])
		meanBack := sumBack / weightBack
		meanFore := (sumAll - sumBack) / weightFore
		between := weightBack * weightFore * (meanBack - meanFore) * (meanBack - meanFore)
		if between > bestVariance {
			bestVariance = between
			bestThresh = uint8(t)
		}
	}
	return bestThresh
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
