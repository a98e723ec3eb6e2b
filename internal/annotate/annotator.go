// Package annotate renders a selected region, its winning diagonal, and the
// ridge count onto a color copy of the source image.
package annotate

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fingervision/ridgemark/internal/region"
	"github.com/fingervision/ridgemark/internal/ridge"
	"github.com/fingervision/ridgemark/internal/utils"
)

var (
	lineColor = color.RGBA{R: 255, A: 255}
	rectColor = color.RGBA{R: 255, A: 255}
	textColor = color.RGBA{R: 255, G: 255, A: 255}
)

// Render returns a fresh RGBA copy of src with the region annotation drawn
// on it. The source is never mutated. When no region was found the plain
// color conversion is returned unchanged.
func Render(src image.Image, reg region.Region, found bool, res ridge.Result, blockSize int) *image.RGBA {
	dst := utils.ToRGBA(src)
	if !found {
		return dst
	}

	// Horizontal center of the region; the label sits at one third of the
	// region height for the main diagonal and two thirds for the secondary,
	// keeping it clear of the line.
	textX := (reg.ColEnd-reg.ColStart)/2 + reg.ColStart
	var start, end image.Point
	var textY int
	if res.Diagonal == ridge.Main {
		start = image.Pt(reg.ColStart, reg.RowStart)
		end = image.Pt(reg.ColEnd, reg.RowEnd)
		textY = (reg.RowEnd-reg.RowStart)/3 + reg.RowStart
	} else {
		start = image.Pt(reg.ColEnd, reg.RowStart)
		end = image.Pt(reg.ColStart, reg.RowEnd)
		textY = 2*(reg.RowEnd-reg.RowStart)/3 + reg.RowStart
	}

	utils.DrawLine(dst, start, end, lineColor, 1)
	utils.DrawLabel(dst, fmt.Sprintf(" %d", res.Count), textX, textY-blockSize, textColor)
	utils.DrawLabel(dst, "ridges", textX, textY, textColor)
	utils.DrawRect(dst, reg.Rect(), rectColor, 1)
	return dst
}
