package pipeline

import (
	"image"

	"github.com/fingervision/ridgemark/internal/common"
	"github.com/fingervision/ridgemark/internal/region"
	"github.com/fingervision/ridgemark/internal/ridge"
)

// RegionResult describes the selected analysis window and its ridge count.
type RegionResult struct {
	Region     region.Region `json:"region"`
	RidgeCount int           `json:"ridge_count"`
	Diagonal   string        `json:"diagonal"`
}

// Result is the per-image aggregated analysis output. Region is nil when no
// fully valid window existed.
type Result struct {
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Region     *RegionResult `json:"region,omitempty"`
	Processing struct {
		EnhanceNs int64 `json:"enhance_ns"`
		ThinNs    int64 `json:"thin_ns"`
		ScoreNs   int64 `json:"score_ns"`
		SelectNs  int64 `json:"select_ns"`
		TotalNs   int64 `json:"total_ns"`
	} `json:"processing"`
}

func newResult(src *image.Gray, reg region.Region, found bool, count ridge.Result, phases *common.Phases) *Result {
	res := &Result{
		Width:  src.Bounds().Dx(),
		Height: src.Bounds().Dy(),
	}
	if found {
		res.Region = &RegionResult{
			Region:     reg,
			RidgeCount: count.Count,
			Diagonal:   count.Diagonal.String(),
		}
	}
	res.Processing.EnhanceNs = phases.Get("enhance").Nanoseconds()
	res.Processing.ThinNs = phases.Get("thin").Nanoseconds()
	res.Processing.ScoreNs = phases.Get("score").Nanoseconds()
	res.Processing.SelectNs = phases.Get("select").Nanoseconds()
	res.Processing.TotalNs = phases.Total().Nanoseconds()
	return res
}
