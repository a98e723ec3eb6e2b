package pipeline

import (
	"context"
	"errors"
	"image"
	"log/slog"

	"github.com/fingervision/ridgemark/internal/annotate"
	"github.com/fingervision/ridgemark/internal/common"
	"github.com/fingervision/ridgemark/internal/minutiae"
	"github.com/fingervision/ridgemark/internal/region"
	"github.com/fingervision/ridgemark/internal/ridge"
	"github.com/fingervision/ridgemark/internal/skeleton"
	"github.com/fingervision/ridgemark/internal/utils"
)

// Run executes the full sequence on one image and returns the aggregated
// result together with the annotated output image.
func (p *Pipeline) Run(img image.Image) (*Result, *image.RGBA, error) {
	return p.RunContext(context.Background(), img)
}

// RunContext is like Run but checks for cancellation between phases.
func (p *Pipeline) RunContext(ctx context.Context, img image.Image) (*Result, *image.RGBA, error) {
	if p == nil || p.enhancer == nil {
		return nil, nil, errNotInitialized
	}
	if img == nil {
		return nil, nil, errors.New("input image is nil")
	}

	phases := common.NewPhases()
	if err := p.runEnhancement(ctx, img, phases, true); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	p.skeletonize(phases)
	return p.finish(ctx, phases)
}

// RunFirstPhase executes the enhancement hooks and skeletonization only,
// returning the thinned ridge image. Segmentation is skipped; a later
// RunSecondPhase picks up from the stored artifacts.
func (p *Pipeline) RunFirstPhase(img image.Image) (*image.Gray, error) {
	if p == nil || p.enhancer == nil {
		return nil, errNotInitialized
	}
	if img == nil {
		return nil, errors.New("input image is nil")
	}
	phases := common.NewPhases()
	if err := p.runEnhancement(context.Background(), img, phases, false); err != nil {
		return nil, err
	}
	p.skeletonize(phases)
	return p.thin, nil
}

// RunSecondPhase re-runs skeletonization on the stored enhanced image, then
// scores, selects, and annotates. It requires a prior Run or RunFirstPhase;
// without a stored mask the selector sees an empty mask and reports no
// region, which degrades to an unannotated image.
func (p *Pipeline) RunSecondPhase() (*Result, *image.RGBA, error) {
	if p == nil || p.enhancer == nil {
		return nil, nil, errNotInitialized
	}
	if p.enhanced == nil {
		return nil, nil, errors.New("no enhanced image: run the first phase before the second")
	}
	phases := common.NewPhases()
	p.skeletonize(phases)
	return p.finish(context.Background(), phases)
}

// runEnhancement executes the strategy hooks in fixed order. The mask hook
// only runs on full runs, mirroring the reduced first-phase variant.
func (p *Pipeline) runEnhancement(ctx context.Context, img image.Image, phases *common.Phases, withMask bool) error {
	t := common.NewNamedTimer("enhance")
	p.source = utils.ToGray(img)
	b := p.source.Bounds()
	slog.Debug("starting enhancement", "width", b.Dx(), "height", b.Dy())

	norm := p.enhancer.Normalize(p.source)
	if err := ctx.Err(); err != nil {
		return err
	}
	field := p.enhancer.Orient(norm)
	if err := ctx.Err(); err != nil {
		return err
	}
	p.enhanced = p.enhancer.Filter(norm, field)
	if withMask {
		p.mask = p.enhancer.Segment(norm)
	} else {
		p.mask = nil
	}
	phases.Record("enhance", t.Stop())
	return nil
}

func (p *Pipeline) skeletonize(phases *common.Phases) {
	t := common.NewNamedTimer("thin")
	p.thin = skeleton.Thin(p.enhanced)
	phases.Record("thin", t.Stop())
	slog.Debug("skeletonization complete")
}

// finish runs the built-in analysis steps: minutiae scoring, region
// selection, ridge counting, and annotation.
func (p *Pipeline) finish(ctx context.Context, phases *common.Phases) (*Result, *image.RGBA, error) {
	t := common.NewNamedTimer("score")
	p.weights = minutiae.Score(p.thin)
	phases.Record("score", t.Stop())
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	mask := p.mask
	if mask == nil {
		mask = image.NewGray(p.thin.Bounds())
	}

	t = common.NewNamedTimer("select")
	reg, found, err := region.Select(p.weights, mask, p.cfg.BlockSize)
	if err != nil {
		return nil, nil, err
	}
	var count ridge.Result
	if found {
		count = ridge.Count(p.thin, reg)
		slog.Debug("region selected", "region", reg.String(), "ridges", count.Count, "diagonal", count.Diagonal.String())
	} else {
		slog.Debug("no fully valid region found")
	}
	phases.Record("select", t.Stop())

	annotated := annotate.Render(p.source, reg, found, count, p.cfg.BlockSize)

	res := newResult(p.source, reg, found, count, phases)
	return res, annotated, nil
}
