package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/feedaudit/feed-audit/app/feed"
	"github.com/feedaudit/feed-audit/app/report"
)

// Pipeline orchestrates one audit run: collect, normalize, validate, build
// report. It always hands back a Report, even when the run fails fatally; a
// non-nil error marks the fatal case.
type Pipeline struct {
	sourceURL  string
	collector  *feed.Collector
	normalizer *feed.Normalizer
	validator  *feed.Validator
	builder    *report.Builder
}

func NewPipeline(source feed.PageSource, sourceURL string, maxPages int) *Pipeline {
	return &Pipeline{
		sourceURL:  sourceURL,
		collector:  feed.NewCollector(source, maxPages),
		normalizer: feed.NewNormalizer(),
		validator:  feed.NewValidator(),
		builder:    report.NewBuilder(),
	}
}

func (p *Pipeline) Run(ctx context.Context, target int) (*report.Report, error) {
	startedAt := time.Now().UTC()

	result, err := p.collector.Run(ctx, target)
	if err != nil {
		return p.fatal(result, target, startedAt, fmt.Errorf("collection failed: %w", err))
	}
	if len(result.Items) == 0 {
		// Nothing to validate; a vacuous "passed" would be misleading.
		return p.fatal(result, target, startedAt, fmt.Errorf("no items collected (pages visited: %d, cause: %s)",
			result.PagesVisited, result.Cause))
	}

	if len(result.Items) < target {
		slog.Warn("Collected fewer items than requested, validating the partial run",
			"target", target, "collected", len(result.Items), "cause", string(result.Cause))
	}

	// One shared reference time for the whole batch keeps relative-age math
	// mutually consistent across items collected at different moments.
	now := time.Now().UTC()
	normalized := make([]feed.NormalizedItem, 0, len(result.Items))
	for i, raw := range result.Items {
		normalized = append(normalized, feed.NormalizedItem{
			Position: i + 1,
			RawItem:  raw,
			Instant:  p.normalizer.Run(raw, now),
		})
	}

	outcome := p.validator.Run(normalized)

	rep := p.builder.Run(normalized, outcome, result, target, startedAt, time.Now().UTC())
	rep.SourceURL = p.sourceURL

	slog.Info("Audit completed",
		"source", p.sourceURL,
		"collected", rep.Collected,
		"pages", rep.PagesVisited,
		"unparsable", rep.UnparsableCount,
		"problems", len(rep.Problems),
		"passed", rep.Passed)

	return rep, nil
}

// fatal builds a best-effort report around whatever partial data exists, so
// the record of the attempt is not lost, and propagates the error.
func (p *Pipeline) fatal(result feed.CollectionResult, target int, startedAt time.Time, err error) (*report.Report, error) {
	rep := p.builder.Run(nil, feed.ValidationOutcome{}, result, target, startedAt, time.Now().UTC())
	rep.SourceURL = p.sourceURL
	rep.Passed = false
	rep.Fatal = err.Error()

	slog.Error("Audit failed", "source", p.sourceURL, "error", err)

	return rep, err
}
