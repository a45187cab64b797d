package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// collectorState is the explicit pagination state machine. "Ran out of
// pages", "hit the target" and "navigation broke" are three distinct
// terminal conditions and the states keep their transitions named instead
// of buried in nested breaks.
type collectorState int

const (
	stateReading collectorState = iota
	stateAdvancing
	stateDone
	stateStopped
)

const (
	advanceAttempts   = 2
	advanceRetryDelay = 2 * time.Second
)

// Collector assembles a target-sized run of items from a paginated source
// with bounded effort. It owns the accumulator exclusively for the duration
// of one run; pages are read strictly sequentially.
type Collector struct {
	source     PageSource
	maxPages   int
	retryDelay time.Duration
}

func NewCollector(source PageSource, maxPages int) *Collector {
	return &Collector{
		source:     source,
		maxPages:   maxPages,
		retryDelay: advanceRetryDelay,
	}
}

// Run collects until target items are accumulated, the feed is exhausted,
// pagination breaks, or the page budget is spent. It never fails for "not
// enough items": a short run is returned as-is with its stop cause. Only a
// hard failure reading the very first page is fatal.
func (c *Collector) Run(ctx context.Context, target int) (CollectionResult, error) {
	var items []RawItem
	pagesVisited := 0
	cause := StopTarget

	state := stateReading
	for state == stateReading || state == stateAdvancing {
		switch state {
		case stateReading:
			pagesVisited++
			pageItems, err := c.source.ReadItems(ctx)
			if err != nil {
				if pagesVisited == 1 {
					return CollectionResult{PagesVisited: pagesVisited, Cause: StopNavigation},
						fmt.Errorf("failed to read first page: %w", err)
				}
				// A later page that never produced content is treated as
				// empty rather than failing the whole run.
				slog.Warn("Page read failed, treating page as empty", "page", pagesVisited, "error", err)
				pageItems = nil
			}
			slog.Info("Page read", "page", pagesVisited, "items", len(pageItems), "accumulated", len(items)+len(pageItems))

			if len(pageItems) == 0 {
				// An empty page is evidence the feed ended, not a transient fault.
				cause = StopExhausted
				state = stateStopped
				continue
			}

			items = append(items, pageItems...)
			if len(items) >= target {
				state = stateDone
				continue
			}
			state = stateAdvancing

		case stateAdvancing:
			if pagesVisited >= c.maxPages {
				slog.Warn("Page budget exhausted, stopping pagination",
					"pages_visited", pagesVisited, "max_pages", c.maxPages, "collected", len(items))
				cause = StopPageBudget
				state = stateStopped
				continue
			}
			if err := c.advanceWithRetry(ctx); err != nil {
				slog.Warn("Pagination failed, keeping partial result",
					"pages_visited", pagesVisited, "collected", len(items), "error", err)
				cause = StopNavigation
				state = stateStopped
				continue
			}
			state = stateReading
		}
	}

	// Collection never returns more than requested.
	if len(items) > target {
		items = items[:target]
	}

	return CollectionResult{Items: items, PagesVisited: pagesVisited, Cause: cause}, nil
}

// advanceWithRetry wraps a navigation attempt in a bounded retry with fixed
// delay. The attempt count is small, so exponential backoff buys nothing.
func (c *Collector) advanceWithRetry(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= advanceAttempts; attempt++ {
		err := c.source.Advance(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		slog.Debug("Advance attempt failed", "attempt", attempt, "max_attempts", advanceAttempts, "error", err)

		if attempt < advanceAttempts {
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return fmt.Errorf("failed to advance after %d attempts: %w", advanceAttempts, lastErr)
}
