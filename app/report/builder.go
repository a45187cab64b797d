package report

import (
	"time"

	"github.com/feedaudit/feed-audit/app/feed"
)

const (
	sampleHead = 5
	sampleTail = 3
)

// Builder is a pure transform from pipeline output to the serializable
// Report. It performs no I/O.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Run(items []feed.NormalizedItem, outcome feed.ValidationOutcome,
	result feed.CollectionResult, target int, startedAt, finishedAt time.Time) *Report {

	rep := &Report{
		Target:       target,
		Collected:    len(items),
		Shortfall:    len(items) < target,
		PagesVisited: result.PagesVisited,
		StopCause:    string(result.Cause),
		StartedAt:    startedAt,
		FinishedAt:   finishedAt,
		DurationMS:   finishedAt.Sub(startedAt).Milliseconds(),
		Passed:       outcome.Passed,
		Problems:     outcome.Problems,
		Samples:      b.sample(items),
	}
	if rep.Problems == nil {
		rep.Problems = []string{}
	}

	b.attachStats(rep, items)

	return rep
}

func (b *Builder) attachStats(rep *Report, items []feed.NormalizedItem) {
	var newest, oldest time.Time
	parsed := 0

	for _, item := range items {
		if !item.Instant.Parsed {
			rep.UnparsableCount++
			continue
		}
		t := item.Instant.Time
		if parsed == 0 {
			newest, oldest = t, t
		} else {
			if t.After(newest) {
				newest = t
			}
			if t.Before(oldest) {
				oldest = t
			}
		}
		parsed++
	}

	if parsed == 0 {
		return
	}

	rep.Stats = &Stats{
		Newest:    newest,
		Oldest:    oldest,
		SpanHours: newest.Sub(oldest).Hours(),
	}
}

func (b *Builder) sample(items []feed.NormalizedItem) Samples {
	samples := Samples{First: []SampleItem{}, Last: []SampleItem{}}

	head := min(sampleHead, len(items))
	for _, item := range items[:head] {
		samples.First = append(samples.First, b.sampleItem(item))
	}

	tail := max(len(items)-sampleTail, head)
	for _, item := range items[tail:] {
		samples.Last = append(samples.Last, b.sampleItem(item))
	}

	return samples
}

func (b *Builder) sampleItem(item feed.NormalizedItem) SampleItem {
	sample := SampleItem{
		Position: item.Position,
		Title:    item.Title,
		AgeText:  item.AgeText,
		TimeHint: item.TimeHint,
	}
	if item.Instant.Parsed {
		t := item.Instant.Time
		sample.Instant = &t
	}
	return sample
}
