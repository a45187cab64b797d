package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/feedaudit/feed-audit/app/feed"
)

func item(position int, title string, instant feed.Instant) feed.NormalizedItem {
	return feed.NormalizedItem{
		Position: position,
		RawItem:  feed.RawItem{Title: title, AgeText: "1 minute ago"},
		Instant:  instant,
	}
}

func TestBuildComputesStatsFromParsableInstants(t *testing.T) {
	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	items := []feed.NormalizedItem{
		item(1, "newest", feed.ParsedInstant(base)),
		item(2, "middle", feed.ParsedInstant(base.Add(-time.Hour))),
		item(3, "broken", feed.Unparsable()),
		item(4, "oldest", feed.ParsedInstant(base.Add(-2*time.Hour))),
	}

	rep := NewBuilder().Run(items, feed.ValidationOutcome{Passed: false, Problems: []string{"p"}},
		feed.CollectionResult{PagesVisited: 2, Cause: feed.StopTarget}, 4, base, base.Add(time.Second))

	require.NotNil(t, rep.Stats)
	require.True(t, rep.Stats.Newest.Equal(base))
	require.True(t, rep.Stats.Oldest.Equal(base.Add(-2*time.Hour)))
	require.InDelta(t, 2.0, rep.Stats.SpanHours, 0.001)
	require.Equal(t, 1, rep.UnparsableCount)
	require.Equal(t, 2, rep.PagesVisited)
	require.Equal(t, string(feed.StopTarget), rep.StopCause)
	require.Equal(t, int64(1000), rep.DurationMS)
}

func TestBuildOmitsStatsWhenNothingParsed(t *testing.T) {
	now := time.Now().UTC()
	items := []feed.NormalizedItem{
		item(1, "broken one", feed.Unparsable()),
		item(2, "broken two", feed.Unparsable()),
	}

	rep := NewBuilder().Run(items, feed.ValidationOutcome{Problems: []string{"a", "b"}},
		feed.CollectionResult{PagesVisited: 1, Cause: feed.StopExhausted}, 2, now, now)

	require.Nil(t, rep.Stats, "stats must be absent, not fabricated from an empty set")
	require.Equal(t, 2, rep.UnparsableCount)
}

func TestBuildFlagsShortfall(t *testing.T) {
	now := time.Now().UTC()
	items := []feed.NormalizedItem{item(1, "only one", feed.ParsedInstant(now))}

	rep := NewBuilder().Run(items, feed.ValidationOutcome{Passed: true},
		feed.CollectionResult{PagesVisited: 3, Cause: feed.StopExhausted}, 10, now, now)

	require.True(t, rep.Shortfall)
	require.Equal(t, 1, rep.Collected)
	require.Equal(t, 10, rep.Target)
	require.NotNil(t, rep.Problems, "problems serializes as an empty list, not null")
	require.Empty(t, rep.Problems)
}

func TestBuildSamplesHeadAndTail(t *testing.T) {
	now := time.Now().UTC()
	var items []feed.NormalizedItem
	for i := 1; i <= 10; i++ {
		items = append(items, item(i, "story", feed.ParsedInstant(now.Add(-time.Duration(i)*time.Minute))))
	}

	rep := NewBuilder().Run(items, feed.ValidationOutcome{Passed: true},
		feed.CollectionResult{PagesVisited: 1, Cause: feed.StopTarget}, 10, now, now)

	require.Len(t, rep.Samples.First, 5)
	require.Len(t, rep.Samples.Last, 3)
	require.Equal(t, 1, rep.Samples.First[0].Position)
	require.Equal(t, 5, rep.Samples.First[4].Position)
	require.Equal(t, 8, rep.Samples.Last[0].Position)
	require.Equal(t, 10, rep.Samples.Last[2].Position)
	require.NotNil(t, rep.Samples.First[0].Instant)
}

func TestBuildSamplesDoNotOverlapOnShortRuns(t *testing.T) {
	now := time.Now().UTC()
	var items []feed.NormalizedItem
	for i := 1; i <= 4; i++ {
		items = append(items, item(i, "story", feed.ParsedInstant(now)))
	}

	rep := NewBuilder().Run(items, feed.ValidationOutcome{Passed: true},
		feed.CollectionResult{PagesVisited: 1, Cause: feed.StopTarget}, 4, now, now)

	require.Len(t, rep.Samples.First, 4)
	require.Empty(t, rep.Samples.Last)
}

func TestBuildEmptyRun(t *testing.T) {
	now := time.Now().UTC()

	rep := NewBuilder().Run(nil, feed.ValidationOutcome{},
		feed.CollectionResult{PagesVisited: 1, Cause: feed.StopExhausted}, 10, now, now)

	require.Nil(t, rep.Stats)
	require.Empty(t, rep.Samples.First)
	require.Empty(t, rep.Samples.Last)
	require.Equal(t, 0, rep.Collected)
	require.True(t, rep.Shortfall)
}
