package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeRelativeUnits(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	normalizer := NewNormalizer()

	tests := []struct {
		name    string
		ageText string
		want    time.Duration
	}{
		{"seconds", "45 seconds ago", 45 * time.Second},
		{"single second", "1 second ago", time.Second},
		{"minutes", "5 minutes ago", 5 * time.Minute},
		{"single minute", "1 minute ago", time.Minute},
		{"hours", "3 hours ago", 3 * time.Hour},
		{"days", "2 days ago", 48 * time.Hour},
		{"no trailing ago", "7 minutes", 7 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instant := normalizer.Run(RawItem{Title: "story", AgeText: tt.ageText}, now)
			require.True(t, instant.Parsed, "expected %q to parse", tt.ageText)
			require.Equal(t, now.Add(-tt.want), instant.Time)
		})
	}
}

func TestNormalizeRefusesCoarseUnits(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	normalizer := NewNormalizer()

	tests := []struct {
		name    string
		ageText string
	}{
		{"weeks", "2 weeks ago"},
		{"months", "3 months ago"},
		{"years", "1 year ago"},
		{"empty", ""},
		{"no number", "just now"},
		{"garbage", "yesterday-ish"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instant := normalizer.Run(RawItem{Title: "story", AgeText: tt.ageText}, now)
			require.False(t, instant.Parsed, "expected %q to be unparsable", tt.ageText)
		})
	}
}

func TestNormalizeHintWinsOverRelativeText(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	normalizer := NewNormalizer()

	// Relative text deliberately disagrees with the hint; the hint is
	// authoritative.
	instant := normalizer.Run(RawItem{
		Title:    "story",
		AgeText:  "5 minutes ago",
		TimeHint: "2026-08-25T10:15:30Z",
	}, now)

	require.True(t, instant.Parsed)
	require.True(t, instant.Time.Equal(time.Date(2026, 8, 25, 10, 15, 30, 0, time.UTC)))
}

func TestNormalizeHintWithEpochSuffix(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	normalizer := NewNormalizer()

	instant := normalizer.Run(RawItem{
		Title:    "story",
		TimeHint: "2026-08-25T10:15:30 1787998530",
	}, now)

	require.True(t, instant.Parsed)
	require.Equal(t, 2026, instant.Time.Year())
	require.Equal(t, 15, instant.Time.Minute())
}

func TestNormalizeBadHintFallsBackToRelative(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	normalizer := NewNormalizer()

	instant := normalizer.Run(RawItem{
		Title:    "story",
		AgeText:  "10 minutes ago",
		TimeHint: "not a timestamp",
	}, now)

	require.True(t, instant.Parsed)
	require.Equal(t, now.Add(-10*time.Minute), instant.Time)
}

func TestNormalizeNothingParsable(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	normalizer := NewNormalizer()

	instant := normalizer.Run(RawItem{Title: "story", AgeText: "3 months ago", TimeHint: "garbage hint"}, now)
	require.False(t, instant.Parsed)
}
