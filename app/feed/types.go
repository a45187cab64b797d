package feed

import (
	"time"
)

// Audit domain types

// RawItem is a single listing entry exactly as the page source read it.
// TimeHint carries the page's absolute timestamp string when one is exposed;
// an empty TimeHint means the entry only advertises relative age text.
type RawItem struct {
	Title    string
	AgeText  string
	TimeHint string
}

// Instant is the result of normalizing an item's age information: either a
// parsed absolute point in time or an explicit unparsable marker. Downstream
// code branches on Parsed instead of comparing against sentinel values.
type Instant struct {
	Time   time.Time
	Parsed bool
}

func ParsedInstant(t time.Time) Instant {
	return Instant{Time: t, Parsed: true}
}

func Unparsable() Instant {
	return Instant{}
}

// NormalizedItem is a RawItem enriched with its 1-based collection rank and
// the instant derived from a single shared reference time. Position is
// assigned once by collection order and never recomputed.
type NormalizedItem struct {
	Position int
	RawItem
	Instant Instant
}

// ValidationOutcome lists every finding as a human-readable problem string.
// Problem strings embed positions, titles and raw age text; they are the
// primary diagnostic surface.
type ValidationOutcome struct {
	Passed   bool
	Problems []string
}

// StopCause names the terminal condition that ended a collection run. The
// three stop variants are distinct on purpose: "ran out of pages", "hit the
// page budget" and "navigation broke" call for different operator reactions.
type StopCause string

const (
	StopTarget     StopCause = "target_reached"
	StopExhausted  StopCause = "feed_exhausted"
	StopNavigation StopCause = "navigation_failed"
	StopPageBudget StopCause = "page_budget_exceeded"
)

type CollectionResult struct {
	Items        []RawItem
	PagesVisited int
	Cause        StopCause
}
