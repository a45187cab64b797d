package report

import "time"

// Report is the single serializable artifact of an audit run. It is always
// produced, even when collection failed fatally, so diagnostics survive the
// crash.
type Report struct {
	SourceURL    string    `json:"source_url,omitempty"`
	Target       int       `json:"target"`
	Collected    int       `json:"collected"`
	Shortfall    bool      `json:"shortfall"`
	PagesVisited int       `json:"pages_visited"`
	StopCause    string    `json:"stop_cause"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	DurationMS   int64     `json:"duration_ms"`

	Passed          bool     `json:"passed"`
	Problems        []string `json:"problems"`
	UnparsableCount int      `json:"unparsable_count"`
	Fatal           string   `json:"fatal,omitempty"`

	// Stats is nil when no instant could be parsed; a report never presents
	// a statistic fabricated from an empty set.
	Stats   *Stats  `json:"stats,omitempty"`
	Samples Samples `json:"samples"`
}

// Stats are derived from parsable instants only.
type Stats struct {
	Newest    time.Time `json:"newest"`
	Oldest    time.Time `json:"oldest"`
	SpanHours float64   `json:"span_hours"`
}

// Samples holds a small deterministic head/tail slice of the validated items
// for human spot-checking, included regardless of pass or fail.
type Samples struct {
	First []SampleItem `json:"first"`
	Last  []SampleItem `json:"last"`
}

type SampleItem struct {
	Position int        `json:"position"`
	Title    string     `json:"title"`
	AgeText  string     `json:"age_text"`
	TimeHint string     `json:"time_hint,omitempty"`
	Instant  *time.Time `json:"instant,omitempty"`
}
