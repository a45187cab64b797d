package database

import (
	"time"
)

type Run struct {
	ID              int64
	SourceURL       string
	SourceKind      string
	Target          int
	Collected       int
	PagesVisited    int
	StopCause       string
	Passed          bool
	UnparsableCount int
	Fatal           string
	StartedAt       time.Time
	FinishedAt      time.Time
	CreatedAt       time.Time
}

type RunRepository interface {
	SaveRun(run Run, problems []string) (int64, error)
	GetRun(id int64) (*Run, error)
	GetRecentRuns(limit int) ([]Run, error)
	GetRunProblems(runID int64) ([]string, error)
	GetRunCount() (int, error)
}
