package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/feedaudit/feed-audit/app/audit"
	"github.com/feedaudit/feed-audit/app/browse"
	"github.com/feedaudit/feed-audit/app/cfg"
	"github.com/feedaudit/feed-audit/app/database"
	"github.com/feedaudit/feed-audit/app/feed"
	"github.com/feedaudit/feed-audit/app/report"
)

const (
	exitPassed = 0
	exitFailed = 1
	exitFatal  = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitFatal
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return exitPassed
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting feed audit",
		"version", appCfg.Version,
		"url", appCfg.URL,
		"source", appCfg.Source,
		"target", appCfg.Target,
		"max_pages", appCfg.MaxPages)

	source, err := buildSource(appCfg)
	if err != nil {
		slog.Error("Failed to build page source", "error", err)
		return exitFatal
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline := audit.NewPipeline(source, appCfg.URL, appCfg.MaxPages)
	rep, runErr := pipeline.Run(ctx, appCfg.Target)

	// The report is written even when the run failed fatally; diagnostics
	// must survive the failure.
	if err := report.Write(rep, appCfg.Output); err != nil {
		slog.Error("Failed to write report", "path", appCfg.Output, "error", err)
	} else {
		slog.Info("Report written", "path", appCfg.Output)
	}

	persistRun(appCfg, rep)

	switch {
	case runErr != nil:
		return exitFatal
	case !rep.Passed:
		slog.Warn("Audit failed validation", "problems", len(rep.Problems))
		return exitFailed
	default:
		slog.Info("Audit passed")
		return exitPassed
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func buildSource(appCfg *cfg.Cfg) (feed.PageSource, error) {
	httpClient := &http.Client{
		Timeout: time.Duration(appCfg.Timeout) * time.Second,
	}

	switch appCfg.Source {
	case "rss":
		return browse.NewRSSSource(httpClient, appCfg.URL, appCfg.UserAgent,
			time.Duration(appCfg.Timeout)*time.Second), nil
	case "html":
		profile := browse.DefaultProfile()
		if appCfg.ProfilePath != "" {
			loaded, err := browse.LoadProfile(appCfg.ProfilePath)
			if err != nil {
				return nil, fmt.Errorf("failed to load site profile: %w", err)
			}
			profile = loaded
			slog.Info("Loaded site profile", "path", appCfg.ProfilePath, "name", profile.Name)
		}
		return browse.NewHTMLSource(httpClient, profile, appCfg.URL, appCfg.UserAgent,
			time.Duration(appCfg.Timeout)*time.Second), nil
	default:
		return nil, fmt.Errorf("unknown source kind: %s", appCfg.Source)
	}
}

// persistRun records the run in the history database. Persistence failures
// are logged and swallowed: they must not change the audit outcome.
func persistRun(appCfg *cfg.Cfg, rep *report.Report) {
	if appCfg.DBPath == "" {
		slog.Debug("Run persistence disabled")
		return
	}

	db, err := database.Open(appCfg.DBPath)
	if err != nil {
		slog.Warn("Failed to open history database, skipping persistence", "path", appCfg.DBPath, "error", err)
		return
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Warn("Failed to migrate history database, skipping persistence", "error", err)
		return
	}
	slog.Debug("History database ready", "migration_version", version, "dirty", dirty)

	runRepo := database.NewRunRepository(db)
	runID, err := runRepo.SaveRun(database.Run{
		SourceURL:       rep.SourceURL,
		SourceKind:      appCfg.Source,
		Target:          rep.Target,
		Collected:       rep.Collected,
		PagesVisited:    rep.PagesVisited,
		StopCause:       rep.StopCause,
		Passed:          rep.Passed,
		UnparsableCount: rep.UnparsableCount,
		Fatal:           rep.Fatal,
		StartedAt:       rep.StartedAt,
		FinishedAt:      rep.FinishedAt,
	}, rep.Problems)
	if err != nil {
		slog.Warn("Failed to persist run", "error", err)
		return
	}

	slog.Info("Run persisted", "run_id", runID, "db", appCfg.DBPath)
}
