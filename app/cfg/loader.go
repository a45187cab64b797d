package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Audit target
	URL         string `long:"url" env:"AUDIT_URL" default:"https://news.ycombinator.com/newest" description:"Listing or feed URL to audit"`
	Source      string `long:"source" env:"AUDIT_SOURCE" default:"html" choice:"html" choice:"rss" description:"Source kind: paginated HTML listing or RSS/Atom feed"`
	ProfilePath string `long:"profile" env:"AUDIT_PROFILE" description:"Path to a YAML site profile (defaults to the built-in Hacker News profile)"`
	Target      int    `long:"target" env:"AUDIT_TARGET" default:"100" description:"Number of items to collect and validate"`
	MaxPages    int    `long:"max-pages" env:"AUDIT_MAX_PAGES" default:"20" description:"Safety bound on pages visited per run"`

	// Network behavior
	Timeout int `long:"timeout" env:"AUDIT_TIMEOUT" default:"30" description:"Per-page load timeout in seconds"`

	// Output
	Output string `long:"output" env:"AUDIT_OUTPUT" default:"./audit-report.json" description:"Path for the JSON report"`
	DBPath string `long:"db-path" env:"AUDIT_DB_PATH" default:"./feed-audit.db" description:"SQLite file for audit run history (empty disables persistence)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Feed Audit/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		URL:         raw.URL,
		Source:      raw.Source,
		ProfilePath: raw.ProfilePath,
		Target:      raw.Target,
		MaxPages:    raw.MaxPages,
		Timeout:     raw.Timeout,
		Output:      raw.Output,
		DBPath:      raw.DBPath,
		UserAgent:   raw.UserAgent,
		Timezone:    raw.Timezone,
		Debug:       raw.Debug,
		Version:     GetVersion(),
	}

	if cfg.Target <= 0 {
		return nil, fmt.Errorf("target must be positive, got %d", cfg.Target)
	}
	if cfg.MaxPages <= 0 {
		return nil, fmt.Errorf("max-pages must be positive, got %d", cfg.MaxPages)
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
