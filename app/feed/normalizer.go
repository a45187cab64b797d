package feed

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var relativeAgePattern = regexp.MustCompile(`^(\d+)\s+(\w+)`)

// Supported relative units, matched by prefix so singular and plural forms
// both resolve. Coarser units (weeks, months, years) are deliberately
// refused rather than approximated: an approximated instant would poison
// ordering comparisons with false confidence.
var unitSeconds = []struct {
	prefix  string
	seconds int64
}{
	{"second", 1},
	{"minute", 60},
	{"hour", 3600},
	{"day", 86400},
}

// Normalizer reconciles an item's dual-format age information into a single
// comparable Instant. Pure and total: it never errors, it answers Unparsable.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Run resolves one item against the shared batch reference time. The
// absolute time hint is authoritative and always wins over the relative
// text, because it encodes full precision.
func (n *Normalizer) Run(item RawItem, now time.Time) Instant {
	if t, ok := n.parseHint(item.TimeHint); ok {
		return ParsedInstant(t)
	}
	return n.parseRelative(item.AgeText, now)
}

func (n *Normalizer) parseHint(hint string) (time.Time, bool) {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return time.Time{}, false
	}

	if t, err := dateparse.ParseAny(hint); err == nil {
		return t, true
	}

	// Some listings append an epoch token after the ISO timestamp
	// ("2024-01-08T10:15:30 1704711330"); retry on the first field alone.
	if fields := strings.Fields(hint); len(fields) > 1 {
		if t, err := dateparse.ParseAny(fields[0]); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func (n *Normalizer) parseRelative(ageText string, now time.Time) Instant {
	match := relativeAgePattern.FindStringSubmatch(strings.TrimSpace(ageText))
	if match == nil {
		return Unparsable()
	}

	value, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return Unparsable()
	}

	unit := strings.ToLower(match[2])
	for _, u := range unitSeconds {
		if strings.HasPrefix(unit, u.prefix) {
			return ParsedInstant(now.Add(-time.Duration(value*u.seconds) * time.Second))
		}
	}

	return Unparsable()
}
