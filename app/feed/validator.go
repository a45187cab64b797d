package feed

import (
	"cmp"
	"fmt"
)

// Validator checks a normalized sequence for unparsable entries and
// newest-first ordering violations. Findings are data-quality outcomes, not
// errors: they fail the audit but never abort it.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Run executes both checks unconditionally and concatenates their findings.
// Neither check short-circuits the other.
func (v *Validator) Run(items []NormalizedItem) ValidationOutcome {
	problems := v.checkParseability(items)
	problems = append(problems, v.checkOrdering(items)...)

	return ValidationOutcome{
		Passed:   len(problems) == 0,
		Problems: problems,
	}
}

// checkParseability reports every item whose time could not be determined.
// It never stops early; all such items are worth naming.
func (v *Validator) checkParseability(items []NormalizedItem) []string {
	var problems []string
	for _, item := range items {
		if item.Instant.Parsed {
			continue
		}
		problems = append(problems, fmt.Sprintf(
			"item %d (%q): could not determine time from age text %q (absolute hint: %s)",
			item.Position, item.Title, item.AgeText, cmp.Or(item.TimeHint, "none")))
	}
	return problems
}

// checkOrdering walks adjacent parsable pairs and asserts non-increasing
// instants; equal instants are allowed since two items can share a relative
// bucket. Only the first violation is reported: one concrete counterexample
// is sufficient evidence. Pairs with an unparsable side are skipped, they
// are already covered by the parseability check.
func (v *Validator) checkOrdering(items []NormalizedItem) []string {
	for i := 1; i < len(items); i++ {
		prev, cur := items[i-1], items[i]
		if !prev.Instant.Parsed || !cur.Instant.Parsed {
			continue
		}
		if cur.Instant.Time.After(prev.Instant.Time) {
			return []string{fmt.Sprintf(
				"item %d (%q, age %q) appears before newer item %d (%q, age %q): listing is not sorted newest-first",
				prev.Position, prev.Title, prev.AgeText,
				cur.Position, cur.Title, cur.AgeText)}
		}
	}
	return nil
}
