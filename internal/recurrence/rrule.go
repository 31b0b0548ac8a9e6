package recurrence

import (
	"fmt"
	"strings"
)

type Freq int

const (
	Weekly Freq = iota
	Monthly
)

var freqNames = map[Freq]string{
	Weekly:  "WEEKLY",
	Monthly: "MONTHLY",
}

// Rule describes how often a calendar event repeats.
type Rule struct {
	Freq     Freq
	Interval int // default 1; 2 = biweekly when Freq=Weekly
}

// FromKind maps a request-level recurrence kind to a Rule. Unrecognized
// kinds report ok=false, which callers treat as non-recurring.
func FromKind(kind string) (Rule, bool) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "weekly":
		return Rule{Freq: Weekly, Interval: 1}, true
	case "biweekly":
		return Rule{Freq: Weekly, Interval: 2}, true
	case "monthly":
		return Rule{Freq: Monthly, Interval: 1}, true
	}
	return Rule{}, false
}

// String serializes the rule as RRULE property text, e.g.
// "FREQ=WEEKLY;INTERVAL=2".
func (r Rule) String() string {
	s := "FREQ=" + freqNames[r.Freq]
	if r.Interval > 1 {
		s += fmt.Sprintf(";INTERVAL=%d", r.Interval)
	}
	return s
}

// Describe returns a human-readable description of the rule for message
// bodies.
func (r Rule) Describe() string {
	switch r.Freq {
	case Weekly:
		if r.Interval == 2 {
			return "Repeats every 2 weeks"
		}
		if r.Interval > 2 {
			return fmt.Sprintf("Repeats every %d weeks", r.Interval)
		}
		return "Repeats weekly"
	case Monthly:
		if r.Interval > 1 {
			return fmt.Sprintf("Repeats every %d months", r.Interval)
		}
		return "Repeats monthly"
	}
	return ""
}
