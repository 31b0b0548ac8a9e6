// Package invite builds the iCalendar artifact attached to chore reminder
// emails.
package invite

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"chorechart/internal/model"
	"chorechart/internal/recurrence"
)

const dtLayout = "20060102T150405Z"

// Event is a single VEVENT. Rule, when non-nil, makes the event recurring.
type Event struct {
	UID         string
	Start       time.Time
	Summary     string
	Description string
	Rule        *recurrence.Rule
}

// NewChoreEvent builds the calendar event for a chore occurrence. The
// description carries the chore's title and point value, plus its free-text
// description when present.
func NewChoreEvent(chore *model.Chore, start time.Time, rule *recurrence.Rule) Event {
	desc := fmt.Sprintf("Complete chore: %s. Points: %d", chore.Title, chore.Points)
	if chore.Description != "" {
		desc += "\n\nDescription: " + chore.Description
	}

	return Event{
		UID:         uuid.NewString() + "@chorechart",
		Start:       start,
		Summary:     "Chore: " + chore.Title,
		Description: desc,
		Rule:        rule,
	}
}

// Serialize renders the event as a complete VCALENDAR document with CRLF
// line endings.
//
// The recurrence rule is injected into the serialized text immediately
// before END:VEVENT rather than emitted as a structured field; the format is
// line-oriented and this keeps the recurrence handling in one place.
func (e Event) Serialize(now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Chore Chart//chorechart//EN",
		"BEGIN:VEVENT",
		"UID:" + e.UID,
		"DTSTAMP:" + now.UTC().Format(dtLayout),
		"DTSTART:" + e.Start.UTC().Format(dtLayout),
		"SUMMARY:" + escapeText(e.Summary),
		"DESCRIPTION:" + escapeText(e.Description),
		"END:VEVENT",
		"END:VCALENDAR",
	}
	ics := strings.Join(lines, "\r\n") + "\r\n"

	if e.Rule != nil {
		ics = injectRule(ics, *e.Rule)
	}
	return ics
}

func injectRule(ics string, rule recurrence.Rule) string {
	return strings.Replace(ics, "END:VEVENT", "RRULE:"+rule.String()+"\r\nEND:VEVENT", 1)
}

// escapeText escapes property text per RFC 5545: backslash, semicolon,
// comma, and newline.
func escapeText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\r\n", `\n`,
		"\n", `\n`,
	)
	return r.Replace(s)
}

// ParseStart parses the request's scheduled timestamp. Accepts RFC 3339 and
// the bare ISO forms browsers emit for datetime-local inputs.
func ParseStart(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q", s)
}
