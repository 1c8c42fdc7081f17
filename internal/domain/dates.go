package domain

import (
	"regexp"
	"strings"
	"time"

	"taskboard/internal/errors"
)

// CanonicalDateLayout is the calendar-date form used on the wire and in edit forms.
const CanonicalDateLayout = "2006-01-02"

// DisplayDateLayout is the human readable form, e.g. "Mar 15, 2024".
const DisplayDateLayout = "Jan 2, 2006"

// acceptedLayouts are tried in order when canonicalizing user or wire input.
var acceptedLayouts = []string{
	CanonicalDateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	DisplayDateLayout,
	"January 2, 2006",
	"2 Jan 2006",
}

// CanonicalDate converts a date string in any accepted layout to YYYY-MM-DD.
// Time of day is discarded. A blank input yields "" and no error.
func CanonicalDate(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", nil
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(CanonicalDateLayout), nil
		}
	}
	return "", errors.NewDateParseError(input, nil)
}

// wireDatePattern finds a YYYY-MM-DD run anywhere in a stored value
var wireDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// DateFromWire extracts the calendar date from a stored value that may carry a
// time component or wrapping separators. It returns "" when nothing usable is found.
func DateFromWire(raw string) string {
	s := strings.Trim(raw, " \t\r\n\"'")
	if s == "" {
		return ""
	}
	if m := wireDatePattern.FindString(s); m != "" {
		if _, err := time.Parse(CanonicalDateLayout, m); err == nil {
			return m
		}
	}
	canonical, err := CanonicalDate(s)
	if err != nil {
		return ""
	}
	return canonical
}

// IsValidDate reports whether s parses in any accepted layout.
func IsValidDate(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	_, err := CanonicalDate(s)
	return err == nil
}

// FormatDateForDisplay renders a date as "Mar 15, 2024". Unparseable input yields "".
func FormatDateForDisplay(s string) string {
	canonical, err := CanonicalDate(s)
	if err != nil || canonical == "" {
		return ""
	}
	t, _ := time.Parse(CanonicalDateLayout, canonical)
	return t.Format(DisplayDateLayout)
}

// IsOverdue reports whether dueDate is a calendar date strictly before the
// calendar date of now. An absent or unparseable date is never overdue.
func IsOverdue(dueDate string, now time.Time) bool {
	canonical, err := CanonicalDate(dueDate)
	if err != nil || canonical == "" {
		return false
	}
	due, err := time.ParseInLocation(CanonicalDateLayout, canonical, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return due.Before(today)
}
