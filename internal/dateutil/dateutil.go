// Package dateutil parses free-form date strings and renders them for display.
package dateutil

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DisplayLayout renders dates as "Month DD, YYYY".
const DisplayLayout = "January 02, 2006"

// now resolves relative expressions such as "yesterday".
var now = time.Now

// monthLayouts cover month-year phrasings dateparse rejects. Month names
// match case-insensitively.
var monthLayouts = []string{
	"January 2006",
	"Jan 2006",
	"January, 2006",
	"Jan, 2006",
	"Jan. 2006",
	"2006 January",
}

var (
	agoPattern    = regexp.MustCompile(`^(\d+|a|an|one) (day|week|month|year)s? ago$`)
	seasonPattern = regexp.MustCompile(`^(?:(last|this|past) )?(spring|summer|fall|autumn|winter)(?: (?:of )?(\d{4}))?$`)
)

var seasonStart = map[string]time.Month{
	"spring": time.March,
	"summer": time.June,
	"fall":   time.September,
	"autumn": time.September,
	"winter": time.December,
}

// Parse parses a free-form date or date-time string. Besides absolute
// formats it understands month-year ("July 2019"), seasons ("last summer",
// "summer 2018") and relative days ("yesterday", "3 days ago").
func Parse(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	if t, err := dateparse.ParseAny(text); err == nil {
		return t, true
	}
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return parseRelative(strings.ToLower(strings.Join(strings.Fields(text), " ")))
}

func parseRelative(text string) (time.Time, bool) {
	n := now()
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())

	switch text {
	case "today", "tonight", "this morning", "this evening", "now":
		return today, true
	case "yesterday", "last night":
		return today.AddDate(0, 0, -1), true
	case "tomorrow":
		return today.AddDate(0, 0, 1), true
	case "last week":
		return today.AddDate(0, 0, -7), true
	case "last month":
		return today.AddDate(0, -1, 0), true
	case "last year":
		return today.AddDate(-1, 0, 0), true
	case "this week":
		return today, true
	case "this month":
		return time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, n.Location()), true
	case "this year":
		return time.Date(n.Year(), time.January, 1, 0, 0, 0, 0, n.Location()), true
	}

	if m := agoPattern.FindStringSubmatch(text); m != nil {
		count := 1
		if c, err := strconv.Atoi(m[1]); err == nil {
			count = c
		}
		switch m[2] {
		case "day":
			return today.AddDate(0, 0, -count), true
		case "week":
			return today.AddDate(0, 0, -7*count), true
		case "month":
			return today.AddDate(0, -count, 0), true
		default:
			return today.AddDate(-count, 0, 0), true
		}
	}

	if m := seasonPattern.FindStringSubmatch(text); m != nil {
		return season(today, m[1], m[2], m[3])
	}
	return time.Time{}, false
}

// season returns the first day of the named season. "last" picks the latest
// season start that lies before the ongoing season.
func season(today time.Time, qualifier, name, year string) (time.Time, bool) {
	month := seasonStart[name]
	if year != "" {
		if qualifier != "" {
			return time.Time{}, false
		}
		y, err := strconv.Atoi(year)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(y, month, 1, 0, 0, 0, 0, today.Location()), true
	}

	start := time.Date(today.Year(), month, 1, 0, 0, 0, 0, today.Location())
	if start.After(today) {
		start = start.AddDate(-1, 0, 0)
	}
	if qualifier == "last" || qualifier == "past" {
		if today.Before(start.AddDate(0, 3, 0)) {
			start = start.AddDate(-1, 0, 0)
		}
	}
	return start, true
}

// IsDate reports whether text parses as a date.
func IsDate(text string) bool {
	_, ok := Parse(text)
	return ok
}

func Format(t time.Time) string {
	return t.Format(DisplayLayout)
}

// Beautify rewrites a date string into DisplayLayout. It reports false when
// text is not a date.
func Beautify(text string) (string, bool) {
	t, ok := Parse(text)
	if !ok {
		return "", false
	}
	return Format(t), true
}

// BeautifyFirst beautifies the first candidate that parses as a date.
// It returns the empty string when none does.
func BeautifyFirst(candidates ...string) string {
	for _, c := range candidates {
		if s, ok := Beautify(c); ok {
			return s
		}
	}
	return ""
}
