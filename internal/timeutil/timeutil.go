// Package timeutil implements the wall-clock arithmetic shared by the command
// interpreter and the schedule formatters.
//
// Every function here is best-effort: malformed inputs degrade to an empty
// string, to "today", or to a zero difference instead of returning an error.
// Callers are expected to hand in well-formed upstream values; the degradation
// rules exist so that a single bad timestamp never takes down a whole reply.
package timeutil

import (
	"math"
	"strconv"
	"time"
)

const (
	// TimeLayout is the 24-hour wall-clock representation used everywhere in
	// the engine: "HH:MM:SS".
	TimeLayout = "15:04:05"
	// DateLayout is the en-US locale date label: "MM/DD/YYYY".
	DateLayout = "01/02/2006"

	naiveLayout = "2006-01-02T15:04:05"
	offsetWidth = 6 // trailing "±HH:MM" UTC offset
)

// TimeOfDay extracts the local time-of-day from an ISO-like zoned timestamp
// such as "2018-04-18T09:30:00-07:00". The trailing UTC offset is sliced off
// and the remainder parsed as a naive local timestamp, so the wall-clock
// value is preserved exactly as the upstream service reported it.
//
// Inputs shorter than the offset suffix or otherwise unparseable yield "".
func TimeOfDay(stamp string) string {
	if len(stamp) <= offsetWidth {
		return ""
	}
	parsed, err := time.Parse(naiveLayout, stamp[:len(stamp)-offsetWidth])
	if err != nil {
		return ""
	}
	return parsed.Format(TimeLayout)
}

// DateLabel renders the locale date label for the supplied instant.
func DateLabel(t time.Time) string {
	return t.Format(DateLayout)
}

// DateLabelForOffset returns the locale date label for "reference + N days"
// when offset has the form "+<digits>". Any other value, including negative
// offsets and the empty string, silently falls back to the reference day
// itself. The fallback is intentional best-effort behaviour, not an error.
func DateLabelForOffset(reference time.Time, offset string) string {
	days, ok := ParseDayOffset(offset)
	if !ok {
		days = 0
	}
	return DateLabel(reference.AddDate(0, 0, days))
}

// ParseDayOffset reports the day count encoded in a "+<digits>" offset string
// and whether the string matched that shape at all.
func ParseDayOffset(offset string) (int, bool) {
	if len(offset) < 2 || offset[0] != '+' {
		return 0, false
	}
	for i := 1; i < len(offset); i++ {
		if offset[i] < '0' || offset[i] > '9' {
			return 0, false
		}
	}
	days, err := strconv.Atoi(offset[1:])
	if err != nil {
		return 0, false
	}
	return days, true
}

// MinutesBetween returns the signed whole-minute difference end - begin for
// two "HH:MM:SS" wall-clock strings. Both are parsed against the same
// reference date, so only the time-of-day component matters. Fractional
// minutes floor toward negative infinity: a boundary crossed thirty seconds
// ago already counts as passed.
//
// Times never wrap across midnight. When end is numerically earlier than
// begin the result is negative even if a real-world gap spans the day
// boundary; downstream logic reads that as "no gap" / "already past".
func MinutesBetween(begin, end string) int {
	b, err := time.Parse(TimeLayout, begin)
	if err != nil {
		return 0
	}
	e, err := time.Parse(TimeLayout, end)
	if err != nil {
		return 0
	}
	return int(math.Floor(e.Sub(b).Minutes()))
}
