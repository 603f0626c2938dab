package testfixtures

import (
	"time"

	"github.com/example/roomtimes/internal/schedule"
)

// EventAt builds an event whose start and end are offsets relative to the
// supplied instant, rendered as "HH:MM:SS" wall-clock strings. Offsets are
// minutes: EventAt(now, "Lecture", -70, -20) ended twenty minutes ago.
func EventAt(reference time.Time, name string, startMinutes, endMinutes int) schedule.Event {
	return schedule.Event{
		Name:      name,
		StartTime: TimeOfDayAt(reference, startMinutes),
		EndTime:   TimeOfDayAt(reference, endMinutes),
	}
}

// TimeOfDayAt renders reference + offsetMinutes as an "HH:MM:SS" string.
func TimeOfDayAt(reference time.Time, offsetMinutes int) string {
	return reference.Add(time.Duration(offsetMinutes) * time.Minute).Format("15:04:05")
}

// SequentialDay builds the canonical four-event test day used across the
// formatter suites: fifty-minute classes with ten-minute passing periods and
// one two-hour morning gap.
func SequentialDay() []schedule.Event {
	return []schedule.Event{
		{Name: "MATH 124 A", StartTime: "09:30:00", EndTime: "10:20:00"},
		{Name: "ATM S 103 A", StartTime: "12:30:00", EndTime: "13:20:00"},
		{Name: "JSIS 202 A", StartTime: "13:30:00", EndTime: "14:20:00"},
		{Name: "LING 200 A", StartTime: "14:30:00", EndTime: "15:20:00"},
	}
}

// CrossListedDay is SequentialDay with the first class cross-listed under a
// second section name: two events sharing one window, so one fewer break.
func CrossListedDay() []schedule.Event {
	day := SequentialDay()
	crossListed := []schedule.Event{
		day[0],
		{Name: "MATH 124 B", StartTime: "09:30:00", EndTime: "10:20:00"},
	}
	return append(crossListed, day[1:]...)
}
