package schedule

// Event is a single reservation occupying a contiguous time-of-day interval
// within one day. StartTime and EndTime are 24-hour "HH:MM:SS" wall-clock
// strings with no date or timezone component.
type Event struct {
	Name      string
	StartTime string
	EndTime   string
}

// Ordered reports whether the events are in non-decreasing start-time order.
//
// Every formatter in this package requires that ordering as a precondition and
// never sorts on its own; an unordered slice is a caller contract violation,
// not a detected error. The lexicographic comparison is exact for the
// fixed-width "HH:MM:SS" representation.
func Ordered(events []Event) bool {
	for i := 1; i < len(events); i++ {
		if events[i].StartTime < events[i-1].StartTime {
			return false
		}
	}
	return true
}
