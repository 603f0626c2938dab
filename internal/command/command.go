// Package command turns raw slash-command text into a structured Query that
// tells the rest of the engine which room, day, and presentation the caller
// asked for.
package command

// Mode identifies how a query should be answered.
type Mode string

const (
	// ModeHelp carries the static usage text back to the caller.
	ModeHelp Mode = "HELP"
	// ModeError carries a static error text back to the caller.
	ModeError Mode = "ERROR"
	// ModeSchedule requests the room's event list for the target day.
	ModeSchedule Mode = "SCHEDULE"
	// ModeBreaks requests the gaps between the room's events.
	ModeBreaks Mode = "BREAKS"
)

// Query is the structured interpretation of one raw query string. It is
// constructed once per incoming text, immutable thereafter, and consumed by
// the formatter matching Mode.
type Query struct {
	// Tokens holds the uppercase whitespace-delimited words of the raw input.
	Tokens []string
	// Mode is always set.
	Mode Mode
	// ModeText is present only for ModeHelp and ModeError; it is surfaced
	// verbatim to the caller.
	ModeText string
	// RoomQuery is the "BUILDING ROOM" string built from the first two
	// tokens, or empty when fewer than two tokens were supplied.
	RoomQuery string
	// RoomID is the upstream space identifier resolved from RoomQuery, or
	// empty when unresolved.
	RoomID string
	// TargetDateLabel is the locale date label of the day being queried.
	TargetDateLabel string
	// DayOffset is the "+N" day-delta string, empty for "today". It is passed
	// verbatim to the reservation source.
	DayOffset string
	// AllBreaks is true unless the query asked for only the next break.
	AllBreaks bool
	// LimitNow is true only for the "now" qualifier.
	LimitNow bool
}
