package command

import (
	"strings"
	"time"

	"github.com/example/roomtimes/internal/timeutil"
)

// RoomResolver maps a "BUILDING ROOM" display name to an upstream space
// identifier. Implementations must match case-insensitively and exactly; no
// fuzzy matching.
type RoomResolver interface {
	Resolve(roomQuery string) (string, bool)
}

// Interpreter tokenizes raw query text and assembles a Query from it.
type Interpreter struct {
	rooms RoomResolver
	now   func() time.Time
}

// NewInterpreter constructs an interpreter over the provided room directory.
// A nil now falls back to the system clock.
func NewInterpreter(rooms RoomResolver, now func() time.Time) *Interpreter {
	if now == nil {
		now = time.Now
	}
	return &Interpreter{rooms: rooms, now: now}
}

// Interpret parses one raw query string into a fully-formed Query. It never
// fails: unusable input lands in ModeHelp or ModeError with the catalog text
// to surface, so no invalid state escapes this layer.
func (i *Interpreter) Interpret(rawText string) Query {
	tokens := strings.Fields(strings.ToUpper(strings.TrimSpace(rawText)))

	query := Query{
		Tokens:    tokens,
		AllBreaks: true,
	}

	if len(tokens) == 1 && tokens[0] == "HELP" {
		query.Mode = ModeHelp
		query.ModeText = messageText(msgHelp)
		return query
	}
	if len(tokens) < 2 {
		query.Mode = ModeError
		query.ModeText = messageText(msgGenericError)
		return query
	}

	now := i.now()
	query.RoomQuery = tokens[0] + " " + tokens[1]
	query.Mode = ModeSchedule
	query.TargetDateLabel = timeutil.DateLabel(now)

	roomID, ok := i.resolveRoom(query.RoomQuery)
	if !ok {
		// Resolution failure takes priority over any further qualifier
		// parsing.
		query.Mode = ModeError
		query.ModeText = messageText(msgRoomQueryError)
		return query
	}
	query.RoomID = roomID

	// A trailing token shorter than two characters is treated as absent.
	if len(tokens) > 2 && len(tokens[2]) >= 2 {
		i.applyQualifier(&query, tokens, now)
	}

	return query
}

func (i *Interpreter) resolveRoom(roomQuery string) (string, bool) {
	if i.rooms == nil {
		return "", false
	}
	return i.rooms.Resolve(roomQuery)
}

// applyQualifier interprets the third token. The guards run in a fixed
// priority order with first-match-wins semantics; the ordering must be kept
// stable as qualifiers are added.
func (i *Interpreter) applyQualifier(query *Query, tokens []string, now time.Time) {
	qualifier := tokens[2]

	_, isOffset := timeutil.ParseDayOffset(qualifier)

	switch {
	case qualifier == "NOW":
		query.LimitNow = true

	case qualifier == "TOMORROW":
		query.DayOffset = "+1"
		query.TargetDateLabel = timeutil.DateLabelForOffset(now, query.DayOffset)

	case isOffset:
		query.DayOffset = qualifier
		query.TargetDateLabel = timeutil.DateLabelForOffset(now, qualifier)

	case qualifier == "BREAKS" || qualifier == "NEXT":
		query.Mode = ModeBreaks
		if qualifier == "NEXT" && len(tokens) >= 4 && tokens[3] == "BREAK" {
			query.AllBreaks = false
		}

	default:
		query.Mode = ModeError
		query.ModeText = messageText(msgExtendedCommand)
	}
}
