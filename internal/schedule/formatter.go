// Package schedule renders an ordered day of reservation events into
// display-ready replies: the full schedule, a "what is happening now"
// classification, or the breaks between events.
package schedule

import (
	"fmt"
	"strconv"
	"time"

	"github.com/example/roomtimes/internal/command"
	"github.com/example/roomtimes/internal/timeutil"
)

// Formatter renders event lists for one room and day. The clock is injected
// so "now"-relative output is testable without touching system time; each
// formatting call samples it exactly once, keeping every comparison within
// one invocation skew-free.
type Formatter struct {
	now func() time.Time
}

// NewFormatter constructs a formatter. A nil now falls back to the system
// clock.
func NewFormatter(now func() time.Time) *Formatter {
	if now == nil {
		now = time.Now
	}
	return &Formatter{now: now}
}

func (f *Formatter) timeOfDay() string {
	return f.now().Format(timeutil.TimeLayout)
}

// Schedule renders the full event list for the query's target day, or the
// "now" classification when the query limited itself to the current moment.
// Events must be in non-decreasing start-time order (see Ordered).
func (f *Formatter) Schedule(events []Event, query command.Query) Result {
	if query.LimitNow {
		return f.scheduleNow(events, query)
	}

	result := Result{
		ResponseType: ResponseInChannel,
		Text: fmt.Sprintf("Events for %s on %s (%d events):",
			query.RoomQuery, query.TargetDateLabel, len(events)),
	}
	if len(events) == 0 {
		result.Attachments = []Attachment{{Title: "Wide open!"}}
		return result
	}
	for _, ev := range events {
		result.Attachments = append(result.Attachments, eventAttachment(ev))
	}
	return result
}

// scheduleNow classifies the sampled current time against the ordered event
// list. For each index the guards run in priority order with first-match
// wins; the scan stops once a terminal case fired, except that every
// concurrent in-progress event is emitted before returning.
func (f *Formatter) scheduleNow(events []Event, query command.Query) Result {
	result := Result{ResponseType: ResponseInChannel}

	if len(events) == 0 {
		result.Text = fmt.Sprintf("There are 0 events in %s on %s.",
			query.RoomQuery, query.TargetDateLabel)
		result.Attachments = []Attachment{{Title: "Wide open!"}}
		return result
	}

	now := f.timeOfDay()
	total := len(events)

	for i, ev := range events {
		diffStart := timeutil.MinutesBetween(now, ev.StartTime)
		diffEnd := timeutil.MinutesBetween(now, ev.EndTime)

		switch {
		case i == 0 && diffStart > 0 && diffEnd > 0:
			// The whole day is still ahead.
			result.Text = fmt.Sprintf(
				"Nothing happening yet. First event (below) starting in %d minutes. (%d overall events)",
				diffStart, total)
			result.Attachments = append(result.Attachments, eventAttachment(ev))
			return result

		case diffStart <= 0 && diffEnd > 0:
			// In progress. Keep scanning: cross-listed reservations share
			// the same window and must all be emitted.
			result.Text = fmt.Sprintf("Happening now in %s (%d overall events):",
				query.RoomQuery, total)
			result.Attachments = append(result.Attachments, eventAttachment(ev))

		case diffStart < 0 && diffEnd < 0 && i < total-1 &&
			timeutil.MinutesBetween(now, events[i+1].StartTime) > 0:
			next := events[i+1]
			result.Text = fmt.Sprintf(
				"Currently in a break between two events. Next event starts in %d minutes.",
				timeutil.MinutesBetween(now, next.StartTime))
			previous := eventAttachment(ev)
			previous.Title = "(Previous) " + ev.Name
			upcoming := eventAttachment(next)
			upcoming.Title = "(Next) " + next.Name
			result.Attachments = append(result.Attachments, previous, upcoming)
			return result

		case i == total-1 && diffEnd <= 0:
			result.Text = fmt.Sprintf("All events have passed. Last event in %s was: (%d overall events)",
				query.RoomQuery, total)
			result.Attachments = append(result.Attachments, eventAttachment(ev))
		}
	}

	return result
}

// Breaks renders the gaps between consecutive events. With AllBreaks set the
// reply lists every recorded break; otherwise only the next break whose
// leading event has not yet ended, or a "no further breaks" notice with no
// attachments at all. Events must be in non-decreasing start-time order.
func (f *Formatter) Breaks(events []Event, query command.Query) Result {
	result := Result{ResponseType: ResponseInChannel}

	var recorded []Attachment
	nextBreak := -1

	switch {
	case len(events) == 0:
		recorded = []Attachment{{Title: "Wide open!"}}
		nextBreak = 0

	case len(events) == 1:
		only := events[0]
		recorded = []Attachment{{
			Title:      "Only one booking today: " + only.Name,
			Text:       "*Start Time:* " + only.StartTime + " | *End Time:* " + only.EndTime,
			MarkdownIn: markdownText(),
		}}
		nextBreak = 0

	default:
		now := f.timeOfDay()
		// Walk adjacent pairs with a leading and a trailing cursor.
		for e, s := 0, 1; s < len(events); e, s = e+1, s+1 {
			gapMinutes := timeutil.MinutesBetween(events[e].EndTime, events[s].StartTime)
			if gapMinutes <= 0 {
				// Zero gaps (cross-listed events) and midnight-wrapped gaps
				// are silently omitted.
				continue
			}
			if nextBreak < 0 && timeutil.MinutesBetween(now, events[e].EndTime) > 0 {
				// First break whose leading event has not ended yet; once
				// set it is never overwritten.
				nextBreak = len(recorded)
			}
			recorded = append(recorded, Attachment{
				Title: "Break between " + events[e].Name + " and " + events[s].Name,
				Text: events[e].EndTime + " to " + events[s].StartTime +
					" *(" + strconv.Itoa(gapMinutes) + " mins)*",
				MarkdownIn: markdownText(),
			})
		}
	}

	if query.AllBreaks {
		result.Text = "Breaks for " + query.RoomQuery
		result.Attachments = recorded
		return result
	}

	if nextBreak >= 0 && nextBreak < len(recorded) {
		result.Text = "Next Break for " + query.RoomQuery
		result.Attachments = []Attachment{recorded[nextBreak]}
		return result
	}

	// All breaks have passed, or none existed. Attachments stay absent.
	result.Text = fmt.Sprintf("No further short breaks. Last booking in %s ends/ended at %s",
		query.RoomQuery, events[len(events)-1].EndTime)
	return result
}
