package command

// messageKey identifies an entry of the static help/error text catalog.
type messageKey string

const (
	msgHelp            messageKey = "HELP"
	msgGenericError    messageKey = "ERROR-GENERIC"
	msgRoomQueryError  messageKey = "ERROR-ROOM-QUERY"
	msgExtendedCommand messageKey = "ERROR-EXTENDED-COMMAND"
)

// messages holds the static blobs returned verbatim for help and error
// outcomes. They are data, not logic: editing a message never changes how a
// query is interpreted.
var messages = map[messageKey]string{
	msgHelp: "Look up what's scheduled in a campus room.\n" +
		"Usage: `BUILDING ROOM [qualifier]`\n" +
		"• `KNE 130` — today's full schedule\n" +
		"• `KNE 130 now` — what's happening right now\n" +
		"• `KNE 130 tomorrow` — tomorrow's schedule\n" +
		"• `KNE 130 +2` — the schedule two days out\n" +
		"• `KNE 130 breaks` — every gap between today's events\n" +
		"• `KNE 130 next break` — only the next free window\n",
	msgGenericError: "Error: search too short - queries need a building and a room, " +
		"like \"KNE 130\". Send \"help\" for usage.\n",
	msgRoomQueryError: "Error: incorrect search parameter - did you search for " +
		"something like \"KNE 130\"?",
	msgExtendedCommand: "Error: unrecognized qualifier - try \"now\", \"breaks\", " +
		"\"next break\", \"tomorrow\", or \"+N\" for a day offset.\n",
}

func messageText(key messageKey) string {
	return messages[key]
}
