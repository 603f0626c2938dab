package schedule

// Response types understood by the delivery channel.
const (
	ResponseInChannel = "in_channel"
	ResponseEphemeral = "ephemeral"
)

// Attachment is one display item of a formatted reply: a title plus optional
// detail text. MarkdownIn lists the fields the channel should render as
// markdown; detail strings here use it for the bold time labels.
type Attachment struct {
	Title      string   `json:"title"`
	Text       string   `json:"text,omitempty"`
	MarkdownIn []string `json:"mrkdwn_in,omitempty"`
}

// Result is the universal output shape of both formatters and the error
// paths, so a single delivery routine can post any outcome.
//
// Attachments may be nil for the "no further breaks" outcome; absence is a
// distinct, observable state and is serialized as a missing field rather than
// an empty list.
type Result struct {
	ResponseType string       `json:"response_type"`
	Text         string       `json:"text"`
	Attachments  []Attachment `json:"attachments,omitempty"`
}

func markdownText() []string {
	return []string{"text"}
}

func eventAttachment(ev Event) Attachment {
	return Attachment{
		Title:      ev.Name,
		Text:       "*Start Time:* " + ev.StartTime + " | *End Time:* " + ev.EndTime,
		MarkdownIn: markdownText(),
	}
}
