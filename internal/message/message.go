package message

import (
	"fmt"
	"strconv"
	"strings"
)

// Message is a single echomail message as served by an uplink.
// Values are never modified after construction.
type Message struct {
	MsgID    string
	Tags     string
	Echoarea string
	Date     int64
	From     string
	Address  string
	To       string
	Subject  string
	Body     string
}

// FromRawText builds a Message from the raw text body served by the
// m/<msgid> scheme. The body itself carries no msgid, so the caller
// supplies the id it requested. The text must have at least 9 lines:
// tags, echoarea, date, from, address, to, subject, a blank separator,
// and the message body.
func FromRawText(msgid, text string) (Message, error) {
	lines := strings.Split(text, "\n")
	if len(lines) < 9 {
		return Message{}, fmt.Errorf("message %s: short body: %d lines", msgid, len(lines))
	}

	date, err := strconv.ParseInt(lines[2], 10, 64)
	if err != nil {
		return Message{}, fmt.Errorf("message %s: bad date field %q: %w", msgid, lines[2], err)
	}

	return Message{
		MsgID:    msgid,
		Tags:     lines[0],
		Echoarea: lines[1],
		Date:     date,
		From:     lines[3],
		Address:  lines[4],
		To:       lines[5],
		Subject:  lines[6],
		Body:     strings.Join(lines[8:], "\n"),
	}, nil
}

// ComposePoint builds the raw text a point submits through the u/point
// scheme: echoarea, addressee and subject lines, a blank separator, an
// optional @repto reference, then the body.
func ComposePoint(echoarea, to, subject, repto, body string) string {
	var b strings.Builder
	b.WriteString(echoarea)
	b.WriteByte('\n')
	b.WriteString(to)
	b.WriteByte('\n')
	b.WriteString(subject)
	b.WriteString("\n\n")
	if repto != "" {
		b.WriteString("@repto:")
		b.WriteString(repto)
		b.WriteByte('\n')
	}
	b.WriteString(body)
	return b.String()
}
