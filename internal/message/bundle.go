package message

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ParseIndex parses an area index response: whitespace-separated msgid
// tokens. Empty tokens are dropped; order is preserved.
func ParseIndex(text string) []string {
	return strings.Fields(text)
}

// ParseBundle parses the batched u/m response: one msgid:base64(body)
// pair per whitespace-separated token. Token order is preserved.
func ParseBundle(text string) ([]Message, error) {
	tokens := strings.Fields(text)
	msgs := make([]Message, 0, len(tokens))
	for _, token := range tokens {
		msgid, encoded, ok := strings.Cut(token, ":")
		if !ok {
			return nil, fmt.Errorf("bundle token %q: missing ':' separator", token)
		}
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("bundle message %s: bad base64: %w", msgid, err)
		}
		msg, err := FromRawText(msgid, string(raw))
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}
