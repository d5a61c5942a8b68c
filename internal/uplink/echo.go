package uplink

import (
	"context"
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/pktpoint/idec/internal/echoarea"
	"github.com/pktpoint/idec/internal/message"
)

// AreaList fetches the public echoarea catalog (list.txt scheme):
// name, message count and description per area.
func (u *Uplink) AreaList(ctx context.Context) ([]echoarea.ListItem, error) {
	body, err := u.get(ctx, "list.txt")
	if err != nil {
		return nil, err
	}
	return echoarea.ParseList(string(body))
}

// Blacklist fetches the blacklisted msgids (blacklist.txt scheme).
func (u *Uplink) Blacklist(ctx context.Context) (map[string]bool, error) {
	body, err := u.get(ctx, "blacklist.txt")
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool)
	for _, msgid := range strings.Fields(string(body)) {
		set[msgid] = true
	}
	return set, nil
}

// AreaIndex fetches the msgid index of a single echoarea (e scheme).
func (u *Uplink) AreaIndex(ctx context.Context, area string) ([]string, error) {
	if !echoarea.IsValidName(area) {
		return nil, &echoarea.NameError{Name: area}
	}
	body, err := u.get(ctx, "e", area)
	if err != nil {
		return nil, err
	}
	return message.ParseIndex(string(body)), nil
}

// Message fetches one message by msgid (m scheme). The response body
// carries no msgid, so the requested id is stamped onto the result.
func (u *Uplink) Message(ctx context.Context, msgid string) (message.Message, error) {
	if !message.IsValidID(msgid) {
		return message.Message{}, &message.IDError{ID: msgid}
	}
	body, err := u.get(ctx, "m", msgid)
	if err != nil {
		return message.Message{}, err
	}
	return message.FromRawText(msgid, string(body))
}

// MergedIndex fetches the merged msgid index across several echoareas
// (u/e scheme). When both start and end are non-zero a start:end slice
// segment is appended; a negative start is a tail-relative offset. The
// caller-supplied area order determines the request URL.
func (u *Uplink) MergedIndex(ctx context.Context, areas []string, start, end int) ([]string, error) {
	if err := echoarea.ValidateNames(areas); err != nil {
		return nil, err
	}
	segments := append([]string{"u/e"}, areas...)
	if start != 0 && end != 0 {
		segments = append(segments, sliceSegment(start, end))
	}
	body, err := u.get(ctx, segments...)
	if err != nil {
		return nil, err
	}
	return message.ParseIndex(string(body)), nil
}

// Messages fetches several messages in one round trip (u/m scheme).
// The response pairs each msgid with a base64-encoded body; results
// preserve response order.
func (u *Uplink) Messages(ctx context.Context, msgids []string) ([]message.Message, error) {
	if err := message.ValidateIDs(msgids); err != nil {
		return nil, err
	}
	body, err := u.get(ctx, append([]string{"u/m"}, msgids...)...)
	if err != nil {
		return nil, err
	}
	return message.ParseBundle(string(body))
}

// PostMessage submits a point message (u/point scheme). text is the
// raw message with header lines, as built by message.ComposePoint.
// The client's auth string is sent as the pauth field. Returns the
// uplink's plain text acknowledgement.
func (u *Uplink) PostMessage(ctx context.Context, text string) (string, error) {
	form := url.Values{
		"pauth": {u.authstr},
		"tmsg":  {base64.StdEncoding.EncodeToString([]byte(text))},
	}
	body, err := u.postForm(ctx, "u/point", form)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// PushBundle pushes a message bundle to the uplink in node-to-node
// mode (u/push scheme). bundle holds msgid:base64 lines; the client's
// auth string is sent as the nauth field.
func (u *Uplink) PushBundle(ctx context.Context, area string, bundle []string) (string, error) {
	form := url.Values{
		"nauth":    {u.authstr},
		"echoarea": {area},
		"upush":    {strings.Join(bundle, "\n")},
	}
	body, err := u.postForm(ctx, "u/push", form)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Counts fetches per-area message counts (x/c scheme).
func (u *Uplink) Counts(ctx context.Context, areas []string) (echoarea.Counts, error) {
	body, err := u.get(ctx, append([]string{"x/c"}, areas...)...)
	if err != nil {
		return nil, err
	}
	return echoarea.ParseCounts(string(body))
}

// Features fetches the uplink's supported feature flags (x/features
// scheme), one per line, in response order.
func (u *Uplink) Features(ctx context.Context) ([]string, error) {
	body, err := u.get(ctx, "x/features")
	if err != nil {
		return nil, err
	}
	var features []string
	for _, line := range strings.Split(strings.TrimSpace(string(body)), "\n") {
		if line != "" {
			features = append(features, line)
		}
	}
	return features, nil
}
