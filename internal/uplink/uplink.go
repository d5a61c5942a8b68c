package uplink

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Uplink is a client for one IDEC/ii uplink. The configuration is
// fixed at construction; every method performs exactly one blocking
// HTTP round trip against the uplink and parses the response. The
// client holds no per-call state, so concurrent use is as safe as the
// underlying *http.Client.
type Uplink struct {
	url     string
	authstr string
	areas   []string
	client  *http.Client
}

// New creates a client for the uplink at rawURL. The URL is normalized
// to end with a slash. authstr is the point (pauth) or node (nauth)
// secret and may be empty for read-only use. areas is the list of
// subscribed echoareas, used by Fetch-style callers; it is not
// validated here. A nil httpClient falls back to http.DefaultClient;
// pass a client with a Timeout to bound round trips.
func New(rawURL, authstr string, areas []string, httpClient *http.Client) *Uplink {
	if !strings.HasSuffix(rawURL, "/") {
		rawURL += "/"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Uplink{
		url:     rawURL,
		authstr: authstr,
		areas:   areas,
		client:  httpClient,
	}
}

// URL returns the normalized base URL of the uplink.
func (u *Uplink) URL() string { return u.url }

// Areas returns the subscribed echoarea names the client was created with.
func (u *Uplink) Areas() []string { return u.areas }

// joinURL joins path segments with '/', stripping any leading or
// trailing slashes from each segment first.
func joinURL(segments ...string) string {
	trimmed := make([]string, len(segments))
	for i, s := range segments {
		trimmed[i] = strings.Trim(s, "/")
	}
	return strings.Join(trimmed, "/")
}

// sliceSegment formats the optional start:end range suffix of index
// requests. Start may be negative (tail-relative offset).
func sliceSegment(start, end int) string {
	return fmt.Sprintf("%d:%d", start, end)
}

// get performs one GET round trip for the given path segments under
// the base URL and returns the full response body.
func (u *Uplink) get(ctx context.Context, segments ...string) ([]byte, error) {
	reqURL := joinURL(append([]string{u.url}, segments...)...)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", reqURL, err)
	}
	return u.do(req)
}

// postForm performs one urlencoded POST round trip to the given scheme
// path and returns the full response body.
func (u *Uplink) postForm(ctx context.Context, scheme string, form url.Values) ([]byte, error) {
	reqURL := u.url + scheme
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", reqURL, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return u.do(req)
}

func (u *Uplink) do(req *http.Request) ([]byte, error) {
	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("uplink request %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("uplink request %s: unexpected status %s", req.URL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("uplink response %s: %w", req.URL, err)
	}
	return body, nil
}
