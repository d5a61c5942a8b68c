package uplink

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pktpoint/idec/internal/echoarea"
	"github.com/pktpoint/idec/internal/message"
)

// newTestUplink starts a test server answering every request with body
// and returns a client pointed at it plus a pointer to the last
// requested path.
func newTestUplink(t *testing.T, body string) (*Uplink, *string) {
	t.Helper()
	lastPath := new(string)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*lastPath = r.URL.Path
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL, "secret", nil, srv.Client()), lastPath
}

func TestJoinURL(t *testing.T) {
	got := joinURL("http://example.com/", "/e/", "/a.b/")
	want := "http://example.com/e/a.b"
	if got != want {
		t.Fatalf("joinURL: got %q want %q", got, want)
	}
}

func TestNewNormalizesURL(t *testing.T) {
	u := New("http://example.com", "", nil, nil)
	if u.URL() != "http://example.com/" {
		t.Fatalf("expected trailing slash, got %q", u.URL())
	}
	u = New("http://example.com/", "", nil, nil)
	if u.URL() != "http://example.com/" {
		t.Fatalf("expected single trailing slash, got %q", u.URL())
	}
}

func TestAreaList(t *testing.T) {
	u, lastPath := newTestUplink(t, "a.b:5:desc:with:colons\nc.d:2:plain\n")
	items, err := u.AreaList(context.Background())
	if err != nil {
		t.Fatalf("AreaList: %v", err)
	}
	if *lastPath != "/list.txt" {
		t.Fatalf("unexpected path: %q", *lastPath)
	}
	if len(items) != 2 || items[0].Name != "a.b" || items[0].Count != 5 || items[0].Description != "desc:with:colons" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestBlacklist(t *testing.T) {
	u, _ := newTestUplink(t, "id1 id2\nid1\n")
	set, err := u.Blacklist(context.Background())
	if err != nil {
		t.Fatalf("Blacklist: %v", err)
	}
	if len(set) != 2 || !set["id1"] || !set["id2"] {
		t.Fatalf("unexpected set: %v", set)
	}
}

func TestAreaIndex(t *testing.T) {
	u, lastPath := newTestUplink(t, "id1 id2 id3")
	ids, err := u.AreaIndex(context.Background(), "a.b")
	if err != nil {
		t.Fatalf("AreaIndex: %v", err)
	}
	if *lastPath != "/e/a.b" {
		t.Fatalf("unexpected path: %q", *lastPath)
	}
	if len(ids) != 3 || ids[0] != "id1" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestAreaIndexRejectsBadName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("network access for invalid area name: %s", r.URL)
	}))
	defer srv.Close()

	u := New(srv.URL, "", nil, srv.Client())
	_, err := u.AreaIndex(context.Background(), "nodot")
	nameErr, ok := err.(*echoarea.NameError)
	if !ok {
		t.Fatalf("expected *echoarea.NameError, got %v", err)
	}
	if nameErr.Name != "nodot" {
		t.Fatalf("unexpected offending name: %q", nameErr.Name)
	}
}

func TestMessage(t *testing.T) {
	u, lastPath := newTestUplink(t, "tags\narea\n123\nfrom\naddr\nto\nsubj\n\nbody")
	msg, err := u.Message(context.Background(), "abcdefghijklmnopqrst")
	if err != nil {
		t.Fatalf("Message: %v", err)
	}
	if *lastPath != "/m/abcdefghijklmnopqrst" {
		t.Fatalf("unexpected path: %q", *lastPath)
	}
	if msg.MsgID != "abcdefghijklmnopqrst" || msg.Body != "body" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestMessageRejectsBadID(t *testing.T) {
	u, _ := newTestUplink(t, "")
	_, err := u.Message(context.Background(), "short")
	idErr, ok := err.(*message.IDError)
	if !ok {
		t.Fatalf("expected *message.IDError, got %v", err)
	}
	if idErr.ID != "short" {
		t.Fatalf("unexpected offending id: %q", idErr.ID)
	}
}

func TestMergedIndexWithSlice(t *testing.T) {
	u, lastPath := newTestUplink(t, "id1 id2")
	_, err := u.MergedIndex(context.Background(), []string{"a.b", "c.d"}, -5, 5)
	if err != nil {
		t.Fatalf("MergedIndex: %v", err)
	}
	if *lastPath != "/u/e/a.b/c.d/-5:5" {
		t.Fatalf("unexpected path: %q", *lastPath)
	}
}

func TestMergedIndexWithoutSlice(t *testing.T) {
	u, lastPath := newTestUplink(t, "id1 id2")
	_, err := u.MergedIndex(context.Background(), []string{"a.b", "c.d"}, 0, 0)
	if err != nil {
		t.Fatalf("MergedIndex: %v", err)
	}
	if *lastPath != "/u/e/a.b/c.d" {
		t.Fatalf("unexpected path: %q", *lastPath)
	}
}

func TestMergedIndexValidatesAllNames(t *testing.T) {
	u, _ := newTestUplink(t, "")
	_, err := u.MergedIndex(context.Background(), []string{"a.b", "nodot"}, 0, 0)
	nameErr, ok := err.(*echoarea.NameError)
	if !ok || nameErr.Name != "nodot" {
		t.Fatalf("expected NameError for %q, got %v", "nodot", err)
	}
}

func TestMessages(t *testing.T) {
	raw := "tags\narea\n1\nfrom\naddr\nto\nsubj\n\nbody"
	enc := base64.StdEncoding.EncodeToString([]byte(raw))
	u, lastPath := newTestUplink(t, "aaaaaaaaaaaaaaaaaaaa:"+enc+" bbbbbbbbbbbbbbbbbbbb:"+enc)

	msgs, err := u.Messages(context.Background(), []string{"aaaaaaaaaaaaaaaaaaaa", "bbbbbbbbbbbbbbbbbbbb"})
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if *lastPath != "/u/m/aaaaaaaaaaaaaaaaaaaa/bbbbbbbbbbbbbbbbbbbb" {
		t.Fatalf("unexpected path: %q", *lastPath)
	}
	if len(msgs) != 2 || msgs[0].MsgID != "aaaaaaaaaaaaaaaaaaaa" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
}

func TestPostMessage(t *testing.T) {
	var gotAuth, gotMsg string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotAuth = r.PostFormValue("pauth")
		gotMsg = r.PostFormValue("tmsg")
		_, _ = io.WriteString(w, "msg ok")
	}))
	defer srv.Close()

	u := New(srv.URL, "secret", nil, srv.Client())
	ack, err := u.PostMessage(context.Background(), "a.b\nAll\nsubj\n\nbody")
	if err != nil {
		t.Fatalf("PostMessage: %v", err)
	}
	if ack != "msg ok" {
		t.Fatalf("unexpected ack: %q", ack)
	}
	if gotAuth != "secret" {
		t.Fatalf("unexpected pauth: %q", gotAuth)
	}
	decoded, err := base64.StdEncoding.DecodeString(gotMsg)
	if err != nil {
		t.Fatalf("tmsg not base64: %v", err)
	}
	if string(decoded) != "a.b\nAll\nsubj\n\nbody" {
		t.Fatalf("unexpected tmsg: %q", decoded)
	}
}

func TestPushBundle(t *testing.T) {
	var gotAuth, gotArea, gotBundle string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		gotAuth = r.PostFormValue("nauth")
		gotArea = r.PostFormValue("echoarea")
		gotBundle = r.PostFormValue("upush")
		_, _ = io.WriteString(w, "bundle ok")
	}))
	defer srv.Close()

	u := New(srv.URL, "nodesecret", nil, srv.Client())
	ack, err := u.PushBundle(context.Background(), "a.b", []string{"id1:enc1", "id2:enc2"})
	if err != nil {
		t.Fatalf("PushBundle: %v", err)
	}
	if ack != "bundle ok" || gotAuth != "nodesecret" || gotArea != "a.b" {
		t.Fatalf("unexpected: ack=%q nauth=%q area=%q", ack, gotAuth, gotArea)
	}
	if gotBundle != "id1:enc1\nid2:enc2" {
		t.Fatalf("unexpected bundle: %q", gotBundle)
	}
}

func TestCounts(t *testing.T) {
	u, lastPath := newTestUplink(t, "a.b:10\nc.d:3")
	counts, err := u.Counts(context.Background(), []string{"a.b", "c.d"})
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if *lastPath != "/x/c/a.b/c.d" {
		t.Fatalf("unexpected path: %q", *lastPath)
	}
	if counts["a.b"] != 10 || counts["c.d"] != 3 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestFeatures(t *testing.T) {
	u, _ := newTestUplink(t, "list.txt\nu/e\nx/c\n")
	features, err := u.Features(context.Background())
	if err != nil {
		t.Fatalf("Features: %v", err)
	}
	if len(features) != 3 || features[0] != "list.txt" || features[2] != "x/c" {
		t.Fatalf("unexpected features: %v", features)
	}
}

func TestHTTPErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	u := New(srv.URL, "", nil, srv.Client())
	if _, err := u.AreaList(context.Background()); err == nil {
		t.Fatalf("expected error for non-200 status")
	}
}
