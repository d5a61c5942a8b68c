package echoarea

import "testing"

func TestIsValidName(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"pipe.2032", true},
		{"im.tavern", true},
		{"a.b", true},
		{"nodot", false},
		{"", false},
		{"кириллица.14", false}, // non-ASCII
		{".", true},
	}
	for _, c := range cases {
		if got := IsValidName(c.name); got != c.want {
			t.Fatalf("IsValidName(%q): got %v want %v", c.name, got, c.want)
		}
	}
}

func TestValidateNames(t *testing.T) {
	if err := ValidateNames([]string{"a.b", "c.d"}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	err := ValidateNames([]string{"a.b", "nodot", "alsobad"})
	if err == nil {
		t.Fatalf("expected error")
	}
	nameErr, ok := err.(*NameError)
	if !ok {
		t.Fatalf("expected *NameError, got %T", err)
	}
	if nameErr.Name != "nodot" {
		t.Fatalf("expected first offending name %q, got %q", "nodot", nameErr.Name)
	}
}

func TestParseList(t *testing.T) {
	items, err := ParseList("a.b:5:desc:with:colons\nc.d:0:plain\n")
	if err != nil {
		t.Fatalf("ParseList: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "a.b" || items[0].Count != 5 || items[0].Description != "desc:with:colons" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
	if items[1].Description != "plain" {
		t.Fatalf("unexpected item: %+v", items[1])
	}
}

func TestParseListSkipsShortLines(t *testing.T) {
	items, err := ParseList("a.b:1:ok\n\njustaname\nc.d:2:ok")
	if err != nil {
		t.Fatalf("ParseList: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected short lines skipped, got %d items", len(items))
	}
}

func TestParseListBadCount(t *testing.T) {
	if _, err := ParseList("a.b:many:desc"); err == nil {
		t.Fatalf("expected error for non-numeric count")
	}
}

func TestParseCounts(t *testing.T) {
	counts, err := ParseCounts("a.b:10\nc.d:0\n")
	if err != nil {
		t.Fatalf("ParseCounts: %v", err)
	}
	if len(counts) != 2 || counts["a.b"] != 10 || counts["c.d"] != 0 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestParseCountsBadCount(t *testing.T) {
	if _, err := ParseCounts("a.b:NaN"); err == nil {
		t.Fatalf("expected error for non-numeric count")
	}
}
