package filearea

import "testing"

func TestParseList(t *testing.T) {
	items, err := ParseList("readme.txt:100:a short: description\narchive.zip:2048:\n")
	if err != nil {
		t.Fatalf("ParseList: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "readme.txt" || items[0].Size != 100 || items[0].Description != "a short: description" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
}

func TestParseListBadSize(t *testing.T) {
	if _, err := ParseList("readme.txt:big:desc"); err == nil {
		t.Fatalf("expected error for non-numeric size")
	}
}

func TestParseIndex(t *testing.T) {
	text := "myfilearea\n1:readme.txt:100:addr:desc\n2:other.zip:200:addr:d2"
	items, err := ParseIndex(text)
	if err != nil {
		t.Fatalf("ParseIndex: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for i, it := range items {
		if it.Filearea != "myfilearea" {
			t.Fatalf("item %d: filearea got %q want %q", i, it.Filearea, "myfilearea")
		}
	}
	if items[0].FID != "1" || items[0].Name != "readme.txt" || items[0].Size != 100 || items[0].Address != "addr" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
}

func TestParseIndexMultipleHeaders(t *testing.T) {
	text := "area.one\n1:a.txt:10:addr:\narea.two\n2:b.txt:20:addr:second one"
	items, err := ParseIndex(text)
	if err != nil {
		t.Fatalf("ParseIndex: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Filearea != "area.one" || items[1].Filearea != "area.two" {
		t.Fatalf("header inheritance wrong: %+v", items)
	}
	if items[1].Description != "second one" {
		t.Fatalf("unexpected description: %q", items[1].Description)
	}
}

func TestParseIndexDescriptionWithColons(t *testing.T) {
	items, err := ParseIndex("fa.main\n7:x.bin:1:addr:desc:with:colons")
	if err != nil {
		t.Fatalf("ParseIndex: %v", err)
	}
	if items[0].Description != "desc:with:colons" {
		t.Fatalf("unexpected description: %q", items[0].Description)
	}
}

func TestParseIndexBadSize(t *testing.T) {
	if _, err := ParseIndex("fa.main\n1:a.txt:huge:addr:desc"); err == nil {
		t.Fatalf("expected error for non-numeric size")
	}
}
