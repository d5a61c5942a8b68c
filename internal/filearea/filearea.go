package filearea

import (
	"fmt"
	"strconv"
	"strings"
)

// ListItem is one row of the uplink file catalog (f/list.txt and
// x/filelist).
type ListItem struct {
	Name        string
	Size        int64
	Description string
}

// Item is one row of a filearea index (f/e). Filearea is inherited
// from the most recent header line preceding the row in the response.
type Item struct {
	Filearea    string
	FID         string
	Name        string
	Size        int64
	Address     string
	Description string
}

// ParseList parses the file catalog grammar: one file per line, name
// and size colon-separated, remainder of the line as a description
// that may itself contain colons. Blank and short lines are skipped.
func ParseList(text string) ([]ListItem, error) {
	var items []ListItem
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		fields := strings.Split(line, ":")
		if len(fields) < 2 || fields[0] == "" {
			continue
		}
		size, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("file %s: bad size %q: %w", fields[0], fields[1], err)
		}
		items = append(items, ListItem{
			Name:        fields[0],
			Size:        size,
			Description: strings.Join(fields[2:], ":"),
		})
	}
	return items, nil
}

// ParseIndex parses the two-level f/e grammar. A line with a single
// colon-split field names the filearea that all following item lines
// belong to, until the next header line. Item lines carry
// fid:name:size:address:description, where the description may itself
// contain colons.
func ParseIndex(text string) ([]Item, error) {
	var items []Item
	var current string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		fields := strings.Split(line, ":")
		if len(fields) == 1 {
			current = fields[0]
			continue
		}
		if len(fields) < 4 {
			continue
		}
		size, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("filearea %s file %s: bad size %q: %w", current, fields[0], fields[2], err)
		}
		items = append(items, Item{
			Filearea:    current,
			FID:         fields[0],
			Name:        fields[1],
			Size:        size,
			Address:     fields[3],
			Description: strings.Join(fields[4:], ":"),
		})
	}
	return items, nil
}
