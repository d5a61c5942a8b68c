package echoarea

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ListItem is one row of an uplink area catalog (list.txt).
type ListItem struct {
	Name        string
	Count       int
	Description string
}

// Counts maps an area or filearea name to its message/file count.
type Counts map[string]int

// NameError reports a malformed echoarea name.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("incorrect area name: %q", e.Name)
}

// IsValidName reports whether name is a well-formed echoarea name:
// all ASCII with at least one dot.
func IsValidName(name string) bool {
	if !strings.Contains(name, ".") {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// ValidateNames checks every name in the collection and returns a
// *NameError for the first malformed one, in iteration order.
func ValidateNames(names []string) error {
	for _, name := range names {
		if !IsValidName(name) {
			return &NameError{Name: name}
		}
	}
	return nil
}

// ParseList parses the list.txt catalog grammar: one area per line,
// name and count colon-separated, with the remainder of the line as a
// description that may itself contain colons. Blank and short lines
// are skipped.
func ParseList(text string) ([]ListItem, error) {
	var items []ListItem
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		fields := strings.Split(line, ":")
		if len(fields) < 2 || fields[0] == "" {
			continue
		}
		count, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("area %s: bad count %q: %w", fields[0], fields[1], err)
		}
		items = append(items, ListItem{
			Name:        fields[0],
			Count:       count,
			Description: strings.Join(fields[2:], ":"),
		})
	}
	return items, nil
}

// ParseCounts parses the x/c and f/c grammar: one name:count pair per
// line. Blank lines are skipped; a non-numeric count is an error.
func ParseCounts(text string) (Counts, error) {
	counts := make(Counts)
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		name, value, ok := strings.Cut(line, ":")
		if !ok || name == "" {
			continue
		}
		count, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("area %s: bad count %q: %w", name, value, err)
		}
		counts[name] = count
	}
	return counts, nil
}
