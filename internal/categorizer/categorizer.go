// Package categorizer classifies a session by its dominant muscle category.
package categorizer

import "github.com/claude/gymlog/internal/catalog"

// Day types that are not muscle categories.
const (
	DayUnknown = "UNKNOWN"
	DayMixed   = "MIXED"
)

// Report describes a categorized session.
type Report struct {
	DayType        string              `json:"day_type"`
	Entries        []catalog.Placement `json:"entries"`
	GroupCounts    map[string]int      `json:"group_counts"`
	CategoryCounts map[string]int      `json:"category_counts"`
}

// Categorizer looks exercises up in a single catalog snapshot.
type Categorizer struct {
	snap *catalog.Snapshot
}

// New creates a Categorizer over snap.
func New(snap *catalog.Snapshot) *Categorizer {
	return &Categorizer{snap: snap}
}

// Categorize places each canonical name and picks the category with the
// highest count as the day type. Names missing from the catalog are skipped.
// When two categories tie, the one that appeared first in names wins.
// An empty or entirely unknown list yields DayUnknown.
func (c *Categorizer) Categorize(names []string) Report {
	r := Report{
		DayType:        DayUnknown,
		Entries:        []catalog.Placement{},
		GroupCounts:    map[string]int{},
		CategoryCounts: map[string]int{},
	}

	var order []string
	for _, name := range names {
		p, ok := c.snap.Place(name)
		if !ok {
			continue
		}
		r.Entries = append(r.Entries, p)
		r.GroupCounts[p.Group]++

		cat := string(p.Category)
		if _, seen := r.CategoryCounts[cat]; !seen {
			order = append(order, cat)
		}
		r.CategoryCounts[cat]++
	}

	best := 0
	for _, cat := range order {
		if n := r.CategoryCounts[cat]; n > best {
			best = n
			r.DayType = cat
		}
	}
	return r
}
