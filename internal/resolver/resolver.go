// Package resolver maps free-text exercise names onto canonical catalog names.
package resolver

import (
	"strings"

	"github.com/claude/gymlog/internal/catalog"
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// DefaultThreshold is the minimum fuzzy score accepted by Resolve.
const DefaultThreshold = 60

// Resolution is a successful match. Score is 100 for exact alias or name hits.
type Resolution struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Resolver matches against a single catalog snapshot.
type Resolver struct {
	snap *catalog.Snapshot
}

// New creates a Resolver over snap.
func New(snap *catalog.Snapshot) *Resolver {
	return &Resolver{snap: snap}
}

// Resolve matches query with DefaultThreshold.
func (r *Resolver) Resolve(query string) (Resolution, bool) {
	return r.ResolveWithThreshold(query, DefaultThreshold)
}

// ResolveWithThreshold matches query against the catalog. An exact alias or
// canonical-name hit (case-insensitive) returns score 100 without fuzzy
// comparison. Otherwise the best token-set score over all aliases and names
// wins, first seen on ties, and is returned only if it reaches threshold.
// Scores are whole numbers rounded by the ratio function before the
// comparison, so a raw 59.5 passes a threshold of 60.
// The boolean is false when nothing qualifies.
func (r *Resolver) ResolveWithThreshold(query string, threshold int) (Resolution, bool) {
	q := Normalize(query)
	if q == "" {
		return Resolution{}, false
	}

	if name, ok := r.snap.ExactMatch(q); ok {
		return Resolution{Name: name, Score: 100}, true
	}

	best := -1
	var bestName string
	for _, c := range r.snap.Candidates() {
		score := fuzzy.TokenSetRatio(q, c.Text)
		if score > best {
			best = score
			bestName = c.Name
		}
	}

	if best < 0 || best < threshold {
		return Resolution{}, false
	}
	return Resolution{Name: bestName, Score: best}, true
}

// Normalize trims and lower-cases a query.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
