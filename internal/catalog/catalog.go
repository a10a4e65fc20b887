// Package catalog holds the exercise catalog as an immutable, validated snapshot.
package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// Category is the workout-day classification a muscle group belongs to.
type Category string

const (
	CategoryPush Category = "PUSH"
	CategoryPull Category = "PULL"
	CategoryLegs Category = "LEGS"
	CategoryCore Category = "CORE"
)

// Kind distinguishes weight training entries from cardio entries.
type Kind string

const (
	KindLift   Kind = "lift"
	KindCardio Kind = "cardio"
)

// MuscleGroup is static reference data, e.g. "Chest" in the PUSH category.
type MuscleGroup struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// Muscle is a specific muscle owned by a group, e.g. "Mid Pecs" in "Chest".
type Muscle struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	GroupID int    `json:"group_id"`
}

// Entry is one canonical catalog exercise.
type Entry struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	Aliases            []string `json:"aliases"`
	PrimaryMuscleID    int      `json:"primary_muscle_id"`
	SecondaryMuscleIDs []int    `json:"secondary_muscle_ids"`
	Kind               Kind     `json:"kind"`
}

// Placement is an exercise's primary muscle, that muscle's group, and the group's category.
type Placement struct {
	Exercise string   `json:"name"`
	Muscle   string   `json:"muscle"`
	Group    string   `json:"group"`
	Category Category `json:"category"`
}

// Candidate is a lower-cased text the resolver compares queries against,
// together with the canonical name it stands for.
type Candidate struct {
	Text string
	Name string
}

// Snapshot is a read-only view of the catalog. It is safe for concurrent use.
// A catalog edit requires building a new Snapshot.
type Snapshot struct {
	entries    []Entry
	byName     map[string]int // canonical name -> index into entries
	muscles    map[int]Muscle
	groups     map[int]MuscleGroup
	exact      map[string]string // lower-cased alias or canonical name -> canonical name
	candidates []Candidate
}

// NewSnapshot validates the reference data and entries and builds a snapshot.
func NewSnapshot(groups []MuscleGroup, muscles []Muscle, entries []Entry) (*Snapshot, error) {
	s := &Snapshot{
		entries: make([]Entry, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
		muscles: make(map[int]Muscle, len(muscles)),
		groups:  make(map[int]MuscleGroup, len(groups)),
		exact:   make(map[string]string),
	}

	for _, g := range groups {
		if _, dup := s.groups[g.ID]; dup {
			return nil, fmt.Errorf("duplicate muscle group id %d", g.ID)
		}
		s.groups[g.ID] = g
	}
	for _, m := range muscles {
		if _, dup := s.muscles[m.ID]; dup {
			return nil, fmt.Errorf("duplicate muscle id %d", m.ID)
		}
		if _, ok := s.groups[m.GroupID]; !ok {
			return nil, fmt.Errorf("muscle %q references unknown group %d", m.Name, m.GroupID)
		}
		s.muscles[m.ID] = m
	}

	lowerNames := make(map[string]string, len(entries))
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("exercise %d has an empty name", e.ID)
		}
		key := strings.ToLower(name)
		if other, dup := lowerNames[key]; dup {
			return nil, fmt.Errorf("duplicate exercise name %q (already %q)", name, other)
		}
		lowerNames[key] = name
	}

	aliasCandidates := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		if _, ok := s.muscles[e.PrimaryMuscleID]; !ok {
			return nil, fmt.Errorf("exercise %q references unknown primary muscle %d", e.Name, e.PrimaryMuscleID)
		}
		for _, id := range e.SecondaryMuscleIDs {
			if _, ok := s.muscles[id]; !ok {
				return nil, fmt.Errorf("exercise %q references unknown secondary muscle %d", e.Name, id)
			}
		}
		if e.Kind == "" {
			e.Kind = KindLift
		}

		for _, alias := range e.Aliases {
			key := strings.ToLower(strings.TrimSpace(alias))
			if key == "" {
				continue
			}
			if owner, ok := lowerNames[key]; ok && owner != e.Name {
				return nil, fmt.Errorf("alias %q of %q collides with exercise %q", alias, e.Name, owner)
			}
			if owner, ok := s.exact[key]; ok {
				if owner != e.Name {
					return nil, fmt.Errorf("alias %q maps to both %q and %q", alias, owner, e.Name)
				}
				continue
			}
			s.exact[key] = e.Name
			aliasCandidates = append(aliasCandidates, Candidate{Text: key, Name: e.Name})
		}

		s.byName[e.Name] = len(s.entries)
		s.entries = append(s.entries, e)
	}

	// Aliases first, then canonical names, matching the order the resolver scans them.
	s.candidates = aliasCandidates
	for _, e := range s.entries {
		key := strings.ToLower(e.Name)
		if _, ok := s.exact[key]; !ok {
			s.exact[key] = e.Name
		}
		s.candidates = append(s.candidates, Candidate{Text: key, Name: e.Name})
	}

	return s, nil
}

// Len returns the number of catalog entries.
func (s *Snapshot) Len() int { return len(s.entries) }

// Entries returns a deep copy of all entries in catalog order.
func (s *Snapshot) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.clone()
	}
	return out
}

// Entry returns a copy of the entry with the exact canonical name.
func (s *Snapshot) Entry(name string) (Entry, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i].clone(), true
}

func (e Entry) clone() Entry {
	e.Aliases = slices.Clone(e.Aliases)
	e.SecondaryMuscleIDs = slices.Clone(e.SecondaryMuscleIDs)
	return e
}

// ExactMatch looks up an already-normalized (trimmed, lower-cased) text
// among aliases and canonical names.
func (s *Snapshot) ExactMatch(normalized string) (string, bool) {
	name, ok := s.exact[normalized]
	return name, ok
}

// Candidates returns the fuzzy-match candidate list: every alias in catalog
// order followed by every lower-cased canonical name. Callers must not modify it.
func (s *Snapshot) Candidates() []Candidate {
	return s.candidates
}

// Muscle returns a muscle by ID.
func (s *Snapshot) Muscle(id int) (Muscle, bool) {
	m, ok := s.muscles[id]
	return m, ok
}

// Group returns a muscle group by ID.
func (s *Snapshot) Group(id int) (MuscleGroup, bool) {
	g, ok := s.groups[id]
	return g, ok
}

// Place returns the primary muscle, group and category of a canonical exercise name.
func (s *Snapshot) Place(name string) (Placement, bool) {
	e, ok := s.Entry(name)
	if !ok {
		return Placement{}, false
	}
	m := s.muscles[e.PrimaryMuscleID]
	g := s.groups[m.GroupID]
	return Placement{
		Exercise: e.Name,
		Muscle:   m.Name,
		Group:    g.Name,
		Category: g.Category,
	}, true
}

// SecondaryMuscles returns the names of an exercise's secondary muscles.
func (s *Snapshot) SecondaryMuscles(name string) []string {
	e, ok := s.Entry(name)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(e.SecondaryMuscleIDs))
	for _, id := range e.SecondaryMuscleIDs {
		out = append(out, s.muscles[id].Name)
	}
	return out
}

// Groups returns all muscle groups, in no particular order.
func (s *Snapshot) Groups() []MuscleGroup {
	out := make([]MuscleGroup, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, g)
	}
	return out
}

// Muscles returns all muscles, in no particular order.
func (s *Snapshot) Muscles() []Muscle {
	out := make([]Muscle, 0, len(s.muscles))
	for _, m := range s.muscles {
		out = append(out, m)
	}
	return out
}
