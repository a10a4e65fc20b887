package catalog_test

import (
	"testing"

	"github.com/claude/gymlog/internal/catalog"
	"github.com/claude/gymlog/internal/catalog/catalogtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshotIndexes(t *testing.T) {
	s := catalogtest.Snapshot(t)

	assert.Equal(t, len(catalogtest.Entries), s.Len())

	name, ok := s.ExactMatch("ohp")
	require.True(t, ok)
	assert.Equal(t, "Overhead Press", name)

	// Canonical names are exact keys too.
	name, ok = s.ExactMatch("lat pulldown")
	require.True(t, ok)
	assert.Equal(t, "Lat Pulldown", name)

	_, ok = s.ExactMatch("Lat Pulldown")
	assert.False(t, ok, "exact keys are lower-cased")
}

func TestCandidatesOrder(t *testing.T) {
	s := catalogtest.Snapshot(t)
	cands := s.Candidates()

	// Aliases of the first entry come first; canonical names close the list.
	require.NotEmpty(t, cands)
	assert.Equal(t, catalog.Candidate{Text: "bench", Name: "Barbell Bench Press"}, cands[0])
	last := cands[len(cands)-1]
	assert.Equal(t, catalog.Candidate{Text: "treadmill run", Name: "Treadmill Run"}, last)
}

func TestPlace(t *testing.T) {
	s := catalogtest.Snapshot(t)

	p, ok := s.Place("Lateral Raise")
	require.True(t, ok)
	assert.Equal(t, catalog.Placement{
		Exercise: "Lateral Raise",
		Muscle:   "Side Delts",
		Group:    "Shoulders",
		Category: catalog.CategoryPush,
	}, p)

	_, ok = s.Place("lateral raise")
	assert.False(t, ok, "Place takes canonical names only")

	assert.Equal(t, []string{"Front Delts", "Long Head Tricep"}, s.SecondaryMuscles("Barbell Bench Press"))
}

func TestNewSnapshotRejects(t *testing.T) {
	groups := []catalog.MuscleGroup{{ID: 1, Name: "Chest", Category: catalog.CategoryPush}}
	muscles := []catalog.Muscle{{ID: 1, Name: "Mid Pecs", GroupID: 1}}

	tests := []struct {
		name    string
		muscles []catalog.Muscle
		entries []catalog.Entry
	}{
		{
			name: "duplicate name differing in case",
			entries: []catalog.Entry{
				{ID: 1, Name: "Bench Press", PrimaryMuscleID: 1},
				{ID: 2, Name: "bench press", PrimaryMuscleID: 1},
			},
		},
		{
			name: "alias shared by two exercises",
			entries: []catalog.Entry{
				{ID: 1, Name: "Bench Press", Aliases: []string{"bench"}, PrimaryMuscleID: 1},
				{ID: 2, Name: "Dumbbell Press", Aliases: []string{"Bench"}, PrimaryMuscleID: 1},
			},
		},
		{
			name: "alias equal to another canonical name",
			entries: []catalog.Entry{
				{ID: 1, Name: "Bench Press", PrimaryMuscleID: 1},
				{ID: 2, Name: "Barbell Bench Press", Aliases: []string{"bench press"}, PrimaryMuscleID: 1},
			},
		},
		{
			name: "unknown primary muscle",
			entries: []catalog.Entry{
				{ID: 1, Name: "Bench Press", PrimaryMuscleID: 99},
			},
		},
		{
			name: "unknown secondary muscle",
			entries: []catalog.Entry{
				{ID: 1, Name: "Bench Press", PrimaryMuscleID: 1, SecondaryMuscleIDs: []int{42}},
			},
		},
		{
			name:    "muscle in unknown group",
			muscles: []catalog.Muscle{{ID: 1, Name: "Mid Pecs", GroupID: 7}},
		},
		{
			name:    "empty name",
			entries: []catalog.Entry{{ID: 1, Name: "  ", PrimaryMuscleID: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := muscles
			if tt.muscles != nil {
				m = tt.muscles
			}
			_, err := catalog.NewSnapshot(groups, m, tt.entries)
			assert.Error(t, err)
		})
	}
}

func TestNewSnapshotDefaultsKind(t *testing.T) {
	s, err := catalog.NewSnapshot(
		[]catalog.MuscleGroup{{ID: 1, Name: "Chest", Category: catalog.CategoryPush}},
		[]catalog.Muscle{{ID: 1, Name: "Mid Pecs", GroupID: 1}},
		[]catalog.Entry{{ID: 1, Name: "Push Up", Aliases: []string{"push up", "pushup"}, PrimaryMuscleID: 1}},
	)
	require.NoError(t, err)

	e, ok := s.Entry("Push Up")
	require.True(t, ok)
	assert.Equal(t, catalog.KindLift, e.Kind)
}

func TestEntriesAreCopies(t *testing.T) {
	s := catalogtest.Snapshot(t)

	all := s.Entries()
	all[0].Aliases[0] = "changed"
	all[0].SecondaryMuscleIDs[0] = 99

	e, ok := s.Entry("Barbell Bench Press")
	require.True(t, ok)
	assert.Equal(t, []string{"bench", "bb bench", "flat bench"}, e.Aliases)
	assert.Equal(t, []int{3, 5}, e.SecondaryMuscleIDs)

	e.Aliases[1] = "changed"
	again, _ := s.Entry("Barbell Bench Press")
	assert.Equal(t, "bb bench", again.Aliases[1])

	name, ok := s.ExactMatch("bench")
	require.True(t, ok)
	assert.Equal(t, "Barbell Bench Press", name)
	assert.Equal(t, []string{"Front Delts", "Long Head Tricep"}, s.SecondaryMuscles("Barbell Bench Press"))
}
