// Package catalogtest provides a small synthetic catalog for tests.
package catalogtest

import (
	"testing"

	"github.com/claude/gymlog/internal/catalog"
)

// Groups is the reference muscle-group data used by Snapshot.
var Groups = []catalog.MuscleGroup{
	{ID: 1, Name: "Chest", Category: catalog.CategoryPush},
	{ID: 2, Name: "Shoulders", Category: catalog.CategoryPush},
	{ID: 3, Name: "Triceps", Category: catalog.CategoryPush},
	{ID: 4, Name: "Back", Category: catalog.CategoryPull},
	{ID: 5, Name: "Biceps", Category: catalog.CategoryPull},
	{ID: 6, Name: "Quads", Category: catalog.CategoryLegs},
	{ID: 7, Name: "Hamstrings", Category: catalog.CategoryLegs},
	{ID: 8, Name: "Core", Category: catalog.CategoryCore},
}

// Muscles is the reference muscle data used by Snapshot.
var Muscles = []catalog.Muscle{
	{ID: 1, Name: "Mid Pecs", GroupID: 1},
	{ID: 2, Name: "Upper Pecs", GroupID: 1},
	{ID: 3, Name: "Front Delts", GroupID: 2},
	{ID: 4, Name: "Side Delts", GroupID: 2},
	{ID: 5, Name: "Long Head Tricep", GroupID: 3},
	{ID: 6, Name: "Lateral Head Tricep", GroupID: 3},
	{ID: 7, Name: "Outer Lats", GroupID: 4},
	{ID: 8, Name: "Rhomboids", GroupID: 4},
	{ID: 9, Name: "Long Head Bicep", GroupID: 5},
	{ID: 10, Name: "Rectus Femoris", GroupID: 6},
	{ID: 11, Name: "Biceps Femoris", GroupID: 7},
	{ID: 12, Name: "Rectus Abdominis", GroupID: 8},
}

// Entries is a catalog with five PUSH exercises and a few from each other category.
var Entries = []catalog.Entry{
	{ID: 1, Name: "Barbell Bench Press", Aliases: []string{"bench", "bb bench", "flat bench"}, PrimaryMuscleID: 1, SecondaryMuscleIDs: []int{3, 5}, Kind: catalog.KindLift},
	{ID: 2, Name: "Incline Dumbbell Press", Aliases: []string{"incline db press", "incline press"}, PrimaryMuscleID: 2, SecondaryMuscleIDs: []int{3}, Kind: catalog.KindLift},
	{ID: 3, Name: "Overhead Press", Aliases: []string{"ohp", "military press"}, PrimaryMuscleID: 3, SecondaryMuscleIDs: []int{6}, Kind: catalog.KindLift},
	{ID: 4, Name: "Lateral Raise", Aliases: []string{"side raise", "lat raise"}, PrimaryMuscleID: 4, Kind: catalog.KindLift},
	{ID: 5, Name: "Tricep Rope Pushdown", Aliases: []string{"rope pushdown", "tricep pushdown"}, PrimaryMuscleID: 6, Kind: catalog.KindLift},
	{ID: 6, Name: "Lat Pulldown", Aliases: []string{"pulldown", "wide grip pulldown"}, PrimaryMuscleID: 7, SecondaryMuscleIDs: []int{9}, Kind: catalog.KindLift},
	{ID: 7, Name: "Seated Cable Row", Aliases: []string{"cable row", "machine seated row"}, PrimaryMuscleID: 8, SecondaryMuscleIDs: []int{7, 9}, Kind: catalog.KindLift},
	{ID: 8, Name: "Barbell Curl", Aliases: []string{"bb curl", "curls"}, PrimaryMuscleID: 9, Kind: catalog.KindLift},
	{ID: 9, Name: "Barbell Back Squat", Aliases: []string{"squat", "back squat"}, PrimaryMuscleID: 10, SecondaryMuscleIDs: []int{11}, Kind: catalog.KindLift},
	{ID: 10, Name: "Romanian Deadlift", Aliases: []string{"rdl"}, PrimaryMuscleID: 11, Kind: catalog.KindLift},
	{ID: 11, Name: "Hanging Leg Raise", Aliases: []string{"leg raises"}, PrimaryMuscleID: 12, Kind: catalog.KindLift},
	{ID: 12, Name: "Treadmill Run", Aliases: []string{"treadmill", "running"}, PrimaryMuscleID: 10, Kind: catalog.KindCardio},
}

// PushDay lists the five PUSH exercises in the fixture.
var PushDay = []string{
	"Barbell Bench Press",
	"Incline Dumbbell Press",
	"Overhead Press",
	"Lateral Raise",
	"Tricep Rope Pushdown",
}

// Snapshot builds the fixture snapshot, failing the test on error.
func Snapshot(t testing.TB) *catalog.Snapshot {
	t.Helper()
	s, err := catalog.NewSnapshot(Groups, Muscles, Entries)
	if err != nil {
		t.Fatalf("building fixture snapshot: %v", err)
	}
	return s
}
