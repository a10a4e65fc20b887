package snapshotdb

import (
	"path/filepath"
	"testing"

	"github.com/claude/gymlog/internal/catalog/catalogtest"
	"github.com/claude/gymlog/internal/resolver"
)

func TestWriteRead(t *testing.T) {
	snap := catalogtest.Snapshot(t)
	path := filepath.Join(t.TempDir(), "nested", "catalog.db")

	if err := Write(path, snap); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if got.Len() != snap.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), snap.Len())
	}
	want := snap.Entries()
	for i, e := range got.Entries() {
		w := want[i]
		if e.ID != w.ID || e.Name != w.Name || e.PrimaryMuscleID != w.PrimaryMuscleID || e.Kind != w.Kind {
			t.Errorf("entry %d = %+v, want %+v", i, e, w)
		}
		if len(e.Aliases) != len(w.Aliases) {
			t.Errorf("%s aliases = %v, want %v", e.Name, e.Aliases, w.Aliases)
		}
		if len(e.SecondaryMuscleIDs) != len(w.SecondaryMuscleIDs) {
			t.Errorf("%s secondary = %v, want %v", e.Name, e.SecondaryMuscleIDs, w.SecondaryMuscleIDs)
		}
	}

	res, ok := resolver.New(got).Resolve("OHP")
	if !ok || res.Name != "Overhead Press" {
		t.Errorf("Resolve(OHP) = %+v, %v", res, ok)
	}
	p, ok := got.Place("Lateral Raise")
	if !ok || p.Group != "Shoulders" || p.Category != "PUSH" {
		t.Errorf("Place(Lateral Raise) = %+v, %v", p, ok)
	}
}

func TestSaveReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	snap := catalogtest.Snapshot(t)

	for i := 0; i < 2; i++ {
		if err := Write(path, snap); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Len() != snap.Len() {
		t.Errorf("Len() = %d after rewrite, want %d", got.Len(), snap.Len())
	}
}

func TestReadMissingOrEmpty(t *testing.T) {
	dir := t.TempDir()

	if _, err := Read(filepath.Join(dir, "missing.db")); err == nil {
		t.Error("expected error for missing file")
	}

	empty := filepath.Join(dir, "empty.db")
	d, err := Open(empty)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	d.Close()
	if _, err := Read(empty); err == nil {
		t.Error("expected error for empty catalog file")
	}
}
