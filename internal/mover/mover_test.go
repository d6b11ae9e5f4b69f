package mover

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"ticketsweep/internal/ticket"
)

func mkFolder(t *testing.T, root, name string) {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(path, "dump.bin"), []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func listDirs(t *testing.T, root string) []string {
	t.Helper()
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

func TestMoveToDeletionMovesMatchingFolder(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	mkFolder(t, source, "TKT0000001-old")
	mkFolder(t, source, "TKT0000002-keep")

	summary, err := New(source, dest, nil).MoveToDeletion(context.Background(), []ticket.ID{"TKT0000001"})
	if err != nil {
		t.Fatalf("MoveToDeletion returned error: %v", err)
	}
	if len(summary.Moved) != 1 || summary.Moved[0] != "TKT0000001-old" {
		t.Fatalf("Moved = %v", summary.Moved)
	}
	if got := listDirs(t, source); len(got) != 1 || got[0] != "TKT0000002-keep" {
		t.Fatalf("source dirs = %v", got)
	}
	if got := listDirs(t, dest); len(got) != 1 || got[0] != "TKT0000001-old" {
		t.Fatalf("dest dirs = %v", got)
	}
	if _, err := os.Stat(filepath.Join(dest, "TKT0000001-old", "dump.bin")); err != nil {
		t.Fatalf("moved folder content missing: %v", err)
	}
}

func TestMoveToDeletionMissingFolderIsNoOp(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	mkFolder(t, source, "TKT0000002-keep")

	summary, err := New(source, dest, nil).MoveToDeletion(context.Background(), []ticket.ID{"TKT0000001"})
	if err != nil {
		t.Fatalf("MoveToDeletion returned error: %v", err)
	}
	if len(summary.Skipped) != 1 || summary.Skipped[0] != "TKT0000001" {
		t.Fatalf("Skipped = %v", summary.Skipped)
	}
	if len(summary.Moved) != 0 || len(summary.Failed) != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if got := listDirs(t, source); len(got) != 1 || got[0] != "TKT0000002-keep" {
		t.Fatalf("source dirs changed: %v", got)
	}
}

func TestMoveToDeletionCollisionDoesNotAbortBatch(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	mkFolder(t, source, "TKT0000001-old")
	mkFolder(t, source, "TKT0000002-new")
	// Pre-existing folder in staging collides with the first move.
	mkFolder(t, dest, "TKT0000001-old")

	summary, err := New(source, dest, nil).MoveToDeletion(context.Background(), []ticket.ID{"TKT0000001", "TKT0000002"})
	if err != nil {
		t.Fatalf("MoveToDeletion returned error: %v", err)
	}
	if len(summary.Failed) != 1 || summary.Failed[0].Folder != "TKT0000001-old" {
		t.Fatalf("Failed = %+v", summary.Failed)
	}
	if len(summary.Moved) != 1 || summary.Moved[0] != "TKT0000002-new" {
		t.Fatalf("Moved = %v, second move must still happen", summary.Moved)
	}
}

func TestMoveToDeletionMovesAllAmbiguousMatches(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	mkFolder(t, source, "TKT0000001-a")
	mkFolder(t, source, "TKT0000001-b")

	summary, err := New(source, dest, nil).MoveToDeletion(context.Background(), []ticket.ID{"TKT0000001"})
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Moved) != 2 {
		t.Fatalf("Moved = %v, want both matches", summary.Moved)
	}
	if got := listDirs(t, dest); len(got) != 2 {
		t.Fatalf("dest dirs = %v", got)
	}
}

func TestMoveToDeletionCreatesDestination(t *testing.T) {
	source := t.TempDir()
	dest := filepath.Join(t.TempDir(), "MARKED FOR DELETION")
	mkFolder(t, source, "TKT0000001-old")

	if _, err := New(source, dest, nil).MoveToDeletion(context.Background(), []ticket.ID{"TKT0000001"}); err != nil {
		t.Fatalf("MoveToDeletion returned error: %v", err)
	}
	if got := listDirs(t, dest); len(got) != 1 {
		t.Fatalf("dest dirs = %v", got)
	}
}
