package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFolderSizeSumsRegularFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.bin"), 100)
	writeFile(t, filepath.Join(dir, "sub", "b.bin"), 250)
	writeFile(t, filepath.Join(dir, "sub", "deep", "c.bin"), 50)

	total, err := FolderSize(dir, nil)
	if err != nil {
		t.Fatalf("FolderSize returned error: %v", err)
	}
	if total != 400 {
		t.Fatalf("FolderSize = %d, want 400", total)
	}
}

func TestFolderSizeMissingFolder(t *testing.T) {
	if _, err := FolderSize(filepath.Join(t.TempDir(), "absent"), nil); err == nil {
		t.Fatal("expected error for missing folder")
	}
}

func TestMoveDirRenames(t *testing.T) {
	root := t.TempDir()
	source := filepath.Join(root, "src", "TKT0000001-old")
	target := filepath.Join(root, "dst", "TKT0000001-old")
	writeFile(t, filepath.Join(source, "dump.sql"), 10)

	if err := MoveDir(source, target); err != nil {
		t.Fatalf("MoveDir returned error: %v", err)
	}
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Fatalf("source still present: %v", err)
	}
	if _, err := os.Stat(filepath.Join(target, "dump.sql")); err != nil {
		t.Fatalf("moved content missing: %v", err)
	}
}

func TestMoveDirRefusesExistingTarget(t *testing.T) {
	root := t.TempDir()
	source := filepath.Join(root, "src", "folder")
	target := filepath.Join(root, "dst", "folder")
	writeFile(t, filepath.Join(source, "x"), 1)
	writeFile(t, filepath.Join(target, "y"), 1)

	if err := MoveDir(source, target); err == nil {
		t.Fatal("expected collision error")
	}
	if _, err := os.Stat(filepath.Join(source, "x")); err != nil {
		t.Fatalf("source must be untouched after collision: %v", err)
	}
}

func TestCopyTreePreservesLayout(t *testing.T) {
	root := t.TempDir()
	source := filepath.Join(root, "src")
	target := filepath.Join(root, "dst")
	writeFile(t, filepath.Join(source, "a", "b", "c.bin"), 32)
	writeFile(t, filepath.Join(source, "top.bin"), 8)

	if err := copyTree(source, target); err != nil {
		t.Fatalf("copyTree returned error: %v", err)
	}
	for _, rel := range []string{"a/b/c.bin", "top.bin"} {
		if _, err := os.Stat(filepath.Join(target, rel)); err != nil {
			t.Fatalf("missing %s after copy: %v", rel, err)
		}
	}
}
