package main

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestCollectSourceFilesExpandsDirectoryNonRecursively(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.wgsl"), "fn a() {}")
	writeFile(t, filepath.Join(dir, "b.wgs"), "fn b() {}")
	writeFile(t, filepath.Join(dir, "readme.txt"), "not a shader")
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(sub, "c.wgsl"), "fn c() {}")

	files, err := collectSourceFiles([]string{dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sort.Strings(files)

	want := []string{filepath.Join(dir, "a.wgsl"), filepath.Join(dir, "b.wgs")}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i, f := range files {
		if f != want[i] {
			t.Fatalf("expected %v, got %v", want, files)
		}
	}
}

func TestCollectSourceFilesPassesExplicitFileThrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shader.wgsl")
	writeFile(t, path, "fn main() {}")

	files, err := collectSourceFiles([]string{path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || files[0] != path {
		t.Fatalf("expected [%s], got %v", path, files)
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
