package db

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/vfs"
)

func TestWarmRootRunsEveryFile(t *testing.T) {
	database := New()
	root := vfs.SourceRootId(1)
	files := []vfs.FileId{1, 2, 3}
	database.SetSourceRoot(&vfs.SourceRoot{ID: root, Files: files})

	var count atomic.Int32
	snap := database.Snapshot()
	err := snap.WarmRoot(context.Background(), root, func(_ context.Context, _ vfs.FileId) error {
		count.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := count.Load(); got != int32(len(files)) {
		t.Fatalf("expected %d calls, got %d", len(files), got)
	}
}

func TestWarmRootPropagatesFirstError(t *testing.T) {
	database := New()
	root := vfs.SourceRootId(1)
	database.SetSourceRoot(&vfs.SourceRoot{ID: root, Files: []vfs.FileId{1, 2}})

	boom := errCheckFailed
	snap := database.Snapshot()
	err := snap.WarmRoot(context.Background(), root, func(_ context.Context, _ vfs.FileId) error {
		return boom
	})
	if err != boom {
		t.Fatalf("expected warm error to propagate, got %v", err)
	}
}

func TestDumpIDStableForSameRevision(t *testing.T) {
	database := New()
	database.SetFileText(vfs.FileId(1), "fn main() {}")

	a := database.Snapshot()
	b := database.Snapshot()
	if a.DumpID() != b.DumpID() {
		t.Fatalf("expected two snapshots at the same revision to share a dump id")
	}

	database.SetFileText(vfs.FileId(1), "fn main() { return; }")
	c := database.Snapshot()
	if a.DumpID() == c.DumpID() {
		t.Fatalf("expected a later revision to change the dump id")
	}
}

var errCheckFailed = errDummy("warm failed")

type errDummy string

func (e errDummy) Error() string { return string(e) }
