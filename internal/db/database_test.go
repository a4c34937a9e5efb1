package db

import (
	"testing"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/vfs"
)

func TestSetFileTextRevisionStability(t *testing.T) {
	database := New()
	f := vfs.FileId(1)

	if !database.SetFileText(f, "fn main() {}") {
		t.Fatalf("expected first SetFileText to advance the revision")
	}
	rev := database.Revision()

	if database.SetFileText(f, "fn main() {}") {
		t.Fatalf("structurally equal SetFileText must not advance the revision")
	}
	if database.Revision() != rev {
		t.Fatalf("revision changed despite structurally equal input")
	}

	if !database.SetFileText(f, "fn main() { return; }") {
		t.Fatalf("expected differing text to advance the revision")
	}
	if database.Revision() == rev {
		t.Fatalf("revision did not advance for differing input")
	}
}

func TestMemoServesCachedValueWithinRevision(t *testing.T) {
	database := New()
	f := vfs.FileId(1)
	database.SetFileText(f, "abc")

	calls := 0
	memo := GetMemo[vfs.FileId, int](database, "test.len")
	compute := func() (int, error) {
		calls++
		text, _ := database.Snapshot().FileText(f)
		return len(text), nil
	}
	equal := func(a, b int) bool { return a == b }

	snap := database.Snapshot()
	v1, changed1, err := memo.Get(snap, f, equal, compute)
	if err != nil || v1 != 3 || !changed1 {
		t.Fatalf("unexpected first compute: v=%d changed=%v err=%v", v1, changed1, err)
	}

	v2, changed2, err := memo.Get(snap, f, equal, compute)
	if err != nil || v2 != 3 || changed2 {
		t.Fatalf("expected cached hit without recompute: v=%d changed=%v", v2, changed2)
	}
	if calls != 1 {
		t.Fatalf("expected exactly 1 compute call, got %d", calls)
	}
}

func TestMemoRecomputesButSuppressesChangeOnEqualValue(t *testing.T) {
	database := New()
	f := vfs.FileId(1)
	database.SetFileText(f, "abc")

	memo := GetMemo[vfs.FileId, int](database, "test.len2")
	equal := func(a, b int) bool { return a == b }
	compute := func() (int, error) {
		text, _ := database.Snapshot().FileText(f)
		return len(text), nil
	}

	snap1 := database.Snapshot()
	memo.Get(snap1, f, equal, compute)

	// Bump the revision via an unrelated file so the memo must re-verify,
	// but the computed value for f is unchanged.
	database.SetFileText(vfs.FileId(2), "unrelated")
	snap2 := database.Snapshot()

	_, changed, err := memo.Get(snap2, f, equal, compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Fatalf("expected structurally-equal recomputation to report unchanged")
	}
}

func TestSnapshotCancellation(t *testing.T) {
	database := New()
	snap := database.Snapshot()
	if err := snap.CheckCancelled(); err != nil {
		t.Fatalf("fresh snapshot should not be cancelled: %v", err)
	}

	database.SetFileText(vfs.FileId(1), "x")
	if err := snap.CheckCancelled(); err != ErrCancelled {
		t.Fatalf("expected ErrCancelled after a mutation, got %v", err)
	}

	fresh := database.Snapshot()
	if err := fresh.CheckCancelled(); err != nil {
		t.Fatalf("a snapshot taken after the mutation should not be cancelled: %v", err)
	}
}
