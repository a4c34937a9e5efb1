// Package db implements the query database: memoized derived
// computations over a small set of versioned input slots, plus the
// interners (internal/db.Interner) those derived computations lean on.
//
// A pipeline/processor architecture -- per-request caches threaded
// through a shared context -- generalized from "run once per request" to
// "memoize across edits and invalidate on revision change", the shape an
// editor backend needs that a one-shot batch pass does not.
package db

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/vfs"
)

// Revision is bumped once per atomically-applied input change. Structural
// equality on the new input value against the old one gates whether the
// bump happens at all.
type Revision uint64

// Database owns every input slot, every derived-query memoization cache,
// and every interner. It is single-writer, multiple-reader: mutation
// methods require the caller hold no outstanding Snapshot (the caller's
// responsibility — Go has no static "no other snapshots" check, so
// mutation is left to a single goroutine per convention).
type Database struct {
	mu sync.RWMutex

	revision Revision

	fileText      map[vfs.FileId]string
	filePath      map[vfs.FileId]vfs.VfsPath
	fileRoot      map[vfs.FileId]vfs.SourceRootId
	sourceRoots   map[vfs.SourceRootId]*vfs.SourceRoot
	shaderDefs    map[string]struct{}
	customImports map[string]string

	// cancelGen is bumped whenever the mutator is about to apply a change;
	// outstanding Snapshots compare their captured generation against this
	// to detect they should unwind.
	cancelGen atomic.Uint64

	// memos holds one *Memo[K,V] per named derived query, created lazily
	// by GetMemo. Keyed by a caller-chosen
	// string rather than typed per-field because each layer (syntax,
	// itemtree, hir, nameres, infer) defines its own query shape and this
	// package cannot import any of them without an import cycle.
	memos sync.Map
}

func New() *Database {
	return &Database{
		fileText:      make(map[vfs.FileId]string),
		filePath:      make(map[vfs.FileId]vfs.VfsPath),
		fileRoot:      make(map[vfs.FileId]vfs.SourceRootId),
		sourceRoots:   make(map[vfs.SourceRootId]*vfs.SourceRoot),
		shaderDefs:    make(map[string]struct{}),
		customImports: make(map[string]string),
	}
}

// beginMutation signals cancellation to outstanding snapshots. Call before
// any Set* method does its work.
func (d *Database) beginMutation() {
	d.cancelGen.Add(1)
}

// bump advances the revision counter. Callers must hold d.mu for writing.
func (d *Database) bump() {
	d.revision++
}

// SetFileText sets the text input slot for id. Returns true if the
// revision advanced (i.e. text differs from the previously stored value).
func (d *Database) SetFileText(id vfs.FileId, text string) bool {
	d.beginMutation()
	d.mu.Lock()
	defer d.mu.Unlock()
	if old, ok := d.fileText[id]; ok && old == text {
		return false
	}
	d.fileText[id] = text
	d.bump()
	return true
}

func (d *Database) SetFilePath(id vfs.FileId, path vfs.VfsPath) bool {
	d.beginMutation()
	d.mu.Lock()
	defer d.mu.Unlock()
	if old, ok := d.filePath[id]; ok && old == path {
		return false
	}
	d.filePath[id] = path
	d.bump()
	return true
}

func (d *Database) SetFileSourceRoot(id vfs.FileId, root vfs.SourceRootId) bool {
	d.beginMutation()
	d.mu.Lock()
	defer d.mu.Unlock()
	if old, ok := d.fileRoot[id]; ok && old == root {
		return false
	}
	d.fileRoot[id] = root
	d.bump()
	return true
}

func (d *Database) SetSourceRoot(root *vfs.SourceRoot) bool {
	d.beginMutation()
	d.mu.Lock()
	defer d.mu.Unlock()
	if old, ok := d.sourceRoots[root.ID]; ok && reflect.DeepEqual(old, root) {
		return false
	}
	d.sourceRoots[root.ID] = root
	d.bump()
	return true
}

// SetShaderDefs replaces the active `shader_defs` input. Order does not
// matter for equality: the set is compared structurally.
func (d *Database) SetShaderDefs(defs map[string]struct{}) bool {
	d.beginMutation()
	d.mu.Lock()
	defer d.mu.Unlock()
	if defs == nil {
		defs = map[string]struct{}{}
	}
	if reflect.DeepEqual(d.shaderDefs, defs) {
		return false
	}
	d.shaderDefs = defs
	d.bump()
	return true
}

func (d *Database) SetCustomImports(imports map[string]string) bool {
	d.beginMutation()
	d.mu.Lock()
	defer d.mu.Unlock()
	if imports == nil {
		imports = map[string]string{}
	}
	if reflect.DeepEqual(d.customImports, imports) {
		return false
	}
	d.customImports = imports
	d.bump()
	return true
}

// Revision returns the current revision counter.
func (d *Database) Revision() Revision {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.revision
}
