package db

import (
	"errors"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/vfs"
)

// ErrCancelled is returned by Snapshot.CheckCancelled once the owning
// Database has begun a mutation. Callers must treat it as retryable, not
// fatal.
var ErrCancelled = errors.New("db: query cancelled")

// Snapshot is a per-reader handle that records the Database's revision and
// cancellation generation at the time it was taken. Many snapshots may
// coexist and each is safe to use from its own goroutine. Its accessors
// read the Database's current inputs under the read lock and do not copy
// them, so a mutation applied after the Snapshot was taken is visible
// through it; CheckCancelled reports whether such a mutation has begun.
type Snapshot struct {
	db        *Database
	revision  Revision
	cancelGen uint64
}

// Snapshot takes a read handle recording the database's current revision.
func (d *Database) Snapshot() *Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return &Snapshot{db: d, revision: d.revision, cancelGen: d.cancelGen.Load()}
}

func (s *Snapshot) Revision() Revision { return s.revision }

// CheckCancelled polls the cooperative-cancellation flag. Query
// implementations call this at dependency-fetch boundaries — the moment
// they are about to read another input or derived slot — so a long-running
// query unwinds promptly once the mutator signals a pending change (spec
// §5). It never blocks.
func (s *Snapshot) CheckCancelled() error {
	if s.db.cancelGen.Load() != s.cancelGen {
		return ErrCancelled
	}
	return nil
}

func (s *Snapshot) FileText(id vfs.FileId) (string, bool) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	text, ok := s.db.fileText[id]
	return text, ok
}

func (s *Snapshot) FilePath(id vfs.FileId) (vfs.VfsPath, bool) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	p, ok := s.db.filePath[id]
	return p, ok
}

func (s *Snapshot) FileSourceRoot(id vfs.FileId) (vfs.SourceRootId, bool) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	r, ok := s.db.fileRoot[id]
	return r, ok
}

func (s *Snapshot) SourceRoot(id vfs.SourceRootId) (*vfs.SourceRoot, bool) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	r, ok := s.db.sourceRoots[id]
	return r, ok
}

// ShaderDefs returns the active `#ifdef` flag set.
func (s *Snapshot) ShaderDefs() map[string]struct{} {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	out := make(map[string]struct{}, len(s.db.shaderDefs))
	for k := range s.db.shaderDefs {
		out[k] = struct{}{}
	}
	return out
}

func (s *Snapshot) CustomImports() map[string]string {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	out := make(map[string]string, len(s.db.customImports))
	for k, v := range s.db.customImports {
		out[k] = v
	}
	return out
}

// FilesInRoot returns a copy of a SourceRoot's file list, or nil if the
// root is unknown. WarmRoot uses it to enumerate the files it warms.
func (s *Snapshot) FilesInRoot(root vfs.SourceRootId) []vfs.FileId {
	r, ok := s.SourceRoot(root)
	if !ok {
		return nil
	}
	return append([]vfs.FileId{}, r.Files...)
}
