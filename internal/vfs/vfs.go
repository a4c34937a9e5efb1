// Package vfs defines the opaque file-identity handles assigned to the
// external virtual filesystem: FileId, SourceRootId, and the sum type
// HirFileId that lets downstream IR speak uniformly about "where code
// came from" whether that's a real file or an expanded `#import`. The core
// never opens a file itself; these are value types minted and owned by
// the embedding host (cmd/wgslcheck, or an editor integration).
package vfs

import "fmt"

// FileId is an opaque handle minted by the external VFS. The core treats it
// as a small value type, never dereferencing it directly — all content
// access goes through the query database's `file_text` input (internal/db).
type FileId uint32

func (f FileId) String() string { return fmt.Sprintf("FileId(%d)", uint32(f)) }

// SourceRootId identifies a SourceRoot.
type SourceRootId uint32

// VfsPath is the host-provided path string for a FileId; the core only
// ever displays it, never parses it for semantics beyond extension
// recognition (internal/config.HasSourceExt).
type VfsPath string

// SourceRoot is a group of files. `#import` keys are resolved against the
// custom-imports snippet map, not against the files of a SourceRoot.
type SourceRoot struct {
	ID    SourceRootId
	Files []FileId
}

// HirFileKind tags the two members of the HirFileId sum type.
type HirFileKind int

const (
	HirFileReal HirFileKind = iota
	HirFileImport
)

// ImportId identifies one expanded `#import KEY` substitution site within
// its owning real file. It is local to that file, not globally unique.
type ImportId uint32

// HirFileId is "real file or expanded import". It is the file identity
// every HIR-level query keys off, as opposed to FileId which only ever
// names a real, host-provided file.
type HirFileId struct {
	kind   HirFileKind
	real   FileId
	parent FileId
	imp    ImportId
}

func RealFile(id FileId) HirFileId {
	return HirFileId{kind: HirFileReal, real: id}
}

func ImportedFile(parent FileId, imp ImportId) HirFileId {
	return HirFileId{kind: HirFileImport, parent: parent, imp: imp}
}

func (h HirFileId) IsReal() bool { return h.kind == HirFileReal }

// RealFileId returns the underlying FileId backing this HirFileId — the
// file that owns the text, whether h itself names that file directly or an
// import expanded from it. Every query that ultimately needs source text
// (preprocessing, parsing) dispatches through this.
func (h HirFileId) RealFileId() FileId {
	if h.kind == HirFileReal {
		return h.real
	}
	return h.parent
}

func (h HirFileId) ImportId() (ImportId, bool) {
	if h.kind == HirFileImport {
		return h.imp, true
	}
	return 0, false
}

func (h HirFileId) String() string {
	if h.kind == HirFileReal {
		return fmt.Sprintf("HirFileId::Real(%d)", uint32(h.real))
	}
	return fmt.Sprintf("HirFileId::Import(%d@%d)", uint32(h.imp), uint32(h.parent))
}
