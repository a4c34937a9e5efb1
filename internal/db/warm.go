package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/vfs"
)

// warmConcurrency bounds how many files a single WarmRoot call analyzes at
// once, so a large SourceRoot can't spawn one goroutine per file.
const warmConcurrency = 8

// WarmRoot runs warm concurrently over every file in root, stopping at the
// first error and honoring cancellation the moment the database starts a
// new mutation -- an IDE adapter calls this right after opening a project
// to pre-populate per-file derived queries (syntax trees, item trees,
// inference results) before the user looks at any one of them.
func (s *Snapshot) WarmRoot(ctx context.Context, root vfs.SourceRootId, warm func(context.Context, vfs.FileId) error) error {
	files := s.FilesInRoot(root)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(warmConcurrency)
	for _, id := range files {
		id := id
		g.Go(func() error {
			if err := s.CheckCancelled(); err != nil {
				return err
			}
			return warm(gctx, id)
		})
	}
	return g.Wait()
}

// DumpID is a stable correlation id for one Snapshot, so multiple debug
// dumps (e.g. internal/ide.DumpSyntaxTree calls) taken against the same
// snapshot can be tied together in logs without the snapshot itself caring
// who is asking.
func (s *Snapshot) DumpID() string {
	seed := fmt.Sprintf("%d/%d", s.revision, s.cancelGen)
	return uuid.NewSHA1(dumpNamespace, []byte(seed)).String()
}

var dumpNamespace = uuid.NameSpaceOID
