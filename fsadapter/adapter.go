// Package fsadapter defines the file-system collaborator the core
// consumes (spec §6) and provides a real implementation backed by
// github.com/viant/afs, the teacher's own filesystem abstraction
// (analyzer/package.go, inspector/repository/detector.go).
package fsadapter

import (
	"context"
	"time"
)

// Stat describes a path without reading its content.
type Stat struct {
	Size       int64
	Created    time.Time
	Modified   time.Time
	IsDirectory bool
}

// FileSystem is the only filesystem surface the core touches (spec §6):
// list a directory's entries in a stable order, stat a path, and read a
// file's bytes. Parsers, persistence, and anything else in the pipeline
// go through this, never through os/io directly, so the core stays
// testable against an in-memory fake.
type FileSystem interface {
	ListDirectory(ctx context.Context, path string) ([]string, error)
	Stat(ctx context.Context, path string) (Stat, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
}
