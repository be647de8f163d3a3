package fsadapter

import (
	"context"
	"path"
	"sort"
	"time"

	"github.com/viant/codeindex/model"
)

// MemoryFS is an in-memory FileSystem used by tests and the worked
// examples, keeping the engine testable without touching disk (spec §1
// treats the filesystem adapter as an external collaborator; this is
// the simplest conforming implementation).
type MemoryFS struct {
	files map[string][]byte
	mod   time.Time
}

// NewMemoryFS returns an empty in-memory filesystem rooted wherever the
// caller's paths start.
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{files: make(map[string][]byte), mod: time.Now()}
}

// Put registers a file's content at path, creating any implied parent
// directories for ListDirectory to discover.
func (m *MemoryFS) Put(filePath string, content []byte) {
	m.files[filePath] = content
}

func (m *MemoryFS) ListDirectory(ctx context.Context, dir string) ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for filePath := range m.files {
		rel, ok := relativeChild(dir, filePath)
		if !ok {
			continue
		}
		if !seen[rel] {
			seen[rel] = true
			names = append(names, rel)
		}
	}
	sort.Strings(names)
	return names, nil
}

// relativeChild returns the immediate child name of dir that is an
// ancestor of (or equal to) filePath, e.g. relativeChild("/r", "/r/a/b.go") == "a".
func relativeChild(dir, filePath string) (string, bool) {
	dir = path.Clean(dir)
	filePath = path.Clean(filePath)
	if dir == filePath {
		return "", false
	}
	prefix := dir + "/"
	if len(filePath) <= len(prefix) || filePath[:len(prefix)] != prefix {
		return "", false
	}
	rest := filePath[len(prefix):]
	for i := 0; i < len(rest); i++ {
		if rest[i] == '/' {
			return rest[:i], true
		}
	}
	return rest, true
}

func (m *MemoryFS) Stat(ctx context.Context, filePath string) (Stat, error) {
	filePath = path.Clean(filePath)
	if content, ok := m.files[filePath]; ok {
		return Stat{Size: int64(len(content)), Created: m.mod, Modified: m.mod}, nil
	}
	// directories aren't stored explicitly; treat any prefix of a known
	// file as an existing directory.
	prefix := filePath + "/"
	for known := range m.files {
		if len(known) > len(prefix) && known[:len(prefix)] == prefix {
			return Stat{IsDirectory: true, Created: m.mod, Modified: m.mod}, nil
		}
	}
	return Stat{}, model.NewIOError(filePath, errNotFound)
}

func (m *MemoryFS) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	filePath = path.Clean(filePath)
	content, ok := m.files[filePath]
	if !ok {
		return nil, model.NewIOError(filePath, errNotFound)
	}
	return content, nil
}

var errNotFound = notFoundErr{}

type notFoundErr struct{}

func (notFoundErr) Error() string { return "not found" }
