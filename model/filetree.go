package model

import "time"

// File is a leaf in the file tree: one source (or asset) file on disk.
// Content itself is fetched on demand through the shared context's cache,
// not stored here.
type File struct {
	Path         string
	Name         string
	Extension    string
	Size         int64
	Hash         uint64
	Language     string
	Created      time.Time
	Modified     time.Time
	Metadata     map[string]interface{}
	parentKey    string
}

// ParentKey returns the directory path that owns this file, used as a
// lookup key into Model.Directories rather than a back-pointer (spec §9).
func (f *File) ParentKey() string { return f.parentKey }

// SetParentKey is called once by the tree builder while assembling the
// tree; not part of the public mutation surface analyzers use.
func (f *File) SetParentKey(key string) { f.parentKey = key }

// Directory is a node in the file tree with an ordered list of children.
// A directory's Hash is the fold of its children's hashes in Children
// order (spec §4.1); Children order is the order the file-system adapter
// returned entries in, which must be stable across runs on unchanged
// inputs.
type Directory struct {
	Path      string
	Name      string
	Hash      uint64
	Created   time.Time
	Modified  time.Time
	Children  []string // ordered child paths (files or sub-directories)
	parentKey string
}

func (d *Directory) ParentKey() string     { return d.parentKey }
func (d *Directory) SetParentKey(k string) { d.parentKey = k }

// FileTree is the full directory/file tree produced by the tree builder.
// Directories and Files are both keyed by their path so that Directory's
// Children list (and File/Directory's parentKey) can resolve without
// requiring either side to hold a pointer into a shared, growing slice.
type FileTree struct {
	RootPath     string
	Directories  map[string]*Directory
	Files        map[string]*File
	ExtensionAgg map[string]ExtensionStats
	TotalSize    int64
}

// ExtensionStats aggregates file-tree statistics per extension, populated
// by the tree builder while walking.
type ExtensionStats struct {
	Count int
	Size  int64
}

// NewFileTree returns an empty tree rooted at root.
func NewFileTree(root string) *FileTree {
	return &FileTree{
		RootPath:     root,
		Directories:  make(map[string]*Directory),
		Files:        make(map[string]*File),
		ExtensionAgg: make(map[string]ExtensionStats),
	}
}

// AddFile registers a file and folds its size/extension into the tree's
// aggregates. It does not compute hashes or wire parent/child links; the
// tree builder (which knows walk order) owns that.
func (t *FileTree) AddFile(f *File) {
	t.Files[f.Path] = f
	t.TotalSize += f.Size
	stats := t.ExtensionAgg[f.Extension]
	stats.Count++
	stats.Size += f.Size
	t.ExtensionAgg[f.Extension] = stats
}

// AddDirectory registers a directory node.
func (t *FileTree) AddDirectory(d *Directory) {
	t.Directories[d.Path] = d
}

// Walk visits every file path in the tree in a deterministic order: a
// pre-order traversal from the root directory following each directory's
// Children order. This is the "deterministic walk order" spec §5(c)
// requires analyzeFile calls to observe.
func (t *FileTree) Walk(visit func(path string, isDir bool)) {
	root, ok := t.Directories[t.RootPath]
	if !ok {
		return
	}
	t.walkDir(root, visit)
}

func (t *FileTree) walkDir(d *Directory, visit func(path string, isDir bool)) {
	visit(d.Path, true)
	for _, childPath := range d.Children {
		if child, ok := t.Directories[childPath]; ok {
			t.walkDir(child, visit)
			continue
		}
		if _, ok := t.Files[childPath]; ok {
			visit(childPath, false)
		}
	}
}

// OrderedFilePaths returns every file path in the tree's deterministic
// walk order.
func (t *FileTree) OrderedFilePaths() []string {
	var paths []string
	t.Walk(func(path string, isDir bool) {
		if !isDir {
			paths = append(paths, path)
		}
	})
	return paths
}
