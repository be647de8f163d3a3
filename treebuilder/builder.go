// Package treebuilder walks a root directory through the fsadapter
// collaborator and builds a model.FileTree, computing hashes bottom-up
// and aggregating per-extension counts (spec §4.4). Grounded on
// inspector/repository/asset.go's ReadAssetsRecursively (subfolder
// recursion with a suffix-based skip list), generalized here so every
// file becomes a tree node rather than only non-Go "assets".
package treebuilder

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/viant/codeindex/fsadapter"
	"github.com/viant/codeindex/hashtree"
	"github.com/viant/codeindex/model"
)

// Builder walks a root directory and produces a model.FileTree.
type Builder struct {
	fs       fsadapter.FileSystem
	exclude  []string
	maxDepth int
}

// New returns a Builder reading through fs, honoring the exclude
// (path-substring) list and maxDepth cap from options (0 means
// unlimited).
func New(fs fsadapter.FileSystem, exclude []string, maxDepth int) *Builder {
	return &Builder{fs: fs, exclude: exclude, maxDepth: maxDepth}
}

// Build walks root and returns the assembled tree.
func (b *Builder) Build(ctx context.Context, root string) (*model.FileTree, error) {
	tree := model.NewFileTree(root)
	rootDir, err := b.walk(ctx, tree, root, root, 0)
	if err != nil {
		return nil, err
	}
	tree.AddDirectory(rootDir)
	return tree, nil
}

func (b *Builder) walk(ctx context.Context, tree *model.FileTree, root, dirPath string, depth int) (*model.Directory, error) {
	st, err := b.fs.Stat(ctx, dirPath)
	if err != nil {
		return nil, model.NewIOError(dirPath, err)
	}
	dir := &model.Directory{Path: dirPath, Name: path.Base(dirPath), Created: st.Created, Modified: st.Modified}

	if b.maxDepth > 0 && depth >= b.maxDepth {
		tree.AddDirectory(dir)
		return dir, nil
	}

	names, err := b.fs.ListDirectory(ctx, dirPath)
	if err != nil {
		return nil, model.NewIOError(dirPath, err)
	}

	var childHashes []hashtree.Child
	for _, name := range names {
		childPath := path.Join(dirPath, name)
		rel := b.relativeToRoot(root, childPath)
		if b.excluded(rel) {
			continue
		}
		childStat, err := b.fs.Stat(ctx, childPath)
		if err != nil {
			return nil, model.NewIOError(childPath, err)
		}
		if childStat.IsDirectory {
			childDir, err := b.walk(ctx, tree, root, childPath, depth+1)
			if err != nil {
				return nil, err
			}
			dir.Children = append(dir.Children, childDir.Path)
			childDir.SetParentKey(dirPath)
			tree.AddDirectory(childDir)
			childHashes = append(childHashes, hashtree.Child{Name: name, Hash: childDir.Hash})
			continue
		}

		content, err := b.fs.ReadFile(ctx, childPath)
		if err != nil {
			return nil, model.NewIOError(childPath, err)
		}
		contentHash, err := hashtree.Hash(content)
		if err != nil {
			return nil, err
		}
		file := &model.File{
			Path:      childPath,
			Name:      name,
			Extension: extensionOf(name),
			Size:      childStat.Size,
			Hash:      contentHash,
			Created:   childStat.Created,
			Modified:  childStat.Modified,
			Metadata:  make(map[string]interface{}),
		}
		file.SetParentKey(dirPath)
		tree.AddFile(file)
		dir.Children = append(dir.Children, childPath)
		childHashes = append(childHashes, hashtree.Child{Name: name, Hash: contentHash})
	}

	dir.Hash = hashtree.FoldChildren(childHashes)
	return dir, nil
}

func (b *Builder) excluded(relPath string) bool {
	for _, sub := range b.exclude {
		if sub != "" && strings.Contains(relPath, sub) {
			return true
		}
	}
	return false
}

func (b *Builder) relativeToRoot(root, p string) string {
	if strings.HasPrefix(p, root) {
		rel := strings.TrimPrefix(p[len(root):], "/")
		if rel == "" {
			return path.Base(p)
		}
		return rel
	}
	return p
}

func extensionOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return name[idx+1:]
}

// sortedExtensions returns the tree's extension aggregate keys in sorted
// order, useful for deterministic reporting/tests.
func sortedExtensions(tree *model.FileTree) []string {
	keys := make([]string, 0, len(tree.ExtensionAgg))
	for k := range tree.ExtensionAgg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
