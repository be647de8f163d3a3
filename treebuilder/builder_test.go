package treebuilder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/codeindex/fsadapter"
)

func TestBuildSimpleTree(t *testing.T) {
	fs := fsadapter.NewMemoryFS()
	fs.Put("/r/a.go", []byte("package main\nfunc main(){}\n"))
	fs.Put("/r/sub/b.go", []byte("package sub\n"))

	b := New(fs, nil, 0)
	tree, err := b.Build(context.Background(), "/r")
	assert.NoError(t, err)

	assert.Len(t, tree.Files, 2)
	assert.Contains(t, tree.Files, "/r/a.go")
	assert.Contains(t, tree.Files, "/r/sub/b.go")
	assert.Equal(t, int64(len("package main\nfunc main(){}\n")+len("package sub\n")), tree.TotalSize)

	root := tree.Directories["/r"]
	assert.NotNil(t, root)
	assert.NotZero(t, root.Hash)

	paths := tree.OrderedFilePaths()
	assert.ElementsMatch(t, []string{"/r/a.go", "/r/sub/b.go"}, paths)
}

func TestBuildExcludesSubstring(t *testing.T) {
	fs := fsadapter.NewMemoryFS()
	fs.Put("/r/a.go", []byte("x"))
	fs.Put("/r/vendor/dep.go", []byte("y"))

	b := New(fs, []string{"vendor"}, 0)
	tree, err := b.Build(context.Background(), "/r")
	assert.NoError(t, err)
	assert.Len(t, tree.Files, 1)
	assert.Contains(t, tree.Files, "/r/a.go")
}

func TestBuildDeterministicHash(t *testing.T) {
	fs := fsadapter.NewMemoryFS()
	fs.Put("/r/a.go", []byte("x"))
	fs.Put("/r/b.go", []byte("y"))

	b := New(fs, nil, 0)
	t1, err := b.Build(context.Background(), "/r")
	assert.NoError(t, err)
	t2, err := b.Build(context.Background(), "/r")
	assert.NoError(t, err)
	assert.Equal(t, t1.Directories["/r"].Hash, t2.Directories["/r"].Hash)
}
