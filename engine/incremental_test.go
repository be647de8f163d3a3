package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/codeindex/model"
)

func treeWithFiles(root string, files map[string]uint64) *model.FileTree {
	t := model.NewFileTree(root)
	rootDir := &model.Directory{Path: root, Name: root}
	for path, hash := range files {
		f := &model.File{Path: path, Hash: hash}
		t.AddFile(f)
		rootDir.Children = append(rootDir.Children, path)
	}
	t.AddDirectory(rootDir)
	return t
}

func TestUpdateRemovesStaleCodeNodesAndRelationships(t *testing.T) {
	oldTree := treeWithFiles("/r", map[string]uint64{"/r/a.go": 1, "/r/b.go": 2})
	newTree := treeWithFiles("/r", map[string]uint64{"/r/a.go": 1, "/r/b.go": 99})

	m := model.New("/r", model.DefaultOptions())
	m.CodeNodes["na"] = &model.CodeNode{ID: "na", FilePath: "/r/a.go"}
	m.CodeNodes["nb"] = &model.CodeNode{ID: "nb", FilePath: "/r/b.go"}
	m.Relationships = append(m.Relationships, &model.Relationship{ID: "r1", SourceID: "na", TargetID: "nb"})

	cs := Update(context.Background(), m, oldTree, newTree)

	assert.True(t, cs.Stale())
	assert.Contains(t, cs.Modified, "/r/b.go")
	assert.Contains(t, m.CodeNodes, "na")
	assert.NotContains(t, m.CodeNodes, "nb")
	assert.Empty(t, m.Relationships)
}

func TestUpdateNoChangesIsNotStale(t *testing.T) {
	oldTree := treeWithFiles("/r", map[string]uint64{"/r/a.go": 1})
	newTree := treeWithFiles("/r", map[string]uint64{"/r/a.go": 1})
	m := model.New("/r", model.DefaultOptions())

	cs := Update(context.Background(), m, oldTree, newTree)
	assert.False(t, cs.Stale())
}
