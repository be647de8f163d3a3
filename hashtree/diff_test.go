package hashtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/codeindex/model"
)

func treeWith(root string, files map[string]uint64) *model.FileTree {
	t := model.NewFileTree(root)
	dir := &model.Directory{Path: root, Name: root}
	for path, hash := range files {
		t.AddFile(&model.File{Path: path, Hash: hash})
		dir.Children = append(dir.Children, path)
	}
	t.AddDirectory(dir)
	return t
}

func TestCompareTreesAddedModifiedDeleted(t *testing.T) {
	oldTree := treeWith("/r", map[string]uint64{
		"/r/a.go": 1,
		"/r/b.go": 2,
	})
	newTree := treeWith("/r", map[string]uint64{
		"/r/a.go": 1, // unchanged
		"/r/b.go": 9, // modified
		"/r/c.go": 3, // added
	})

	diff := CompareTrees(oldTree, newTree)
	assert.ElementsMatch(t, []string{"/r/c.go"}, diff.Added)
	assert.ElementsMatch(t, []string{"/r/b.go"}, diff.Modified)
	assert.Empty(t, diff.Deleted)

	// now diff the reverse direction to exercise deletion
	reverse := CompareTrees(newTree, oldTree)
	assert.ElementsMatch(t, []string{"/r/b.go"}, reverse.Modified)
	assert.ElementsMatch(t, []string{"/r/c.go"}, reverse.Deleted)
	assert.Empty(t, reverse.Added)
}

func TestCompareTreesEmptyRoot(t *testing.T) {
	empty := model.NewFileTree("/r")
	empty.AddDirectory(&model.Directory{Path: "/r", Name: "r"})
	diff := CompareTrees(empty, empty)
	assert.Empty(t, diff.Added)
	assert.Empty(t, diff.Modified)
	assert.Empty(t, diff.Deleted)
}
