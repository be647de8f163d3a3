package hashtree

import "github.com/viant/codeindex/model"

// TreeDiff is the result of comparing two file trees by path and hash
// (spec §4.1). Directories never appear here; their changes are
// summarized by the files they contain.
type TreeDiff struct {
	Added    []string
	Modified []string
	Deleted  []string
}

// CompareTrees walks both trees by path, comparing file hashes. A path
// present in both with an identical hash is unchanged and omitted;
// paths present only in one tree are Added or Deleted; paths present in
// both with different hashes are Modified.
func CompareTrees(oldTree, newTree *model.FileTree) TreeDiff {
	var diff TreeDiff
	if oldTree == nil && newTree == nil {
		return diff
	}
	if oldTree == nil {
		for _, path := range newTree.OrderedFilePaths() {
			diff.Added = append(diff.Added, path)
		}
		return diff
	}
	if newTree == nil {
		for _, path := range oldTree.OrderedFilePaths() {
			diff.Deleted = append(diff.Deleted, path)
		}
		return diff
	}

	for _, path := range newTree.OrderedFilePaths() {
		newFile := newTree.Files[path]
		oldFile, existed := oldTree.Files[path]
		switch {
		case !existed:
			diff.Added = append(diff.Added, path)
		case oldFile.Hash != newFile.Hash:
			diff.Modified = append(diff.Modified, path)
		}
	}
	for _, path := range oldTree.OrderedFilePaths() {
		if _, stillExists := newTree.Files[path]; !stillExists {
			diff.Deleted = append(diff.Deleted, path)
		}
	}
	return diff
}
