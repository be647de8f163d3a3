package dependency

import (
	"path"

	"github.com/viant/codeindex/model"
)

// sourceExtensions is the small set of common source extensions tried,
// in order, when resolving an extension-less local specifier (spec
// §4.5: "trying exact match, then a small set of common source
// extensions, then the directory-with-index convention").
var sourceExtensions = []string{
	".go", ".js", ".jsx", ".ts", ".tsx", ".py", ".rb", ".rs",
	".java", ".c", ".h", ".cc", ".cpp", ".cs", ".kt", ".swift", ".php",
}

// indexBaseNames are the per-ecosystem "this directory, as a module"
// conventions: Node's index.js, Python's __init__.py, and a generic
// "mod" fallback for ecosystems without one.
var indexBaseNames = []string{"index", "__init__", "mod"}

// resolveLocal implements spec §4.5's local-resolution cascade for a
// local_file specifier: resolve relative to the importing file's own
// directory, trying an exact match, then common source extensions, then
// the directory/index convention. Returns "" (leaving ResolvedPath
// unset, per spec §4.5's failure semantics) if nothing in the tree
// matches.
func resolveLocal(tree *model.FileTree, fromFilePath, specifier string) string {
	dir := path.Dir(fromFilePath)
	base := path.Clean(path.Join(dir, specifier))

	if _, ok := tree.Files[base]; ok {
		return base
	}
	for _, ext := range sourceExtensions {
		if _, ok := tree.Files[base+ext]; ok {
			return base + ext
		}
	}
	for _, name := range indexBaseNames {
		for _, ext := range sourceExtensions {
			candidate := path.Join(base, name+ext)
			if _, ok := tree.Files[candidate]; ok {
				return candidate
			}
		}
	}
	return ""
}

// topLevelDirNames returns the base names of the file tree's
// direct subdirectories of root, the set spec §4.5 checks a
// specifier's first segment against for internal_module
// classification.
func topLevelDirNames(tree *model.FileTree) map[string]bool {
	names := make(map[string]bool)
	root, ok := tree.Directories[tree.RootPath]
	if !ok {
		return names
	}
	for _, childPath := range root.Children {
		if d, ok := tree.Directories[childPath]; ok {
			names[d.Name] = true
		}
	}
	return names
}
