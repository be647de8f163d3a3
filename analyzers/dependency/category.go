package dependency

import (
	"strings"

	"github.com/viant/codeindex/model"
)

// firstSegment returns the leading path/namespace segment of a module
// specifier. Separators are tried in order, "/" first, then "::" (Rust),
// then "." (Java, Python); the first one present splits at its first
// occurrence.
func firstSegment(specifier string) string {
	for _, sep := range []string{"/", "::", "."} {
		if idx := strings.Index(specifier, sep); idx >= 0 {
			return specifier[:idx]
		}
	}
	return specifier
}

// stdlibSegments covers a handful of single-segment standard-library
// top-level names across ecosystems the core ships seeds for; it is
// the heuristic fallback spec §4.5 describes ("short single-segment
// specifiers not found elsewhere"), not an exhaustive classification —
// an unmatched short specifier still falls through to external_package.
var stdlibSegments = map[string]bool{
	"fmt": true, "os": true, "io": true, "strings": true, "strconv": true,
	"context": true, "time": true, "sync": true, "errors": true, "sort": true,
	"net": true, "bytes": true, "bufio": true, "path": true, "regexp": true,
	"reflect": true, "testing": true, "runtime": true, "math": true, "log": true,
	"sys": true, "json": true, "re": true, "collections": true, "itertools": true,
	"stdio": true, "stdlib": true, "string": true, "vector": true, "memory": true,
}

// categorize classifies a module specifier per spec §4.5's ordered
// cascade: relative-starting specifiers are local_file; a specifier
// whose first segment names a top-level directory of the tree is
// internal_module; a specifier the manifest declares is external_package
// (inheriting its version); a short single-segment specifier absent
// from both is standard_library by heuristic; everything else is
// external_package.
func categorize(specifier string, topLevelDirs map[string]bool, manifestDeps map[string]ManifestDependency) (model.Category, string) {
	switch {
	case strings.HasPrefix(specifier, "./"), strings.HasPrefix(specifier, "../"), strings.HasPrefix(specifier, "/"):
		return model.CategoryLocalFile, ""
	}

	seg := firstSegment(specifier)
	if topLevelDirs[seg] {
		return model.CategoryInternalModule, ""
	}
	if md, ok := manifestDeps[specifier]; ok {
		return model.CategoryExternalPackage, md.Version
	}
	if !strings.ContainsAny(specifier, "./:") && stdlibSegments[seg] {
		return model.CategoryStandardLibrary, ""
	}
	return model.CategoryExternalPackage, ""
}
