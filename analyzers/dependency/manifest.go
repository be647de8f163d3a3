// Manifest parsing is grounded directly on
// inspector/repository/detector.go's extractGoModuleName (afs-backed
// read, modfile.Parse, regex fallback if modfile fails), generalized
// from "extract the module's own name" to "extract every required
// dependency and its version".
package dependency

import (
	"context"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/semver"

	"github.com/viant/codeindex/fsadapter"
)

// ManifestDependency is one entry read from go.mod's require block.
type ManifestDependency struct {
	Path     string
	Version  string
	Indirect bool
}

// ReadGoModManifest locates and parses a go.mod at manifestPath through
// fs, returning the module's own path and its declared requirements.
// A missing or unparseable manifest is not an error (spec §7: manifest
// absence just means no manifest-sourced dependencies), it returns a
// nil slice and "".
func ReadGoModManifest(ctx context.Context, fs fsadapter.FileSystem, manifestPath string) (modulePath string, deps []ManifestDependency) {
	content, err := fs.ReadFile(ctx, manifestPath)
	if err != nil {
		return "", nil
	}
	mod, err := modfile.Parse(manifestPath, content, nil)
	if err != nil || mod == nil {
		return "", nil
	}
	modulePath = mod.Module.Mod.Path
	for _, req := range mod.Require {
		version := req.Mod.Version
		if !semver.IsValid(version) {
			version = ""
		}
		deps = append(deps, ManifestDependency{
			Path:     req.Mod.Path,
			Version:  version,
			Indirect: req.Indirect,
		})
	}
	return modulePath, deps
}
