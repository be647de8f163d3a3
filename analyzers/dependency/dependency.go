// Package dependency is the dependency-discovery/resolution analyzer
// (spec §4.5): a two-phase, pattern-driven, ecosystem-agnostic
// extractor. It seeds a registry of import/export regexes spanning
// several source ecosystems, samples a stratified subset of the tree to
// generalize project-specific forms the seeds miss, applies the full
// registry to every file, upserts the resulting evidence into
// sc.Model.Dependencies, classifies each specifier's Category, and
// resolves local_file specifiers against the tree. Grounded on the
// teacher's per-language inspector split (inspector/golang,
// inspector/java, inspector/jsx) generalized from "one inspector per
// supported language" to "one seed pattern per ecosystem, applied
// uniformly" — the analyzer itself never branches on file.Language.
package dependency

import (
	"context"
	"strings"

	"github.com/viant/codeindex/model"
	"github.com/viant/codeindex/sharedcontext"
)

// Analyzer discovers manifest-declared dependencies and per-file import
// and export statements, folding both into sc.Model.Dependencies (spec
// §4.5).
type Analyzer struct {
	// ManifestPath is the go.mod to probe at INITIALIZATION-equivalent
	// time (spec §9's resolved Open Question: manifest discovery is
	// synchronous, run once, before any file's imports are scanned).
	ManifestPath string
}

// New returns a dependency analyzer probing manifestPath for a go.mod.
func New(manifestPath string) *Analyzer {
	return &Analyzer{ManifestPath: manifestPath}
}

func (a *Analyzer) ID() string                 { return "dependency" }
func (a *Analyzer) Phase() sharedcontext.Phase { return sharedcontext.PhaseFileAnalysis }
func (a *Analyzer) DependsOn() []string        { return []string{"language"} }
func (a *Analyzer) Priority() int              { return 0 }

// Run executes the full spec §4.5 pipeline: manifest read, pattern
// seeding, stratified sampling with generalization, application across
// every file, category inference, and local resolution.
func (a *Analyzer) Run(ctx context.Context, sc *sharedcontext.Context) error {
	modulePath, manifestDeps := ReadGoModManifest(ctx, sc.FS, a.ManifestPath)
	manifestByPath := make(map[string]ManifestDependency, len(manifestDeps))
	for _, md := range manifestDeps {
		manifestByPath[md.Path] = md
		dep, ok := sc.Model.Dependencies.Dependencies[md.Path]
		if !ok {
			dep = model.NewDependency(md.Path, model.CategoryExternalPackage)
			sc.Model.Dependencies.Dependencies[md.Path] = dep
		}
		dep.Version = md.Version
		dep.Confidence = 1.0
	}

	for _, p := range seedImportPatterns() {
		sc.RegisterPattern(p)
	}
	for _, p := range seedExportPatterns() {
		sc.RegisterPattern(p)
	}
	mineGeneralizedImportPatterns(ctx, sc, stratifiedSample(sc.Model.FileTree))

	tree := sc.Model.FileTree
	topLevelDirs := topLevelDirNames(tree)

	for _, imp := range applyImportPatterns(ctx, sc) {
		category, version := categorize(imp.ModuleSpecifier, topLevelDirs, manifestByPath)
		imp.Category = category
		if category == model.CategoryLocalFile {
			imp.ResolvedPath = resolveLocal(tree, imp.SourceFileID, imp.ModuleSpecifier)
		}
		if modulePath != "" && (imp.ModuleSpecifier == modulePath || strings.HasPrefix(imp.ModuleSpecifier, modulePath+"/")) {
			imp.Category = model.CategoryInternalModule
		}

		sc.Model.Dependencies.Imports = append(sc.Model.Dependencies.Imports, imp)
		dep := sc.Model.Dependencies.Upsert(imp)
		if version != "" {
			dep.Version = version
		}
		if imp.Category == model.CategoryInternalModule {
			dep.Category = model.CategoryInternalModule
		}
	}

	sc.Model.Dependencies.Exports = append(sc.Model.Dependencies.Exports, applyExportPatterns(ctx, sc)...)
	return nil
}
