package model

// Category classifies a module specifier (spec §4.5).
type Category string

const (
	CategoryLocalFile        Category = "local_file"
	CategoryInternalModule   Category = "internal_module"
	CategoryExternalPackage  Category = "external_package"
	CategoryStandardLibrary  Category = "standard_library"
	CategoryLanguageCore     Category = "language_core"
)

// Dependency is one upserted record per module specifier, accumulated
// across every import that names it.
type Dependency struct {
	Name            string
	Category        Category
	ImportCount     int
	ImportedSymbols map[string]int
	ImportingFiles  map[string]bool
	Version         string
	Confidence      float64
}

// NewDependency returns a zeroed dependency record for specifier name.
func NewDependency(name string, category Category) *Dependency {
	return &Dependency{
		Name:            name,
		Category:        category,
		ImportedSymbols: make(map[string]int),
		ImportingFiles:  make(map[string]bool),
	}
}

// Upsert folds one import statement's evidence into the dependency
// record: increments ImportCount, records the importing file, bumps
// imported-symbol counts, and updates Confidence as a moving average of
// statement confidences (spec §4.5).
func (d *Dependency) Upsert(filePath string, symbols []string, statementConfidence float64) {
	prevCount := d.ImportCount
	d.ImportCount++
	d.ImportingFiles[filePath] = true
	for _, s := range symbols {
		d.ImportedSymbols[s]++
	}
	if prevCount == 0 {
		d.Confidence = statementConfidence
		return
	}
	d.Confidence = (d.Confidence*float64(prevCount) + statementConfidence) / float64(d.ImportCount)
}

// ImportStatement records one import found in one file.
type ImportStatement struct {
	SourceFileID   string
	Line           int
	ModuleSpecifier string
	ImportedSymbols []string
	ResolvedPath   string
	Category       Category
	Confidence     float64
}

// ExportStatement records one export found in one file.
type ExportStatement struct {
	SourceFileID string
	Line         int
	NamedExports []string
	DefaultExport string
	Confidence   float64
}

// DependencyGraph is the full set of import/export evidence gathered for
// a run: the upserted dependency records keyed by module specifier, plus
// the flat statement lists spec §3 describes.
type DependencyGraph struct {
	Dependencies map[string]*Dependency
	Imports      []*ImportStatement
	Exports      []*ExportStatement
}

// NewDependencyGraph returns an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{Dependencies: make(map[string]*Dependency)}
}

// Upsert records an import statement and folds it into (creating if
// necessary) the Dependency for its module specifier.
func (g *DependencyGraph) Upsert(imp *ImportStatement) *Dependency {
	dep, ok := g.Dependencies[imp.ModuleSpecifier]
	if !ok {
		dep = NewDependency(imp.ModuleSpecifier, imp.Category)
		g.Dependencies[imp.ModuleSpecifier] = dep
	}
	dep.Upsert(imp.SourceFileID, imp.ImportedSymbols, imp.Confidence)
	return dep
}
