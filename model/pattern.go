package model

import "regexp"

// Pattern is a named regex-or-heuristic record retrievable by type tag
// (spec §3/§9 glossary). Regex is optional: name-only patterns exist
// purely as registry entries other analyzers can look up by tag+name.
type Pattern struct {
	Type        string
	Name        string
	Description string
	Regex       *regexp.Regexp
	Confidence  float64
	Metadata    map[string]interface{}
}

// Matches reports whether text matches this pattern's regex. A pattern
// with no compiled regex never matches via this path (it exists for
// name-based lookups only).
func (p *Pattern) Matches(text string) bool {
	if p.Regex == nil {
		return false
	}
	return p.Regex.MatchString(text)
}

// PatternRegistry is keyed by type tag; within a tag, patterns are kept
// in registration order so FindMatchingPatterns is deterministic and
// de-duplication (by Type+Name+regex source) is a simple linear scan,
// matching the teacher's small-registry-linear-scan idiom
// (inspector/repository/detector.go's marker list).
type PatternRegistry struct {
	byType map[string][]*Pattern
}

// NewPatternRegistry returns an empty registry.
func NewPatternRegistry() *PatternRegistry {
	return &PatternRegistry{byType: make(map[string][]*Pattern)}
}

// Register adds a pattern under its Type tag, skipping exact duplicates
// (same Type, Name, and regex source, or both nil).
func (r *PatternRegistry) Register(p *Pattern) {
	for _, existing := range r.byType[p.Type] {
		if existing.Name == p.Name && sameRegex(existing.Regex, p.Regex) {
			return
		}
	}
	r.byType[p.Type] = append(r.byType[p.Type], p)
}

func sameRegex(a, b *regexp.Regexp) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.String() == b.String()
}

// FindMatchingPatterns returns every pattern registered under typeTag
// whose regex matches text, in registration order.
func (r *PatternRegistry) FindMatchingPatterns(text, typeTag string) []*Pattern {
	var out []*Pattern
	for _, p := range r.byType[typeTag] {
		if p.Matches(text) {
			out = append(out, p)
		}
	}
	return out
}

// ByType returns every pattern registered under typeTag, in registration
// order, matched or not. Used by analyzers that want the raw list (e.g.
// to report pattern counts) rather than a match test.
func (r *PatternRegistry) ByType(typeTag string) []*Pattern {
	return r.byType[typeTag]
}

// All returns every registered pattern across all type tags, grouped by
// tag, for serialization. The result is the registry's own map, so its
// key order is not defined; persistence sorts the keys itself.
func (r *PatternRegistry) All() map[string][]*Pattern {
	return r.byType
}

// Data-flow role pattern type tags (spec §4.6.1).
const (
	PatternTagDataSource      = "data_source"
	PatternTagDataSink        = "data_sink"
	PatternTagDataTransformer = "data_transformer"
	PatternTagDataStore       = "data_store"
	PatternTagDataTransform   = "data_transformation"
)

// Dependency-analyzer pattern type tags (spec §4.5): the registry holds
// both the curated ecosystem seeds and any patterns the sampling pass
// generalizes from project-specific import/export forms it observes.
const (
	PatternTagImport = "import_pattern"
	PatternTagExport = "export_pattern"
)
