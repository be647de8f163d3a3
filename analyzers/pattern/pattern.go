// Package pattern is the PATTERN_DISCOVERY analyzer (spec §4.6.1/§9's
// glossary entry for Pattern): it seeds the shared model's
// PatternRegistry with the builtin data-role detectors the data-flow
// analyzer later queries, then records, per CodeNode, which pattern
// names matched its content. Seeding is grounded directly on the
// teacher's marker-list idiom in inspector/repository/detector.go
// (Detector.markers, a flat slice of literal signatures matched
// linearly), generalized from "one marker list for project-root
// detection" to "one registry of regex patterns per data-role tag".
package pattern

import (
	"context"
	"regexp"

	"github.com/viant/codeindex/model"
	"github.com/viant/codeindex/sharedcontext"
)

// Analyzer seeds and applies the builtin pattern registry.
type Analyzer struct{}

// New returns a pattern-discovery analyzer.
func New() *Analyzer { return &Analyzer{} }

func (a *Analyzer) ID() string                 { return "pattern" }
func (a *Analyzer) Phase() sharedcontext.Phase { return sharedcontext.PhasePatternDiscovery }
func (a *Analyzer) DependsOn() []string        { return nil }
func (a *Analyzer) Priority() int              { return 10 }

// Run registers the builtin patterns (idempotent: Register de-dupes) and
// tags every CodeNode whose Content matches a data-role pattern with the
// corresponding metadata flag (spec §4.6.1's structural+lexical hint
// combination), so the data-flow analyzer's role inference has lexical
// evidence to combine with structural evidence via model.Combine.
func (a *Analyzer) Run(ctx context.Context, sc *sharedcontext.Context) error {
	for _, p := range builtinPatterns() {
		sc.RegisterPattern(p)
	}

	for _, node := range sc.Model.CodeNodes {
		if node.Content == "" {
			continue
		}
		if len(sc.FindMatchingPatterns(node.Content, model.PatternTagDataSource)) > 0 {
			node.Metadata[model.MetaIsDataSource] = true
		}
		if len(sc.FindMatchingPatterns(node.Content, model.PatternTagDataSink)) > 0 {
			node.Metadata[model.MetaIsDataSink] = true
		}
		if len(sc.FindMatchingPatterns(node.Content, model.PatternTagDataTransformer)) > 0 {
			node.Metadata[model.MetaIsDataTransformer] = true
		}
		if len(sc.FindMatchingPatterns(node.Content, model.PatternTagDataStore)) > 0 {
			node.Metadata[model.MetaIsDataStore] = true
		}
	}
	return nil
}

// builtinPatterns are the lexical-cue detectors spec §4.6.1 names:
// a function reading from a request/network/file source is a likely
// data_source, one writing a response/file/log is a likely data_sink,
// a store/cache/repository call is a likely data_store, and a
// map/filter/transform/convert call is a likely data_transformer.
func builtinPatterns() []*model.Pattern {
	return []*model.Pattern{
		{
			Type: model.PatternTagDataSource, Name: "http-request-read",
			Regex: regexp.MustCompile(`(?i)\b(http\.Get|ReadFile|Scan|Receive|ReadAll|Decode)\b`),
			Confidence: 0.6,
		},
		{
			Type: model.PatternTagDataSink, Name: "write-or-respond",
			Regex: regexp.MustCompile(`(?i)\b(WriteFile|Write|Respond|Send|Publish|Encode)\b`),
			Confidence: 0.6,
		},
		{
			Type: model.PatternTagDataStore, Name: "repository-or-cache",
			Regex: regexp.MustCompile(`(?i)\b(Repository|Cache|Store|Save|Persist|Query|Insert)\b`),
			Confidence: 0.55,
		},
		{
			Type: model.PatternTagDataTransformer, Name: "map-filter-transform",
			Regex: regexp.MustCompile(`(?i)\b(Map|Filter|Transform|Convert|Parse|Marshal|Unmarshal)\b`),
			Confidence: 0.5,
		},
	}
}
