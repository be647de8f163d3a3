// Package semantic is a deterministic stand-in for the semantic-analysis
// collaborator hook spec §2/SPEC_FULL.md §3 names as out of core scope:
// rather than leaving the hook point untested, it groups same-file
// sibling functions/methods sharing a name prefix into one low-confidence
// Concept, giving downstream persistence/query code a real, if modest,
// signal to exercise. Grounded on the teacher's package-level grouping
// idiom in analyzer/graph_exporter.go's buildIRGraph (nodes grouped by
// their owning file before edges are drawn).
package semantic

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/viant/codeindex/model"
	"github.com/viant/codeindex/sharedcontext"
)

// Analyzer groups sibling functions/methods by shared name prefix into
// low-confidence Concepts.
type Analyzer struct{}

// New returns the semantic-analysis stub analyzer.
func New() *Analyzer { return &Analyzer{} }

func (a *Analyzer) ID() string                 { return "semantic" }
func (a *Analyzer) Phase() sharedcontext.Phase { return sharedcontext.PhaseSemanticAnalysis }
func (a *Analyzer) DependsOn() []string        { return []string{"structure"} }
func (a *Analyzer) Priority() int              { return 0 }

// Run is a no-op unless Options.SemanticAnalysis is enabled (spec §6).
func (a *Analyzer) Run(ctx context.Context, sc *sharedcontext.Context) error {
	if !sc.Options().SemanticAnalysis {
		return nil
	}

	groups := make(map[string][]string)
	var ids []string
	for id := range sc.Model.CodeNodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		node := sc.Model.CodeNodes[id]
		if node.Kind != model.KindFunction && node.Kind != model.KindMethod {
			continue
		}
		prefix := namePrefix(node.Name)
		if prefix == "" {
			continue
		}
		key := node.FilePath + "#" + prefix
		groups[key] = append(groups[key], id)
	}

	var keys []string
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		members := groups[key]
		if len(members) < 2 {
			continue
		}
		prefix := strings.SplitN(key, "#", 2)[1]
		concept := &model.Concept{
			ID:             fmt.Sprintf("concept:%s", key),
			Name:           prefix,
			Description:    fmt.Sprintf("functions sharing the %q prefix", prefix),
			RelatedNodeIDs: members,
			Confidence:     0.40,
		}
		sc.Model.Concepts = append(sc.Model.Concepts, concept)
	}
	return nil
}

// namePrefix splits a camelCase/PascalCase identifier on its first
// capitalized run and returns the leading lowercase-normalized token,
// e.g. "FetchUser" -> "fetch", "parseConfigFile" -> "parse".
func namePrefix(name string) string {
	if name == "" {
		return ""
	}
	runes := []rune(name)
	end := 1
	for end < len(runes) && !isUpper(runes[end]) {
		end++
	}
	if end < 2 {
		return ""
	}
	return strings.ToLower(string(runes[:end]))
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}
