// Package relationship is the relationship-mapping analyzer (spec
// §4.9): it derives typed directed edges between CodeNodes — contains,
// extends, implements, calls — from the tree already assembled by the
// structure analyzer. Edge construction here is grounded directly on
// the teacher's buildIRGraph in analyzer/graph_exporter.go (one
// IREdge per related pair, Type carrying the relation kind,
// Properties carrying everything else), adapted from "one graph export
// pass over a PackageModel" to "one pass per phase over the shared
// model.CodeNodes".
package relationship

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/viant/codeindex/model"
	"github.com/viant/codeindex/sharedcontext"
)

// Analyzer derives Relationship edges from the CodeNode tree.
type Analyzer struct{}

// New returns a relationship-mapping analyzer.
func New() *Analyzer { return &Analyzer{} }

func (a *Analyzer) ID() string                 { return "relationship" }
func (a *Analyzer) Phase() sharedcontext.Phase { return sharedcontext.PhaseRelationshipMapping }
func (a *Analyzer) DependsOn() []string        { return []string{"dependency"} }
func (a *Analyzer) Priority() int              { return 0 }

// Run emits, in order: a "contains" relationship for every parent/child
// CodeNode pair; "extends"/"implements" relationships for every
// class/interface naming a supertype in its metadata; a "calls"
// relationship from a function/method node to any other function/method
// node in the same file whose name appears as a bare token in the
// caller's content snippet (spec §4.9's lexical-cue heuristic); and an
// "imports" relationship from a file's module node for each import the
// dependency graph resolved to a local file present in the model, which
// is why this analyzer depends on analyzers/dependency having already
// populated Model.Dependencies. No "exports" relationships are emitted.
// Every relationship except "contains" carries in its "context" metadata
// the textual fragment it was derived from (spec §4.9), feeding the
// data-flow analyzer's own lexical-cue heuristics. Node/edge ids are
// built deterministically from CodeNode ids, so re-running this
// analyzer over an unchanged model emits the same relationships with the
// same ids again; they are appended to Relationships, not deduplicated.
func (a *Analyzer) Run(ctx context.Context, sc *sharedcontext.Context) error {
	nodes := sc.Model.CodeNodes

	var ids []string
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var rels []*model.Relationship
	callable := callableNodesByFile(nodes, ids)

	for _, id := range ids {
		node := nodes[id]
		for _, childID := range node.Children {
			if _, ok := nodes[childID]; !ok {
				continue
			}
			rels = append(rels, model.NewRelationship(relID(model.RelContains, id, childID), model.RelContains, id, childID))
		}

		if extends := node.MetaString(model.MetaExtends); extends != "" {
			if targetID, ok := resolveTypeName(nodes, extends); ok {
				rel := model.NewRelationship(relID(model.RelExtends, id, targetID), model.RelExtends, id, targetID)
				rel.Metadata["context"] = extends
				rels = append(rels, rel)
			}
		}
		if implements, ok := node.Metadata[model.MetaImplements].([]string); ok {
			for _, iface := range implements {
				if targetID, ok := resolveTypeName(nodes, iface); ok {
					rel := model.NewRelationship(relID(model.RelImplements, id, targetID), model.RelImplements, id, targetID)
					rel.Metadata["context"] = iface
					rels = append(rels, rel)
				}
			}
		}

		if node.Kind != model.KindFunction && node.Kind != model.KindMethod {
			continue
		}
		for _, candidateID := range callable[node.FilePath] {
			if candidateID == id {
				continue
			}
			callee := nodes[candidateID]
			if containsToken(node.Content, callee.Name) {
				rel := model.NewRelationship(relID(model.RelCalls, id, candidateID), model.RelCalls, id, candidateID)
				rel.Metadata["context"] = callee.Name
				rels = append(rels, rel)
			}
		}
	}

	for _, imp := range sc.Model.Dependencies.Imports {
		fileNodeID := imp.SourceFileID
		if _, ok := nodes[fileNodeID]; !ok {
			continue
		}
		// Only resolved local_file imports name another code node (the
		// importing file's own module node, or one the structure analyzer
		// synthesized for an unparsed file); an external/internal/stdlib
		// specifier has no corresponding node in this tree, so emitting an
		// edge to it would break referential-integrity invariant 1 (spec
		// §8) and is skipped rather than pointed at a raw specifier string.
		targetID := imp.ResolvedPath
		if targetID == "" {
			continue
		}
		if _, ok := nodes[targetID]; !ok {
			continue
		}
		rel := model.NewRelationship(relID(model.RelImports, fileNodeID, targetID), model.RelImports, fileNodeID, targetID)
		rel.Metadata["context"] = imp.ModuleSpecifier
		rel.Confidence = imp.Confidence
		rels = append(rels, rel)
	}

	sc.Model.Relationships = append(sc.Model.Relationships, rels...)
	return nil
}

// callableNodesByFile groups function/method node ids by their owning
// file path, in the same sorted order ids were produced, so the calls
// heuristic below only ever considers candidates within one file.
func callableNodesByFile(nodes map[string]*model.CodeNode, sortedIDs []string) map[string][]string {
	byFile := make(map[string][]string)
	for _, id := range sortedIDs {
		n := nodes[id]
		if n.Kind == model.KindFunction || n.Kind == model.KindMethod {
			byFile[n.FilePath] = append(byFile[n.FilePath], id)
		}
	}
	return byFile
}

// containsToken reports whether name appears in content as a standalone
// identifier token (not as a substring of a longer identifier).
func containsToken(content, name string) bool {
	if name == "" {
		return false
	}
	pattern := `\b` + regexp.QuoteMeta(name) + `\b`
	matched, err := regexp.MatchString(pattern, content)
	return err == nil && matched
}

func relID(kind model.RelationType, source, target string) string {
	return fmt.Sprintf("%s:%s->%s", kind, source, target)
}

// resolveTypeName finds a class/interface node by simple name. Linear
// scan over nodes, same scale as the teacher's buildIRGraph pass over
// model.Idents — relationship mapping runs once per file tree, not per
// file, so this stays cheap even on large repos.
func resolveTypeName(nodes map[string]*model.CodeNode, name string) (string, bool) {
	for id, n := range nodes {
		if (n.Kind == model.KindClass || n.Kind == model.KindInterface) && n.Name == name {
			return id, true
		}
	}
	return "", false
}
