package engine

import (
	"context"

	"github.com/viant/codeindex/hashtree"
	"github.com/viant/codeindex/model"
)

// ChangeSet is the outcome of comparing a tree snapshot against the
// filesystem's current state, scoping an incremental run to only the
// files that changed (spec §4.3's incremental mode).
type ChangeSet struct {
	hashtree.TreeDiff
}

// Stale reports whether re-analysis is needed at all.
func (c ChangeSet) Stale() bool {
	return len(c.Added) > 0 || len(c.Modified) > 0 || len(c.Deleted) > 0
}

// Update compares oldTree against newTree and removes every code node
// whose FilePath is in the deleted/modified set, every relationship and
// every data-flow node left pointing at a removed code node, every flow
// touching a removed data-flow node, and every import/export statement
// whose SourceFileID is in that set. DataFlow.Paths and the
// Dependencies map are left as they are. It returns the
// resulting ChangeSet so FILE_ANALYSIS onward can be re-run scoped to
// Added ∪ Modified only (spec §4.3, §9). Analyzers still run in their
// normal phase order; Update only narrows their input, it never
// replaces Orchestrator.Run.
func Update(_ context.Context, m *model.Model, oldTree, newTree *model.FileTree) ChangeSet {
	diff := hashtree.CompareTrees(oldTree, newTree)
	cs := ChangeSet{TreeDiff: diff}

	stale := make(map[string]bool, len(diff.Modified)+len(diff.Deleted))
	for _, p := range diff.Modified {
		stale[p] = true
	}
	for _, p := range diff.Deleted {
		stale[p] = true
	}
	if len(stale) == 0 {
		m.FileTree = newTree
		return cs
	}

	for id, node := range m.CodeNodes {
		if stale[node.FilePath] {
			delete(m.CodeNodes, id)
		}
	}
	for id, dn := range m.DataFlow.Nodes {
		if _, ok := m.CodeNodes[dn.NodeID]; dn.NodeID != "" && !ok {
			delete(m.DataFlow.Nodes, id)
		}
	}
	var keptFlows []*model.DataFlow
	for _, f := range m.DataFlow.Flows {
		if m.DataFlow.Nodes[f.SourceDataNodeID] != nil && m.DataFlow.Nodes[f.TargetDataNodeID] != nil {
			keptFlows = append(keptFlows, f)
		}
	}
	m.DataFlow.Flows = keptFlows

	var keptRel []*model.Relationship
	for _, rel := range m.Relationships {
		if staleRelationship(rel, m.CodeNodes) {
			continue
		}
		keptRel = append(keptRel, rel)
	}
	m.Relationships = keptRel

	var keptImports []*model.ImportStatement
	for _, imp := range m.Dependencies.Imports {
		if stale[imp.SourceFileID] {
			continue
		}
		keptImports = append(keptImports, imp)
	}
	m.Dependencies.Imports = keptImports

	var keptExports []*model.ExportStatement
	for _, exp := range m.Dependencies.Exports {
		if stale[exp.SourceFileID] {
			continue
		}
		keptExports = append(keptExports, exp)
	}
	m.Dependencies.Exports = keptExports

	m.FileTree = newTree
	return cs
}

// staleRelationship reports whether rel references a code node that no
// longer exists (i.e. belonged to a deleted/modified file), making the
// relationship itself stale (spec §9's referential-integrity invariant:
// no relationship may dangle).
func staleRelationship(rel *model.Relationship, nodes map[string]*model.CodeNode) bool {
	_, sourceOK := nodes[rel.SourceID]
	_, targetOK := nodes[rel.TargetID]
	return !sourceOK || !targetOK
}
