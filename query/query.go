// Package query is the model's read surface (spec §6:
// `query(model, query) → Result`), the Go-native generalization of the
// teacher's Lookup*/Get* accessor family (inspector/graph/file.go's
// Package.LookupMethod/File.LookupFunction/LookupType/LookupVariable,
// inspector/graph/types.go's Type.GetField/GetMethod) from "one
// accessor per concrete kind on one concrete type" to "one filterable
// Query struct over the whole assembled model".
package query

import (
	"sort"
	"strings"

	"github.com/viant/codeindex/model"
)

// Query filters the model's collections. Every non-zero filter field
// narrows the result. No collection is selected by default, so a
// zero-value Query returns an empty Result; callers name what they want
// via the boolean Want* switches below.
type Query struct {
	// WantCodeNodes, WantRelationships, etc. opt the result into each
	// collection; only requested collections are populated, mirroring
	// the teacher's narrow per-kind accessors rather than one
	// always-everything query.
	WantCodeNodes     bool
	WantRelationships bool
	WantDataNodes     bool
	WantFlows         bool
	WantPaths         bool
	WantDependencies  bool

	// CodeNodes filters.
	Kind          model.Kind
	NameContains  string
	FilePath      string
	MinConfidence float64

	// Relationships filters.
	RelationType model.RelationType
	SourceID     string
	TargetID     string

	// Data-flow filters.
	DataRole model.DataRole

	// Dependencies filters.
	Category model.Category
}

// Result holds whichever collections Query opted into. Code nodes, data
// nodes and dependencies are filtered and sorted by id/name;
// relationships and flows are filtered and keep the model's order;
// paths are returned unfiltered, in the model's order.
type Result struct {
	CodeNodes     []*model.CodeNode
	Relationships []*model.Relationship
	DataNodes     []*model.DataNode
	Flows         []*model.DataFlow
	Paths         []*model.DataFlowPath
	Dependencies  []*model.Dependency
}

// Run evaluates q against m.
func Run(m *model.Model, q Query) Result {
	var res Result
	if q.WantCodeNodes {
		res.CodeNodes = matchCodeNodes(m, q)
	}
	if q.WantRelationships {
		res.Relationships = matchRelationships(m, q)
	}
	if q.WantDataNodes {
		res.DataNodes = matchDataNodes(m, q)
	}
	if q.WantFlows {
		res.Flows = matchFlows(m, q)
	}
	if q.WantPaths {
		res.Paths = m.DataFlow.Paths
	}
	if q.WantDependencies {
		res.Dependencies = matchDependencies(m, q)
	}
	return res
}

func matchCodeNodes(m *model.Model, q Query) []*model.CodeNode {
	ids := make([]string, 0, len(m.CodeNodes))
	for id := range m.CodeNodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []*model.CodeNode
	for _, id := range ids {
		node := m.CodeNodes[id]
		if q.Kind != "" && node.Kind != q.Kind {
			continue
		}
		if q.NameContains != "" && !strings.Contains(node.Name, q.NameContains) {
			continue
		}
		if q.FilePath != "" && node.FilePath != q.FilePath {
			continue
		}
		if q.MinConfidence > 0 && node.Confidence < q.MinConfidence {
			continue
		}
		out = append(out, node)
	}
	return out
}

func matchRelationships(m *model.Model, q Query) []*model.Relationship {
	var out []*model.Relationship
	for _, rel := range m.Relationships {
		if q.RelationType != "" && rel.Type != q.RelationType {
			continue
		}
		if q.SourceID != "" && rel.SourceID != q.SourceID {
			continue
		}
		if q.TargetID != "" && rel.TargetID != q.TargetID {
			continue
		}
		if q.MinConfidence > 0 && rel.Confidence < q.MinConfidence {
			continue
		}
		out = append(out, rel)
	}
	return out
}

func matchDataNodes(m *model.Model, q Query) []*model.DataNode {
	if m.DataFlow == nil {
		return nil
	}
	ids := make([]string, 0, len(m.DataFlow.Nodes))
	for id := range m.DataFlow.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []*model.DataNode
	for _, id := range ids {
		dn := m.DataFlow.Nodes[id]
		if q.DataRole != "" && dn.Role != q.DataRole {
			continue
		}
		if q.MinConfidence > 0 && dn.Confidence < q.MinConfidence {
			continue
		}
		out = append(out, dn)
	}
	return out
}

func matchFlows(m *model.Model, q Query) []*model.DataFlow {
	if m.DataFlow == nil {
		return nil
	}
	var out []*model.DataFlow
	for _, f := range m.DataFlow.Flows {
		if q.SourceID != "" && f.SourceDataNodeID != q.SourceID {
			continue
		}
		if q.TargetID != "" && f.TargetDataNodeID != q.TargetID {
			continue
		}
		if q.MinConfidence > 0 && f.Confidence < q.MinConfidence {
			continue
		}
		out = append(out, f)
	}
	return out
}

func matchDependencies(m *model.Model, q Query) []*model.Dependency {
	if m.Dependencies == nil {
		return nil
	}
	names := make([]string, 0, len(m.Dependencies.Dependencies))
	for name := range m.Dependencies.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []*model.Dependency
	for _, name := range names {
		dep := m.Dependencies.Dependencies[name]
		if q.Category != "" && dep.Category != q.Category {
			continue
		}
		if q.MinConfidence > 0 && dep.Confidence < q.MinConfidence {
			continue
		}
		out = append(out, dep)
	}
	return out
}

// LookupCodeNode returns the code node by id, or nil if absent — the
// single-result analogue of inspector/graph/file.go's
// File.LookupFunction/LookupType/LookupVariable, generalized across
// every CodeNode kind since the core does not distinguish accessor
// methods per kind.
func LookupCodeNode(m *model.Model, id string) *model.CodeNode {
	return m.CodeNodes[id]
}

// FindByName returns every code node whose Name exactly matches name,
// in id order, the same "search by exact name" the teacher's
// Lookup*(name) family performs per-kind.
func FindByName(m *model.Model, name string) []*model.CodeNode {
	ids := make([]string, 0, len(m.CodeNodes))
	for id := range m.CodeNodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []*model.CodeNode
	for _, id := range ids {
		if node := m.CodeNodes[id]; node.Name == name {
			out = append(out, node)
		}
	}
	return out
}

// Callers returns every relationship whose TargetID is nodeID and whose
// Type is "calls" — who calls this node.
func Callers(m *model.Model, nodeID string) []*model.Relationship {
	return matchRelationships(m, Query{RelationType: model.RelCalls, TargetID: nodeID})
}

// Callees returns every relationship whose SourceID is nodeID and whose
// Type is "calls" — what this node calls.
func Callees(m *model.Model, nodeID string) []*model.Relationship {
	return matchRelationships(m, Query{RelationType: model.RelCalls, SourceID: nodeID})
}

// FlowsFrom returns every data flow originating at dataNodeID.
func FlowsFrom(m *model.Model, dataNodeID string) []*model.DataFlow {
	if m.DataFlow == nil {
		return nil
	}
	var out []*model.DataFlow
	for _, f := range m.DataFlow.Flows {
		if f.SourceDataNodeID == dataNodeID {
			out = append(out, f)
		}
	}
	return out
}

// PathsThrough returns every DataFlowPath that visits dataNodeID.
func PathsThrough(m *model.Model, dataNodeID string) []*model.DataFlowPath {
	if m.DataFlow == nil {
		return nil
	}
	var out []*model.DataFlowPath
	for _, path := range m.DataFlow.Paths {
		for _, nid := range path.Nodes {
			if nid == dataNodeID {
				out = append(out, path)
				break
			}
		}
	}
	return out
}
