// Package dataflow is the data-flow analyzer (spec §4.6), the largest
// subsystem in the engine. It is split into four engine.Analyzer
// registrations — one per phase the spec assigns a sub-step to — sharing
// state through sc.Model.DataFlow and CodeNode metadata between phases:
// RoleAnalyzer (FILE_ANALYSIS, §4.6.1), FlowAnalyzer (RELATIONSHIP_MAPPING,
// §4.6.2), PathAnalyzer (PATTERN_DISCOVERY, §4.6.3–§4.6.5), and
// IntegrationAnalyzer (INTEGRATION, §4.6.6). Role/flow inference is
// grounded on the teacher's analyzer/node.go AST-shape heuristics
// (name/signature-driven role guessing) generalized from one language's
// AST shapes to metadata+pattern+name+structural signals usable by any
// parser collaborator.
package dataflow

import (
	"context"
	"sort"
	"strings"

	"github.com/viant/codeindex/model"
	"github.com/viant/codeindex/sharedcontext"
)

// RoleAnalyzer assigns a DataRole (and a DataNode) to every CodeNode with
// a qualifying signal (spec §4.6.1).
type RoleAnalyzer struct{}

// NewRoleAnalyzer returns the data-node-discovery analyzer.
func NewRoleAnalyzer() *RoleAnalyzer { return &RoleAnalyzer{} }

func (a *RoleAnalyzer) ID() string                 { return "dataflow-roles" }
func (a *RoleAnalyzer) Phase() sharedcontext.Phase { return sharedcontext.PhaseFileAnalysis }
func (a *RoleAnalyzer) DependsOn() []string        { return []string{"structure", "pattern", "language"} }
func (a *RoleAnalyzer) Priority() int               { return 0 }

var (
	sourceTokens = []string{"input", "source", "fetch", "get", "read", "load", "api"}
	sinkTokens   = []string{"output", "sink", "save", "write", "send", "set", "update", "emit", "publish"}
	transformTokens = []string{"transform", "convert", "format", "parse", "map", "filter", "reduce", "process"}
	storeTokens  = []string{"store", "state", "cache", "repository", "db", "database", "model", "container"}
)

// dataNodeID derives a deterministic data-node id from a code-node id.
func dataNodeID(codeNodeID string) string { return "dn:" + codeNodeID }

// Run assigns a role to every code node with a qualifying signal,
// recording confidence per the spec's additive combinator and
// registering a DataNode under sc.Model.DataFlow.Nodes.
func (a *RoleAnalyzer) Run(ctx context.Context, sc *sharedcontext.Context) error {
	var ids []string
	for id := range sc.Model.CodeNodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		node := sc.Model.CodeNodes[id]
		role, signals, patternConf, ok := inferRole(node, sc.Model.CodeNodes, sc.Model.Patterns)
		if !ok {
			continue
		}
		conf := model.Combine(0.70, signals...)
		if patternConf > conf {
			conf = patternConf
		}
		if conf > model.MaxConfidence {
			conf = model.MaxConfidence
		}

		dn := model.NewDataNode(dataNodeID(id), node.Name, role)
		dn.NodeID = id
		dn.Confidence = conf
		dn.DataType = node.MetaString(model.MetaDataType)
		sc.Model.DataFlow.Nodes[dn.ID] = dn

		node.Metadata[model.MetaDataFlowRole] = string(role)
		node.Metadata[model.MetaDataNodeID] = dn.ID
	}
	return nil
}

// inferRole applies the signal cascade from spec §4.6.1: explicit
// metadata flags, pattern-registry matches, name heuristics, then
// structural hints. Returns the chosen role, the signals that
// contributed to its confidence, the maximum pattern confidence
// observed (which replaces the base if higher), and whether any signal
// fired at all.
func inferRole(node *model.CodeNode, nodes map[string]*model.CodeNode, patterns *model.PatternRegistry) (model.DataRole, []model.Signal, float64, bool) {
	var signals []model.Signal
	var maxPatternConf float64
	var role model.DataRole
	var found bool

	assign := func(r model.DataRole, weight float64, name string) {
		if !found {
			role = r
			found = true
		}
		signals = append(signals, model.Signal{Name: name, Weight: weight})
	}

	if existing := node.MetaString(model.MetaDataFlowRole); existing != "" {
		assign(model.DataRole(existing), 0.15, "explicit-role")
	} else {
		switch {
		case node.MetaBool(model.MetaIsDataSource):
			assign(model.RoleSource, 0.15, "explicit-flag")
		case node.MetaBool(model.MetaIsDataSink):
			assign(model.RoleSink, 0.15, "explicit-flag")
		case node.MetaBool(model.MetaIsDataTransformer):
			assign(model.RoleTransformer, 0.15, "explicit-flag")
		case node.MetaBool(model.MetaIsDataStore):
			assign(model.RoleStore, 0.15, "explicit-flag")
		}
	}

	if node.Content != "" {
		for tag, r := range map[string]model.DataRole{
			model.PatternTagDataSource:      model.RoleSource,
			model.PatternTagDataSink:        model.RoleSink,
			model.PatternTagDataTransformer: model.RoleTransformer,
			model.PatternTagDataStore:       model.RoleStore,
		} {
			for _, p := range patterns.FindMatchingPatterns(node.Content, tag) {
				assign(r, 0.10, "pattern-hit")
				if p.Confidence > maxPatternConf {
					maxPatternConf = p.Confidence
				}
			}
		}
	}

	name := strings.ToLower(node.Name)
	switch {
	case containsAny(name, sourceTokens):
		assign(model.RoleSource, 0.10, "name-heuristic")
	case containsAny(name, sinkTokens):
		assign(model.RoleSink, 0.10, "name-heuristic")
	case containsAny(name, transformTokens):
		assign(model.RoleTransformer, 0.10, "name-heuristic")
	case containsAny(name, storeTokens):
		assign(model.RoleStore, 0.10, "name-heuristic")
	}

	if !found && (node.Kind == model.KindFunction || node.Kind == model.KindMethod) {
		hasParams := node.HasParams(nodes)
		hasReturn := node.HasReturn(nodes)
		switch {
		case hasReturn && !hasParams:
			assign(model.RoleSource, 0.0, "structural-hint")
		case hasParams && !hasReturn:
			assign(model.RoleSink, 0.0, "structural-hint")
		case hasParams && hasReturn:
			assign(model.RoleTransformer, 0.0, "structural-hint")
		}
	}

	if !found && (node.Kind == model.KindClass || node.Kind == model.KindInterface) {
		if hasGetterAndSetter(node, nodes) {
			assign(model.RoleStore, 0.0, "structural-hint")
		}
	}

	return role, signals, maxPatternConf, found
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func hasGetterAndSetter(node *model.CodeNode, nodes map[string]*model.CodeNode) bool {
	var getter, setter bool
	for _, cid := range node.Children {
		c, ok := nodes[cid]
		if !ok {
			continue
		}
		if c.MetaBool(model.MetaIsGetter) || strings.HasPrefix(strings.ToLower(c.Name), "get") {
			getter = true
		}
		if c.MetaBool(model.MetaIsSetter) || strings.HasPrefix(strings.ToLower(c.Name), "set") {
			setter = true
		}
	}
	return getter && setter
}
