package dataflow

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/viant/codeindex/model"
	"github.com/viant/codeindex/sharedcontext"
)

// FlowAnalyzer discovers DataFlow edges from relationships, shared
// state, function calls, and inline event-flow lexical cues (spec
// §4.6.2).
type FlowAnalyzer struct{}

// NewFlowAnalyzer returns the flow-discovery analyzer.
func NewFlowAnalyzer() *FlowAnalyzer { return &FlowAnalyzer{} }

func (a *FlowAnalyzer) ID() string                 { return "dataflow-flows" }
func (a *FlowAnalyzer) Phase() sharedcontext.Phase { return sharedcontext.PhaseRelationshipMapping }
func (a *FlowAnalyzer) DependsOn() []string        { return []string{"relationship"} }
func (a *FlowAnalyzer) Priority() int               { return 0 }

func (a *FlowAnalyzer) Run(ctx context.Context, sc *sharedcontext.Context) error {
	minConf := sc.Options().DataFlowMinConfidence
	if minConf == 0 {
		minConf = 0.6
	}
	graph := sc.Model.DataFlow
	nodes := sc.Model.CodeNodes

	fromRelationships(sc, graph, nodes, minConf)
	inferSharedState(sc, graph, nodes, minConf)
	inferFunctionCalls(sc, graph, nodes, minConf)
	if sc.Options().IncludeAsyncFlows {
		inferEventFlows(sc, graph, nodes, minConf)
	}
	return nil
}

// fromRelationships implements the first bullet of spec §4.6.2: one
// DataFlow per relationship in RelationKindsForDataFlow whose endpoints
// both already resolved to data nodes.
func fromRelationships(sc *sharedcontext.Context, graph *model.DataFlowGraph, nodes map[string]*model.CodeNode, minConf float64) {
	opts := sc.Options()
	for _, rel := range sc.Model.Relationships {
		if !model.RelationKindsForDataFlow[rel.Type] {
			continue
		}
		srcDataID := dataNodeIDFor(rel.SourceID, nodes)
		tgtDataID := dataNodeIDFor(rel.TargetID, nodes)
		if srcDataID == "" || tgtDataID == "" {
			continue
		}
		if _, ok := graph.Nodes[srcDataID]; !ok {
			continue
		}
		if _, ok := graph.Nodes[tgtDataID]; !ok {
			continue
		}

		flowType := flowTypeFor(rel)
		flow := model.NewDataFlow(flowID(len(graph.Flows)), flowType, srcDataID, tgtDataID)
		flow.Confidence = model.Combine(0.70, model.Signal{Name: "relationship-edge", Weight: 0.10})
		if rel.Confidence > 0 && rel.Confidence > flow.Confidence {
			flow.Confidence = rel.Confidence
		}

		ctxText := rel.Context()
		flow.Transformations = detectTransformations(ctxText)
		flow.Async = isAsync(ctxText, opts.IncludeAsyncFlows)
		flow.Conditional = isConditional(ctxText, opts.IncludeConditionalFlows)
		if flow.Async && !opts.IncludeAsyncFlows {
			continue
		}
		if flow.Conditional && !opts.IncludeConditionalFlows {
			continue
		}
		flow.Metadata["context"] = ctxText

		if flow.Confidence >= minConf {
			graph.Flows = append(graph.Flows, flow)
		}
	}
}

// flowTypeFor picks a FlowType for a relationship per §4.6.2's cascade:
// explicit flowType metadata, else relationship-type mapping, else
// lexical cues in the context string.
func flowTypeFor(rel *model.Relationship) model.FlowType {
	if explicit, ok := rel.Metadata["flowType"].(string); ok && explicit != "" {
		return model.FlowType(explicit)
	}
	switch rel.Type {
	case model.RelImports:
		return model.FlowImport
	case model.RelExports:
		return model.FlowExport
	case model.RelCalls:
		if rel.Metadata["isReturnValue"] == true {
			return model.FlowReturn
		}
		if rel.Metadata["isParameterPass"] == true {
			return model.FlowParameter
		}
		return model.FlowMethodCall
	}
	return flowTypeFromContext(rel.Context())
}

var (
	emitRe    = regexp.MustCompile(`(?i)emit|dispatch`)
	listenRe  = regexp.MustCompile(`(?i)listen|handler`)
	assignRe  = regexp.MustCompile(`[^=!<>]=[^=]`)
)

func flowTypeFromContext(ctxText string) model.FlowType {
	switch {
	case assignRe.MatchString(ctxText):
		return model.FlowAssignment
	case emitRe.MatchString(ctxText):
		return model.FlowEventEmission
	case listenRe.MatchString(ctxText):
		return model.FlowEventHandling
	case strings.Contains(ctxText, "."):
		return model.FlowPropertyAccess
	}
	return model.FlowMethodCall
}

var transformationTokens = map[string]*regexp.Regexp{
	"map":       regexp.MustCompile(`(?i)\bmap\(`),
	"filter":    regexp.MustCompile(`(?i)\bfilter\(`),
	"reduce":    regexp.MustCompile(`(?i)\breduce\(`),
	"sort":      regexp.MustCompile(`(?i)\bsort\(`),
	"transform": regexp.MustCompile(`(?i)transform|convert`),
	"format":    regexp.MustCompile(`(?i)parse|stringify`),
}

// detectTransformations scans text for the token set named in spec
// §4.6.2, returning the matching tags sorted for determinism.
func detectTransformations(text string) []string {
	var tags []string
	for tag, re := range transformationTokens {
		if re.MatchString(text) {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

var (
	asyncRe       = regexp.MustCompile(`(?i)async|promise|then\(|callback|await|eventlistener`)
	conditionalRe = regexp.MustCompile(`(?i)\bif\b|\belse\b|\bswitch\b|\bcase\b|\btry\b|\bcatch\b|\?|\|\||&&`)
)

func isAsync(text string, enabled bool) bool {
	return enabled && asyncRe.MatchString(text)
}

func isConditional(text string, enabled bool) bool {
	return enabled && conditionalRe.MatchString(text)
}

func dataNodeIDFor(codeNodeID string, nodes map[string]*model.CodeNode) string {
	node, ok := nodes[codeNodeID]
	if !ok {
		return ""
	}
	return node.MetaString(model.MetaDataNodeID)
}

func flowID(seq int) string {
	return fmt.Sprintf("flow:%d", seq)
}

// inferSharedState implements spec §4.6.2's shared-state bullet: builds
// target→accessors over reference/use relationships, synthesizes a
// store data node for every target with ≥2 accessors, and emits
// read/write state-mutation flows between each accessor and the store.
func inferSharedState(sc *sharedcontext.Context, graph *model.DataFlowGraph, nodes map[string]*model.CodeNode, minConf float64) {
	accessors := make(map[string][]*model.Relationship)
	for _, rel := range sc.Model.Relationships {
		if rel.Type != model.RelReferences && rel.Type != model.RelUses {
			continue
		}
		accessors[rel.TargetID] = append(accessors[rel.TargetID], rel)
	}

	var targets []string
	for t := range accessors {
		targets = append(targets, t)
	}
	sort.Strings(targets)

	for _, target := range targets {
		rels := accessors[target]
		if len(rels) < 2 {
			continue
		}
		targetNode, ok := nodes[target]
		if !ok {
			continue
		}
		storeDataID := targetNode.MetaString(model.MetaDataNodeID)
		if storeDataID == "" {
			storeDataID = dataNodeID(target)
			dn := model.NewDataNode(storeDataID, targetNode.Name, model.RoleStore)
			dn.NodeID = target
			dn.Confidence = model.Combine(0.70, model.Signal{Name: "shared-state", Weight: 0.10})
			graph.Nodes[storeDataID] = dn
			targetNode.Metadata[model.MetaDataNodeID] = storeDataID
			targetNode.Metadata[model.MetaDataFlowRole] = string(model.RoleStore)
		}

		sort.Slice(rels, func(i, j int) bool { return rels[i].SourceID < rels[j].SourceID })
		for _, rel := range rels {
			accessorDataID := dataNodeIDFor(rel.SourceID, nodes)
			if accessorDataID == "" {
				continue
			}
			accessorNode := nodes[rel.SourceID]
			write := rel.Metadata["isWrite"] == true ||
				assignRe.MatchString(rel.Context()) ||
				regexp.MustCompile(`(?i)\bset\b|\bupdate\b|\bwrite\b|\bsave\b`).MatchString(rel.Context()) ||
				hasWriteNamePrefix(accessorNode.Name)

			var flow *model.DataFlow
			if write {
				flow = model.NewDataFlow(flowID(len(graph.Flows)), model.FlowStateMutation, accessorDataID, storeDataID)
			} else {
				flow = model.NewDataFlow(flowID(len(graph.Flows)), model.FlowStateMutation, storeDataID, accessorDataID)
			}
			flow.Confidence = model.Combine(0.70, model.Signal{Name: "shared-state", Weight: 0.10})
			flow.Metadata["context"] = rel.Context()
			if flow.Confidence >= minConf {
				graph.Flows = append(graph.Flows, flow)
			}
		}
	}
}

func hasWriteNamePrefix(name string) bool {
	name = strings.ToLower(name)
	for _, p := range []string{"set", "update", "write", "save", "add"} {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// inferFunctionCalls implements spec §4.6.2's function-call-inference
// bullet: for every calls relationship, locate the callee's
// parameter-like/return-like children and emit parameter/return flows.
func inferFunctionCalls(sc *sharedcontext.Context, graph *model.DataFlowGraph, nodes map[string]*model.CodeNode, minConf float64) {
	for _, rel := range sc.Model.Relationships {
		if rel.Type != model.RelCalls {
			continue
		}
		callerDataID := dataNodeIDFor(rel.SourceID, nodes)
		if callerDataID == "" {
			continue
		}
		callee, ok := nodes[rel.TargetID]
		if !ok {
			continue
		}

		for _, cid := range callee.Children {
			child, ok := nodes[cid]
			if !ok {
				continue
			}
			if child.Kind != model.KindParameter && !child.MetaBool(model.MetaIsParameter) {
				continue
			}
			paramDataID := child.MetaString(model.MetaDataNodeID)
			if paramDataID == "" {
				continue
			}
			flow := model.NewDataFlow(flowID(len(graph.Flows)), model.FlowParameter, callerDataID, paramDataID)
			flow.Confidence = model.Combine(0.70, model.Signal{Name: "call-param", Weight: 0.10})
			flow.Metadata["context"] = rel.Context()
			if flow.Confidence >= minConf {
				graph.Flows = append(graph.Flows, flow)
			}
		}

		if callee.HasReturn(nodes) {
			calleeDataID := dataNodeIDFor(rel.TargetID, nodes)
			if calleeDataID != "" {
				flow := model.NewDataFlow(flowID(len(graph.Flows)), model.FlowReturn, calleeDataID, callerDataID)
				flow.Confidence = model.Combine(0.70, model.Signal{Name: "call-return", Weight: 0.10})
				flow.Metadata["context"] = rel.Context()
				if flow.Confidence >= minConf {
					graph.Flows = append(graph.Flows, flow)
				}
			}
		}
	}
}

var (
	emitterRe  = regexp.MustCompile(`(?i)\b(emit|dispatch|publish)\s*\(\s*["']([\w.-]+)["']`)
	handlerRe  = regexp.MustCompile(`(?i)\b(on|addEventListener|subscribe|handler|listener|callback)\w*\s*\(\s*["']([\w.-]+)["']`)
	onCamelRe  = regexp.MustCompile(`\bon([A-Z]\w*)\b`)
)

// inferEventFlows implements spec §4.6.2's event-flows bullet: scans
// inline content for emit/handler lexical cues, extracting quoted event
// names and camelCase-derived names, and emits one async event_emission
// flow per event name with ≥1 emitter and ≥1 handler.
func inferEventFlows(sc *sharedcontext.Context, graph *model.DataFlowGraph, nodes map[string]*model.CodeNode, minConf float64) {
	emitters := make(map[string][]string)
	handlers := make(map[string][]string)

	var ids []string
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		node := nodes[id]
		if node.Content == "" {
			continue
		}
		dataID := node.MetaString(model.MetaDataNodeID)
		if dataID == "" {
			continue
		}
		for _, m := range emitterRe.FindAllStringSubmatch(node.Content, -1) {
			emitters[m[2]] = append(emitters[m[2]], dataID)
		}
		for _, m := range handlerRe.FindAllStringSubmatch(node.Content, -1) {
			handlers[m[2]] = append(handlers[m[2]], dataID)
		}
		for _, m := range onCamelRe.FindAllStringSubmatch(node.Content, -1) {
			name := lowerFirst(m[1])
			handlers[name] = append(handlers[name], dataID)
		}
	}

	var events []string
	for e := range emitters {
		events = append(events, e)
	}
	sort.Strings(events)

	for _, event := range events {
		hs, ok := handlers[event]
		if !ok || len(hs) == 0 {
			continue
		}
		for _, emitterID := range emitters[event] {
			for _, handlerID := range hs {
				flow := model.NewDataFlow(flowID(len(graph.Flows)), model.FlowEventEmission, emitterID, handlerID)
				flow.Async = true
				flow.Confidence = model.Combine(0.70, model.Signal{Name: "event-flow", Weight: 0.10})
				flow.Metadata["context"] = event
				if flow.Confidence >= minConf {
					graph.Flows = append(graph.Flows, flow)
				}
			}
		}
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
