package dataflow

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/viant/codeindex/model"
	"github.com/viant/codeindex/sharedcontext"
)

// PathAnalyzer enumerates DataFlowPaths (§4.6.3), propagates data types
// along them (§4.6.4), and mines transformation patterns (§4.6.5). All
// three sub-steps run in PATTERN_DISCOVERY per the spec's phase
// assignment for path enumeration; type propagation and mining are
// defined to run "after paths are built" / over the finished flow set,
// so they are sequenced within the same Run call.
type PathAnalyzer struct{}

// NewPathAnalyzer returns the path-enumeration analyzer.
func NewPathAnalyzer() *PathAnalyzer { return &PathAnalyzer{} }

func (a *PathAnalyzer) ID() string                 { return "dataflow-paths" }
func (a *PathAnalyzer) Phase() sharedcontext.Phase { return sharedcontext.PhasePatternDiscovery }
func (a *PathAnalyzer) DependsOn() []string        { return []string{"dataflow-flows", "pattern"} }
func (a *PathAnalyzer) Priority() int               { return 0 }

func (a *PathAnalyzer) Run(ctx context.Context, sc *sharedcontext.Context) error {
	graph := sc.Model.DataFlow
	maxDepth := sc.Options().MaxDepth
	if maxDepth == 0 {
		maxDepth = 5
	}

	enumeratePaths(graph, maxDepth)
	propagateDataTypes(sc.Model.CodeNodes, graph)
	mineTransformationPatterns(sc, graph)
	return nil
}

// enumeratePaths implements spec §4.6.3: DFS from every source-role,
// no-incoming-flow entry point, forking at every outgoing edge, with
// cycle prevention via a per-branch visited set, a maxDepth cap, and
// the mean-confidence-minus-length-penalty termination rule.
func enumeratePaths(graph *model.DataFlowGraph, maxDepth int) {
	bySource := graph.FlowsBySource()
	hasIncoming := make(map[string]bool)
	for _, f := range graph.Flows {
		hasIncoming[f.TargetDataNodeID] = true
	}

	var entryIDs []string
	for id, n := range graph.Nodes {
		if n.Role == model.RoleSource && !hasIncoming[id] {
			entryIDs = append(entryIDs, id)
		}
	}
	sort.Strings(entryIDs)

	var paths []*model.DataFlowPath
	for _, entry := range entryIDs {
		visited := map[string]bool{entry: true}
		walk(graph, bySource, entry, []string{entry}, nil, visited, maxDepth, &paths)
	}

	graph.Paths = paths
}

func walk(graph *model.DataFlowGraph, bySource map[string][]*model.DataFlow, current string, nodeIDs []string, flowIDs []string, visited map[string]bool, maxDepth int, out *[]*model.DataFlowPath) {
	currentNode := graph.Nodes[current]
	outgoing := bySource[current]

	terminal := currentNode.Role == model.RoleSink || len(outgoing) == 0
	if terminal {
		if len(nodeIDs) >= 2 {
			*out = append(*out, buildPath(graph, nodeIDs, flowIDs))
		}
		return
	}

	if len(nodeIDs) >= maxDepth {
		if len(nodeIDs) >= 2 {
			*out = append(*out, buildPath(graph, nodeIDs, flowIDs))
		}
		return
	}

	for _, flow := range outgoing {
		next := flow.TargetDataNodeID
		if visited[next] {
			continue
		}
		visited[next] = true
		walk(graph, bySource, next, append(append([]string{}, nodeIDs...), next), append(append([]string{}, flowIDs...), flow.ID), visited, maxDepth, out)
		delete(visited, next)
	}
}

func flowByID(graph *model.DataFlowGraph, id string) *model.DataFlow {
	for _, f := range graph.Flows {
		if f.ID == id {
			return f
		}
	}
	return nil
}

func buildPath(graph *model.DataFlowGraph, nodeIDs, flowIDs []string) *model.DataFlowPath {
	var sum float64
	for _, fid := range flowIDs {
		if f := flowByID(graph, fid); f != nil {
			sum += f.Confidence
		}
	}
	mean := 0.0
	if len(flowIDs) > 0 {
		mean = sum / float64(len(flowIDs))
	}
	length := len(nodeIDs)
	penalty := 0.03 * float64(maxInt(0, length-2))
	confidence := model.Clamp(mean-penalty, 0.50, 0.95)

	sourceName := graph.Nodes[nodeIDs[0]].Name
	targetName := graph.Nodes[nodeIDs[len(nodeIDs)-1]].Name

	p := &model.DataFlowPath{
		ID:          fmt.Sprintf("path:%s", strings.Join(nodeIDs, ">")),
		Name:        fmt.Sprintf("%s to %s", sourceName, targetName),
		Description: fmt.Sprintf("data flows from %s through %d node(s) to %s", sourceName, length, targetName),
		Nodes:       nodeIDs,
		Flows:       flowIDs,
		EntryPoints: []string{nodeIDs[0]},
		ExitPoints:  []string{nodeIDs[len(nodeIDs)-1]},
		Confidence:  confidence,
		Metadata:    make(map[string]interface{}),
	}
	return p
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// propagateDataTypes implements spec §4.6.4: seeds every data node's
// DataType from its code node's metadata, then propagates forward along
// flows (at most 3 rounds) applying the transformation effect table.
func propagateDataTypes(nodes map[string]*model.CodeNode, graph *model.DataFlowGraph) {
	for _, dn := range graph.Nodes {
		if dn.DataType != "" {
			continue
		}
		if cn, ok := nodes[dn.NodeID]; ok {
			dn.DataType = cn.MetaString(model.MetaDataType)
		}
	}

	for round := 0; round < 3; round++ {
		changed := false
		for _, flow := range graph.Flows {
			src, okSrc := graph.Nodes[flow.SourceDataNodeID]
			tgt, okTgt := graph.Nodes[flow.TargetDataNodeID]
			if !okSrc || !okTgt {
				continue
			}
			if src.DataType == "" || tgt.DataType != "" {
				continue
			}
			tgt.DataType = applyTransformations(src.DataType, flow.Transformations)
			changed = true
		}
		if !changed {
			break
		}
	}
}

func applyTransformations(t string, tags []string) string {
	for _, tag := range tags {
		switch tag {
		case "map":
			if strings.HasSuffix(t, "[]") {
				// unchanged
			} else {
				t = t + "[]"
			}
		case "filter":
			// unchanged
		case "reduce":
			t = strings.TrimSuffix(t, "[]")
		case "transform", "format":
			t = "string"
		}
	}
	return t
}

// mineTransformationPatterns implements spec §4.6.5: groups flows by
// their sorted transformations tuple, registering a data_transformation
// pattern for every group of ≥3 flows.
func mineTransformationPatterns(sc *sharedcontext.Context, graph *model.DataFlowGraph) {
	groups := make(map[string][]*model.DataFlow)
	for _, f := range graph.Flows {
		if len(f.Transformations) == 0 {
			continue
		}
		key := strings.Join(f.Transformations, ",")
		groups[key] = append(groups[key], f)
	}

	var keys []string
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		flows := groups[key]
		if len(flows) < 3 {
			continue
		}
		p := &model.Pattern{
			Type:       model.PatternTagDataTransform,
			Name:       key,
			Confidence: 0.80,
			Metadata: map[string]interface{}{
				"tags":       strings.Split(key, ","),
				"sampleSize": len(flows),
			},
		}
		sc.RegisterPattern(p)
	}
}
