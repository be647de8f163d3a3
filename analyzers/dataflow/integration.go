package dataflow

import (
	"context"
	"fmt"
	"sort"

	"github.com/viant/codeindex/model"
	"github.com/viant/codeindex/sharedcontext"
)

// IntegrationAnalyzer folds the finished DataFlowGraph back into the
// shared model's relationship set and code-node metadata (spec §4.6.6).
type IntegrationAnalyzer struct{}

// NewIntegrationAnalyzer returns the data-flow integration analyzer.
func NewIntegrationAnalyzer() *IntegrationAnalyzer { return &IntegrationAnalyzer{} }

func (a *IntegrationAnalyzer) ID() string                 { return "dataflow-integration" }
func (a *IntegrationAnalyzer) Phase() sharedcontext.Phase { return sharedcontext.PhaseIntegration }
func (a *IntegrationAnalyzer) DependsOn() []string        { return []string{"dataflow-paths"} }
func (a *IntegrationAnalyzer) Priority() int               { return 0 }

type dependsOnKey struct {
	source, target string
	flowType       model.FlowType
}

// Run emits one depends_on relationship per deduplicated
// (source-code-node, target-code-node, flow-type) triple, writes
// dataFlowRole and a back-reference into every involved code node's
// metadata, and leaves the DataFlowGraph attached to the shared model
// (it was built in place on sc.Model.DataFlow by the earlier phases).
func (a *IntegrationAnalyzer) Run(ctx context.Context, sc *sharedcontext.Context) error {
	graph := sc.Model.DataFlow
	nodes := sc.Model.CodeNodes

	dedup := make(map[dependsOnKey]*model.DataFlow)
	var order []dependsOnKey
	for _, flow := range graph.Flows {
		srcNode, ok := graph.Nodes[flow.SourceDataNodeID]
		if !ok || srcNode.NodeID == "" {
			continue
		}
		tgtNode, ok := graph.Nodes[flow.TargetDataNodeID]
		if !ok || tgtNode.NodeID == "" {
			continue
		}
		key := dependsOnKey{source: srcNode.NodeID, target: tgtNode.NodeID, flowType: flow.Type}
		if _, seen := dedup[key]; !seen {
			order = append(order, key)
		}
		dedup[key] = flow
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].source != order[j].source {
			return order[i].source < order[j].source
		}
		if order[i].target != order[j].target {
			return order[i].target < order[j].target
		}
		return order[i].flowType < order[j].flowType
	})

	for _, key := range order {
		flow := dedup[key]
		rel := model.NewRelationship(
			fmt.Sprintf("depends_on:%s->%s:%s", key.source, key.target, key.flowType),
			model.RelDependsOn, key.source, key.target)
		rel.Weight = flow.Confidence
		rel.Confidence = flow.Confidence
		rel.Metadata["flowType"] = string(flow.Type)
		rel.Metadata["async"] = flow.Async
		rel.Metadata["conditional"] = flow.Conditional
		rel.Metadata["transformations"] = flow.Transformations
		sc.Model.Relationships = append(sc.Model.Relationships, rel)
	}

	for _, dn := range graph.Nodes {
		if dn.NodeID == "" {
			continue
		}
		cn, ok := nodes[dn.NodeID]
		if !ok {
			continue
		}
		cn.Metadata[model.MetaDataFlowRole] = string(dn.Role)
		cn.Metadata[model.MetaDataNodeID] = dn.ID
	}

	return nil
}
