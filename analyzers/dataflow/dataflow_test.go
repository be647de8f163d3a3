package dataflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/codeindex/fsadapter"
	"github.com/viant/codeindex/model"
	"github.com/viant/codeindex/sharedcontext"
)

func newGraph(t *testing.T) (*model.Model, *sharedcontext.Context) {
	m := model.New("/r", model.DefaultOptions())
	sc := sharedcontext.New(fsadapter.NewMemoryFS(), m)
	return m, sc
}

func TestRoleAnalyzerAssignsExplicitFlagRole(t *testing.T) {
	m, sc := newGraph(t)
	fetch := model.NewCodeNode("n1", model.KindFunction, "FetchUser")
	fetch.Metadata[model.MetaIsDataSource] = true
	m.CodeNodes[fetch.ID] = fetch

	err := NewRoleAnalyzer().Run(context.Background(), sc)
	assert.NoError(t, err)

	dataID := fetch.MetaString(model.MetaDataNodeID)
	assert.NotEmpty(t, dataID)
	dn, ok := m.DataFlow.Nodes[dataID]
	assert.True(t, ok)
	assert.Equal(t, model.RoleSource, dn.Role)
	assert.GreaterOrEqual(t, dn.Confidence, 0.80)
}

func TestRoleAnalyzerStructuralHint(t *testing.T) {
	m, sc := newGraph(t)
	fn := model.NewCodeNode("n1", model.KindFunction, "Builder")
	fn.Metadata[model.MetaHasReturn] = true
	m.CodeNodes[fn.ID] = fn

	err := NewRoleAnalyzer().Run(context.Background(), sc)
	assert.NoError(t, err)
	assert.Equal(t, string(model.RoleSource), fn.MetaString(model.MetaDataFlowRole))
}

func TestRoleAnalyzerNoSignalLeavesNodeUntouched(t *testing.T) {
	m, sc := newGraph(t)
	fn := model.NewCodeNode("n1", model.KindVariable, "x")
	m.CodeNodes[fn.ID] = fn

	err := NewRoleAnalyzer().Run(context.Background(), sc)
	assert.NoError(t, err)
	assert.Empty(t, fn.MetaString(model.MetaDataNodeID))
}

func TestFlowAnalyzerFromCallsRelationship(t *testing.T) {
	m, sc := newGraph(t)
	caller := model.NewCodeNode("c1", model.KindFunction, "FetchUser")
	caller.Metadata[model.MetaIsDataSource] = true
	callee := model.NewCodeNode("c2", model.KindFunction, "SaveUser")
	callee.Metadata[model.MetaIsDataSink] = true
	m.CodeNodes[caller.ID] = caller
	m.CodeNodes[callee.ID] = callee

	assert.NoError(t, NewRoleAnalyzer().Run(context.Background(), sc))

	rel := model.NewRelationship("calls:c1->c2", model.RelCalls, "c1", "c2")
	rel.Metadata["context"] = "SaveUser(u)"
	m.Relationships = append(m.Relationships, rel)

	assert.NoError(t, NewFlowAnalyzer().Run(context.Background(), sc))
	assert.NotEmpty(t, m.DataFlow.Flows)
	assert.Equal(t, dataNodeID("c1"), m.DataFlow.Flows[0].SourceDataNodeID)
	assert.Equal(t, dataNodeID("c2"), m.DataFlow.Flows[0].TargetDataNodeID)
}

func TestFlowAnalyzerSharedStateSynthesizesStore(t *testing.T) {
	m, sc := newGraph(t)
	reader := model.NewCodeNode("r1", model.KindFunction, "getCount")
	reader.Metadata[model.MetaHasReturn] = true
	writer := model.NewCodeNode("w1", model.KindFunction, "setCount")
	shared := model.NewCodeNode("s1", model.KindVariable, "counter")
	m.CodeNodes[reader.ID] = reader
	m.CodeNodes[writer.ID] = writer
	m.CodeNodes[shared.ID] = shared

	assert.NoError(t, NewRoleAnalyzer().Run(context.Background(), sc))

	m.Relationships = append(m.Relationships,
		model.NewRelationship("uses:r1->s1", model.RelUses, "r1", "s1"),
		model.NewRelationship("uses:w1->s1", model.RelUses, "w1", "s1"),
	)

	assert.NoError(t, NewFlowAnalyzer().Run(context.Background(), sc))

	storeDataID := shared.MetaString(model.MetaDataNodeID)
	assert.NotEmpty(t, storeDataID)
	storeNode, ok := m.DataFlow.Nodes[storeDataID]
	assert.True(t, ok)
	assert.Equal(t, model.RoleStore, storeNode.Role)

	var mutations int
	for _, f := range m.DataFlow.Flows {
		if f.Type == model.FlowStateMutation {
			mutations++
		}
	}
	assert.Equal(t, 2, mutations)
}

func TestFlowAnalyzerEventFlowFromEmitAndHandler(t *testing.T) {
	m, sc := newGraph(t)
	publish := model.NewCodeNode("p1", model.KindFunction, "publish")
	publish.Content = `emit("change", payload)`
	publish.Metadata[model.MetaIsDataSource] = true
	subscribe := model.NewCodeNode("s1", model.KindFunction, "subscribe")
	subscribe.Content = `on("change", handleChange)`
	subscribe.Metadata[model.MetaIsDataSink] = true
	m.CodeNodes[publish.ID] = publish
	m.CodeNodes[subscribe.ID] = subscribe

	assert.NoError(t, NewRoleAnalyzer().Run(context.Background(), sc))
	assert.NoError(t, NewFlowAnalyzer().Run(context.Background(), sc))

	var eventFlows []*model.DataFlow
	for _, f := range m.DataFlow.Flows {
		if f.Type == model.FlowEventEmission {
			eventFlows = append(eventFlows, f)
		}
	}
	assert.Len(t, eventFlows, 1)
	assert.True(t, eventFlows[0].Async)
	assert.Empty(t, eventFlows[0].Transformations)
}

func TestFlowAnalyzerEventFlowSkippedWhenAsyncDisabled(t *testing.T) {
	m, sc := newGraph(t)
	opts := m.Options
	opts.IncludeAsyncFlows = false
	m.Options = opts

	publish := model.NewCodeNode("p1", model.KindFunction, "publish")
	publish.Content = `emit("change", payload)`
	publish.Metadata[model.MetaIsDataSource] = true
	subscribe := model.NewCodeNode("s1", model.KindFunction, "subscribe")
	subscribe.Content = `on("change", handleChange)`
	subscribe.Metadata[model.MetaIsDataSink] = true
	m.CodeNodes[publish.ID] = publish
	m.CodeNodes[subscribe.ID] = subscribe

	assert.NoError(t, NewRoleAnalyzer().Run(context.Background(), sc))
	assert.NoError(t, NewFlowAnalyzer().Run(context.Background(), sc))

	for _, f := range m.DataFlow.Flows {
		assert.NotEqual(t, model.FlowEventEmission, f.Type)
	}
}

func TestPathAnalyzerEnumeratesPathAndMinesPatterns(t *testing.T) {
	m, sc := newGraph(t)
	source := model.NewDataNode("dn:src", "Source", model.RoleSource)
	source.NodeID = "src"
	mid := model.NewDataNode("dn:mid", "Mid", model.RoleTransformer)
	mid.NodeID = "mid"
	sink := model.NewDataNode("dn:sink", "Sink", model.RoleSink)
	sink.NodeID = "sink"
	m.DataFlow.Nodes[source.ID] = source
	m.DataFlow.Nodes[mid.ID] = mid
	m.DataFlow.Nodes[sink.ID] = sink

	for i := 0; i < 3; i++ {
		f1 := model.NewDataFlow(flowID(len(m.DataFlow.Flows)), model.FlowParameter, source.ID, mid.ID)
		f1.Confidence = 0.8
		f1.Transformations = []string{"map"}
		m.DataFlow.Flows = append(m.DataFlow.Flows, f1)
		f2 := model.NewDataFlow(flowID(len(m.DataFlow.Flows)), model.FlowReturn, mid.ID, sink.ID)
		f2.Confidence = 0.8
		m.DataFlow.Flows = append(m.DataFlow.Flows, f2)
	}

	assert.NoError(t, NewPathAnalyzer().Run(context.Background(), sc))
	assert.NotEmpty(t, m.DataFlow.Paths)
	assert.Equal(t, "Source to Sink", m.DataFlow.Paths[0].Name)

	assert.NotEmpty(t, m.Patterns.ByType(model.PatternTagDataTransform))
}

func TestIntegrationAnalyzerEmitsDependsOnAndBackreferences(t *testing.T) {
	m, sc := newGraph(t)
	caller := model.NewCodeNode("c1", model.KindFunction, "FetchUser")
	callee := model.NewCodeNode("c2", model.KindFunction, "SaveUser")
	m.CodeNodes[caller.ID] = caller
	m.CodeNodes[callee.ID] = callee

	srcDN := model.NewDataNode(dataNodeID("c1"), "FetchUser", model.RoleSource)
	srcDN.NodeID = "c1"
	tgtDN := model.NewDataNode(dataNodeID("c2"), "SaveUser", model.RoleSink)
	tgtDN.NodeID = "c2"
	m.DataFlow.Nodes[srcDN.ID] = srcDN
	m.DataFlow.Nodes[tgtDN.ID] = tgtDN

	flow := model.NewDataFlow("flow:0", model.FlowParameter, srcDN.ID, tgtDN.ID)
	flow.Confidence = 0.75
	m.DataFlow.Flows = append(m.DataFlow.Flows, flow)

	assert.NoError(t, NewIntegrationAnalyzer().Run(context.Background(), sc))

	assert.Len(t, m.Relationships, 1)
	assert.Equal(t, model.RelDependsOn, m.Relationships[0].Type)
	assert.Equal(t, string(model.RoleSource), caller.MetaString(model.MetaDataFlowRole))
	assert.Equal(t, string(model.RoleSink), callee.MetaString(model.MetaDataFlowRole))
}
