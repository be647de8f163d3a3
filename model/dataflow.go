package model

// DataRole enumerates the roles a DataNode can play (spec §3/glossary).
type DataRole string

const (
	RoleSource      DataRole = "source"
	RoleSink        DataRole = "sink"
	RoleTransformer DataRole = "transformer"
	RoleStore       DataRole = "store"
)

// DataNode is a node in the data-flow graph, optionally bound to a code
// node via NodeID.
type DataNode struct {
	ID         string
	Name       string
	NodeID     string // optional owning CodeNode id
	Role       DataRole
	Confidence float64
	DataType   string
	Metadata   map[string]interface{}
}

// NewDataNode returns a data node with its metadata map ready.
func NewDataNode(id, name string, role DataRole) *DataNode {
	return &DataNode{ID: id, Name: name, Role: role, Metadata: make(map[string]interface{})}
}

// FlowType enumerates the recognized data-flow edge kinds (spec §3).
type FlowType string

const (
	FlowParameter      FlowType = "parameter"
	FlowReturn         FlowType = "return"
	FlowAssignment     FlowType = "assignment"
	FlowPropertyAccess FlowType = "property_access"
	FlowEventEmission  FlowType = "event_emission"
	FlowEventHandling  FlowType = "event_handling"
	FlowStateMutation  FlowType = "state_mutation"
	FlowMethodCall     FlowType = "method_call"
	FlowImport         FlowType = "import"
	FlowExport         FlowType = "export"
)

// DataFlow is a directed edge between two data nodes.
type DataFlow struct {
	ID              string
	Type            FlowType
	SourceDataNodeID string
	TargetDataNodeID string
	Transformations []string
	Async           bool
	Conditional     bool
	Confidence      float64
	Metadata        map[string]interface{}
}

// NewDataFlow returns a flow with its metadata map ready.
func NewDataFlow(id string, typ FlowType, sourceID, targetID string) *DataFlow {
	return &DataFlow{ID: id, Type: typ, SourceDataNodeID: sourceID, TargetDataNodeID: targetID, Metadata: make(map[string]interface{})}
}

// DataFlowPath is a simple path through the data-flow graph: an ordered
// sequence of data-node ids connected by the listed flow ids.
type DataFlowPath struct {
	ID           string
	Name         string
	Description  string
	Nodes        []string
	Flows        []string
	EntryPoints  []string
	ExitPoints   []string
	Confidence   float64
	Metadata     map[string]interface{}
}

// DataFlowGraph is the full inferred data-flow model for a run.
type DataFlowGraph struct {
	Nodes map[string]*DataNode
	Flows []*DataFlow
	Paths []*DataFlowPath
}

// NewDataFlowGraph returns an empty graph.
func NewDataFlowGraph() *DataFlowGraph {
	return &DataFlowGraph{Nodes: make(map[string]*DataNode)}
}

// FlowsBySource indexes Flows by their SourceDataNodeID, preserving the
// insertion (registration) order within each bucket — path enumeration
// relies on this for deterministic branch ordering (spec §4.6.3/§9).
func (g *DataFlowGraph) FlowsBySource() map[string][]*DataFlow {
	idx := make(map[string][]*DataFlow)
	for _, f := range g.Flows {
		idx[f.SourceDataNodeID] = append(idx[f.SourceDataNodeID], f)
	}
	return idx
}

// FlowsByTarget indexes Flows by their TargetDataNodeID, same ordering
// guarantee as FlowsBySource.
func (g *DataFlowGraph) FlowsByTarget() map[string][]*DataFlow {
	idx := make(map[string][]*DataFlow)
	for _, f := range g.Flows {
		idx[f.TargetDataNodeID] = append(idx[f.TargetDataNodeID], f)
	}
	return idx
}
