package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/codeindex/model"
)

func buildModel() *model.Model {
	m := model.New("/r", model.DefaultOptions())
	load := model.NewCodeNode("fn1", model.KindFunction, "LoadUser")
	load.FilePath = "/r/a.go"
	load.Confidence = 0.8
	save := model.NewCodeNode("fn2", model.KindFunction, "SaveUser")
	save.FilePath = "/r/a.go"
	save.Confidence = 0.6
	m.CodeNodes["fn1"] = load
	m.CodeNodes["fn2"] = save

	rel := model.NewRelationship("r1", model.RelCalls, "fn2", "fn1")
	rel.Confidence = 0.9
	m.Relationships = append(m.Relationships, rel)

	src := model.NewDataNode("d1", "LoadUser", model.RoleSource)
	sink := model.NewDataNode("d2", "SaveUser", model.RoleSink)
	m.DataFlow.Nodes["d1"] = src
	m.DataFlow.Nodes["d2"] = sink
	flow := model.NewDataFlow("flow1", model.FlowReturn, "d1", "d2")
	flow.Confidence = 0.7
	m.DataFlow.Flows = append(m.DataFlow.Flows, flow)
	m.DataFlow.Paths = append(m.DataFlow.Paths, &model.DataFlowPath{ID: "p1", Nodes: []string{"d1", "d2"}, Flows: []string{"flow1"}})

	dep := model.NewDependency("lodash", model.CategoryExternalPackage)
	dep.Confidence = 0.8
	m.Dependencies.Dependencies["lodash"] = dep

	return m
}

func TestRunFiltersCodeNodesByKindAndName(t *testing.T) {
	m := buildModel()
	res := Run(m, Query{WantCodeNodes: true, Kind: model.KindFunction, NameContains: "Load"})
	assert.Len(t, res.CodeNodes, 1)
	assert.Equal(t, "LoadUser", res.CodeNodes[0].Name)
}

func TestRunFiltersByMinConfidence(t *testing.T) {
	m := buildModel()
	res := Run(m, Query{WantCodeNodes: true, MinConfidence: 0.7})
	assert.Len(t, res.CodeNodes, 1)
	assert.Equal(t, "LoadUser", res.CodeNodes[0].Name)
}

func TestCallersAndCallees(t *testing.T) {
	m := buildModel()
	assert.Len(t, Callers(m, "fn1"), 1)
	assert.Len(t, Callees(m, "fn2"), 1)
	assert.Empty(t, Callers(m, "fn2"))
}

func TestFlowsFromAndPathsThrough(t *testing.T) {
	m := buildModel()
	assert.Len(t, FlowsFrom(m, "d1"), 1)
	assert.Len(t, PathsThrough(m, "d2"), 1)
	assert.Empty(t, FlowsFrom(m, "d2"))
}

func TestFindByName(t *testing.T) {
	m := buildModel()
	found := FindByName(m, "SaveUser")
	assert.Len(t, found, 1)
	assert.Equal(t, "fn2", found[0].ID)
}

func TestRunFiltersDependenciesByCategory(t *testing.T) {
	m := buildModel()
	res := Run(m, Query{WantDependencies: true, Category: model.CategoryExternalPackage})
	assert.Len(t, res.Dependencies, 1)
	res = Run(m, Query{WantDependencies: true, Category: model.CategoryLocalFile})
	assert.Empty(t, res.Dependencies)
}
