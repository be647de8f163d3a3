package persistence

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/codeindex/model"
)

func buildSampleModel() *model.Model {
	m := model.New("/repo", model.DefaultOptions())
	m.CreatedAt = time.Unix(1700000000, 0).UTC()
	m.UpdatedAt = m.CreatedAt

	root := &model.Directory{Path: "/repo", Name: "repo", Hash: 7, Children: []string{"/repo/a.go"}}
	m.FileTree.AddDirectory(root)
	file := &model.File{Path: "/repo/a.go", Name: "a.go", Extension: "go", Size: 42, Hash: 9, Language: "go", Metadata: map[string]interface{}{"k": "v"}}
	file.SetParentKey("/repo")
	m.FileTree.AddFile(file)
	m.Languages["go"] = model.LanguageStats{FileCount: 1, TotalSize: 42}

	fn := model.NewCodeNode("fn1", model.KindFunction, "Load")
	fn.FilePath = "/repo/a.go"
	fn.Confidence = 0.8
	param := model.NewCodeNode("p1", model.KindParameter, "x")
	param.FilePath = "/repo/a.go"
	fn.AddChild("x", "p1")
	m.CodeNodes["fn1"] = fn
	m.CodeNodes["p1"] = param

	rel := model.NewRelationship("r1", model.RelCalls, "fn1", "p1")
	rel.Confidence = 0.7
	m.Relationships = append(m.Relationships, rel)

	p := &model.Pattern{Type: model.PatternTagDataSource, Name: "fetch", Regex: regexp.MustCompile(`fetch`), Confidence: 0.7, Metadata: map[string]interface{}{}}
	m.Patterns.Register(p)

	source := model.NewDataNode("d1", "Load", model.RoleSource)
	source.NodeID = "fn1"
	sink := model.NewDataNode("d2", "x", model.RoleSink)
	m.DataFlow.Nodes["d1"] = source
	m.DataFlow.Nodes["d2"] = sink
	flow := model.NewDataFlow("flow1", model.FlowParameter, "d1", "d2")
	flow.Confidence = 0.75
	m.DataFlow.Flows = append(m.DataFlow.Flows, flow)
	m.DataFlow.Paths = append(m.DataFlow.Paths, &model.DataFlowPath{
		ID: "path1", Name: "Load to x", Nodes: []string{"d1", "d2"}, Flows: []string{"flow1"},
		EntryPoints: []string{"d1"}, ExitPoints: []string{"d2"}, Confidence: 0.75,
	})

	dep := model.NewDependency("lodash", model.CategoryExternalPackage)
	dep.Upsert("/repo/a.go", []string{"map"}, 0.9)
	m.Dependencies.Dependencies["lodash"] = dep
	m.Dependencies.Imports = append(m.Dependencies.Imports, &model.ImportStatement{SourceFileID: "/repo/a.go", Line: 1, ModuleSpecifier: "lodash", Category: model.CategoryExternalPackage, Confidence: 0.9})

	m.Concepts = append(m.Concepts, &model.Concept{ID: "c1", Name: "loading"})
	m.Clusters = append(m.Clusters, &model.Cluster{ID: "cl1", Name: "a.go#source", CodeNodeIDs: []string{"fn1"}})

	return m
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	m := buildSampleModel()

	data, err := Marshal(m)
	assert.NoError(t, err)

	loaded, err := Unmarshal(data)
	assert.NoError(t, err)

	assert.Equal(t, m.RootPath, loaded.RootPath)
	assert.Equal(t, m.Languages, loaded.Languages)
	assert.Equal(t, m.Options, loaded.Options)
	assert.Len(t, loaded.CodeNodes, 2)
	assert.Equal(t, "Load", loaded.CodeNodes["fn1"].Name)
	childID, ok := loaded.CodeNodes["fn1"].ChildIDByName("x")
	assert.True(t, ok)
	assert.Equal(t, "p1", childID)
	assert.Len(t, loaded.Relationships, 1)
	assert.Equal(t, model.RelCalls, loaded.Relationships[0].Type)
	assert.NotEmpty(t, loaded.Patterns.ByType(model.PatternTagDataSource))
	assert.True(t, loaded.Patterns.ByType(model.PatternTagDataSource)[0].Matches("fetchUser"))
	assert.Len(t, loaded.DataFlow.Nodes, 2)
	assert.Len(t, loaded.DataFlow.Flows, 1)
	assert.Len(t, loaded.DataFlow.Paths, 1)
	assert.Equal(t, 1, loaded.Dependencies.Dependencies["lodash"].ImportCount)
	assert.Len(t, loaded.Concepts, 1)
	assert.Len(t, loaded.Clusters, 1)
	assert.Equal(t, m.FileTree.Files["/repo/a.go"].ParentKey(), loaded.FileTree.Files["/repo/a.go"].ParentKey())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := buildSampleModel()
	dir := t.TempDir()
	path := filepath.Join(dir, "model.yaml")

	assert.NoError(t, Save(context.Background(), m, path))
	loaded, err := Load(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, m.RootPath, loaded.RootPath)
	assert.Len(t, loaded.CodeNodes, 2)
}

func TestMarshalIsDeterministic(t *testing.T) {
	m := buildSampleModel()
	a, err := Marshal(m)
	assert.NoError(t, err)
	b, err := Marshal(m)
	assert.NoError(t, err)
	assert.Equal(t, a, b)
}
