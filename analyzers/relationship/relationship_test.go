package relationship

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/codeindex/fsadapter"
	"github.com/viant/codeindex/model"
	"github.com/viant/codeindex/sharedcontext"
)

func TestRunEmitsContainsAndExtends(t *testing.T) {
	m := model.New("/r", model.DefaultOptions())

	base := model.NewCodeNode("base", model.KindClass, "Base")
	derived := model.NewCodeNode("derived", model.KindClass, "Derived")
	derived.Metadata[model.MetaExtends] = "Base"
	method := model.NewCodeNode("derived#m", model.KindMethod, "M")
	derived.AddChild("M", method.ID)

	m.CodeNodes[base.ID] = base
	m.CodeNodes[derived.ID] = derived
	m.CodeNodes[method.ID] = method

	sc := sharedcontext.New(fsadapter.NewMemoryFS(), m)
	err := New().Run(context.Background(), sc)
	assert.NoError(t, err)

	var sawContains, sawExtends bool
	for _, rel := range m.Relationships {
		if rel.Type == model.RelContains && rel.SourceID == "derived" && rel.TargetID == "derived#m" {
			sawContains = true
		}
		if rel.Type == model.RelExtends && rel.SourceID == "derived" && rel.TargetID == "base" {
			sawExtends = true
		}
	}
	assert.True(t, sawContains)
	assert.True(t, sawExtends)
}

func TestRunOnlyEmitsImportsForResolvedLocalTargets(t *testing.T) {
	m := model.New("/r", model.DefaultOptions())
	entry := model.NewCodeNode("/r/entry.js", model.KindModule, "/r/entry.js")
	helper := model.NewCodeNode("/r/helper.js", model.KindModule, "/r/helper.js")
	m.CodeNodes[entry.ID] = entry
	m.CodeNodes[helper.ID] = helper

	m.Dependencies.Imports = []*model.ImportStatement{
		{SourceFileID: "/r/entry.js", ModuleSpecifier: "./helper", Category: model.CategoryLocalFile, ResolvedPath: "/r/helper.js", Confidence: 0.8},
		{SourceFileID: "/r/entry.js", ModuleSpecifier: "./missing", Category: model.CategoryLocalFile, ResolvedPath: "", Confidence: 0.8},
		{SourceFileID: "/r/entry.js", ModuleSpecifier: "lodash", Category: model.CategoryExternalPackage, ResolvedPath: "", Confidence: 0.8},
	}

	sc := sharedcontext.New(fsadapter.NewMemoryFS(), m)
	assert.NoError(t, New().Run(context.Background(), sc))

	var importRels []*model.Relationship
	for _, rel := range m.Relationships {
		if rel.Type == model.RelImports {
			importRels = append(importRels, rel)
		}
	}
	assert.Len(t, importRels, 1)
	assert.Equal(t, "/r/entry.js", importRels[0].SourceID)
	assert.Equal(t, "/r/helper.js", importRels[0].TargetID)
}

func TestRunDeterministicAcrossRuns(t *testing.T) {
	m := model.New("/r", model.DefaultOptions())
	a := model.NewCodeNode("a", model.KindClass, "A")
	b := model.NewCodeNode("a#b", model.KindMethod, "B")
	a.AddChild("B", b.ID)
	m.CodeNodes[a.ID] = a
	m.CodeNodes[b.ID] = b

	sc := sharedcontext.New(fsadapter.NewMemoryFS(), m)
	assert.NoError(t, New().Run(context.Background(), sc))
	first := len(m.Relationships)
	assert.NoError(t, New().Run(context.Background(), sc))
	assert.Equal(t, first*2, len(m.Relationships))
}
