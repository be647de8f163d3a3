package clustering

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/codeindex/fsadapter"
	"github.com/viant/codeindex/model"
	"github.com/viant/codeindex/sharedcontext"
)

func TestRunGroupsSharedRoleSiblings(t *testing.T) {
	m := model.New("/r", model.DefaultOptions())
	opts := m.Options
	opts.SemanticAnalysis = true
	m.Options = opts

	a := model.NewCodeNode("a", model.KindFunction, "FetchUser")
	a.FilePath = "/r/user.go"
	a.Metadata[model.MetaDataFlowRole] = string(model.RoleSource)
	b := model.NewCodeNode("b", model.KindFunction, "FetchOrder")
	b.FilePath = "/r/user.go"
	b.Metadata[model.MetaDataFlowRole] = string(model.RoleSource)
	c := model.NewCodeNode("c", model.KindFunction, "SaveUser")
	c.FilePath = "/r/user.go"
	c.Metadata[model.MetaDataFlowRole] = string(model.RoleSink)
	m.CodeNodes[a.ID] = a
	m.CodeNodes[b.ID] = b
	m.CodeNodes[c.ID] = c

	sc := sharedcontext.New(fsadapter.NewMemoryFS(), m)
	err := New().Run(context.Background(), sc)
	assert.NoError(t, err)

	if assert.Len(t, m.Clusters, 1) {
		assert.ElementsMatch(t, []string{"a", "b"}, m.Clusters[0].CodeNodeIDs)
	}
}

func TestRunSkippedWhenSemanticAnalysisDisabled(t *testing.T) {
	m := model.New("/r", model.DefaultOptions())
	sc := sharedcontext.New(fsadapter.NewMemoryFS(), m)
	err := New().Run(context.Background(), sc)
	assert.NoError(t, err)
	assert.Empty(t, m.Clusters)
}
