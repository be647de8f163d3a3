package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/codeindex/model"
	"github.com/viant/codeindex/sharedcontext"
)

type stubAnalyzer struct {
	id       string
	phase    sharedcontext.Phase
	deps     []string
	priority int
}

func (s stubAnalyzer) ID() string                                        { return s.id }
func (s stubAnalyzer) Phase() sharedcontext.Phase                        { return s.phase }
func (s stubAnalyzer) DependsOn() []string                               { return s.deps }
func (s stubAnalyzer) Priority() int                                     { return s.priority }
func (s stubAnalyzer) Run(context.Context, *sharedcontext.Context) error { return nil }

func TestOrderRespectsPhaseAndDependency(t *testing.T) {
	r := NewRegistry()
	r.Register(stubAnalyzer{id: "relationship", phase: sharedcontext.PhaseRelationshipMapping})
	r.Register(stubAnalyzer{id: "structure", phase: sharedcontext.PhaseFileAnalysis})
	r.Register(stubAnalyzer{id: "language", phase: sharedcontext.PhaseFileAnalysis, deps: nil})
	r.Register(stubAnalyzer{id: "dependency", phase: sharedcontext.PhaseFileAnalysis, deps: []string{"structure"}})

	ordered, err := Order(r)
	assert.NoError(t, err)

	index := make(map[string]int)
	for i, a := range ordered {
		index[a.ID()] = i
	}
	assert.Less(t, index["structure"], index["relationship"])
	assert.Less(t, index["structure"], index["dependency"])
	assert.Less(t, index["language"], index["relationship"])
}

func TestOrderDeterministicTiebreak(t *testing.T) {
	r := NewRegistry()
	r.Register(stubAnalyzer{id: "zeta", phase: sharedcontext.PhaseFileAnalysis})
	r.Register(stubAnalyzer{id: "alpha", phase: sharedcontext.PhaseFileAnalysis})

	ordered, err := Order(r)
	assert.NoError(t, err)
	assert.Equal(t, "alpha", ordered[0].ID())
	assert.Equal(t, "zeta", ordered[1].ID())
}

func TestOrderBreaksTieByDescendingPriorityBeforeID(t *testing.T) {
	r := NewRegistry()
	r.Register(stubAnalyzer{id: "alpha", phase: sharedcontext.PhaseFileAnalysis, priority: 0})
	r.Register(stubAnalyzer{id: "zeta", phase: sharedcontext.PhaseFileAnalysis, priority: 5})

	ordered, err := Order(r)
	assert.NoError(t, err)
	assert.Equal(t, "zeta", ordered[0].ID())
	assert.Equal(t, "alpha", ordered[1].ID())
}

func TestOrderDetectsCycle(t *testing.T) {
	r := NewRegistry()
	r.Register(stubAnalyzer{id: "a", phase: sharedcontext.PhaseFileAnalysis, deps: []string{"b"}})
	r.Register(stubAnalyzer{id: "b", phase: sharedcontext.PhaseFileAnalysis, deps: []string{"a"}})

	_, err := Order(r)
	assert.Error(t, err)
	var cfgErr model.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestOrderRejectsUnknownDependency(t *testing.T) {
	r := NewRegistry()
	r.Register(stubAnalyzer{id: "a", phase: sharedcontext.PhaseFileAnalysis, deps: []string{"ghost"}})

	_, err := Order(r)
	assert.Error(t, err)
}
