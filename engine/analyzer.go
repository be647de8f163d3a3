// Package engine is the phase-ordered orchestrator (spec §4.3): it
// topologically sorts registered analyzers by declared dependency,
// drives the seven phases in order, batches file-level work, and
// supports incremental re-analysis via hashtree.CompareTrees.
package engine

import (
	"context"

	"github.com/viant/codeindex/sharedcontext"
)

// Analyzer is the capability an orchestrator-managed unit of work
// implements. Rather than deep interface inheritance, each analyzer
// declares its own id, the phase it runs in, and the ids of analyzers
// it depends on (spec §9: "tagged capability sets over deep
// inheritance" — mirrors the teacher's flat, functional-option-style
// composition in analyzer/option.go rather than a class hierarchy).
type Analyzer interface {
	// ID uniquely identifies this analyzer within a Registry.
	ID() string
	// Phase is the orchestrator phase this analyzer runs under.
	Phase() sharedcontext.Phase
	// DependsOn lists analyzer ids that must run first, within the same
	// phase or an earlier one.
	DependsOn() []string
	// Priority breaks ties among analyzers left equally ready by the
	// dependency graph within one phase: higher runs first (spec §2/§4.3:
	// "ties are broken by descending priority, then by id
	// lexicographically").
	Priority() int
	// Run executes the analyzer against the shared context.
	Run(ctx context.Context, sc *sharedcontext.Context) error
}

// Registry holds every analyzer known to one orchestrator run.
type Registry struct {
	byID []Analyzer
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry { return &Registry{} }

// Register adds a into the registry. Order of registration does not
// affect Order's result; phases, dependency declarations, priority and
// id fix execution order.
func (r *Registry) Register(a Analyzer) { r.byID = append(r.byID, a) }

// All returns every registered analyzer in registration order.
func (r *Registry) All() []Analyzer { return r.byID }

// ByID looks up a registered analyzer, or returns false if absent.
func (r *Registry) ByID(id string) (Analyzer, bool) {
	for _, a := range r.byID {
		if a.ID() == id {
			return a, true
		}
	}
	return nil, false
}
