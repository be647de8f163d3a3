package engine

import (
	"sort"

	"github.com/viant/codeindex/model"
)

// Order returns every registered analyzer in an execution order that
// satisfies both phase ordering (spec §4.3: phases never interleave)
// and intra-phase dependency ordering (Kahn's algorithm), breaking ties
// by descending Priority, then by analyzer id, for determinism (spec
// §9). A dependency cycle, or a
// dependency on an unregistered analyzer, is reported as a
// model.ConfigError — run configuration problems are caught before any
// analyzer executes, matching spec §7's "fail fast on ConfigError"
// requirement.
func Order(r *Registry) ([]Analyzer, error) {
	all := r.All()
	byID := make(map[string]Analyzer, len(all))
	for _, a := range all {
		byID[a.ID()] = a
	}
	for _, a := range all {
		for _, dep := range a.DependsOn() {
			if _, ok := byID[dep]; !ok {
				return nil, model.NewConfigError(unknownDependencyErr{analyzer: a.ID(), dependency: dep}.Error())
			}
		}
	}

	// group by phase, preserving phase ordinal order
	byPhase := make(map[int][]Analyzer)
	for _, a := range all {
		p := int(a.Phase())
		byPhase[p] = append(byPhase[p], a)
	}
	var phases []int
	for p := range byPhase {
		phases = append(phases, p)
	}
	sort.Ints(phases)

	var ordered []Analyzer
	for _, p := range phases {
		sorted, err := topoSort(byPhase[p])
		if err != nil {
			return nil, err
		}
		ordered = append(ordered, sorted...)
	}
	return ordered, nil
}

// topoSort performs Kahn's algorithm over analyzers within a single
// phase. At each step it picks the ready analyzer with the highest
// declared Priority, breaking any remaining tie by id lexicographically
// (spec §2/§4.3), so the result is deterministic regardless of
// registration order.
func topoSort(analyzers []Analyzer) ([]Analyzer, error) {
	byID := make(map[string]Analyzer, len(analyzers))
	inDegree := make(map[string]int, len(analyzers))
	dependents := make(map[string][]string)

	for _, a := range analyzers {
		byID[a.ID()] = a
		if _, ok := inDegree[a.ID()]; !ok {
			inDegree[a.ID()] = 0
		}
	}
	for _, a := range analyzers {
		for _, dep := range a.DependsOn() {
			if _, ok := byID[dep]; !ok {
				// dependency belongs to an earlier phase; already satisfied.
				continue
			}
			inDegree[a.ID()]++
			dependents[dep] = append(dependents[dep], a.ID())
		}
	}

	var ready []string
	for id, deg := range inDegree {
		if deg == 0 {
			ready = append(ready, id)
		}
	}
	sortReady(ready, byID)

	var out []Analyzer
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		out = append(out, byID[id])

		next := append([]string(nil), dependents[id]...)
		for _, dep := range next {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
		sortReady(ready, byID)
	}

	if len(out) != len(analyzers) {
		return nil, model.NewConfigError(cycleErr{}.Error())
	}
	return out, nil
}

// sortReady orders a ready set by descending Priority, then by id
// lexicographically (spec §2/§4.3's exact tiebreak rule).
func sortReady(ready []string, byID map[string]Analyzer) {
	sort.Slice(ready, func(i, j int) bool {
		pi, pj := byID[ready[i]].Priority(), byID[ready[j]].Priority()
		if pi != pj {
			return pi > pj
		}
		return ready[i] < ready[j]
	})
}

type unknownDependencyErr struct {
	analyzer   string
	dependency string
}

func (e unknownDependencyErr) Error() string {
	return "analyzer " + e.analyzer + " depends on unregistered analyzer " + e.dependency
}

type cycleErr struct{}

func (cycleErr) Error() string { return "dependency cycle among analyzers in the same phase" }
