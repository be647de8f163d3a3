package engine

import (
	"context"
	"errors"

	"github.com/viant/codeindex/model"
	"github.com/viant/codeindex/sharedcontext"
)

// Orchestrator drives registered analyzers through the seven ordered
// phases (spec §4.3), checking for cancellation between each analyzer
// so a long run can be aborted without corrupting the shared model.
type Orchestrator struct {
	registry *Registry
}

// New returns an Orchestrator over the given analyzer registry.
func New(registry *Registry) *Orchestrator {
	return &Orchestrator{registry: registry}
}

// Run executes every registered analyzer in dependency order, advancing
// sc's CurrentPhase as it crosses phase boundaries, and finishes by
// folding recorded failure events into the model's issue summary
// (spec §7). A ConfigError from Order aborts before any analyzer runs;
// an InvariantError from any analyzer aborts immediately without
// running the remaining analyzers, since invariant failures are never
// recoverable (spec §7/§8). IOError/ParseError/PatternError returned by
// an individual analyzer are recorded as issues and do not stop the run.
func (o *Orchestrator) Run(ctx context.Context, sc *sharedcontext.Context) error {
	ordered, err := Order(o.registry)
	if err != nil {
		return err
	}

	var currentPhase sharedcontext.Phase = -1
	for _, a := range ordered {
		if ctx.Err() != nil || sc.Cancelled() {
			sc.SummarizeIssues()
			return model.Cancelled{}
		}

		if a.Phase() != currentPhase {
			currentPhase = a.Phase()
			sc.SetPhase(currentPhase)
		}

		if runErr := a.Run(ctx, sc); runErr != nil {
			if isFatal(runErr) {
				sc.SummarizeIssues()
				return runErr
			}
			sc.RecordEvent("analyzer-failed", map[string]interface{}{
				"analyzer": a.ID(),
				"phase":    currentPhase.String(),
				"cause":    runErr.Error(),
			})
		}
	}

	sc.SetPhase(sharedcontext.PhaseFinalization)
	sc.SummarizeIssues()
	return nil
}

// isFatal reports whether err must abort the run rather than being
// recorded as a recoverable issue (spec §7: ConfigError and
// InvariantError always abort; IOError/ParseError/PatternError never
// do).
func isFatal(err error) bool {
	var cfg model.ConfigError
	var inv model.InvariantError
	return errors.As(err, &cfg) || errors.As(err, &inv)
}
