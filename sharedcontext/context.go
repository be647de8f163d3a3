// Package sharedcontext is the single mutable owner of one indexing
// run's model (spec §4.2): the narrow, typed surface analyzers use to
// read and write the shared model, a file-content cache with release,
// the pattern registry, and observability hooks. No analyzer mutates
// the model directly; every mutation goes through this API so
// invariants can be checked in tests (spec §4.2).
package sharedcontext

import (
	"context"
	"sync"
	"time"

	"github.com/viant/codeindex/fsadapter"
	"github.com/viant/codeindex/model"
)

// Phase is the orchestrator's current stage (spec §4.3). Defined here,
// not in the engine package, so both sharedcontext and engine can depend
// on it without an import cycle.
type Phase int

const (
	PhaseInitialization Phase = iota
	PhaseFileAnalysis
	PhaseRelationshipMapping
	PhasePatternDiscovery
	PhaseSemanticAnalysis
	PhaseIntegration
	PhaseFinalization
)

func (p Phase) String() string {
	switch p {
	case PhaseInitialization:
		return "INITIALIZATION"
	case PhaseFileAnalysis:
		return "FILE_ANALYSIS"
	case PhaseRelationshipMapping:
		return "RELATIONSHIP_MAPPING"
	case PhasePatternDiscovery:
		return "PATTERN_DISCOVERY"
	case PhaseSemanticAnalysis:
		return "SEMANTIC_ANALYSIS"
	case PhaseIntegration:
		return "INTEGRATION"
	case PhaseFinalization:
		return "FINALIZATION"
	default:
		return "UNKNOWN"
	}
}

// Context is the run-scoped shared analysis context. Lifecycle is
// new → phases → finalize → drop (spec §9): tests construct a fresh
// Context per scenario; nothing here is a package-level static.
type Context struct {
	FS  fsadapter.FileSystem
	Model *model.Model

	currentPhase Phase
	cancelled    bool

	cacheMu sync.RWMutex
	cache   map[string][]byte
	lru     []string // most-recently-used at the end

	eventsMu sync.Mutex
	events   []model.Event
	metrics  map[string]float64
}

// New returns a fresh Context over m, reading file content through fs.
func New(fs fsadapter.FileSystem, m *model.Model) *Context {
	return &Context{
		FS:      fs,
		Model:   m,
		cache:   make(map[string][]byte),
		metrics: make(map[string]float64),
	}
}

// CurrentPhase returns the phase the orchestrator has entered.
func (c *Context) CurrentPhase() Phase { return c.currentPhase }

// SetPhase is called exclusively by the orchestrator when advancing.
func (c *Context) SetPhase(p Phase) { c.currentPhase = p }

// Cancel marks the run cancelled; the orchestrator checks this between
// analyzers and batches (spec §5).
func (c *Context) Cancel() { c.cancelled = true }

// Cancelled reports whether Cancel has been called.
func (c *Context) Cancelled() bool { return c.cancelled }

// GetFileContent returns path's bytes, populating the cache on a miss.
func (c *Context) GetFileContent(ctx context.Context, path string) ([]byte, error) {
	c.cacheMu.RLock()
	if content, ok := c.cache[path]; ok {
		c.cacheMu.RUnlock()
		c.touch(path)
		return content, nil
	}
	c.cacheMu.RUnlock()

	content, err := c.FS.ReadFile(ctx, path)
	if err != nil {
		return nil, model.NewIOError(path, err)
	}

	c.cacheMu.Lock()
	c.cache[path] = content
	c.cacheMu.Unlock()
	c.touch(path)
	return content, nil
}

func (c *Context) touch(path string) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	for i, p := range c.lru {
		if p == path {
			c.lru = append(c.lru[:i], c.lru[i+1:]...)
			break
		}
	}
	c.lru = append(c.lru, path)
}

// ReleaseFileContent drops path from the cache.
func (c *Context) ReleaseFileContent(path string) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	delete(c.cache, path)
	for i, p := range c.lru {
		if p == path {
			c.lru = append(c.lru[:i], c.lru[i+1:]...)
			break
		}
	}
}

// RequestMemoryRelease evicts least-recently-used cache entries under
// memory pressure. pressure is a fraction in [0,1] of the cache to
// evict; 1.0 clears the whole cache. Best-effort LRU purge (spec §5).
func (c *Context) RequestMemoryRelease(pressure float64) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	if pressure <= 0 || len(c.lru) == 0 {
		return
	}
	if pressure > 1 {
		pressure = 1
	}
	evictCount := int(float64(len(c.lru)) * pressure)
	if evictCount <= 0 {
		evictCount = 1
	}
	if evictCount > len(c.lru) {
		evictCount = len(c.lru)
	}
	for i := 0; i < evictCount; i++ {
		delete(c.cache, c.lru[i])
	}
	c.lru = c.lru[evictCount:]
}

// RegisterPattern adds p to the shared pattern registry.
func (c *Context) RegisterPattern(p *model.Pattern) {
	c.Model.Patterns.Register(p)
}

// FindMatchingPatterns delegates to the shared pattern registry.
func (c *Context) FindMatchingPatterns(text, typeTag string) []*model.Pattern {
	return c.Model.Patterns.FindMatchingPatterns(text, typeTag)
}

// RecordEvent appends an observability event; has no semantic effect on
// the model (spec §4.2).
func (c *Context) RecordEvent(kind string, payload map[string]interface{}) {
	c.eventsMu.Lock()
	defer c.eventsMu.Unlock()
	c.events = append(c.events, model.Event{Kind: kind, Payload: payload, At: time.Now()})
}

// RecordMetric sets a named metric value (last write wins, matching the
// teacher's style of simple counters rather than histograms).
func (c *Context) RecordMetric(name string, value float64) {
	c.eventsMu.Lock()
	defer c.eventsMu.Unlock()
	c.metrics[name] = value
}

// Events returns every recorded event, in recording order.
func (c *Context) Events() []model.Event {
	c.eventsMu.Lock()
	defer c.eventsMu.Unlock()
	out := make([]model.Event, len(c.events))
	copy(out, c.events)
	return out
}

// Metrics returns a copy of the recorded metrics.
func (c *Context) Metrics() map[string]float64 {
	c.eventsMu.Lock()
	defer c.eventsMu.Unlock()
	out := make(map[string]float64, len(c.metrics))
	for k, v := range c.metrics {
		out[k] = v
	}
	return out
}

// SummarizeIssues folds every "file-failed" class event into the
// model's Issues summary (spec §7). Called once, at FINALIZATION.
func (c *Context) SummarizeIssues() {
	for _, ev := range c.Events() {
		if ev.Kind != "file-failed" && ev.Kind != "pattern-failed" {
			continue
		}
		path, _ := ev.Payload["path"].(string)
		cause, _ := ev.Payload["cause"].(string)
		c.Model.AddIssue(ev.Kind, path, c.currentPhase.String(), cause)
	}
}

// Options returns the run's immutable configuration.
func (c *Context) Options() model.Options { return c.Model.Options }
