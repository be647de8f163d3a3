// Package codeindex is the top-level facade (spec §6): Analyze, Update,
// Save, Load, and Query. It wires the built-in analyzer set into the
// engine in dependency order and is the Go-native analogue of the
// teacher's top-level inspector.Factory facade
// (inspector/inspector.go's Factory.GetInspector as the one entry point
// callers reach for, rather than constructing each inspector.Inspector
// themselves).
package codeindex

import (
	"context"

	"github.com/viant/codeindex/analyzers/clustering"
	"github.com/viant/codeindex/analyzers/dataflow"
	"github.com/viant/codeindex/analyzers/dependency"
	"github.com/viant/codeindex/analyzers/language"
	"github.com/viant/codeindex/analyzers/pattern"
	"github.com/viant/codeindex/analyzers/relationship"
	"github.com/viant/codeindex/analyzers/semantic"
	"github.com/viant/codeindex/analyzers/structure"
	"github.com/viant/codeindex/engine"
	"github.com/viant/codeindex/fsadapter"
	"github.com/viant/codeindex/model"
	"github.com/viant/codeindex/parser"
	golangparser "github.com/viant/codeindex/parser/golang"
	"github.com/viant/codeindex/persistence"
	"github.com/viant/codeindex/query"
	"github.com/viant/codeindex/sharedcontext"
	"github.com/viant/codeindex/treebuilder"
)

// Result aliases the query package's result type so callers reading
// Query's return value don't need a second import just for the type
// name (spec §6's `query(model, query) → Result`). The query itself is
// expressed as a query.Query value — see the Query function below.
type Result = query.Result

// defaultParsers builds the built-in parser set. Only a Go parser ships
// in the core module (spec §1: concrete per-language parsers are
// external collaborators); callers embedding their own parsers should
// build a *parser.Registry directly and pass BuildRegistry's result to
// engine.New instead of calling Analyze/Update.
func defaultParsers() *parser.Registry {
	reg := parser.NewRegistry()
	reg.Register(golangparser.New())
	return reg
}

// BuildRegistry assembles the full built-in analyzer set: language
// detection, structure/dependency extraction, pattern discovery,
// relationships, data-flow role/flow/path/integration, and the semantic/
// clustering collaborator-hook stubs. Registration order does not decide
// execution order; engine.Order sorts the set by phase, then by declared
// dependencies, then by priority and id.
func BuildRegistry(parsers *parser.Registry, manifestPath string) *engine.Registry {
	reg := engine.NewRegistry()
	reg.Register(language.New())
	reg.Register(structure.New(parsers))
	reg.Register(dependency.New(manifestPath))
	reg.Register(pattern.New())
	reg.Register(relationship.New())
	reg.Register(dataflow.NewRoleAnalyzer())
	reg.Register(dataflow.NewFlowAnalyzer())
	reg.Register(dataflow.NewPathAnalyzer())
	reg.Register(dataflow.NewIntegrationAnalyzer())
	reg.Register(semantic.New())
	reg.Register(clustering.New())
	return reg
}

// Analyze runs a full indexing pass over rootPath through fs, returning
// the assembled model (spec §6: `analyze(rootPath, options) → Model`).
// manifestPath, when non-empty, is probed once for dependency-manifest
// evidence (spec §9's resolved Open Question); a Go project's go.mod is
// the conventional choice.
func Analyze(ctx context.Context, fs fsadapter.FileSystem, rootPath string, opts model.Options, manifestPath string) (*model.Model, error) {
	builder := treebuilder.New(fs, opts.Exclude, opts.MaxDepth)
	tree, err := builder.Build(ctx, rootPath)
	if err != nil {
		return nil, err
	}

	m := model.New(rootPath, opts)
	m.FileTree = tree

	sc := sharedcontext.New(fs, m)
	orch := engine.New(BuildRegistry(defaultParsers(), manifestPath))
	if err := orch.Run(ctx, sc); err != nil {
		return nil, err
	}
	return m, nil
}

// Update re-analyzes rootPath incrementally against an existing model
// (spec §6: `update(rootPath, existingModel, options) → Model`). It
// rebuilds the file tree, scopes the existing model to
// added/modified/deleted files via engine.Update, then re-runs the full
// pipeline — downstream phases are re-run globally, a pragmatic choice
// per spec §4.3's incremental-mode note.
func Update(ctx context.Context, fs fsadapter.FileSystem, rootPath string, existing *model.Model, opts model.Options, manifestPath string) (*model.Model, error) {
	builder := treebuilder.New(fs, opts.Exclude, opts.MaxDepth)
	newTree, err := builder.Build(ctx, rootPath)
	if err != nil {
		return nil, err
	}

	engine.Update(ctx, existing, existing.FileTree, newTree)
	existing.Options = opts

	sc := sharedcontext.New(fs, existing)
	orch := engine.New(BuildRegistry(defaultParsers(), manifestPath))
	if err := orch.Run(ctx, sc); err != nil {
		return nil, err
	}
	return existing, nil
}

// Save persists m to path (spec §6: `save(model, path)`).
func Save(ctx context.Context, m *model.Model, path string) error {
	return persistence.Save(ctx, m, path)
}

// Load reads a model previously written by Save (spec §6: `load(path) → Model`).
func Load(ctx context.Context, path string) (*model.Model, error) {
	return persistence.Load(ctx, path)
}

// Query evaluates q against m (spec §6: `query(model, query) → Result`).
func Query(m *model.Model, q query.Query) Result {
	return query.Run(m, q)
}
