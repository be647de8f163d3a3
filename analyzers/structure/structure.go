// Package structure is the code-structure extractor analyzer (spec
// §4.8): for every file whose detected language has a registered
// parser.Parser, it parses the file's content and merges the resulting
// CodeNode tree into the shared model. File-level parsing is the one
// workload the orchestrator is allowed to run concurrently (spec §5),
// so this analyzer uses engine.Batch and merges per-file results back
// in the file tree's deterministic walk order regardless of which
// worker finished first.
package structure

import (
	"context"

	"github.com/viant/codeindex/engine"
	"github.com/viant/codeindex/model"
	"github.com/viant/codeindex/parser"
	"github.com/viant/codeindex/sharedcontext"
)

// Analyzer parses every recognized-language file into CodeNodes.
type Analyzer struct {
	parsers *parser.Registry
}

// New returns a structure analyzer resolving parsers from registry.
func New(registry *parser.Registry) *Analyzer {
	return &Analyzer{parsers: registry}
}

func (a *Analyzer) ID() string                 { return "structure" }
func (a *Analyzer) Phase() sharedcontext.Phase { return sharedcontext.PhaseFileAnalysis }
func (a *Analyzer) DependsOn() []string        { return []string{"language"} }
func (a *Analyzer) Priority() int              { return 10 }

type parsedFile struct {
	nodes  map[string]*model.CodeNode
	rootID string
}

// Run parses every file with a registered parser and merges the result
// into sc.Model.CodeNodes, walking files in the tree's deterministic
// order so merge order never depends on worker completion order
// (spec §5(c), §9). A file whose detected language has no registered
// parser still gets exactly one module-kind CodeNode with zero children
// (spec §8, boundary behavior 10), keyed the same way parser.Parser
// implementations key their own root node: by file path.
func (a *Analyzer) Run(ctx context.Context, sc *sharedcontext.Context) error {
	tree := sc.Model.FileTree
	var paths []string
	for _, p := range tree.OrderedFilePaths() {
		file := tree.Files[p]
		if _, ok := a.parsers.Resolve(file.Language); ok {
			paths = append(paths, p)
			continue
		}
		node := model.NewCodeNode(p, model.KindModule, p)
		node.FilePath = p
		node.Language = file.Language
		sc.Model.CodeNodes[p] = node
	}
	if len(paths) == 0 {
		return nil
	}

	results, err := engine.Batch(ctx, paths, func(ctx context.Context, path string) (interface{}, error) {
		file := tree.Files[path]
		p, _ := a.parsers.Resolve(file.Language)
		content, err := sc.GetFileContent(ctx, path)
		if err != nil {
			return nil, err
		}
		nodes, rootID, err := p.ParseFile(ctx, path, content)
		if err != nil {
			return nil, err
		}
		return parsedFile{nodes: nodes, rootID: rootID}, nil
	})
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			sc.RecordEvent("file-failed", map[string]interface{}{
				"path":  r.Path,
				"cause": r.Err.Error(),
			})
			continue
		}
		pf := r.Value.(parsedFile)
		for id, node := range pf.nodes {
			sc.Model.CodeNodes[id] = node
		}
	}
	return nil
}
