// Package parser defines the per-language code-structure extraction
// collaborator (spec §6): the engine never parses source itself, it
// resolves a Parser by language tag and asks it to turn file content
// into a model.CodeNode tree. This is the Go-native analogue of
// inspector.Factory/inspector.Inspector in the teacher's
// inspector/inspector.go — one Registry keyed by language tag instead
// of one factory method switching on file extension.
package parser

import (
	"context"

	"github.com/viant/codeindex/model"
)

// Parser turns one file's raw content into a tree of CodeNodes rooted
// at a single module-kind node representing the file itself. Nodes'
// IDs must be stable across repeated parses of unchanged content, since
// relationship/dataflow analyzers key off them across phases.
type Parser interface {
	// Language returns the language tag this parser handles (e.g. "go").
	Language() string
	// ParseFile parses content (the bytes of path) and returns every
	// CodeNode discovered, keyed by id, plus the id of the file's root
	// node.
	ParseFile(ctx context.Context, path string, content []byte) (nodes map[string]*model.CodeNode, rootID string, err error)
}

// Registry resolves a Parser by language tag.
type Registry struct {
	byLanguage map[string]Parser
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byLanguage: make(map[string]Parser)}
}

// Register adds p under its own Language() tag.
func (r *Registry) Register(p Parser) {
	r.byLanguage[p.Language()] = p
}

// Resolve looks up the parser registered for language, if any.
func (r *Registry) Resolve(language string) (Parser, bool) {
	p, ok := r.byLanguage[language]
	return p, ok
}
