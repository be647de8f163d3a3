package model

import "time"

// Model is the persisted document's in-memory shape (spec §6): every
// top-level collection the engine produces for one indexing run.
type Model struct {
	RootPath      string
	FileTree      *FileTree
	Languages     map[string]LanguageStats
	CodeNodes     map[string]*CodeNode
	Relationships []*Relationship
	Patterns      *PatternRegistry
	DataFlow      *DataFlowGraph
	Dependencies  *DependencyGraph
	Concepts      []*Concept
	SemanticUnits []*SemanticUnit
	Clusters      []*Cluster
	Issues        []IssueSummary
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Options       Options
}

// LanguageStats aggregates per-language file count and byte totals
// (spec §2's language-detector responsibility).
type LanguageStats struct {
	FileCount int
	TotalSize int64
}

// New returns an empty model for rootPath with the given options.
func New(rootPath string, opts Options) *Model {
	return &Model{
		RootPath:  rootPath,
		FileTree:  NewFileTree(rootPath),
		Languages: make(map[string]LanguageStats),
		CodeNodes: make(map[string]*CodeNode),
		Patterns:  NewPatternRegistry(),
		DataFlow:  NewDataFlowGraph(),
		Dependencies: NewDependencyGraph(),
		Options:   opts,
	}
}

// AddIssue folds a recoverable-error class event into the model's issues
// summary, incrementing Count if an identical (kind, path, phase,
// message) entry already exists.
func (m *Model) AddIssue(kind, path, phase, message string) {
	for i := range m.Issues {
		is := &m.Issues[i]
		if is.Kind == kind && is.Path == path && is.Phase == phase && is.Message == message {
			is.Count++
			return
		}
	}
	m.Issues = append(m.Issues, IssueSummary{Kind: kind, Path: path, Phase: phase, Message: message, Count: 1})
}
