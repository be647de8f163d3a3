package model

import "strings"

// Options is the immutable run configuration (spec §6). The zero value
// is not necessarily sane; callers should start from DefaultOptions.
type Options struct {
	Exclude                 []string
	MaxDepth                int
	IncludeAsyncFlows       bool
	IncludeConditionalFlows bool
	DataFlowMinConfidence   float64
	AdaptiveThreshold       float64
	SemanticAnalysis        bool
	IncludeTests            bool
	GenerateEmbeddings      bool
}

// DefaultOptions returns the recognized defaults named in spec §6.
func DefaultOptions() Options {
	return Options{
		MaxDepth:              5,
		IncludeAsyncFlows:     true,
		DataFlowMinConfidence: 0.6,
		AdaptiveThreshold:     0.7,
		IncludeTests:          true,
	}
}

// Excluded reports whether path contains any configured exclude
// substring (spec §4.4: "substring match on the path relative to root").
func (o Options) Excluded(relPath string) bool {
	for _, sub := range o.Exclude {
		if sub == "" {
			continue
		}
		if strings.Contains(relPath, sub) {
			return true
		}
	}
	return false
}
