package model

// RelationType enumerates the recognized relationship edge types.
type RelationType string

const (
	RelCalls      RelationType = "calls"
	RelImports    RelationType = "imports"
	RelExports    RelationType = "exports"
	RelExtends    RelationType = "extends"
	RelImplements RelationType = "implements"
	RelUses       RelationType = "uses"
	RelDependsOn  RelationType = "depends_on"
	RelReferences RelationType = "references"
	RelContains   RelationType = "contains"
)

// Relationship is a directed, typed edge between two code nodes.
type Relationship struct {
	ID         string
	Type       RelationType
	SourceID   string
	TargetID   string
	Weight     float64
	Confidence float64
	Metadata   map[string]interface{}
}

// Context returns the free-form textual fragment carried in metadata
// under "context", or "" if none was recorded.
func (r *Relationship) Context() string {
	if r.Metadata == nil {
		return ""
	}
	s, _ := r.Metadata["context"].(string)
	return s
}

// NewRelationship returns a relationship with its metadata map ready.
func NewRelationship(id string, typ RelationType, sourceID, targetID string) *Relationship {
	return &Relationship{
		ID:       id,
		Type:     typ,
		SourceID: sourceID,
		TargetID: targetID,
		Metadata: make(map[string]interface{}),
	}
}

// RelationKindsForDataFlow are the relationship types the data-flow
// analyzer considers when inferring flows from existing relationships
// (spec §4.6.2).
var RelationKindsForDataFlow = map[RelationType]bool{
	RelCalls:      true,
	RelImports:    true,
	RelExports:    true,
	RelUses:       true,
	RelDependsOn:  true,
	RelReferences: true,
}
