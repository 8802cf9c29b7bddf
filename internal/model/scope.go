package model

// ScopeKind distinguishes single-entity from consolidated reports.
type ScopeKind string

const (
	ScopeSingle       ScopeKind = "single"
	ScopeConsolidated ScopeKind = "consolidated"
)

// Scope describes which entities a report covers.
type Scope struct {
	Kind       ScopeKind `json:"kind"`
	EntityIDs  []string  `json:"entity_ids"`
	EntityName string    `json:"entity_name"`
	Region     string    `json:"region,omitempty"`
}

// Empty reports whether the scope matched no entity.
func (s Scope) Empty() bool {
	return len(s.EntityIDs) == 0
}
