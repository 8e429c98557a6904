package model

// ProjectMetadata describes a project page from the workspace: its display
// name plus the free-text tiers used as ranking context. Fetched lazily and
// cached for the lifetime of a run; immutable once constructed. Empty fields
// carry omitempty tags so serialized prompt context stays small.
type ProjectMetadata struct {
	Name     string   `json:"name"`
	Priority string   `json:"priority,omitempty"`
	Status   string   `json:"status,omitempty"`
	Types    []string `json:"types,omitempty"`
}
