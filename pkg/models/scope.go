package models

// ScopeKind distinguishes the two supported document scope shapes.
type ScopeKind string

const (
	// ScopeNumeric is a character range within the document.
	ScopeNumeric ScopeKind = "numeric"
	// ScopeOpaque is a named region (e.g. a section label). Opaque scopes
	// never participate in conflict detection.
	ScopeOpaque ScopeKind = "opaque"
)

// DocumentScope describes the document region a write task intends to
// modify. It is a tagged variant: either a numeric range or an opaque
// label. Numeric ranges are stored normalized so From <= To.
type DocumentScope struct {
	// Kind selects which shape this scope is.
	Kind ScopeKind `json:"kind"`
	// From is the inclusive range start (numeric scopes only).
	From int `json:"from,omitempty"`
	// To is the inclusive range end (numeric scopes only).
	To int `json:"to,omitempty"`
	// Label names the region (opaque scopes only).
	Label string `json:"label,omitempty"`
}

// NumericScope builds a numeric range scope, normalizing the bounds.
func NumericScope(from, to int) *DocumentScope {
	if from > to {
		from, to = to, from
	}
	return &DocumentScope{Kind: ScopeNumeric, From: from, To: to}
}

// OpaqueScope builds an opaque named scope.
func OpaqueScope(label string) *DocumentScope {
	return &DocumentScope{Kind: ScopeOpaque, Label: label}
}

// IsNumeric returns true if this is a numeric range scope.
func (s *DocumentScope) IsNumeric() bool {
	return s != nil && s.Kind == ScopeNumeric
}

// Bounds returns the normalized range of a numeric scope. Scopes built
// through NumericScope are already normalized; this guards against scopes
// deserialized from outside.
func (s *DocumentScope) Bounds() (from, to int) {
	if s.From > s.To {
		return s.To, s.From
	}
	return s.From, s.To
}
