package models

// EvidencePassage is one retrieved chunk of knowledge-base text. Passages are
// transient: they live for a single orchestration run and are discarded after
// context assembly, never persisted on the case.
type EvidencePassage struct {
	Text   string
	Source string
	Score  float64
	Origin string
}

// AttributeFilter is an exact-match metadata predicate applied by the
// retriever service itself. Patient scoping must go through this filter, not
// through the free-text query, so cross-patient passages can never leak in
// via lexical matching.
type AttributeFilter struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
