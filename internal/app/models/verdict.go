package models

// Verdict is the structured outcome parsed from one reasoning-model response.
// It is immutable once created and attached to exactly one case; re-analysis
// overwrites the attached verdict wholesale, never merges.
type Verdict struct {
	Outcome      CaseStatus                  `json:"outcome" bson:"outcome"`
	Rationale    string                      `json:"rationale" bson:"rationale"`
	MissingItems []string                    `json:"missing_items,omitempty" bson:"missingItems,omitempty"`
	Criteria     map[string]CriterionFinding `json:"criteria,omitempty" bson:"criteria,omitempty"`
}

// CriterionFinding is the model's per-criterion evidence assessment. The
// reasoning prompt asks for one finding per policy criterion; the parser
// keeps them when present so reviewers can trace the verdict back to policy
// text and chart quotes.
type CriterionFinding struct {
	Met             bool   `json:"met" bson:"met"`
	Evidence        string `json:"evidence" bson:"evidence"`
	PolicyReference string `json:"policy_reference" bson:"policyReference"`
}

// IsAnalysisOutcome reports whether s is a status an analysis run may yield.
func (s CaseStatus) IsAnalysisOutcome() bool {
	return s == CaseStatusApprovedReady || s == CaseStatusMissingInformation || s == CaseStatusAIDenied
}
