package models

import "time"

type CaseStatus string

const (
	CaseStatusPending            CaseStatus = "PENDING"
	CaseStatusApprovedReady      CaseStatus = "APPROVED_READY"
	CaseStatusMissingInformation CaseStatus = "MISSING_INFORMATION"
	CaseStatusAIDenied           CaseStatus = "AI_DENIED"
	CaseStatusApproved           CaseStatus = "APPROVED"
	CaseStatusDenied             CaseStatus = "DENIED"
)

type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionDenied   Decision = "DENIED"
)

// Case is one pre-authorization request and its adjudication state. CaseID,
// PatientID, ProviderID and ProcedureCode are immutable after creation; Status
// mutates only along the edges in statusTransitions; Decision is set at most
// once and only from APPROVED_READY.
type Case struct {
	CaseID        string     `json:"case_id" bson:"_id"`
	PatientID     string     `json:"patient_id" bson:"patientId"`
	ProviderID    string     `json:"provider_id" bson:"providerId"`
	ProcedureCode string     `json:"procedure_code" bson:"procedureCode"`
	Status        CaseStatus `json:"status" bson:"status"`
	Analysis      *Verdict   `json:"analysis,omitempty" bson:"analysis,omitempty"`
	Decision      *Decision  `json:"decision,omitempty" bson:"decision,omitempty"`
	CreatedAt     time.Time  `json:"created_at" bson:"createdAt"`
	UpdatedAt     time.Time  `json:"updated_at" bson:"updatedAt"`
}

var statusTransitions = map[CaseStatus][]CaseStatus{
	CaseStatusPending:            {CaseStatusApprovedReady, CaseStatusMissingInformation, CaseStatusAIDenied},
	CaseStatusApprovedReady:      {CaseStatusApprovedReady, CaseStatusMissingInformation, CaseStatusAIDenied, CaseStatusApproved, CaseStatusDenied},
	CaseStatusMissingInformation: {CaseStatusApprovedReady, CaseStatusMissingInformation, CaseStatusAIDenied},
	CaseStatusAIDenied:           {CaseStatusApprovedReady, CaseStatusMissingInformation, CaseStatusAIDenied},
	CaseStatusApproved:           {},
	CaseStatusDenied:             {},
}

func (s CaseStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsTerminal reports whether no further automated transition may leave s.
func (s CaseStatus) IsTerminal() bool {
	return s == CaseStatusApproved || s == CaseStatusDenied
}

// CanTransitionTo reports whether the edge s -> next is defined.
func (s CaseStatus) CanTransitionTo(next CaseStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AllowsAnalysis reports whether an analysis run may complete against a case
// currently in s. Once a decision exists the case is terminal and re-analysis
// is forbidden.
func (s CaseStatus) AllowsAnalysis() bool {
	return !s.IsTerminal()
}

func (d Decision) IsValid() bool {
	return d == DecisionApproved || d == DecisionDenied
}

// StatusAfterDecision maps a submitted decision to the terminal case status.
func (d Decision) StatusAfterDecision() CaseStatus {
	if d == DecisionApproved {
		return CaseStatusApproved
	}
	return CaseStatusDenied
}
