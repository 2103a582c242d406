package responses

import (
	"time"

	"preauth-service/internal/app/models"
)

type Case struct {
	CaseID        string          `json:"case_id"`
	PatientID     string          `json:"patient_id"`
	ProviderID    string          `json:"provider_id"`
	ProcedureCode string          `json:"procedure_code"`
	Status        string          `json:"status"`
	Analysis      *models.Verdict `json:"analysis,omitempty"`
	Decision      string          `json:"decision,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CaseEvent is the payload broadcast to notification topics and mirrored to
// the durable event queue. It always carries the full case snapshot so
// listeners that reconnect after a gap receive consistent state on the next
// event rather than replaying history.
type CaseEvent struct {
	Type      string    `json:"type"`
	Topic     string    `json:"topic"`
	Timestamp time.Time `json:"timestamp"`
	Case      Case      `json:"case"`
}
