package contracts

import (
	"context"

	"preauth-service/internal/app/models"
)

// RetrieverClient is a capability-typed client for one knowledge-base
// retrieval service. A nil filter queries the whole corpus; a non-nil filter
// is an exact-match metadata predicate enforced by the service.
type RetrieverClient interface {
	Query(ctx context.Context, knowledgeBaseID, query string, filter *models.AttributeFilter) ([]models.EvidencePassage, error)
}

// EvidenceGatherer fans out retrieval against the insurer-policy and
// provider-notes knowledge bases and joins the results.
type EvidenceGatherer interface {
	GatherEvidence(ctx context.Context, patientID, procedureCode string) (insurer, provider []models.EvidencePassage, err error)
}
