package contracts

import (
	"context"
	"preauth-service/internal/pkg/dto/requests"
	"preauth-service/internal/pkg/dto/responses"

	"preauth-service/internal/app/models"
)

type CaseUsecase interface {
	// CreateCase writes the initial PENDING record, runs the full analysis
	// pipeline and returns the analyzed case. An analysis failure surfaces to
	// the caller with the case left visibly PENDING.
	CreateCase(ctx context.Context, request *requests.CreateCase) (*responses.Case, error)
	// ReanalyzeCase re-runs the analysis pipeline against an existing case.
	ReanalyzeCase(ctx context.Context, caseID string) (*responses.Case, error)
	GetCase(ctx context.Context, caseID string) (*responses.Case, error)
	ListCasesByPatient(ctx context.Context, patientID string) ([]responses.Case, error)
	ListCasesByStatus(ctx context.Context, status models.CaseStatus) ([]responses.Case, error)
	SubmitDecision(ctx context.Context, caseID string, request *requests.SubmitDecision) (*responses.Case, error)
}

type CaseRepository interface {
	CreateCase(ctx context.Context, caseModel *models.Case) error
	FindByID(ctx context.Context, caseID string) (*models.Case, error)
	FindByPatientID(ctx context.Context, patientID string) ([]models.Case, error)
	FindByStatus(ctx context.Context, status models.CaseStatus) ([]models.Case, error)
	// UpdateIfStatus applies mutate to the stored case only when its current
	// status equals expected, returning the updated case. It returns
	// ErrCaseConcurrentUpdate when the conditional filter does not match, so a
	// racing writer can never be silently overwritten.
	UpdateIfStatus(ctx context.Context, caseID string, expected models.CaseStatus, mutate func(*models.Case)) (*models.Case, error)
}
