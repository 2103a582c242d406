package contracts

import (
	"context"

	"preauth-service/internal/app/models"
)

// CaseNotifier fans a case-state change out to every interested topic.
// Delivery is best-effort and asynchronous relative to the caller; a notifier
// never returns delivery failures to orchestration code.
type CaseNotifier interface {
	NotifyCaseUpdated(ctx context.Context, caseModel *models.Case)
}
