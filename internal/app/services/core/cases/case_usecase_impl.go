package cases

import (
	"context"
	"fmt"
	"time"

	"preauth-service/internal/app/config"
	"preauth-service/internal/app/contracts"
	"preauth-service/internal/app/models"
	"preauth-service/internal/app/services/core/analysis"
	"preauth-service/internal/app/services/core/evidence"
	"preauth-service/internal/pkg/constvars"
	"preauth-service/internal/pkg/dto/requests"
	"preauth-service/internal/pkg/dto/responses"
	"preauth-service/internal/pkg/exceptions"
	"preauth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const lockRetryInterval = 25 * time.Millisecond

type caseUsecase struct {
	CaseRepository   contracts.CaseRepository
	EvidenceGatherer contracts.EvidenceGatherer
	ReasoningClient  contracts.ReasoningClient
	LockerService    contracts.LockerService
	CaseNotifier     contracts.CaseNotifier
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
}

func NewCaseUsecase(
	caseRepository contracts.CaseRepository,
	evidenceGatherer contracts.EvidenceGatherer,
	reasoningClient contracts.ReasoningClient,
	lockerService contracts.LockerService,
	caseNotifier contracts.CaseNotifier,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.CaseUsecase {
	return &caseUsecase{
		CaseRepository:   caseRepository,
		EvidenceGatherer: evidenceGatherer,
		ReasoningClient:  reasoningClient,
		LockerService:    lockerService,
		CaseNotifier:     caseNotifier,
		InternalConfig:   internalConfig,
		Log:              logger,
	}
}

func (uc *caseUsecase) CreateCase(ctx context.Context, request *requests.CreateCase) (*responses.Case, error) {
	now := time.Now().UTC()
	caseModel := &models.Case{
		CaseID:        utils.GenerateCaseID(),
		PatientID:     request.PatientID,
		ProviderID:    request.ProviderID,
		ProcedureCode: request.ProcedureCode,
		Status:        models.CaseStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.CaseRepository.CreateCase(ctx, caseModel); err != nil {
		return nil, err
	}

	uc.Log.Info("caseUsecase.CreateCase created",
		zap.String(constvars.LoggingCaseIDKey, caseModel.CaseID),
		zap.String(constvars.LoggingPatientIDKey, caseModel.PatientID),
		zap.String(constvars.LoggingProcedureCodeKey, caseModel.ProcedureCode),
	)

	analyzed, err := uc.runAnalysis(ctx, caseModel)
	if err != nil {
		return nil, err
	}
	return utils.MapCaseToResponse(analyzed), nil
}

func (uc *caseUsecase) ReanalyzeCase(ctx context.Context, caseID string) (*responses.Case, error) {
	caseModel, err := uc.CaseRepository.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if caseModel == nil {
		return nil, exceptions.ErrCaseNotFound(nil)
	}
	if !caseModel.Status.AllowsAnalysis() {
		return nil, exceptions.ErrReanalysisForbidden(nil)
	}

	analyzed, err := uc.runAnalysis(ctx, caseModel)
	if err != nil {
		return nil, err
	}
	return utils.MapCaseToResponse(analyzed), nil
}

func (uc *caseUsecase) GetCase(ctx context.Context, caseID string) (*responses.Case, error) {
	caseModel, err := uc.CaseRepository.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if caseModel == nil {
		return nil, exceptions.ErrCaseNotFound(nil)
	}
	return utils.MapCaseToResponse(caseModel), nil
}

func (uc *caseUsecase) ListCasesByPatient(ctx context.Context, patientID string) ([]responses.Case, error) {
	caseModels, err := uc.CaseRepository.FindByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return utils.MapCasesToResponses(caseModels), nil
}

func (uc *caseUsecase) ListCasesByStatus(ctx context.Context, status models.CaseStatus) ([]responses.Case, error) {
	if !status.IsValid() {
		return nil, exceptions.ErrUnknownCaseStatus(nil, string(status))
	}
	caseModels, err := uc.CaseRepository.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return utils.MapCasesToResponses(caseModels), nil
}

// SubmitDecision records a human insurer decision. Only a case sitting in
// APPROVED_READY accepts one, and only the first of racing submissions wins;
// everyone else gets a conflict.
func (uc *caseUsecase) SubmitDecision(ctx context.Context, caseID string, request *requests.SubmitDecision) (*responses.Case, error) {
	decision := models.Decision(request.Decision)
	if !decision.IsValid() {
		return nil, exceptions.ErrUnknownDecision(nil, request.Decision)
	}

	unlock, err := uc.lockCaseWait(ctx, caseID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	caseModel, err := uc.CaseRepository.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if caseModel == nil {
		return nil, exceptions.ErrCaseNotFound(nil)
	}
	if caseModel.Status.IsTerminal() {
		return nil, exceptions.ErrCaseAlreadyDecided(nil)
	}
	if caseModel.Status != models.CaseStatusApprovedReady {
		return nil, exceptions.ErrInvalidCaseState(nil)
	}

	updated, err := uc.CaseRepository.UpdateIfStatus(ctx, caseID, models.CaseStatusApprovedReady, func(c *models.Case) {
		c.Decision = &decision
		c.Status = decision.StatusAfterDecision()
	})
	if err != nil {
		return nil, err
	}

	uc.Log.Info("caseUsecase.SubmitDecision recorded",
		zap.String(constvars.LoggingCaseIDKey, updated.CaseID),
		zap.String(constvars.LoggingStatusKey, string(updated.Status)),
	)

	uc.CaseNotifier.NotifyCaseUpdated(ctx, updated)
	return utils.MapCaseToResponse(updated), nil
}

// runAnalysis executes one full orchestration pass: gather evidence from both
// knowledge bases, assemble the bounded context, invoke the reasoning model
// and apply the parsed verdict under the per-case lock. Any failure before the
// conditional update leaves the stored case exactly as it was.
func (uc *caseUsecase) runAnalysis(ctx context.Context, caseModel *models.Case) (*models.Case, error) {
	if !caseModel.Status.AllowsAnalysis() {
		return nil, exceptions.ErrReanalysisForbidden(nil)
	}

	unlock, err := uc.lockCase(ctx, caseModel.CaseID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	insurer, provider, err := uc.EvidenceGatherer.GatherEvidence(ctx, caseModel.PatientID, caseModel.ProcedureCode)
	if err != nil {
		return nil, err
	}

	ranked := evidence.RankByScore(append(insurer[:len(insurer):len(insurer)], provider...))
	sources := make([]string, 0, len(ranked))
	for _, passage := range ranked {
		sources = append(sources, fmt.Sprintf("%s(%.2f)", passage.Source, passage.Score))
	}
	uc.Log.Info("caseUsecase.runAnalysis evidence gathered",
		zap.String(constvars.LoggingCaseIDKey, caseModel.CaseID),
		zap.Strings(constvars.LoggingEvidenceKey, sources),
	)

	contextText := evidence.BuildContext(insurer, provider, uc.InternalConfig.Reasoning.MaxContextChars)
	rawResponse, err := uc.ReasoningClient.Invoke(ctx, uc.InternalConfig.Reasoning.SystemInstruction, contextText)
	if err != nil {
		return nil, err
	}

	verdict, err := analysis.ParseVerdict(rawResponse)
	if err != nil {
		uc.Log.Error("caseUsecase.runAnalysis verdict rejected",
			zap.String(constvars.LoggingCaseIDKey, caseModel.CaseID),
			zap.String(constvars.LoggingRawResponseKey, rawResponse),
			zap.Error(err),
		)
		return nil, err
	}

	expected := caseModel.Status
	updated, err := uc.CaseRepository.UpdateIfStatus(ctx, caseModel.CaseID, expected, func(c *models.Case) {
		c.Status = verdict.Outcome
		c.Analysis = verdict
	})
	if err != nil {
		return nil, err
	}

	uc.Log.Info("caseUsecase.runAnalysis applied verdict",
		zap.String(constvars.LoggingCaseIDKey, updated.CaseID),
		zap.String(constvars.LoggingStatusKey, string(updated.Status)),
	)

	uc.CaseNotifier.NotifyCaseUpdated(ctx, updated)
	return updated, nil
}

func (uc *caseUsecase) lockCase(ctx context.Context, caseID string) (func(), error) {
	lockKey := fmt.Sprintf(constvars.RedisKeyCaseLockFormat, caseID)

	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, uc.lockExpiry())
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrCaseLockNotAcquired(nil)
	}
	return uc.unlockFunc(lockKey, lockValue), nil
}

// lockCaseWait blocks until the per-case lock is acquired or the context ends.
// Decision submissions wait out a concurrent holder so a losing submitter
// re-reads the committed case and reports its actual state rather than lock
// contention.
func (uc *caseUsecase) lockCaseWait(ctx context.Context, caseID string) (func(), error) {
	lockKey := fmt.Sprintf(constvars.RedisKeyCaseLockFormat, caseID)

	for {
		acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, uc.lockExpiry())
		if err != nil {
			return nil, err
		}
		if acquired {
			return uc.unlockFunc(lockKey, lockValue), nil
		}

		select {
		case <-ctx.Done():
			return nil, exceptions.ErrCaseLockNotAcquired(ctx.Err())
		case <-time.After(lockRetryInterval):
		}
	}
}

func (uc *caseUsecase) lockExpiry() time.Duration {
	return time.Duration(uc.InternalConfig.App.CaseLockExpiryInSeconds) * time.Second
}

func (uc *caseUsecase) unlockFunc(lockKey, lockValue string) func() {
	return func() {
		if err := uc.LockerService.Unlock(context.Background(), lockKey, lockValue); err != nil {
			uc.Log.Warn("caseUsecase.lockCase cannot release lock",
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}
}
