package evidence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"preauth-service/internal/app/config"
	"preauth-service/internal/app/contracts"
	"preauth-service/internal/app/models"
	"preauth-service/internal/pkg/constvars"
	"preauth-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type evidenceGatherer struct {
	Retriever         contracts.RetrieverClient
	RedisRepository   contracts.RedisRepository
	InsurerKBID       string
	ProviderKBID      string
	PolicyCacheExpiry time.Duration
	Log               *zap.Logger
}

// NewEvidenceGatherer wires the two knowledge-base lookups behind a single
// join point. The redis repository may be nil to disable policy caching.
func NewEvidenceGatherer(
	retriever contracts.RetrieverClient,
	redisRepository contracts.RedisRepository,
	retrieverConfig config.Retriever,
	appConfig config.App,
	logger *zap.Logger,
) contracts.EvidenceGatherer {
	return &evidenceGatherer{
		Retriever:         retriever,
		RedisRepository:   redisRepository,
		InsurerKBID:       retrieverConfig.InsurerKBID,
		ProviderKBID:      retrieverConfig.ProviderKBID,
		PolicyCacheExpiry: time.Duration(appConfig.PolicyCacheExpiryInMinutes) * time.Minute,
		Log:               logger,
	}
}

// GatherEvidence queries the insurer-policy and provider-notes knowledge bases
// in parallel. The policy query is keyed on the procedure code alone and never
// carries patient scope; the notes query is always filtered to the exact
// patient. Both sides failing makes the run unusable; one side failing is
// reported with the failing side so callers can distinguish the two.
func (g *evidenceGatherer) GatherEvidence(ctx context.Context, patientID, procedureCode string) ([]models.EvidencePassage, []models.EvidencePassage, error) {
	var (
		wg          sync.WaitGroup
		insurer     []models.EvidencePassage
		provider    []models.EvidencePassage
		insurerErr  error
		providerErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		insurer, insurerErr = g.gatherInsurerPolicy(ctx, procedureCode)
	}()
	go func() {
		defer wg.Done()
		provider, providerErr = g.gatherProviderNotes(ctx, patientID, procedureCode)
	}()
	wg.Wait()

	switch {
	case insurerErr != nil && providerErr != nil:
		return nil, nil, exceptions.ErrRetrievalUnavailable(insurerErr)
	case insurerErr != nil:
		return nil, nil, exceptions.ErrPartialRetrieval(insurerErr, constvars.EvidenceOriginInsurerPolicy)
	case providerErr != nil:
		return nil, nil, exceptions.ErrPartialRetrieval(providerErr, constvars.EvidenceOriginProviderNotes)
	}

	tagOrigin(insurer, constvars.EvidenceOriginInsurerPolicy)
	tagOrigin(provider, constvars.EvidenceOriginProviderNotes)
	return insurer, provider, nil
}

// gatherInsurerPolicy serves policy passages from the redis cache when a
// recent retrieval for the same procedure code exists. Policy criteria change
// rarely, so a short cache window saves a retrieval round-trip per case burst.
func (g *evidenceGatherer) gatherInsurerPolicy(ctx context.Context, procedureCode string) ([]models.EvidencePassage, error) {
	cacheKey := fmt.Sprintf(constvars.RedisKeyPolicyCacheFormat, procedureCode)
	if g.RedisRepository != nil {
		cached, err := g.RedisRepository.Get(ctx, cacheKey)
		if err == nil && cached != "" {
			var passages []models.EvidencePassage
			if err := json.Unmarshal([]byte(cached), &passages); err == nil {
				g.Log.Debug("evidenceGatherer.gatherInsurerPolicy cache hit",
					zap.String(constvars.LoggingRedisKey, cacheKey),
				)
				return passages, nil
			}
		}
	}

	query := fmt.Sprintf(constvars.InsurerPolicyQueryFormat, procedureCode)
	passages, err := g.Retriever.Query(ctx, g.InsurerKBID, query, nil)
	if err != nil {
		return nil, err
	}

	if g.RedisRepository != nil && len(passages) > 0 {
		if err := g.RedisRepository.Set(ctx, cacheKey, passages, g.PolicyCacheExpiry); err != nil {
			g.Log.Warn("evidenceGatherer.gatherInsurerPolicy cannot cache passages",
				zap.String(constvars.LoggingRedisKey, cacheKey),
				zap.Error(err),
			)
		}
	}
	return passages, nil
}

func (g *evidenceGatherer) gatherProviderNotes(ctx context.Context, patientID, procedureCode string) ([]models.EvidencePassage, error) {
	query := fmt.Sprintf(constvars.ProviderNotesQueryFormat, patientID, procedureCode)
	filter := &models.AttributeFilter{
		Key:   constvars.RetrievalFilterPatientKey,
		Value: patientID,
	}
	return g.Retriever.Query(ctx, g.ProviderKBID, query, filter)
}

func tagOrigin(passages []models.EvidencePassage, origin string) {
	for i := range passages {
		passages[i].Origin = origin
	}
}
