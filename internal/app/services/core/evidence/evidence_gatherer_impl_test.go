package evidence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"preauth-service/internal/app/config"
	"preauth-service/internal/app/models"
	"preauth-service/internal/pkg/constvars"
	"preauth-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordedQuery struct {
	KnowledgeBaseID string
	Query           string
	Filter          *models.AttributeFilter
}

type fakeRetriever struct {
	mu       sync.Mutex
	queries  []recordedQuery
	passages map[string][]models.EvidencePassage
	failures map[string]error
}

func (f *fakeRetriever) Query(_ context.Context, knowledgeBaseID, query string, filter *models.AttributeFilter) ([]models.EvidencePassage, error) {
	f.mu.Lock()
	f.queries = append(f.queries, recordedQuery{KnowledgeBaseID: knowledgeBaseID, Query: query, Filter: filter})
	f.mu.Unlock()

	if err, ok := f.failures[knowledgeBaseID]; ok {
		return nil, err
	}
	return f.passages[knowledgeBaseID], nil
}

func (f *fakeRetriever) recorded() []recordedQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedQuery(nil), f.queries...)
}

type fakeRedis struct {
	mu    sync.Mutex
	store map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{store: make(map[string]string)}
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store[key], nil
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store[key] = string(data)
	return nil
}

func (f *fakeRedis) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.store, key)
	return nil
}

func (f *fakeRedis) TrySetNX(_ context.Context, key string, value interface{}, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.store[key]; exists {
		return false, nil
	}
	data, _ := json.Marshal(value)
	f.store[key] = string(data)
	return true, nil
}

func newGatherer(retriever *fakeRetriever, redisRepository *fakeRedis) *evidenceGatherer {
	var g *evidenceGatherer
	if redisRepository == nil {
		g = NewEvidenceGatherer(retriever, nil, testRetrieverConfig(), testAppConfig(), zap.NewNop()).(*evidenceGatherer)
	} else {
		g = NewEvidenceGatherer(retriever, redisRepository, testRetrieverConfig(), testAppConfig(), zap.NewNop()).(*evidenceGatherer)
	}
	return g
}

func testRetrieverConfig() config.Retriever {
	return config.Retriever{
		InsurerKBID:  "kb-policy",
		ProviderKBID: "kb-notes",
		MaxResults:   5,
	}
}

func testAppConfig() config.App {
	return config.App{PolicyCacheExpiryInMinutes: 10}
}

func policyPassage(text string, score float64) models.EvidencePassage {
	return models.EvidencePassage{Text: text, Source: "policy.pdf", Score: score}
}

func notesPassage(text string, score float64) models.EvidencePassage {
	return models.EvidencePassage{Text: text, Source: "chart-0042", Score: score}
}

func TestGatherEvidenceQueriesBothKnowledgeBases(t *testing.T) {
	retriever := &fakeRetriever{
		passages: map[string][]models.EvidencePassage{
			"kb-policy": {policyPassage("6 weeks conservative therapy required", 0.91)},
			"kb-notes":  {notesPassage("completed 8 weeks physical therapy", 0.88)},
		},
	}
	gatherer := newGatherer(retriever, nil)

	insurer, provider, err := gatherer.GatherEvidence(context.Background(), "patient-7", "MRI-LUMBAR")
	require.NoError(t, err)
	require.Len(t, insurer, 1)
	require.Len(t, provider, 1)

	assert.Equal(t, constvars.EvidenceOriginInsurerPolicy, insurer[0].Origin)
	assert.Equal(t, constvars.EvidenceOriginProviderNotes, provider[0].Origin)

	queries := retriever.recorded()
	require.Len(t, queries, 2)
	byKB := map[string]recordedQuery{}
	for _, q := range queries {
		byKB[q.KnowledgeBaseID] = q
	}

	policyQuery := byKB["kb-policy"]
	assert.Nil(t, policyQuery.Filter)
	assert.Contains(t, policyQuery.Query, "MRI-LUMBAR")
	assert.NotContains(t, policyQuery.Query, "patient-7")

	notesQuery := byKB["kb-notes"]
	require.NotNil(t, notesQuery.Filter)
	assert.Equal(t, constvars.RetrievalFilterPatientKey, notesQuery.Filter.Key)
	assert.Equal(t, "patient-7", notesQuery.Filter.Value)
}

func TestGatherEvidenceBothSidesFail(t *testing.T) {
	retriever := &fakeRetriever{
		failures: map[string]error{
			"kb-policy": errors.New("connection refused"),
			"kb-notes":  errors.New("connection refused"),
		},
	}
	gatherer := newGatherer(retriever, nil)

	_, _, err := gatherer.GatherEvidence(context.Background(), "patient-7", "MRI-LUMBAR")
	require.Error(t, err)

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Contains(t, customErr.DevMessage, constvars.ErrDevRetrievalUnavailable)
}

func TestGatherEvidenceSingleSideFailureNamesSide(t *testing.T) {
	tests := []struct {
		name       string
		failingKB  string
		expectSide string
	}{
		{"insurer side down", "kb-policy", constvars.EvidenceOriginInsurerPolicy},
		{"provider side down", "kb-notes", constvars.EvidenceOriginProviderNotes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retriever := &fakeRetriever{
				passages: map[string][]models.EvidencePassage{
					"kb-policy": {policyPassage("criteria", 0.9)},
					"kb-notes":  {notesPassage("notes", 0.9)},
				},
				failures: map[string]error{tt.failingKB: errors.New("timeout")},
			}
			gatherer := newGatherer(retriever, nil)

			_, _, err := gatherer.GatherEvidence(context.Background(), "patient-7", "MRI-LUMBAR")
			require.Error(t, err)

			var customErr *exceptions.CustomError
			require.ErrorAs(t, err, &customErr)
			assert.Contains(t, customErr.DevMessage, fmt.Sprintf(constvars.ErrDevPartialRetrieval, tt.expectSide))
		})
	}
}

func TestGatherEvidencePolicyCacheSkipsSecondRetrieval(t *testing.T) {
	retriever := &fakeRetriever{
		passages: map[string][]models.EvidencePassage{
			"kb-policy": {policyPassage("criteria", 0.9)},
			"kb-notes":  {notesPassage("notes", 0.9)},
		},
	}
	gatherer := newGatherer(retriever, newFakeRedis())

	_, _, err := gatherer.GatherEvidence(context.Background(), "patient-7", "MRI-LUMBAR")
	require.NoError(t, err)

	insurer, _, err := gatherer.GatherEvidence(context.Background(), "patient-8", "MRI-LUMBAR")
	require.NoError(t, err)
	require.Len(t, insurer, 1)
	assert.Equal(t, constvars.EvidenceOriginInsurerPolicy, insurer[0].Origin)

	policyQueries := 0
	for _, q := range retriever.recorded() {
		if q.KnowledgeBaseID == "kb-policy" {
			policyQueries++
		}
	}
	assert.Equal(t, 1, policyQueries)
}

func TestGatherEvidencePolicyCacheIsPerProcedureCode(t *testing.T) {
	retriever := &fakeRetriever{
		passages: map[string][]models.EvidencePassage{
			"kb-policy": {policyPassage("criteria", 0.9)},
			"kb-notes":  {notesPassage("notes", 0.9)},
		},
	}
	gatherer := newGatherer(retriever, newFakeRedis())

	_, _, err := gatherer.GatherEvidence(context.Background(), "patient-7", "MRI-LUMBAR")
	require.NoError(t, err)
	_, _, err = gatherer.GatherEvidence(context.Background(), "patient-7", "CT-HEAD")
	require.NoError(t, err)

	policyQueries := 0
	for _, q := range retriever.recorded() {
		if q.KnowledgeBaseID == "kb-policy" {
			policyQueries++
			assert.True(t, strings.Contains(q.Query, "MRI-LUMBAR") || strings.Contains(q.Query, "CT-HEAD"))
		}
	}
	assert.Equal(t, 2, policyQueries)
}
