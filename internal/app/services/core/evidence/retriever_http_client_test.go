package evidence

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"preauth-service/internal/app/config"
	"preauth-service/internal/app/models"
	"preauth-service/internal/pkg/constvars"
	"preauth-service/internal/pkg/dto/requests"
	"preauth-service/internal/pkg/dto/responses"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(serverURL string) *retrieverHttpClient {
	client := NewRetrieverHttpClient(config.Retriever{
		BaseUrl:          serverURL,
		MaxResults:       5,
		TimeoutInSeconds: 2,
	}, zap.NewNop())
	return client.(*retrieverHttpClient)
}

func TestRetrieverQuerySendsFilterAndDecodesPassages(t *testing.T) {
	var received requests.RetrievalQuery
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/knowledge-bases/kb-notes/retrieve", r.URL.Path)
		assert.Equal(t, constvars.MIMEApplicationJSON, r.Header.Get(constvars.HeaderContentType))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		_ = json.NewEncoder(w).Encode(responses.RetrievalResult{
			Passages: []responses.RetrievedPassage{
				{
					Text:     "completed 8 weeks physical therapy",
					Source:   "chart-0042",
					Score:    0.88,
					Metadata: map[string]string{constvars.RetrievalFilterPatientKey: "patient-7"},
				},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	filter := &models.AttributeFilter{Key: constvars.RetrievalFilterPatientKey, Value: "patient-7"}

	passages, err := client.Query(context.Background(), "kb-notes", "Clinical notes for patient patient-7", filter)
	require.NoError(t, err)
	require.Len(t, passages, 1)
	assert.Equal(t, "completed 8 weeks physical therapy", passages[0].Text)
	assert.Equal(t, "chart-0042", passages[0].Source)
	assert.InDelta(t, 0.88, passages[0].Score, 1e-9)

	require.NotNil(t, received.Filter)
	assert.Equal(t, constvars.RetrievalFilterPatientKey, received.Filter.Key)
	assert.Equal(t, "patient-7", received.Filter.Value)
	assert.Equal(t, 5, received.MaxResults)
}

func TestRetrieverQueryOmitsFilterForPolicyLookups(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var received requests.RetrievalQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		assert.Nil(t, received.Filter)

		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		_ = json.NewEncoder(w).Encode(responses.RetrievalResult{})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	passages, err := client.Query(context.Background(), "kb-policy", "criteria for MRI-LUMBAR", nil)
	require.NoError(t, err)
	assert.Empty(t, passages)
}

func TestRetrieverQueryDropsPassagesOutsideFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		_ = json.NewEncoder(w).Encode(responses.RetrievalResult{
			Passages: []responses.RetrievedPassage{
				{Text: "in scope", Source: "chart-1", Score: 0.9, Metadata: map[string]string{constvars.RetrievalFilterPatientKey: "patient-7"}},
				{Text: "other patient", Source: "chart-2", Score: 0.95, Metadata: map[string]string{constvars.RetrievalFilterPatientKey: "patient-9"}},
				{Text: "unlabeled", Source: "chart-3", Score: 0.99},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	filter := &models.AttributeFilter{Key: constvars.RetrievalFilterPatientKey, Value: "patient-7"}

	passages, err := client.Query(context.Background(), "kb-notes", "notes", filter)
	require.NoError(t, err)
	require.Len(t, passages, 1)
	assert.Equal(t, "in scope", passages[0].Text)
}

func TestRetrieverQueryRejectsNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Query(context.Background(), "kb-policy", "criteria", nil)
	require.Error(t, err)
}

func TestRetrieverQueryRejectsMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Query(context.Background(), "kb-policy", "criteria", nil)
	require.Error(t, err)
}
