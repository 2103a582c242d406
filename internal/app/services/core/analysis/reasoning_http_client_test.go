package analysis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"preauth-service/internal/app/config"
	"preauth-service/internal/pkg/constvars"
	"preauth-service/internal/pkg/dto/requests"
	"preauth-service/internal/pkg/dto/responses"
	"preauth-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReasoningClient(serverURL string, maxRetries int) *reasoningHttpClient {
	client := NewReasoningHttpClient(config.Reasoning{
		BaseUrl:              serverURL,
		ModelID:              "adjudicator-v1",
		MaxRetries:           maxRetries,
		TimeoutInSeconds:     2,
		InvocationsPerSecond: 1000,
	}, zap.NewNop())
	return client.(*reasoningHttpClient)
}

func TestReasoningInvokeSendsInstructionAndContext(t *testing.T) {
	var received requests.ReasoningInvoke
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invoke", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		_ = json.NewEncoder(w).Encode(responses.ReasoningResult{Completion: `{"outcome": "APPROVED_READY"}`})
	}))
	defer server.Close()

	client := newReasoningClient(server.URL, 0)

	completion, err := client.Invoke(context.Background(), "You are an adjudicator.", "=== INSURER POLICY CRITERIA ===")
	require.NoError(t, err)
	assert.Equal(t, `{"outcome": "APPROVED_READY"}`, completion)

	assert.Equal(t, "adjudicator-v1", received.ModelID)
	assert.Equal(t, "You are an adjudicator.", received.System)
	require.Len(t, received.Messages, 1)
	assert.Equal(t, reasoningRoleUser, received.Messages[0].Role)
	assert.Equal(t, "=== INSURER POLICY CRITERIA ===", received.Messages[0].Content)
}

func TestReasoningInvokeRetriesTransientFailures(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		_ = json.NewEncoder(w).Encode(responses.ReasoningResult{Completion: "ok"})
	}))
	defer server.Close()

	client := newReasoningClient(server.URL, 2)

	completion, err := client.Invoke(context.Background(), "system", "context")
	require.NoError(t, err)
	assert.Equal(t, "ok", completion)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestReasoningInvokeExhaustsRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newReasoningClient(server.URL, 2)

	_, err := client.Invoke(context.Background(), "system", "context")
	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Contains(t, customErr.DevMessage, constvars.ErrDevReasoningUnavailable)
}

func TestReasoningInvokeDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newReasoningClient(server.URL, 3)

	_, err := client.Invoke(context.Background(), "system", "context")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestReasoningInvokeContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newReasoningClient(server.URL, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Invoke(ctx, "system", "context")
	require.Error(t, err)

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Contains(t, customErr.DevMessage, constvars.ErrDevReasoningTimeout)
}
