package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"preauth-service/internal/app/services/shared/hub"
	"preauth-service/internal/pkg/constvars"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func wsTestServer(t *testing.T, h *hub.Hub, role, subject string) *httptest.Server {
	t.Helper()
	handler := NewWebSocketHandler(h, zap.NewNop())
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), constvars.CONTEXT_AUTH_ROLE_KEY, role)
		ctx = context.WithValue(ctx, constvars.CONTEXT_AUTH_SUBJECT_KEY, subject)
		handler.HandleConnect(w, r.WithContext(ctx))
	}))
	t.Cleanup(server.Close)
	return server
}

func wsURL(server *httptest.Server, topics string) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/?topics=" + topics
}

func TestHandleConnectDeliversPublishedEvents(t *testing.T) {
	h := hub.NewHub(8, zap.NewNop())
	server := wsTestServer(t, h, constvars.AuthRoleProvider, "prov-42")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, "provider-prov-42"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return h.SubscriberCount("provider-prov-42") == 1
	}, time.Second, 5*time.Millisecond)

	h.Publish("provider-prov-42", []byte(`{"type":"case.updated"}`))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(payload), "case.updated")
}

func TestHandleConnectRejectsForeignProviderTopic(t *testing.T) {
	h := hub.NewHub(8, zap.NewNop())
	server := wsTestServer(t, h, constvars.AuthRoleProvider, "prov-42")

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(server, "provider-prov-99"), nil)
	require.Error(t, err)
	if conn != nil {
		conn.Close()
	}
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, h.SubscriberCount("provider-prov-99"))
}

func TestHandleConnectRejectsInsurerOnProviderTopic(t *testing.T) {
	h := hub.NewHub(8, zap.NewNop())
	server := wsTestServer(t, h, constvars.AuthRoleInsurer, "reviewer-1")

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(server, "provider-prov-42"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHandleConnectRequiresTopics(t *testing.T) {
	h := hub.NewHub(8, zap.NewNop())
	server := wsTestServer(t, h, constvars.AuthRoleInsurer, "reviewer-1")

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleConnectUnsubscribeStopsDelivery(t *testing.T) {
	h := hub.NewHub(8, zap.NewNop())
	server := wsTestServer(t, h, constvars.AuthRoleInsurer, "reviewer-1")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, constvars.TopicInsurerQueue), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return h.SubscriberCount(constvars.TopicInsurerQueue) == 1
	}, time.Second, 5*time.Millisecond)

	command := `{"action":"unsubscribe","topic":"` + constvars.TopicInsurerQueue + `"}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(command)))

	require.Eventually(t, func() bool {
		return h.SubscriberCount(constvars.TopicInsurerQueue) == 0
	}, time.Second, 5*time.Millisecond)

	h.Publish(constvars.TopicInsurerQueue, []byte("missed"))

	conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}
