package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"preauth-service/internal/app/services/shared/hub"
	"preauth-service/internal/pkg/constvars"
	"preauth-service/internal/pkg/dto/requests"
	"preauth-service/internal/pkg/exceptions"
	"preauth-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub *hub.Hub
	Log *zap.Logger
}

func NewWebSocketHandler(h *hub.Hub, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		Hub: h,
		Log: logger,
	}
}

// HandleConnect upgrades the request, subscribes the caller to the topics
// named in the topics query parameter and starts the pumps. Topic access is
// role-scoped: insurers may watch the shared insurer queue, providers only
// their own provider topic.
func (h *WebSocketHandler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	role, _ := r.Context().Value(constvars.CONTEXT_AUTH_ROLE_KEY).(string)
	subject, _ := r.Context().Value(constvars.CONTEXT_AUTH_SUBJECT_KEY).(string)

	rawTopics := r.URL.Query().Get(constvars.WebSocketTopicsQueryKey)
	if rawTopics == "" {
		utils.BuildErrorResponse(h.Log, w, exceptions.ErrURLParamValidation(nil, constvars.WebSocketTopicsQueryKey))
		return
	}

	topics := strings.Split(rawTopics, ",")
	for _, topic := range topics {
		if !topicAllowed(topic, role, subject) {
			utils.BuildErrorResponse(h.Log, w, exceptions.ErrRoleNotAllowed(nil))
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Error("WebSocketHandler.HandleConnect upgrade failed", zap.Error(err))
		return
	}

	client := h.Hub.Register(topics)
	h.Log.Info("WebSocketHandler.HandleConnect client attached",
		zap.String(constvars.LoggingClientIDKey, client.ID()),
		zap.Strings("topics", client.Topics()),
	)

	go h.writePump(client, conn)
	go h.readPump(client, conn, role, subject)
}

func topicAllowed(topic, role, subject string) bool {
	switch role {
	case constvars.AuthRoleInsurer:
		return topic == constvars.TopicInsurerQueue
	case constvars.AuthRoleProvider:
		return topic == fmt.Sprintf(constvars.TopicProviderFormat, subject)
	default:
		return false
	}
}

// readPump drains inbound frames until the peer disconnects. Clients may
// adjust their subscriptions mid-stream with subscribe/unsubscribe commands;
// anything else, including undecodable payloads, is ignored.
func (h *WebSocketHandler) readPump(client *hub.Client, conn *websocket.Conn, role, subject string) {
	defer func() {
		h.Hub.Unregister(client)
		conn.Close()
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var command requests.WebSocketCommand
		if err := json.Unmarshal(payload, &command); err != nil {
			continue
		}

		switch command.Action {
		case constvars.WebSocketActionSubscribe:
			if !topicAllowed(command.Topic, role, subject) {
				h.Log.Warn("WebSocketHandler.readPump subscribe rejected",
					zap.String(constvars.LoggingClientIDKey, client.ID()),
					zap.String(constvars.LoggingTopicKey, command.Topic),
				)
				continue
			}
			h.Hub.Subscribe(client, command.Topic)
		case constvars.WebSocketActionUnsubscribe:
			h.Hub.Unsubscribe(client, command.Topic)
		}
	}
}

func (h *WebSocketHandler) writePump(client *hub.Client, conn *websocket.Conn) {
	defer conn.Close()

	for message := range client.Send() {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
