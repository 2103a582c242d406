package hub

import (
	"context"
	"fmt"
	"time"

	"preauth-service/internal/app/contracts"
	"preauth-service/internal/app/models"
	"preauth-service/internal/pkg/constvars"
	"preauth-service/internal/pkg/dto/responses"
	"preauth-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const mirrorPublishTimeout = 5 * time.Second

type caseNotifier struct {
	Hub       *Hub
	Publisher contracts.EventPublisher
	Log       *zap.Logger
}

// NewCaseNotifier returns a notifier that broadcasts case snapshots to hub
// topics and mirrors each event to the durable queue. The publisher may be
// nil, in which case only in-process subscribers are notified.
func NewCaseNotifier(h *Hub, publisher contracts.EventPublisher, logger *zap.Logger) contracts.CaseNotifier {
	return &caseNotifier{
		Hub:       h,
		Publisher: publisher,
		Log:       logger,
	}
}

// NotifyCaseUpdated publishes the full case snapshot to the owning provider's
// topic and, when the case just became ready for human review, to the shared
// insurer queue as well. Delivery runs in the background; failures are logged
// and never surface to the caller.
func (n *caseNotifier) NotifyCaseUpdated(ctx context.Context, caseModel *models.Case) {
	snapshot := *utils.MapCaseToResponse(caseModel)
	eventType := constvars.EventTypeCaseUpdated
	if caseModel.Status.IsTerminal() {
		eventType = constvars.EventTypeCaseDecided
	}

	topics := []string{fmt.Sprintf(constvars.TopicProviderFormat, caseModel.ProviderID)}
	if caseModel.Status == models.CaseStatusApprovedReady {
		topics = append(topics, constvars.TopicInsurerQueue)
	}

	now := time.Now().UTC()
	go n.dispatch(topics, eventType, snapshot, now)
}

func (n *caseNotifier) dispatch(topics []string, eventType string, snapshot responses.Case, timestamp time.Time) {
	var mirrored *responses.CaseEvent

	for _, topic := range topics {
		event := responses.CaseEvent{
			Type:      eventType,
			Topic:     topic,
			Timestamp: timestamp,
			Case:      snapshot,
		}
		message, err := json.Marshal(event)
		if err != nil {
			n.Log.Error("caseNotifier.dispatch cannot marshal event",
				zap.String(constvars.LoggingCaseIDKey, snapshot.CaseID),
				zap.String(constvars.LoggingTopicKey, topic),
				zap.Error(err),
			)
			continue
		}
		n.Hub.Publish(topic, message)
		if mirrored == nil {
			mirrored = &event
		}
	}

	if n.Publisher == nil || mirrored == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), mirrorPublishTimeout)
	defer cancel()
	if err := n.Publisher.PublishCaseEvent(ctx, eventType, mirrored); err != nil {
		n.Log.Error("caseNotifier.dispatch cannot mirror event to queue",
			zap.String(constvars.LoggingCaseIDKey, snapshot.CaseID),
			zap.Error(err),
		)
	}
}
