package contracts

import "context"

// EventPublisher mirrors case events onto a durable queue for consumers that
// are not connected to the live notification hub (audit, reporting).
type EventPublisher interface {
	PublishCaseEvent(ctx context.Context, eventType string, payload interface{}) error
}
