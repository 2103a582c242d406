package events

import (
	"context"
	"preauth-service/internal/app/contracts"
	"preauth-service/internal/pkg/constvars"
	"preauth-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type rabbitMQPublisher struct {
	connection *amqp091.Connection
	queueName  string
	Log        *zap.Logger
}

// NewRabbitMQPublisher declares the durable case-event queue and returns a
// publisher bound to it.
func NewRabbitMQPublisher(connection *amqp091.Connection, queueName string, logger *zap.Logger) (contracts.EventPublisher, error) {
	channel, err := connection.Channel()
	if err != nil {
		return nil, exceptions.ErrRabbitMQPublishMessage(err, queueName)
	}
	defer channel.Close()

	_, err = channel.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return nil, exceptions.ErrRabbitMQPublishMessage(err, queueName)
	}

	return &rabbitMQPublisher{
		connection: connection,
		queueName:  queueName,
		Log:        logger,
	}, nil
}

func (p *rabbitMQPublisher) PublishCaseEvent(ctx context.Context, eventType string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	channel, err := p.connection.Channel()
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.queueName)
	}
	defer channel.Close()

	err = channel.PublishWithContext(ctx, "", p.queueName, false, false, amqp091.Publishing{
		ContentType: constvars.MIMEApplicationJSON,
		Type:        eventType,
		Body:        body,
	})
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.queueName)
	}

	p.Log.Debug("rabbitMQPublisher.PublishCaseEvent published",
		zap.String(constvars.LoggingQueueKey, p.queueName),
		zap.String("event_type", eventType),
	)
	return nil
}
