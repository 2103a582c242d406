package hub

import (
	"sync"

	"preauth-service/internal/pkg/constvars"
	"preauth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// Client is a single subscriber attached to the hub. Messages are delivered
// through a bounded queue; when the queue is full the oldest queued message is
// dropped so slow consumers always converge on recent state.
type Client struct {
	id     string
	topics []string
	send   chan []byte

	detached  bool
	closeOnce sync.Once
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) Topics() []string {
	return c.topics
}

// Send returns the channel a transport drains to deliver messages to the
// subscriber. The channel is closed when the client is unregistered.
func (c *Client) Send() <-chan []byte {
	return c.send
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.send) })
}

// Hub routes published messages to every client subscribed to a topic. A
// client that was never registered, or was already unregistered, is ignored
// by Unregister.
type Hub struct {
	mu        sync.RWMutex
	topics    map[string]map[*Client]struct{}
	queueSize int
	stopped   bool
	Log       *zap.Logger
}

func NewHub(clientQueueSize int, logger *zap.Logger) *Hub {
	if clientQueueSize < 1 {
		clientQueueSize = 1
	}
	return &Hub{
		topics:    make(map[string]map[*Client]struct{}),
		queueSize: clientQueueSize,
		Log:       logger,
	}
}

// Register creates a client subscribed to the given topics and attaches it to
// the hub. Duplicate topic names collapse to a single subscription.
func (h *Hub) Register(topics []string) *Client {
	client := &Client{
		id:   utils.GenerateRequestID(),
		send: make(chan []byte, h.queueSize),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		client.close()
		return client
	}
	for _, topic := range topics {
		subscribers, ok := h.topics[topic]
		if !ok {
			subscribers = make(map[*Client]struct{})
			h.topics[topic] = subscribers
		}
		if _, already := subscribers[client]; already {
			continue
		}
		subscribers[client] = struct{}{}
		client.topics = append(client.topics, topic)
	}
	return client
}

// Unregister detaches the client from every topic and closes its queue. The
// last client leaving a topic removes the topic entry entirely. Calling it
// twice for the same client is harmless.
func (h *Hub) Unregister(client *Client) {
	if client == nil {
		return
	}

	h.mu.Lock()
	client.detached = true
	for _, topic := range client.topics {
		h.removeSubscriber(topic, client)
	}
	client.topics = nil
	h.mu.Unlock()

	client.close()
}

// Subscribe attaches an already registered client to an additional topic.
// It reports false when the hub is stopped or the client was unregistered.
func (h *Hub) Subscribe(client *Client, topic string) bool {
	if client == nil || topic == "" {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped || client.detached {
		return false
	}

	subscribers, ok := h.topics[topic]
	if !ok {
		subscribers = make(map[*Client]struct{})
		h.topics[topic] = subscribers
	}
	if _, already := subscribers[client]; already {
		return true
	}
	subscribers[client] = struct{}{}
	client.topics = append(client.topics, topic)
	return true
}

// Unsubscribe detaches the client from one topic, leaving its other
// subscriptions and its queue intact.
func (h *Hub) Unsubscribe(client *Client, topic string) {
	if client == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeSubscriber(topic, client)
	for i, subscribed := range client.topics {
		if subscribed == topic {
			client.topics = append(client.topics[:i], client.topics[i+1:]...)
			break
		}
	}
}

func (h *Hub) removeSubscriber(topic string, client *Client) {
	subscribers, ok := h.topics[topic]
	if !ok {
		return
	}
	delete(subscribers, client)
	if len(subscribers) == 0 {
		delete(h.topics, topic)
	}
}

// Publish enqueues the message for every subscriber of the topic. Enqueueing
// never blocks: a full client queue sheds its oldest message to make room.
func (h *Hub) Publish(topic string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.stopped {
		return
	}

	for client := range h.topics[topic] {
		select {
		case client.send <- message:
			continue
		default:
		}

		select {
		case <-client.send:
			h.Log.Warn("hub.Publish dropped oldest queued message",
				zap.String(constvars.LoggingTopicKey, topic),
				zap.String(constvars.LoggingClientIDKey, client.id),
			)
		default:
		}

		select {
		case client.send <- message:
		default:
		}
	}
}

// SubscriberCount reports how many clients are attached to a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Stop closes every client queue and rejects further registrations.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	h.stopped = true

	for topic, subscribers := range h.topics {
		for client := range subscribers {
			client.close()
		}
		delete(h.topics, topic)
	}
}
