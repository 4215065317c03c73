// Package kafka publishes courier and customer notifications to Kafka
// topics. Messages are keyed by order id so that every event of one order
// lands on the same partition and keeps its order.
//
// Publishing is fire-and-forget: notifications are queued and a single
// background publisher writes them, so a slow or unreachable broker never
// holds up the operation that produced them.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"distribution/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const (
	queueSize      = 1024
	publishTimeout = 10 * time.Second
	batchTimeout   = 10 * time.Millisecond
)

var (
	// ErrQueueFull is returned when the publisher is too far behind to take
	// another notification.
	ErrQueueFull = errors.New("kafka: notification queue is full")

	// ErrNotifierClosed is returned for notifications sent after Close.
	ErrNotifierClosed = errors.New("kafka: notifier is closed")
)

// messageWriter is the part of *kafka.Writer the notifier uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type outgoing struct {
	writer messageWriter
	event  string
	msg    kafka.Message
}

// Notifier implements ports.Notifier. Courier events and order status
// changes go to separate topics.
type Notifier struct {
	courier  messageWriter
	customer messageWriter
	now      func() time.Time
	logger   *slog.Logger
	timeout  time.Duration

	queue  chan outgoing
	mu     sync.RWMutex
	closed bool
	done   sync.WaitGroup
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier creates writers for both topics on the given brokers and
// starts the background publisher. Close stops it after the queue drains.
func NewNotifier(brokers []string, courierTopic, orderChangedTopic string, logger *slog.Logger) (*Notifier, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}
	if courierTopic == "" || orderChangedTopic == "" {
		return nil, errors.New("kafka: courier and order changed topics are required")
	}
	return newNotifier(newWriter(brokers, courierTopic), newWriter(brokers, orderChangedTopic), logger), nil
}

func newNotifier(courier, customer messageWriter, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	n := &Notifier{
		courier:  courier,
		customer: customer,
		now:      time.Now,
		logger:   logger.With("component", "kafka_notifier"),
		timeout:  publishTimeout,
		queue:    make(chan outgoing, queueSize),
	}
	n.done.Add(1)
	go n.publish()
	return n
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           batchTimeout,
		AllowAutoTopicCreation: true,
	}
}

type courierEvent struct {
	Event          string    `json:"event"`
	StaffID        string    `json:"staffId"`
	OrderID        string    `json:"orderId"`
	AssignmentID   string    `json:"assignmentId"`
	AcceptDeadline time.Time `json:"acceptDeadline"`
	OccurredAt     time.Time `json:"occurredAt"`
}

type orderChangedEvent struct {
	CustomerID string    `json:"customerId"`
	OrderID    string    `json:"orderId"`
	BranchID   string    `json:"branchId"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NotifyCourier queues an event for the courier topic, keyed by order id.
// It returns ErrQueueFull or ErrNotifierClosed instead of waiting.
func (n *Notifier) NotifyCourier(_ context.Context, c ports.CourierNotification) error {
	payload, err := json.Marshal(courierEvent{
		Event:          c.Event,
		StaffID:        c.StaffID.String(),
		OrderID:        c.OrderID.String(),
		AssignmentID:   c.AssignmentID.String(),
		AcceptDeadline: c.AcceptDeadline.UTC(),
		OccurredAt:     c.OccurredAt.UTC(),
	})
	if err != nil {
		return err
	}
	return n.enqueue(n.courier, c.OrderID.String(), c.Event, payload)
}

// NotifyCustomer queues an order.<status> event for the customer topic.
func (n *Notifier) NotifyCustomer(_ context.Context, c ports.CustomerNotification) error {
	payload, err := json.Marshal(orderChangedEvent{
		CustomerID: c.CustomerID,
		OrderID:    c.OrderID.String(),
		BranchID:   c.BranchID.String(),
		Status:     c.Status,
		Reason:     c.Reason,
		OccurredAt: c.OccurredAt.UTC(),
	})
	if err != nil {
		return err
	}
	return n.enqueue(n.customer, c.OrderID.String(), "order."+c.Status, payload)
}

// enqueue never blocks. The context of the operation is not carried over:
// the message outlives the request that produced it.
func (n *Notifier) enqueue(w messageWriter, key, event string, payload []byte) error {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		return ErrNotifierClosed
	}

	out := outgoing{
		writer: w,
		event:  event,
		msg: kafka.Message{
			Key:     []byte(key),
			Value:   payload,
			Headers: []kafka.Header{{Key: "event", Value: []byte(event)}},
			Time:    n.now(),
		},
	}

	select {
	case n.queue <- out:
		return nil
	default:
		return ErrQueueFull
	}
}

func (n *Notifier) publish() {
	defer n.done.Done()

	for out := range n.queue {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		if err := out.writer.WriteMessages(ctx, out.msg); err != nil {
			n.logger.Warn("notification not published",
				"event", out.event, "key", string(out.msg.Key), "error", err)
		}
		cancel()
	}
}

// Close stops accepting notifications, waits for the queued ones to be
// published and closes both writers.
func (n *Notifier) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	close(n.queue)
	n.mu.Unlock()

	n.done.Wait()
	return errors.Join(n.courier.Close(), n.customer.Close())
}
