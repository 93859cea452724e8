package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/TemirB/storefront/internal/pkg/retry"
)

var writePolicy = retry.Policy{
	Attempts:     3,
	Base:         100 * time.Millisecond,
	Max:          2 * time.Second,
	JitterFactor: 0.3,
}

// KafkaPublisher buffers envelopes in an inbox channel and writes them from a
// single goroutine, so request handlers never block on the broker. On Close
// the inbox is drained before the writer shuts down.
type KafkaPublisher struct {
	w       *kafkago.Writer
	inbox   chan kafkago.Message
	closeCh chan struct{}
	logger  *zap.Logger

	mu     sync.Mutex
	closed bool
}

func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafkago.Hash{},
			RequiredAcks: kafkago.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		},
		inbox:   make(chan kafkago.Message, 256),
		closeCh: make(chan struct{}),
		logger:  logger,
	}
}

func (p *KafkaPublisher) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		for m := range p.inbox {
			p.write(ctx, m)
		}
		_ = p.w.Close()
	}()
}

func (p *KafkaPublisher) write(ctx context.Context, m kafkago.Message) {
	err := retry.Do(ctx, writePolicy, func() error {
		return p.w.WriteMessages(context.Background(), m)
	})
	if err != nil {
		p.logger.Warn("event publish failed, dropping",
			zap.Error(err),
			zap.ByteString("key", m.Key),
		)
	}
}

// Publish enqueues the envelope. Events are dropped rather than stalling the
// caller when the inbox is full, and dropped silently-but-logged once the
// publisher is closed: a request that raced shutdown must not panic on the
// closed inbox.
func (p *KafkaPublisher) Publish(key string, e Envelope) {
	value, err := json.Marshal(e)
	if err != nil {
		p.logger.Warn("event encode failed", zap.Error(err))
		return
	}
	m := kafkago.Message{
		Key:   []byte(key),
		Value: value,
		Time:  e.OccurredAt,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		p.logger.Warn("publisher closed, dropping event",
			zap.String("event_type", e.EventType),
		)
		return
	}
	select {
	case p.inbox <- m:
	default:
		p.logger.Warn("event inbox full, dropping",
			zap.String("event_type", e.EventType),
		)
	}
}

// Close stops accepting events and waits for the drain goroutine to finish.
// Safe to call more than once.
func (p *KafkaPublisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.inbox)
	<-p.closeCh
}
