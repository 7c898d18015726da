package publishers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ctp-hq/event-gateway/pkg/event"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// kafkaWriter is the subset of *kafka.Writer used by kafkaPublisher.
type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaPublisher writes envelopes to Kafka, keyed by transaction id.
type kafkaPublisher struct {
	id     string
	typ    string
	topic  string
	writer kafkaWriter
	log    Logger
}

func newKafkaPublisher(_ context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.Kafka == nil {
		return nil, fmt.Errorf("publisher %q missing kafka configuration", cfg.ID)
	}
	acks, err := parseRequiredAcks(cfg.Kafka.RequiredAcks)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.Kafka.WriteTimeoutSeconds) * time.Second
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Kafka.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           acks,
		MaxAttempts:            1,
		WriteTimeout:           timeout,
		ReadTimeout:            timeout,
		AllowAutoTopicCreation: true,
	}
	if cfg.Kafka.ClientID != "" {
		w.Transport = &kafka.Transport{ClientID: cfg.Kafka.ClientID}
	}

	return &kafkaPublisher{
		id:     cfg.ID,
		typ:    TypeKafka,
		topic:  cfg.Kafka.Topic,
		writer: w,
		log:    ensureLogger(log),
	}, nil
}

func parseRequiredAcks(raw string) (kafka.RequiredAcks, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all", "-1":
		return kafka.RequireAll, nil
	case "one", "1":
		return kafka.RequireOne, nil
	case "none", "0":
		return kafka.RequireNone, nil
	default:
		return 0, fmt.Errorf("unsupported kafka required_acks %q", raw)
	}
}

func (k *kafkaPublisher) ID() string   { return k.id }
func (k *kafkaPublisher) Type() string { return k.typ }

// Publish writes one message. The routing key selects the topic unless the
// publisher is pinned to a fixed topic.
func (k *kafkaPublisher) Publish(ctx context.Context, routingKey string, msg event.Message) error {
	wire, err := encode(routingKey, msg)
	if err != nil {
		return err
	}

	topic := k.topic
	if topic == "" {
		topic = routingKey
	}
	if topic == "" {
		return fmt.Errorf("kafka publisher %q: no topic for empty routing key", k.id)
	}

	headers := make([]kafka.Header, 0, len(wire.attributes)+2)
	for key, v := range wire.attributes {
		headers = append(headers, kafka.Header{Key: key, Value: []byte(v)})
	}
	headers = injectTraceHeaders(ctx, headers)

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Topic:   topic,
		Key:     []byte(wire.header.TransactionID),
		Value:   wire.body,
		Headers: headers,
		Time:    wire.header.DateTime,
	})
	if err != nil {
		k.log.ErrorObj("kafka publisher send failed", "publisher_kafka_error", map[string]any{
			"publisher_id":   k.id,
			"topic":          topic,
			"transaction_id": wire.header.TransactionID,
			"error":          err.Error(),
		})
		return fmt.Errorf("write kafka message: %w", err)
	}
	k.log.DebugObj("kafka publisher delivered event", "publisher_kafka_delivery", map[string]any{
		"publisher_id":   k.id,
		"topic":          topic,
		"transaction_id": wire.header.TransactionID,
	})
	return nil
}

func (k *kafkaPublisher) Close() error { return k.writer.Close() }

// injectTraceHeaders appends W3C trace context headers using the global propagator.
func injectTraceHeaders(ctx context.Context, headers []kafka.Header) []kafka.Header {
	carrier := &kafkaHeaderCarrier{headers: headers}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	return carrier.headers
}

type kafkaHeaderCarrier struct {
	headers []kafka.Header
}

func (c *kafkaHeaderCarrier) Get(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *kafkaHeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}

func (c *kafkaHeaderCarrier) Set(key, value string) {
	for i := range c.headers {
		if c.headers[i].Key == key {
			c.headers[i].Value = []byte(value)
			return
		}
	}
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

var _ propagation.TextMapCarrier = (*kafkaHeaderCarrier)(nil)
