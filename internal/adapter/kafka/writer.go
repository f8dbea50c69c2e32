package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/neighborhood-insights/internal/config"
	"github.com/couchcryptid/neighborhood-insights/internal/insight"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher produces insight report events to a Kafka topic.
// It implements insight.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured insights topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaInsightsTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish serializes a report and writes it keyed by place key, so every
// report for a place lands on the same partition.
func (p *Publisher) Publish(ctx context.Context, report insight.Report) error {
	msg, err := serializeToMessage(report)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// reportEvent is the wire form of a report. The narrative is left out since
// consumers can recompose it from the record.
type reportEvent struct {
	Key         string    `json:"key"`
	Record      any       `json:"record"`
	Pros        []string  `json:"pros"`
	Cons        []string  `json:"cons"`
	GeneratedAt time.Time `json:"generated_at"`
}

// serializeToMessage marshals a report into a Kafka message.
func serializeToMessage(report insight.Report) (kafkago.Message, error) {
	ev := reportEvent{
		Key:         report.Key,
		Record:      report.Record,
		Pros:        make([]string, 0, len(report.Insights.Positives)),
		Cons:        make([]string, 0, len(report.Insights.Negatives)),
		GeneratedAt: report.GeneratedAt,
	}
	for _, o := range report.Insights.Positives {
		ev.Pros = append(ev.Pros, o.Text)
	}
	for _, o := range report.Insights.Negatives {
		ev.Cons = append(ev.Cons, o.Text)
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize insight report: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(report.Key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte("place_insights")},
			{Key: "generated_at", Value: []byte(report.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
