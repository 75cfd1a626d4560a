package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"auditarmor/internal/chain"
)

// KafkaSink produces appended entries to a topic, keyed by their hash.
// Delivery is best-effort: the publisher drops announcements under
// back-pressure and keys spread entries over partitions, so consumers order
// what they receive by previous_hash and treat the chain file as the record.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

// NewKafkaSink connects to brokers and makes sure topic exists. Extra kgo
// options are appended after the defaults.
func NewKafkaSink(ctx context.Context, brokers []string, topic string, opts ...kgo.Opt) (*KafkaSink, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka sink: no brokers configured")
	}
	if topic == "" {
		return nil, errors.New("kafka sink: topic is required")
	}

	base := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.NoCompression()),
	}
	client, err := kgo.NewClient(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("kafka sink: create client: %w", err)
	}
	if err := ensureTopic(ctx, kadm.NewClient(client), topic); err != nil {
		client.Close()
		return nil, err
	}
	return &KafkaSink{client: client, topic: topic}, nil
}

func ensureTopic(ctx context.Context, adm *kadm.Client, topic string) error {
	resp, err := adm.CreateTopics(ctx, 1, 1, nil, topic)
	if err != nil {
		return fmt.Errorf("kafka sink: create topic %s: %w", topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("kafka sink: create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

func (k *KafkaSink) Name() string { return "kafka" }

// Publish produces entry synchronously so the caller learns about failures.
func (k *KafkaSink) Publish(ctx context.Context, entry chain.Entry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(entry.Hash),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "event", Value: []byte(entry.Event)},
			{Key: "previous_hash", Value: []byte(entry.PreviousHash)},
		},
	}
	return k.client.ProduceSync(ctx, record).FirstErr()
}

// Close flushes buffered records and closes the client.
func (k *KafkaSink) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultPublishTimeout)
	defer cancel()
	err := k.client.Flush(ctx)
	k.client.Close()
	return err
}
