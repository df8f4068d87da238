//go:build integration

package kafka_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"feder/internal/platform/config"
	"feder/internal/platform/kafka"
	"feder/pkg/platform/outbox"
	"feder/pkg/testutil/containers"
)

type PublisherSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
	client   *kgo.Client
}

func TestPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupSuite() {
	s.redpanda = containers.GetManager().GetRedpanda(s.T())
	client, err := kafka.NewClient(context.Background(), config.KafkaConfig{
		Brokers:  []string{s.redpanda.Broker},
		ClientID: "feder-test",
	})
	s.Require().NoError(err)
	s.client = client
}

func (s *PublisherSuite) TearDownSuite() {
	if s.client != nil {
		s.client.Close()
	}
}

func (s *PublisherSuite) TestEnsureTopicsIsIdempotent() {
	ctx := context.Background()
	topic := "feder.test." + uuid.NewString()[:8]
	s.Require().NoError(kafka.EnsureTopics(ctx, s.client, 1, 1, topic))
	s.Require().NoError(kafka.EnsureTopics(ctx, s.client, 1, 1, topic))
}

func (s *PublisherSuite) TestPublishCarriesKeyAndEventType() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	topic := "feder.records." + uuid.NewString()[:8]
	s.Require().NoError(kafka.EnsureTopics(ctx, s.client, 1, 1, topic))

	entry, err := outbox.NewEntry(topic, "case-1", "record.created", map[string]string{"kind": "letter"}, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(kafka.NewPublisher(s.client).Publish(ctx, []outbox.Entry{entry}))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	var got *kgo.Record
	for got == nil {
		fetches := consumer.PollFetches(ctx)
		s.Require().NoError(ctx.Err())
		fetches.EachRecord(func(r *kgo.Record) {
			if got == nil {
				got = r
			}
		})
	}
	s.Equal("case-1", string(got.Key))
	s.JSONEq(`{"kind":"letter"}`, string(got.Value))

	headers := map[string]string{}
	for _, h := range got.Headers {
		headers[h.Key] = string(h.Value)
	}
	s.Equal("record.created", headers["event_type"])
	s.Equal(entry.ID.String(), headers["outbox_id"])
}
