//go:build integration

package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	id "altscore/pkg/domain"
	"altscore/pkg/testutil/containers"
)

func TestKafkaPublisherRoundTrip(t *testing.T) {
	redpanda := containers.NewRedpandaContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	const topic = "altscore.audit"

	pub, err := NewKafkaPublisher(ctx, []string{redpanda.Broker}, topic)
	require.NoError(t, err)
	defer pub.Close()

	sent := Event{
		Timestamp:  time.Now().UTC().Truncate(time.Millisecond),
		BusinessID: id.BusinessID("B042"),
		Action:     ActionDecisionMade,
		Score:      71,
		RiskTier:   "Low Risk",
	}
	require.NoError(t, pub.Emit(ctx, sent))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(redpanda.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "B042", string(records[0].Key))

	var got Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, sent.BusinessID, got.BusinessID)
	assert.Equal(t, sent.Action, got.Action)
	assert.Equal(t, sent.Score, got.Score)
	assert.Equal(t, sent.RiskTier, got.RiskTier)
}

func TestKafkaPublisherTopicAlreadyExists(t *testing.T) {
	redpanda := containers.NewRedpandaContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	first, err := NewKafkaPublisher(ctx, []string{redpanda.Broker}, "altscore.audit")
	require.NoError(t, err)
	first.Close()

	// Second connect must tolerate the existing topic.
	second, err := NewKafkaPublisher(ctx, []string{redpanda.Broker}, "altscore.audit")
	require.NoError(t, err)
	second.Close()
}
