//go:build integration

package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"auditarmor/internal/chain"
	"auditarmor/pkg/testutil/containers"
)

func TestKafkaSink_ProducesChainEntries(t *testing.T) {
	broker := containers.NewRedpandaContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sink, err := NewKafkaSink(ctx, broker.Brokers, "audit-chain")
	require.NoError(t, err)

	// A second sink on the same topic must tolerate the existing topic.
	again, err := NewKafkaSink(ctx, broker.Brokers, "audit-chain")
	require.NoError(t, err)
	require.NoError(t, again.Close())

	p := New([]Sink{sink})
	log, err := chain.New(t.TempDir(), chain.WithNotifier(p))
	require.NoError(t, err)

	var appended []chain.Entry
	for _, name := range []string{"report.pdf", "minutes.docx", "ledger.csv"} {
		e, err := log.Append(ctx, "EVIDENCE_UPLOAD", chain.Payload{"filename": chain.String(name)})
		require.NoError(t, err)
		appended = append(appended, e)
	}
	require.NoError(t, p.Close())

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Brokers...),
		kgo.ConsumeTopics("audit-chain"),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	var received []chain.Entry
	for len(received) < len(appended) {
		fetches := consumer.PollFetches(ctx)
		require.NoError(t, ctx.Err())
		fetches.EachRecord(func(r *kgo.Record) {
			var e chain.Entry
			require.NoError(t, json.Unmarshal(r.Value, &e))
			assert.Equal(t, e.Hash, string(r.Key))
			received = append(received, e)
		})
	}

	require.Len(t, received, len(appended))
	for i := range appended {
		assert.Equal(t, appended[i].Hash, received[i].Hash)
	}
	assert.NoError(t, chain.VerifyEntries(received))
}
