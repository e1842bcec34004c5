package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	model "card-orderbook/internal/models"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

var testCard = model.Card{Market: common.HexToAddress("0xaa"), Token: 7}

type fakeRedis struct {
	channel string
	payload []byte
	err     error
	closed  bool
}

func (f *fakeRedis) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.payload, _ = message.([]byte)
	return redis.NewIntResult(1, f.err)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestChannel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{
			name:  "owner_changed",
			event: OwnerChanged(model.HeadChange{Card: testCard}, nil),
			want:  "orderbook:" + testCard.Market.Hex() + ":7",
		},
		{
			name:  "cascade_pending",
			event: CascadePending(testCard, common.HexToAddress("0x01"), 10),
			want:  "orderbook:" + testCard.Market.Hex() + ":7",
		},
		{
			name:  "bids_pruned",
			event: BidsPruned(common.HexToAddress("0x02"), 3, 0),
			want:  "orderbook:bidder:0x0000000000000000000000000000000000000002",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Channel(tc.event))
		})
	}
}

func TestOwnerChanged(t *testing.T) {
	t.Parallel()

	change := model.HeadChange{
		Card:     testCard,
		Changed:  true,
		Previous: common.HexToAddress("0x01"),
		Current:  common.HexToAddress("0x02"),
	}
	ev := OwnerChanged(change, uint256.NewInt(1500))
	require.Equal(t, TypeOwnerChanged, ev.Type)
	require.Equal(t, "1500", ev.Price)
	require.Equal(t, change.Current, ev.Current)
	require.NotEmpty(t, ev.ID)
	require.NotZero(t, ev.Timestamp)

	require.Empty(t, OwnerChanged(change, nil).Price)
}

func TestRedisPublisher_Publish(t *testing.T) {
	t.Parallel()

	client := &fakeRedis{}
	pub := NewRedisPublisher(client)
	ev := OwnerChanged(model.HeadChange{Card: testCard, Current: common.HexToAddress("0x02")}, uint256.NewInt(9))

	require.NoError(t, pub.Publish(context.Background(), ev))
	require.Equal(t, Channel(ev), client.channel)

	var got Event
	require.NoError(t, json.Unmarshal(client.payload, &got))
	require.Equal(t, ev, got)

	client.err = errors.New("connection refused")
	require.ErrorContains(t, pub.Publish(context.Background(), ev), "connection refused")

	require.NoError(t, pub.Close())
	require.True(t, client.closed)
}

func TestKafkaPublisher_Publish(t *testing.T) {
	t.Parallel()

	writer := &fakeWriter{}
	pub := NewKafkaPublisher(writer)
	ev := CascadePending(testCard, common.HexToAddress("0x03"), 10)

	require.NoError(t, pub.Publish(context.Background(), ev))
	require.Len(t, writer.msgs, 1)
	require.Equal(t, Channel(ev), string(writer.msgs[0].Key))
	require.Equal(t, "type", writer.msgs[0].Headers[0].Key)
	require.Equal(t, string(TypeCascadePending), string(writer.msgs[0].Headers[0].Value))

	writer.err = errors.New("leader not available")
	require.ErrorContains(t, pub.Publish(context.Background(), ev), "leader not available")
}

func TestLogPublisher(t *testing.T) {
	t.Parallel()

	var pub Publisher = LogPublisher{}
	require.NoError(t, pub.Publish(context.Background(), BidsPruned(common.HexToAddress("0x04"), 1, 2)))
	require.NoError(t, pub.Close())
}
