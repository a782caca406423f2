package coinmiddleware

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/InvArch/invarch-bridge-service/models"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const priceMessage = `{"topic":"coin-price","data":{"id":"1","priceList":[
	{"coinId":1,"symbol":"DOT","chain":"Polkadot","price":6.52,"timestamp":1700000000000},
	{"coinId":2,"symbol":"","price":1},
	{"coinId":3,"symbol":"USDT","price":1.0001,"timestamp":1700000000000}
]}}`

type updaterFunc func(ctx context.Context, prices []*models.TokenPrice) error

func (f updaterFunc) UpdatePrices(ctx context.Context, prices []*models.TokenPrice) error {
	return f(ctx, prices)
}

type fakeSession struct {
	ctx    context.Context
	lock   sync.Mutex
	marked []int64
}

func (s *fakeSession) Claims() map[string][]int32 { return nil }
func (s *fakeSession) MemberID() string           { return "member" }
func (s *fakeSession) GenerationID() int32        { return 1 }
func (s *fakeSession) MarkOffset(topic string, partition int32, offset int64, metadata string) {
}
func (s *fakeSession) Commit() {}
func (s *fakeSession) ResetOffset(topic string, partition int32, offset int64, metadata string) {
}
func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, metadata string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.marked = append(s.marked, msg.Offset)
}
func (s *fakeSession) Context() context.Context { return s.ctx }

type fakeClaim struct {
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Topic() string                            { return "coin-price" }
func (c *fakeClaim) Partition() int32                         { return 0 }
func (c *fakeClaim) InitialOffset() int64                     { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64               { return 0 }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func TestHandleMessage(t *testing.T) {
	var got []*models.TokenPrice
	h := NewMessageHandler(updaterFunc(func(ctx context.Context, prices []*models.TokenPrice) error {
		got = prices
		return nil
	}))

	require.NoError(t, h.handleMessage(context.Background(), &sarama.ConsumerMessage{Value: []byte(priceMessage)}))
	require.Len(t, got, 2)
	assert.Equal(t, models.TokenPrice{Symbol: "DOT", Price: 6.52, Time: 1700000000000}, *got[0])
	assert.Equal(t, "USDT", got[1].Symbol)

	err := h.handleMessage(context.Background(), &sarama.ConsumerMessage{Value: []byte("{")})
	assert.True(t, errors.Is(err, errInvalidMessage))
	err = h.handleMessage(context.Background(), &sarama.ConsumerMessage{Value: []byte(`{"topic":"x"}`)})
	assert.True(t, errors.Is(err, errInvalidMessage))
}

func TestConsumeClaim(t *testing.T) {
	calls := 0
	h := NewMessageHandler(updaterFunc(func(ctx context.Context, prices []*models.TokenPrice) error {
		calls++
		if calls == 1 {
			return errors.New("store unavailable")
		}
		return nil
	}))
	h.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	session := &fakeSession{ctx: ctx}
	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 3)}
	claim.messages <- &sarama.ConsumerMessage{Offset: 1, Value: []byte(priceMessage)}
	claim.messages <- &sarama.ConsumerMessage{Offset: 2, Value: []byte("not json")}
	claim.messages <- &sarama.ConsumerMessage{Offset: 3, Value: []byte(priceMessage)}
	close(claim.messages)

	require.NoError(t, h.Setup(session))
	require.NoError(t, h.ConsumeClaim(session, claim))
	require.NoError(t, h.Cleanup(session))

	// the first message is retried once, the invalid one is not retried
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int64{1, 2, 3}, session.marked)
}
