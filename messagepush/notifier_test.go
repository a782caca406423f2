package messagepush

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "bridge"

func TestNotifierDedup(t *testing.T) {
	producer, err := NewKafkaProducer(Config{UseFakeProducer: true, Topic: testTopic})
	require.NoError(t, err)
	window := 100 * time.Millisecond
	n := NewNotifier(producer, window)

	n.ShowNotification(Notification{Variant: VariantSuccess, Message: "Assets bridged"})
	n.ShowNotification(Notification{Variant: VariantSuccess, Message: "Assets bridged"})
	n.ShowNotification(Notification{Variant: VariantError, Message: "Transaction failed"})

	messages := producer.GetFakeMessages(testTopic)
	require.Len(t, messages, 2)

	var msg PushMessage
	require.NoError(t, json.Unmarshal([]byte(messages[0]), &msg))
	assert.Equal(t, BizCodeNotification, msg.BizCode)
	var notification Notification
	require.NoError(t, json.Unmarshal([]byte(msg.PushContent), &notification))
	assert.Equal(t, Notification{Variant: VariantSuccess, Message: "Assets bridged"}, notification)
	assert.Empty(t, producer.GetFakeMessages(testTopic))

	// shown again once the window is over
	require.Eventually(t, func() bool {
		_, ok := n.shown.Get("Assets bridged")
		return !ok
	}, time.Second, 10*time.Millisecond)
	n.ShowNotification(Notification{Variant: VariantSuccess, Message: "Assets bridged"})
	n.ShowNotification(Notification{Variant: VariantSuccess, Message: "Assets bridged"})
	assert.Len(t, producer.GetFakeMessages(testTopic), 1)
}

func TestNotifierWithoutProducer(t *testing.T) {
	n := NewNotifier(nil, time.Minute)
	n.ShowNotification(Notification{Variant: VariantError, Message: "offline"})
	assert.False(t, n.admit("offline"))
	assert.True(t, n.admit("online"))
}

func TestFakeProducer(t *testing.T) {
	producer, err := NewKafkaProducer(Config{UseFakeProducer: true, Topic: testTopic})
	require.NoError(t, err)

	require.NoError(t, producer.PushBridgeStatus(&BridgeStatusUpdate{OperationID: "op", Direction: "in", Status: "success"}))
	require.NoError(t, producer.PushBridgeStatus(nil))
	require.NoError(t, producer.Produce("raw", WithTopic("other")))
	for i := 0; i < fakeMessageLimit+5; i++ {
		require.NoError(t, producer.Produce(i, WithTopic("many")))
	}

	messages := producer.GetFakeMessages(testTopic)
	require.Len(t, messages, 1)
	var msg PushMessage
	require.NoError(t, json.Unmarshal([]byte(messages[0]), &msg))
	assert.Equal(t, BizCodeBridgeStatus, msg.BizCode)
	assert.Contains(t, msg.PushContent, `"operationId":"op"`)

	assert.Equal(t, []string{"raw"}, producer.GetFakeMessages("other"))
	many := producer.GetFakeMessages("many")
	require.Len(t, many, fakeMessageLimit)
	assert.Equal(t, "5", many[0])
	require.NoError(t, producer.Close())
}
