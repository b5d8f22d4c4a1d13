package kafka_test

import (
	"rental/infras/kafka"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	BookingID string `json:"bookingId"`
	Action    string `json:"action"`
}

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:     "b-1",
		Value:   payload{BookingID: "b-1", Action: "NEW_BOOKING_REQUEST"},
		Headers: map[string]string{"attempts": "3"},
	}

	km, err := msg.ToKafkaMessage()
	require.NoError(t, err)

	assert.Equal(t, []byte("b-1"), km.Key)
	assert.JSONEq(t, `{"bookingId":"b-1","action":"NEW_BOOKING_REQUEST"}`, string(km.Value))
	assert.Equal(t, []kafkaGo.Header{{Key: "attempts", Value: []byte("3")}}, km.Headers)
}

func TestMessage_ToKafkaMessageRawBytes(t *testing.T) {
	raw := []byte(`{"not":"re-encoded"}`)
	msg := kafka.Message{Key: "k", Value: raw}

	km, err := msg.ToKafkaMessage()
	require.NoError(t, err)

	assert.Equal(t, raw, km.Value)
}

func TestMessage_ToKafkaMessageUnsupported(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

func TestDecodeKafkaMessage(t *testing.T) {
	got, err := kafka.DecodeKafkaMessage[payload](kafkaGo.Message{
		Key:   []byte("b-2"),
		Value: []byte(`{"bookingId":"b-2","action":"NEW_BOOKING_REQUEST"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, payload{BookingID: "b-2", Action: "NEW_BOOKING_REQUEST"}, got)

	_, err = kafka.DecodeKafkaMessage[payload](kafkaGo.Message{Value: []byte(`{broken`)})
	assert.Error(t, err)
}
