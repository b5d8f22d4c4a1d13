package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rental/config"
	"rental/infras/kafka"
	kafkaMocks "rental/infras/kafka/mocks"
	"rental/infras/otel/mocks"
	"rental/infras/s3"
	s3Mocks "rental/infras/s3/mocks"
	"rental/internal/domains/notification/model"
	"rental/internal/domains/notification/service"
	"rental/shared/clock"
	"rental/shared/failure"
)

var errBroker = errors.New("broker unavailable")

func newConfig(deadLetter bool) *config.Config {
	cfg := &config.Config{}
	cfg.Kafka.Topics.Notification = "booking.notification"
	cfg.Notification.MaxRetry = 3
	cfg.Notification.RetryBaseMs = 1
	cfg.Notification.DeadLetterS3 = deadLetter
	cfg.Notification.Bucket = "dead-letters"
	cfg.Notification.Directory = "notifications"

	return cfg
}

func sample() model.Notification {
	return model.Notification{
		Type:      model.TypeApprovalRequest,
		BookingID: "b-1",
		Recipient: "op@example.com",
		Message:   "new booking request",
		Details:   map[string]any{"slot": "10:00"},
	}
}

func TestNotifier_Notify(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

	t.Run("publishes once on success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockKafka := kafkaMocks.NewMockClient(ctrl)
		mockS3 := s3Mocks.NewMockS3(ctrl)

		mockKafka.EXPECT().
			Publish(gomock.Any(), "booking.notification", gomock.Cond(func(msg kafka.Message) bool {
				n, ok := msg.Value.(model.Notification)

				return ok && msg.Key == "b-1" && n.Type == model.TypeApprovalRequest
			})).
			Return(nil)

		svc := service.New(mockKafka, mockS3, newConfig(true), clock.NewMockClock(now), mocks.NewOtel())

		require.NoError(t, svc.Notify(context.Background(), sample()))
	})

	t.Run("retries transient failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockKafka := kafkaMocks.NewMockClient(ctrl)
		mockS3 := s3Mocks.NewMockS3(ctrl)

		gomock.InOrder(
			mockKafka.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(errBroker),
			mockKafka.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		)

		svc := service.New(mockKafka, mockS3, newConfig(true), clock.NewMockClock(now), mocks.NewOtel())

		require.NoError(t, svc.Notify(context.Background(), sample()))
	})

	t.Run("archives to s3 after exhausting retries", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockKafka := kafkaMocks.NewMockClient(ctrl)
		mockS3 := s3Mocks.NewMockS3(ctrl)

		mockKafka.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(errBroker).Times(3)
		mockS3.EXPECT().
			PutObject(gomock.Any(), gomock.Cond(func(object s3.Object) bool {
				var n model.Notification

				return object.Bucket == "dead-letters" &&
					object.Directory == "notifications" &&
					object.ContentType == "application/json" &&
					json.Unmarshal(object.Body, &n) == nil && n.BookingID == "b-1"
			})).
			Return("notifications/b-1.json", nil)

		svc := service.New(mockKafka, mockS3, newConfig(true), clock.NewMockClock(now), mocks.NewOtel())

		err := svc.Notify(context.Background(), sample())
		require.Error(t, err)
		assert.True(t, failure.IsDependency(err))
		assert.ErrorIs(t, err, errBroker)
	})

	t.Run("skips archive when disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockKafka := kafkaMocks.NewMockClient(ctrl)
		mockS3 := s3Mocks.NewMockS3(ctrl)

		mockKafka.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(errBroker).Times(3)

		svc := service.New(mockKafka, mockS3, newConfig(false), clock.NewMockClock(now), mocks.NewOtel())

		err := svc.Notify(context.Background(), sample())
		assert.True(t, failure.IsDependency(err))
	})
}
