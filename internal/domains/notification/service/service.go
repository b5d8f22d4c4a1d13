package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"rental/config"
	"rental/infras/kafka"
	"rental/infras/otel"
	"rental/infras/s3"
	"rental/internal/domains/notification/model"
	"rental/shared/clock"
	"rental/shared/constant"
	"rental/shared/failure"
	"rental/shared/retry"

	"github.com/rs/zerolog/log"
)

// Notifier delivers booking notifications on a best effort basis. A returned
// error always satisfies failure.IsDependency and must never roll back state.
type Notifier interface {
	Notify(ctx context.Context, notification model.Notification) error
}

type serviceImpl struct {
	kafka kafka.Client
	s3    s3.S3
	cfg   *config.Config
	clock clock.Clock
	otel  otel.Otel
}

func New(kafka kafka.Client, s3 s3.S3, cfg *config.Config, clk clock.Clock, otel otel.Otel) Notifier {
	return &serviceImpl{
		kafka: kafka,
		s3:    s3,
		cfg:   cfg,
		clock: clk,
		otel:  otel,
	}
}

func (s *serviceImpl) Notify(ctx context.Context, notification model.Notification) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.Notify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"type":       string(notification.Type),
		"booking_id": notification.BookingID,
	})

	headers := map[string]string{}
	otel.Inject(ctx, headers)

	message := kafka.Message{Key: notification.BookingID, Value: notification, Headers: headers}
	attempt := 0

	err = retry.Do(ctx, retry.Ms(s.cfg.Notification.RetryBaseMs), s.cfg.Notification.MaxRetry, func() error {
		attempt++

		publishErr := s.kafka.Publish(ctx, s.cfg.Kafka.Topics.Notification, message)
		if publishErr != nil {
			log.Warn().Err(publishErr).Int("attempt", attempt).Str("booking_id", notification.BookingID).Msg("failed to publish notification, retrying")
		}

		return publishErr
	})
	if err == nil {
		return nil
	}

	log.Error().Err(err).
		Str("type", string(notification.Type)).
		Str("booking_id", notification.BookingID).
		Msg("notification dropped after retries")

	s.archive(ctx, notification)

	return failure.Dependency(model.EntityName, err)
}

// archive keeps a copy of an undeliverable notification in object storage.
func (s *serviceImpl) archive(ctx context.Context, notification model.Notification) {
	if !s.cfg.Notification.DeadLetterS3 {
		return
	}

	data, err := json.Marshal(notification)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal dead letter notification")

		return
	}

	fileName := fmt.Sprintf("%s-%s-%d.json", notification.BookingID, notification.Type, s.clock.Now().UnixNano())

	key, err := s.s3.PutObject(ctx, s3.Object{
		Bucket:      s.cfg.Notification.Bucket,
		Directory:   s.cfg.Notification.Directory,
		Name:        fileName,
		ContentType: constant.ContentTypeJSON,
		Body:        data,
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", notification.BookingID).Msg("failed to archive dead letter notification")

		return
	}

	log.Info().Str("object_key", key).Msg("dead letter notification archived")
}
