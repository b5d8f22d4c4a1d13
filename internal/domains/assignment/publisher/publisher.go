package publisher

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=../mocks/publisher_mock.go -package=mocks

import (
	"context"
	"rental/config"
	"rental/infras/kafka"
	"rental/infras/otel"
	"rental/internal/domains/assignment/model"
	"rental/shared/constant"
	"rental/shared/failure"

	"github.com/rs/zerolog/log"
)

type Publisher interface {
	// Enqueue publishes one assignment task for bookingID. Errors satisfy failure.IsDependency.
	Enqueue(ctx context.Context, bookingID string) error
}

type publisherImpl struct {
	kafka kafka.Client
	topic string
	otel  otel.Otel
}

func New(kafka kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		kafka: kafka,
		topic: cfg.Kafka.Topics.Assignment,
		otel:  otel,
	}
}

func (p *publisherImpl) Enqueue(ctx context.Context, bookingID string) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".assignment.Enqueue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("booking_id", bookingID)

	headers := map[string]string{}
	otel.Inject(ctx, headers)

	err = p.kafka.Publish(ctx, p.topic, kafka.Message{Key: bookingID, Value: model.NewTask(bookingID), Headers: headers})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to enqueue assignment task")

		return failure.Dependency(model.EntityName, err)
	}

	return nil
}
