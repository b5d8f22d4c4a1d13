// Package worker consumes assignment tasks from Kafka.
package worker

import (
	"context"
	"errors"
	"fmt"
	"rental/config"
	"rental/infras/kafka"
	"rental/infras/otel"
	"rental/internal/domains/assignment/model"
	"rental/internal/domains/assignment/service"
	"rental/shared/constant"
	"rental/shared/logger"
	"rental/shared/retry"
	"time"

	"github.com/rs/zerolog"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	HeaderError    = "x-error"
	HeaderAttempts = "x-attempts"
)

var ErrNoReader = errors.New("kafka reader unavailable")

// Consumer feeds assignment tasks to the worker. A task is committed once
// the worker accepted it or after it was moved to the dead-letter topic.
type Consumer struct {
	client  kafka.Client
	handler service.Worker
	cfg     *config.Config
	otel    otel.Otel
	log     zerolog.Logger
}

func New(client kafka.Client, handler service.Worker, cfg *config.Config, otel otel.Otel) *Consumer {
	return &Consumer{
		client:  client,
		handler: handler,
		cfg:     cfg,
		otel:    otel,
		log:     logger.Component("assignment-consumer"),
	}
}

// Run blocks until ctx is done.
func (c *Consumer) Run(ctx context.Context) error {
	topic := c.cfg.Kafka.Topics.Assignment

	reader := c.client.Reader(c.cfg.Kafka.ConsumerGroup, topic)
	if reader == nil {
		return ErrNoReader
	}

	defer func() {
		if err := reader.Close(); err != nil {
			c.log.Error().Err(err).Msg("Failed to close Kafka reader.")
		}
	}()

	c.log.Info().Str("topic", topic).Msg("Assignment consumer started.")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.log.Info().Msg("Consumer context done.")

				return nil
			}

			c.log.Error().Err(err).Str("topic", topic).Msg("Failed to read message from Kafka.")

			if !c.wait(ctx) {
				return nil
			}

			continue
		}

		if !c.handle(ctx, msg) {
			// Shutting down mid-task; leave the offset for redelivery.
			return nil
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			c.log.Error().Err(err).Str("key", string(msg.Key)).Msg("Failed to commit Kafka message.")
		}
	}
}

// handle reports whether msg is settled and may be committed.
func (c *Consumer) handle(ctx context.Context, msg kafkaGo.Message) bool {
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}

	ctx, scope := c.otel.NewScope(otel.Extract(ctx, headers), constant.OtelEventScopeName, constant.OtelEventScopeName+".assignment.Consume")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		"key":       string(msg.Key),
		"partition": msg.Partition,
		"offset":    msg.Offset,
	})

	task, err := kafka.DecodeKafkaMessage[model.Task](msg)
	if err != nil {
		scope.TraceError(err)
		c.deadLetter(ctx, msg, err, 0)

		return true
	}

	attempts := uint(0)

	err = retry.Do(ctx, retry.Ms(c.cfg.Kafka.RetryBaseMs), c.cfg.Kafka.MaxRetry, func() error {
		attempts++

		return c.handler.Process(ctx, task)
	})
	if err == nil {
		return true
	}

	if ctx.Err() != nil {
		return false
	}

	scope.TraceError(err)
	c.log.Error().Err(err).Str("booking_id", task.BookingID).Uint("attempts", attempts).Msg("Assignment task exhausted retries.")
	c.deadLetter(ctx, msg, err, attempts)

	return true
}

func (c *Consumer) deadLetter(ctx context.Context, msg kafkaGo.Message, cause error, attempts uint) {
	headers := map[string]string{
		HeaderError:    cause.Error(),
		HeaderAttempts: fmt.Sprint(attempts),
	}
	otel.Inject(ctx, headers)

	err := c.client.Publish(ctx, c.cfg.Kafka.Topics.AssignmentDLQ, kafka.Message{
		Key:     string(msg.Key),
		Value:   msg.Value,
		Headers: headers,
	})
	if err != nil {
		c.log.Error().Err(err).Str("key", string(msg.Key)).Msg("Failed to dead-letter assignment task.")

		return
	}

	c.log.Warn().Str("key", string(msg.Key)).Str("topic", c.cfg.Kafka.Topics.AssignmentDLQ).Msg("Assignment task dead-lettered.")
}

func (c *Consumer) wait(ctx context.Context) bool {
	timer := time.NewTimer(retry.Ms(c.cfg.Kafka.RetryBaseMs))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
