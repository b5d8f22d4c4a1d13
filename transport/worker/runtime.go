package worker

import (
	"context"
	"rental/infras/kafka"
	"rental/infras/postgres"
	"rental/internal/domains/assignment/service"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Runtime is the assignment worker process: the task consumer and the
// stale booking reconciler.
type Runtime struct {
	Consumer   *Consumer
	Reconciler service.Reconciler
	Kafka      kafka.Client
	DB         *postgres.Connection
}

// Run blocks until ctx is done or either component fails, then releases
// the broker and database connections.
func (r *Runtime) Run(ctx context.Context) error {
	defer r.close()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error { return r.Consumer.Run(ctx) })
	group.Go(func() error { return r.Reconciler.Run(ctx) })

	return group.Wait() //nolint:wrapcheck
}

func (r *Runtime) close() {
	if r.Kafka != nil {
		if err := r.Kafka.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka client.")
		}
	}

	if r.DB != nil {
		r.DB.Close()
	}
}
