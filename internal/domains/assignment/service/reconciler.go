package service

import (
	"context"
	"fmt"
	"rental/config"
	"rental/infras/otel"
	"rental/internal/domains/assignment/publisher"
	bookingRepo "rental/internal/domains/booking/repository"
	"rental/shared/clock"
	"rental/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

// Reconciler re-enqueues bookings whose assignment task was lost.
type Reconciler interface {
	// Sweep enqueues one batch of stale REQUESTED bookings and reports how many were queued.
	Sweep(ctx context.Context) (int, error)
	// Run sweeps on every interval until ctx is done.
	Run(ctx context.Context) error
}

type reconcilerImpl struct {
	bookings  bookingRepo.Booking
	publisher publisher.Publisher
	clock     clock.Clock
	cfg       *config.Config
	otel      otel.Otel
}

func NewReconciler(bookings bookingRepo.Booking, publisher publisher.Publisher, clk clock.Clock, cfg *config.Config, otel otel.Otel) Reconciler {
	return &reconcilerImpl{
		bookings:  bookings,
		publisher: publisher,
		clock:     clk,
		cfg:       cfg,
		otel:      otel,
	}
}

func (r *reconcilerImpl) Sweep(ctx context.Context) (queued int, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".assignment.Sweep")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	staleBefore := r.clock.Now().Add(-time.Duration(r.cfg.Booking.ReconcileStaleSeconds) * time.Second)

	stale, err := r.bookings.FindStaleRequested(ctx, staleBefore, max(r.cfg.Booking.ReconcileBatchSize, 1))
	if err != nil {
		log.Error().Err(err).Msg("failed to find stale bookings")

		return 0, fmt.Errorf("failed to find stale bookings: %w", err)
	}

	for _, booking := range stale {
		if err := r.publisher.Enqueue(ctx, booking.ID); err != nil {
			scope.TraceError(err)

			continue
		}

		queued++
	}

	if len(stale) > 0 {
		log.Info().Int("stale", len(stale)).Int("queued", queued).Msg("stale bookings re-enqueued")
	}

	scope.SetAttribute("queued", queued)

	return queued, nil
}

func (r *reconcilerImpl) Run(ctx context.Context) error {
	interval := time.Duration(max(r.cfg.Booking.ReconcileIntervalSecond, 1)) * time.Second

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Msg("reconciler started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("reconciler stopped")

			return nil
		case <-ticker.C:
			// A failed sweep is retried on the next tick.
			_, _ = r.Sweep(ctx)
		}
	}
}
