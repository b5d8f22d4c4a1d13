package main

import (
	"context"
	"os"
	"os/signal"
	"rental/config"
	"rental/di"
	"rental/shared/logger"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.UseJSONOutput(cfg)
	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runtime := di.InitializeWorker()
	if err := runtime.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Assignment worker stopped")
	}

	log.Info().Msg("Assignment worker exited.")
}
