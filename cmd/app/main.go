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

// @title Vehicle Rental Booking API
// @version 1.0
// @description Slot booking and operator approval for rental vehicles.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.UseJSONOutput(cfg)
	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	http := di.InitializeService()
	if err := http.Serve(ctx); err != nil {
		log.Fatal().Err(err).Msg("HTTP server stopped")
	}
}
