// offer_sweep deactivates every expired offer that is still flagged active.
// Run it from cron.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"clinic/internal/config"
	"clinic/internal/database"
	"clinic/internal/domain"
	"clinic/internal/modules/offer"
	"clinic/internal/pkg/logger"
	"clinic/internal/repository"
)

type noopNotifier struct{}

func (noopNotifier) NotifyNewOffer(context.Context, *domain.Offer) {}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("config load failed")
	}
	log := logger.New(cfg.Log, cfg.AppEnv)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	svc := offer.NewService(repository.NewOfferRepository(db), noopNotifier{}, log)
	n, err := svc.Sweep(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("offer sweep failed")
	}
	log.Info().Int("expired", n).Msg("offer sweep completed")
}
