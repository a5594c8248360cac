package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/adapters/remote"
	"hotel_booking/internal/app"
	"hotel_booking/internal/shared"
	"hotel_booking/internal/storage"
	"hotel_booking/internal/storage/backends"
)

// seed fills an empty hotels catalog from SEED_PATH or, when unset, from the
// remote {BASE_URL}/hotels.json.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	kv, closeKV, err := backends.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("storage open failed")
	}
	defer closeKV()
	a := storage.NewAdapter(kv, cfg.StorageDriver)

	var src app.SeedSource
	if cfg.SeedPath != "" {
		log.Info().Str("path", cfg.SeedPath).Msg("seeding from file")
		src = app.FileSource(cfg.SeedPath)
	} else {
		log.Info().Str("base", cfg.BaseURL).Msg("seeding from remote hotels.json")
		c := remote.New(cfg.BaseURL, cfg.RemoteRPS, cfg.RemoteMaxInFlight)
		src = app.RepositorySource(remote.NewHotelRepo(c))
	}

	seeded, err := app.Seed(ctx, a, src)
	if err != nil {
		_ = closeKV()
		log.Fatal().Err(err).Msg("seed failed")
	}
	if !seeded {
		log.Info().Msg("catalog already present; nothing to do")
		return
	}
	log.Info().Msg("seed completed")
}
