package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "hotel_booking/internal/adapters/http_server"
	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/adapters/remote"
	"hotel_booking/internal/app"
	"hotel_booking/internal/auth"
	"hotel_booking/internal/clock"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/notify"
	"hotel_booking/internal/shared"
	"hotel_booking/internal/storage"
	"hotel_booking/internal/storage/backends"
	"hotel_booking/internal/storage/local"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, closeKV, err := backends.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("storage open failed")
	}
	defer closeKV()
	data := storage.NewAdapter(kv, cfg.StorageDriver)

	sessionKV, closeSession, err := backends.OpenSession(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.SessionDriver).Msg("session store open failed")
	}
	defer closeSession()
	session := storage.NewAdapter(storage.NewSessionStore(sessionKV), "session-"+cfg.SessionDriver)

	clk := clock.NewSystem()

	// repositories
	var (
		hotels       domain.HotelRepository
		reservations domain.ReservationRepository
	)
	switch cfg.RepositoryMode {
	case "remote":
		c := remote.New(cfg.BaseURL, cfg.RemoteRPS, cfg.RemoteMaxInFlight)
		hotels, reservations = remote.NewHotelRepo(c), remote.NewReservationRepo(c)
	case "local":
		hotels, reservations = local.NewHotelRepo(data, clk), local.NewReservationRepo(data, clk)
	default:
		log.Fatal().Str("mode", cfg.RepositoryMode).Msg("unknown REPOSITORY_MODE")
	}
	log.Info().Str("storage", cfg.StorageDriver).Str("session", cfg.SessionDriver).Str("repositories", cfg.RepositoryMode).Msg("backends ready")

	// services
	n := notify.New(clk)
	defer n.Close()
	store := app.NewStore(data, n,
		app.WithClock(clk),
		app.WithDelay(cfg.APIDelay),
		app.WithShape(domain.HotelShape(cfg.HotelShape)),
	)
	defer store.Close()
	if err := store.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("admin store load failed")
	}
	authSvc := auth.New(session, cfg.AdminPassword)

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Hotels:       hotels,
		Reservations: reservations,
		Guest:        app.NewGuestService(hotels, reservations, session, clk),
		Store:        store,
		Auth:         authSvc,
		Notify:       n,
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}
