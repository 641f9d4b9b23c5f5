package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"clutchly/internal/config"
	"clutchly/internal/constants"
	fxmodules "clutchly/internal/fx"
	"clutchly/internal/middleware"
	"clutchly/internal/scheduler"
	"clutchly/internal/server"

	"github.com/go-redis/redis/v8"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
		// registered after the server so it stops before the database closes
		fx.Invoke(scheduler.Register),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	coachServer *server.CoachServer,
	cfg *config.Config,
	db *sql.DB,
	redisClient *redis.Client,
	logger zerolog.Logger,
) {
	mux := http.NewServeMux()

	path, handler := server.NewCoachServiceHandler(coachServer)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})

	mux.Handle(path, c.Handler(middleware.RequestID(logger)(middleware.Recover(handler))))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:      mux,
		ReadTimeout:  constants.RequestTimeout,
		WriteTimeout: constants.SyncTimeout + constants.RequestTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Str("path", path).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}

			if redisClient != nil {
				if err := redisClient.Close(); err != nil {
					logger.Warn().Err(err).Msg("error closing redis client")
				}
			}
			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}

			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
