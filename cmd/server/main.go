package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/openclass/classroom/internal/adapters/http"
	"github.com/openclass/classroom/internal/app"
	"github.com/openclass/classroom/internal/config"
	"github.com/openclass/classroom/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Mode == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if cfg.Secret == "" {
		log.Fatal().Msg("secret must be configured")
	}

	connectCtx, connectCancel := context.WithTimeout(ctx, 10*time.Second)
	client, err := store.Connect(connectCtx, cfg.MongoURI)
	connectCancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	db := client.Database(cfg.MongoDB)

	users := store.NewUserStore(db)
	courses := store.NewCourseStore(db)
	quizzes := store.NewQuizStore(db)
	classes := store.NewLiveClassStore(db)

	// The coordinator resolves rooms from live classes and display
	// names from users, the latter behind a short-lived cache.
	coordinator := app.NewCoordinator(classes, store.NewCachedUserSource(users, cfg.NameCacheTTL))

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create upload dir")
	}

	r := router.SetupRouter(ctx, cfg, router.Deps{
		Users:       users,
		Courses:     courses,
		Quizzes:     quizzes,
		LiveClasses: classes,
		Coordinator: coordinator,
	})
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("classroom server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("MongoDB disconnect")
	}
	log.Info().Msg("Server exited gracefully")
}
