package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	zlog "github.com/rs/zerolog/log"

	"github.com/Azeezfasasi/lasu-mba-cloth/config"
	"github.com/Azeezfasasi/lasu-mba-cloth/logger"
	"github.com/Azeezfasasi/lasu-mba-cloth/metrics"
	"github.com/Azeezfasasi/lasu-mba-cloth/services"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Options{
		ServiceName: "lasumba-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, log); err != nil {
		log.Error(context.Background(), "server exited", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info(ctx, "Starting LASUMBA API server...")

	db, err := config.ConnectDatabase(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}
	log.Info(ctx, "Database migration completed successfully")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	media, err := services.NewS3Service(ctx, cfg.Media)
	if err != nil {
		return fmt.Errorf("initializing media host: %w", err)
	}

	mail, err := services.NewSMTPMailService(cfg.Mail, log, m)
	if err != nil {
		return err
	}
	if !cfg.Mail.Configured() {
		log.Warn(ctx, "MAIL_SENDER_EMAIL or MAIL_APP_PASSWORD not set, notification emails will not be sent")
	}

	var identity services.IdentityProvider
	if cfg.Auth.Enabled() {
		identity = services.NewAuth0Service(cfg.Auth)
	}

	a, err := newApp(appDeps{
		cfg:      cfg,
		log:      log,
		db:       db,
		media:    media,
		mail:     mail,
		identity: identity,
		metrics:  m,
		gatherer: registry,
	})
	if err != nil {
		return err
	}
	a.notifier.Start()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.From(ctx).Info().Str("port", cfg.App.Port).Msg("Server is listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info(context.Background(), "Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "HTTP server did not shut down cleanly", err)
	}
	if err := a.notifier.Stop(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "notification queue did not drain", err)
	}
	return nil
}
