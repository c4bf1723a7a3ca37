package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"abbafoods/internal/config"
	"abbafoods/internal/infra"
	"abbafoods/internal/metrics"
	"abbafoods/internal/repository"
	"abbafoods/internal/repository/memoria"
	"abbafoods/internal/router"
	"abbafoods/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger. dev: pretty, prod: JSON
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	var (
		db    *gorm.DB
		repos repository.Set
	)
	if cfg.ModoDemo() {
		log.Warn().Msg("DATABASE_URL vacío: modo demo, los datos no se guardan")
		repos = memoria.NewSet(memoria.NewDemoStore(time.Now()))
	} else {
		db, err = infra.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		repos = repository.NewSet(db)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
	} else {
		log.Warn().Msg("REDIS_URL vacío: sin cache, cola de trabajos ni alertas diarias")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mreg := metrics.NewRegistry()
	dispatcher := worker.NewDispatcher(rdb)

	// Background jobs need Redis; without it PDFs are rendered on request.
	var alertas *worker.AlertasCron
	if rdb != nil {
		mailer := infra.NewMailer(cfg)
		smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig("smtp"))

		pool := worker.NewPool(rdb, cfg.WorkerPoolSize, mreg)
		pool.Register(worker.QueuePDF, worker.JobPDFPedido, worker.NewPdfWorker(repos.Pedidos, repos.Recetas, cfg.PDFStoragePath))
		pool.Register(worker.QueueEmail, worker.JobEmail, worker.NewEmailWorker(mailer, smtpCB))
		pool.Start(ctx)

		alertas = worker.NewAlertasCron(worker.AlertasCronConfig{
			Spec:       cfg.AlertCron,
			Materias:   repos.Materias,
			Dispatcher: dispatcher,
			To:         destinatarios(cfg.AlertEmailTo),
			Metrics:    mreg,
		})
		if err := alertas.Start(); err != nil {
			log.Fatal().Err(err).Msg("invalid ALERT_CRON")
		}
	}

	r := router.New(cfg, router.Deps{
		DB:         db,
		Redis:      rdb,
		Repos:      repos,
		Metrics:    mreg,
		Dispatcher: dispatcher,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("ABBA Foods backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	if alertas != nil {
		alertas.Stop()
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	cancel()
	log.Info().Msg("server exited")
}

// destinatarios splits ALERT_EMAIL_TO on commas.
func destinatarios(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
