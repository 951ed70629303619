package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"obligation-engine/internal/amount"
	"obligation-engine/internal/config"
	"obligation-engine/internal/gateway"
	"obligation-engine/internal/rate"
	"obligation-engine/internal/usecase"
	"obligation-engine/internal/webhook"
	"obligation-engine/pkg/logging"
	"obligation-engine/pkg/metrics"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger, err := logging.NewFromEnv()
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	pgRepo, err := gateway.NewPostgresRepository(cfg.Postgres)
	if err != nil {
		log.Fatalf("Error connecting to store: %v", err)
	}
	defer pgRepo.Close()
	repo := gateway.NewResilientRepository(pgRepo, gateway.DefaultBreakerConfig(), logger)

	recorder := metrics.NewRecorder(cfg.MetricsNamespace)
	if err := recorder.Register(prometheus.DefaultRegisterer); err != nil {
		log.Fatalf("Error registering metrics: %v", err)
	}

	amounts := amount.NewCalculator(rate.NewResolver(cfg.RatePolicy))
	reconciler := usecase.NewReconciler(repo, amounts, gateway.NewLogNotifier(logger), logger, recorder)
	receiver := webhook.NewServer(repo, reconciler, logger)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", receiver)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("confirmation receiver listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
