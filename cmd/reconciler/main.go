package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"obligation-engine/internal/amount"
	"obligation-engine/internal/config"
	"obligation-engine/internal/gateway"
	"obligation-engine/internal/rate"
	"obligation-engine/internal/usecase"
	"obligation-engine/pkg/logging"
	"obligation-engine/pkg/metrics"
)

func main() {
	// Define command-line flags
	importFilesStr := flag.String("import", "", "Comma-separated list of gateway settlement export CSV files to ingest before the sweep (optional)")
	concurrency := flag.Int("concurrency", 0, "Number of obligations reconciled in parallel (default from SWEEP_CONCURRENCY)")
	asOfStr := flag.String("as-of", "", "Reconciliation instant (RFC 3339, default now)")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if *concurrency > 0 {
		cfg.SweepConcurrency = *concurrency
	}

	asOf := time.Now().UTC()
	if *asOfStr != "" {
		asOf, err = time.Parse(time.RFC3339, *asOfStr)
		if err != nil {
			log.Fatalf("Error parsing as-of instant: %v", err)
		}
	}

	logger, err := logging.NewFromEnv()
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	// --- Dependency Injection (Wiring the application) ---

	// 1. Create the repository (the outermost layer)
	pgRepo, err := gateway.NewPostgresRepository(cfg.Postgres)
	if err != nil {
		log.Fatalf("Error connecting to store: %v", err)
	}
	defer pgRepo.Close()
	repo := gateway.NewResilientRepository(pgRepo, gateway.DefaultBreakerConfig(), logger)

	// 2. Create the calculators and the reconciler (the core logic layer)
	recorder := metrics.NewRecorder(cfg.MetricsNamespace)
	if err := recorder.Register(prometheus.DefaultRegisterer); err != nil {
		log.Fatalf("Error registering metrics: %v", err)
	}
	amounts := amount.NewCalculator(rate.NewResolver(cfg.RatePolicy))
	reconciler := usecase.NewReconciler(repo, amounts, gateway.NewLogNotifier(logger), logger, recorder)

	ctx := context.Background()

	// --- Optional manual import ---
	if *importFilesStr != "" {
		reader := gateway.NewCSVSettlementReader()
		records, err := reader.ReadSettlements(ctx, strings.Split(*importFilesStr, ","))
		if err != nil {
			log.Fatalf("Settlement import failed: %v", err)
		}
		for _, rec := range records {
			if err := repo.RecordTransaction(ctx, rec); err != nil {
				log.Fatalf("Settlement import failed for %s: %v", rec.ID, err)
			}
		}
	}

	// --- Execute the sweep ---
	report, err := reconciler.Sweep(ctx, asOf, cfg.SweepConcurrency)
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}

	// --- Present the Output ---
	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling report to JSON: %v", err)
	}
	fmt.Println(string(output))

	if len(report.Errors) > 0 {
		os.Exit(1)
	}
}
