package main

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"opslink/internal/backend"
	"opslink/internal/backend/claude"
	"opslink/internal/backend/openai"
	"opslink/internal/config"
	"opslink/internal/consensus"
	"opslink/internal/domain"
	"opslink/internal/handler"
	"opslink/internal/port"
	"opslink/internal/quota"
	"opslink/internal/repository/memory"
	"opslink/internal/repository/postgres"
	"opslink/internal/router"
	"opslink/internal/service"
	"opslink/internal/telemetry"
	"opslink/internal/tier"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Stores: postgres when configured, otherwise in-memory.
	var (
		db       *sqlx.DB
		usage    port.UsageStore
		errStore port.ErrorLogStore
	)
	if cfg.Usage.Store == "postgres" {
		db, err = postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() { _ = db.Close() }()
		usage = postgres.NewUsageRepo(db)
		errStore = postgres.NewErrorLogRepo(db)
	} else {
		usage = memory.NewUsageStore()
		errStore = memory.NewErrorLogStore(cfg.Telemetry.MaxSamples)
	}

	// Extraction backends
	backend.RegisterProvider(openai.BackendName, openai.NewBackend)
	backend.RegisterProvider(claude.BackendName, claude.NewBackend)

	primary, err := backend.New(&cfg.Backends.Primary)
	if err != nil {
		return fmt.Errorf("failed to initialize primary backend: %w", err)
	}
	secondary, err := backend.New(&cfg.Backends.Secondary)
	if err != nil {
		return fmt.Errorf("failed to initialize secondary backend: %w", err)
	}

	executor, err := tier.NewExecutor([]port.Backend{primary, secondary}, tier.NewPolicy(cfg.Routing.Policy))
	if err != nil {
		return fmt.Errorf("failed to initialize executor: %w", err)
	}

	// Core components
	guard := quota.NewGuard(usage, cfg.Usage.PeriodDays, domain.PlanName(cfg.Usage.DefaultPlan))
	engine := consensus.NewEngine(cfg.Consensus.AgreementBonus)
	recorder := telemetry.NewRecorder(cfg.Telemetry.MaxSamples)
	errLog := telemetry.NewErrorLogger(errStore)

	// Services
	extractionSvc := service.NewExtractionService(guard, executor, engine, recorder, errLog, cfg.Limits.MaxFileSizeBytes())
	statsSvc := service.NewStatsService(guard, recorder, cfg.Usage.PeriodDays)

	// Handlers
	extractH := handler.NewExtractHandler(extractionSvc)
	usageH := handler.NewUsageHandler(guard, statsSvc)
	planH := handler.NewPlanHandler()
	healthH := handler.NewHealthHandler(db, recorder, executor.Backends(), cfg.Limits.MaxFileSizeMB)
	errorsH := handler.NewErrorLogHandler(errLog)

	r := router.Setup(cfg, extractH, usageH, planH, healthH, errorsH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
