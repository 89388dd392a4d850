package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"opslink/internal/consensus"
	"opslink/internal/domain"
	"opslink/internal/quota"
	"opslink/internal/telemetry"
	"opslink/internal/tier"
)

// Version reported in response metadata and the health surface.
const Version = "2.0.0"

// ProcessInput carries one extraction request through the orchestrator.
type ProcessInput struct {
	UserID    string
	PlanName  domain.PlanName
	Document  domain.Document
	Endpoint  string
	RequestID string
}

// ExtractionService is the orchestration façade: it validates the document,
// consults the quota guard, executes the plan's strategy, reconciles backend
// results, records usage, and assembles the response.
type ExtractionService interface {
	Process(ctx context.Context, input ProcessInput) (*domain.ExtractionResponse, error)
}

type extractionService struct {
	guard       *quota.Guard
	executor    *tier.Executor
	engine      *consensus.Engine
	recorder    *telemetry.Recorder
	errLog      *telemetry.ErrorLogger
	maxFileSize int64
}

// NewExtractionService creates the orchestrator.
func NewExtractionService(
	guard *quota.Guard,
	executor *tier.Executor,
	engine *consensus.Engine,
	recorder *telemetry.Recorder,
	errLog *telemetry.ErrorLogger,
	maxFileSize int64,
) ExtractionService {
	return &extractionService{
		guard:       guard,
		executor:    executor,
		engine:      engine,
		recorder:    recorder,
		errLog:      errLog,
		maxFileSize: maxFileSize,
	}
}

// Process runs one attempt through the pipeline:
// received -> validated -> quota-checked -> routed -> invoked -> reconciled
// -> usage-recorded -> responded. Validation and quota failures short-circuit
// before any backend is invoked; a wholly failed extraction consumes no
// quota.
func (s *extractionService) Process(ctx context.Context, input ProcessInput) (*domain.ExtractionResponse, error) {
	start := time.Now()
	succeeded := false
	defer func() {
		s.recorder.Record(telemetry.OpExtraction, time.Since(start), succeeded)
	}()

	// validated: both checks are terminal and happen before any quota
	// consumption.
	plan, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	// quota-checked
	decision, err := s.guard.CheckAndReserve(ctx, input.UserID)
	if err != nil {
		s.logFailure(ctx, input, "INTERNAL_SERVER_ERROR", err.Error(), telemetry.SeverityHigh)
		return nil, fmt.Errorf("quota check: %w", err)
	}
	if !decision.Allowed {
		return nil, &domain.QuotaError{
			Err:       quotaSentinel(decision.Reason),
			Reason:    decision.Reason,
			Remaining: decision.Remaining,
			ResetAt:   decision.ResetAt,
		}
	}

	// routed + invoked
	strategy, err := tier.StrategyFor(plan.Name)
	if err != nil {
		return nil, err
	}
	results, err := s.executor.Execute(ctx, strategy, input.Document)
	if err != nil {
		s.logFailure(ctx, input, "INTERNAL_SERVER_ERROR", err.Error(), telemetry.SeverityHigh)
		return nil, fmt.Errorf("executing strategy %s: %w", strategy, err)
	}

	// reconciled
	outcome := s.engine.Reconcile(results)
	if !outcome.Success {
		s.logFailure(ctx, input, "FILE_PROCESSING_FAILED", outcome.Error, telemetry.SeverityMedium)
		return nil, fmt.Errorf("%w: %s", domain.ErrExtractionFailed, outcome.Error)
	}

	// usage-recorded: only now, so failed attempts never consume quota, and
	// the debit is visible before the client sees the success response.
	rec, err := s.guard.RecordUsage(ctx, input.UserID)
	if err != nil {
		s.logFailure(ctx, input, "DATABASE_ERROR", err.Error(), telemetry.SeverityCritical)
		return nil, fmt.Errorf("recording usage: %w", err)
	}

	succeeded = true
	log.Printf("[%s] extraction completed for %s: plan=%s strategy=%s score=%.2f tier=%s",
		input.RequestID, input.UserID, plan.Name, strategy, outcome.AgreementScore, outcome.Tier)

	model := modelLabel(strategy, results, outcome)
	return &domain.ExtractionResponse{
		Success: true,
		File: domain.FileInfo{
			Name: input.Document.FileName,
			Size: input.Document.Size,
			Type: input.Document.ContentType,
		},
		Processing: domain.ProcessingInfo{
			Model:          model,
			Tier:           string(plan.Name),
			Confidence:     outcome.AgreementScore,
			ProcessingTime: time.Since(start).Milliseconds(),
			Accuracy:       plan.AccuracyGuarantee,
		},
		Data:     outcome.Fields,
		Backends: results,
		Metadata: domain.ResponseMetadata{
			Model:          model,
			Tier:           string(outcome.Tier),
			Version:        Version,
			RequiresReview: outcome.RequiresReview,
		},
		Usage: domain.UsageInfo{
			RemainingUsage: rec.Remaining(),
			ResetDate:      rec.ResetAt,
		},
	}, nil
}

func (s *extractionService) validate(input ProcessInput) (domain.Plan, error) {
	doc := input.Document
	if len(doc.Bytes) == 0 {
		return domain.Plan{}, domain.ErrMissingDocument
	}
	if _, ok := domain.AllowedContentTypes[doc.ContentType]; !ok {
		return domain.Plan{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, doc.ContentType)
	}
	if doc.Size > s.maxFileSize {
		return domain.Plan{}, domain.ErrFileTooLarge
	}
	plan, ok := domain.PlanByName(input.PlanName)
	if !ok {
		return domain.Plan{}, fmt.Errorf("%w: %s", domain.ErrUnknownPlan, input.PlanName)
	}
	return plan, nil
}

func (s *extractionService) logFailure(ctx context.Context, input ProcessInput, code, message, severity string) {
	s.errLog.Log(ctx, code, message, severity, input.Endpoint, input.UserID, input.RequestID)
}

func quotaSentinel(reason string) error {
	if reason == quota.ReasonPeriodExpired {
		return domain.ErrPeriodExpired
	}
	return domain.ErrQuotaExceeded
}

// modelLabel names what produced the final payload: a single backend's model,
// or an ensemble label when several were consulted.
func modelLabel(strategy domain.ExecutionStrategy, results []domain.BackendResult, outcome domain.ConsensusOutcome) string {
	if strategy == domain.StrategyEnsemble && len(results) > 1 {
		models := make([]string, 0, len(results))
		for _, r := range results {
			models = append(models, r.Model)
		}
		return "Ensemble (" + strings.Join(models, " + ") + ")"
	}
	if outcome.ChosenBackend != "" {
		for _, r := range results {
			if r.Backend == outcome.ChosenBackend {
				return r.Model
			}
		}
	}
	if len(results) > 0 {
		return results[0].Model
	}
	return ""
}
