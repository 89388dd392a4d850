package backend

import (
	"context"
	"time"

	"opslink/internal/domain"
)

// Caller performs the raw provider call. Implementations may fail with an
// error; the Adapter absorbs it into the BackendResult.
type Caller interface {
	Model() string
	Call(ctx context.Context, doc domain.Document) (domain.Fields, float64, error)
}

// Adapter wraps a raw provider call into the uniform port.Backend contract:
// elapsed time is measured around the call, confidence is clamped to [0,1],
// and failures come back as a result instead of an error.
type Adapter struct {
	name   string
	caller Caller
}

// NewAdapter creates an Adapter for a named backend.
func NewAdapter(name string, caller Caller) *Adapter {
	return &Adapter{name: name, caller: caller}
}

// Name returns the backend identifier.
func (a *Adapter) Name() string {
	return a.name
}

// Extract invokes the provider and normalizes the outcome.
func (a *Adapter) Extract(ctx context.Context, doc domain.Document) domain.BackendResult {
	start := time.Now()
	fields, confidence, err := a.caller.Call(ctx, doc)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		return domain.BackendResult{
			Backend:    a.name,
			Model:      a.caller.Model(),
			Success:    false,
			Confidence: 0,
			ElapsedMS:  elapsed,
			Error:      err.Error(),
		}
	}

	return domain.BackendResult{
		Backend:    a.name,
		Model:      a.caller.Model(),
		Success:    true,
		Fields:     fields,
		Confidence: ClampConfidence(confidence),
		ElapsedMS:  elapsed,
	}
}

// ClampConfidence forces a self-reported confidence into [0,1].
func ClampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
