package port

import (
	"context"

	"opslink/internal/domain"
)

// Backend abstracts one extraction engine. Extract never propagates a raw
// fault: timeouts, transport errors, and malformed responses come back as a
// BackendResult with Success=false and Confidence=0.
type Backend interface {
	// Name returns the stable backend identifier used in routing and results.
	Name() string
	Extract(ctx context.Context, doc domain.Document) domain.BackendResult
}
