package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrMissingDocument     = errors.New("no document provided")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUnknownPlan         = errors.New("unrecognized plan")
	ErrQuotaExceeded       = errors.New("monthly document quota exceeded")
	ErrPeriodExpired       = errors.New("billing period expired")
	ErrExtractionFailed    = errors.New("extraction produced no usable result")
)

// QuotaError carries the remaining/reset metadata alongside a quota denial so
// callers can explain the denial and when it lifts.
type QuotaError struct {
	Err       error
	Reason    string
	Remaining int
	ResetAt   time.Time
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%s (resets %s)", e.Reason, e.ResetAt.Format(time.RFC3339))
}

func (e *QuotaError) Unwrap() error {
	return e.Err
}
