package domain

import "time"

// Document is the transient payload of one extraction attempt. It is never
// persisted; ownership ends when the orchestration call returns.
type Document struct {
	FileName    string
	ContentType string
	Size        int64
	Bytes       []byte
}

// Fields is the schemaless extraction payload. The set of extractable fields
// is open-ended across document types, so values stay untyped.
type Fields map[string]interface{}

// BackendResult is the normalized outcome of a single backend invocation.
// Failures are absorbed into the result rather than returned as errors.
type BackendResult struct {
	Backend    string  `json:"backend"`
	Model      string  `json:"model"`
	Success    bool    `json:"success"`
	Fields     Fields  `json:"fields,omitempty"`
	Confidence float64 `json:"confidence"`
	ElapsedMS  int64   `json:"elapsedMs"`
	Error      string  `json:"error,omitempty"`
}

// ConsensusOutcome is the reconciled result over one or more backend results.
// It is computed fresh per attempt and never mutated afterwards.
type ConsensusOutcome struct {
	Success        bool           `json:"success"`
	AgreementScore float64        `json:"agreementScore"`
	Tier           ConfidenceTier `json:"tier"`
	Fields         Fields         `json:"fields,omitempty"`
	RequiresReview bool           `json:"requiresReview"`
	Error          string         `json:"error,omitempty"`
	// ChosenBackend names the backend whose payload was selected, empty for
	// composite payloads.
	ChosenBackend string `json:"chosenBackend,omitempty"`
}

// UsageRecord is the per-user monthly counter backing quota admission.
type UsageRecord struct {
	UserID       string    `json:"userId" db:"user_id"`
	Plan         PlanName  `json:"plan" db:"plan"`
	MonthlyLimit int       `json:"monthlyLimit" db:"monthly_limit"`
	CurrentCount int       `json:"currentUsage" db:"current_count"`
	ResetAt      time.Time `json:"resetDate" db:"reset_at"`
	LastUsedAt   time.Time `json:"lastProcessedAt" db:"last_used_at"`
}

// Remaining returns the attempts left in the current period, never negative.
func (u *UsageRecord) Remaining() int {
	if r := u.MonthlyLimit - u.CurrentCount; r > 0 {
		return r
	}
	return 0
}

// AdmissionDecision is the quota guard's answer to "may this user run
// another extraction". Checking does not consume quota.
type AdmissionDecision struct {
	Allowed   bool
	Reason    string
	Remaining int
	ResetAt   time.Time
}

// FileInfo describes the uploaded document in the response.
type FileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// ProcessingInfo summarizes how the extraction was performed.
type ProcessingInfo struct {
	Model          string  `json:"model"`
	Tier           string  `json:"tier"`
	Confidence     float64 `json:"confidence"`
	ProcessingTime int64   `json:"processingTime"`
	Accuracy       int     `json:"accuracy"`
	Error          string  `json:"error,omitempty"`
}

// ResponseMetadata carries version and review metadata.
type ResponseMetadata struct {
	Model          string `json:"model"`
	Tier           string `json:"tier"`
	Version        string `json:"version"`
	RequiresReview bool   `json:"requiresReview"`
}

// UsageInfo reports quota standing after a successful attempt.
type UsageInfo struct {
	RemainingUsage int       `json:"remainingUsage"`
	ResetDate      time.Time `json:"resetDate"`
}

// ExtractionResponse is the public success payload of one orchestration.
type ExtractionResponse struct {
	Success    bool             `json:"success"`
	File       FileInfo         `json:"file"`
	Processing ProcessingInfo   `json:"processing"`
	Data       Fields           `json:"data"`
	Backends   []BackendResult  `json:"backends"`
	Metadata   ResponseMetadata `json:"metadata"`
	Usage      UsageInfo        `json:"usage"`
}

// ErrorLogEntry is one recorded failure, queryable for support correlation.
type ErrorLogEntry struct {
	ID        string    `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	Message   string    `json:"message" db:"message"`
	Severity  string    `json:"severity" db:"severity"`
	Endpoint  string    `json:"endpoint,omitempty" db:"endpoint"`
	UserID    string    `json:"userId,omitempty" db:"user_id"`
	RequestID string    `json:"requestId,omitempty" db:"request_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ProcessingStats are the aggregate numbers behind the health and dashboard
// surfaces.
type ProcessingStats struct {
	TotalProcessed  int     `json:"totalProcessed"`
	ThisMonth       int     `json:"thisMonth"`
	AveragePerDay   float64 `json:"averagePerDay"`
	SuccessRate     float64 `json:"successRate"`
	AvgProcessingMS float64 `json:"averageProcessingTime"`
}
