// Package telemetry records latency and outcome of orchestration attempts.
// It is a passive observer: recording sits outside the decision path and
// never blocks on I/O.
package telemetry

import (
	"sync"
	"time"
)

// OpExtraction is the operation name recorded per extraction attempt.
const OpExtraction = "document_extraction"

// Sample is one recorded attempt.
type Sample struct {
	Operation string
	Duration  time.Duration
	Success   bool
	At        time.Time
}

// Recorder keeps a bounded ring of the most recent samples.
type Recorder struct {
	mu      sync.Mutex
	samples []Sample
	max     int
}

// NewRecorder creates a Recorder bounded to max samples (oldest evicted).
func NewRecorder(max int) *Recorder {
	if max <= 0 {
		max = 1000
	}
	return &Recorder{max: max}
}

// Record appends a sample, evicting the oldest when full.
func (r *Recorder) Record(operation string, duration time.Duration, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, Sample{
		Operation: operation,
		Duration:  duration,
		Success:   success,
		At:        time.Now(),
	})
	if len(r.samples) > r.max {
		r.samples = r.samples[len(r.samples)-r.max:]
	}
}

// Total returns the number of retained samples for an operation.
func (r *Recorder) Total(operation string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.samples {
		if s.Operation == operation {
			n++
		}
	}
	return n
}

// AverageDuration returns the mean duration for an operation, zero when no
// samples exist.
func (r *Recorder) AverageDuration(operation string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum time.Duration
	n := 0
	for _, s := range r.samples {
		if s.Operation == operation {
			sum += s.Duration
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / time.Duration(n)
}

// SuccessRate returns the percentage of successful samples for an operation,
// zero when no samples exist.
func (r *Recorder) SuccessRate(operation string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	total, ok := 0, 0
	for _, s := range r.samples {
		if s.Operation == operation {
			total++
			if s.Success {
				ok++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(ok) / float64(total) * 100
}
