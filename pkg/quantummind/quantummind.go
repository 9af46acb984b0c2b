// Package quantummind provides the QuantumMind runner.
package quantummind

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrCheckPanicked is wrapped by a CheckError when a check panics.
var ErrCheckPanicked = errors.New("check panicked")

// CheckFunc is a precondition evaluated on every run
type CheckFunc func(ctx context.Context) error

type check struct {
	name string
	fn   CheckFunc
}

// CheckError reports which check stopped a run
type CheckError struct {
	Name string
	Err  error
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("check %q failed: %v", e.Name, e.Err)
}

func (e *CheckError) Unwrap() error {
	return e.Err
}

// CheckResult is the outcome of a single check within a run
type CheckResult struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// Report describes a completed run
type Report struct {
	RunID      string        `json:"run_id"`
	InstanceID string        `json:"instance_id"`
	Sequence   int           `json:"sequence"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Checks     []CheckResult `json:"checks,omitempty"`
	OK         bool          `json:"ok"`
}

// Duration returns how long the run took
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Option configures a QuantumMind
type Option func(*QuantumMind)

// WithLogger sets the logger used for run events
func WithLogger(logger *zap.Logger) Option {
	return func(q *QuantumMind) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// WithCheck registers a named check. Checks run in registration order.
func WithCheck(name string, fn CheckFunc) Option {
	return func(q *QuantumMind) {
		if fn != nil {
			q.checks = append(q.checks, check{name: name, fn: fn})
		}
	}
}

// WithClock overrides the time source used in reports
func WithClock(now func() time.Time) Option {
	return func(q *QuantumMind) {
		if now != nil {
			q.now = now
		}
	}
}

// QuantumMind runs its registered checks and reports whether they all passed.
// A zero-option instance has no checks, so Run always succeeds.
type QuantumMind struct {
	id     string
	logger *zap.Logger
	checks []check
	now    func() time.Time

	mu   sync.Mutex
	runs int
}

// New creates a QuantumMind. It never fails.
func New(opts ...Option) *QuantumMind {
	q := &QuantumMind{
		id:     uuid.NewString(),
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.logger = q.logger.With(zap.String("instance_id", q.id))
	return q
}

// ID returns the instance identifier
func (q *QuantumMind) ID() string {
	return q.id
}

// Runs returns the number of runs started so far
func (q *QuantumMind) Runs() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.runs
}

// Run executes a run in the background context and reports success
func (q *QuantumMind) Run() bool {
	report, err := q.RunContext(context.Background())
	return err == nil && report.OK
}

// RunContext executes every registered check in order, stopping at the first
// failure. The returned report is never nil.
func (q *QuantumMind) RunContext(ctx context.Context) (*Report, error) {
	q.mu.Lock()
	q.runs++
	seq := q.runs
	q.mu.Unlock()

	report := &Report{
		RunID:      uuid.NewString(),
		InstanceID: q.id,
		Sequence:   seq,
		StartedAt:  q.now(),
	}
	log := q.logger.With(zap.String("run_id", report.RunID), zap.Int("sequence", seq))
	log.Debug("Run started", zap.Int("checks", len(q.checks)))

	for _, c := range q.checks {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = q.now()
			log.Warn("Run cancelled", zap.Error(err))
			return report, fmt.Errorf("run cancelled: %w", err)
		}

		start := q.now()
		err := runCheck(ctx, c)
		result := CheckResult{Name: c.name, Duration: q.now().Sub(start)}
		if err != nil {
			result.Error = err.Error()
		}
		report.Checks = append(report.Checks, result)

		if err != nil {
			report.FinishedAt = q.now()
			log.Warn("Check failed", zap.String("check", c.name), zap.Error(err))
			return report, &CheckError{Name: c.name, Err: err}
		}
		log.Debug("Check passed", zap.String("check", c.name), zap.Duration("duration", result.Duration))
	}

	if err := ctx.Err(); err != nil {
		report.FinishedAt = q.now()
		log.Warn("Run cancelled", zap.Error(err))
		return report, fmt.Errorf("run cancelled: %w", err)
	}

	report.OK = true
	report.FinishedAt = q.now()
	log.Info("Run complete", zap.Duration("duration", report.Duration()))
	return report, nil
}

func runCheck(ctx context.Context, c check) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCheckPanicked, r)
		}
	}()
	return c.fn(ctx)
}
