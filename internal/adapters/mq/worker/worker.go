// Package worker defines worker contracts for asynchronous gap analysis.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/successionai/talentd/internal/adapters/mq/queue"
	"github.com/successionai/talentd/internal/adapters/repository"
	"github.com/successionai/talentd/internal/domain/gap"
	"github.com/successionai/talentd/internal/domain/model"
	"github.com/successionai/talentd/internal/domain/readiness"
	"github.com/successionai/talentd/pkg/logger"
	"github.com/successionai/talentd/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 4 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Job abstracts what workers read off the queue.
// Using the queue.Job type for consistency.
type Job = queue.Job

// Repository is the slice of the store workers need to process a job.
type Repository interface {
	GetEmployee(ctx context.Context, id string) (model.Employee, error)
	GetRole(ctx context.Context, name string) (model.RoleRequirement, error)
	PutEmployee(ctx context.Context, emp model.Employee) error
	PutAnalysis(ctx context.Context, rec repository.AnalysisRecord) error
}

// GapScorer computes a gap analysis for an employee against a role.
type GapScorer interface {
	Score(ctx context.Context, emp model.Employee, role model.RoleRequirement) gap.Result
}

// ReadinessClassifier predicts a readiness label from a feature vector.
type ReadinessClassifier interface {
	Predict(features readiness.FeatureVector) (readiness.Prediction, error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes analysis jobs and persists their results.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining jobs before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing analysis jobs.
type InMemoryWorker struct {
	queue      Queue
	repo       Repository
	scorer     GapScorer
	classifier ReadinessClassifier
	name       string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, repo Repository, scorer GapScorer, classifier ReadinessClassifier, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:      queue,
		repo:       repo,
		scorer:     scorer,
		classifier: classifier,
		name:       "worker", // default name
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logger.Get().Named("worker"), // will be updated by options
	}

	// Apply all options
	for _, opt := range opts {
		opt(w)
	}

	// Set up logger with worker name if not already set
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	jobChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			// Process the job
			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "error processing analysis request", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	// Signal shutdown
	close(w.shutdown)

	// Wait for worker to finish or context to timeout
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob handles a single analysis request: it loads the employee
// and the target role, runs the gap scorer, predicts readiness, and
// persists the resulting analysis record.
func (w *InMemoryWorker) processJob(ctx context.Context, job Job) error {
	// Track overall processing latency
	start := time.Now()
	defer func() {
		latency := time.Since(start).Milliseconds()
		metrics.RecordWorkerProcessingLatency(float64(latency))
	}()

	emp, err := w.repo.GetEmployee(ctx, job.EmployeeID)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "employee_lookup")
		metrics.RecordErrorByType("employee_lookup", "high")
		w.logger.Error(ctx, "employee lookup failed for request",
			logger.String("requestID", job.RequestID),
			logger.String("employeeID", job.EmployeeID),
			logger.Error(err),
		)
		return fmt.Errorf("employee lookup failed for request %s: %w", job.RequestID, err)
	}

	targetRole := job.TargetRole
	if targetRole == "" {
		targetRole = model.SuggestTargetRole(emp)
	}

	role, err := w.repo.GetRole(ctx, targetRole)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "role_lookup")
		metrics.RecordErrorByType("role_lookup", "high")
		w.logger.Error(ctx, "role lookup failed for request",
			logger.String("requestID", job.RequestID),
			logger.String("targetRole", targetRole),
			logger.Error(err),
		)
		return fmt.Errorf("role lookup failed for request %s: %w", job.RequestID, err)
	}

	// Track gap-scoring latency
	scoreStart := time.Now()
	result := w.scorer.Score(ctx, emp, role)
	scoreLatency := time.Since(scoreStart).Milliseconds()
	metrics.RecordGapScoringLatency(float64(scoreLatency))

	// Readiness prediction is best effort: the analysis record is still
	// persisted with the gap result when the model is unavailable.
	readinessLabel := ""
	if w.classifier != nil {
		pred, predErr := w.classifier.Predict(readiness.FeaturesFrom(emp, result))
		if predErr != nil {
			w.logger.Warn(ctx, "readiness prediction unavailable for request",
				logger.String("requestID", job.RequestID),
				logger.Error(predErr),
			)
		} else {
			readinessLabel = pred.Label
		}
	}

	rec := repository.AnalysisRecord{
		EmployeeID:  emp.ID,
		TargetRole:  role.Role,
		GeneratedAt: time.Now().UTC(),
		Gap:         result,
		Readiness:   readinessLabel,
	}
	if err := w.repo.PutAnalysis(ctx, rec); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "persist_analysis")
		metrics.RecordErrorByType("persist_analysis", "high")
		w.logger.Error(ctx, "persisting analysis failed for request",
			logger.String("requestID", job.RequestID),
			logger.Error(err),
		)
		return fmt.Errorf("persisting analysis failed for request %s: %w", job.RequestID, err)
	}

	// Write the readiness outcome back as a new employee record.
	if readinessLabel != "" && readinessLabel != emp.Readiness {
		updated := emp
		updated.Readiness = readinessLabel
		if err := w.repo.PutEmployee(ctx, updated); err != nil {
			w.logger.Warn(ctx, "readiness write-back failed",
				logger.String("employeeID", emp.ID),
				logger.Error(err),
			)
		}
	}

	metrics.RecordAnalysisProcessed()
	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers    []*InMemoryWorker
	queue      Queue
	repo       Repository
	scorer     GapScorer
	classifier ReadinessClassifier

	// Shutdown control
	shutdown chan struct{}
	stopOnce sync.Once

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, repo Repository, scorer GapScorer, classifier ReadinessClassifier) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:    make([]*InMemoryWorker, workerCount),
		queue:      queue,
		repo:       repo,
		scorer:     scorer,
		classifier: classifier,
		shutdown:   make(chan struct{}),
		logger:     logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			repo,
			scorer,
			classifier,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	// Initialize worker metrics
	metrics.UpdateWorkerCount(workerCount)
	metrics.UpdateWorkerActiveCount(workerCount)
	metrics.UpdateWorkerIdleCount(0)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	// Signal shutdown to all workers
	p.stopOnce.Do(func() {
		close(p.shutdown)
		for _, worker := range p.workers {
			close(worker.shutdown)
		}
	})

	// Wait for all workers to finish
	for _, worker := range p.workers {
		select {
		case <-worker.done:
			// Worker finished
		case <-time.After(workerShutdownTimeout):
			// Worker timeout
		}
	}

	metrics.UpdateWorkerActiveCount(0)
	metrics.UpdateWorkerIdleCount(len(p.workers))
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// First close the queue to stop new jobs
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	// Signal shutdown to all workers
	p.stopOnce.Do(func() {
		close(p.shutdown)
		for _, worker := range p.workers {
			close(worker.shutdown)
		}
	})

	// Wait for all workers to finish or context to timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	metrics.UpdateWorkerActiveCount(0)
	metrics.UpdateWorkerIdleCount(len(p.workers))

	return nil
}
