// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	jobqueue "github.com/successionai/talentd/internal/adapters/mq/queue"
	workerpool "github.com/successionai/talentd/internal/adapters/mq/worker"
	repository "github.com/successionai/talentd/internal/adapters/repository"
	"github.com/successionai/talentd/internal/domain/dedupe"
	"github.com/successionai/talentd/internal/domain/gap"
	"github.com/successionai/talentd/internal/domain/grid"
	"github.com/successionai/talentd/internal/domain/mentor"
	"github.com/successionai/talentd/internal/domain/model"
	"github.com/successionai/talentd/internal/domain/plan"
	"github.com/successionai/talentd/internal/domain/readiness"
	"github.com/successionai/talentd/pkg/logger"
	"github.com/successionai/talentd/pkg/metrics"
)

// Recommender is the optional LLM collaborator for skill recommendations
// and learning resources. Any failure falls back deterministically.
type Recommender interface {
	SkillRecommendations(ctx context.Context, emp model.Employee, gapResult gap.Result) ([]plan.SkillRecommendation, error)
	LearningResources(ctx context.Context, skills []string, targetRole string, maxResults int) ([]plan.LearningResource, error)
}

// Default learning-resource result size.
const defaultResourceResults = 5

// Service implements the API dependencies for the succession-planning system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	deduper    dedupe.Deduper
	jobQueue   jobqueue.Queue
	engine     *grid.Engine
	scorer     *gap.Scorer
	classifier *readiness.Classifier
	assembler  *plan.Assembler
	workerPool *workerpool.Pool

	// Configuration
	workerCount      int
	queueSize        int
	dedupeSize       int
	shardCount       int
	maxMentorResults int
	thresholds       grid.Thresholds
	synonyms         map[string][]string
	defaultScores    map[string]float64
	modelPath        string
	externalScorer   gap.ExternalScorer
	recommender      Recommender

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of analysis workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the analysis-job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the request deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithShardCount sets the number of document store shards.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithMaxMentorResults caps the default mentor ranking result size.
func WithMaxMentorResults(max int) Option {
	return func(s *Service) {
		if max > 0 {
			s.maxMentorResults = max
		}
	}
}

// WithThresholds sets the nine-box classification cutoffs.
func WithThresholds(t grid.Thresholds) Option {
	return func(s *Service) {
		s.thresholds = t
	}
}

// WithSkillSynonyms sets the alias table for deterministic skill matching.
func WithSkillSynonyms(synonyms map[string][]string) Option {
	return func(s *Service) {
		s.synonyms = synonyms
	}
}

// WithDefaultRequiredScores sets the score requirements applied to role
// records that carry none.
func WithDefaultRequiredScores(scores map[string]float64) Option {
	return func(s *Service) {
		s.defaultScores = scores
	}
}

// WithModelPath points the readiness classifier at an artifact file.
// Empty keeps the embedded default artifact.
func WithModelPath(path string) Option {
	return func(s *Service) {
		s.modelPath = path
	}
}

// WithExternalScorer sets the LLM-backed gap scorer collaborator.
func WithExternalScorer(ext gap.ExternalScorer) Option {
	return func(s *Service) {
		s.externalScorer = ext
	}
}

// WithRecommender sets the LLM-backed recommendation collaborator.
func WithRecommender(r Recommender) Option {
	return func(s *Service) {
		s.recommender = r
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:      runtime.NumCPU() * 2, // Default to 2x CPU cores
		queueSize:        50_000,
		dedupeSize:       100_000,
		shardCount:       8,
		maxMentorResults: mentor.DefaultMaxResults,
		thresholds:       grid.DefaultThresholds(),
		defaultScores: map[string]float64{
			"technical":     75,
			"communication": 75,
			"leadership":    70,
		},
		stopCh: make(chan struct{}),
		logger: nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting succession service...")

	artifact, err := s.loadArtifact()
	if err != nil {
		return err
	}
	classifier, err := readiness.NewClassifier(readiness.WithArtifact(artifact))
	if err != nil {
		return err
	}
	s.classifier = classifier

	// Initialize components
	s.store = repository.NewDocStore(ctx,
		repository.WithShardCount(s.shardCount),
	)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)
	s.engine = grid.NewEngine(
		grid.WithThresholds(s.thresholds),
	)

	scorerOpts := []gap.Option{
		gap.WithSynonyms(s.synonyms),
		gap.WithLogger(s.logger.Named("gap")),
	}
	if s.externalScorer != nil {
		scorerOpts = append(scorerOpts, gap.WithExternalScorer(s.externalScorer))
	}
	s.scorer = gap.NewScorer(scorerOpts...)

	s.assembler = plan.NewAssembler()

	// Create and start the worker pool
	s.workerPool = workerpool.NewPool(s.workerCount, s.jobQueue, s.store, s.scorer, s.classifier)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "succession service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("shardCount", s.shardCount),
	)

	return nil
}

// loadArtifact resolves the readiness model: a configured path wins,
// otherwise the embedded default artifact is used.
func (s *Service) loadArtifact() (*readiness.Artifact, error) {
	if s.modelPath != "" {
		return readiness.LoadArtifact(s.modelPath)
	}
	return readiness.DefaultArtifact()
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping succession service...")

	// Stop worker pool
	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	// Close queue
	if q, ok := s.jobQueue.(*jobqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	// Close document store
	if s.store != nil {
		if closer, ok := s.store.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}

	// Signal cleanup loop to stop
	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "succession service stopped")
}

// SeenAndRecord atomically checks if a request id was seen and records it
// if not. Returns true if the request was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordAnalysisDuplicate()
	}
	return seen
}

// Unrecord removes a request ID from the seen list, allowing it to be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// EnqueueAnalysis submits an analysis request for asynchronous processing.
// Returns false when the queue is saturated.
func (s *Service) EnqueueAnalysis(ctx context.Context, req model.AnalysisRequest) bool {
	ok := s.jobQueue.Enqueue(ctx, req)
	if ok {
		metrics.UpdateQueueSize(s.jobQueue.Len(ctx))
	} else {
		s.logger.Warn(ctx, "analysis queue saturated",
			logger.String("requestID", req.RequestID),
		)
	}
	return ok
}

// Segment classifies one employee on the performance/potential grid. The
// outcome is written back as a new employee record when the employee is
// stored.
func (s *Service) Segment(ctx context.Context, emp model.Employee) (grid.Segmentation, error) {
	seg, err := s.engine.Segment(emp)
	if err != nil {
		return grid.Segmentation{}, err
	}
	metrics.RecordSegmentation()
	s.writeBackSegment(ctx, emp, seg.Segment)
	return seg, nil
}

// SegmentBatch classifies a batch and summarizes segment counts.
func (s *Service) SegmentBatch(ctx context.Context, emps []model.Employee) ([]grid.Segmentation, map[string]int, error) {
	segments, err := s.engine.SegmentAll(emps)
	if err != nil {
		return nil, nil, err
	}
	for i, emp := range emps {
		metrics.RecordSegmentation()
		s.writeBackSegment(ctx, emp, segments[i].Segment)
	}
	return segments, grid.Summarize(segments), nil
}

// writeBackSegment persists the segment label for a stored employee.
// Transient employees (no ID) are segmented without persistence.
func (s *Service) writeBackSegment(ctx context.Context, emp model.Employee, segment string) {
	if emp.ID == "" || emp.Segment == segment {
		return
	}
	stored, err := s.store.GetEmployee(ctx, emp.ID)
	if err != nil {
		return
	}
	stored.Segment = segment
	if err := s.store.PutEmployee(ctx, stored); err != nil {
		s.logger.Warn(ctx, "segment write-back failed",
			logger.String("employeeID", emp.ID),
			logger.Error(err),
		)
	}
}

// SaveEmployee upserts an employee record, assigning an ID when the
// payload carries none.
func (s *Service) SaveEmployee(ctx context.Context, emp model.Employee) (model.Employee, error) {
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	if err := s.store.PutEmployee(ctx, emp); err != nil {
		return model.Employee{}, err
	}
	return emp, nil
}

// Employee returns a stored employee record.
func (s *Service) Employee(ctx context.Context, id string) (model.Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

// SaveRole upserts a success-role requirement. Roles without explicit
// score requirements get the configured defaults.
func (s *Service) SaveRole(ctx context.Context, role model.RoleRequirement) error {
	if len(role.RequiredScores) == 0 {
		scores := make(map[string]float64, len(s.defaultScores))
		for dim, score := range s.defaultScores {
			scores[dim] = score
		}
		role.RequiredScores = scores
	}
	return s.store.PutRole(ctx, role)
}

// Roles lists all stored role requirements.
func (s *Service) Roles(ctx context.Context) ([]model.RoleRequirement, error) {
	return s.store.ListRoles(ctx)
}

// Candidates lists the employees whose skill match against the named
// role meets minMatch percent, sorted descending by match.
func (s *Service) Candidates(ctx context.Context, roleName string, minMatch int) ([]gap.Candidate, error) {
	role, err := s.store.GetRole(ctx, roleName)
	if err != nil {
		return nil, err
	}
	emps, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	return s.scorer.Candidates(emps, role, minMatch), nil
}

// AnalyzeGap runs a synchronous gap analysis and persists the result as
// the employee's active analysis record.
func (s *Service) AnalyzeGap(ctx context.Context, employeeID, targetRole string) (repository.AnalysisRecord, error) {
	emp, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return repository.AnalysisRecord{}, err
	}
	if targetRole == "" {
		targetRole = model.SuggestTargetRole(emp)
	}
	role, err := s.store.GetRole(ctx, targetRole)
	if err != nil {
		return repository.AnalysisRecord{}, err
	}

	start := time.Now()
	result := s.scorer.Score(ctx, emp, role)
	metrics.RecordGapScoringLatency(float64(time.Since(start).Milliseconds()))

	// Readiness is best effort here; the gap result stands on its own.
	readinessLabel := ""
	if pred, predErr := s.classifier.Predict(readiness.FeaturesFrom(emp, result)); predErr == nil {
		readinessLabel = pred.Label
	}

	rec := repository.AnalysisRecord{
		EmployeeID:  emp.ID,
		TargetRole:  role.Role,
		GeneratedAt: time.Now().UTC(),
		Gap:         result,
		Readiness:   readinessLabel,
	}
	if err := s.store.PutAnalysis(ctx, rec); err != nil {
		return repository.AnalysisRecord{}, err
	}
	metrics.RecordAnalysisProcessed()

	if readinessLabel != "" && readinessLabel != emp.Readiness {
		emp.Readiness = readinessLabel
		if err := s.store.PutEmployee(ctx, emp); err != nil {
			s.logger.Warn(ctx, "readiness write-back failed",
				logger.String("employeeID", emp.ID),
				logger.Error(err),
			)
		}
	}

	return rec, nil
}

// Analysis returns the employee's stored analysis record.
func (s *Service) Analysis(ctx context.Context, employeeID string) (repository.AnalysisRecord, error) {
	return s.store.GetAnalysis(ctx, employeeID)
}

// PredictReadiness classifies a stored employee. The stored analysis
// supplies the gap features when present; otherwise a deterministic gap
// analysis against the target role fills in.
func (s *Service) PredictReadiness(ctx context.Context, employeeID string) (readiness.Prediction, error) {
	emp, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return readiness.Prediction{}, err
	}

	var gapResult gap.Result
	if rec, recErr := s.store.GetAnalysis(ctx, employeeID); recErr == nil {
		gapResult = rec.Gap
	} else {
		role, roleErr := s.store.GetRole(ctx, model.SuggestTargetRole(emp))
		if roleErr == nil {
			gapResult = s.scorer.Deterministic(emp, role)
		}
	}

	pred, err := s.classifier.Predict(readiness.FeaturesFrom(emp, gapResult))
	if err != nil {
		return readiness.Prediction{}, err
	}
	pred.EmployeeID = employeeID
	return pred, nil
}

// PredictReadinessFeatures classifies an explicit feature vector.
func (s *Service) PredictReadinessFeatures(ctx context.Context, features readiness.FeatureVector) (readiness.Prediction, error) {
	return s.classifier.Predict(features)
}

// FindMentors ranks potential mentors for a stored employee. Ranking
// never fails; only an unknown employee is an error.
func (s *Service) FindMentors(ctx context.Context, employeeID string, limit int) ([]mentor.Profile, error) {
	emp, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	pool, err := s.store.ListEmployees(ctx)
	if err != nil {
		s.logger.Warn(ctx, "mentor pool listing failed",
			logger.String("employeeID", employeeID),
			logger.Error(err),
		)
		return []mentor.Profile{}, nil
	}
	if limit <= 0 {
		limit = s.maxMentorResults
	}
	return mentor.Rank(emp, pool, limit), nil
}

// GeneratePlan returns the employee's stored development plan, or
// assembles and persists a fresh one when none exists.
func (s *Service) GeneratePlan(ctx context.Context, employeeID string) (plan.DevelopmentPlan, error) {
	if stored, err := s.store.GetPlan(ctx, employeeID); err == nil {
		return stored, nil
	}

	emp, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return plan.DevelopmentPlan{}, err
	}

	rec, err := s.store.GetAnalysis(ctx, employeeID)
	if err != nil {
		rec, err = s.AnalyzeGap(ctx, employeeID, "")
		if err != nil {
			return plan.DevelopmentPlan{}, err
		}
		// Pick up the readiness write-back.
		if refreshed, getErr := s.store.GetEmployee(ctx, employeeID); getErr == nil {
			emp = refreshed
		}
	}

	readinessLabel := rec.Readiness
	if readinessLabel == "" {
		readinessLabel = rec.Gap.ReadinessLevel
	}

	role, err := s.store.GetRole(ctx, rec.TargetRole)
	if err != nil {
		return plan.DevelopmentPlan{}, err
	}

	recs := s.skillRecommendations(ctx, emp, role, rec.Gap)
	resources := s.learningResources(ctx, rec.Gap.MissingSkills, rec.TargetRole)
	mentors, err := s.FindMentors(ctx, employeeID, s.maxMentorResults)
	if err != nil {
		mentors = []mentor.Profile{}
	}

	p, err := s.assembler.Assemble(emp, rec.TargetRole, readinessLabel, recs, resources, mentors)
	if err != nil {
		return plan.DevelopmentPlan{}, err
	}
	if err := s.store.PutPlan(ctx, p); err != nil {
		return plan.DevelopmentPlan{}, err
	}
	return p, nil
}

// skillRecommendations asks the LLM collaborator first and falls back to
// the deterministic gap-derived recommendations.
func (s *Service) skillRecommendations(ctx context.Context, emp model.Employee, role model.RoleRequirement, gapResult gap.Result) []plan.SkillRecommendation {
	if s.recommender != nil {
		recs, err := s.recommender.SkillRecommendations(ctx, emp, gapResult)
		if err == nil {
			return recs
		}
		s.logger.Warn(ctx, "skill recommender failed, using deterministic fallback",
			logger.String("employeeID", emp.ID),
			logger.Error(err),
		)
		metrics.RecordLLMFallback("recommender")
	}
	return plan.FallbackRecommendations(role, gapResult)
}

// learningResources asks the LLM collaborator; an empty list is the
// fallback for every failure.
func (s *Service) learningResources(ctx context.Context, skills []string, targetRole string) []plan.LearningResource {
	if s.recommender == nil || len(skills) == 0 {
		return []plan.LearningResource{}
	}
	resources, err := s.recommender.LearningResources(ctx, skills, targetRole, defaultResourceResults)
	if err != nil {
		s.logger.Warn(ctx, "learning resource lookup failed",
			logger.String("targetRole", targetRole),
			logger.Error(err),
		)
		metrics.RecordLLMFallback("resources")
		return []plan.LearningResource{}
	}
	return resources
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		totalEmployees := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalEmployees"] = totalEmployees

		// Update metrics
		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTotalEmployees(totalEmployees)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
