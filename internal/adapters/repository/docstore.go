package repository

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/successionai/talentd/internal/domain/model"
	"github.com/successionai/talentd/internal/domain/plan"
	"github.com/successionai/talentd/pkg/metrics"
)

// Sharded, in-memory Store implementation.
//
// Employee-keyed documents (employees, analyses, plans) are spread
// across shards by FNV-1a hash of the employee ID; each shard has its
// own lock, so writes to different employees never contend. Roles form
// a small, rarely written set and live in a single map.

const (
	defaultShardCount            = 8
	defaultMetricsUpdateInterval = 5 * time.Second
)

// shard holds all documents for the employee IDs that hash to it.
type shard struct {
	mu        sync.RWMutex
	employees map[string]model.Employee
	analyses  map[string]AnalysisRecord
	plans     map[string]plan.DevelopmentPlan
}

// DocStore implements Store with sharded in-memory maps.
type DocStore struct {
	shards     []*shard
	shardCount int

	rolesMu sync.RWMutex
	roles   map[string]model.RoleRequirement // lowered name -> record

	metricsUpdateInterval time.Duration

	wg       sync.WaitGroup
	stopChan chan struct{}
}

// NewDocStore constructs a document store with configuration options.
func NewDocStore(ctx context.Context, opts ...Option) *DocStore {
	s := &DocStore{
		shardCount:            defaultShardCount,
		metricsUpdateInterval: defaultMetricsUpdateInterval,
		roles:                 make(map[string]model.RoleRequirement),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{
			employees: make(map[string]model.Employee),
			analyses:  make(map[string]AnalysisRecord),
			plans:     make(map[string]plan.DevelopmentPlan),
		}
	}

	s.stopChan = make(chan struct{})
	metrics.UpdateRepositoryShardCount(s.shardCount)
	s.startMetricsUpdater(ctx)

	return s
}

// Close gracefully shuts down the background metrics goroutine.
func (s *DocStore) Close() error {
	select {
	case <-s.stopChan:
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
	return nil
}

func (s *DocStore) shardFor(id string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return s.shards[int(h.Sum32())%s.shardCount]
}

// PutEmployee implements Store.PutEmployee.
func (s *DocStore) PutEmployee(ctx context.Context, emp model.Employee) error {
	if emp.ID == "" {
		return fmt.Errorf("%w: empty employee id", ErrInvalidID)
	}
	start := time.Now()

	sh := s.shardFor(emp.ID)
	sh.mu.Lock()
	sh.employees[emp.ID] = emp
	sh.mu.Unlock()

	metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Milliseconds()))
	return nil
}

// GetEmployee implements Store.GetEmployee.
func (s *DocStore) GetEmployee(ctx context.Context, id string) (model.Employee, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	sh := s.shardFor(id)
	sh.mu.RLock()
	emp, ok := sh.employees[id]
	sh.mu.RUnlock()
	if !ok {
		return model.Employee{}, fmt.Errorf("employee %q: %w", id, ErrNotFound)
	}
	return emp, nil
}

// ListEmployees implements Store.ListEmployees.
func (s *DocStore) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	var out []model.Employee
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, emp := range sh.employees {
			out = append(out, emp)
		}
		sh.mu.RUnlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DeleteEmployee implements Store.DeleteEmployee. Dependent analysis
// and plan records are removed with the employee.
func (s *DocStore) DeleteEmployee(ctx context.Context, id string) error {
	start := time.Now()

	sh := s.shardFor(id)
	sh.mu.Lock()
	delete(sh.employees, id)
	delete(sh.analyses, id)
	delete(sh.plans, id)
	sh.mu.Unlock()

	metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Milliseconds()))
	return nil
}

// PutRole implements Store.PutRole. Role names are matched
// case-insensitively.
func (s *DocStore) PutRole(ctx context.Context, role model.RoleRequirement) error {
	if role.Role == "" {
		return fmt.Errorf("%w: empty role name", ErrInvalidID)
	}
	start := time.Now()

	s.rolesMu.Lock()
	s.roles[strings.ToLower(role.Role)] = role
	s.rolesMu.Unlock()

	metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Milliseconds()))
	return nil
}

// GetRole implements Store.GetRole.
func (s *DocStore) GetRole(ctx context.Context, name string) (model.RoleRequirement, error) {
	s.rolesMu.RLock()
	role, ok := s.roles[strings.ToLower(name)]
	s.rolesMu.RUnlock()
	if !ok {
		return model.RoleRequirement{}, fmt.Errorf("role %q: %w", name, ErrNotFound)
	}
	return role, nil
}

// ListRoles implements Store.ListRoles.
func (s *DocStore) ListRoles(ctx context.Context) ([]model.RoleRequirement, error) {
	s.rolesMu.RLock()
	out := make([]model.RoleRequirement, 0, len(s.roles))
	for _, role := range s.roles {
		out = append(out, role)
	}
	s.rolesMu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Role < out[j].Role })
	return out, nil
}

// PutAnalysis implements Store.PutAnalysis. The previous record for the
// employee, if any, is dropped wholesale rather than merged.
func (s *DocStore) PutAnalysis(ctx context.Context, rec AnalysisRecord) error {
	if rec.EmployeeID == "" {
		return fmt.Errorf("%w: empty employee id", ErrInvalidID)
	}
	start := time.Now()

	sh := s.shardFor(rec.EmployeeID)
	sh.mu.Lock()
	delete(sh.analyses, rec.EmployeeID)
	sh.analyses[rec.EmployeeID] = rec
	sh.mu.Unlock()

	metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Milliseconds()))
	return nil
}

// GetAnalysis implements Store.GetAnalysis.
func (s *DocStore) GetAnalysis(ctx context.Context, employeeID string) (AnalysisRecord, error) {
	sh := s.shardFor(employeeID)
	sh.mu.RLock()
	rec, ok := sh.analyses[employeeID]
	sh.mu.RUnlock()
	if !ok {
		return AnalysisRecord{}, fmt.Errorf("analysis for %q: %w", employeeID, ErrNotFound)
	}
	return rec, nil
}

// PutPlan implements Store.PutPlan with the same last-write-wins
// contract as PutAnalysis.
func (s *DocStore) PutPlan(ctx context.Context, p plan.DevelopmentPlan) error {
	if p.EmployeeID == "" {
		return fmt.Errorf("%w: empty employee id", ErrInvalidID)
	}
	start := time.Now()

	sh := s.shardFor(p.EmployeeID)
	sh.mu.Lock()
	delete(sh.plans, p.EmployeeID)
	sh.plans[p.EmployeeID] = p
	sh.mu.Unlock()

	metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Milliseconds()))
	return nil
}

// GetPlan implements Store.GetPlan.
func (s *DocStore) GetPlan(ctx context.Context, employeeID string) (plan.DevelopmentPlan, error) {
	sh := s.shardFor(employeeID)
	sh.mu.RLock()
	p, ok := sh.plans[employeeID]
	sh.mu.RUnlock()
	if !ok {
		return plan.DevelopmentPlan{}, fmt.Errorf("plan for %q: %w", employeeID, ErrNotFound)
	}
	return p, nil
}

// Count implements Store.Count.
func (s *DocStore) Count(ctx context.Context) int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.employees)
		sh.mu.RUnlock()
	}
	return total
}

// startMetricsUpdater starts a background goroutine that refreshes
// repository gauges at the configured interval.
func (s *DocStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				count := s.Count(ctx)
				metrics.UpdateRepositoryRecordsTotal(count)
				metrics.UpdateTotalEmployees(count)
			}
		}
	}()
}
