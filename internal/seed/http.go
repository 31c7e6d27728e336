package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitRoles posts the role catalog sequentially. Roles are few and the
// employee pass depends on all of them being present.
func submitRoles(ctx context.Context, config *Config, client *HTTPClient, roles []RoleDoc, stats *Stats) error {
	url := config.BaseURL + "/roles"
	for _, role := range roles {
		resp, err := client.Post(ctx, url, role)
		if err != nil {
			return fmt.Errorf("failed to submit role %q: %w", role.Role, err)
		}
		body, err := readResponseBody(resp)
		if err != nil {
			return fmt.Errorf("failed to read role response: %w", err)
		}
		if resp.StatusCode != StatusCreated {
			return fmt.Errorf("role %q rejected with HTTP %d: %s", role.Role, resp.StatusCode, string(body))
		}
		stats.RolesSubmitted++
	}
	log.Printf("✅ Submitted %d roles", stats.RolesSubmitted)
	return nil
}

// submitEmployees submits employees concurrently using worker pools. The
// stored records come back with an assigned segment; the per-segment
// counts feed the verification pass.
func submitEmployees(ctx context.Context, config *Config, client *HTTPClient, employees []EmployeeDoc, stats *Stats) error {
	log.Printf("📤 Submitting %d employees with %d workers...", len(employees), config.Workers)

	url := config.BaseURL + "/employees"

	// Counters for statistics
	var (
		successful int64
		failed     int64
		submitted  int64
	)

	var segMu sync.Mutex
	segments := make(map[string]int)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	// Create worker pool
	empChan := make(chan EmployeeDoc, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for emp := range empChan {
				select {
				case <-ctx.Done():
					return
				default:
					stored, err := submitSingleEmployee(ctx, client, url, emp)

					// Update counters
					atomic.AddInt64(&submitted, 1)
					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("⚠️  Failed to submit %s: %v", emp.ID, err)
						}
					} else {
						atomic.AddInt64(&successful, 1)
						segMu.Lock()
						segments[stored.Segment]++
						segMu.Unlock()
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&submitted)
						succ := atomic.LoadInt64(&successful)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("📊 Progress: %d/%d submitted (success: %d, failed: %d)",
								total, len(employees), succ, fail)
						} else {
							fmt.Printf("\r📤 Submitted: %d/%d (success: %d, failed: %d)",
								total, len(employees), succ, fail)
						}
					}
				}
			}
		}(i)
	}

	// Send employees to workers
	go func() {
		defer close(empChan)
		for _, emp := range employees {
			select {
			case <-ctx.Done():
				return
			case empChan <- emp:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Final progress report
	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	// Update stats
	stats.EmployeesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.EmployeesSuccessful = int(atomic.LoadInt64(&successful))
	stats.EmployeesFailed = int(atomic.LoadInt64(&failed))
	stats.SegmentsSeen = segments

	log.Printf(`✅ Employee submission completed:
   Successful: %d
   Failed: %d
`, stats.EmployeesSuccessful, stats.EmployeesFailed)

	return nil
}

// submitSingleEmployee submits one employee and decodes the stored record.
func submitSingleEmployee(ctx context.Context, client *HTTPClient, url string, emp EmployeeDoc) (EmployeeDoc, error) {
	resp, err := client.Post(ctx, url, emp)
	if err != nil {
		return EmployeeDoc{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return EmployeeDoc{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusCreated {
		return EmployeeDoc{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var stored EmployeeDoc
	if err := json.Unmarshal(body, &stored); err != nil {
		return EmployeeDoc{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return stored, nil
}

// enqueueAnalyses posts one gap-analysis request per employee concurrently.
// The target role is left blank so the service resolves it from the
// employee's current role.
func enqueueAnalyses(ctx context.Context, config *Config, client *HTTPClient, employees []EmployeeDoc, stats *Stats) error {
	log.Printf("🧮 Enqueueing %d gap analyses with %d workers...", len(employees), config.Workers)

	url := config.BaseURL + "/analyses"

	var (
		accepted  int64
		duplicate int64
		rejected  int64
	)

	idChan := make(chan string, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for id := range idChan {
				select {
				case <-ctx.Done():
					return
				default:
					switch enqueueSingleAnalysis(ctx, client, url, id) {
					case "accepted":
						atomic.AddInt64(&accepted, 1)
					case "duplicate":
						atomic.AddInt64(&duplicate, 1)
					default:
						atomic.AddInt64(&rejected, 1)
						if config.Verbose {
							log.Printf("⚠️  Analysis rejected for %s", id)
						}
					}
				}
			}
		}()
	}

	go func() {
		defer close(idChan)
		for _, emp := range employees {
			select {
			case <-ctx.Done():
				return
			case idChan <- emp.ID:
			}
		}
	}()

	wg.Wait()

	stats.AnalysesEnqueued = int(atomic.LoadInt64(&accepted))
	stats.AnalysesDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.AnalysesRejected = int(atomic.LoadInt64(&rejected))

	log.Printf(`✅ Analysis enqueue completed:
   Accepted: %d
   Duplicate: %d
   Rejected: %d
`, stats.AnalysesEnqueued, stats.AnalysesDuplicate, stats.AnalysesRejected)

	return nil
}

// enqueueSingleAnalysis submits one analysis request and classifies the ack.
func enqueueSingleAnalysis(ctx context.Context, client *HTTPClient, url, employeeID string) string {
	payload := map[string]string{"employee_id": employeeID}
	resp, err := client.Post(ctx, url, payload)
	if err != nil {
		return "rejected"
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "rejected"
	}

	switch resp.StatusCode {
	case StatusAccepted:
		return "accepted"
	case StatusOK:
		var ack AnalysisAck
		if err := json.Unmarshal(body, &ack); err == nil && ack.Duplicate {
			return "duplicate"
		}
		return "duplicate" // Assume duplicate for 200 even if parsing fails
	default:
		return "rejected"
	}
}
