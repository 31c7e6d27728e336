package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/successionai/talentd/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete seed pass.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting talentd seed run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("employees", config.NumEmployees),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("datasetFile", config.DatasetFile),
		logger.String("logFile", config.LogFile),
		logger.Any("analyze", config.Analyze),
		logger.Any("verbose", config.Verbose))

	client := newHTTPClient(config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config, client); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Load or generate the dataset
	dataset, err := loadOrGenerateDataset(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("dataset preparation failed: %w", err)
	}

	// Step 3: Submit the role catalog first; analyses need the targets
	if err := submitRoles(ctx, config, client, dataset.Roles, stats); err != nil {
		return fmt.Errorf("role submission failed: %w", err)
	}

	// Step 4: Submit employees concurrently
	if err := submitEmployees(ctx, config, client, dataset.Employees, stats); err != nil {
		return fmt.Errorf("employee submission failed: %w", err)
	}

	var analyses []AnalysisDoc
	if config.Analyze {
		// Step 5: Enqueue a gap analysis per employee
		if err := enqueueAnalyses(ctx, config, client, dataset.Employees, stats); err != nil {
			return fmt.Errorf("analysis enqueue failed: %w", err)
		}

		// Step 6: Wait for workers to drain the queue, then poll
		logger.Get().Info(ctx, "waiting for analyses to be processed")
		time.Sleep(ProcessingDelay)

		analyses, err = retrieveAnalyses(ctx, config, client, dataset.Employees, stats)
		if err != nil {
			return fmt.Errorf("analysis retrieval failed: %w", err)
		}
	}

	// Step 7: Verify results
	if err := verifyResults(ctx, config, analyses, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 8: Save the dataset when it was generated this run
	if config.DatasetFile == "" {
		if err := saveDatasetToFile(ctx, config, dataset); err != nil {
			logger.Get().Warn(ctx, "failed to save dataset to file", logger.Error(err))
		}
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "seed run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health")

	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// loadOrGenerateDataset reads the dataset file when one is given, otherwise
// generates a synthetic one.
func loadOrGenerateDataset(ctx context.Context, config *Config, stats *Stats) (*Dataset, error) {
	if config.DatasetFile == "" {
		return generateDataset(ctx, config, stats)
	}

	logger.Get().Info(ctx, "loading dataset from file", logger.String("file", config.DatasetFile))

	data, err := os.ReadFile(config.DatasetFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var dataset Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("failed to parse dataset file: %w", err)
	}
	if len(dataset.Employees) == 0 {
		return nil, fmt.Errorf("dataset file contains no employees")
	}

	stats.EmployeesGenerated = len(dataset.Employees)
	return &dataset, nil
}

// saveDatasetToFile saves the generated dataset to a JSON file.
func saveDatasetToFile(ctx context.Context, config *Config, dataset *Dataset) error {
	if dataset == nil || len(dataset.Employees) == 0 {
		return fmt.Errorf("no dataset to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "seed_dataset_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	if err := os.WriteFile(filename, data, logFilePermission); err != nil {
		return fmt.Errorf("failed to write dataset file: %w", err)
	}

	logger.Get().Info(ctx, "dataset saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final seed statistics.
func displayFinalStats(stats *Stats) {
	var successRate, employeesPerSecond float64

	if stats.EmployeesSubmitted > 0 {
		successRate = float64(stats.EmployeesSuccessful) / float64(stats.EmployeesSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		employeesPerSecond = float64(stats.EmployeesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("rolesSubmitted", stats.RolesSubmitted),
		logger.Int("employeesGenerated", stats.EmployeesGenerated),
		logger.Int("employeesSubmitted", stats.EmployeesSubmitted),
		logger.Int("employeesSuccessful", stats.EmployeesSuccessful),
		logger.Int("employeesFailed", stats.EmployeesFailed),
		logger.Int("analysesEnqueued", stats.AnalysesEnqueued),
		logger.Int("analysesDuplicate", stats.AnalysesDuplicate),
		logger.Int("analysesRejected", stats.AnalysesRejected),
		logger.Int("analysesRetrieved", stats.AnalysesRetrieved),
		logger.Int("analysesMissing", stats.AnalysesMissing),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("employeesPerSecond", employeesPerSecond))
}
