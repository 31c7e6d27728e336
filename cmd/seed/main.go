package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/successionai/talentd/internal/seed"
)

// Default configuration constants.
const (
	defaultNumEmployees = 200
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 30 * time.Second
	defaultRunTimeout   = 10 * time.Minute
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numEmployees = flag.Int("employees", defaultNumEmployees, "Number of employees to generate and submit")
		datasetFile  = flag.String("file", "", "JSON dataset to load instead of generating one")
		workers      = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout      = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile   = flag.String("output", "", "Output file for the generated dataset (default: seed_dataset_TIMESTAMP.json)")
		logFile      = flag.String("log", "", "Log file for seed output (default: seed_log_TIMESTAMP.log)")
		analyze      = flag.Bool("analyze", true, "Enqueue a gap analysis per employee and verify the stored results")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seed.ShowHelp()
		return
	}

	// Setup logging
	if err := seed.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create seed configuration
	config := &seed.Config{
		BaseURL:      *baseURL,
		NumEmployees: *numEmployees,
		Workers:      *workers,
		Timeout:      *timeout,
		DatasetFile:  *datasetFile,
		OutputFile:   *outputFile,
		LogFile:      *logFile,
		Analyze:      *analyze,
		Verbose:      *verbose,
	}

	// Run the seed pass
	if err := seed.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seed run failed: " + err.Error() + "\n")
		return
	}
}
