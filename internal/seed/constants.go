package seed

import "time"

// HTTP status code constants.
const (
	StatusOK       = 200
	StatusCreated  = 201
	StatusAccepted = 202
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	ProcessingDelay      = 5 * time.Second
	AnalysisPollInterval = 500 * time.Millisecond
	AnalysisPollBudget   = 30 * time.Second
	PercentageMultiplier = 100
)
