// Package grid implements the nine-box talent grid: it classifies
// performance and potential ratings into levels and maps the level pair
// to one of nine fixed segments.
package grid

import (
	"fmt"

	"github.com/successionai/talentd/internal/domain/model"
)

// Default classification thresholds.
const (
	DefaultLowThreshold  = 3.5
	DefaultHighThreshold = 4.0
)

// Level is a classified rating band.
type Level string

// Rating levels, ordered Low < Medium < High.
const (
	Low    Level = "Low"
	Medium Level = "Medium"
	High   Level = "High"
)

// Classify maps a rating onto a Level. Values below low are Low, values
// at or above high are High, everything in between is Medium.
func Classify(value, low, high float64) (Level, error) {
	if low > high {
		return "", fmt.Errorf("%w: low=%v high=%v", ErrInvalidThresholds, low, high)
	}
	switch {
	case value < low:
		return Low, nil
	case value >= high:
		return High, nil
	default:
		return Medium, nil
	}
}

// Thresholds holds the per-axis classification cutoffs.
type Thresholds struct {
	PerformanceLow  float64
	PerformanceHigh float64
	PotentialLow    float64
	PotentialHigh   float64
}

// DefaultThresholds returns the standard 3.5/4.0 cutoffs on both axes.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PerformanceLow:  DefaultLowThreshold,
		PerformanceHigh: DefaultHighThreshold,
		PotentialLow:    DefaultLowThreshold,
		PotentialHigh:   DefaultHighThreshold,
	}
}

// Segmentation is the computed grid placement for one employee.
type Segmentation struct {
	EmployeeID        string  `json:"employee_id"`
	EmployeeName      string  `json:"employee_name"`
	PerformanceRating float64 `json:"performance_rating"`
	PotentialRating   float64 `json:"potential_rating"`
	PerformanceLevel  Level   `json:"performance_level"`
	PotentialLevel    Level   `json:"potential_level"`
	Segment           string  `json:"segment"`
	Description       string  `json:"description"`
}

// segmentEntry names one grid cell.
type segmentEntry struct {
	label       string
	description string
}

type levelPair struct {
	performance Level
	potential   Level
}

// The nine-box table is total over the 3x3 grid; a missing pair is a
// programming error, not a runtime case.
var segments = map[levelPair]segmentEntry{
	{High, High}: {
		label:       "Star",
		description: "Top talent. Retain, promote, and use as mentors. Future leaders.",
	},
	{Medium, High}: {
		label:       "Emerging Talent",
		description: "Rising stars with high potential. Invest in development and growth opportunities.",
	},
	{Low, High}: {
		label:       "Enigma",
		description: "High potential but underperforming. May need coaching, role adjustment, or support.",
	},
	{High, Medium}: {
		label:       "Consistent Performer",
		description: "Strong current performers. Recognize contributions and maintain engagement.",
	},
	{Medium, Medium}: {
		label:       "Core Contributor",
		description: "Reliable performers forming the backbone of the organization. Provide stability.",
	},
	{Low, Medium}: {
		label:       "Inconsistent Player",
		description: "Inconsistent performance with moderate potential. Needs performance improvement plan.",
	},
	{High, Low}: {
		label:       "Solid Performer",
		description: "High performers happy in current role. Valuable individual contributors.",
	},
	{Medium, Low}: {
		label:       "Diligent Worker",
		description: "Steady workers with limited growth potential. Keep engaged in current role.",
	},
	{Low, Low}: {
		label:       "Risk Zone",
		description: "Poor performance and limited potential. Consider performance improvement or exit.",
	},
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithThresholds overrides the default classification cutoffs.
func WithThresholds(t Thresholds) Option {
	return func(e *Engine) {
		e.thresholds = t
	}
}

// Engine places employees on the nine-box grid. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	thresholds Thresholds
}

// NewEngine creates a segmentation engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{thresholds: DefaultThresholds()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Thresholds returns the engine's active cutoffs.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Segment places a single employee on the grid.
func (e *Engine) Segment(emp model.Employee) (Segmentation, error) {
	perf, err := Classify(emp.PerformanceRating, e.thresholds.PerformanceLow, e.thresholds.PerformanceHigh)
	if err != nil {
		return Segmentation{}, fmt.Errorf("classify performance: %w", err)
	}
	pot, err := Classify(emp.PotentialRating, e.thresholds.PotentialLow, e.thresholds.PotentialHigh)
	if err != nil {
		return Segmentation{}, fmt.Errorf("classify potential: %w", err)
	}

	entry := segments[levelPair{performance: perf, potential: pot}]

	return Segmentation{
		EmployeeID:        emp.ID,
		EmployeeName:      emp.Name,
		PerformanceRating: emp.PerformanceRating,
		PotentialRating:   emp.PotentialRating,
		PerformanceLevel:  perf,
		PotentialLevel:    pot,
		Segment:           entry.label,
		Description:       entry.description,
	}, nil
}

// SegmentAll places every employee on the grid, preserving input order.
// Items are independent; the first classification error aborts the batch.
func (e *Engine) SegmentAll(emps []model.Employee) ([]Segmentation, error) {
	out := make([]Segmentation, 0, len(emps))
	for _, emp := range emps {
		seg, err := e.Segment(emp)
		if err != nil {
			return nil, fmt.Errorf("segment %q: %w", emp.ID, err)
		}
		out = append(out, seg)
	}
	return out, nil
}

// Summarize counts employees per segment label.
func Summarize(segs []Segmentation) map[string]int {
	summary := make(map[string]int, len(segments))
	for _, seg := range segs {
		summary[seg.Segment]++
	}
	return summary
}
