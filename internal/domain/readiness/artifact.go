package readiness

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed readiness_model_v2.json
var defaultArtifactJSON []byte

// Scaler holds the frozen standardization parameters fit at training
// time. Inference always uses these, never refits.
type Scaler struct {
	Means []float64 `json:"means"`
	Stds  []float64 `json:"stds"`
}

// Tree is one decision tree in flattened node-array form. Feature is -1
// at leaf nodes; Probabilities is the leaf's class distribution, empty
// for internal nodes.
type Tree struct {
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Left          []int       `json:"left"`
	Right         []int       `json:"right"`
	Probabilities [][]float64 `json:"probabilities"`
}

// Artifact is a versioned, trained readiness model: a random-forest
// style ensemble plus its fitted scaler. Labels record the class order
// the trees were trained with, so inference never assumes one.
type Artifact struct {
	Version int      `json:"version"`
	Labels  []string `json:"labels"`
	Scaler  Scaler   `json:"scaler"`
	Trees   []Tree   `json:"trees"`
}

// DefaultArtifact returns the model artifact bundled with the binary.
func DefaultArtifact() (*Artifact, error) {
	return ParseArtifact(defaultArtifactJSON)
}

// LoadArtifact reads and validates a model artifact from disk.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return ParseArtifact(data)
}

// ParseArtifact decodes and validates a JSON-encoded model artifact.
func ParseArtifact(data []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

func (a *Artifact) validate() error {
	if len(a.Labels) == 0 {
		return fmt.Errorf("%w: no labels", ErrInvalidArtifact)
	}
	if len(a.Scaler.Means) != FeatureCount || len(a.Scaler.Stds) != FeatureCount {
		return fmt.Errorf("%w: scaler expects %d features, got %d means and %d stds",
			ErrInvalidArtifact, FeatureCount, len(a.Scaler.Means), len(a.Scaler.Stds))
	}
	for i, std := range a.Scaler.Stds {
		if std <= 0 {
			return fmt.Errorf("%w: scaler std %d is not positive", ErrInvalidArtifact, i)
		}
	}
	if len(a.Trees) == 0 {
		return fmt.Errorf("%w: no trees", ErrInvalidArtifact)
	}
	for i, tree := range a.Trees {
		if err := tree.validate(len(a.Labels)); err != nil {
			return fmt.Errorf("%w: tree %d: %w", ErrInvalidArtifact, i, err)
		}
	}
	return nil
}

func (t Tree) validate(classes int) error {
	n := len(t.Feature)
	if n == 0 {
		return fmt.Errorf("empty tree")
	}
	if len(t.Threshold) != n || len(t.Left) != n || len(t.Right) != n || len(t.Probabilities) != n {
		return fmt.Errorf("node arrays have inconsistent lengths")
	}
	for i := 0; i < n; i++ {
		if t.Feature[i] < 0 {
			if len(t.Probabilities[i]) != classes {
				return fmt.Errorf("leaf %d has %d probabilities, want %d", i, len(t.Probabilities[i]), classes)
			}
			continue
		}
		if t.Feature[i] >= FeatureCount {
			return fmt.Errorf("node %d splits on unknown feature %d", i, t.Feature[i])
		}
		if t.Left[i] < 0 || t.Left[i] >= n || t.Right[i] < 0 || t.Right[i] >= n {
			return fmt.Errorf("node %d has out-of-range children", i)
		}
	}
	return nil
}

// traverse walks one tree for a scaled feature vector and returns the
// reached leaf's class distribution.
func (t Tree) traverse(scaled [FeatureCount]float64) []float64 {
	node := 0
	for t.Feature[node] >= 0 {
		if scaled[t.Feature[node]] <= t.Threshold[node] {
			node = t.Left[node]
		} else {
			node = t.Right[node]
		}
	}
	return t.Probabilities[node]
}
