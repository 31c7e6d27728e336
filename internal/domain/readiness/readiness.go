// Package readiness predicts an employee's promotion readiness with a
// pre-trained ensemble-of-trees classifier over seven profile features.
// Training happens out of band; this package only loads a frozen
// artifact and serves deterministic predictions.
package readiness

import (
	"fmt"
	"sort"

	"github.com/successionai/talentd/internal/domain/gap"
	"github.com/successionai/talentd/internal/domain/model"
	"github.com/successionai/talentd/pkg/metrics"
)

// FeatureCount is the fixed width of the model's input vector.
const FeatureCount = 7

// FeatureVector holds the seven model inputs, in training order.
type FeatureVector struct {
	PerformanceRating  float64 `json:"performance_rating"`
	PotentialRating    float64 `json:"potential_rating"`
	LeadershipScore    float64 `json:"leadership_score"`
	MissingSkillsCount int     `json:"missing_skills_count"`
	TechnicalScore     float64 `json:"technical_score"`
	CommunicationScore float64 `json:"communication_score"`
	ExperienceYears    int     `json:"experience_years"`
}

// vector flattens the features into the order the model was trained on.
func (f FeatureVector) vector() [FeatureCount]float64 {
	return [FeatureCount]float64{
		f.PerformanceRating,
		f.PotentialRating,
		f.LeadershipScore,
		float64(f.MissingSkillsCount),
		f.TechnicalScore,
		f.CommunicationScore,
		float64(f.ExperienceYears),
	}
}

// FeaturesFrom derives the model inputs from an employee profile and a
// completed gap analysis.
func FeaturesFrom(emp model.Employee, gapResult gap.Result) FeatureVector {
	return FeatureVector{
		PerformanceRating:  emp.PerformanceRating,
		PotentialRating:    emp.PotentialRating,
		LeadershipScore:    emp.AssessmentScores["leadership"],
		MissingSkillsCount: len(gapResult.MissingSkills),
		TechnicalScore:     emp.AssessmentScores["technical"],
		CommunicationScore: emp.AssessmentScores["communication"],
		ExperienceYears:    emp.ExperienceYears,
	}
}

// Prediction is one readiness classification with its full class
// distribution. Probabilities are keyed by the alphabetical label set
// {Developing, Not Ready, Ready} regardless of the artifact's internal
// class order.
type Prediction struct {
	EmployeeID    string             `json:"employee_id,omitempty"`
	Label         string             `json:"predicted_readiness"`
	Confidence    float64            `json:"confidence"`
	Probabilities map[string]float64 `json:"probabilities"`
}

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithArtifact sets the model artifact to serve predictions from.
func WithArtifact(a *Artifact) Option {
	return func(c *Classifier) {
		c.artifact = a
	}
}

// Classifier serves readiness predictions from a loaded artifact. Once
// constructed it is immutable and safe for concurrent use.
type Classifier struct {
	artifact *Artifact
}

// NewClassifier creates a classifier with configuration options. A
// classifier built without an artifact is valid but every Predict call
// fails with ErrModelNotLoaded until one is provided.
func NewClassifier(opts ...Option) (*Classifier, error) {
	c := &Classifier{}
	for _, opt := range opts {
		opt(c)
	}
	if c.artifact != nil {
		if err := c.artifact.validate(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Loaded reports whether a model artifact is available.
func (c *Classifier) Loaded() bool {
	return c.artifact != nil
}

// Predict classifies a feature vector. Each tree's leaf distribution is
// averaged across the ensemble; the label with the highest mean
// probability wins and its probability becomes the confidence.
func (c *Classifier) Predict(features FeatureVector) (Prediction, error) {
	if c.artifact == nil {
		metrics.RecordPredictionError()
		return Prediction{}, ErrModelNotLoaded
	}

	scaled := c.scale(features.vector())

	classes := len(c.artifact.Labels)
	sums := make([]float64, classes)
	for _, tree := range c.artifact.Trees {
		for i, p := range tree.traverse(scaled) {
			sums[i] += p
		}
	}

	probabilities := make(map[string]float64, classes)
	bestLabel, bestAvg := "", -1.0
	for i, label := range c.artifact.Labels {
		avg := sums[i] / float64(len(c.artifact.Trees))
		probabilities[label] = avg
		// Ties resolve to the first label in artifact order.
		if avg > bestAvg {
			bestLabel, bestAvg = label, avg
		}
	}

	metrics.RecordReadinessPrediction()

	return Prediction{
		Label:         bestLabel,
		Confidence:    bestAvg,
		Probabilities: probabilities,
	}, nil
}

// Labels returns the artifact's class labels in alphabetical order.
func (c *Classifier) Labels() ([]string, error) {
	if c.artifact == nil {
		return nil, ErrModelNotLoaded
	}
	labels := append([]string(nil), c.artifact.Labels...)
	sort.Strings(labels)
	return labels, nil
}

// scale applies the frozen standardization fit at training time.
func (c *Classifier) scale(raw [FeatureCount]float64) [FeatureCount]float64 {
	var scaled [FeatureCount]float64
	for i := range raw {
		scaled[i] = (raw[i] - c.artifact.Scaler.Means[i]) / c.artifact.Scaler.Stds[i]
	}
	return scaled
}

// Version reports the loaded artifact's version, or an error when no
// model is available.
func (c *Classifier) Version() (int, error) {
	if c.artifact == nil {
		return 0, fmt.Errorf("version: %w", ErrModelNotLoaded)
	}
	return c.artifact.Version, nil
}
