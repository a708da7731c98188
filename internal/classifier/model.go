package classifier

import (
	"fmt"
	"math"
)

// Model is a loaded classifier.
//
// Implementations must be safe for concurrent use; loaded artifacts are
// never mutated.
type Model interface {
	// Name describes the model shape for logging.
	Name() string

	// SupportsProbability reports whether Score is probability-based.
	SupportsProbability() bool

	// Score returns the machine-learning score of a raw URL on 0..100.
	Score(url string) (float64, error)
}

// LinearModel pairs a vectorizer with a linear estimator.
type LinearModel struct {
	name       string
	vectorizer *Vectorizer
	estimator  *LinearEstimator
}

// NewVectorizedModel builds a model from a separate vectorizer and
// estimator artifact.
func NewVectorizedModel(v *Vectorizer, e *LinearEstimator) (*LinearModel, error) {
	return newLinearModel("vectorized/"+e.Kind, v, e)
}

// NewPipelineModel builds a model from a self-contained pipeline artifact.
func NewPipelineModel(v *Vectorizer, e *LinearEstimator) (*LinearModel, error) {
	return newLinearModel("pipeline/"+e.Kind, v, e)
}

func newLinearModel(name string, v *Vectorizer, e *LinearEstimator) (*LinearModel, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if v.Dimensions() != len(e.Coef) {
		return nil, fmt.Errorf("%w: vectorizer has %d features, estimator has %d coefficients",
			ErrDimensionMismatch, v.Dimensions(), len(e.Coef))
	}
	return &LinearModel{name: name, vectorizer: v, estimator: e}, nil
}

// Name returns the model shape.
func (m *LinearModel) Name() string {
	return m.name
}

// SupportsProbability reports whether the estimator yields probabilities.
func (m *LinearModel) SupportsProbability() bool {
	return m.estimator.SupportsProbability()
}

// Score vectorizes the URL and scores it. Label-only estimators are fed the
// same vectorized features as probabilistic ones.
func (m *LinearModel) Score(url string) (float64, error) {
	x := m.vectorizer.Transform(url)
	s, err := m.estimator.MLScore(x)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0, ErrNonFiniteScore
	}
	return s, nil
}
