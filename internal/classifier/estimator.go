package classifier

import (
	"fmt"
	"math"
)

// Estimator kinds.
const (
	KindLogisticRegression = "logistic_regression"
	KindLinearSVC          = "linear_svc"
	KindPipeline           = "pipeline"
)

// Surrogate scores for label-only estimators.
const (
	SurrogatePositive = 90.0
	SurrogateNegative = 20.0
)

// positiveLabel is the class whose probability is reported as the score.
const positiveLabel = 1

// LinearEstimator is a fitted binary linear classifier.
type LinearEstimator struct {
	// Kind is KindLogisticRegression or KindLinearSVC.
	Kind string `json:"type"`

	// Classes are the two class labels; Classes[1] is the class predicted
	// for a positive decision value.
	Classes []int `json:"classes"`

	// Coef holds one weight per feature.
	Coef []float64 `json:"coef"`

	// Intercept is the bias term.
	Intercept float64 `json:"intercept"`
}

// Validate checks the estimator is usable.
func (e *LinearEstimator) Validate() error {
	switch e.Kind {
	case KindLogisticRegression, KindLinearSVC:
	default:
		return fmt.Errorf("%w: unsupported estimator type %q", ErrInvalidArtifact, e.Kind)
	}
	if len(e.Classes) != 2 {
		return fmt.Errorf("%w: expected 2 classes, got %d", ErrInvalidArtifact, len(e.Classes))
	}
	if len(e.Coef) == 0 {
		return fmt.Errorf("%w: empty coefficients", ErrInvalidArtifact)
	}
	return nil
}

// SupportsProbability reports whether the estimator yields probabilities.
func (e *LinearEstimator) SupportsProbability() bool {
	return e.Kind == KindLogisticRegression
}

// Decision returns the signed distance of x from the decision boundary.
func (e *LinearEstimator) Decision(x []Feature) (float64, error) {
	d := e.Intercept
	for _, f := range x {
		if f.Index >= len(e.Coef) {
			return 0, fmt.Errorf("%w: feature index %d, %d coefficients",
				ErrDimensionMismatch, f.Index, len(e.Coef))
		}
		d += e.Coef[f.Index] * f.Value
	}
	return d, nil
}

// Probability returns the probability of Classes[1].
func (e *LinearEstimator) Probability(x []Feature) (float64, error) {
	d, err := e.Decision(x)
	if err != nil {
		return 0, err
	}
	return 1 / (1 + math.Exp(-d)), nil
}

// Predict returns the predicted class label.
func (e *LinearEstimator) Predict(x []Feature) (int, error) {
	d, err := e.Decision(x)
	if err != nil {
		return 0, err
	}
	if d > 0 {
		return e.Classes[1], nil
	}
	return e.Classes[0], nil
}

// MLScore returns the score on the 0..100 scale: the probability times 100
// for probabilistic estimators, or a surrogate for label-only ones.
func (e *LinearEstimator) MLScore(x []Feature) (float64, error) {
	if e.SupportsProbability() {
		p, err := e.Probability(x)
		if err != nil {
			return 0, err
		}
		return p * 100.0, nil
	}

	label, err := e.Predict(x)
	if err != nil {
		return 0, err
	}
	if label == positiveLabel {
		return SurrogatePositive, nil
	}
	return SurrogateNegative, nil
}
