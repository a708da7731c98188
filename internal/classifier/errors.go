package classifier

import "errors"

// Classifier errors.
//
// Design decision: Every load or inference failure is wrapped in
// ErrClassifierUnavailable so the caller can log one observable error kind
// while scoring degrades to heuristics only. The more specific errors tell
// an operator what is wrong with the artifacts.
var (
	// ErrClassifierUnavailable is returned when no usable classifier exists
	// for a call: artifacts are missing, failed to load, or inference failed.
	ErrClassifierUnavailable = errors.New("classifier unavailable")

	// ErrModelNotFound is returned when the model directory has no model.json.
	ErrModelNotFound = errors.New("model artifact not found")

	// ErrInvalidArtifact is returned when an artifact is malformed.
	ErrInvalidArtifact = errors.New("invalid model artifact")

	// ErrDimensionMismatch is returned when the vectorizer's feature count
	// does not match the estimator's coefficient count.
	ErrDimensionMismatch = errors.New("feature dimension mismatch between vectorizer and estimator")

	// ErrNonFiniteScore is returned when inference produces NaN or Inf.
	ErrNonFiniteScore = errors.New("model produced a non-finite score")
)
