// Package classifier provides the optional statistical URL classifier.
//
// A classifier is an externally trained artifact consumed as an opaque
// scoring function: it maps a raw URL to a machine-learning score on the
// 0..100 scale. Two artifact shapes are supported:
//
//   - vectorized: a character n-gram TF-IDF vectorizer (vectorizer.json)
//     paired with a linear estimator (model.json)
//   - self-contained: a pipeline artifact (model.json with type "pipeline")
//     embedding its own vectorizer and estimator
//
// Estimators either produce a probability (logistic regression) or only a
// class label (linear SVC). Label-only estimators are mapped to fixed
// surrogate scores.
//
// Design decision: The Adapter encapsulates the "model may be absent"
// branch in a single method. Callers never check for a nil model; they call
// Adapter.Score and get either a score or "unavailable". Absence is a normal
// operating mode, not a misconfiguration.
package classifier
