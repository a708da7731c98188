package detector

import (
	"github.com/nao1215/phishscore/internal/model"
)

// MaxConfidence is the starting confidence before any penalty applies.
const MaxConfidence = 100.0

// Detector defines the interface for individual heuristics.
//
// Design decision: We use an interface rather than a fixed chain of if
// statements because:
//  1. Each heuristic can be tested in isolation
//  2. The evaluation order is data (the Set) rather than control flow
//  3. Tests can substitute fake detectors when exercising aggregation
type Detector interface {
	// Name returns the detector's name for logging.
	Name() string

	// Detect inspects the URL and reports a finding when the heuristic fires.
	Detect(u model.ParsedURL) (model.Finding, bool)
}

// Set is an ordered list of detectors.
// Findings are reported in the order the detectors appear in the set.
type Set struct {
	detectors []Detector
}

// NewSet creates a set evaluating the given detectors in order.
func NewSet(detectors ...Detector) *Set {
	return &Set{detectors: detectors}
}

// DefaultSet returns the standard detectors in their fixed order.
func DefaultSet() *Set {
	return NewSet(
		NewKeywordDetector(),
		NewIPHostDetector(),
		NewNonASCIIHostDetector(),
		NewEntropyDetector(),
		NewQueryParamsDetector(),
	)
}

// Register appends a detector to the end of the set.
func (s *Set) Register(d Detector) {
	s.detectors = append(s.detectors, d)
}

// Detectors returns the detectors in evaluation order.
func (s *Set) Detectors() []Detector {
	out := make([]Detector, len(s.detectors))
	copy(out, s.detectors)
	return out
}

// Evaluate runs every detector and returns the findings in detector order
// together with the heuristic confidence.
//
// Penalties are subtracted from MaxConfidence one at a time in detector
// order and the result is clamped to [0, 100]. Subtracting sequentially
// rather than summing first keeps floating-point results identical to
// scores recorded by earlier versions.
func (s *Set) Evaluate(u model.ParsedURL) ([]model.Finding, float64) {
	findings := make([]model.Finding, 0, len(s.detectors))
	confidence := MaxConfidence

	for _, d := range s.detectors {
		f, ok := d.Detect(u)
		if !ok {
			continue
		}
		findings = append(findings, f)
		confidence -= f.Penalty
	}

	return findings, clamp(confidence)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > MaxConfidence {
		return MaxConfidence
	}
	return v
}
