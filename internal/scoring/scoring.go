// Package scoring combines heuristic confidence with the optional
// classifier score and maps the result to a status.
package scoring

import (
	"fmt"
	"strconv"

	"github.com/nao1215/phishscore/internal/model"
)

// Blend weights for the heuristic and classifier contributions.
const (
	HeuristicWeight  = 0.6
	ClassifierWeight = 0.4
)

// Status thresholds. Both are inclusive lower bounds.
const (
	SafeThreshold       = 80.0
	SuspiciousThreshold = 50.0
)

// Aggregate produces the final result from the heuristic findings and base
// confidence plus the classifier score, if any.
//
// When mlOK is true, the final confidence is HeuristicWeight*base +
// ClassifierWeight*mlScore and an informational "ML included" finding is
// appended. mlAvailable is reported as-is on the result. The confidence is
// clamped to [0, 100] and rounded to one decimal place.
func Aggregate(findings []model.Finding, base, mlScore float64, mlOK, mlAvailable bool) model.ScoreResult {
	final := Clamp(base)
	if mlOK {
		final = Blend(final, mlScore)
		findings = append(findings, model.Finding{
			Type:   model.FindingTypeML,
			Title:  "ML included",
			Detail: fmt.Sprintf("Local model contributed %.1f%% confidence.", mlScore),
		})
	}

	final = Round1(Clamp(final))
	return model.ScoreResult{
		Confidence:  final,
		Status:      StatusFor(final),
		Findings:    findings,
		MLAvailable: mlAvailable,
	}
}

// InvalidResult is the result for empty input. No detector runs.
func InvalidResult(mlAvailable bool) model.ScoreResult {
	return model.ScoreResult{
		Confidence: 0.0,
		Status:     model.StatusDangerous,
		Findings: []model.Finding{
			{Type: model.FindingTypeInvalid, Title: "Invalid URL", Detail: "Empty input"},
		},
		MLAvailable: mlAvailable,
	}
}

// Blend weights the heuristic base against the classifier score.
func Blend(base, mlScore float64) float64 {
	return base*HeuristicWeight + mlScore*ClassifierWeight
}

// Clamp limits v to [0, 100].
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Round1 rounds v to one decimal place using correctly rounded decimal
// conversion, so 0.25 becomes 0.2 and 0.35 (stored as 0.34999...) becomes
// 0.3. math.Round(v*10)/10 would disagree on such values.
func Round1(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// StatusFor maps a final confidence to its status.
func StatusFor(confidence float64) model.Status {
	switch {
	case confidence >= SafeThreshold:
		return model.StatusSafe
	case confidence >= SuspiciousThreshold:
		return model.StatusSuspicious
	default:
		return model.StatusDangerous
	}
}
