package model

import (
	"sort"
	"time"
)

// Summary aggregates a batch of scan results for report output.
//
// Design decision: We build a separate summary rather than letting each
// writer walk the results because:
// 1. It gives every output format the same counts
// 2. It can be serialized to JSON alongside the results
// 3. It keeps presentation concerns out of the scoring code
type Summary struct {
	// GeneratedAt is when the summary was built.
	GeneratedAt time.Time `json:"generated_at"`

	// SafeCount is the number of results with status Safe.
	SafeCount int `json:"safe_count"`

	// SuspiciousCount is the number of results with status Suspicious.
	SuspiciousCount int `json:"suspicious_count"`

	// DangerousCount is the number of results with status Dangerous.
	DangerousCount int `json:"dangerous_count"`

	// MLAvailable is true if any result used the classifier.
	MLAvailable bool `json:"ml_available"`

	// FindingCounts maps finding types to how many results contained them.
	FindingCounts map[string]int `json:"finding_counts,omitempty"`

	// Results are the summarized scan results in input order.
	Results []ScoreResult `json:"results"`
}

// NewSummary builds a Summary over the given results.
func NewSummary(results []ScoreResult, now time.Time) *Summary {
	s := &Summary{
		GeneratedAt:   now,
		FindingCounts: make(map[string]int),
		Results:       results,
	}

	for i := range results {
		r := &results[i]
		switch r.Status {
		case StatusSafe:
			s.SafeCount++
		case StatusSuspicious:
			s.SuspiciousCount++
		case StatusDangerous:
			s.DangerousCount++
		}
		if r.MLAvailable {
			s.MLAvailable = true
		}

		seen := make(map[string]bool)
		for _, f := range r.Findings {
			if seen[f.Type] {
				continue
			}
			seen[f.Type] = true
			s.FindingCounts[f.Type]++
		}
	}

	return s
}

// Total returns the number of summarized results.
func (s *Summary) Total() int {
	return len(s.Results)
}

// CountByStatus returns the number of results with the given status.
func (s *Summary) CountByStatus(status Status) int {
	switch status {
	case StatusSafe:
		return s.SafeCount
	case StatusSuspicious:
		return s.SuspiciousCount
	case StatusDangerous:
		return s.DangerousCount
	default:
		return 0
	}
}

// ResultsByStatus returns the results with the given status, in input order.
func (s *Summary) ResultsByStatus(status Status) []ScoreResult {
	var out []ScoreResult
	for _, r := range s.Results {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// FindingTypes returns the finding types seen, sorted by descending count
// and then by name.
func (s *Summary) FindingTypes() []string {
	types := make([]string, 0, len(s.FindingCounts))
	for t := range s.FindingCounts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		ci, cj := s.FindingCounts[types[i]], s.FindingCounts[types[j]]
		if ci != cj {
			return ci > cj
		}
		return types[i] < types[j]
	})
	return types
}
