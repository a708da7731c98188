package model

// ScoreResult is the terminal output of one scan.
// Ownership passes to the caller, which may persist or render it.
type ScoreResult struct {
	// URL is the submitted URL.
	URL string `json:"url,omitempty"`

	// RegisteredDomain is the eTLD+1 of the host, empty for IP hosts and
	// unparseable input. It does not affect the score.
	RegisteredDomain string `json:"registered_domain,omitempty"`

	// Confidence is the final score in [0, 100], rounded to one decimal.
	// Higher means more likely legitimate.
	Confidence float64 `json:"confidence"`

	// Status is derived from Confidence by fixed thresholds.
	Status Status `json:"status"`

	// Findings are the reasons behind the score, in detector order.
	Findings []Finding `json:"reasons"`

	// MLAvailable reports whether a classifier was configured.
	MLAvailable bool `json:"ml_available"`
}

// HasFindingType reports whether a finding of the given type is present.
func (r *ScoreResult) HasFindingType(findingType string) bool {
	for _, f := range r.Findings {
		if f.Type == findingType {
			return true
		}
	}
	return false
}

// FindingTitles returns the finding titles in order.
func (r *ScoreResult) FindingTitles() []string {
	titles := make([]string, len(r.Findings))
	for i, f := range r.Findings {
		titles[i] = f.Title
	}
	return titles
}

// TotalPenalty returns the sum of all finding penalties.
func (r *ScoreResult) TotalPenalty() float64 {
	var total float64
	for _, f := range r.Findings {
		total += f.Penalty
	}
	return total
}
