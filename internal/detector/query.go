package detector

import (
	"regexp"

	"github.com/nao1215/phishscore/internal/model"
)

// QueryParamsPenalty is the penalty for credential-like query parameters.
const QueryParamsPenalty = 18.0

// suspiciousParamPattern matches credential vocabulary anywhere in the
// query, keys and values alike.
var suspiciousParamPattern = regexp.MustCompile(`(?i)(password|pwd|token|auth|session|ssn|card|cvv)`)

// QueryParamsDetector flags queries that look like they carry credentials.
type QueryParamsDetector struct{}

// NewQueryParamsDetector creates a QueryParamsDetector.
func NewQueryParamsDetector() *QueryParamsDetector {
	return &QueryParamsDetector{}
}

// Name returns the detector name.
func (d *QueryParamsDetector) Name() string {
	return "query_params"
}

// Detect reports a finding when the query is non-empty and matches.
func (d *QueryParamsDetector) Detect(u model.ParsedURL) (model.Finding, bool) {
	if u.Query == "" || !suspiciousParamPattern.MatchString(u.Query) {
		return model.Finding{}, false
	}
	return model.Finding{
		Type:    model.FindingTypeQueryParams,
		Title:   "Suspicious params",
		Detail:  "URL contains parameters often used to collect credentials.",
		Penalty: QueryParamsPenalty,
	}, true
}
