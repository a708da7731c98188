package model

// Finding types. They identify which detector produced a finding and are
// used by report writers and metrics; scoring only looks at Penalty.
const (
	FindingTypeInvalid      = "invalid"
	FindingTypeKeyword      = "keyword"
	FindingTypeIPHost       = "ip_host"
	FindingTypeNonASCIIHost = "non_ascii_host"
	FindingTypeEntropy      = "entropy"
	FindingTypeQueryParams  = "query_params"
	FindingTypeML           = "ml"
)

// Finding is one flagged signal with a human-readable explanation and the
// confidence penalty it contributes. Findings are immutable once created.
type Finding struct {
	// Type is the stable identifier of the detector that produced the finding.
	Type string `json:"type"`

	// Title is a short description of the finding.
	Title string `json:"title"`

	// Detail explains what was observed.
	Detail string `json:"detail"`

	// Penalty is the amount subtracted from the base confidence.
	// It is never negative; informational findings carry zero.
	Penalty float64 `json:"penalty"`
}

// FindingInfo contains guidance about a finding type for report output.
type FindingInfo struct {
	Impact         string
	Recommendation string
}

// findingInfoMapping maps finding types to their report guidance.
//
// Design decision: We keep the guidance in one table rather than inside each
// detector so that wording can change without touching detection logic.
var findingInfoMapping = map[string]FindingInfo{
	FindingTypeInvalid: {
		Impact:         "The submitted value could not be analyzed as a URL.",
		Recommendation: "Submit the complete link, including the scheme.",
	},
	FindingTypeKeyword: {
		Impact:         "Credential and urgency vocabulary is typical of phishing lures that imitate login or payment pages.",
		Recommendation: "Navigate to the service directly instead of following the link.",
	},
	FindingTypeIPHost: {
		Impact:         "Legitimate services rarely link to a bare IP address; disposable phishing hosts often do.",
		Recommendation: "Verify the owner of the address before entering any information.",
	},
	FindingTypeNonASCIIHost: {
		Impact:         "Non-ASCII characters can render identically to Latin letters and impersonate a known brand.",
		Recommendation: "Compare the punycode form of the domain with the expected domain.",
	},
	FindingTypeEntropy: {
		Impact:         "Long or high-entropy URLs are used to hide the real destination behind random-looking paths.",
		Recommendation: "Inspect the full URL and the registered domain before visiting it.",
	},
	FindingTypeQueryParams: {
		Impact:         "Query parameters named after credentials suggest the link collects or replays secrets.",
		Recommendation: "Never submit passwords or card data through a link received by message.",
	},
	FindingTypeML: {
		Impact:         "A local statistical model contributed to the confidence score.",
		Recommendation: "No action needed.",
	},
}

// GetFindingInfo returns the report guidance for a finding type.
// Unknown types get generic guidance.
func GetFindingInfo(findingType string) FindingInfo {
	if info, ok := findingInfoMapping[findingType]; ok {
		return info
	}
	return FindingInfo{
		Impact:         "Unknown finding type. Review manually.",
		Recommendation: "Investigate the finding and assess risk.",
	}
}
