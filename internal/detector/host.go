package detector

import (
	"regexp"

	"github.com/nao1215/phishscore/internal/model"
)

// Host penalties.
const (
	IPHostPenalty       = 25.0
	NonASCIIHostPenalty = 15.0
)

// ipHostPattern matches a dotted quad. Octet ranges are not checked, so
// "999.1.1.1" still counts as numeric. Any Unicode decimal digit counts,
// which catches hosts such as "١٢٣.1.1.1".
var ipHostPattern = regexp.MustCompile(`^\p{Nd}{1,3}(?:\.\p{Nd}{1,3}){3}$`)

// IPHostDetector flags hosts written as a numeric IPv4 address.
type IPHostDetector struct{}

// NewIPHostDetector creates an IPHostDetector.
func NewIPHostDetector() *IPHostDetector {
	return &IPHostDetector{}
}

// Name returns the detector name.
func (d *IPHostDetector) Name() string {
	return "ip_host"
}

// Detect reports a finding when the whole host is a dotted quad of decimal
// digits.
func (d *IPHostDetector) Detect(u model.ParsedURL) (model.Finding, bool) {
	if !ipHostPattern.MatchString(u.Host) {
		return model.Finding{}, false
	}
	return model.Finding{
		Type:    model.FindingTypeIPHost,
		Title:   "Numeric IP host",
		Detail:  "Host appears to be an IP address (common in disposable phishing).",
		Penalty: IPHostPenalty,
	}, true
}

// NonASCIIHostDetector flags hosts containing any non-ASCII character.
// No confusable-character table is consulted.
type NonASCIIHostDetector struct{}

// NewNonASCIIHostDetector creates a NonASCIIHostDetector.
func NewNonASCIIHostDetector() *NonASCIIHostDetector {
	return &NonASCIIHostDetector{}
}

// Name returns the detector name.
func (d *NonASCIIHostDetector) Name() string {
	return "non_ascii_host"
}

// Detect reports a finding when any rune of the host is above 127.
func (d *NonASCIIHostDetector) Detect(u model.ParsedURL) (model.Finding, bool) {
	if !containsNonASCII(u.Host) {
		return model.Finding{}, false
	}

	detail := "Domain contains non-ASCII characters which may be used to impersonate brands."
	if u.PunycodeHost != "" {
		detail += " Punycode form: " + u.PunycodeHost
	}

	return model.Finding{
		Type:    model.FindingTypeNonASCIIHost,
		Title:   "Non-ASCII / homoglyphs",
		Detail:  detail,
		Penalty: NonASCIIHostPenalty,
	}, true
}

func containsNonASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return true
		}
	}
	return false
}
