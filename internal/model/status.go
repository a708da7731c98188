package model

import "fmt"

// Status is the three-way classification of a scanned URL.
// It is derived from the final confidence by fixed thresholds.
//
// Design decision: We use iota-based constants rather than string constants
// so that statuses can be compared and ordered by risk. The text form is
// produced by String() and MarshalText() so JSON and database records carry
// the human-readable label.
type Status int

const (
	// StatusDangerous indicates a confidence below 50.
	// The URL shows several phishing traits and should not be visited.
	StatusDangerous Status = iota

	// StatusSuspicious indicates a confidence in [50, 80).
	// Some phishing traits were found; the URL warrants caution.
	StatusSuspicious

	// StatusSafe indicates a confidence of 80 or more.
	StatusSafe
)

// Status labels as they appear in API responses and stored records.
const (
	statusTextDangerous  = "Dangerous"
	statusTextSuspicious = "Suspicious"
	statusTextSafe       = "Safe"
)

// String returns the label of the status.
func (s Status) String() string {
	switch s {
	case StatusDangerous:
		return statusTextDangerous
	case StatusSuspicious:
		return statusTextSuspicious
	case StatusSafe:
		return statusTextSafe
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case StatusDangerous, StatusSuspicious, StatusSafe:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("invalid status value: %d", int(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus converts a status label back into a Status.
func ParseStatus(label string) (Status, error) {
	switch label {
	case statusTextDangerous:
		return StatusDangerous, nil
	case statusTextSuspicious:
		return StatusSuspicious, nil
	case statusTextSafe:
		return StatusSafe, nil
	default:
		return StatusDangerous, fmt.Errorf("unknown status %q", label)
	}
}

// AllStatuses returns every status ordered from most to least risky.
func AllStatuses() []Status {
	return []Status{StatusDangerous, StatusSuspicious, StatusSafe}
}
