package model

import (
	"encoding/hex"
	"time"

	"golang.org/x/crypto/sha3"
)

// TimestampFormat is the ISO-8601 layout used for stored timestamps.
// Timestamps carry no zone suffix and always six fractional digits, so
// they sort lexically alongside rows written by older deployments.
const TimestampFormat = "2006-01-02T15:04:05.000000"

// ScanRecord is the append-only record of one scan handed to storage.
type ScanRecord struct {
	// ID is assigned by the store; zero before insertion.
	ID int64 `json:"id,omitempty"`

	// URL is the submitted URL.
	URL string `json:"url"`

	// URLHash is the hex SHA3-256 of URL, used for indexed history lookups.
	URLHash string `json:"url_hash"`

	// Confidence is the final confidence truncated to an integer.
	Confidence int `json:"confidence"`

	// Status is the status label.
	Status Status `json:"status"`

	// Findings are the reasons; serialized as JSON text in storage.
	Findings []Finding `json:"reasons"`

	// CreatedAt is when the scan was performed, in UTC.
	CreatedAt time.Time `json:"created_at"`
}

// NewScanRecord builds the storage record for a scan result.
func NewScanRecord(result ScoreResult, now time.Time) *ScanRecord {
	return &ScanRecord{
		URL:        result.URL,
		URLHash:    HashURL(result.URL),
		Confidence: int(result.Confidence),
		Status:     result.Status,
		Findings:   result.Findings,
		CreatedAt:  now.UTC(),
	}
}

// UserReport is a user-submitted report about a URL.
type UserReport struct {
	ID        int64     `json:"id,omitempty"`
	URL       string    `json:"url"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserReport builds a report record stamped with the given time.
func NewUserReport(url, note string, now time.Time) *UserReport {
	return &UserReport{
		URL:       url,
		Note:      note,
		CreatedAt: now.UTC(),
	}
}

// HashURL returns the hex SHA3-256 digest of a URL.
func HashURL(url string) string {
	sum := sha3.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// FormatTimestamp formats a time in the stored ISO-8601 layout (UTC).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}
