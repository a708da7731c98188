package model

// ParsedURL is the normalized view of a submitted URL.
// It is owned by a single scoring invocation and recomputed on every call.
type ParsedURL struct {
	// Raw is the URL exactly as submitted.
	Raw string

	// Lowered is the full URL with Unicode lower-case mapping applied.
	Lowered string

	// Scheme is the URL scheme without "://", lower-cased.
	Scheme string

	// Host is the hostname only (no port, no credentials), lower-cased.
	// When the URL cannot be parsed or has no hostname, Host is Raw.
	Host string

	// Path is the URL path.
	Path string

	// Query is the raw query string without the leading "?".
	Query string

	// Degraded is true when structural parsing failed and Host fell back
	// to the raw input.
	Degraded bool

	// RegisteredDomain is the eTLD+1 of Host, empty when not derivable.
	// It does not affect the score.
	RegisteredDomain string

	// PunycodeHost is the ASCII-compatible form of Host, empty when Host
	// is already ASCII or cannot be converted. Informational only.
	PunycodeHost string
}
