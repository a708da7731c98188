package normalize

import (
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/phishscore/internal/model"
)

// unsafeURLChars are removed anywhere in a URL before parsing.
var unsafeURLChars = strings.NewReplacer("\t", "", "\r", "", "\n", "")

// Parse normalizes a raw URL string. It never fails.
//
// Before parsing, leading C0 control and space characters are trimmed and
// tab, CR and LF are removed anywhere, the way browsers read a link. Raw
// and Lowered keep the input as submitted.
//
// Host is the hostname only, lower-cased, without port or credentials.
// If the string does not parse, or parses without a hostname (for example
// "example.com/login" with no scheme), Host is the raw string itself.
func Parse(raw string) model.ParsedURL {
	p := model.ParsedURL{
		Raw:     raw,
		Lowered: Lower(raw),
	}

	cleaned := Clean(raw)
	u, err := url.Parse(cleaned)
	if err != nil {
		p.Degraded = true
		p.Host = raw
		p.Scheme, p.Path, p.Query = splitLenient(cleaned)
		return p
	}

	p.Scheme = strings.ToLower(u.Scheme)
	p.Path = u.Path
	p.Query = u.RawQuery

	host := u.Hostname()
	if host == "" {
		p.Host = raw
	} else {
		p.Host = Lower(host)
		p.RegisteredDomain = registeredDomain(p.Host)
		p.PunycodeHost = punycode(p.Host)
	}

	return p
}

// Clean returns raw with leading C0 control or space characters trimmed
// and every tab, CR and LF removed.
func Clean(raw string) string {
	trimmed := strings.TrimLeftFunc(raw, func(r rune) bool {
		return r <= 0x20
	})
	return unsafeURLChars.Replace(trimmed)
}

// RegisteredDomain returns the eTLD+1 of a hostname, or "" when it has
// none (IP addresses, bare public suffixes).
func RegisteredDomain(host string) string {
	return registeredDomain(Lower(host))
}

// Lower applies full Unicode lower-case mapping.
// A Caser is stateful, so each call builds its own.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// splitLenient extracts scheme, path and query from a string url.Parse
// rejected. It only looks at delimiters and never fails.
func splitLenient(raw string) (scheme, path, query string) {
	rest := raw
	if i := strings.Index(rest, "#"); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.Index(rest, "?"); i >= 0 {
		query = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.Index(rest, "://"); i > 0 {
		scheme = strings.ToLower(rest[:i])
		rest = rest[i+3:]
		if j := strings.Index(rest, "/"); j >= 0 {
			path = rest[j:]
		}
		return scheme, path, query
	}
	return "", rest, query
}

// registeredDomain returns the eTLD+1 of host, or "" when host is an IP
// address, a bare public suffix, or otherwise has no registrable domain.
func registeredDomain(host string) string {
	if isIPLiteral(host) {
		return ""
	}
	d, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	return d
}

// punycode returns the ASCII-compatible form of a non-ASCII host.
// ASCII hosts and hosts idna rejects yield "".
func punycode(host string) string {
	if isASCII(host) {
		return ""
	}
	a, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return ""
	}
	return a
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}

// isIPLiteral reports whether host is an IPv6 literal or ends in an
// all-digit label. No top-level domain is numeric, so the latter covers
// dotted quads written in any script.
func isIPLiteral(host string) bool {
	if strings.Contains(host, ":") {
		return true
	}
	last := host[strings.LastIndex(host, ".")+1:]
	if last == "" {
		return false
	}
	for _, r := range last {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
