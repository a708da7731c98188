// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic sanitization of sensitive values (cookies, tokens, secrets)
//   - Redaction of credential query parameters inside logged URLs
//   - Configurable log levels with verbose mode support
//   - Text, JSON and colorized terminal output behind one slog API
//
// # Security Features
//
// The SecureHandler automatically sanitizes sensitive information in log output:
//   - HTTP headers (Authorization, Cookie, Set-Cookie, X-Api-Key)
//   - Secret values detected by pattern matching (bearer tokens, JWTs, keys)
//   - Query parameters such as token, password, session or cvv in URLs
//   - Passwords embedded in URL userinfo
//
// Phishing links frequently carry a victim's session token or password in
// the query string. Even in verbose mode, those values are masked so that
// logs of scanned URLs can be shared safely.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	logger.Info("scanned URL",
//	    "url", "https://example.com/login?token=abc", // token value is masked
//	)
//
//	slog.SetDefault(logger)
package log
