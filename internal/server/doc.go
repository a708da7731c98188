// Package server exposes the scan engine over HTTP.
//
// Routes:
//
//	POST /scan     {"url": "..."}               -> score result
//	POST /report   {"url": "...", "note": "..."} -> 201 {"status": "ok"}
//	GET  /scans    ?limit=N                     -> recent scan records
//	GET  /healthz                               -> {"status": "ok"}
//	GET  /metrics                               -> Prometheus exposition
//
// Every response carries an X-Request-ID header and CORS headers for the
// configured origins. Authentication is out of scope; deploy behind a
// gateway when the API must not be public.
package server
