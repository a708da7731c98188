package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/nao1215/phishscore/internal/model"
)

// defaultScanLimit is the number of records /scans returns without ?limit.
const defaultScanLimit = 50

// errStoreDisabled is returned by routes that need a store when none is set.
var errStoreDisabled = errors.New("storage is disabled")

// scanRequest is the body of POST /scan.
type scanRequest struct {
	URL string `json:"url"`
}

// reportRequest is the body of POST /report.
type reportRequest struct {
	URL  string `json:"url"`
	Note string `json:"note"`
}

// handleScan scores the submitted URL. A missing url field scores as
// empty input.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result := s.engine.ScanAndRecord(r.Context(), req.URL)
	writeJSON(w, http.StatusOK, result)
}

// handleReport appends a user report.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if s.store == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "error": errStoreDisabled.Error()})
		return
	}

	rep := model.NewUserReport(req.URL, req.Note, s.now())
	if err := s.store.RecordReport(r.Context(), rep); err != nil {
		s.logger.Error("failed to store report", "url", req.URL, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

// handleScans lists recent scan records, newest first.
func (s *Server) handleScans(w http.ResponseWriter, r *http.Request) {
	limit := defaultScanLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": errStoreDisabled.Error()})
		return
	}

	records, err := s.store.RecentScans(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list scans", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list scans"})
		return
	}
	if records == nil {
		records = []model.ScanRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"scans": records})
}

// handleHealthz reports liveness and whether a classifier is loaded.
// The model name is included only when one is.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	body := map[string]any{
		"status":       "ok",
		"ml_available": s.engine.ClassifierAvailable(),
	}
	if name := s.engine.ClassifierName(); name != "" {
		body["model"] = name
	}
	writeJSON(w, http.StatusOK, body)
}

// decodeJSON decodes a bounded JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid JSON body: " + err.Error())
	}
	return nil
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
