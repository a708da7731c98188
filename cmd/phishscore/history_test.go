package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/nao1215/phishscore/internal/model"
)

// TestRunReportCmd tests recording user reports.
func TestRunReportCmd(t *testing.T) {
	t.Parallel()

	t.Run("records a report with note", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		stdout, _, err := executeRoot(t, "report", "--db-dir", dbDir, suspiciousURL, "--note", "fake invoice mail")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Reported "+suspiciousURL) {
			t.Errorf("unexpected output %q", stdout)
		}

		stdout, _, err = executeRoot(t, "history", "--db-dir", dbDir, "--reports", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var got struct {
			Reports []model.UserReport `json:"reports"`
		}
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
		}
		if len(got.Reports) != 1 || got.Reports[0].URL != suspiciousURL || got.Reports[0].Note != "fake invoice mail" {
			t.Errorf("unexpected reports %+v", got.Reports)
		}
	})

	t.Run("requires exactly one URL", func(t *testing.T) {
		t.Parallel()

		if _, _, err := executeRoot(t, "report", "--db-dir", t.TempDir()); err == nil {
			t.Error("expected error without URL")
		}
	})

	t.Run("rejects blank URL", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeRoot(t, "report", "--db-dir", t.TempDir(), "  ")
		if err == nil || err.Error() != errEmptyReportURL.Error() {
			t.Errorf("expected errEmptyReportURL, got %v", err)
		}
	})
}

// TestRunHistoryCmd tests listing stored scans.
func TestRunHistoryCmd(t *testing.T) {
	t.Parallel()

	dbDir := t.TempDir()
	if _, _, err := executeRoot(t, "scan", "--db-dir", dbDir, safeURL, suspiciousURL, suspiciousURL); err != nil {
		t.Fatalf("failed to seed scans: %v", err)
	}

	t.Run("recent scans as table", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeRoot(t, "history", "--db-dir", dbDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Recent scans (3)", safeURL, suspiciousURL, "Suspicious", "88"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected output to contain %q\n%s", want, stdout)
			}
		}
	})

	t.Run("one URL as JSON", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeRoot(t, "history", "--db-dir", dbDir, "--json", suspiciousURL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var got struct {
			Scans []model.ScanRecord `json:"scans"`
		}
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
		}
		if len(got.Scans) != 2 {
			t.Fatalf("expected 2 scans, got %d", len(got.Scans))
		}
		for _, s := range got.Scans {
			if s.URL != suspiciousURL || s.Confidence != 57 || s.Status != model.StatusSuspicious {
				t.Errorf("unexpected scan %+v", s)
			}
		}
	})

	t.Run("limit", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeRoot(t, "history", "--db-dir", dbDir, "--json", "-n", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var got struct {
			Scans []model.ScanRecord `json:"scans"`
		}
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("invalid JSON output: %v", err)
		}
		if len(got.Scans) != 1 {
			t.Errorf("expected 1 scan, got %d", len(got.Scans))
		}
	})

	t.Run("unknown URL", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeRoot(t, "history", "--db-dir", dbDir, "https://never.example")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No scan history found for https://never.example") {
			t.Errorf("unexpected output %q", stdout)
		}
	})

	t.Run("empty reports as JSON array", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeRoot(t, "history", "--db-dir", dbDir, "--reports", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, `"reports": []`) {
			t.Errorf("expected empty array, got %q", stdout)
		}
	})
}

// TestTruncate tests rune-aware truncation of table cells.
func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{in: "short", maxLen: 10, want: "short"},
		{in: "exactly10!", maxLen: 10, want: "exactly10!"},
		{in: "https://example.com/long", maxLen: 10, want: "https:/..."},
		{in: "пример.рф/путь", maxLen: 8, want: "приме..."},
		{in: "abcdef", maxLen: 2, want: "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := truncate(tt.in, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
			}
		})
	}
}
