package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/phishscore/internal/config"
	"github.com/nao1215/phishscore/internal/database"
	"github.com/nao1215/phishscore/internal/model"
	"github.com/nao1215/phishscore/internal/report"
)

const (
	safeURL       = "https://www.google.com"
	suspiciousURL = "http://198.51.100.23/secure-login-verify/confirm-token"
)

// executeRoot runs the root command with args and captures its output.
func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// openTestDB opens the database a command wrote under dir.
func openTestDB(t *testing.T, dir string) *database.ScanDB {
	t.Helper()

	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// TestNewScanCmd tests the scan command creation.
func TestNewScanCmd(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "scan [url...]" {
			t.Errorf("expected use 'scan [url...]', got %q", cmd.Use)
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{name: "list", shorthand: "l", defValue: ""},
		{name: "html", defValue: ""},
		{name: "base-url", defValue: ""},
		{name: "batch", shorthand: "b", defValue: "10"},
		{name: "json", shorthand: "j", defValue: "false"},
		{name: "markdown", shorthand: "m", defValue: "false"},
		{name: "output", shorthand: "o", defValue: ""},
		{name: "no-save", defValue: "false"},
		{name: "db-dir", defValue: ""},
		{name: "model-dir", defValue: config.DefaultModelDir},
	}
	for _, tt := range tests {
		t.Run("has "+tt.name+" flag", func(t *testing.T) {
			t.Parallel()
			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("expected %s flag", tt.name)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("expected shorthand %q, got %q", tt.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("expected default %q, got %q", tt.defValue, flag.DefValue)
			}
		})
	}
}

// TestRunScanCmd tests scanning through the CLI.
func TestRunScanCmd(t *testing.T) {
	t.Parallel()

	t.Run("single URL as JSON is recorded", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		stdout, _, err := executeRoot(t, "scan", "--db-dir", dbDir, "--json", safeURL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var result model.ScoreResult
		if err := json.Unmarshal([]byte(stdout), &result); err != nil {
			t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
		}
		if result.URL != safeURL || result.Confidence != 88.0 || result.Status != model.StatusSafe {
			t.Errorf("unexpected result %+v", result)
		}
		if result.MLAvailable {
			t.Error("expected no classifier")
		}

		scans, err := openTestDB(t, dbDir).RecentScans(context.Background(), 0)
		if err != nil {
			t.Fatalf("failed to list scans: %v", err)
		}
		if len(scans) != 1 || scans[0].URL != safeURL || scans[0].Confidence != 88 {
			t.Errorf("unexpected scans %+v", scans)
		}
	})

	t.Run("several URLs as JSON summary", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeRoot(t, "scan", "--db-dir", t.TempDir(), "--json", safeURL, suspiciousURL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var rep report.JSONReport
		if err := json.Unmarshal([]byte(stdout), &rep); err != nil {
			t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
		}
		if rep.Summary == nil || len(rep.Summary.Results) != 2 {
			t.Fatalf("unexpected summary %+v", rep.Summary)
		}
		if rep.Summary.SafeCount != 1 || rep.Summary.SuspiciousCount != 1 {
			t.Errorf("unexpected counts %+v", rep.Summary)
		}
		// Input order is kept.
		if rep.Summary.Results[1].URL != suspiciousURL || rep.Summary.Results[1].Confidence != 57.5 {
			t.Errorf("unexpected second result %+v", rep.Summary.Results[1])
		}
	})

	t.Run("no-save leaves the database empty", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		if _, _, err := executeRoot(t, "scan", "--db-dir", dbDir, "--no-save", safeURL); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dbDir, database.DefaultDBFile)); !os.IsNotExist(err) {
			t.Error("expected no database file")
		}
	})

	t.Run("text report by default", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeRoot(t, "scan", "--db-dir", t.TempDir(), suspiciousURL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"PHISHING SCORE REPORT", "57.5", "Suspicious", "Numeric IP host"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("markdown report to file", func(t *testing.T) {
		t.Parallel()

		outPath := filepath.Join(t.TempDir(), "reports", "scan.md")
		stdout, _, err := executeRoot(t, "scan", "--db-dir", t.TempDir(), "--markdown", "-o", outPath, safeURL, suspiciousURL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != "" {
			t.Errorf("expected nothing on stdout, got %q", stdout)
		}

		info, err := os.Stat(outPath)
		if err != nil {
			t.Fatalf("expected report file: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected permissions 0600, got %o", perm)
		}
		content, _ := os.ReadFile(outPath)
		if !strings.Contains(string(content), "# Phishing Score Report") {
			t.Errorf("unexpected report:\n%s", content)
		}
	})

	t.Run("no targets is an error", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeRoot(t, "scan", "--db-dir", t.TempDir())
		if !errors.Is(err, config.ErrNoTarget) {
			t.Errorf("expected ErrNoTarget, got %v", err)
		}
	})

	t.Run("json and markdown conflict", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeRoot(t, "scan", "--db-dir", t.TempDir(), "--json", "--markdown", safeURL)
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("missing config file is an error", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeRoot(t, "scan", "-c", filepath.Join(t.TempDir(), "missing.yaml"), safeURL)
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid batch size", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeRoot(t, "scan", "--db-dir", t.TempDir(), "-b", "0", safeURL)
		if !errors.Is(err, config.ErrInvalidBatchSize) {
			t.Errorf("expected ErrInvalidBatchSize, got %v", err)
		}
	})
}

// TestScanInputs tests the --list and --html inputs.
func TestScanInputs(t *testing.T) {
	t.Parallel()

	t.Run("list file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		list := filepath.Join(dir, "urls.txt")
		content := "# phishing candidates\n\n" + safeURL + "\n   " + suspiciousURL + "  \n"
		if err := os.WriteFile(list, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		stdout, _, err := executeRoot(t, "scan", "--db-dir", dir, "--json", "-l", list)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var rep report.JSONReport
		if err := json.Unmarshal([]byte(stdout), &rep); err != nil {
			t.Fatalf("invalid JSON output: %v", err)
		}
		if rep.Summary == nil || len(rep.Summary.Results) != 2 {
			t.Fatalf("expected 2 results, got %+v", rep.Summary)
		}
		if rep.Summary.Results[0].URL != safeURL || rep.Summary.Results[1].URL != suspiciousURL {
			t.Errorf("unexpected URLs %+v", rep.Summary.Results)
		}
	})

	t.Run("missing list file", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeRoot(t, "scan", "--db-dir", t.TempDir(), "-l", filepath.Join(t.TempDir(), "nope.txt"))
		if err == nil {
			t.Error("expected error for missing list file")
		}
	})

	t.Run("html file with deceptive link", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		page := filepath.Join(dir, "mail.html")
		doc := `<html><head><title>Your account</title></head><body>
<p>Please confirm at <a href="` + suspiciousURL + `">https://www.mybank.com/login</a></p>
<a href="/help">Help</a>
</body></html>`
		if err := os.WriteFile(page, []byte(doc), 0600); err != nil {
			t.Fatal(err)
		}

		stdout, stderr, err := executeRoot(t, "scan", "--db-dir", dir, "--json",
			"--html", page, "--base-url", "https://mail.example.com/inbox/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var rep report.JSONReport
		if err := json.Unmarshal([]byte(stdout), &rep); err != nil {
			t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
		}
		if rep.Summary == nil || len(rep.Summary.Results) != 2 {
			t.Fatalf("expected 2 results, got %+v", rep.Summary)
		}
		if rep.Summary.Results[1].URL != "https://mail.example.com/help" {
			t.Errorf("expected resolved relative link, got %q", rep.Summary.Results[1].URL)
		}
		if !strings.Contains(stderr, "link text does not match its target") {
			t.Errorf("expected deceptive link warning, got %q", stderr)
		}
	})
}

// TestParseURLList tests the URL list format.
func TestParseURLList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "comments and blanks", input: "# c\n\n  \n", want: nil},
		{name: "trims whitespace", input: "  a  \nb\r\n", want: []string{"a", "b"}},
		{name: "keeps order", input: "c\n# skip\na\nb", want: []string{"c", "a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseURLList(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") || len(got) != len(tt.want) {
				t.Errorf("parseURLList() = %q, want %q", got, tt.want)
			}
		})
	}
}
