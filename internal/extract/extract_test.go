package extract

import (
	"strings"
	"testing"
)

// extract is a helper that runs an Extractor over an HTML string.
func extract(t *testing.T, baseURL, doc string) *Result {
	t.Helper()

	e, err := NewExtractor(baseURL)
	if err != nil {
		t.Fatalf("failed to create extractor: %v", err)
	}
	result, err := e.Extract(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("failed to extract: %v", err)
	}
	return result
}

// TestExtract tests link extraction from HTML.
func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and anchors", func(t *testing.T) {
		t.Parallel()

		doc := `<html><head><title> Account notice </title></head><body>
			<a href="https://example.com/login">Sign in</a>
			<a href="http://198.51.100.23/verify">Verify now</a>
		</body></html>`

		result := extract(t, "", doc)
		if result.Title != "Account notice" {
			t.Errorf("expected title 'Account notice', got %q", result.Title)
		}
		got := result.URLs()
		if len(got) != 2 || got[0] != "https://example.com/login" || got[1] != "http://198.51.100.23/verify" {
			t.Errorf("unexpected URLs %v", got)
		}
		if result.Links[0].Source != SourceAnchor || result.Links[0].Text != "Sign in" {
			t.Errorf("unexpected link %+v", result.Links[0])
		}
	})

	t.Run("collects forms frames and areas", func(t *testing.T) {
		t.Parallel()

		doc := `<html><body>
			<form action="https://collect.example/post" method="post"><input name="password"></form>
			<iframe src="https://frame.example/"></iframe>
			<map><area href="https://area.example/x"></map>
		</body></html>`

		result := extract(t, "", doc)
		sources := make(map[string]string)
		for _, l := range result.Links {
			sources[l.URL] = l.Source
		}
		if sources["https://collect.example/post"] != SourceForm {
			t.Errorf("expected form link, got %v", sources)
		}
		if sources["https://frame.example/"] != SourceFrame {
			t.Errorf("expected frame link, got %v", sources)
		}
		if sources["https://area.example/x"] != SourceArea {
			t.Errorf("expected area link, got %v", sources)
		}
	})

	t.Run("finds bare URLs in text", func(t *testing.T) {
		t.Parallel()

		doc := `<p>Reset your password at https://reset.example/pw?token=1. Thanks!</p>`

		got := extract(t, "", doc).URLs()
		if len(got) != 1 || got[0] != "https://reset.example/pw?token=1" {
			t.Errorf("unexpected URLs %v", got)
		}
	})

	t.Run("ignores script contents", func(t *testing.T) {
		t.Parallel()

		doc := `<script>var u = "https://tracker.example/";</script><p>nothing</p>`

		if got := extract(t, "", doc).URLs(); len(got) != 0 {
			t.Errorf("expected no URLs, got %v", got)
		}
	})

	t.Run("deduplicates in document order", func(t *testing.T) {
		t.Parallel()

		doc := `<a href="https://a.example/">one</a>
			<a href="https://b.example/">two</a>
			<a href="https://a.example/">again</a>
			<p>https://b.example/</p>`

		got := extract(t, "", doc).URLs()
		if len(got) != 2 || got[0] != "https://a.example/" || got[1] != "https://b.example/" {
			t.Errorf("unexpected URLs %v", got)
		}
	})
}

// TestResolveURL tests link filtering and resolution.
func TestResolveURL(t *testing.T) {
	t.Parallel()

	withBase, err := NewExtractor("https://mail.example/inbox/msg")
	if err != nil {
		t.Fatalf("failed to create extractor: %v", err)
	}
	noBase, err := NewExtractor("")
	if err != nil {
		t.Fatalf("failed to create extractor: %v", err)
	}

	tests := []struct {
		name      string
		extractor *Extractor
		href      string
		want      string
	}{
		{"absolute https", noBase, "https://example.com/a", "https://example.com/a"},
		{"whitespace trimmed", noBase, "  https://example.com/a  ", "https://example.com/a"},
		{"relative without base", noBase, "/login", ""},
		{"relative with base", withBase, "../login", "https://mail.example/login"},
		{"fragment", withBase, "#top", ""},
		{"empty", withBase, "", ""},
		{"mailto", withBase, "mailto:a@example.com", ""},
		{"javascript", withBase, "javascript:void(0)", ""},
		{"tel", withBase, "tel:+1234567890", ""},
		{"data", withBase, "data:text/html;base64,PGgxPg==", ""},
		{"ftp", noBase, "ftp://files.example/x", ""},
		{"upper-case scheme", noBase, "HTTP://example.com/", "http://example.com/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.extractor.resolveURL(tt.href); got != tt.want {
				t.Errorf("resolveURL(%q) = %q, expected %q", tt.href, got, tt.want)
			}
		})
	}
}

// TestDeceptiveLinks tests detection of anchors whose text names another host.
func TestDeceptiveLinks(t *testing.T) {
	t.Parallel()

	doc := `<body>
		<a href="http://paypal.com.account-update.example.net/signin">https://www.paypal.com/signin</a>
		<a href="https://evil.example/">bank.example</a>
		<a href="https://example.com/help">example.com</a>
		<a href="https://www.example.com/help">example.com</a>
		<a href="https://login.example.co.uk/">www.example.co.uk</a>
		<a href="https://example.co.uk.attacker.example/">example.co.uk</a>
		<a href="https://10.0.0.1/">10.0.0.2</a>
		<a href="https://example.org/">Click here</a>
	</body>`

	result := extract(t, "", doc)
	deceptive := result.DeceptiveLinks()
	var texts []string
	for _, l := range deceptive {
		texts = append(texts, l.Text)
	}
	expected := []string{"https://www.paypal.com/signin", "bank.example", "example.co.uk", "10.0.0.2"}
	if strings.Join(texts, "|") != strings.Join(expected, "|") {
		t.Errorf("deceptive link texts = %q, expected %q", texts, expected)
	}
}

// TestNewExtractorInvalidBase tests that a malformed base URL is rejected.
func TestNewExtractorInvalidBase(t *testing.T) {
	t.Parallel()

	if _, err := NewExtractor("://invalid-url"); err == nil {
		t.Error("expected error for invalid base URL")
	}
}
