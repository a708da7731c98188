package extract

import (
	"io"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/nao1215/phishscore/internal/normalize"
)

// Link sources.
const (
	SourceAnchor = "a"
	SourceArea   = "area"
	SourceForm   = "form"
	SourceFrame  = "iframe"
	SourceText   = "text"
)

// Link is one URL found in a document.
type Link struct {
	// URL is the absolute URL.
	URL string

	// Source is the element the link came from, or "text" for bare URLs.
	Source string

	// Text is the visible anchor text, if any.
	Text string

	// Deceptive is set when the anchor text itself looks like a URL whose
	// host differs from the link target, a common trick in phishing mail.
	Deceptive bool
}

// Result contains the links extracted from a document.
type Result struct {
	// Title is the document title from the <title> tag.
	Title string

	// Links are the unique links in document order.
	Links []Link
}

// URLs returns the extracted URLs in document order.
func (r *Result) URLs() []string {
	urls := make([]string, len(r.Links))
	for i, l := range r.Links {
		urls[i] = l.URL
	}
	return urls
}

// DeceptiveLinks returns the links whose anchor text names another host.
func (r *Result) DeceptiveLinks() []Link {
	var out []Link
	for _, l := range r.Links {
		if l.Deceptive {
			out = append(out, l)
		}
	}
	return out
}

// bareURLRegex matches http(s) URLs written as plain text.
var bareURLRegex = regexp.MustCompile(`(?i)\bhttps?://[^\s"'<>]+`)

// Extractor extracts links from HTML content.
//
// Design decision: We use golang.org/x/net/html for parsing rather than
// regex because:
//  1. It correctly handles the malformed HTML common in e-mail bodies
//  2. Attribute values are decoded for us
//  3. Anchor text can be related to its href
type Extractor struct {
	// baseURL resolves relative links. When nil, relative links are dropped.
	baseURL *url.URL
}

// NewExtractor creates an Extractor. baseURL may be empty, in which case
// only absolute links are kept.
func NewExtractor(baseURL string) (*Extractor, error) {
	if baseURL == "" {
		return &Extractor{}, nil
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Extractor{baseURL: u}, nil
}

// Extract parses HTML content and returns the links it contains.
func (e *Extractor) Extract(content io.Reader) (*Result, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	c := &collector{extractor: e, result: &Result{Links: make([]Link, 0)}, seen: make(map[string]bool)}
	c.walk(doc)
	return c.result, nil
}

// collector accumulates links during one tree walk.
type collector struct {
	extractor *Extractor
	result    *Result
	seen      map[string]bool
}

func (c *collector) walk(n *html.Node) {
	switch n.Type {
	case html.ElementNode:
		if c.processElement(n) {
			// Anchor text was consumed; bare URLs inside it are the same link
			// or a deceptive label, never a separate target.
			return
		}
	case html.TextNode:
		for _, m := range bareURLRegex.FindAllString(n.Data, -1) {
			c.add(Link{URL: strings.TrimRight(m, ".,;:!?)"), Source: SourceText})
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.walk(child)
	}
}

// processElement handles element nodes. It returns true when the children
// of n must not be walked.
func (c *collector) processElement(n *html.Node) bool {
	switch n.Data {
	case "title":
		if c.result.Title == "" {
			c.result.Title = strings.TrimSpace(textContent(n))
		}
		return true

	case "a":
		href := c.extractor.resolveURL(getAttr(n, "href"))
		if href == "" {
			return false
		}
		text := strings.TrimSpace(textContent(n))
		c.add(Link{URL: href, Source: SourceAnchor, Text: text, Deceptive: isDeceptive(text, href)})
		return true

	case "area":
		c.add(Link{URL: c.extractor.resolveURL(getAttr(n, "href")), Source: SourceArea})

	case "form":
		c.add(Link{URL: c.extractor.resolveURL(getAttr(n, "action")), Source: SourceForm})

	case "iframe", "frame":
		c.add(Link{URL: c.extractor.resolveURL(getAttr(n, "src")), Source: SourceFrame})

	case "script", "style":
		return true
	}
	return false
}

// add appends the link unless it is empty or already seen.
func (c *collector) add(l Link) {
	if l.URL == "" || c.seen[l.URL] {
		return
	}
	c.seen[l.URL] = true
	c.result.Links = append(c.result.Links, l)
}

// resolveURL resolves href against the base URL and keeps only http(s)
// results. It returns "" for links that cannot be scored.
func (e *Extractor) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if !u.IsAbs() {
		if e.baseURL == nil {
			return ""
		}
		u = e.baseURL.ResolveReference(u)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.String()
	default:
		return ""
	}
}

// isDeceptive reports whether anchor text shows a URL or domain that points
// somewhere other than href. Hosts under the same registered domain, such
// as "example.com" and "www.example.com", are treated as the same site.
func isDeceptive(text, href string) bool {
	text = strings.TrimSpace(text)
	if text == "" || strings.ContainsAny(text, " \t\n") {
		return false
	}
	if !strings.Contains(text, "://") {
		if !strings.Contains(text, ".") {
			return false
		}
		text = "http://" + text
	}

	shown, err := url.Parse(text)
	if err != nil || shown.Hostname() == "" {
		return false
	}
	target, err := url.Parse(href)
	if err != nil {
		return false
	}

	return !sameSite(shown.Hostname(), target.Hostname())
}

// sameSite compares registered domains, falling back to the full hostnames
// when either has none.
func sameSite(a, b string) bool {
	da, db := normalize.RegisteredDomain(a), normalize.RegisteredDomain(b)
	if da != "" && db != "" {
		return da == db
	}
	return strings.EqualFold(a, b)
}

// textContent returns the concatenated text below n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
