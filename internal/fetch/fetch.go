// Package fetch retrieves Terms-of-Service pages and reduces them to visible
// text. Plain HTTP fetching is the default; JavaScript-rendered pages can
// fall back to a headless browser.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DefaultTimeout is the per-request HTTP timeout.
const DefaultTimeout = 20 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; TosMonitor/1.0; +https://github.com/jonathan/tos-monitor)"

// DefaultMaxAttempts is the total number of fetch attempts per URL.
const DefaultMaxAttempts = 3

// DefaultRetryDelay is the initial delay before a retry; it doubles after
// every failed attempt.
const DefaultRetryDelay = 2 * time.Second

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout     time.Duration
	UserAgent   string
	MaxAttempts int
	RetryDelay  time.Duration
	// UseBrowser enables headless browser rendering for pages that return
	// too little visible text over plain HTTP (requires Chrome/Chromium).
	UseBrowser bool
	Verbose    bool
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxAttempts: DefaultMaxAttempts,
		RetryDelay:  DefaultRetryDelay,
	}
}

// Client fetches ToS pages.
type Client struct {
	opts *Options
	http *http.Client
}

// NewClient creates a fetch client.
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	return &Client{
		opts: opts,
		http: &http.Client{Timeout: opts.Timeout},
	}
}

// Fetch retrieves a URL and returns its visible text content. Transport
// errors and 5xx responses are retried a small fixed number of times with
// doubling backoff; all other failures are surfaced immediately.
func (c *Client) Fetch(ctx context.Context, urlStr string) (string, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	htmlBody, err := c.fetchWithRetry(ctx, urlStr)
	if err != nil {
		return "", err
	}

	text, err := ExtractText(htmlBody)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to parse HTML", Cause: err}
	}

	// Pages that render their content with JavaScript return a nearly empty
	// body over plain HTTP.
	if c.opts.UseBrowser && looksEmpty(text) {
		rendered, rerr := renderWithBrowser(ctx, urlStr, c.opts.Timeout, c.opts.Verbose)
		if rerr == nil {
			if renderedText, terr := ExtractText(rendered); terr == nil && !looksEmpty(renderedText) {
				return renderedText, nil
			}
		}
	}

	return text, nil
}

// fetchWithRetry performs the HTTP GET attempts.
func (c *Client) fetchWithRetry(ctx context.Context, urlStr string) (string, error) {
	delay := c.opts.RetryDelay
	var lastErr error

	for attempt := 1; attempt <= c.opts.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", &Error{URL: urlStr, Message: "fetch canceled", Cause: ctx.Err()}
			case <-time.After(delay):
			}
			delay *= 2
		}

		body, status, err := c.fetchOnce(ctx, urlStr)
		switch {
		case err != nil:
			lastErr = &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
		case status >= 500:
			lastErr = &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", status)}
		case status != http.StatusOK:
			// Client errors will not improve with retries.
			return "", &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", status)}
		default:
			return body, nil
		}
	}
	return "", lastErr
}

func (c *Client) fetchOnce(ctx context.Context, urlStr string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, err
	}
	return string(body), resp.StatusCode, nil
}

// ExtractText parses HTML and returns the visible text, one text node per
// line with surrounding whitespace trimmed. Script, style and noscript
// content is dropped.
func ExtractText(htmlBody string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var lines []string
	for _, node := range root.Nodes {
		collectText(node, &lines)
	}
	return strings.Join(lines, "\n"), nil
}

// collectText appends the trimmed content of every text node under n.
func collectText(n *html.Node, lines *[]string) {
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			*lines = append(*lines, text)
		}
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, lines)
	}
}

// minVisibleTextLength is the extracted length below which a page is assumed
// to be a JavaScript-rendered shell.
const minVisibleTextLength = 200

func looksEmpty(text string) bool {
	return len(strings.TrimSpace(text)) < minVisibleTextLength
}
