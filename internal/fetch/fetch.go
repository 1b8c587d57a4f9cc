// Package fetch retrieves profile pages over HTTP, falling back to a headless
// browser for pages rendered client-side.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; CVParser/1.0)"

// MaxPageBytes caps the size of a fetched page.
const MaxPageBytes = 5 << 20

// Result holds the raw content from a URL fetch.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
	Rendered    bool
}

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
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	// Browser enables the headless fallback in Page.
	Browser bool
	Verbose bool
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Renderer returns the HTML of a page after client-side rendering.
type Renderer func(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error)

// URL retrieves HTML content from a URL.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if err := validateURL(urlStr); err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, MaxPageBytes+1))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}
	if len(bodyBytes) > MaxPageBytes {
		return nil, &Error{URL: urlStr, Message: fmt.Sprintf("page exceeds %d bytes", MaxPageBytes)}
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode != http.StatusOK {
		return result, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	return result, nil
}

// Page fetches a profile page. When the static HTML carries no profile
// markup and opts.Browser is set, the page is rendered with render instead.
// A nil render uses WithBrowser.
func Page(ctx context.Context, urlStr string, opts *Options, render Renderer) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if render == nil {
		render = WithBrowser
	}

	result, err := URL(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}
	if !opts.Browser || !ShouldUseBrowser(result.HTML) {
		return result, nil
	}

	if opts.Verbose {
		log.Printf("[fetch] no profile markup in %s, rendering with browser", urlStr)
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	html, err := render(ctx, urlStr, timeout, opts.Verbose)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "browser rendering failed", Cause: err}
	}

	return &Result{
		URL:         urlStr,
		HTML:        html,
		ContentType: "text/html",
		StatusCode:  result.StatusCode,
		Rendered:    true,
	}, nil
}

func validateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" {
		return &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return nil
	}
	return &Error{URL: urlStr, Message: "invalid URL", Cause: fmt.Errorf("unsupported scheme %q", parsed.Scheme)}
}
