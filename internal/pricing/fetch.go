// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pricing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// =============================================================================
// FETCHER
// =============================================================================

// Fetcher returns the text body of a pricing page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Fetch errors
var (
	ErrTooManyRedirects = errors.New("too many redirects")
	ErrResponseTooLarge = errors.New("response body too large")
	ErrSelectorMiss     = errors.New("selector matched no elements")
	ErrNoMatch          = errors.New("price pattern did not match")
)

// StatusError is returned for a final response outside 2xx.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.Code)
}

const (
	// DefaultTimeout bounds a single pricing page fetch
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRedirects is the number of redirects followed
	DefaultMaxRedirects = 3
	// DefaultMaxResponseSize caps the body read from a pricing page
	DefaultMaxResponseSize = 5 * 1024 * 1024
	// DefaultUserAgent identifies the tracker to pricing sites
	DefaultUserAgent = "scriptkit-cost-tracker/1.0"
)

// HTTPFetcher fetches pricing pages over HTTP(S).
type HTTPFetcher struct {
	// Timeout bounds each fetch, redirects included
	Timeout time.Duration

	// MaxRedirects is the maximum number of redirects to follow
	MaxRedirects int

	// MaxResponseSize is the maximum body size in bytes
	MaxResponseSize int64

	// UserAgent is the User-Agent header to send
	UserAgent string

	client *http.Client
}

// NewHTTPFetcher creates a fetcher with the default limits.
func NewHTTPFetcher() *HTTPFetcher {
	f := &HTTPFetcher{
		Timeout:         DefaultTimeout,
		MaxRedirects:    DefaultMaxRedirects,
		MaxResponseSize: DefaultMaxResponseSize,
		UserAgent:       DefaultUserAgent,
	}
	f.client = f.newClient()
	return f
}

// newClient builds the client. CheckRedirect reads f.MaxRedirects per
// request, so changes after construction apply.
func (f *HTTPFetcher) newClient() *http.Client {
	return &http.Client{
		// len(via) counts the requests already made, so it is the redirect count
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > f.MaxRedirects {
				return ErrTooManyRedirects
			}
			return nil
		},
	}
}

// Fetch performs a GET and returns the body. Any final status outside 2xx is
// an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.client == nil {
		f.client = f.newClient()
	}
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return "", &StatusError{URL: url, Code: resp.StatusCode}
	}

	limit := f.MaxResponseSize
	if limit <= 0 {
		limit = DefaultMaxResponseSize
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	if int64(len(body)) > limit {
		return "", ErrResponseTooLarge
	}
	return string(body), nil
}

// =============================================================================
// BODY NARROWING
// =============================================================================

// SelectText parses body as HTML and returns the text of the elements
// matched by selector, joined by newlines.
func SelectText(body, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: %q", ErrSelectorMiss, selector)
	}

	parts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, s.Text())
	})
	return strings.Join(parts, "\n"), nil
}
