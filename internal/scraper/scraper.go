// Package scraper fetches live product pages and extracts raw snapshots.
package scraper

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/jkowalczyk/price-tracker/internal/platform"
	"github.com/jkowalczyk/price-tracker/internal/platform/models"
	"golang.org/x/time/rate"
)

// Option is custom configuration of Scraper.
type Option func(s *Scraper)

// Scraper fetches product pages over http and extracts product snapshots.
// A single shared rate limiter keeps concurrent product pipelines within the
// target's rate tolerance.
type Scraper struct {
	client     *http.Client
	userAgent  string
	limiter    *rate.Limiter
	robots     *robotsGate
	maxRetries int
}

// NewScraper returns new Scraper using client for page fetches.
func NewScraper(client *http.Client, userAgent string, limiter *rate.Limiter, ops ...Option) *Scraper {
	scr := &Scraper{
		client:     client,
		userAgent:  userAgent,
		limiter:    limiter,
		maxRetries: 2,
	}

	for _, op := range ops {
		op(scr)
	}

	return scr
}

// FetchSnapshot fetches url and returns the raw product snapshot extracted
// from the page. All failures wrap platform.ErrScrapeUnavailable: the caller
// treats a failed fetch and a page without product data identically.
func (s *Scraper) FetchSnapshot(ctx context.Context, url string) (*models.RawSnapshot, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", platform.ErrScrapeUnavailable, err)
		}
	}

	if s.robots != nil {
		allowed, err := s.robots.isAllowed(s.userAgent, url)
		if err == nil && !allowed {
			return nil, fmt.Errorf("%w: %w", platform.ErrScrapeUnavailable, ErrRobotsDisallowed)
		}
	}

	body, err := s.fetchPage(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", platform.ErrScrapeUnavailable, err)
	}

	raw := extractProduct(body, url)
	if raw.Title == nil && raw.Price == nil {
		return nil, fmt.Errorf("%w: %w", platform.ErrScrapeUnavailable, ErrNoProductData)
	}

	return raw, nil
}

// fetchPage fetches url with browser-like headers, retrying transient
// failures and server errors with a linear backoff.
func (s *Scraper) fetchPage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("can't build http request: %w", err)
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Encoding", "gzip, br")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("can't get http response: %w", err)
			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("%w: %d", ErrStatusNotOK, resp.StatusCode)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("%w: %d", ErrStatusNotOK, resp.StatusCode)
		}

		body, err := readBody(resp)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		return body, nil
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", s.maxRetries, lastErr)
}

// readBody reads and decompresses an http response body.
func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("can't decompress response: %w", err)
		}
		defer gzReader.Close()
		reader = gzReader
	case "br":
		reader = brotli.NewReader(resp.Body)
	default:
		reader = resp.Body
	}

	return io.ReadAll(reader)
}

// WithRobots makes the Scraper respect robots.txt rules, fetching and
// caching them with client.
func WithRobots(client *http.Client) Option {
	return func(s *Scraper) {
		s.robots = newRobotsGate(client)
	}
}

// WithMaxRetries sets the number of retries of transient fetch failures.
func WithMaxRetries(retries int) Option {
	return func(s *Scraper) {
		s.maxRetries = retries
	}
}
