package scraper

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// robotsGate caches robots.txt rules per host.
type robotsGate struct {
	client   *http.Client
	cacheTTL time.Duration

	mu     sync.Mutex
	rules  map[string]*robotstxt.RobotsData
	expiry map[string]time.Time
}

func newRobotsGate(client *http.Client) *robotsGate {
	return &robotsGate{
		client:   client,
		cacheTTL: time.Hour,
		rules:    make(map[string]*robotstxt.RobotsData),
		expiry:   make(map[string]time.Time),
	}
}

// isAllowed checks whether rawURL may be fetched by userAgent. When
// robots.txt itself cannot be fetched the request is allowed.
func (g *robotsGate) isAllowed(userAgent, rawURL string) (bool, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("can't parse url: %w", err)
	}

	data, err := g.rulesFor(parsed.Scheme + "://" + parsed.Host)
	if err != nil {
		return true, nil
	}

	return data.FindGroup(userAgent).Test(parsed.Path), nil
}

func (g *robotsGate) rulesFor(origin string) (*robotstxt.RobotsData, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if data, ok := g.rules[origin]; ok && time.Now().Before(g.expiry[origin]) {
		return data, nil
	}

	resp, err := g.client.Get(origin + "/robots.txt")
	if err != nil {
		return nil, fmt.Errorf("can't fetch robots.txt: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("can't read robots.txt: %w", err)
	}

	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, fmt.Errorf("can't parse robots.txt: %w", err)
	}

	g.rules[origin] = data
	g.expiry[origin] = time.Now().Add(g.cacheTTL)

	return data, nil
}
