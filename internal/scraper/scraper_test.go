package scraper_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/jkowalczyk/price-tracker/internal/platform"
	"github.com/jkowalczyk/price-tracker/internal/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const testUserAgent = "price-tracker-test/0.0.1"

const productPage = `<!DOCTYPE html>
<html><body>
	<span id="productTitle"> Espresso Machine  Deluxe </span>
	<span class="a-price"><span class="a-offscreen">$1,299.00</span></span>
	<span class="a-text-price"><span class="a-offscreen">$1,499.00</span></span>
	<span class="savingsPercentage">-13%</span>
	<img id="landingImage" src="https://img.example/espresso.jpg" data-old-hires="https://img.example/espresso-hires.jpg"/>
	<div id="availability"> In Stock. </div>
	<span class="a-icon-alt">4.3 out of 5 stars</span>
	<span id="acrCustomerReviewText">1,234 ratings</span>
	<div id="productDescription">Makes   espresso.</div>
</body></html>`

func TestUnitFetchSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"), "should send configured user agent")
		_, _ = w.Write([]byte(productPage))
	}))
	defer server.Close()

	scr := scraper.NewScraper(server.Client(), testUserAgent, rate.NewLimiter(rate.Inf, 1))

	raw, err := scr.FetchSnapshot(context.TODO(), server.URL+"/p/espresso")

	require.NoError(t, err, "shouldn't return any error")
	require.NotNil(t, raw.Title, "should extract title")
	assert.Equal(t, "Espresso Machine Deluxe", *raw.Title, "should collapse whitespace in title")
	require.NotNil(t, raw.Price, "should extract price text")
	assert.Equal(t, "$1,299.00", *raw.Price, "should extract the offscreen price")
	require.NotNil(t, raw.Currency, "should derive currency from price text")
	assert.Equal(t, "$", *raw.Currency, "should derive dollar currency")
	require.NotNil(t, raw.OriginalPrice, "should extract the struck-through list price")
	assert.Equal(t, "$1,499.00", *raw.OriginalPrice, "should extract original price")
	require.NotNil(t, raw.DiscountRate, "should extract discount badge")
	assert.Equal(t, 13, *raw.DiscountRate, "should parse discount percentage")
	require.NotNil(t, raw.ImageURL, "should extract product image")
	assert.Equal(t, "https://img.example/espresso-hires.jpg", *raw.ImageURL, "should prefer hi-res image")
	require.NotNil(t, raw.OutOfStock, "should extract availability")
	assert.False(t, *raw.OutOfStock, "in stock page shouldn't be out of stock")
	require.NotNil(t, raw.Stars, "should extract rating")
	assert.Equal(t, 4.3, *raw.Stars, "should parse rating value")
	require.NotNil(t, raw.ReviewsCount, "should extract reviews counter")
	assert.Equal(t, 1234, *raw.ReviewsCount, "should parse reviews counter")
	require.NotNil(t, raw.Description, "should extract description")
	assert.Equal(t, "Makes espresso.", *raw.Description, "should collapse whitespace in description")
}

func TestUnitFetchSnapshotOutOfStock(t *testing.T) {
	page := `<html><body>
		<span id="productTitle">Espresso Machine</span>
		<div id="availability">Currently unavailable.</div>
	</body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	scr := scraper.NewScraper(server.Client(), testUserAgent, nil)

	raw, err := scr.FetchSnapshot(context.TODO(), server.URL)

	require.NoError(t, err, "shouldn't return any error")
	assert.Nil(t, raw.Price, "page without price shouldn't carry price text")
	require.NotNil(t, raw.OutOfStock, "should extract availability")
	assert.True(t, *raw.OutOfStock, "unavailable page should be out of stock")
}

func TestUnitFetchSnapshotNoProductData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>captcha</p></body></html>"))
	}))
	defer server.Close()

	scr := scraper.NewScraper(server.Client(), testUserAgent, nil)

	_, err := scr.FetchSnapshot(context.TODO(), server.URL)

	require.ErrorIs(t, err, platform.ErrScrapeUnavailable, "should wrap the scrape unavailable error")
	require.ErrorIs(t, err, scraper.ErrNoProductData, "should return error about missing product data")
}

func TestUnitFetchSnapshotStatusNotOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	scr := scraper.NewScraper(server.Client(), testUserAgent, nil)

	_, err := scr.FetchSnapshot(context.TODO(), server.URL)

	require.ErrorIs(t, err, platform.ErrScrapeUnavailable, "should wrap the scrape unavailable error")
	require.ErrorIs(t, err, scraper.ErrStatusNotOK, "should return error about response status")
}

func TestUnitFetchSnapshotRetriesServerErrors(t *testing.T) {
	attempts := int32(0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(productPage))
	}))
	defer server.Close()

	scr := scraper.NewScraper(server.Client(), testUserAgent, nil, scraper.WithMaxRetries(2))

	raw, err := scr.FetchSnapshot(context.TODO(), server.URL)

	require.NoError(t, err, "should recover from a transient server error")
	assert.NotNil(t, raw.Title, "should extract title after retry")
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts), "should retry exactly once")
}

func TestUnitFetchSnapshotRespectsRobots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /p/\n"))
			return
		}
		_, _ = w.Write([]byte(productPage))
	}))
	defer server.Close()

	scr := scraper.NewScraper(server.Client(), testUserAgent, nil, scraper.WithRobots(server.Client()))

	_, err := scr.FetchSnapshot(context.TODO(), server.URL+"/p/espresso")

	require.ErrorIs(t, err, scraper.ErrRobotsDisallowed, "should refuse pages disallowed by robots.txt")

	raw, err := scr.FetchSnapshot(context.TODO(), server.URL+"/allowed")
	require.NoError(t, err, "should fetch pages allowed by robots.txt")
	assert.NotNil(t, raw.Title, "should extract title from allowed page")
}
