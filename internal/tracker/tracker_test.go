package tracker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jkowalczyk/price-tracker/internal/platform"
	"github.com/jkowalczyk/price-tracker/internal/platform/models"
	"github.com/jkowalczyk/price-tracker/internal/snapshot"
	"github.com/jkowalczyk/price-tracker/internal/tracker"
	"github.com/jkowalczyk/price-tracker/internal/tracker/mocks"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// reusable test data
var (
	maxParallel = 2
	now         = time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	logger      = zerolog.Nop()
	normalizer  = snapshot.NewNormalizer("$")
)

func TestUnitRunCycle(t *testing.T) {
	productA := trackedProduct("https://shop.example/p/a", func(p *models.TrackedProduct) {
		p.Title = "Product A"
		p.PriceHistory = []models.PricePoint{
			{Price: 100, ObservedAt: now.Add(-3 * time.Hour)},
			{Price: 90, ObservedAt: now.Add(-2 * time.Hour)},
			{Price: 95, ObservedAt: now.Add(-time.Hour)},
		}
		p.LowestPrice = 90
		p.HighestPrice = 100
		p.AveragePrice = 95
		p.CurrentPrice = 95
		p.Subscribers = []string{"a@example.com", "b@example.com"}
	})
	productB := trackedProduct("https://shop.example/p/b", nil)
	productC := trackedProduct("https://shop.example/p/c", func(p *models.TrackedProduct) {
		p.Title = "Product C"
		p.PriceHistory = []models.PricePoint{{Price: 50, ObservedAt: now.Add(-time.Hour)}}
		p.LowestPrice = 50
		p.HighestPrice = 50
		p.AveragePrice = 50
		p.CurrentPrice = 50
	})

	scraper := mocks.NewScraper(t)
	storage := mocks.NewStorage(t)
	notifier := mocks.NewNotifier(t)

	mockStorageListAll(storage, []models.TrackedProduct{productA, productB, productC}, nil)

	// product A drops to a new low, subscribers get notified.
	mockScraperFetch(scraper, productA.URL, rawSnapshot("Product A", "85"), nil)
	wantA := nextProduct(productA, "Product A", 85, models.PricePoint{Price: 85, ObservedAt: now}, 85, 100, 93)
	mockStorageUpsert(storage, wantA, models.PricePoint{Price: 85, ObservedAt: now}, nil)
	mockNotifierSend(notifier, productA.Subscribers, models.NotificationContent{
		Title:    "Product A",
		URL:      productA.URL,
		Category: models.CategoryLowestPrice,
	}, nil)

	// product B's page is unavailable this cycle.
	mockScraperFetch(scraper, productB.URL, nil, platform.ErrScrapeUnavailable)

	// product C is unchanged and has no subscribers.
	mockScraperFetch(scraper, productC.URL, rawSnapshot("Product C", "50"), nil)
	wantC := nextProduct(productC, "Product C", 50, models.PricePoint{Price: 50, ObservedAt: now}, 50, 50, 50)
	mockStorageUpsert(storage, wantC, models.PricePoint{Price: 50, ObservedAt: now}, nil)

	trk := tracker.NewTracker(
		scraper,
		normalizer,
		storage,
		notifier,
		&logger,
		maxParallel,
		tracker.WithClock(fakeClock{now: now}),
	)

	report, err := trk.RunCycle(context.TODO())

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, int32(2), report.Updated, "should update two products")
	assert.Equal(t, int32(1), report.Skipped, "should skip the unavailable product")
	assert.Zero(t, report.Failed, "shouldn't fail any product")
	require.Len(t, report.Outcomes, 3, "should report an outcome per product")

	assert.Equal(t, models.OutcomeUpdated, report.Outcomes[0].Status, "product A should be updated")
	assert.Equal(t, models.CategoryLowestPrice, report.Outcomes[0].Category, "product A should hit a new low")
	assert.Equal(t, models.OutcomeSkipped, report.Outcomes[1].Status, "product B should be skipped")
	require.ErrorIs(t, report.Outcomes[1].Err, platform.ErrScrapeUnavailable, "product B should carry the scrape error")
	assert.Equal(t, models.OutcomeUpdated, report.Outcomes[2].Status, "product C should be updated")
	assert.Empty(t, report.Outcomes[2].Category, "product C shouldn't produce a notification")
}

func TestUnitRunCycleListError(t *testing.T) {
	scraper := mocks.NewScraper(t)
	storage := mocks.NewStorage(t)
	notifier := mocks.NewNotifier(t)

	mockStorageListAll(storage, nil, assert.AnError)

	trk := tracker.NewTracker(scraper, normalizer, storage, notifier, &logger, maxParallel)

	report, err := trk.RunCycle(context.TODO())

	require.Nil(t, report, "shouldn't return any report")
	require.ErrorContains(t, err, "can't list tracked products", "should return error about failed listing")
	require.ErrorIs(t, err, assert.AnError, "should return error containing assert.AnError")
}

func TestUnitRunCyclePersistenceError(t *testing.T) {
	product := trackedProduct("https://shop.example/p/a", func(p *models.TrackedProduct) {
		p.Title = "Product A"
		p.PriceHistory = []models.PricePoint{{Price: 100, ObservedAt: now.Add(-time.Hour)}}
		p.LowestPrice = 100
		p.HighestPrice = 100
		p.AveragePrice = 100
		p.CurrentPrice = 100
	})

	scraper := mocks.NewScraper(t)
	storage := mocks.NewStorage(t)
	notifier := mocks.NewNotifier(t)

	mockStorageListAll(storage, []models.TrackedProduct{product}, nil)
	mockScraperFetch(scraper, product.URL, rawSnapshot("Product A", "100"), nil)
	storage.On("UpsertByURL", mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError)

	trk := tracker.NewTracker(
		scraper,
		normalizer,
		storage,
		notifier,
		&logger,
		maxParallel,
		tracker.WithClock(fakeClock{now: now}),
	)

	report, err := trk.RunCycle(context.TODO())

	require.NoError(t, err, "persistence errors shouldn't abort the cycle")
	assert.Equal(t, int32(1), report.Failed, "should count the failed product")
	require.ErrorIs(t, report.Outcomes[0].Err, assert.AnError, "outcome should carry the persistence error")
}

func TestUnitRunCycleBudgetExhausted(t *testing.T) {
	products := []models.TrackedProduct{
		trackedProduct("https://shop.example/p/a", nil),
		trackedProduct("https://shop.example/p/b", nil),
	}

	scraper := mocks.NewScraper(t)
	storage := mocks.NewStorage(t)
	notifier := mocks.NewNotifier(t)

	mockStorageListAll(storage, products, nil)

	// the clock is pinned in the past, so the budget deadline has already
	// passed when the products are picked up.
	trk := tracker.NewTracker(
		scraper,
		normalizer,
		storage,
		notifier,
		&logger,
		maxParallel,
		tracker.WithClock(fakeClock{now: now}),
		tracker.WithCycleBudget(time.Nanosecond),
	)

	report, err := trk.RunCycle(context.TODO())

	require.NoError(t, err, "an exhausted budget shouldn't fail the cycle")
	assert.Equal(t, int32(2), report.Skipped, "products not reached within the budget should be skipped")
	assert.Zero(t, report.Updated, "shouldn't update any product")
	assert.Zero(t, report.Failed, "shouldn't fail any product")
	require.Len(t, report.Outcomes, 2, "should report an outcome per product")
	for _, outcome := range report.Outcomes {
		require.ErrorIs(t, outcome.Err, context.DeadlineExceeded, "deferred products should carry the deadline error")
	}
	scraper.AssertNotCalled(t, "FetchSnapshot", mock.Anything, mock.Anything)
}

func TestUnitRunCycleBoundsParallelism(t *testing.T) {
	products := make([]models.TrackedProduct, 6)
	for ix := range products {
		products[ix] = trackedProduct("https://shop.example/p/a", nil)
	}

	scraper := mocks.NewScraper(t)
	storage := mocks.NewStorage(t)
	notifier := mocks.NewNotifier(t)

	mockStorageListAll(storage, products, nil)

	var inFlight, maxInFlight int32
	scraper.On("FetchSnapshot", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			current := atomic.AddInt32(&inFlight, 1)
			for {
				seen := atomic.LoadInt32(&maxInFlight)
				if current <= seen || atomic.CompareAndSwapInt32(&maxInFlight, seen, current) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
		}).
		Return(nil, platform.ErrScrapeUnavailable)

	trk := tracker.NewTracker(scraper, normalizer, storage, notifier, &logger, maxParallel)

	report, err := trk.RunCycle(context.TODO())

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, int32(len(products)), report.Skipped, "every product should be processed")
	assert.LessOrEqual(t, atomic.LoadInt32(&maxInFlight), int32(maxParallel),
		"should never fetch more products at once than configured")
}

func TestUnitRunCycleNotificationFailureKeepsUpdate(t *testing.T) {
	product := trackedProduct("https://shop.example/p/a", func(p *models.TrackedProduct) {
		p.Title = "Product A"
		p.PriceHistory = []models.PricePoint{{Price: 100, ObservedAt: now.Add(-time.Hour)}}
		p.LowestPrice = 100
		p.HighestPrice = 100
		p.AveragePrice = 100
		p.CurrentPrice = 100
		p.Subscribers = []string{"a@example.com"}
	})

	scraper := mocks.NewScraper(t)
	storage := mocks.NewStorage(t)
	notifier := mocks.NewNotifier(t)

	mockStorageListAll(storage, []models.TrackedProduct{product}, nil)
	mockScraperFetch(scraper, product.URL, rawSnapshot("Product A", "80"), nil)
	want := nextProduct(product, "Product A", 80, models.PricePoint{Price: 80, ObservedAt: now}, 80, 100, 90)
	mockStorageUpsert(storage, want, models.PricePoint{Price: 80, ObservedAt: now}, nil)
	mockNotifierSend(notifier, product.Subscribers, models.NotificationContent{
		Title:    "Product A",
		URL:      product.URL,
		Category: models.CategoryLowestPrice,
	}, assert.AnError)

	trk := tracker.NewTracker(
		scraper,
		normalizer,
		storage,
		notifier,
		&logger,
		maxParallel,
		tracker.WithClock(fakeClock{now: now}),
	)

	report, err := trk.RunCycle(context.TODO())

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, int32(1), report.Updated, "dispatch failure shouldn't roll back the update")
	assert.Equal(t, models.CategoryLowestPrice, report.Outcomes[0].Category, "outcome should keep its category")
}

func TestUnitTrackProduct(t *testing.T) {
	t.Run("new product", func(t *testing.T) {
		url := "https://shop.example/p/new"

		scraper := mocks.NewScraper(t)
		storage := mocks.NewStorage(t)
		notifier := mocks.NewNotifier(t)

		mockScraperFetch(scraper, url, rawSnapshot("Brand New", "120"), nil)
		storage.On("FindByURL", mock.Anything, url).Return(nil, platform.ErrProductNotFound)

		want := nextProduct(
			models.TrackedProduct{URL: url},
			"Brand New",
			120,
			models.PricePoint{Price: 120, ObservedAt: now},
			120, 120, 120,
		)
		mockStorageUpsert(storage, want, models.PricePoint{Price: 120, ObservedAt: now}, nil)

		trk := tracker.NewTracker(
			scraper,
			normalizer,
			storage,
			notifier,
			&logger,
			maxParallel,
			tracker.WithClock(fakeClock{now: now}),
		)

		stored, err := trk.TrackProduct(context.TODO(), url)

		require.NoError(t, err, "shouldn't return any error")
		require.NotNil(t, stored, "should return the stored product")
		assert.Equal(t, want, *stored, "first scrape should create the product")
	})

	t.Run("empty url", func(t *testing.T) {
		trk := tracker.NewTracker(
			mocks.NewScraper(t),
			normalizer,
			mocks.NewStorage(t),
			mocks.NewNotifier(t),
			&logger,
			maxParallel,
		)

		_, err := trk.TrackProduct(context.TODO(), "")

		require.ErrorIs(t, err, platform.ErrMalformedSnapshot, "should reject an empty url")
	})

	t.Run("scrape failure", func(t *testing.T) {
		url := "https://shop.example/p/broken"

		scraper := mocks.NewScraper(t)
		mockScraperFetch(scraper, url, nil, platform.ErrScrapeUnavailable)

		trk := tracker.NewTracker(
			scraper,
			normalizer,
			mocks.NewStorage(t),
			mocks.NewNotifier(t),
			&logger,
			maxParallel,
		)

		_, err := trk.TrackProduct(context.TODO(), url)

		require.ErrorIs(t, err, platform.ErrScrapeUnavailable, "should surface the scrape error")
	})
}

func TestUnitSubscribe(t *testing.T) {
	product := trackedProduct("https://shop.example/p/a", func(p *models.TrackedProduct) {
		p.Title = "Product A"
	})

	t.Run("new subscriber gets a welcome", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		notifier := mocks.NewNotifier(t)

		storage.On("AddSubscriber", mock.Anything, product.URL, "a@example.com").
			Return(&product, true, nil)
		mockNotifierSend(notifier, []string{"a@example.com"}, models.NotificationContent{
			Title:    "Product A",
			URL:      product.URL,
			Category: models.CategoryWelcome,
		}, nil)

		trk := tracker.NewTracker(mocks.NewScraper(t), normalizer, storage, notifier, &logger, maxParallel)

		err := trk.Subscribe(context.TODO(), product.URL, "a@example.com")

		require.NoError(t, err, "shouldn't return any error")
	})

	t.Run("duplicate subscriber is a no-op", func(t *testing.T) {
		storage := mocks.NewStorage(t)
		notifier := mocks.NewNotifier(t)

		storage.On("AddSubscriber", mock.Anything, product.URL, "a@example.com").
			Return(&product, false, nil)

		trk := tracker.NewTracker(mocks.NewScraper(t), normalizer, storage, notifier, &logger, maxParallel)

		err := trk.Subscribe(context.TODO(), product.URL, "a@example.com")

		require.NoError(t, err, "shouldn't return any error")
		notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown product", func(t *testing.T) {
		storage := mocks.NewStorage(t)

		storage.On("AddSubscriber", mock.Anything, "https://shop.example/p/x", "a@example.com").
			Return(nil, false, platform.ErrProductNotFound)

		trk := tracker.NewTracker(
			mocks.NewScraper(t),
			normalizer,
			storage,
			mocks.NewNotifier(t),
			&logger,
			maxParallel,
		)

		err := trk.Subscribe(context.TODO(), "https://shop.example/p/x", "a@example.com")

		require.ErrorIs(t, err, platform.ErrProductNotFound, "should surface the storage error")
	})
}

func trackedProduct(url string, op func(p *models.TrackedProduct)) models.TrackedProduct {
	product := models.TrackedProduct{
		URL:       url,
		Currency:  "$",
		CreatedAt: now.Add(-24 * time.Hour),
	}
	if op != nil {
		op(&product)
	}

	return product
}

// rawSnapshot builds a minimal raw scrape result with a title and price text.
func rawSnapshot(title string, price string) *models.RawSnapshot {
	return &models.RawSnapshot{
		Title:      lo.ToPtr(title),
		Price:      lo.ToPtr(price),
		OutOfStock: lo.ToPtr(false),
	}
}

// nextProduct builds the state expected to be persisted after reconciling a
// rawSnapshot(title, price) observation into prior.
func nextProduct(
	prior models.TrackedProduct,
	title string,
	price float64,
	point models.PricePoint,
	lowest, highest, average float64,
) models.TrackedProduct {
	next := prior
	next.Title = title
	next.Description = ""
	next.ImageURL = ""
	next.Currency = "$"
	next.Category = ""
	next.CurrentPrice = price
	next.OriginalPrice = 0
	next.DiscountRate = 0
	next.ReviewsCount = 0
	next.Stars = 0
	next.IsOutOfStock = false
	next.PriceHistory = append(append([]models.PricePoint{}, prior.PriceHistory...), point)
	next.LowestPrice = lowest
	next.HighestPrice = highest
	next.AveragePrice = average

	return next
}

func mockStorageListAll(storage *mocks.Storage, products []models.TrackedProduct, err error) {
	storage.On("ListAll", mock.Anything).Return(products, err)
}

func mockStorageUpsert(
	storage *mocks.Storage,
	product models.TrackedProduct,
	point models.PricePoint,
	err error,
) {
	var stored *models.TrackedProduct
	if err == nil {
		stored = &product
	}
	storage.On("UpsertByURL", mock.Anything, product, point).Return(stored, err)
}

func mockScraperFetch(scraper *mocks.Scraper, url string, raw *models.RawSnapshot, err error) {
	scraper.On("FetchSnapshot", mock.Anything, url).Return(raw, err)
}

func mockNotifierSend(
	notifier *mocks.Notifier,
	recipients []string,
	content models.NotificationContent,
	err error,
) {
	notifier.On("Send", mock.Anything, recipients, content).Return(err)
}

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time {
	return c.now
}
