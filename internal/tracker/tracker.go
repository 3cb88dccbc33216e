package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jkowalczyk/price-tracker/internal/platform"
	"github.com/jkowalczyk/price-tracker/internal/platform/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name Scraper --filename scraper.go
//go:generate mockery --name Storage --filename storage.go
//go:generate mockery --name Notifier --filename notifier.go

// Scraper fetches one raw product snapshot from a live product page.
type Scraper interface {
	// FetchSnapshot returns the raw snapshot of url or an error when the
	// page could not be fetched or contained no usable product data.
	FetchSnapshot(ctx context.Context, url string) (*models.RawSnapshot, error)
}

// Normalizer coerces raw snapshots into fully defaulted observations.
type Normalizer interface {
	Normalize(raw models.RawSnapshot) models.ObservedSnapshot
}

// Storage is tracked products storage. Upserts are atomic per product URL.
type Storage interface {
	// ListAll returns every tracked product with its price history and subscribers.
	ListAll(ctx context.Context) ([]models.TrackedProduct, error)
	// FindByURL returns the tracked product for url or platform.ErrProductNotFound.
	FindByURL(ctx context.Context, url string) (*models.TrackedProduct, error)
	// UpsertByURL persists product keyed by its URL and appends point to its
	// price history. Returns the stored product.
	UpsertByURL(ctx context.Context, product models.TrackedProduct, point models.PricePoint) (*models.TrackedProduct, error)
	// AddSubscriber adds email to the product's subscriber set.
	// Returns the product and whether the email was newly added.
	AddSubscriber(ctx context.Context, url string, email string) (*models.TrackedProduct, bool, error)
}

// Notifier dispatches one notification to recipients. Fire-and-forget:
// delivery failures are the dispatcher's concern.
type Notifier interface {
	Send(ctx context.Context, recipients []string, content models.NotificationContent) error
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() time.Time
}

// Option is custom configuration of Tracker.
type Option func(t *Tracker)

// Tracker drives the price-tracking and notification-decision pipeline.
type Tracker struct {
	scraper           Scraper
	normalizer        Normalizer
	storage           Storage
	notifier          Notifier
	logger            *zerolog.Logger
	clock             Clock
	maxParallel       int
	cycleBudget       time.Duration
	discountThreshold int
}

// NewTracker returns new Tracker processing up to maxParallel products concurrently.
func NewTracker(
	scraper Scraper,
	normalizer Normalizer,
	storage Storage,
	notifier Notifier,
	logger *zerolog.Logger,
	maxParallel int,
	ops ...Option,
) *Tracker {
	trk := &Tracker{
		scraper:           scraper,
		normalizer:        normalizer,
		storage:           storage,
		notifier:          notifier,
		logger:            logger,
		clock:             systemClock{},
		maxParallel:       maxParallel,
		discountThreshold: DefaultDiscountThreshold,
	}

	for _, op := range ops {
		op(trk)
	}

	return trk
}

// RunCycle re-observes every tracked product once and returns the cycle
// report. Per-product failures are recorded in the report and never abort
// the cycle; only a failure to enumerate tracked products is returned as an
// error.
func (t *Tracker) RunCycle(ctx context.Context) (*models.CycleReport, error) {
	report := &models.CycleReport{
		StartedAt: t.clock.Now(),
	}

	if t.cycleBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, report.StartedAt.Add(t.cycleBudget))
		defer cancel()
	}

	products, err := t.storage.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't list tracked products: %w", err)
	}

	outcomes := make([]models.ProductOutcome, len(products))

	errGroup := &errgroup.Group{}
	errGroup.SetLimit(t.maxParallel)

	for ix := range products {
		ix := ix
		errGroup.Go(func() error {
			outcomes[ix] = t.trackOne(ctx, products[ix])
			return nil
		})
	}

	// trackOne never returns an error, failures live in the outcomes.
	_ = errGroup.Wait()

	for ix := range outcomes {
		switch outcomes[ix].Status {
		case models.OutcomeUpdated:
			report.Updated++
		case models.OutcomeSkipped:
			report.Skipped++
		case models.OutcomeFailed:
			report.Failed++
		}
	}

	report.Outcomes = outcomes
	report.FinishedAt = t.clock.Now()

	return report, nil
}

// TrackProduct scrapes url immediately and merges the observation into the
// existing product, or creates the product on its first successful scrape.
func (t *Tracker) TrackProduct(ctx context.Context, url string) (*models.TrackedProduct, error) {
	if url == "" {
		return nil, platform.ErrMalformedSnapshot
	}

	raw, err := t.scraper.FetchSnapshot(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("can't fetch product snapshot: %w", err)
	}

	observed := t.normalizer.Normalize(*raw)
	if observed.URL == "" {
		observed.URL = url
	}

	prior, err := t.storage.FindByURL(ctx, url)
	if err != nil && !errors.Is(err, platform.ErrProductNotFound) {
		return nil, fmt.Errorf("can't get tracked product: %w", err)
	}
	if prior == nil {
		prior = &models.TrackedProduct{URL: url}
	}

	reconciled := Reconcile(prior.PriceHistory, observed, t.clock.Now())
	next, point := nextState(*prior, observed, reconciled)

	stored, err := t.storage.UpsertByURL(ctx, next, point)
	if err != nil {
		return nil, fmt.Errorf("can't store tracked product: %w", err)
	}

	return stored, nil
}

// Subscribe adds email to the product's subscriber set and sends a single
// WELCOME notification when the email was not subscribed before.
func (t *Tracker) Subscribe(ctx context.Context, url string, email string) error {
	product, added, err := t.storage.AddSubscriber(ctx, url, email)
	if err != nil {
		return fmt.Errorf("can't add subscriber: %w", err)
	}

	if !added {
		return nil
	}

	content := models.NotificationContent{
		Title:    product.Title,
		URL:      product.URL,
		Category: models.CategoryWelcome,
	}
	if err := t.notifier.Send(ctx, []string{email}, content); err != nil {
		t.logger.Error().
			Err(err).
			Str("url", url).
			Msg("can't send welcome notification")
	}

	return nil
}

// trackOne runs the full pipeline for a single product: fetch, normalize,
// reconcile, persist, classify, notify. Persistence happens only after
// reconciliation completed in memory.
func (t *Tracker) trackOne(ctx context.Context, product models.TrackedProduct) models.ProductOutcome {
	outcome := models.ProductOutcome{URL: product.URL}

	// products not reached within the cycle budget wait for the next cycle.
	if err := ctx.Err(); err != nil {
		outcome.Status = models.OutcomeSkipped
		outcome.Err = err
		return outcome
	}

	raw, err := t.scraper.FetchSnapshot(ctx, product.URL)
	if err != nil || raw == nil {
		if err == nil {
			err = platform.ErrScrapeUnavailable
		}
		t.logger.Debug().
			Err(err).
			Str("url", product.URL).
			Msg("product skipped, snapshot unavailable")
		outcome.Status = models.OutcomeSkipped
		outcome.Err = err
		return outcome
	}

	observed := t.normalizer.Normalize(*raw)
	if observed.URL == "" {
		observed.URL = product.URL
	}

	reconciled := Reconcile(product.PriceHistory, observed, t.clock.Now())
	next, point := nextState(product, observed, reconciled)

	stored, err := t.storage.UpsertByURL(ctx, next, point)
	if err != nil {
		outcome.Status = models.OutcomeFailed
		outcome.Err = fmt.Errorf("can't store tracked product: %w", err)
		return outcome
	}

	outcome.Status = models.OutcomeUpdated

	// the classification baseline is the pre-update state.
	category, ok := Classify(observed, reconciled.PriorLowest, product.IsOutOfStock, t.discountThreshold)
	if !ok || len(stored.Subscribers) == 0 {
		return outcome
	}

	outcome.Category = category

	content := models.NotificationContent{
		Title:    stored.Title,
		URL:      stored.URL,
		Category: category,
	}
	// dispatch failures never roll back the history update.
	if err := t.notifier.Send(ctx, stored.Subscribers, content); err != nil {
		t.logger.Error().
			Err(err).
			Str("url", stored.URL).
			Str("category", string(category)).
			Msg("can't send notification")
	}

	return outcome
}

// nextState builds the persistable product state from the prior state, the
// fresh observation and its reconciliation.
func nextState(
	prior models.TrackedProduct,
	observed models.ObservedSnapshot,
	reconciled Reconciliation,
) (models.TrackedProduct, models.PricePoint) {
	next := prior
	next.URL = observed.URL
	next.Title = observed.Title
	next.Description = observed.Description
	next.ImageURL = observed.ImageURL
	next.Currency = observed.Currency
	next.Category = observed.Category
	next.CurrentPrice = observed.CurrentPrice
	next.OriginalPrice = observed.OriginalPrice
	next.DiscountRate = observed.DiscountRate
	next.ReviewsCount = observed.ReviewsCount
	next.Stars = observed.Stars
	next.IsOutOfStock = observed.IsOutOfStock
	next.PriceHistory = reconciled.History
	next.LowestPrice = reconciled.Stats.Lowest
	next.HighestPrice = reconciled.Stats.Highest
	next.AveragePrice = reconciled.Stats.Average

	return next, reconciled.History[len(reconciled.History)-1]
}

// WithClock sets Tracker's custom Clock.
func WithClock(c Clock) Option {
	return func(t *Tracker) {
		t.clock = c
	}
}

// WithCycleBudget sets the wall-clock budget of one tracking cycle.
func WithCycleBudget(budget time.Duration) Option {
	return func(t *Tracker) {
		t.cycleBudget = budget
	}
}

// WithDiscountThreshold sets the discount rate triggering THRESHOLD_MET.
func WithDiscountThreshold(threshold int) Option {
	return func(t *Tracker) {
		t.discountThreshold = threshold
	}
}
