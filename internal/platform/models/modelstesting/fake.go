package modelstesting

import (
	"math/rand"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/jkowalczyk/price-tracker/internal/platform/models"
	"github.com/jkowalczyk/price-tracker/internal/pricing"
	"github.com/samber/lo"
)

// FakeTrackedProduct returns models.TrackedProduct with fake data and a random price history.
func FakeTrackedProduct(ops ...func(p *models.TrackedProduct)) models.TrackedProduct {
	history := FakePriceHistory(1 + rand.Intn(5))

	product := models.TrackedProduct{
		ID:            rand.Int(),
		URL:           faker.URL(),
		Title:         faker.Sentence(),
		Description:   faker.Paragraph(),
		ImageURL:      faker.URL(),
		Currency:      "$",
		Category:      faker.Word(),
		CurrentPrice:  history[len(history)-1].Price,
		OriginalPrice: float64(rand.Intn(10000)),
		DiscountRate:  rand.Intn(101),
		ReviewsCount:  rand.Intn(5000),
		Stars:         float64(rand.Intn(50)) / 10,
		PriceHistory:  history,
		Subscribers:   fakeSubscribers(rand.Intn(3)),
		CreatedAt:     time.Now().UTC().Add(-time.Duration(rand.Intn(720)) * time.Hour),
	}

	recomputeStats(&product)

	for _, op := range ops {
		op(&product)
	}

	return product
}

// FakeRawSnapshot returns models.RawSnapshot with all optional fields populated.
func FakeRawSnapshot(ops ...func(s *models.RawSnapshot)) models.RawSnapshot {
	snapshot := models.RawSnapshot{
		URL:           faker.URL(),
		Title:         lo.ToPtr(faker.Sentence()),
		Description:   lo.ToPtr(faker.Paragraph()),
		ImageURL:      lo.ToPtr(faker.URL()),
		Currency:      lo.ToPtr("$"),
		Category:      lo.ToPtr(faker.Word()),
		Price:         lo.ToPtr("1,299.00"),
		OriginalPrice: lo.ToPtr("1,499.00"),
		DiscountRate:  lo.ToPtr(rand.Intn(101)),
		ReviewsCount:  lo.ToPtr(rand.Intn(5000)),
		Stars:         lo.ToPtr(float64(rand.Intn(50)) / 10),
		OutOfStock:    lo.ToPtr(false),
	}

	for _, op := range ops {
		op(&snapshot)
	}

	return snapshot
}

// FakeObservedSnapshot returns models.ObservedSnapshot with fake data.
func FakeObservedSnapshot(ops ...func(s *models.ObservedSnapshot)) models.ObservedSnapshot {
	snapshot := models.ObservedSnapshot{
		URL:           faker.URL(),
		Title:         faker.Sentence(),
		Description:   faker.Paragraph(),
		ImageURL:      faker.URL(),
		Currency:      "$",
		Category:      faker.Word(),
		CurrentPrice:  float64(1 + rand.Intn(10000)),
		OriginalPrice: float64(1 + rand.Intn(10000)),
		DiscountRate:  rand.Intn(101),
		ReviewsCount:  rand.Intn(5000),
		Stars:         float64(rand.Intn(50)) / 10,
		IsOutOfStock:  false,
	}

	for _, op := range ops {
		op(&snapshot)
	}

	return snapshot
}

// FakePriceHistory returns length price points with random positive prices,
// observed at hourly intervals ending now.
func FakePriceHistory(length int) []models.PricePoint {
	history := make([]models.PricePoint, 0, length)
	end := time.Now().UTC()
	for ix := 0; ix < length; ix++ {
		history = append(history, models.PricePoint{
			Price:      float64(1 + rand.Intn(10000)),
			ObservedAt: end.Add(-time.Duration(length-ix-1) * time.Hour),
		})
	}

	return history
}

func fakeSubscribers(length int) []string {
	subscribers := make([]string, 0, length)
	for i := 0; i < length; i++ {
		subscribers = append(subscribers, faker.Email())
	}

	return subscribers
}

func recomputeStats(product *models.TrackedProduct) {
	stats := pricing.Compute(product.PriceHistory)
	product.LowestPrice = stats.Lowest
	product.HighestPrice = stats.Highest
	product.AveragePrice = stats.Average
}
