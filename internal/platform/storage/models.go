package storage

import (
	"github.com/jkowalczyk/price-tracker/internal/platform/models"

	pgmodels "github.com/jkowalczyk/price-tracker/internal/platform/storage/gen/postgres/public/model"
)

//go:generate make -C ../../../ generate-db

// ToDBProduct converts models.TrackedProduct into postgres product model.
func ToDBProduct(product *models.TrackedProduct) *pgmodels.Product {
	return &pgmodels.Product{
		ID:            int32(product.ID),
		URL:           product.URL,
		Title:         product.Title,
		Description:   product.Description,
		ImageURL:      product.ImageURL,
		Currency:      product.Currency,
		Category:      product.Category,
		CurrentPrice:  product.CurrentPrice,
		OriginalPrice: product.OriginalPrice,
		DiscountRate:  int32(product.DiscountRate),
		ReviewsCount:  int32(product.ReviewsCount),
		Stars:         product.Stars,
		IsOutOfStock:  product.IsOutOfStock,
		LowestPrice:   product.LowestPrice,
		HighestPrice:  product.HighestPrice,
		AveragePrice:  product.AveragePrice,
		UpdatedAt:     product.UpdatedAt,
	}
}

// FromDBProduct converts postgres product model into models.TrackedProduct.
// Price history and subscribers are stored in separate tables and stay empty.
func FromDBProduct(product *pgmodels.Product) *models.TrackedProduct {
	return &models.TrackedProduct{
		ID:            int(product.ID),
		URL:           product.URL,
		Title:         product.Title,
		Description:   product.Description,
		ImageURL:      product.ImageURL,
		Currency:      product.Currency,
		Category:      product.Category,
		CurrentPrice:  product.CurrentPrice,
		OriginalPrice: product.OriginalPrice,
		DiscountRate:  int(product.DiscountRate),
		ReviewsCount:  int(product.ReviewsCount),
		Stars:         product.Stars,
		IsOutOfStock:  product.IsOutOfStock,
		LowestPrice:   product.LowestPrice,
		HighestPrice:  product.HighestPrice,
		AveragePrice:  product.AveragePrice,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

// ToDBPricePoint converts models.PricePoint into postgres price point model.
func ToDBPricePoint(productID int32, point models.PricePoint) *pgmodels.PricePoint {
	return &pgmodels.PricePoint{
		ProductID:  productID,
		Price:      point.Price,
		ObservedAt: point.ObservedAt,
	}
}

func fromDBPricePoints(points []pgmodels.PricePoint) []models.PricePoint {
	history := make([]models.PricePoint, 0, len(points))
	for ix := range points {
		history = append(history, models.PricePoint{
			Price:      points[ix].Price,
			ObservedAt: points[ix].ObservedAt,
		})
	}
	return history
}

func fromDBSubscribers(subscribers []pgmodels.Subscriber) []string {
	emails := make([]string, 0, len(subscribers))
	for ix := range subscribers {
		emails = append(emails, subscribers[ix].Email)
	}
	return emails
}
