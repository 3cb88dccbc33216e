package tracker

import "github.com/jkowalczyk/price-tracker/internal/platform/models"

// DefaultDiscountThreshold is the discount rate at or above which a
// THRESHOLD_MET notification is produced.
const DefaultDiscountThreshold = 40

// Classify evaluates a fresh observation against the pre-update state of a
// product and returns at most one notification category. The cascade is
// fixed priority, first match wins:
//
//  1. price known and strictly below the prior lowest -> LOWEST_PRICE
//  2. product was out of stock and is back            -> CHANGE_OF_STOCK
//  3. discount rate at or above discountThreshold     -> THRESHOLD_MET
//
// WELCOME is never produced here; it is emitted by the subscribe path when
// an email is first added to a product.
func Classify(
	snapshot models.ObservedSnapshot,
	priorLowest float64,
	priorOutOfStock bool,
	discountThreshold int,
) (models.NotificationCategory, bool) {
	switch {
	case snapshot.CurrentPrice > 0 && snapshot.CurrentPrice < priorLowest:
		return models.CategoryLowestPrice, true
	case priorOutOfStock && !snapshot.IsOutOfStock:
		return models.CategoryChangeOfStock, true
	case snapshot.DiscountRate >= discountThreshold:
		return models.CategoryThresholdMet, true
	default:
		return "", false
	}
}
