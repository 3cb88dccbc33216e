package tracker

import (
	"time"

	"github.com/jkowalczyk/price-tracker/internal/platform/models"
	"github.com/jkowalczyk/price-tracker/internal/pricing"
)

// Reconciliation is the result of merging one observation into a product's
// price history.
type Reconciliation struct {
	// History is the prior history with exactly one new point appended.
	History []models.PricePoint
	// Stats are computed over History, including the new point. These are
	// the statistics to persist.
	Stats pricing.Stats
	// PriorLowest is the lowest price of the history excluding the new
	// point. It is the comparison baseline for the "new low" decision.
	PriorLowest float64
}

// Reconcile appends one price point built from snapshot to prior and
// recomputes price statistics. A point is appended on every call, even when
// the price is unchanged or 0 (unknown): history is a time series, not a
// deduplicated price list, and 0 is a real observed value.
func Reconcile(prior []models.PricePoint, snapshot models.ObservedSnapshot, observedAt time.Time) Reconciliation {
	history := make([]models.PricePoint, 0, len(prior)+1)
	history = append(history, prior...)
	history = append(history, models.PricePoint{
		Price:      snapshot.CurrentPrice,
		ObservedAt: observedAt,
	})

	return Reconciliation{
		History:     history,
		Stats:       pricing.Compute(history),
		PriorLowest: pricing.Lowest(prior),
	}
}
