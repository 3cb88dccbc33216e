// Package pricing computes price statistics over a product's price history.
package pricing

import (
	"math"

	"github.com/jkowalczyk/price-tracker/internal/platform/models"
)

// Stats holds the derived price statistics of a price history.
type Stats struct {
	Lowest  float64
	Highest float64
	Average float64
}

// Compute returns all statistics of history. For an empty history all
// statistics are 0 by convention.
func Compute(history []models.PricePoint) Stats {
	return Stats{
		Lowest:  Lowest(history),
		Highest: Highest(history),
		Average: Average(history),
	}
}

// Lowest returns the minimum price in history, or 0 for an empty history.
func Lowest(history []models.PricePoint) float64 {
	if len(history) == 0 {
		return 0
	}

	lowest := history[0].Price
	for _, point := range history[1:] {
		if point.Price < lowest {
			lowest = point.Price
		}
	}

	return lowest
}

// Highest returns the maximum price in history, or 0 for an empty history.
func Highest(history []models.PricePoint) float64 {
	if len(history) == 0 {
		return 0
	}

	highest := history[0].Price
	for _, point := range history[1:] {
		if point.Price > highest {
			highest = point.Price
		}
	}

	return highest
}

// Average returns the mean price of history rounded half away from zero
// to the nearest integer currency unit, or 0 for an empty history.
func Average(history []models.PricePoint) float64 {
	if len(history) == 0 {
		return 0
	}

	sum := 0.0
	for _, point := range history {
		sum += point.Price
	}

	return math.Round(sum / float64(len(history)))
}
