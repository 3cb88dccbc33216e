package models

import "time"

// NotificationCategory is the reason subscribers of a product should be alerted.
type NotificationCategory string

// All notification categories.
const (
	CategoryWelcome       NotificationCategory = "WELCOME"
	CategoryChangeOfStock NotificationCategory = "CHANGE_OF_STOCK"
	CategoryLowestPrice   NotificationCategory = "LOWEST_PRICE"
	CategoryThresholdMet  NotificationCategory = "THRESHOLD_MET"
)

// PricePoint is a single price observation. Points are append-only,
// insertion order is chronological order.
type PricePoint struct {
	Price      float64
	ObservedAt time.Time
}

// RawSnapshot is one unprocessed scrape of a product page. Any field except
// URL may be missing; price fields carry the raw, possibly locale-formatted
// text found on the page.
type RawSnapshot struct {
	URL           string
	Title         *string
	Description   *string
	ImageURL      *string
	Currency      *string
	Category      *string
	Price         *string
	OriginalPrice *string
	DiscountRate  *int
	ReviewsCount  *int
	Stars         *float64
	OutOfStock    *bool
}

// ObservedSnapshot is a fully defaulted observation of a product. It is
// produced once per scrape by the normalizer and is never partial.
type ObservedSnapshot struct {
	URL           string
	Title         string
	Description   string
	ImageURL      string
	Currency      string
	Category      string
	CurrentPrice  float64
	OriginalPrice float64
	DiscountRate  int
	ReviewsCount  int
	Stars         float64
	IsOutOfStock  bool
}

// TrackedProduct is the persisted product aggregate. URL is the natural key.
type TrackedProduct struct {
	ID            int
	URL           string
	Title         string
	Description   string
	ImageURL      string
	Currency      string
	Category      string
	CurrentPrice  float64
	OriginalPrice float64
	DiscountRate  int
	ReviewsCount  int
	Stars         float64
	IsOutOfStock  bool
	LowestPrice   float64
	HighestPrice  float64
	AveragePrice  float64
	PriceHistory  []PricePoint
	Subscribers   []string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// NotificationContent is the payload handed to the notification dispatcher.
type NotificationContent struct {
	Title    string               `json:"title"`
	URL      string               `json:"url"`
	Category NotificationCategory `json:"category"`
}

// OutcomeStatus is the per-product result of one tracking cycle.
type OutcomeStatus string

// All outcome statuses.
const (
	OutcomeUpdated OutcomeStatus = "updated"
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomeFailed  OutcomeStatus = "failed"
)

// ProductOutcome describes what happened to a single product during a cycle.
type ProductOutcome struct {
	URL      string
	Status   OutcomeStatus
	Category NotificationCategory
	Err      error
}

// CycleReport summarizes one tracking cycle.
type CycleReport struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Updated    int32
	Skipped    int32
	Failed     int32
	Outcomes   []ProductOutcome
}
