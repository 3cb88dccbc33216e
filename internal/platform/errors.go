package platform

import (
	"errors"
)

var (
	// ErrScrapeUnavailable is an error returned when a product page could not be fetched
	// or contained no usable product data. The product is skipped for the cycle.
	ErrScrapeUnavailable = errors.New("product snapshot unavailable")
	// ErrMalformedSnapshot is an error returned when a snapshot has no usable product URL.
	ErrMalformedSnapshot = errors.New("snapshot has no product url")
	// ErrProductNotFound is an error returned when no tracked product exists for a URL.
	ErrProductNotFound = errors.New("product is not tracked")
)
