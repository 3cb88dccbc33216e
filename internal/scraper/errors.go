package scraper

import "errors"

var (
	// ErrStatusNotOK is returned when http response had status different than 200 OK.
	ErrStatusNotOK = errors.New("response status is not 200 OK")
	// ErrRobotsDisallowed is returned when robots.txt forbids fetching the page.
	ErrRobotsDisallowed = errors.New("fetching disallowed by robots.txt")
	// ErrNoProductData is returned when the fetched page contains neither a title nor a price.
	ErrNoProductData = errors.New("no product data found in page")
)
