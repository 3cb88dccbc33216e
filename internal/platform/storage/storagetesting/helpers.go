// Package storagetesting contains helpers for storage integration tests.
package storagetesting

import (
	"database/sql"
	"os"
	"testing"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/jkowalczyk/price-tracker/internal/platform/storage/gen/postgres/public/table"

	pgmodels "github.com/jkowalczyk/price-tracker/internal/platform/storage/gen/postgres/public/model"

	_ "github.com/lib/pq"
)

// Open opens connection to DB.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Fatal("please provide database URL via TEST_DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	return db
}

// CleanupData removes all products, price points and subscribers.
func CleanupData(t *testing.T, exc qrm.Executable) {
	t.Helper()

	if _, err := table.Subscriber.DELETE().WHERE(table.Subscriber.ID.IS_NOT_NULL()).Exec(exc); err != nil {
		t.Fatal("can't delete subscribers", err)
	}

	if _, err := table.PricePoint.DELETE().WHERE(table.PricePoint.ID.IS_NOT_NULL()).Exec(exc); err != nil {
		t.Fatal("can't delete price points", err)
	}

	if _, err := table.Product.DELETE().WHERE(table.Product.ID.IS_NOT_NULL()).Exec(exc); err != nil {
		t.Fatal("can't delete products", err)
	}
}

// InsertProducts is a helper test function to insert products.
func InsertProducts(t *testing.T, exc qrm.Executable, products ...pgmodels.Product) {
	t.Helper()

	if len(products) == 0 {
		return
	}

	toInsert := make([]pgmodels.Product, 0, len(products))
	toInsert = append(toInsert, products...)

	_, err := table.Product.INSERT(table.Product.AllColumns.Except(table.Product.CreatedAt)).
		MODELS(toInsert).
		Exec(exc)
	if err != nil {
		t.Fatal("can't insert products", err)
	}
}

// InsertPricePoints is a helper test function to insert price points.
func InsertPricePoints(t *testing.T, exc qrm.Executable, points ...pgmodels.PricePoint) {
	t.Helper()

	if len(points) == 0 {
		return
	}

	toInsert := make([]pgmodels.PricePoint, 0, len(points))
	toInsert = append(toInsert, points...)

	_, err := table.PricePoint.INSERT(table.PricePoint.AllColumns.Except(table.PricePoint.ID)).
		MODELS(toInsert).
		Exec(exc)
	if err != nil {
		t.Fatal("can't insert price points", err)
	}
}

// InsertSubscribers is a helper test function to insert subscribers.
func InsertSubscribers(t *testing.T, exc qrm.Executable, subscribers ...pgmodels.Subscriber) {
	t.Helper()

	if len(subscribers) == 0 {
		return
	}

	toInsert := make([]pgmodels.Subscriber, 0, len(subscribers))
	toInsert = append(toInsert, subscribers...)

	_, err := table.Subscriber.INSERT(table.Subscriber.AllColumns.Except(table.Subscriber.ID, table.Subscriber.CreatedAt)).
		MODELS(toInsert).
		Exec(exc)
	if err != nil {
		t.Fatal("can't insert subscribers", err)
	}
}

// GetProducts is a helper test function to get all products.
func GetProducts(t *testing.T, queryable qrm.Queryable) []pgmodels.Product {
	t.Helper()

	products := []pgmodels.Product{}
	err := table.Product.SELECT(table.Product.AllColumns).
		WHERE(table.Product.ID.IS_NOT_NULL()).
		Query(queryable, &products)
	if err != nil {
		t.Fatal("can't get products", err)
	}

	return products
}

// GetPricePoints is a helper test function to get all price points.
func GetPricePoints(t *testing.T, queryable qrm.Queryable) []pgmodels.PricePoint {
	t.Helper()

	points := []pgmodels.PricePoint{}
	err := table.PricePoint.SELECT(table.PricePoint.AllColumns).
		WHERE(table.PricePoint.ID.IS_NOT_NULL()).
		Query(queryable, &points)
	if err != nil {
		t.Fatal("can't get price points", err)
	}

	return points
}

// GetSubscribers is a helper test function to get all subscribers.
func GetSubscribers(t *testing.T, queryable qrm.Queryable) []pgmodels.Subscriber {
	t.Helper()

	subscribers := []pgmodels.Subscriber{}
	err := table.Subscriber.SELECT(table.Subscriber.AllColumns).
		WHERE(table.Subscriber.ID.IS_NOT_NULL()).
		Query(queryable, &subscribers)
	if err != nil {
		t.Fatal("can't get subscribers", err)
	}

	return subscribers
}
