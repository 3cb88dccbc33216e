// Package storage persists tracked products, their price history and subscribers.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jkowalczyk/price-tracker/internal/platform"
	"github.com/jkowalczyk/price-tracker/internal/platform/models"
	"github.com/jkowalczyk/price-tracker/internal/platform/storage/gen/postgres/public/table"
	"github.com/samber/lo"

	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	pgmodels "github.com/jkowalczyk/price-tracker/internal/platform/storage/gen/postgres/public/model"
)

// Postgres is storage for tracked products, price points and subscribers.
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB) Postgres {
	return Postgres{
		db: db,
	}
}

// ListAll returns all tracked products with their price history and subscribers.
func (p Postgres) ListAll(ctx context.Context) ([]models.TrackedProduct, error) {
	dbProducts := []pgmodels.Product{}
	err := table.Product.SELECT(table.Product.AllColumns).
		ORDER_BY(table.Product.ID.ASC()).
		QueryContext(ctx, p.db, &dbProducts)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get products from database: %w", err)
	}

	if len(dbProducts) == 0 {
		return []models.TrackedProduct{}, nil
	}

	ids := make([]pg.Expression, 0, len(dbProducts))
	for ix := range dbProducts {
		ids = append(ids, pg.Int32(dbProducts[ix].ID))
	}

	points, err := getPricePoints(ctx, p.db, ids)
	if err != nil {
		return nil, fmt.Errorf("can't get products price history: %w", err)
	}

	subscribers, err := getSubscribers(ctx, p.db, ids)
	if err != nil {
		return nil, fmt.Errorf("can't get products subscribers: %w", err)
	}

	products := make([]models.TrackedProduct, 0, len(dbProducts))
	for ix := range dbProducts {
		product := FromDBProduct(&dbProducts[ix])
		product.PriceHistory = fromDBPricePoints(points[dbProducts[ix].ID])
		product.Subscribers = fromDBSubscribers(subscribers[dbProducts[ix].ID])
		products = append(products, *product)
	}

	return products, nil
}

// FindByURL returns tracked product with provided url.
// It returns ErrProductNotFound if the url is not tracked.
func (p Postgres) FindByURL(ctx context.Context, url string) (*models.TrackedProduct, error) {
	var dbProduct pgmodels.Product
	err := table.Product.SELECT(table.Product.AllColumns).
		WHERE(table.Product.URL.EQ(pg.String(url))).
		QueryContext(ctx, p.db, &dbProduct)

	if errors.Is(err, qrm.ErrNoRows) {
		return nil, platform.ErrProductNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("can't get product from database: %w", err)
	}

	return loadProduct(ctx, p.db, &dbProduct)
}

// UpsertByURL upserts product by its url and appends one price point to its history.
// It returns the stored product with history and subscribers.
func (p Postgres) UpsertByURL(
	ctx context.Context,
	product models.TrackedProduct,
	point models.PricePoint,
) (*models.TrackedProduct, error) {
	var stored *models.TrackedProduct

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		dbProduct := ToDBProduct(&product)
		dbProduct.UpdatedAt = lo.ToPtr(point.ObservedAt)

		columnList := table.Product.AllColumns.Except(table.Product.ID, table.Product.CreatedAt)

		excludedExpressions := make([]pg.Expression, 0, len(columnList)) // converting to expression
		for _, col := range table.Product.EXCLUDED.AllColumns.Except(table.Product.ID, table.Product.CreatedAt) {
			excludedExpressions = append(excludedExpressions, col)
		}

		err := table.Product.INSERT(columnList).
			MODEL(dbProduct).
			ON_CONFLICT(table.Product.URL).
			DO_UPDATE(
				pg.SET(
					columnList.SET(pg.ROW(excludedExpressions...)),
				),
			).
			RETURNING(table.Product.AllColumns).
			QueryContext(ctx, tx, dbProduct)
		if err != nil {
			return fmt.Errorf("can't upsert product into database: %w", err)
		}

		_, err = table.PricePoint.INSERT(table.PricePoint.AllColumns.Except(table.PricePoint.ID)).
			MODEL(ToDBPricePoint(dbProduct.ID, point)).
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("can't insert price point into database: %w", err)
		}

		stored, err = loadProduct(ctx, tx, dbProduct)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("can't store product: %w", err)
	}

	return stored, nil
}

// AddSubscriber subscribes email to the product with provided url.
// It reports whether the email was newly added and returns ErrProductNotFound
// if the url is not tracked.
func (p Postgres) AddSubscriber(ctx context.Context, url string, email string) (*models.TrackedProduct, bool, error) {
	var (
		stored *models.TrackedProduct
		added  bool
	)

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		var dbProduct pgmodels.Product
		err := table.Product.SELECT(table.Product.AllColumns).
			WHERE(table.Product.URL.EQ(pg.String(url))).
			QueryContext(ctx, tx, &dbProduct)

		if errors.Is(err, qrm.ErrNoRows) {
			return platform.ErrProductNotFound
		}

		if err != nil {
			return fmt.Errorf("can't get product from database: %w", err)
		}

		result, err := table.Subscriber.INSERT(table.Subscriber.ProductID, table.Subscriber.Email).
			MODEL(pgmodels.Subscriber{
				ProductID: dbProduct.ID,
				Email:     email,
			}).
			ON_CONFLICT(table.Subscriber.ProductID, table.Subscriber.Email).
			DO_NOTHING().
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("can't insert subscriber into database: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("can't check inserted subscriber: %w", err)
		}
		added = rowsAffected > 0

		stored, err = loadProduct(ctx, tx, &dbProduct)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	return stored, added, nil
}

func loadProduct(ctx context.Context, db qrm.DB, dbProduct *pgmodels.Product) (*models.TrackedProduct, error) {
	ids := []pg.Expression{pg.Int32(dbProduct.ID)}

	points, err := getPricePoints(ctx, db, ids)
	if err != nil {
		return nil, fmt.Errorf("can't get product price history: %w", err)
	}

	subscribers, err := getSubscribers(ctx, db, ids)
	if err != nil {
		return nil, fmt.Errorf("can't get product subscribers: %w", err)
	}

	product := FromDBProduct(dbProduct)
	product.PriceHistory = fromDBPricePoints(points[dbProduct.ID])
	product.Subscribers = fromDBSubscribers(subscribers[dbProduct.ID])

	return product, nil
}

func getPricePoints(ctx context.Context, db qrm.DB, productIDs []pg.Expression) (map[int32][]pgmodels.PricePoint, error) {
	points := []pgmodels.PricePoint{}
	err := table.PricePoint.SELECT(table.PricePoint.AllColumns).
		WHERE(table.PricePoint.ProductID.IN(productIDs...)).
		ORDER_BY(table.PricePoint.ObservedAt.ASC(), table.PricePoint.ID.ASC()).
		QueryContext(ctx, db, &points)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, err
	}

	result := make(map[int32][]pgmodels.PricePoint, len(productIDs))
	for ix := range points {
		result[points[ix].ProductID] = append(result[points[ix].ProductID], points[ix])
	}

	return result, nil
}

func getSubscribers(ctx context.Context, db qrm.DB, productIDs []pg.Expression) (map[int32][]pgmodels.Subscriber, error) {
	subscribers := []pgmodels.Subscriber{}
	err := table.Subscriber.SELECT(table.Subscriber.AllColumns).
		WHERE(table.Subscriber.ProductID.IN(productIDs...)).
		ORDER_BY(table.Subscriber.ID.ASC()).
		QueryContext(ctx, db, &subscribers)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, err
	}

	result := make(map[int32][]pgmodels.Subscriber, len(productIDs))
	for ix := range subscribers {
		result[subscribers[ix].ProductID] = append(result[subscribers[ix].ProductID], subscribers[ix])
	}

	return result, nil
}

func runInTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)

	if tx, err = db.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("can't rollback transaction: %w (rollback reason: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}
