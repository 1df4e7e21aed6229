package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tableside/backend/internal/domain/ordering"
	"github.com/tableside/backend/internal/domain/shared"
	"github.com/tableside/backend/internal/domain/shared/valueobject"
)

func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormOrderRepository_FindByOrderNumber(t *testing.T) {
	t.Run("returns ErrNotFound for unknown number", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(db)

		restaurantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE restaurant_id = \$1 AND order_number = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(restaurantID, "ORD-20260830-001", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByOrderNumber(context.Background(), restaurantID, "ORD-20260830-001")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("loads order row", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(db)

		restaurantID := uuid.New()
		orderID := uuid.New()

		orderRows := sqlmock.NewRows([]string{
			"id", "restaurant_id", "order_number", "currency",
			"subtotal", "tax_amount", "discount_amount", "total_amount",
			"status", "payment_status", "placed_at",
		}).AddRow(
			orderID, restaurantID, "ORD-20260830-001", string(valueobject.USD),
			decimal.RequireFromString("29.98"), decimal.RequireFromString("1.50"),
			decimal.Zero, decimal.RequireFromString("31.48"),
			string(ordering.OrderStatusPending), string(ordering.PaymentStatusPending),
			time.Now(),
		)

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE restaurant_id = \$1 AND order_number = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(restaurantID, "ORD-20260830-001", 1).
			WillReturnRows(orderRows)
		mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE "order_items"\."order_id" = \$1`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id"}))

		order, err := repo.FindByOrderNumber(context.Background(), restaurantID, "ORD-20260830-001")
		require.NoError(t, err)
		assert.Equal(t, "ORD-20260830-001", order.OrderNumber)
		assert.Equal(t, ordering.OrderStatusPending, order.Status)
		assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("31.48")))
	})
}

func TestGormOrderRepository_SaveWithLock(t *testing.T) {
	t.Run("persists a conflict-free transition against the stored version", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(db)

		restaurantID := uuid.New()
		order, err := ordering.NewOrder(restaurantID, "ORD-20260830-001", nil, valueobject.USD)
		require.NoError(t, err)
		require.Equal(t, 1, order.Version)

		// a mutated aggregate carries the next version; the row still
		// holds the one it was loaded with
		require.NoError(t, order.StartPreparing())
		require.Equal(t, 2, order.Version)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "orders" SET .* WHERE id = \$11 AND restaurant_id = \$12 AND version = \$13`).
			WithArgs(
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				string(ordering.OrderStatusPreparing), sqlmock.AnyArg(), 2,
				order.ID, restaurantID, 1,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.SaveWithLock(context.Background(), order))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrConcurrencyConflict when version moved on", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(db)

		restaurantID := uuid.New()
		order := &ordering.Order{}
		order.ID = uuid.New()
		order.RestaurantID = restaurantID
		order.Version = 3 // previous row version expected to be 2

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "orders" SET .*`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE id = \$1 AND restaurant_id = \$2`).
			WithArgs(order.ID, restaurantID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		err := repo.SaveWithLock(context.Background(), order)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when the order vanished", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(db)

		order := &ordering.Order{}
		order.ID = uuid.New()
		order.RestaurantID = uuid.New()
		order.Version = 1

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "orders" SET .*`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE id = \$1 AND restaurant_id = \$2`).
			WithArgs(order.ID, order.RestaurantID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectRollback()

		err := repo.SaveWithLock(context.Background(), order)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCounterNumberGenerator_NextOrderNumber(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	gen := NewCounterNumberGenerator(db)

	restaurantID := uuid.New()
	day := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO order_number_counters .*ON CONFLICT.*RETURNING last_sequence`).
		WithArgs(restaurantID, "20260830").
		WillReturnRows(sqlmock.NewRows([]string{"last_sequence"}).AddRow(7))

	number, err := gen.NextOrderNumber(context.Background(), restaurantID, day)
	require.NoError(t, err)
	assert.Equal(t, "ORD-20260830-007", number)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(errors.New(`pq: duplicate key value violates unique constraint "idx_orders_restaurant_number"`)))
	assert.True(t, isUniqueViolation(errors.New("UNIQUE constraint failed: orders.order_number")))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}
