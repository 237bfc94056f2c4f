package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cafe-ordering-api/models"
	"cafe-ordering-api/tables"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateNumber means the generated order number is already taken.
	ErrDuplicateNumber = errors.New("order number already exists")
	// ErrDuplicateKey means another request stored the same idempotency key first.
	ErrDuplicateKey = errors.New("idempotency key already used")
)

//go:generate mockgen -source=repository.go -destination=mocks_test.go -package=checkout
//go:generate mockgen -destination=publisher_mock_test.go -package=checkout cafe-ordering-api/events Publisher

// Repository persists placed orders.
type Repository interface {
	// FindByIdempotencyKey returns nil, nil when no order carries key.
	FindByIdempotencyKey(ctx context.Context, key string) (*models.Order, error)
	// Create stores the order with its items and first history entry. Dine-in
	// orders claim their table in the same transaction.
	Create(ctx context.Context, order *models.Order) error
}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) FindByIdempotencyKey(ctx context.Context, key string) (*models.Order, error) {
	var o models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("StatusHistory").
		Where("idempotency_key = ?", key).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find order by idempotency key: %w", err)
	}
	return &o, nil
}

func (r *GormRepository) Create(ctx context.Context, order *models.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if order.Fulfillment.Type == models.DineIn {
			t, err := tables.Occupy(tx, order.Fulfillment.TableNumber)
			if err != nil {
				return err
			}
			order.Fulfillment.TableSeats = t.Seats
		}
		return tx.Create(order).Error
	})
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err, "orders.number"):
		order.ID = 0
		return ErrDuplicateNumber
	case isUniqueViolation(err, "orders.idempotency_key"):
		order.ID = 0
		return ErrDuplicateKey
	}
	return err
}

func isUniqueViolation(err error, column string) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column)
}
