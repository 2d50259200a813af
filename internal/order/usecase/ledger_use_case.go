package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"restaurante/internal/domain"
	apperrors "restaurante/internal/errors"
	"restaurante/internal/infrastructure/metrics"
)

type CustomerDirectory interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

type OrderStore interface {
	Insert(ctx context.Context, o domain.Order) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
}

type StatusLogReader interface {
	ListByOrder(ctx context.Context, orderID int64) ([]domain.StatusLog, error)
}

// LedgerUseCase records new orders and answers read queries over them.
type LedgerUseCase struct {
	customers CustomerDirectory
	orders    OrderStore
	logs      StatusLogReader
	logger    *zap.Logger
	now       func() time.Time
}

func NewLedgerUseCase(customers CustomerDirectory, orders OrderStore, logs StatusLogReader, logger *zap.Logger) *LedgerUseCase {
	return &LedgerUseCase{
		customers: customers,
		orders:    orders,
		logs:      logs,
		logger:    logger,
		now:       time.Now,
	}
}

// PlaceOrder stores a new pending order. Empty notes are stored as NULL.
func (uc *LedgerUseCase) PlaceOrder(ctx context.Context, customerID int64, dishName string, notes *string) (int64, error) {
	var details []apperrors.ValidationDetail
	if customerID <= 0 {
		details = append(details, apperrors.ValidationDetail{Field: "customerId", Message: "customerId is required"})
	}
	if strings.TrimSpace(dishName) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "dishName", Message: "dishName is required"})
	}
	if len(details) > 0 {
		return 0, apperrors.NewValidationError("missing or invalid fields", details...)
	}

	exists, err := uc.customers.ExistsByID(ctx, customerID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, apperrors.NewNotFoundError("customer not found")
	}

	if notes != nil && *notes == "" {
		notes = nil
	}

	now := uc.now().UTC()
	id, err := uc.orders.Insert(ctx, domain.Order{
		CustomerID: customerID,
		DishName:   dishName,
		Notes:      notes,
		Status:     domain.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return 0, err
	}

	metrics.OrdersCreatedTotal.Inc()
	uc.logger.Info("order created", zap.Int64("orderId", id), zap.Int64("customerId", customerID))

	return id, nil
}

func (uc *LedgerUseCase) ListOrders(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return uc.orders.ListByCustomer(ctx, customerID)
}

// History returns the committed transitions of an order, oldest first.
func (uc *LedgerUseCase) History(ctx context.Context, orderID int64) ([]domain.StatusLog, error) {
	exists, err := uc.orders.Exists(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFoundError("order not found")
	}

	return uc.logs.ListByOrder(ctx, orderID)
}
