package usecase

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"restaurante/internal/domain"
	apperrors "restaurante/internal/errors"
	"restaurante/internal/infrastructure/database"
	"restaurante/internal/infrastructure/metrics"
	"restaurante/internal/order/service"
)

type StatusReader interface {
	FindStatus(ctx context.Context, id int64) (string, error)
}

type StatusTransitioner interface {
	Transition(ctx context.Context, orderID int64, from, to domain.OrderStatus) error
}

// Backoff before attempt n+1 is backoffs[n-1], clamped to the last entry,
// plus up to 20% jitter.
var backoffs = []time.Duration{0, 50 * time.Millisecond, 100 * time.Millisecond, 200 * time.Millisecond}

type AdvanceStatusUseCase struct {
	orderRepo        StatusReader
	transitioner     StatusTransitioner
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewAdvanceStatusUseCase(
	orderRepo StatusReader,
	transitioner StatusTransitioner,
	logger *zap.Logger,
	maxRetryAttempts int,
) *AdvanceStatusUseCase {
	return &AdvanceStatusUseCase{
		orderRepo:        orderRepo,
		transitioner:     transitioner,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

// Advance moves the order one step along pending -> preparing -> delivered
// and returns the new status.
func (uc *AdvanceStatusUseCase) Advance(ctx context.Context, orderID int64) (domain.OrderStatus, error) {
	logger := uc.logger.With(zap.Int64("orderId", orderID))

	maxAttempts := uc.maxRetryAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		current, next, err := uc.nextStatus(ctx, orderID)
		if err != nil {
			return 0, err
		}

		err = uc.transitioner.Transition(ctx, orderID, current, next)
		if err == nil {
			metrics.OrderTransitionsTotal.WithLabelValues(current.String(), next.String()).Inc()
			logger.Info("order status advanced", zap.Stringer("from", current), zap.Stringer("to", next), zap.Int("attempt", attempt))
			return next, nil
		}

		if !isRetryable(err) {
			return 0, err
		}

		if attempt == maxAttempts {
			break
		}

		metrics.OrderTransitionRetriesTotal.Inc()
		logger.Warn("concurrent transition detected, retrying",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", maxAttempts),
			zap.Error(err),
		)

		if err := sleep(ctx, backoff(attempt)); err != nil {
			return 0, err
		}
	}

	metrics.OrderTransitionRejectionsTotal.WithLabelValues("conflict").Inc()
	logger.Warn("order transition retries exhausted", zap.Int("maxAttempts", maxAttempts))
	return 0, apperrors.NewConflictError("order was modified concurrently, please retry")
}

func (uc *AdvanceStatusUseCase) nextStatus(ctx context.Context, orderID int64) (domain.OrderStatus, domain.OrderStatus, error) {
	raw, err := uc.orderRepo.FindStatus(ctx, orderID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			metrics.OrderTransitionRejectionsTotal.WithLabelValues("not_found").Inc()
		}
		return 0, 0, err
	}

	current, err := domain.ParseOrderStatus(raw)
	if err != nil {
		metrics.OrderTransitionRejectionsTotal.WithLabelValues("unknown_state").Inc()
		return 0, 0, apperrors.NewInvalidTransitionError("unknown state", raw)
	}

	next, err := current.Next()
	if errors.Is(err, domain.ErrAlreadyDelivered) {
		metrics.OrderTransitionRejectionsTotal.WithLabelValues("already_delivered").Inc()
		return 0, 0, apperrors.NewInvalidTransitionError("already delivered", raw)
	}
	if err != nil {
		metrics.OrderTransitionRejectionsTotal.WithLabelValues("unknown_state").Inc()
		return 0, 0, apperrors.NewInvalidTransitionError("unknown state", raw)
	}

	return current, next, nil
}

func isRetryable(err error) bool {
	return errors.Is(err, service.ErrStaleStatus) || database.IsRetryable(err)
}

func backoff(attempt int) time.Duration {
	base := backoffs[len(backoffs)-1]
	if attempt-1 < len(backoffs) {
		base = backoffs[attempt-1]
	}
	if base <= 0 {
		return 0
	}
	jitter := time.Duration(rand.Float64() * 0.2 * float64(base))
	return base + jitter
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
