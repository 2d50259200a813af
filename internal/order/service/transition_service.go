package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"restaurante/internal/domain"
	apperrors "restaurante/internal/errors"
	"restaurante/internal/infrastructure/database"
)

// ErrStaleStatus reports that the order no longer holds the status the
// caller read, because another transition committed first.
var ErrStaleStatus = errors.New("order status changed concurrently")

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	CompareAndSetStatus(ctx context.Context, tx *sql.Tx, id int64, from, to domain.OrderStatus, now time.Time) (bool, error)
}

type StatusLogRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, entry domain.StatusLog) (int64, error)
}

// TransitionService persists a single status transition: the conditional
// update and its log row commit together or not at all.
type TransitionService struct {
	db        TransactionManager
	orderRepo OrderRepository
	logRepo   StatusLogRepository
	logger    *zap.Logger
	txTimeout time.Duration
	now       func() time.Time
}

func NewTransitionService(
	db TransactionManager,
	orderRepo OrderRepository,
	logRepo StatusLogRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *TransitionService {
	return &TransitionService{
		db:        db,
		orderRepo: orderRepo,
		logRepo:   logRepo,
		logger:    logger,
		txTimeout: txTimeout,
		now:       time.Now,
	}
}

func (s *TransitionService) Transition(ctx context.Context, orderID int64, from, to domain.OrderStatus) error {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Int64("orderId", orderID), zap.Error(err))
		return apperrors.NewInternalError("beginning transition", err)
	}
	// No-op once committed.
	defer tx.Rollback()

	now := s.now().UTC()

	updated, err := s.orderRepo.CompareAndSetStatus(txCtx, tx, orderID, from, to, now)
	if err != nil {
		return err
	}
	if !updated {
		s.logger.Debug("stale order status", zap.Int64("orderId", orderID), zap.Stringer("expected", from))
		return ErrStaleStatus
	}

	_, err = s.logRepo.Insert(txCtx, tx, domain.StatusLog{
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
		ChangedAt:  now,
	})
	if err != nil {
		// A concurrent writer already logged this target status.
		if database.IsUniqueViolation(err) {
			return ErrStaleStatus
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Int64("orderId", orderID), zap.Error(err))
		return apperrors.NewInternalError("committing transition", err)
	}

	s.logger.Info("transaction committed",
		zap.Int64("orderId", orderID),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
	)
	return nil
}
