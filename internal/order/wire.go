package order

import (
	"database/sql"

	"go.uber.org/zap"

	"restaurante/internal/commons"
	"restaurante/internal/config"
	customerrepo "restaurante/internal/customer/repository"
	"restaurante/internal/infrastructure/database"
	"restaurante/internal/order/controller"
	orderrepo "restaurante/internal/order/repository"
	"restaurante/internal/order/service"
	"restaurante/internal/order/usecase"
)

func NewModule(db *sql.DB, dialect database.Dialect, cfg config.OrderConfig, validator *commons.Validator, logger *zap.Logger) *controller.OrderController {
	orderRepo := orderrepo.NewSQLOrderRepository(db, dialect)
	logRepo := orderrepo.NewSQLStatusLogRepository(db, dialect)
	customerRepo := customerrepo.NewSQLRepository(db, dialect)

	transitions := service.NewTransitionService(
		orderRepo,
		orderRepo,
		logRepo,
		logger,
		cfg.TransitionTxTimeout,
	)

	ledger := usecase.NewLedgerUseCase(customerRepo, orderRepo, logRepo, logger)
	advance := usecase.NewAdvanceStatusUseCase(orderRepo, transitions, logger, cfg.MaxRetryAttempts)

	return controller.NewOrderController(ledger, advance, validator, logger)
}
