package customer

import (
	"database/sql"

	"go.uber.org/zap"

	"restaurante/internal/commons"
	"restaurante/internal/config"
	"restaurante/internal/customer/repository"
	"restaurante/internal/infrastructure/database"
)

func NewModule(db *sql.DB, dialect database.Dialect, cfg config.AuthConfig, validator *commons.Validator, logger *zap.Logger) (*Controller, error) {
	repo := repository.NewSQLRepository(db, dialect)

	auth, err := NewAuthenticator(cfg.Mode, repo)
	if err != nil {
		return nil, err
	}

	svc := NewService(repo, auth, cfg.HashCost, logger)
	return NewController(svc, validator, logger), nil
}
