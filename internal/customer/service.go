package customer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"restaurante/internal/domain"
	apperrors "restaurante/internal/errors"
	"restaurante/internal/infrastructure/metrics"
)

type directoryService struct {
	repo     Repository
	auth     Authenticator
	hashCost int
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, auth Authenticator, hashCost int, logger *zap.Logger) Service {
	return &directoryService{
		repo:     repo,
		auth:     auth,
		hashCost: hashCost,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *directoryService) Register(ctx context.Context, name, email, phone string) (*domain.Customer, error) {
	if err := requireFields(field{"name", name}, field{"email", email}, field{"phone", phone}); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(phone), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hashing phone: %w", err)
	}

	c := domain.Customer{
		Name:      name,
		Email:     email,
		Phone:     phone,
		PhoneHash: string(hash),
		CreatedAt: s.now().UTC(),
	}

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id

	metrics.CustomersRegisteredTotal.Inc()
	s.logger.Info("customer registered", zap.Int64("customerId", id))

	return &c, nil
}

func (s *directoryService) Authenticate(ctx context.Context, email, phone string) (*domain.Customer, error) {
	if err := requireFields(field{"email", email}, field{"phone", phone}); err != nil {
		return nil, err
	}

	c, err := s.auth.Authenticate(ctx, email, phone)
	if err != nil {
		if _, ok := apperrors.IsAuthenticationError(err); ok {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		}
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c, nil
}

type field struct {
	name  string
	value string
}

func requireFields(fields ...field) error {
	var details []apperrors.ValidationDetail
	for _, f := range fields {
		if f.value == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   f.name,
				Message: f.name + " is required",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("missing or invalid fields", details...)
	}
	return nil
}
