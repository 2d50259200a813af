package customer

import (
	"context"

	"restaurante/internal/domain"
)

type Service interface {
	Register(ctx context.Context, name, email, phone string) (*domain.Customer, error)
	Authenticate(ctx context.Context, email, phone string) (*domain.Customer, error)
}

// Authenticator resolves a customer from the credentials presented at login.
type Authenticator interface {
	Authenticate(ctx context.Context, email, phone string) (*domain.Customer, error)
}

type Repository interface {
	Create(ctx context.Context, c domain.Customer) (int64, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	FindByEmailAndPhone(ctx context.Context, email, phone string) (*domain.Customer, error)
}
