package customer

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"restaurante/internal/domain"
	apperrors "restaurante/internal/errors"
)

const (
	AuthModePhone  = "phone"
	AuthModeBcrypt = "bcrypt"
)

const invalidCredentials = "invalid credentials"

func NewAuthenticator(mode string, repo Repository) (Authenticator, error) {
	switch mode {
	case AuthModePhone:
		return &PhoneAuthenticator{repo: repo}, nil
	case AuthModeBcrypt:
		return &HashedAuthenticator{repo: repo}, nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", mode)
	}
}

// PhoneAuthenticator treats the stored phone number as a shared secret and
// requires an exact (email, phone) match.
type PhoneAuthenticator struct {
	repo Repository
}

func (a *PhoneAuthenticator) Authenticate(ctx context.Context, email, phone string) (*domain.Customer, error) {
	c, err := a.repo.FindByEmailAndPhone(ctx, email, phone)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewAuthenticationError(invalidCredentials)
		}
		return nil, err
	}
	return c, nil
}

// HashedAuthenticator compares the presented phone against the bcrypt hash
// written at registration. Customers without a hash cannot log in.
type HashedAuthenticator struct {
	repo Repository
}

func (a *HashedAuthenticator) Authenticate(ctx context.Context, email, phone string) (*domain.Customer, error) {
	c, err := a.repo.FindByEmail(ctx, email)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewAuthenticationError(invalidCredentials)
		}
		return nil, err
	}

	if c.PhoneHash == "" || bcrypt.CompareHashAndPassword([]byte(c.PhoneHash), []byte(phone)) != nil {
		return nil, apperrors.NewAuthenticationError(invalidCredentials)
	}

	return c, nil
}
