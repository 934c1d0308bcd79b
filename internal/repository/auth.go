package repository

import (
	"context"

	"macromind-server/internal/domain"
)

// AuthRepository defines persistence operations for Credential records.
type AuthRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, cred *domain.Credential) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.Credential, error)
	GetByID(ctx context.Context, id int64) (*domain.Credential, error)
	// UpdateRefreshTokenHash stores the fingerprint of the active refresh
	// token; an empty hash clears the session.
	UpdateRefreshTokenHash(ctx context.Context, email, hash string) error
	Delete(ctx context.Context, id int64) error
}
