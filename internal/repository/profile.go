package repository

import (
	"context"

	"macromind-server/internal/domain"
)

// ProfileRepository defines persistence operations for Profile records.
type ProfileRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, profile *domain.Profile) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, id int64) error
}
