package repository

import (
	"context"

	"macromind-server/internal/domain"
)

// CardRepository defines persistence operations for Card records.
type CardRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, card *domain.Card) (int64, error)
	List(ctx context.Context) ([]domain.Card, error)
}
