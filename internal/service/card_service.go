package service

import (
	"context"
	"fmt"
	"strings"

	"macromind-server/internal/domain"
	"macromind-server/internal/repository"
)

// CardInput carries the fields for a new swipeable card.
type CardInput struct {
	Image        string
	Data         string
	LikedLabel   string
	SkippedLabel string
}

// CardService covers card listing and creation.
type CardService interface {
	Create(ctx context.Context, input CardInput) (*domain.Card, error)
	List(ctx context.Context) ([]domain.Card, error)
}

type cardService struct {
	cards repository.CardRepository
}

func NewCardService(cards repository.CardRepository) CardService {
	return &cardService{cards: cards}
}

func (s *cardService) Create(ctx context.Context, input CardInput) (*domain.Card, error) {
	switch {
	case strings.TrimSpace(input.Image) == "":
		return nil, fmt.Errorf("%w: image is required", ErrValidation)
	case strings.TrimSpace(input.Data) == "":
		return nil, fmt.Errorf("%w: data is required", ErrValidation)
	case strings.TrimSpace(input.LikedLabel) == "":
		return nil, fmt.Errorf("%w: isLiked label is required", ErrValidation)
	case strings.TrimSpace(input.SkippedLabel) == "":
		return nil, fmt.Errorf("%w: isSkipped label is required", ErrValidation)
	}

	card := &domain.Card{
		Image:        input.Image,
		Data:         input.Data,
		LikedLabel:   input.LikedLabel,
		SkippedLabel: input.SkippedLabel,
	}
	if _, err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *cardService) List(ctx context.Context) ([]domain.Card, error) {
	return s.cards.List(ctx)
}
