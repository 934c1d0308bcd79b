package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"macromind-server/internal/domain"
	"macromind-server/internal/repository"
)

const createCardsTable = `
CREATE TABLE IF NOT EXISTS cards (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	image TEXT NOT NULL,
	data TEXT NOT NULL,
	liked_label TEXT NOT NULL,
	skipped_label TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`

type CardRepository struct {
	db *sql.DB
}

func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCardsTable); err != nil {
		return fmt.Errorf("create cards table: %w", err)
	}
	return nil
}

func (r *CardRepository) Create(ctx context.Context, card *domain.Card) (int64, error) {
	card.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (image, data, liked_label, skipped_label, created_at)
VALUES (?, ?, ?, ?, ?)`,
		card.Image,
		card.Data,
		card.LikedLabel,
		card.SkippedLabel,
		card.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert card: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("card last insert id: %w", err)
	}
	card.ID = id
	return id, nil
}

func (r *CardRepository) List(ctx context.Context) ([]domain.Card, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, image, data, liked_label, skipped_label, created_at
FROM cards
ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var card domain.Card
		if err := rows.Scan(
			&card.ID,
			&card.Image,
			&card.Data,
			&card.LikedLabel,
			&card.SkippedLabel,
			&card.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return cards, nil
}
