package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"macromind-server/internal/domain"
	"macromind-server/internal/repository"
)

const createCredentialsTable = `
CREATE TABLE IF NOT EXISTS credentials (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	refresh_token_hash TEXT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type AuthRepository struct {
	db *sql.DB
}

func NewAuthRepository(db *sql.DB) repository.AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCredentialsTable); err != nil {
		return fmt.Errorf("create credentials table: %w", err)
	}
	return nil
}

func (r *AuthRepository) Create(ctx context.Context, cred *domain.Credential) (int64, error) {
	now := time.Now().UTC()
	cred.CreatedAt = now
	cred.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO credentials (email, password_hash, refresh_token_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		cred.Email,
		cred.PasswordHash,
		nullableString(cred.RefreshTokenHash),
		cred.CreatedAt,
		cred.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("insert credential: %w", repository.ErrAlreadyExists)
		}
		return 0, fmt.Errorf("insert credential: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("credential last insert id: %w", err)
	}
	cred.ID = id
	return id, nil
}

func (r *AuthRepository) GetByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, email, password_hash, refresh_token_hash, created_at, updated_at
FROM credentials
WHERE email = ?`,
		email,
	)
	return scanCredential(row)
}

func (r *AuthRepository) GetByID(ctx context.Context, id int64) (*domain.Credential, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, email, password_hash, refresh_token_hash, created_at, updated_at
FROM credentials
WHERE id = ?`,
		id,
	)
	return scanCredential(row)
}

func (r *AuthRepository) UpdateRefreshTokenHash(ctx context.Context, email, hash string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE credentials
SET refresh_token_hash = ?, updated_at = ?
WHERE email = ?`,
		nullableString(hash),
		time.Now().UTC(),
		email,
	)
	if err != nil {
		return fmt.Errorf("update refresh token hash: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update refresh token hash rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update refresh token hash: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *AuthRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete credential rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete credential: %w", repository.ErrNotFound)
	}
	return nil
}

func scanCredential(row interface {
	Scan(dest ...any) error
}) (*domain.Credential, error) {
	var (
		cred domain.Credential
		hash sql.NullString
	)
	if err := row.Scan(
		&cred.ID,
		&cred.Email,
		&cred.PasswordHash,
		&hash,
		&cred.CreatedAt,
		&cred.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("credential: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan credential: %w", err)
	}
	if hash.Valid {
		cred.RefreshTokenHash = hash.String
	}
	return &cred, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
