package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"macromind-server/internal/domain"
	"macromind-server/internal/repository"
)

const createProfilesTable = `
CREATE TABLE IF NOT EXISTS profiles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL UNIQUE REFERENCES credentials(id),
	name TEXT NOT NULL,
	phone_number TEXT NOT NULL,
	preferences TEXT NOT NULL,
	location TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createProfilesTable); err != nil {
		return fmt.Errorf("create profiles table: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) (int64, error) {
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	prefs, err := json.Marshal(profile.Preferences)
	if err != nil {
		return 0, fmt.Errorf("encode preferences: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO profiles (user_id, name, phone_number, preferences, location, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		profile.UserID,
		profile.Name,
		profile.PhoneNumber,
		string(prefs),
		profile.Location,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("insert profile: %w", repository.ErrAlreadyExists)
		}
		return 0, fmt.Errorf("insert profile: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("profile last insert id: %w", err)
	}
	profile.ID = id
	return id, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, name, phone_number, preferences, location, created_at, updated_at
FROM profiles
WHERE id = ?`,
		id,
	)
	return scanProfile(row)
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, name, phone_number, preferences, location, created_at, updated_at
FROM profiles
WHERE user_id = ?`,
		userID,
	)
	return scanProfile(row)
}

func (r *ProfileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, name, phone_number, preferences, location, created_at, updated_at
FROM profiles
ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return profiles, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	profile.UpdatedAt = time.Now().UTC()

	prefs, err := json.Marshal(profile.Preferences)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE profiles
SET name = ?, phone_number = ?, preferences = ?, location = ?, updated_at = ?
WHERE id = ?`,
		profile.Name,
		profile.PhoneNumber,
		string(prefs),
		profile.Location,
		profile.UpdatedAt,
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update profile: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete profile: %w", repository.ErrNotFound)
	}
	return nil
}

func scanProfile(row interface {
	Scan(dest ...any) error
}) (*domain.Profile, error) {
	var (
		profile domain.Profile
		prefs   string
	)
	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		&profile.PhoneNumber,
		&prefs,
		&profile.Location,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	if err := json.Unmarshal([]byte(prefs), &profile.Preferences); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	return &profile, nil
}
