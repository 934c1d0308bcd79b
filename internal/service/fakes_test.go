package service

import (
	"context"
	"errors"
	"fmt"

	"macromind-server/internal/domain"
	"macromind-server/internal/repository"
)

type fakeAuthRepo struct {
	creds      map[string]*domain.Credential
	nextID     int64
	deleteErr  error
	deletedIDs []int64
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{creds: map[string]*domain.Credential{}}
}

func (r *fakeAuthRepo) Init(context.Context) error { return nil }

func (r *fakeAuthRepo) Create(_ context.Context, cred *domain.Credential) (int64, error) {
	if _, ok := r.creds[cred.Email]; ok {
		return 0, fmt.Errorf("insert credential: %w", repository.ErrAlreadyExists)
	}
	r.nextID++
	cred.ID = r.nextID
	copied := *cred
	r.creds[cred.Email] = &copied
	return cred.ID, nil
}

func (r *fakeAuthRepo) GetByEmail(_ context.Context, email string) (*domain.Credential, error) {
	cred, ok := r.creds[email]
	if !ok {
		return nil, fmt.Errorf("credential: %w", repository.ErrNotFound)
	}
	copied := *cred
	return &copied, nil
}

func (r *fakeAuthRepo) GetByID(_ context.Context, id int64) (*domain.Credential, error) {
	for _, cred := range r.creds {
		if cred.ID == id {
			copied := *cred
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("credential: %w", repository.ErrNotFound)
}

func (r *fakeAuthRepo) UpdateRefreshTokenHash(_ context.Context, email, hash string) error {
	cred, ok := r.creds[email]
	if !ok {
		return fmt.Errorf("update refresh token hash: %w", repository.ErrNotFound)
	}
	cred.RefreshTokenHash = hash
	return nil
}

func (r *fakeAuthRepo) Delete(_ context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for email, cred := range r.creds {
		if cred.ID == id {
			delete(r.creds, email)
			r.deletedIDs = append(r.deletedIDs, id)
			return nil
		}
	}
	return fmt.Errorf("delete credential: %w", repository.ErrNotFound)
}

type fakeProfileRepo struct {
	profiles  map[int64]*domain.Profile
	nextID    int64
	createErr error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[int64]*domain.Profile{}}
}

func (r *fakeProfileRepo) Init(context.Context) error { return nil }

func (r *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	for _, existing := range r.profiles {
		if existing.UserID == profile.UserID {
			return 0, fmt.Errorf("insert profile: %w", repository.ErrAlreadyExists)
		}
	}
	r.nextID++
	profile.ID = r.nextID
	copied := *profile
	r.profiles[profile.ID] = &copied
	return profile.ID, nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id int64) (*domain.Profile, error) {
	profile, ok := r.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile: %w", repository.ErrNotFound)
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID int64) (*domain.Profile, error) {
	for _, profile := range r.profiles {
		if profile.UserID == userID {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("profile: %w", repository.ErrNotFound)
}

func (r *fakeProfileRepo) List(context.Context) ([]domain.Profile, error) {
	var profiles []domain.Profile
	for id := int64(1); id <= r.nextID; id++ {
		if profile, ok := r.profiles[id]; ok {
			profiles = append(profiles, *profile)
		}
	}
	return profiles, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	if _, ok := r.profiles[profile.ID]; !ok {
		return fmt.Errorf("update profile: %w", repository.ErrNotFound)
	}
	copied := *profile
	r.profiles[profile.ID] = &copied
	return nil
}

func (r *fakeProfileRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.profiles[id]; !ok {
		return fmt.Errorf("delete profile: %w", repository.ErrNotFound)
	}
	delete(r.profiles, id)
	return nil
}

var errStorageDown = errors.New("storage down")

func credentialWithHash(email, hash string) *domain.Credential {
	return &domain.Credential{Email: email, PasswordHash: hash}
}
