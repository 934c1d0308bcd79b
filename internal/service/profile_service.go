package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"macromind-server/internal/domain"
	"macromind-server/internal/repository"
)

// ProfileInput carries the display attributes for creating a profile.
type ProfileInput struct {
	Name        string
	PhoneNumber string
	Preferences []string
	Location    string
}

// ProfileUpdate carries a partial update; zero-valued fields are left
// unchanged.
type ProfileUpdate struct {
	Name        string
	PhoneNumber string
	Preferences []string
	Location    string
}

// ProfileWithEmail is a profile joined with the owning credential's
// email for the current-user view.
type ProfileWithEmail struct {
	domain.Profile
	Email string
}

// ProfileService covers profile CRUD. Deleting a profile never touches
// the owning credential.
type ProfileService interface {
	Create(ctx context.Context, userID int64, input ProfileInput) (*domain.Profile, error)
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	GetCurrent(ctx context.Context, userID int64) (*ProfileWithEmail, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Update(ctx context.Context, id int64, update ProfileUpdate) (*domain.Profile, error)
	Delete(ctx context.Context, id int64) error
}

type profileService struct {
	profiles repository.ProfileRepository
	auth     repository.AuthRepository
}

func NewProfileService(profiles repository.ProfileRepository, auth repository.AuthRepository) ProfileService {
	return &profileService{profiles: profiles, auth: auth}
}

func (s *profileService) Create(ctx context.Context, userID int64, input ProfileInput) (*domain.Profile, error) {
	input.Name = strings.TrimSpace(input.Name)

	switch {
	case input.Name == "":
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	case strings.TrimSpace(input.PhoneNumber) == "":
		return nil, fmt.Errorf("%w: phone number is required", ErrValidation)
	case len(input.Preferences) == 0:
		return nil, fmt.Errorf("%w: preferences are required", ErrValidation)
	case strings.TrimSpace(input.Location) == "":
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}

	if _, err := s.profiles.GetByUserID(ctx, userID); err == nil {
		return nil, fmt.Errorf("%w: profile for this user", ErrConflict)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	profile := &domain.Profile{
		UserID:      userID,
		Name:        input.Name,
		PhoneNumber: input.PhoneNumber,
		Preferences: input.Preferences,
		Location:    input.Location,
	}
	if _, err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: profile for this user", ErrConflict)
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: profile %d", ErrNotFound, id)
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) GetCurrent(ctx context.Context, userID int64) (*ProfileWithEmail, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: profile for user %d", ErrNotFound, userID)
		}
		return nil, err
	}

	result := &ProfileWithEmail{Profile: *profile}
	if cred, err := s.auth.GetByID(ctx, userID); err == nil {
		result.Email = cred.Email
	}
	return result, nil
}

func (s *profileService) List(ctx context.Context) ([]domain.Profile, error) {
	return s.profiles.List(ctx)
}

func (s *profileService) Update(ctx context.Context, id int64, update ProfileUpdate) (*domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: profile %d", ErrNotFound, id)
		}
		return nil, err
	}

	if name := strings.TrimSpace(update.Name); name != "" {
		profile.Name = name
	}
	if phone := strings.TrimSpace(update.PhoneNumber); phone != "" {
		profile.PhoneNumber = phone
	}
	if len(update.Preferences) > 0 {
		profile.Preferences = update.Preferences
	}
	if location := strings.TrimSpace(update.Location); location != "" {
		profile.Location = location
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) Delete(ctx context.Context, id int64) error {
	if err := s.profiles.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: profile %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
