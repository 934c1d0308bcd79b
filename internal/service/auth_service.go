package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"macromind-server/internal/domain"
	"macromind-server/internal/repository"
	"macromind-server/internal/token"
)

// Onboarding status values returned by Login.
const (
	OnboardingComplete          = "COMPLETE"
	OnboardingIncompleteProfile = "INCOMPLETE_PROFILE"
)

// RegisterInput carries everything needed to create a credential and
// its linked profile in one step.
type RegisterInput struct {
	Email       string
	Password    string
	Name        string
	PhoneNumber string
	Preferences []string
	Location    string
}

// RegisterResult is the outcome of a successful registration. A fresh
// registration always has a complete profile.
type RegisterResult struct {
	AccessToken  string
	RefreshToken string
	Email        string
	Name         string
}

// LoginResult is the outcome of a successful login. Name is empty when
// the profile has not been created yet.
type LoginResult struct {
	AccessToken      string
	RefreshToken     string
	OnboardingStatus string
	Email            string
	Name             string
	ProfileComplete  bool
}

// TokenPair is a freshly rotated access/refresh pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService orchestrates registration, login, logout, and refresh
// token rotation across the credential and profile stores.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, email string) error
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authService struct {
	auth     repository.AuthRepository
	profiles repository.ProfileRepository
	tokens   *token.Service
	logger   *logrus.Logger
}

func NewAuthService(auth repository.AuthRepository, profiles repository.ProfileRepository, tokens *token.Service, logger *logrus.Logger) AuthService {
	return &authService{
		auth:     auth,
		profiles: profiles,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates the credential and its linked profile. The two
// writes are not transactional: if the profile write fails, the
// just-created credential is deleted so no ghost credential survives a
// failed registration. A failure of that compensating delete is logged
// distinctly since it leaves a ghost record needing manual cleanup.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.Name = strings.TrimSpace(input.Name)

	switch {
	case input.Email == "":
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	case input.Password == "":
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	case input.Name == "":
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	case strings.TrimSpace(input.PhoneNumber) == "":
		return nil, fmt.Errorf("%w: phone number is required", ErrValidation)
	case len(input.Preferences) == 0:
		return nil, fmt.Errorf("%w: preferences are required", ErrValidation)
	case strings.TrimSpace(input.Location) == "":
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}

	if _, err := s.auth.GetByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("%w: user %s", ErrConflict, input.Email)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	accessToken, err := s.tokens.IssueAccessToken(input.Email)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(input.Email)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	cred := &domain.Credential{
		Email:            input.Email,
		PasswordHash:     string(hash),
		RefreshTokenHash: s.tokens.Fingerprint(refreshToken),
	}
	credID, err := s.auth.Create(ctx, cred)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: user %s", ErrConflict, input.Email)
		}
		return nil, err
	}

	profile := &domain.Profile{
		UserID:      credID,
		Name:        input.Name,
		PhoneNumber: input.PhoneNumber,
		Preferences: input.Preferences,
		Location:    input.Location,
	}
	if _, err := s.profiles.Create(ctx, profile); err != nil {
		if delErr := s.auth.Delete(ctx, credID); delErr != nil {
			s.logger.WithError(delErr).WithFields(logrus.Fields{
				"email":         input.Email,
				"credential_id": credID,
			}).Error("compensating credential delete failed; ghost credential remains")
			return nil, fmt.Errorf("create profile: %v; compensating delete: %w", err, delErr)
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	return &RegisterResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Email:        cred.Email,
		Name:         profile.Name,
	}, nil
}

// Login verifies the password, rotates the stored refresh fingerprint,
// and reports whether onboarding is complete. A credential with no
// profile is a valid post-login state.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	cred, err := s.auth.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid password", ErrUnauthorized)
	}

	accessToken, err := s.tokens.IssueAccessToken(email)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(email)
	if err != nil {
		return nil, err
	}

	// Overwrites any previous fingerprint: one active session per user.
	if err := s.auth.UpdateRefreshTokenHash(ctx, email, s.tokens.Fingerprint(refreshToken)); err != nil {
		return nil, err
	}

	result := &LoginResult{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		OnboardingStatus: OnboardingIncompleteProfile,
		Email:            cred.Email,
	}

	profile, err := s.profiles.GetByUserID(ctx, cred.ID)
	switch {
	case err == nil:
		result.OnboardingStatus = OnboardingComplete
		result.Name = profile.Name
		result.ProfileComplete = true
	case errors.Is(err, repository.ErrNotFound):
		// incomplete onboarding, not an error
	default:
		return nil, err
	}

	return result, nil
}

// Logout clears the stored refresh fingerprint, making any outstanding
// refresh token for the identity unusable on its next presentation.
func (s *authService) Logout(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if err := s.auth.UpdateRefreshTokenHash(ctx, email, ""); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

// Refresh verifies the presented refresh token against the stored
// fingerprint and rotates it: every successful refresh invalidates the
// token just consumed.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, fmt.Errorf("%w: refresh token is required", ErrValidation)
	}

	email, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}

	cred, err := s.auth.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token request", ErrUnauthorized)
	}
	if cred.RefreshTokenHash == "" {
		return nil, fmt.Errorf("%w: no active session", ErrUnauthorized)
	}
	if s.tokens.Fingerprint(refreshToken) != cred.RefreshTokenHash {
		// Covers rotated or reused tokens: rotation already replaced the
		// stored fingerprint.
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}

	accessToken, err := s.tokens.IssueAccessToken(email)
	if err != nil {
		return nil, err
	}
	newRefreshToken, err := s.tokens.IssueRefreshToken(email)
	if err != nil {
		return nil, err
	}
	if err := s.auth.UpdateRefreshTokenHash(ctx, email, s.tokens.Fingerprint(newRefreshToken)); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}
