package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macromind-server/internal/domain"
	"macromind-server/internal/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestRepos(t *testing.T) (repository.AuthRepository, repository.ProfileRepository, repository.CardRepository) {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()

	authRepo := NewAuthRepository(db)
	profileRepo := NewProfileRepository(db)
	cardRepo := NewCardRepository(db)
	require.NoError(t, authRepo.Init(ctx))
	require.NoError(t, profileRepo.Init(ctx))
	require.NoError(t, cardRepo.Init(ctx))
	return authRepo, profileRepo, cardRepo
}

func TestAuthRepositoryCreateAndGet(t *testing.T) {
	authRepo, _, _ := newTestRepos(t)
	ctx := context.Background()

	cred := &domain.Credential{Email: "a@x.com", PasswordHash: "hash"}
	id, err := authRepo.Create(ctx, cred)
	require.NoError(t, err)
	assert.Equal(t, id, cred.ID)

	byEmail, err := authRepo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "hash", byEmail.PasswordHash)
	assert.Empty(t, byEmail.RefreshTokenHash)
	assert.False(t, byEmail.CreatedAt.IsZero())

	byID, err := authRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)
}

func TestAuthRepositoryDuplicateEmail(t *testing.T) {
	authRepo, _, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := authRepo.Create(ctx, &domain.Credential{Email: "a@x.com", PasswordHash: "hash"})
	require.NoError(t, err)

	_, err = authRepo.Create(ctx, &domain.Credential{Email: "a@x.com", PasswordHash: "other"})
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)
}

func TestAuthRepositoryGetMissing(t *testing.T) {
	authRepo, _, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := authRepo.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = authRepo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAuthRepositoryRefreshTokenHashLifecycle(t *testing.T) {
	authRepo, _, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := authRepo.Create(ctx, &domain.Credential{Email: "a@x.com", PasswordHash: "hash"})
	require.NoError(t, err)

	require.NoError(t, authRepo.UpdateRefreshTokenHash(ctx, "a@x.com", "fp-1"))
	cred, err := authRepo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "fp-1", cred.RefreshTokenHash)

	// rotation overwrites
	require.NoError(t, authRepo.UpdateRefreshTokenHash(ctx, "a@x.com", "fp-2"))
	cred, err = authRepo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "fp-2", cred.RefreshTokenHash)

	// logout clears to NULL
	require.NoError(t, authRepo.UpdateRefreshTokenHash(ctx, "a@x.com", ""))
	cred, err = authRepo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, cred.RefreshTokenHash)

	err = authRepo.UpdateRefreshTokenHash(ctx, "nobody@x.com", "fp")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAuthRepositoryDelete(t *testing.T) {
	authRepo, _, _ := newTestRepos(t)
	ctx := context.Background()

	id, err := authRepo.Create(ctx, &domain.Credential{Email: "a@x.com", PasswordHash: "hash"})
	require.NoError(t, err)

	require.NoError(t, authRepo.Delete(ctx, id))
	_, err = authRepo.GetByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, authRepo.Delete(ctx, id), repository.ErrNotFound)
}

func createCredential(t *testing.T, authRepo repository.AuthRepository, email string) int64 {
	t.Helper()
	id, err := authRepo.Create(context.Background(), &domain.Credential{Email: email, PasswordHash: "hash"})
	require.NoError(t, err)
	return id
}

func TestProfileRepositoryRoundTrip(t *testing.T) {
	authRepo, profileRepo, _ := newTestRepos(t)
	ctx := context.Background()
	userID := createCredential(t, authRepo, "a@x.com")

	profile := &domain.Profile{
		UserID:      userID,
		Name:        "A",
		PhoneNumber: "1",
		Preferences: []string{"sports", "trading"},
		Location:    "NY",
	}
	id, err := profileRepo.Create(ctx, profile)
	require.NoError(t, err)

	got, err := profileRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"sports", "trading"}, got.Preferences)
	assert.Equal(t, userID, got.UserID)

	byUser, err := profileRepo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, id, byUser.ID)
}

func TestProfileRepositoryOnePerUser(t *testing.T) {
	authRepo, profileRepo, _ := newTestRepos(t)
	ctx := context.Background()
	userID := createCredential(t, authRepo, "a@x.com")

	_, err := profileRepo.Create(ctx, &domain.Profile{
		UserID: userID, Name: "A", PhoneNumber: "1", Preferences: []string{"x"}, Location: "NY",
	})
	require.NoError(t, err)

	_, err = profileRepo.Create(ctx, &domain.Profile{
		UserID: userID, Name: "B", PhoneNumber: "2", Preferences: []string{"y"}, Location: "SF",
	})
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)
}

func TestProfileRepositoryUpdateAndDelete(t *testing.T) {
	authRepo, profileRepo, _ := newTestRepos(t)
	ctx := context.Background()
	userID := createCredential(t, authRepo, "a@x.com")

	profile := &domain.Profile{
		UserID: userID, Name: "A", PhoneNumber: "1", Preferences: []string{"x"}, Location: "NY",
	}
	_, err := profileRepo.Create(ctx, profile)
	require.NoError(t, err)

	profile.Location = "SF"
	profile.Preferences = []string{"x", "y"}
	require.NoError(t, profileRepo.Update(ctx, profile))

	got, err := profileRepo.GetByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "SF", got.Location)
	assert.Equal(t, []string{"x", "y"}, got.Preferences)

	require.NoError(t, profileRepo.Delete(ctx, profile.ID))
	_, err = profileRepo.GetByID(ctx, profile.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// credential untouched by profile delete
	_, err = authRepo.GetByID(ctx, userID)
	assert.NoError(t, err)
}

func TestProfileRepositoryList(t *testing.T) {
	authRepo, profileRepo, _ := newTestRepos(t)
	ctx := context.Background()

	for _, email := range []string{"a@x.com", "b@x.com"} {
		userID := createCredential(t, authRepo, email)
		_, err := profileRepo.Create(ctx, &domain.Profile{
			UserID: userID, Name: email, PhoneNumber: "1", Preferences: []string{"x"}, Location: "NY",
		})
		require.NoError(t, err)
	}

	profiles, err := profileRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
}

func TestCardRepositoryCreateAndList(t *testing.T) {
	_, _, cardRepo := newTestRepos(t)
	ctx := context.Background()

	card := &domain.Card{
		Image:        "https://example.com/a.jpg",
		Data:         "data",
		LikedLabel:   "Invest",
		SkippedLabel: "Pass",
	}
	id, err := cardRepo.Create(ctx, card)
	require.NoError(t, err)
	assert.Equal(t, id, card.ID)

	cards, err := cardRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Pass", cards[0].SkippedLabel)
}
