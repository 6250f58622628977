package repository_test

import (
	"context"
	"testing"
	"time"

	"handicrafts/internal/domain/model"
	infraRepo "handicrafts/internal/infra/repository"
	repo "handicrafts/internal/repository"
	"handicrafts/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavorite_ToggleCycle(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	favs := usecase.NewFavoriteUsecase(
		infraRepo.NewFavoriteGormRepository(gdb),
		infraRepo.NewProductGormRepository(gdb),
		discardLogger(),
	)
	user := createUser(t, gdb, "fav@example.com")
	rug := productByName(t, gdb, "Jute Area Rug")

	for i, want := range []string{usecase.FavoriteAdded, usecase.FavoriteRemoved, usecase.FavoriteAdded} {
		got, err := favs.Toggle(ctx, user.ID, rug.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got, "toggle #%d", i+1)
	}

	ok, err := favs.Check(ctx, user.ID, rug.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := favs.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
}

// SQLiteは既定でBINARY照合なので大文字小文字は別のemail扱い
func TestUserRepository_EmailUniqueness(t *testing.T) {
	gdb := newTestDB(t)
	users := infraRepo.NewUserGormRepository(gdb)
	ctx := context.Background()

	createUser(t, gdb, "A@x.com")
	createUser(t, gdb, "a@x.com")

	dup := &model.User{FirstName: "D", LastName: "U", Email: "a@x.com", Password: "x", Status: model.UserStatusActive}
	assert.ErrorIs(t, users.Create(ctx, dup), repo.ErrDuplicate)

	u, err := users.FindByEmail(ctx, "A@x.com")
	require.NoError(t, err)
	assert.Equal(t, "A@x.com", u.Email)

	_, err = users.FindByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	gdb := newTestDB(t)
	sessions := infraRepo.NewSessionGormRepository(gdb)
	ctx := context.Background()
	user := createUser(t, gdb, "sess@example.com")
	now := time.Now()

	require.NoError(t, sessions.Create(ctx, &model.Session{UserID: user.ID, SessionToken: "live", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, sessions.Create(ctx, &model.Session{UserID: user.ID, SessionToken: "old", ExpiresAt: now.Add(-time.Hour)}))

	s, err := sessions.FindActive(ctx, "live", now)
	require.NoError(t, err)
	assert.Equal(t, user.ID, s.UserID)

	_, err = sessions.FindActive(ctx, "old", now)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	n, err := sessions.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, sessions.DeleteByToken(ctx, "live"))
	_, err = sessions.FindActive(ctx, "live", now)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
