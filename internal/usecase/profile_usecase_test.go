package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"

	"handicrafts/internal/domain/model"
	repo "handicrafts/internal/repository"
	"handicrafts/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type profileFixture struct {
	uc       *usecase.ProfileUsecase
	users    *UserRepoMock
	hasher   *HasherMock
	verifier *VerifierMock
	avatars  *AvatarStoreMock
}

func newProfileFixture(maxAvatar int64) *profileFixture {
	f := &profileFixture{
		users:    new(UserRepoMock),
		hasher:   new(HasherMock),
		verifier: new(VerifierMock),
		avatars:  new(AvatarStoreMock),
	}
	f.uc = usecase.NewProfileUsecase(f.users, f.hasher, f.verifier, f.avatars, maxAvatar, &testLogger{})
	return f
}

func TestProfileUpdate(t *testing.T) {
	ctx := context.Background()
	in := usecase.UpdateProfileInput{FirstName: "Rahim", LastName: "Uddin", Email: "rahim@example.com"}

	t.Run("required fields", func(t *testing.T) {
		f := newProfileFixture(0)
		err := f.uc.Update(ctx, 1, usecase.UpdateProfileInput{FirstName: "Rahim"})
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("invalid email", func(t *testing.T) {
		f := newProfileFixture(0)
		bad := in
		bad.Email = "not-an-email"
		err := f.uc.Update(ctx, 1, bad)
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("display name email", func(t *testing.T) {
		f := newProfileFixture(0)
		bad := in
		bad.Email = "Bob <bob@example.com>"
		err := f.uc.Update(ctx, 1, bad)
		requireStatus(t, err, http.StatusBadRequest)
		f.users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("email in use", func(t *testing.T) {
		f := newProfileFixture(0)
		f.users.On("EmailTakenByOther", ctx, "rahim@example.com", int64(1)).Return(true, nil)
		err := f.uc.Update(ctx, 1, in)
		requireStatus(t, err, http.StatusConflict)
		assert.ErrorIs(t, err, usecase.ErrConflict)
	})

	t.Run("ok", func(t *testing.T) {
		f := newProfileFixture(0)
		f.users.On("EmailTakenByOther", ctx, "rahim@example.com", int64(1)).Return(false, nil)
		f.users.On("UpdateProfile", ctx, int64(1), repo.ProfileUpdate{
			FirstName: "Rahim", LastName: "Uddin", Email: "rahim@example.com",
		}).Return(nil)
		require.NoError(t, f.uc.Update(ctx, 1, in))
		f.users.AssertExpectations(t)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	user := &model.User{ID: 1, Password: "$2a$hash"}

	t.Run("mismatch", func(t *testing.T) {
		f := newProfileFixture(0)
		err := f.uc.ChangePassword(ctx, 1, usecase.ChangePasswordInput{CurrentPassword: "old", NewPassword: "secret1", ConfirmPassword: "secret2"})
		requireStatus(t, err, http.StatusBadRequest)
		assert.Contains(t, err.Error(), "New passwords do not match")
	})

	t.Run("too short", func(t *testing.T) {
		f := newProfileFixture(0)
		err := f.uc.ChangePassword(ctx, 1, usecase.ChangePasswordInput{CurrentPassword: "old", NewPassword: "abc", ConfirmPassword: "abc"})
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("wrong current", func(t *testing.T) {
		f := newProfileFixture(0)
		f.users.On("FindByID", ctx, int64(1)).Return(user, nil)
		f.verifier.On("Verify", "wrong", "$2a$hash").Return(false)
		err := f.uc.ChangePassword(ctx, 1, usecase.ChangePasswordInput{CurrentPassword: "wrong", NewPassword: "secret1", ConfirmPassword: "secret1"})
		requireStatus(t, err, http.StatusBadRequest)
		assert.Contains(t, err.Error(), "Current password is incorrect")
	})

	t.Run("ok", func(t *testing.T) {
		f := newProfileFixture(0)
		f.users.On("FindByID", ctx, int64(1)).Return(user, nil)
		f.verifier.On("Verify", "old-pass", "$2a$hash").Return(true)
		f.hasher.On("Hash", "secret1").Return("$2a$new", nil)
		f.users.On("UpdatePassword", ctx, int64(1), "$2a$new").Return(nil)
		err := f.uc.ChangePassword(ctx, 1, usecase.ChangePasswordInput{CurrentPassword: "old-pass", NewPassword: "secret1", ConfirmPassword: "secret1"})
		require.NoError(t, err)
		f.users.AssertExpectations(t)
	})
}

func TestUpdateAvatar(t *testing.T) {
	ctx := context.Background()
	namePattern := regexp.MustCompile(`^avatar_7_\d+\.png$`)

	t.Run("png is stored", func(t *testing.T) {
		f := newProfileFixture(2 << 20)
		f.avatars.On("Save", mock.MatchedBy(namePattern.MatchString), pngHeader).
			Return("uploads/avatar_7_1.png", nil)
		f.users.On("UpdateProfileImage", ctx, int64(7), "uploads/avatar_7_1.png").Return(nil)

		out, err := f.uc.UpdateAvatar(ctx, 7, pngHeader)
		require.NoError(t, err)
		assert.Equal(t, "uploads/avatar_7_1.png", out.ProfileImage)
	})

	t.Run("unsupported type", func(t *testing.T) {
		f := newProfileFixture(2 << 20)
		_, err := f.uc.UpdateAvatar(ctx, 7, []byte("just some text"))
		requireStatus(t, err, http.StatusBadRequest)
		f.avatars.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("too large", func(t *testing.T) {
		f := newProfileFixture(1 << 20)
		big := append(bytes.Clone(pngHeader), make([]byte, 1<<20)...)
		_, err := f.uc.UpdateAvatar(ctx, 7, big)
		requireStatus(t, err, http.StatusBadRequest)
		assert.Contains(t, err.Error(), "max 1MB")
	})

	t.Run("file removed when db update fails", func(t *testing.T) {
		f := newProfileFixture(2 << 20)
		f.avatars.On("Save", mock.Anything, pngHeader).Return("uploads/avatar_7_1.png", nil)
		f.users.On("UpdateProfileImage", ctx, int64(7), "uploads/avatar_7_1.png").Return(errors.New("disk full"))
		f.avatars.On("Remove", mock.MatchedBy(namePattern.MatchString)).Return(nil)

		_, err := f.uc.UpdateAvatar(ctx, 7, pngHeader)
		requireStatus(t, err, http.StatusInternalServerError)
		f.avatars.AssertExpectations(t)
	})
}
