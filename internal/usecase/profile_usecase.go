package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"handicrafts/internal/domain/model"
	repo "handicrafts/internal/repository"

	"github.com/gabriel-vasile/mimetype"
)

const minPasswordLen = 6

// auth パッケージのbcrypt実装が満たす
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// アバター画像の保存先
type AvatarStore interface {
	// 保存して公開パス（uploads/xxx）を返す
	Save(name string, data []byte) (string, error)
	Remove(name string) error
}

// 受け付ける画像形式と拡張子
var avatarTypes = []struct {
	mime string
	ext  string
}{
	{"image/jpeg", "jpg"},
	{"image/png", "png"},
	{"image/gif", "gif"},
	{"image/webp", "webp"},
}

type ProfileUsecase struct {
	users     repo.UserRepository
	hasher    PasswordHasher
	verifier  PasswordVerifier
	avatars   AvatarStore
	maxAvatar int64
	now       func() time.Time
	log       Logger
}

// DI
func NewProfileUsecase(
	users repo.UserRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	avatars AvatarStore,
	maxAvatar int64,
	log Logger,
) *ProfileUsecase {
	return &ProfileUsecase{
		users:     users,
		hasher:    hasher,
		verifier:  verifier,
		avatars:   avatars,
		maxAvatar: maxAvatar,
		now:       time.Now,
		log:       log,
	}
}

type ProfileOutput struct {
	ID           int64      `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	City         string     `json:"city"`
	PostalCode   string     `json:"postal_code"`
	ProfileImage string     `json:"profile_image"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (u *ProfileUsecase) Get(ctx context.Context, userID int64) (ProfileOutput, error) {
	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return ProfileOutput{}, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return ProfileOutput{}, internalError(u.log, "get profile", err)
	}

	return ProfileOutput{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		Phone:        user.Phone,
		Address:      user.Address,
		City:         user.City,
		PostalCode:   user.PostalCode,
		ProfileImage: user.ProfileImage,
		LastLogin:    user.LastLogin,
		CreatedAt:    user.CreatedAt,
	}, nil
}

type UpdateProfileInput struct {
	FirstName  string `json:"first_name" form:"first_name"`
	LastName   string `json:"last_name" form:"last_name"`
	Email      string `json:"email" form:"email"`
	Phone      string `json:"phone" form:"phone"`
	Address    string `json:"address" form:"address"`
	City       string `json:"city" form:"city"`
	PostalCode string `json:"postal_code" form:"postal_code"`
}

func (u *ProfileUsecase) Update(ctx context.Context, userID int64, in UpdateProfileInput) error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	if in.FirstName == "" || in.LastName == "" || in.Email == "" {
		return NewHTTPError(http.StatusBadRequest, "First name, last name, and email are required")
	}
	if !model.IsValidEmail(in.Email) {
		return NewHTTPError(http.StatusBadRequest, "Invalid email format")
	}

	taken, err := u.users.EmailTakenByOther(ctx, in.Email, userID)
	if err != nil {
		return internalError(u.log, "check email", err)
	}
	if taken {
		return NewHTTPError(http.StatusConflict, "Email address is already in use")
	}

	err = u.users.UpdateProfile(ctx, userID, repo.ProfileUpdate{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Phone:      strings.TrimSpace(in.Phone),
		Address:    strings.TrimSpace(in.Address),
		City:       strings.TrimSpace(in.City),
		PostalCode: strings.TrimSpace(in.PostalCode),
	})
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, repo.ErrDuplicate):
		return NewHTTPError(http.StatusConflict, "Email address is already in use")
	case err != nil:
		return internalError(u.log, "update profile", err)
	}
	return nil
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

func (u *ProfileUsecase) ChangePassword(ctx context.Context, userID int64, in ChangePasswordInput) error {
	if in.CurrentPassword == "" || in.NewPassword == "" || in.ConfirmPassword == "" {
		return NewHTTPError(http.StatusBadRequest, "All password fields are required")
	}
	if in.NewPassword != in.ConfirmPassword {
		return NewHTTPError(http.StatusBadRequest, "New passwords do not match")
	}
	if len(in.NewPassword) < minPasswordLen {
		return NewHTTPError(http.StatusBadRequest, "New password must be at least 6 characters long")
	}

	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return internalError(u.log, "find user", err)
	}
	if !u.verifier.Verify(in.CurrentPassword, user.Password) {
		return NewHTTPError(http.StatusBadRequest, "Current password is incorrect")
	}

	hashed, err := u.hasher.Hash(in.NewPassword)
	if err != nil {
		return internalError(u.log, "hash password", err)
	}
	if err := u.users.UpdatePassword(ctx, userID, hashed); err != nil {
		return internalError(u.log, "update password", err)
	}
	u.log.Infof("security: event=password_changed user=%d", userID)
	return nil
}

type AvatarOutput struct {
	ProfileImage string `json:"profile_image"`
}

// 中身から形式を判定して保存し、profile_image を差し替える
func (u *ProfileUsecase) UpdateAvatar(ctx context.Context, userID int64, data []byte) (AvatarOutput, error) {
	if len(data) == 0 {
		return AvatarOutput{}, NewHTTPError(http.StatusBadRequest, "No image uploaded or upload error")
	}

	ext := ""
	mt := mimetype.Detect(data)
	for _, t := range avatarTypes {
		if mt.Is(t.mime) {
			ext = t.ext
			break
		}
	}
	if ext == "" {
		return AvatarOutput{}, NewHTTPError(http.StatusBadRequest, "Unsupported image type")
	}
	if u.maxAvatar > 0 && int64(len(data)) > u.maxAvatar {
		return AvatarOutput{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Image too large (max %dMB)", u.maxAvatar>>20))
	}

	name := fmt.Sprintf("avatar_%d_%d.%s", userID, u.now().Unix(), ext)
	path, err := u.avatars.Save(name, data)
	if err != nil {
		return AvatarOutput{}, internalError(u.log, "save avatar", err)
	}

	if err := u.users.UpdateProfileImage(ctx, userID, path); err != nil {
		//DBが失敗したらファイルも消す
		if rmErr := u.avatars.Remove(name); rmErr != nil {
			u.log.Warnf("remove avatar %s: %v", name, rmErr)
		}
		if errors.Is(err, repo.ErrNotFound) {
			return AvatarOutput{}, NewHTTPError(http.StatusNotFound, "User not found")
		}
		return AvatarOutput{}, internalError(u.log, "update profile image", err)
	}
	return AvatarOutput{ProfileImage: path}, nil
}
