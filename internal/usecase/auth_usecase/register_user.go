package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"handicrafts/internal/domain/model"
	"handicrafts/internal/repository"
)

// 会員登録の入力
type RegisterUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	IPAddress string
	UserAgent string
}

// 会員登録の出力
type RegisterUserOutput struct {
	User model.User
}

const MinPasswordLen = 6

var (
	// 入力が不正
	ErrRequiredFields     = errors.New("required fields missing")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")

	// 競合
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// セキュリティイベントのログ（gommonの*log.Loggerが満たす）
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	clock    Clock
	log      Logger
}

// DI
func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	clock Clock,
	log Logger,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		clock:    clock,
		log:      log,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	// phone以外は必須
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return out, ErrRequiredFields
	}

	// emailの形式チェック
	if !model.IsValidEmail(in.Email) {
		return out, ErrInvalidEmailFormat
	}

	// password の長さチェック（最小6文字）
	if len(in.Password) < MinPasswordLen {
		return out, ErrPasswordTooShort
	}

	// email重複チェック（大文字小文字の扱いはDBの照合順序どおり）
	existing, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return out, ErrEmailAlreadyExists
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return out, err
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	user := &model.User{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Phone:         in.Phone,
		Password:      hashed, // ハッシュを保存（平文は保存しない）
		OAuthProvider: model.OAuthProviderLocal,
		IsVerified:    false,
		Status:        model.UserStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// DBへ保存（同時登録はunique制約で弾く）
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return out, ErrEmailAlreadyExists
		}
		return out, err
	}

	u.log.Infof("security: event=register user=%d ip=%s ua=%q", user.ID, in.IPAddress, in.UserAgent)

	// 返すときは password を空にして漏洩防止
	safeUser := *user
	safeUser.Password = ""

	out.User = safeUser
	return out, nil
}
