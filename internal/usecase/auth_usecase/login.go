package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"handicrafts/internal/domain/model"
	"handicrafts/internal/repository"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email     string
	Password  string
	Remember  bool
	IPAddress string
	UserAgent string
}

// handlerがJSONとCookieにして返す
type LoginOutput struct {
	User         model.User
	SessionToken string
	ExpiresAt    time.Time
	AccessToken  string
	ExpiresIn    int
}

var (
	// email / password が空
	ErrMissingCredentials = errors.New("missing credentials")
	// メールまたはパスワードが違う（どちらかは区別しない）
	ErrInvalidCredentials = errors.New("invalid credentials")
	// 停止済みユーザー
	ErrUserInactive = errors.New("user is inactive")
)

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID int64, sessionToken string, now time.Time, sessionExpiresAt time.Time) (string, time.Time, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// セッショントークンを作る約束
type TokenGenerator interface {
	NewToken() (string, error)
}

// 32byteの乱数をhexにする（64文字）
type RandomTokenGenerator struct{}

func (RandomTokenGenerator) NewToken() (string, error) {
	return generateSecureToken(32)
}

type LoginUsecase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	verifier    PasswordVerifier
	issuer      AccessTokenIssuer
	tokens      TokenGenerator
	clock       Clock
	sessionTTL  time.Duration
	rememberTTL time.Duration
	log         Logger
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	tokens TokenGenerator,
	clock Clock,
	sessionTTL time.Duration,
	rememberTTL time.Duration,
	log Logger,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		verifier:    verifier,
		issuer:      issuer,
		tokens:      tokens,
		clock:       clock,
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
		log:         log,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return out, ErrMissingCredentials
	}

	//emailでユーザー取得
	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			u.log.Warnf("security: event=login_failed reason=unknown_email ip=%s ua=%q", in.IPAddress, in.UserAgent)
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, user.Password); !ok {
		u.log.Warnf("security: event=login_failed reason=bad_password user=%d ip=%s ua=%q", user.ID, in.IPAddress, in.UserAgent)
		return out, ErrInvalidCredentials
	}

	//停止ユーザーはログイン不可
	if !user.IsActive() {
		u.log.Warnf("security: event=login_failed reason=inactive user=%d ip=%s ua=%q", user.ID, in.IPAddress, in.UserAgent)
		return out, ErrUserInactive
	}

	now := u.clock.Now()

	//期限切れと、このユーザーの古いセッションを消す
	if _, err := u.sessionRepo.PurgeForUser(ctx, user.ID, now); err != nil {
		return out, err
	}

	token, err := u.tokens.NewToken()
	if err != nil {
		return out, err
	}

	ttl := u.sessionTTL
	if in.Remember {
		ttl = u.rememberTTL
	}
	session := &model.Session{
		UserID:       user.ID,
		SessionToken: token,
		ExpiresAt:    now.Add(ttl),
		IPAddress:    in.IPAddress,
		UserAgent:    in.UserAgent,
	}
	if err := u.sessionRepo.Create(ctx, session); err != nil {
		return out, err
	}

	//最終ログイン時刻更新
	if err := u.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return out, err
	}
	user.LastLogin = &now

	//AccessToken発行
	accessToken, accessExp, err := u.issuer.Issue(user.ID, token, now, session.ExpiresAt)
	if err != nil {
		return out, err
	}

	u.log.Infof("security: event=login user=%d ip=%s ua=%q", user.ID, in.IPAddress, in.UserAgent)

	//出力（passwordは返さない）
	safeUser := *user
	safeUser.Password = ""

	out.User = safeUser
	out.SessionToken = token
	out.ExpiresAt = session.ExpiresAt
	out.AccessToken = accessToken
	out.ExpiresIn = int(accessExp.Sub(now).Seconds())
	return out, nil
}

func generateSecureToken(bytesLen int) (string, error) {
	if bytesLen <= 0 {
		return "", fmt.Errorf("bytesLen must be positive")
	}

	// ランダムなバイト列を作る（OSが持つ安全な乱数）
	b := make([]byte, bytesLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
