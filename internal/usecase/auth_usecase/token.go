package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// sub=ユーザーID, sid=セッショントークン
type AccessClaims struct {
	SessionToken string `json:"sid"`
	jwt.RegisteredClaims
}

// スクリプト向けのbearer token（HS256）
type JWTIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

// DI
func NewJWTIssuer(secret string, accessTTL time.Duration) *JWTIssuer {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	return &JWTIssuer{secret: []byte(secret), accessTTL: accessTTL}
}

// 期限はセッションの期限を超えない
func (i *JWTIssuer) Issue(userID int64, sessionToken string, now time.Time, sessionExpiresAt time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)
	if expiresAt.After(sessionExpiresAt) {
		expiresAt = sessionExpiresAt
	}

	claims := AccessClaims{
		SessionToken: sessionToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// 署名・期限を検証してユーザーIDとセッショントークンを返す
func (i *JWTIssuer) Parse(raw string) (int64, string, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || token == nil || !token.Valid {
		return 0, "", ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 || claims.SessionToken == "" {
		return 0, "", ErrInvalidToken
	}
	return userID, claims.SessionToken, nil
}
