package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080 / :8080）

	JWTSecret string // bearer token署名シークレット

	GoEnv        string // dev/prod
	FEURL        string // フロントURL（CORS）。カンマ区切り可
	CookieSecure bool   // auth_token cookie の Secure

	SessionTTL  time.Duration // 通常ログイン
	RememberTTL time.Duration // remember me

	StockPolicy string // strict / lenient

	UploadDir      string // アバター保存先（/uploads で公開）
	AvatarMaxBytes int64

	AuthRateLimit    int  // 5分あたり/IP。0で無効
	AuthLegacyUserID bool // /orders で X-User-Id / user_id を受ける

	LogLevel       string
	SearchPhonetic bool
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

// ":8080" 形式にする
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func (c Config) AllowOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.FEURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// Loadは環境変数
func Load() (Config, error) {
	sessionHours, err := atoiDefault("SESSION_TTL_HOURS", 168)
	if err != nil {
		return Config{}, err
	}
	rememberHours, err := atoiDefault("REMEMBER_TTL_HOURS", 720)
	if err != nil {
		return Config{}, err
	}
	avatarMax, err := atoiDefault("AVATAR_MAX_BYTES", 2*1024*1024)
	if err != nil {
		return Config{}, err
	}
	rateLimit, err := atoiDefault("AUTH_RATE_LIMIT", 5)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: os.Getenv("PORT"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GoEnv: envDefault("GO_ENV", "dev"),
		FEURL: envDefault("FE_URL", "*"),

		SessionTTL:  time.Duration(sessionHours) * time.Hour,
		RememberTTL: time.Duration(rememberHours) * time.Hour,

		StockPolicy: envDefault("STOCK_POLICY", "strict"),

		UploadDir:      envDefault("UPLOAD_DIR", "uploads"),
		AvatarMaxBytes: int64(avatarMax),

		AuthRateLimit:    rateLimit,
		AuthLegacyUserID: envBool("AUTH_LEGACY_USER_ID", false),

		LogLevel:       envDefault("LOG_LEVEL", "info"),
		SearchPhonetic: envBool("SEARCH_PHONETIC", true),
	}
	// prodは常にSecure
	cfg.CookieSecure = cfg.IsProd() || envBool("COOKIE_SECURE", false)

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GoEnv != "dev" && cfg.GoEnv != "prod" {
		return Config{}, fmt.Errorf("GO_ENV must be dev or prod")
	}
	if cfg.SessionTTL <= 0 || cfg.RememberTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL_HOURS and REMEMBER_TTL_HOURS must be positive")
	}
	if cfg.AuthRateLimit < 0 {
		return Config{}, fmt.Errorf("AUTH_RATE_LIMIT must be >= 0")
	}

	return cfg, nil
}

func envDefault(key string, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	default:
		return def
	}
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
