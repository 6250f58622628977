package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"handicrafts/internal/middleware"
	auth "handicrafts/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// /auth, /session-check, /logout のHTTP
type AuthHandler struct {
	registerUC   *auth.RegisterUserUsecase // 会員登録usecase
	loginUC      *auth.LoginUsecase        // ログインusecase
	sessionUC    *auth.SessionUsecase      // セッション参照・ログアウト
	cookieSecure bool
}

// DIコンストラクタ
func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	sessionUC *auth.SessionUsecase,
	cookieSecure bool,
) *AuthHandler {
	return &AuthHandler{
		registerUC:   registerUC,
		loginUC:      loginUC,
		sessionUC:    sessionUC,
		cookieSecure: cookieSecure,
	}
}

// "on" / "1" / true などを受ける（フォームのチェックボックス用）
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case bool:
		*b = flexBool(x)
	case string:
		return b.UnmarshalParam(x)
	case float64:
		*b = x != 0
	}
	return nil
}

func (b *flexBool) UnmarshalParam(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		*b = true
	default:
		*b = false
	}
	return nil
}

// JSONでもフォームでも受ける
type authRequest struct {
	Action    string   `json:"action" form:"action"`
	FirstName string   `json:"firstName" form:"firstName"`
	LastName  string   `json:"lastName" form:"lastName"`
	Email     string   `json:"email" form:"email"`
	Phone     string   `json:"phone" form:"phone"`
	Password  string   `json:"password" form:"password"`
	Remember  flexBool `json:"remember" form:"remember"`
}

type registerResponse struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

type loginResponse struct {
	UserID           int64     `json:"user_id"`
	UserName         string    `json:"user_name"`
	Email            string    `json:"email"`
	AccessToken      string    `json:"access_token"`
	TokenType        string    `json:"token_type"`
	ExpiresIn        int       `json:"expires_in"`
	SessionExpiresAt time.Time `json:"session_expires_at"`
}

type sessionCheckResponse struct {
	Authenticated bool       `json:"authenticated"`
	UserID        int64      `json:"user_id,omitempty"`
	UserName      string     `json:"user_name,omitempty"`
	UserEmail     string     `json:"user_email,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// /auth を登録（rate limitはserver側で付ける）
func (h *AuthHandler) RegisterRoutes(g *echo.Group, limiter echo.MiddlewareFunc) {
	mws := []echo.MiddlewareFunc{}
	if limiter != nil {
		mws = append(mws, limiter)
	}
	g.POST("/auth", h.authenticate, mws...)
	g.GET("/auth", h.authenticate, mws...)
	g.GET("/session-check", h.sessionCheck)
	g.POST("/logout", h.logout)
	g.GET("/logout", h.logout)
}

// action=register|login
func (h *AuthHandler) authenticate(c echo.Context) error {
	var req authRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Action == "" {
		req.Action = c.QueryParam("action")
	}

	switch req.Action {
	case "register":
		return h.register(c, req)
	case "login":
		return h.login(c, req)
	default:
		return invalidAction(c)
	}
}

func (h *AuthHandler) register(c echo.Context, req authRequest) error {
	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrRequiredFields):
			return fail(c, http.StatusBadRequest, "All required fields must be filled out")
		case errors.Is(err, auth.ErrInvalidEmailFormat):
			return fail(c, http.StatusBadRequest, "Please enter a valid email address")
		case errors.Is(err, auth.ErrPasswordTooShort):
			return fail(c, http.StatusBadRequest, "Password must be at least 6 characters long")
		case errors.Is(err, auth.ErrEmailAlreadyExists):
			return fail(c, http.StatusConflict, "Email address is already registered")
		default:
			return writeError(c, err)
		}
	}

	return ok(c, http.StatusCreated, "Registration successful! Please log in.", registerResponse{
		UserID: out.User.ID,
		Email:  out.User.Email,
	})
}

func (h *AuthHandler) login(c echo.Context, req authRequest) error {
	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		Remember:  bool(req.Remember),
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			return fail(c, http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, auth.ErrInvalidCredentials):
			return fail(c, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, auth.ErrUserInactive):
			return fail(c, http.StatusUnauthorized, "Account is not active")
		default:
			return writeError(c, err)
		}
	}

	h.setSessionCookie(c, out.SessionToken, out.ExpiresAt)

	return ok(c, http.StatusOK, "Login successful", loginResponse{
		UserID:           out.User.ID,
		UserName:         out.User.FullName(),
		Email:            out.User.Email,
		AccessToken:      out.AccessToken,
		TokenType:        "Bearer",
		ExpiresIn:        out.ExpiresIn,
		SessionExpiresAt: out.ExpiresAt,
	})
}

// 未ログインでも200（success=false）
func (h *AuthHandler) sessionCheck(c echo.Context) error {
	ac, authed := middleware.FromContext(c)
	user, hasUser := middleware.UserFromContext(c)
	if !authed || !hasUser {
		return c.JSON(http.StatusOK, Response{
			Success: false,
			Message: "User is not authenticated",
			Data:    sessionCheckResponse{Authenticated: false},
		})
	}

	res := sessionCheckResponse{
		Authenticated: true,
		UserID:        user.ID,
		UserName:      user.FullName(),
		UserEmail:     user.Email,
	}
	if !ac.ExpiresAt.IsZero() {
		exp := ac.ExpiresAt
		res.ExpiresAt = &exp
	}
	return ok(c, http.StatusOK, "User is authenticated", res)
}

// セッション行を消してcookieを無効化する。未ログインでも成功扱い
func (h *AuthHandler) logout(c echo.Context) error {
	if ac, authed := middleware.FromContext(c); authed && ac.SessionToken != "" {
		err := h.sessionUC.Logout(c.Request().Context(), ac.UserID, ac.SessionToken, c.RealIP(), c.Request().UserAgent())
		if err != nil {
			return writeError(c, err)
		}
	}

	h.clearSessionCookie(c)
	return ok(c, http.StatusOK, "Logged out successfully", nil)
}

// session tokenをCookieにセット
func (h *AuthHandler) setSessionCookie(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
