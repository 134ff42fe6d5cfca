package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/geocoder89/taskhub/internal/auth"
	"github.com/geocoder89/taskhub/internal/config"
	"github.com/geocoder89/taskhub/internal/domain/session"
	"github.com/geocoder89/taskhub/internal/domain/user"
	"github.com/geocoder89/taskhub/internal/http/middlewares"
	"github.com/geocoder89/taskhub/internal/security"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserStore interface {
	Create(ctx context.Context, u user.User) error
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetPublicByID(ctx context.Context, id string) (user.Public, error)
}

type AuthHandler struct {
	users    UserStore
	sessions *auth.Manager
	cfg      config.Config
}

func NewAuthHandler(users UserStore, sessions *auth.Manager, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
	}
}

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Login validates presence only; whether the email looks like an email is
// irrelevant once it has to match a stored account anyway.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req SignUpRequest

	if !BindJSON(ctx, &req) {
		return
	}

	salt, hash, err := security.GeneratePassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	u := user.User{
		ID:           uuid.NewString(),
		Email:        user.NormalizeEmail(req.Email),
		PasswordHash: hash,
		Salt:         salt,
		CreatedAt:    time.Now().UTC(),
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	err = h.users.Create(cctx, u)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondConflict(ctx, "email_taken", "Email is already in use.")
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	s, err := h.sessions.Issue(cctx, u.ID)

	if err != nil {
		RespondInternal(ctx, "Could not create session")
		return
	}

	h.setSessionCookie(ctx, s)

	ctx.JSON(http.StatusCreated, gin.H{
		"user": u.Public(),
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, user.NormalizeEmail(req.Email))

	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	derived, err := security.DeriveKey(req.Password, foundUser.Salt)

	if err != nil || !security.ConstantTimeEqualHex(derived, foundUser.PasswordHash) {
		RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	s, err := h.sessions.Issue(cctx, foundUser.ID)

	if err != nil {
		RespondInternal(ctx, "Could not create session")
		return
	}

	h.setSessionCookie(ctx, s)

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// Logout revokes whatever session the cookie names and clears the cookie
// either way.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	sid, err := ctx.Cookie(middlewares.SessionCookie)

	if err == nil && sid != "" {
		cctx, cancel := config.WithTimeout(3 * time.Second)
		defer cancel()

		_ = h.sessions.Revoke(cctx, sid)
	}

	h.clearSessionCookie(ctx)
	ctx.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing or invalid session")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	pub, err := h.users.GetPublicByID(cctx, userID)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// session survived its user somehow; treat as not signed in
			RespondUnAuthorized(ctx, "unauthorized", "Missing or invalid session")
			return
		}

		RespondInternal(ctx, "Could not fetch user")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": pub})
}

// Cookie helpers

func (h *AuthHandler) setSessionCookie(ctx *gin.Context, s session.Session) {
	maxAge := int(time.Until(s.ExpiresAt).Seconds())

	ctx.SetSameSite(http.SameSiteLaxMode)

	ctx.SetCookie(
		middlewares.SessionCookie,
		s.ID,
		maxAge,
		"/",
		"",
		h.cfg.CookieSecure,
		true, // HttpOnly.
	)
}

func (h *AuthHandler) clearSessionCookie(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(
		middlewares.SessionCookie,
		"",
		-1,
		"/",
		"",
		h.cfg.CookieSecure,
		true,
	)
}
