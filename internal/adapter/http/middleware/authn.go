package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Eddi3MS/delivery-bd/configs"
	"github.com/Eddi3MS/delivery-bd/internal/logging"
	"github.com/Eddi3MS/delivery-bd/internal/security"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Authn resolves the session cookie into a usecase.Identity.
type Authn struct {
	sessions *security.Sessions
	users    *usecase.Users
	cookie   cookieSpec
}

type cookieSpec struct {
	name   string
	domain string
	secure bool
}

func NewAuthn(cfg configs.Config, sessions *security.Sessions, users *usecase.Users) *Authn {
	name := cfg.Security.CookieName
	if name == "" {
		name = "jwt"
	}
	return &Authn{
		sessions: sessions,
		users:    users,
		cookie:   cookieSpec{name: name, domain: cfg.Security.CookieDomain, secure: cfg.Security.CookieSecure},
	}
}

// Required rejects requests without a valid session. The user is reloaded on
// every request so a deleted account or a role change applies immediately.
func (a *Authn) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(a.cookie.name)
		if err != nil || raw == "" {
			unauth(c, "Unauthorized")
			return
		}
		claims, err := a.sessions.Parse(raw)
		if err != nil {
			logging.From(c).Info("session rejected", slog.Any("err", err))
			a.ClearSession(c)
			unauth(c, "Unauthorized")
			return
		}

		u, err := a.users.Authenticate(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, usecase.ErrUnauthorized) {
				a.ClearSession(c)
				unauth(c, usecase.Message(err))
				return
			}
			logging.From(c).Error("load session user", slog.Any("err", err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong."})
			return
		}

		c.Set(identityKey, usecase.Identity{ID: u.ID, Role: u.Role})
		logging.With(c, logging.From(c).With("user_id", u.ID))
		c.Next()
	}
}

// AdminOnly must run after Required.
func (a *Authn) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok || !id.IsAdmin() {
			a.ClearSession(c)
			unauth(c, "Unauthorized.")
			return
		}
		c.Next()
	}
}

// StartSession sets the session cookie for u.
func (a *Authn) StartSession(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(a.cookie.name, token, int(a.sessions.TTL().Seconds()), "/", a.cookie.domain, a.cookie.secure, true)
}

func (a *Authn) ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(a.cookie.name, "", -1, "/", a.cookie.domain, a.cookie.secure, true)
}

// CurrentIdentity returns the caller set by Required.
func CurrentIdentity(c *gin.Context) (usecase.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return usecase.Identity{}, false
	}
	id, ok := v.(usecase.Identity)
	return id, ok
}

func unauth(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
