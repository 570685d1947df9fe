package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	gate "github.com/yigit/studentportal/internal/app/auth"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/pkg/auth"
)

// Context keys set by the session middleware
const (
	ContextUserKey         = "user"
	ContextSessionErrorKey = "sessionError"

	contextSessionsKey = "sessions"
)

// SessionMiddleware restores the session from its cookie and guards routes
type SessionMiddleware struct {
	codec        *auth.SessionCodec
	secureCookie bool
	logger       zerolog.Logger
}

// NewSessionMiddleware creates a new SessionMiddleware
func NewSessionMiddleware(codec *auth.SessionCodec, secureCookie bool, logger zerolog.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		codec:        codec,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// Restore decodes the session cookie on every request; a bad cookie is cleared
func (m *SessionMiddleware) Restore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextSessionsKey, m)
		value, err := c.Cookie(auth.CookieName)
		if err != nil || value == "" {
			c.Next()
			return
		}

		user, err := m.codec.Decode(value)
		if err != nil {
			m.logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Discarding session cookie")
			c.Set(ContextSessionErrorKey, err)
			m.ClearCookie(c)
			c.Next()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// PageGate redirects page requests according to the session state
func (m *SessionMiddleware) PageGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, authenticated := CurrentUser(c)
		if redirect, ok := gate.Gate(authenticated, c.Request.URL.Path); !ok {
			c.Redirect(http.StatusFound, redirect)
			c.Abort()
			return
		}
		c.Next()
	}
}

// APIAuth rejects JSON requests without a session
func (m *SessionMiddleware) APIAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			c.Next()
			return
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		if sessionErr, exists := c.Get(ContextSessionErrorKey); exists {
			if err, ok := sessionErr.(error); ok && errors.Is(err, auth.ErrExpiredSession) {
				errorDetail = dto.NewErrorDetail(dto.ErrorCodeExpiredSession, "Session has expired")
			} else {
				errorDetail = dto.NewErrorDetail(dto.ErrorCodeInvalidSession, "Invalid session")
			}
		}
		errorDetail = errorDetail.WithSeverity(dto.ErrorSeverityError)

		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
	}
}

// SetCookie persists the encoded session
func (m *SessionMiddleware) SetCookie(c *gin.Context, value string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, value, int(m.codec.TTL().Seconds()), "/", "", m.secureCookie, true)
}

// ClearCookie expires the session cookie
func (m *SessionMiddleware) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", m.secureCookie, true)
}

// EndSession expires the session cookie and forgets the restored user.
// It is a no-op when Restore did not run for the request.
func EndSession(c *gin.Context) {
	if value, exists := c.Get(contextSessionsKey); exists {
		if m, ok := value.(*SessionMiddleware); ok {
			m.ClearCookie(c)
		}
	}
	c.Set(ContextUserKey, (*auth.User)(nil))
}

// CurrentUser returns the session user restored for this request
func CurrentUser(c *gin.Context) (*auth.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*auth.User)
	return user, ok && user != nil
}

// IsAPIRequest reports whether the request targets the JSON surface
func IsAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}
