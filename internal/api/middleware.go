package api

import (
	"net/http"
	"time"

	"github.com/bloggify-frontend/internal/config"
	"github.com/bloggify-frontend/internal/guard"
	"github.com/bloggify-frontend/internal/models"
	"github.com/bloggify-frontend/internal/service"
	"github.com/bloggify-frontend/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	headerRequestID = "X-Request-ID"
	ctxKeyRequestID = "request_id"
	ctxKeySession   = "session"
)

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("request_id", c.GetString(ctxKeyRequestID)).
					Msg("Panic recovered")
				c.String(http.StatusInternalServerError, "Internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(ctxKeyRequestID)).
			Msg("Request completed")
	}
}

// requestIDMiddleware propagates or assigns an X-Request-ID
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(headerRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, rid)
		c.Writer.Header().Set(headerRequestID, rid)
		c.Next()
	}
}

// sessionMiddleware resolves the session id cookie, issuing a new id when it is
// missing or malformed, and loads the session flags for this request only.
func sessionMiddleware(sessions service.SessionService, cfg config.SessionConfig, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cfg.CookieName)
		if err != nil || !validation.IsSessionID(sid) {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, sid, int(cfg.CookieMaxAge.Seconds()), "/", "", cfg.CookieSecure, true)
		}

		session, err := sessions.Load(c.Request.Context(), sid)
		if err != nil {
			log.Error().Err(err).Str("session_id", sid).Msg("Failed to load session; continuing anonymous")
		}
		c.Set(ctxKeySession, session)
		c.Next()
	}
}

// currentSession returns the session resolved for the request
func currentSession(c *gin.Context) models.Session {
	if v, ok := c.Get(ctxKeySession); ok {
		if s, ok := v.(models.Session); ok {
			return s
		}
	}
	return models.Session{}
}

// requireCapability applies the route guard to the request's session
func requireCapability(required models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch guard.Evaluate(currentSession(c), required) {
		case guard.RedirectToLogin:
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		case guard.NotFound:
			renderNotFound(c)
			c.Abort()
		default:
			c.Next()
		}
	}
}
