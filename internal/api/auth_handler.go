package api

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/bloggify-frontend/internal/blogapi"
	"github.com/bloggify-frontend/internal/models"
	"github.com/bloggify-frontend/internal/service"
	"github.com/bloggify-frontend/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles login, registration, password resets and logout
type AuthHandler struct {
	sessions service.SessionService
	views    *service.ViewRegistry
	flash    *FlashCodec
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, flash *FlashCodec, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: services.Session,
		views:    services.Views,
		flash:    flash,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// LoginForm handles GET /login
func (h *AuthHandler) LoginForm(c *gin.Context) {
	renderPage(c, http.StatusOK, "login.html", gin.H{"Title": "Login", "Email": ""})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBind(&creds); err != nil {
		renderPage(c, http.StatusBadRequest, "login.html", gin.H{"Title": "Login", "Email": "", "Error": "Invalid form"})
		return
	}

	session, msg, err := h.sessions.Login(c.Request.Context(), currentSession(c).ID, creds)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			renderPage(c, http.StatusUnprocessableEntity, "login.html", gin.H{
				"Title": "Login",
				"Email": creds.Email,
				"Error": verrs.First(),
			})
			return
		}
		h.log.Warn().Err(err).Msg("Login failed")
		setFlash(c, h.flash, models.FlashError, blogapi.Message(err, "Login failed"))
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	// The navbar must reflect the new flags on this same request
	c.Set(ctxKeySession, session)
	setSuccess(c, h.flash, msg, "Logged in successfully")
	c.Redirect(http.StatusSeeOther, "/")
}

// RegisterForm handles GET /register
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	renderPage(c, http.StatusOK, "register.html", gin.H{"Title": "Register", "Name": "", "Email": ""})
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var reg models.Registration
	if err := c.ShouldBind(&reg); err != nil {
		renderPage(c, http.StatusBadRequest, "register.html", gin.H{"Title": "Register", "Name": "", "Email": "", "Error": "Invalid form"})
		return
	}

	msg, err := h.sessions.Register(c.Request.Context(), reg)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			renderPage(c, http.StatusUnprocessableEntity, "register.html", gin.H{
				"Title": "Register",
				"Name":  reg.Name,
				"Email": reg.Email,
				"Error": verrs.First(),
			})
			return
		}
		setFlash(c, h.flash, models.FlashError, blogapi.Message(err, "Registration failed"))
		c.Redirect(http.StatusSeeOther, "/register")
		return
	}

	setSuccess(c, h.flash, msg, "Registration successful, please log in")
	c.Redirect(http.StatusSeeOther, "/login")
}

// ForgotPasswordForm handles GET /forgot-password
func (h *AuthHandler) ForgotPasswordForm(c *gin.Context) {
	renderPage(c, http.StatusOK, "forgot_password.html", gin.H{"Title": "Forgot password", "Email": ""})
}

// ForgotPassword handles POST /forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBind(&req); err != nil {
		renderPage(c, http.StatusBadRequest, "forgot_password.html", gin.H{"Title": "Forgot password", "Email": "", "Error": "Invalid form"})
		return
	}

	msg, err := h.sessions.ForgotPassword(c.Request.Context(), req)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			renderPage(c, http.StatusUnprocessableEntity, "forgot_password.html", gin.H{
				"Title": "Forgot password",
				"Email": req.Email,
				"Error": verrs.First(),
			})
			return
		}
		h.log.Warn().Err(err).Msg("Password reset request failed")
		setFlash(c, h.flash, models.FlashError, blogapi.Message(err, "Could not send reset link"))
		c.Redirect(http.StatusSeeOther, "/forgot-password")
		return
	}

	setSuccess(c, h.flash, msg, "Check your email for a reset link")
	c.Redirect(http.StatusSeeOther, "/login")
}

// ResetPasswordForm handles GET /reset-password/:id/:token
func (h *AuthHandler) ResetPasswordForm(c *gin.Context) {
	renderPage(c, http.StatusOK, "reset_password.html", resetData(c, ""))
}

// ResetPassword handles POST /reset-password/:id/:token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var reset models.PasswordReset
	if err := c.ShouldBind(&reset); err != nil {
		renderPage(c, http.StatusBadRequest, "reset_password.html", resetData(c, "Invalid form"))
		return
	}

	msg, err := h.sessions.ResetPassword(c.Request.Context(), c.Param("id"), c.Param("token"), reset)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			renderPage(c, http.StatusUnprocessableEntity, "reset_password.html", resetData(c, verrs.First()))
			return
		}
		h.log.Warn().Err(err).Msg("Password reset failed")
		setFlash(c, h.flash, models.FlashError, blogapi.Message(err, "Password reset failed"))
		c.Redirect(http.StatusSeeOther, resetPath(c))
		return
	}

	setSuccess(c, h.flash, msg, "Password reset successful, please log in")
	c.Redirect(http.StatusSeeOther, "/login")
}

func resetData(c *gin.Context, message string) gin.H {
	return gin.H{"Title": "Reset password", "Action": resetPath(c), "Error": message}
}

func resetPath(c *gin.Context) string {
	return "/reset-password/" + url.PathEscape(c.Param("id")) + "/" + url.PathEscape(c.Param("token"))
}

// Logout handles POST /logout; both flags are removed together
func (h *AuthHandler) Logout(c *gin.Context) {
	sid := currentSession(c).ID
	if err := h.sessions.Logout(c.Request.Context(), sid); err != nil {
		h.log.Error().Err(err).Str("session_id", sid).Msg("Logout failed")
		setFlash(c, h.flash, models.FlashError, msgGenericFailure)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	h.views.Drop(sid)
	c.Redirect(http.StatusSeeOther, "/login")
}
