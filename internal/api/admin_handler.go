package api

import (
	"errors"
	"net/http"

	"github.com/bloggify-frontend/internal/blogapi"
	"github.com/bloggify-frontend/internal/models"
	"github.com/bloggify-frontend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// msgGenericFailure is shown when a failed call carries no server message
const msgGenericFailure = "Something went wrong"

// AdminHandler handles the moderation queue
type AdminHandler struct {
	views *service.ViewRegistry
	flash *FlashCodec
	log   zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, flash *FlashCodec, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		views: services.Views,
		flash: flash,
		log:   log.With().Str("handler", "admin").Logger(),
	}
}

// Dashboard handles GET /admin?page=N
func (h *AdminHandler) Dashboard(c *gin.Context) {
	v := h.views.Admin(currentSession(c).ID)
	snap := v.Show(c.Request.Context(), queryPage(c))

	data := listData(snap.ListSnapshot, "/admin")
	data["Title"] = "Admin Panel"
	data["InFlight"] = snap.InFlight
	renderPage(c, http.StatusOK, "admin.html", data)
}

// Approve handles POST /admin/posts/:id/approve
func (h *AdminHandler) Approve(c *gin.Context) {
	v := h.views.Admin(currentSession(c).ID)
	msg, err := v.Approve(c.Request.Context(), c.Param("id"))
	h.finish(c, msg, "Post approved", err)
}

// Reject handles POST /admin/posts/:id/reject
func (h *AdminHandler) Reject(c *gin.Context) {
	v := h.views.Admin(currentSession(c).ID)
	msg, err := v.Reject(c.Request.Context(), c.Param("id"))
	h.finish(c, msg, "Post rejected", err)
}

func (h *AdminHandler) finish(c *gin.Context, msg, fallback string, err error) {
	switch {
	case err == nil:
		setSuccess(c, h.flash, msg, fallback)
	case errors.Is(err, service.ErrPostNotFound):
		setFlash(c, h.flash, models.FlashError, "Post not found")
	case errors.Is(err, service.ErrActionInFlight):
		setFlash(c, h.flash, models.FlashWarning, "This post is already being processed")
	default:
		setFlash(c, h.flash, models.FlashError, blogapi.Message(err, msgGenericFailure))
	}
	c.Redirect(http.StatusSeeOther, "/admin")
}
