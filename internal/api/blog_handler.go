package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bloggify-frontend/internal/config"
	"github.com/bloggify-frontend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// headerFragment marks requests made by the page script that expect a list fragment
const headerFragment = "X-Fragment"

// BlogHandler handles the public post list and search endpoints
type BlogHandler struct {
	views    *service.ViewRegistry
	debounce time.Duration
	log      zerolog.Logger
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *BlogHandler {
	return &BlogHandler{
		views:    services.Views,
		debounce: cfg.View.SearchDebounce,
		log:      log.With().Str("handler", "blog").Logger(),
	}
}

// Home handles GET /?page=N
func (h *BlogHandler) Home(c *gin.Context) {
	v := h.views.Blog(currentSession(c).ID)
	snap := v.Show(c.Request.Context(), queryPage(c))

	data := blogData(snap)
	data["Title"] = "Bloggify"
	data["DebounceMS"] = h.debounce.Milliseconds()
	renderPage(c, http.StatusOK, "blog.html", data)
}

// Posts handles GET /posts?page=N and renders only the list fragment
func (h *BlogHandler) Posts(c *gin.Context) {
	v := h.views.Blog(currentSession(c).ID)
	snap := v.Show(c.Request.Context(), queryPage(c))
	c.HTML(http.StatusOK, "posts", blogData(snap))
}

// Search handles POST /search; the query is committed immediately
func (h *BlogHandler) Search(c *gin.Context) {
	v := h.views.Blog(currentSession(c).ID)
	v.Submit(c.PostForm("q"))
	h.respond(c, v)
}

// SearchInput handles POST /search/input, one call per keystroke.
// The query is committed once input has been quiet for the debounce period.
func (h *BlogHandler) SearchInput(c *gin.Context) {
	v := h.views.Blog(currentSession(c).ID)
	v.Input(c.PostForm("q"))
	c.JSON(http.StatusAccepted, gin.H{
		"pending": v.Snapshot().SearchPending,
	})
}

// SearchClear handles POST /search/clear (Escape in the search box)
func (h *BlogHandler) SearchClear(c *gin.Context) {
	v := h.views.Blog(currentSession(c).ID)
	v.Escape()
	h.respond(c, v)
}

func (h *BlogHandler) respond(c *gin.Context, v *service.BlogView) {
	if c.GetHeader(headerFragment) != "" {
		c.HTML(http.StatusOK, "posts", blogData(v.Snapshot()))
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func blogData(snap service.BlogSnapshot) gin.H {
	data := listData(snap.ListSnapshot, "/")
	data["Buffer"] = snap.Buffer
	data["Query"] = snap.Query
	data["SearchPending"] = snap.SearchPending
	return data
}

// queryPage returns the requested page, or 0 to keep the current one
func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 0
	}
	return page
}
