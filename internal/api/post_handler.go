package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bloggify-frontend/internal/blogapi"
	"github.com/bloggify-frontend/internal/config"
	"github.com/bloggify-frontend/internal/models"
	"github.com/bloggify-frontend/internal/service"
	"github.com/bloggify-frontend/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// formOverhead is the multipart allowance on top of the image itself
const formOverhead = 1 << 20

// PostHandler handles the create-post form
type PostHandler struct {
	posts        service.PostService
	flash        *FlashCodec
	maxImageSize int64
	log          zerolog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(services *service.Services, cfg *config.Config, flash *FlashCodec, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		posts:        services.Posts,
		flash:        flash,
		maxImageSize: cfg.Upload.MaxImageSize,
		log:          log.With().Str("handler", "post").Logger(),
	}
}

// CreateForm handles GET /create
func (h *PostHandler) CreateForm(c *gin.Context) {
	renderPage(c, http.StatusOK, "create.html", gin.H{
		"Title": "Create Blog",
		"Draft": &models.Draft{},
	})
}

// Create handles POST /create (multipart: title, description, image).
// A previously uploaded image comes back as the image_preview data URL when the
// form is re-submitted after a validation error.
func (h *PostHandler) Create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxImageSize+formOverhead)

	draft := &models.Draft{
		Title: c.PostForm("title"),
		Body:  c.PostForm("description"),
	}

	img, err := h.readImage(c)
	if err != nil {
		h.log.Warn().Err(err).Msg("Unreadable image upload")
		h.invalid(c, draft, err.Error())
		return
	}
	if img != nil {
		draft.Image = img
		draft.ImagePreview = img.DataURL()
	}

	msg, err := h.posts.Submit(c.Request.Context(), currentSession(c), draft)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			h.invalid(c, draft, verrs.First())
			return
		}
		setFlash(c, h.flash, models.FlashError, blogapi.Message(err, msgGenericFailure))
		c.Redirect(http.StatusSeeOther, "/create")
		return
	}

	setSuccess(c, h.flash, msg, "Post submitted for review")
	c.Redirect(http.StatusSeeOther, "/")
}

// readImage returns the uploaded file, falling back to the carried-over preview
func (h *PostHandler) readImage(c *gin.Context) (*models.ImageFile, error) {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		if preview := c.PostForm("image_preview"); preview != "" {
			return models.ImageFromDataURL(preview, c.PostForm("image_name"))
		}
		return nil, nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return nil, fmt.Errorf("image too large, max size is %d MB", h.maxImageSize/(1024*1024))
	}
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	return &models.ImageFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// invalid re-renders the form with the draft kept
func (h *PostHandler) invalid(c *gin.Context, draft *models.Draft, message string) {
	renderPage(c, http.StatusUnprocessableEntity, "create.html", gin.H{
		"Title": "Create Blog",
		"Draft": draft,
		"Error": message,
	})
}
