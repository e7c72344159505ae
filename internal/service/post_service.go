package service

import (
	"context"

	"github.com/bloggify-frontend/internal/content"
	"github.com/bloggify-frontend/internal/models"
	"github.com/bloggify-frontend/internal/validation"
	"github.com/rs/zerolog"
)

// postService is the concrete implementation of PostService
type postService struct {
	api          BlogAPI
	maxImageSize int64
	log          zerolog.Logger
}

func newPostService(api BlogAPI, maxImageSize int64, log zerolog.Logger) *postService {
	return &postService{
		api:          api,
		maxImageSize: maxImageSize,
		log:          log.With().Str("service", "post").Logger(),
	}
}

// NewPostService creates a PostService
func NewPostService(api BlogAPI, maxImageSize int64, log zerolog.Logger) PostService {
	return newPostService(api, maxImageSize, log)
}

// Submit validates the draft, then sends it as a multipart payload.
// A validation failure keeps the draft and makes no call. Once a call is made the
// draft is cleared whatever the outcome, so a failed submission loses it.
func (s *postService) Submit(ctx context.Context, session models.Session, draft *models.Draft) (string, error) {
	if errs := validation.ValidateDraft(draft, s.maxImageSize); len(errs) > 0 {
		return "", errs
	}
	defer draft.Reset()

	req := models.NewPostRequest{
		Title:       draft.Title,
		Description: content.StripParagraphs(draft.Body),
		Image:       *draft.Image,
	}

	msg, err := s.api.CreatePost(ctx, session.Token, req)
	if err != nil {
		s.log.Error().Err(err).Str("title", req.Title).Msg("Failed to create post")
		return "", err
	}

	s.log.Info().
		Str("title", req.Title).
		Int("image_bytes", len(req.Image.Data)).
		Msg("Post submitted for moderation")

	return msg, nil
}
