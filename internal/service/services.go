package service

import (
	"context"

	"github.com/bloggify-frontend/internal/config"
	"github.com/bloggify-frontend/internal/debounce"
	"github.com/bloggify-frontend/internal/models"
	"github.com/bloggify-frontend/internal/repository"
	"github.com/rs/zerolog"
)

// BlogAPI is the remote blog API consumed by the front end
type BlogAPI interface {
	ListPosts(ctx context.Context, params models.ListParams) (*models.PostPage, error)
	ListUnapproved(ctx context.Context, params models.ListParams) (*models.PostPage, error)
	ApprovePost(ctx context.Context, id string) (string, error)
	DeletePost(ctx context.Context, id string) (string, error)
	CreatePost(ctx context.Context, token string, post models.NewPostRequest) (string, error)
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error)
	Register(ctx context.Context, reg models.Registration) (string, error)
	ForgotPassword(ctx context.Context, req models.PasswordResetRequest) (string, error)
	ResetPassword(ctx context.Context, id, token string, reset models.PasswordReset) (string, error)
}

// SessionService defines session flag operations
type SessionService interface {
	Load(ctx context.Context, sessionID string) (models.Session, error)
	Login(ctx context.Context, sessionID string, creds models.Credentials) (models.Session, string, error)
	Register(ctx context.Context, reg models.Registration) (string, error)
	Logout(ctx context.Context, sessionID string) error
	ForgotPassword(ctx context.Context, req models.PasswordResetRequest) (string, error)
	ResetPassword(ctx context.Context, id, token string, reset models.PasswordReset) (string, error)
}

// PostService defines the create-post flow
type PostService interface {
	Submit(ctx context.Context, session models.Session, draft *models.Draft) (string, error)
}

// HealthChecker reports whether a backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Services holds all services
type Services struct {
	Session SessionService
	Posts   PostService
	Views   *ViewRegistry
	Store   HealthChecker
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, api BlogAPI, cfg *config.Config, log zerolog.Logger) *Services {
	views := NewViewRegistry(api, cfg.View, debounce.SystemClock{}, log)
	views.PruneSessions(repos.SessionFlags, cfg.Session.CookieMaxAge)

	return &Services{
		Session: newSessionService(repos.SessionFlags, api, log),
		Posts:   newPostService(api, cfg.Upload.MaxImageSize, log),
		Views:   views,
		Store:   repos,
	}
}
