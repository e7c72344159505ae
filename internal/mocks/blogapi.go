package mocks

import (
	"context"
	"sync"

	"github.com/bloggify-frontend/internal/models"
)

// MockBlogAPI is a mock implementation of the remote blog API.
// Each Func field overrides the default behaviour; calls are recorded.
type MockBlogAPI struct {
	mu sync.Mutex

	ListPostsFunc      func(ctx context.Context, params models.ListParams) (*models.PostPage, error)
	ListUnapprovedFunc func(ctx context.Context, params models.ListParams) (*models.PostPage, error)
	ApprovePostFunc    func(ctx context.Context, id string) (string, error)
	DeletePostFunc     func(ctx context.Context, id string) (string, error)
	CreatePostFunc     func(ctx context.Context, token string, post models.NewPostRequest) (string, error)
	LoginFunc          func(ctx context.Context, creds models.Credentials) (*models.LoginResult, error)
	RegisterFunc       func(ctx context.Context, reg models.Registration) (string, error)
	ForgotFunc         func(ctx context.Context, req models.PasswordResetRequest) (string, error)
	ResetFunc          func(ctx context.Context, id, token string, reset models.PasswordReset) (string, error)

	ListPostsCalls      []models.ListParams
	ListUnapprovedCalls []models.ListParams
	ApproveCalls        []string
	DeleteCalls         []string
	CreateCalls         []models.NewPostRequest
	CreateTokens        []string
	LoginCalls          []models.Credentials
	RegisterCalls       []models.Registration
	ForgotCalls         []models.PasswordResetRequest
	ResetCalls          []ResetCall
}

// ResetCall records one ResetPassword call
type ResetCall struct {
	ID    string
	Token string
	Reset models.PasswordReset
}

func NewMockBlogAPI() *MockBlogAPI {
	return &MockBlogAPI{}
}

func (m *MockBlogAPI) ListPosts(ctx context.Context, params models.ListParams) (*models.PostPage, error) {
	m.mu.Lock()
	m.ListPostsCalls = append(m.ListPostsCalls, params)
	fn := m.ListPostsFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, params)
	}
	return &models.PostPage{Pagination: models.FirstPage()}, nil
}

func (m *MockBlogAPI) ListUnapproved(ctx context.Context, params models.ListParams) (*models.PostPage, error) {
	m.mu.Lock()
	m.ListUnapprovedCalls = append(m.ListUnapprovedCalls, params)
	fn := m.ListUnapprovedFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, params)
	}
	return &models.PostPage{Pagination: models.FirstPage()}, nil
}

func (m *MockBlogAPI) ApprovePost(ctx context.Context, id string) (string, error) {
	m.mu.Lock()
	m.ApproveCalls = append(m.ApproveCalls, id)
	fn := m.ApprovePostFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, id)
	}
	return "Post approved", nil
}

func (m *MockBlogAPI) DeletePost(ctx context.Context, id string) (string, error) {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	fn := m.DeletePostFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, id)
	}
	return "Post deleted", nil
}

func (m *MockBlogAPI) CreatePost(ctx context.Context, token string, post models.NewPostRequest) (string, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, post)
	m.CreateTokens = append(m.CreateTokens, token)
	fn := m.CreatePostFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, token, post)
	}
	return "Post created", nil
}

func (m *MockBlogAPI) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	m.mu.Lock()
	m.LoginCalls = append(m.LoginCalls, creds)
	fn := m.LoginFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, creds)
	}
	return &models.LoginResult{Message: "Logged in", Token: "token-" + creds.Email}, nil
}

func (m *MockBlogAPI) Register(ctx context.Context, reg models.Registration) (string, error) {
	m.mu.Lock()
	m.RegisterCalls = append(m.RegisterCalls, reg)
	fn := m.RegisterFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, reg)
	}
	return "Registered", nil
}

func (m *MockBlogAPI) ForgotPassword(ctx context.Context, req models.PasswordResetRequest) (string, error) {
	m.mu.Lock()
	m.ForgotCalls = append(m.ForgotCalls, req)
	fn := m.ForgotFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	return "Reset link sent", nil
}

func (m *MockBlogAPI) ResetPassword(ctx context.Context, id, token string, reset models.PasswordReset) (string, error) {
	m.mu.Lock()
	m.ResetCalls = append(m.ResetCalls, ResetCall{ID: id, Token: token, Reset: reset})
	fn := m.ResetFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, id, token, reset)
	}
	return "Password updated", nil
}

// ListPostsCount returns the number of ListPosts calls so far
func (m *MockBlogAPI) ListPostsCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ListPostsCalls)
}

// LastListPosts returns the parameters of the most recent ListPosts call
func (m *MockBlogAPI) LastListPosts() models.ListParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.ListPostsCalls) == 0 {
		return models.ListParams{}
	}
	return m.ListPostsCalls[len(m.ListPostsCalls)-1]
}

// CreateCount returns the number of CreatePost calls so far
func (m *MockBlogAPI) CreateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.CreateCalls)
}
