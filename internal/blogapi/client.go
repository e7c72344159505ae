package blogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bloggify-frontend/internal/models"
)

// maxErrorBody caps how much of an error response is read
const maxErrorBody = 64 << 10

// APIError is a non-2xx response from the blog API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("blog api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("blog api: status %d: %s", e.StatusCode, e.Message)
}

// Message returns the server-provided message carried by err, or fallback
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Client is a blog API client
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new blog API client rooted at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListPosts fetches one page of approved posts, optionally filtered by search
func (c *Client) ListPosts(ctx context.Context, params models.ListParams) (*models.PostPage, error) {
	q := pageQuery(params)
	if params.Search != "" {
		q.Set("search", params.Search)
	}

	var page models.PostPage
	if err := c.doJSON(ctx, http.MethodGet, "/posts/getpost?"+q.Encode(), nil, "", &page); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return &page, nil
}

// ListUnapproved fetches one page of posts awaiting moderation
func (c *Client) ListUnapproved(ctx context.Context, params models.ListParams) (*models.PostPage, error) {
	var page models.PostPage
	if err := c.doJSON(ctx, http.MethodGet, "/posts/unapprovedpost?"+pageQuery(params).Encode(), nil, "", &page); err != nil {
		return nil, fmt.Errorf("list unapproved posts: %w", err)
	}
	return &page, nil
}

// ApprovePost transitions a pending post to approved
func (c *Client) ApprovePost(ctx context.Context, id string) (string, error) {
	var resp models.MessageResponse
	path := "/posts/" + url.PathEscape(id) + "/approve"
	if err := c.doJSON(ctx, http.MethodPatch, path, nil, "", &resp); err != nil {
		return "", fmt.Errorf("approve post: %w", err)
	}
	return resp.Message, nil
}

// DeletePost removes a post; used to reject pending submissions
func (c *Client) DeletePost(ctx context.Context, id string) (string, error) {
	var resp models.MessageResponse
	if err := c.doJSON(ctx, http.MethodDelete, "/posts/delete/"+url.PathEscape(id), nil, "", &resp); err != nil {
		return "", fmt.Errorf("delete post: %w", err)
	}
	return resp.Message, nil
}

// CreatePost submits a new post as multipart form data with a bearer token
func (c *Client) CreatePost(ctx context.Context, token string, post models.NewPostRequest) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("title", post.Title); err != nil {
		return "", fmt.Errorf("write title: %w", err)
	}
	if err := writer.WriteField("description", post.Description); err != nil {
		return "", fmt.Errorf("write description: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="image"; filename=%q`, post.Image.Filename))
	header.Set("Content-Type", post.Image.DetectedType())
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("create image part: %w", err)
	}
	if _, err := part.Write(post.Image.Data); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	var resp models.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/posts/create", body, writer.FormDataContentType(), token, &resp); err != nil {
		return "", fmt.Errorf("create post: %w", err)
	}
	return resp.Message, nil
}

// Login exchanges credentials for a token and role
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	var result models.LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/users/login", creds, "", &result); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &result, nil
}

// Register creates a new account
func (c *Client) Register(ctx context.Context, reg models.Registration) (string, error) {
	var resp models.MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/users/register", reg, "", &resp); err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	return resp.Message, nil
}

// ForgotPassword asks the blog API to email a password reset link
func (c *Client) ForgotPassword(ctx context.Context, req models.PasswordResetRequest) (string, error) {
	var resp models.MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/users/forgot-password", req, "", &resp); err != nil {
		return "", fmt.Errorf("forgot password: %w", err)
	}
	return resp.Message, nil
}

// ResetPassword sets a new password using the id and token from the reset link
func (c *Client) ResetPassword(ctx context.Context, id, token string, reset models.PasswordReset) (string, error) {
	var resp models.MessageResponse
	path := "/users/reset-password/" + url.PathEscape(id) + "/" + url.PathEscape(token)
	if err := c.doJSON(ctx, http.MethodPost, path, reset, "", &resp); err != nil {
		return "", fmt.Errorf("reset password: %w", err)
	}
	return resp.Message, nil
}

func pageQuery(params models.ListParams) url.Values {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = models.DefaultPageSize
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

// doJSON sends an optional JSON body and decodes the JSON response into result
func (c *Client) doJSON(ctx context.Context, method, path string, payload interface{}, token string, result interface{}) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(jsonData)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, token, result)
}

// do performs a request and maps non-2xx responses to *APIError
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType, token string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}
