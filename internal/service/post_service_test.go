package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bloggify-frontend/internal/mocks"
	"github.com/bloggify-frontend/internal/models"
	"github.com/bloggify-frontend/internal/service"
	"github.com/bloggify-frontend/internal/validation"
	"github.com/rs/zerolog"
)

// 1x1 transparent PNG
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89,
}

func fullDraft() *models.Draft {
	return &models.Draft{
		Title:        "Hello",
		Body:         "<p>First</p><p>Second <b>bold</b></p>",
		Image:        &models.ImageFile{Filename: "cover.png", ContentType: "image/png", Data: pngBytes},
		ImagePreview: "data:image/png;base64,AAAA",
	}
}

func TestPostService_Submit(t *testing.T) {
	api := mocks.NewMockBlogAPI()
	svc := service.NewPostService(api, 1024*1024, zerolog.Nop())
	draft := fullDraft()

	msg, err := svc.Submit(context.Background(), models.Session{Token: "tok"}, draft)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if msg != "Post created" {
		t.Errorf("Unexpected message %q", msg)
	}

	if api.CreateCount() != 1 {
		t.Fatalf("Expected 1 create call, got %d", api.CreateCount())
	}
	req := api.CreateCalls[0]
	if req.Description != "FirstSecond <b>bold</b>" {
		t.Errorf("Paragraph tags not stripped: %q", req.Description)
	}
	if req.Title != "Hello" || req.Image.Filename != "cover.png" {
		t.Errorf("Unexpected request: %+v", req)
	}
	if api.CreateTokens[0] != "tok" {
		t.Errorf("Expected session token to be sent, got %q", api.CreateTokens[0])
	}
	if draft.Title != "" || draft.Image != nil || draft.ImagePreview != "" {
		t.Errorf("Draft should be cleared after success: %+v", draft)
	}
}

func TestPostService_MissingFieldMakesNoCall(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *models.Draft)
	}{
		{"no title", func(d *models.Draft) { d.Title = "  " }},
		{"no body", func(d *models.Draft) { d.Body = "" }},
		{"no image", func(d *models.Draft) { d.Image = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := mocks.NewMockBlogAPI()
			svc := service.NewPostService(api, 1024*1024, zerolog.Nop())
			draft := fullDraft()
			tt.mutate(draft)
			before := *draft

			_, err := svc.Submit(context.Background(), models.Session{Token: "tok"}, draft)

			var verrs validation.Errors
			if !errors.As(err, &verrs) {
				t.Fatalf("Expected validation errors, got %v", err)
			}
			if verrs.First() != validation.MsgAllFieldsRequired {
				t.Errorf("Unexpected message %q", verrs.First())
			}
			if api.CreateCount() != 0 {
				t.Errorf("Expected no create call, got %d", api.CreateCount())
			}
			if *draft != before {
				t.Error("Draft should be kept after a validation failure")
			}
		})
	}
}

func TestPostService_FailureClearsDraft(t *testing.T) {
	api := mocks.NewMockBlogAPI()
	api.CreatePostFunc = func(ctx context.Context, token string, post models.NewPostRequest) (string, error) {
		return "", errors.New("server error")
	}
	svc := service.NewPostService(api, 1024*1024, zerolog.Nop())
	draft := fullDraft()

	if _, err := svc.Submit(context.Background(), models.Session{Token: "tok"}, draft); err == nil {
		t.Fatal("Expected error")
	}
	if draft.Title != "" || draft.Body != "" || draft.Image != nil {
		t.Errorf("Draft should be cleared once the call was made: %+v", draft)
	}
}

func TestPostService_ImageTooLarge(t *testing.T) {
	api := mocks.NewMockBlogAPI()
	svc := service.NewPostService(api, 8, zerolog.Nop())

	_, err := svc.Submit(context.Background(), models.Session{Token: "tok"}, fullDraft())
	var verrs validation.Errors
	if !errors.As(err, &verrs) || verrs[0].Field != "image" {
		t.Fatalf("Expected image validation error, got %v", err)
	}
	if api.CreateCount() != 0 {
		t.Error("Expected no create call")
	}
}
