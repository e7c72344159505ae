package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bloggify-frontend/internal/mocks"
	"github.com/bloggify-frontend/internal/models"
	"github.com/bloggify-frontend/internal/service"
	"github.com/rs/zerolog"
)

func newAdminView(t *testing.T) (*service.AdminView, *mocks.MockBlogAPI) {
	t.Helper()

	api := mocks.NewMockBlogAPI()
	api.ListUnapprovedFunc = func(ctx context.Context, params models.ListParams) (*models.PostPage, error) {
		return postPage(1, 2, 12, "x1", "x2", "x3"), nil
	}
	v := service.NewAdminView(api, 9, zerolog.Nop())
	v.Show(context.Background(), 1)
	return v, api
}

func TestAdminView_ModerationRemovesExactlyOnePost(t *testing.T) {
	tests := []struct {
		name   string
		action func(v *service.AdminView, id string) (string, error)
		calls  func(api *mocks.MockBlogAPI) []string
	}{
		{
			name: "approve",
			action: func(v *service.AdminView, id string) (string, error) {
				return v.Approve(context.Background(), id)
			},
			calls: func(api *mocks.MockBlogAPI) []string { return api.ApproveCalls },
		},
		{
			name: "reject",
			action: func(v *service.AdminView, id string) (string, error) {
				return v.Reject(context.Background(), id)
			},
			calls: func(api *mocks.MockBlogAPI) []string { return api.DeleteCalls },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, api := newAdminView(t)

			msg, err := tt.action(v, "x2")
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if msg == "" {
				t.Error("Expected the API message to be returned")
			}
			if got := tt.calls(api); fmt.Sprint(got) != "[x2]" {
				t.Errorf("Expected one call for x2, got %v", got)
			}

			snap := v.Snapshot()
			if fmt.Sprint(itemIDs(snap.Items)) != "[x1 x3]" {
				t.Errorf("Unexpected items: %v", itemIDs(snap.Items))
			}
			if snap.Pagination.TotalPosts != 11 {
				t.Errorf("Expected total 11, got %d", snap.Pagination.TotalPosts)
			}
			if len(snap.InFlight) != 0 {
				t.Errorf("Expected nothing in flight, got %v", snap.InFlight)
			}
		})
	}
}

func TestAdminView_FailureLeavesListUnchanged(t *testing.T) {
	v, api := newAdminView(t)
	apiErr := errors.New("boom")
	api.ApprovePostFunc = func(ctx context.Context, id string) (string, error) {
		return "", apiErr
	}

	if _, err := v.Approve(context.Background(), "x1"); !errors.Is(err, apiErr) {
		t.Fatalf("Expected API error, got %v", err)
	}

	snap := v.Snapshot()
	if len(snap.Items) != 3 || snap.Pagination.TotalPosts != 12 {
		t.Errorf("List changed after a failure: %v total=%d", itemIDs(snap.Items), snap.Pagination.TotalPosts)
	}
	if _, busy := v.InFlight("x1"); busy {
		t.Error("Failed action should not stay in flight")
	}
}

func TestAdminView_UnknownPost(t *testing.T) {
	v, api := newAdminView(t)

	if _, err := v.Reject(context.Background(), "nope"); !errors.Is(err, service.ErrPostNotFound) {
		t.Errorf("Expected ErrPostNotFound, got %v", err)
	}
	if len(api.DeleteCalls) != 0 {
		t.Errorf("Expected no API call, got %v", api.DeleteCalls)
	}
}

func TestAdminView_InFlightIsPerPost(t *testing.T) {
	v, api := newAdminView(t)

	started := make(chan struct{})
	release := make(chan struct{})
	api.ApprovePostFunc = func(ctx context.Context, id string) (string, error) {
		if id == "x1" {
			close(started)
			<-release
		}
		return "ok", nil
	}

	done := make(chan error)
	go func() {
		_, err := v.Approve(context.Background(), "x1")
		done <- err
	}()
	<-started

	if action, busy := v.InFlight("x1"); !busy || action != models.ActionApprove {
		t.Errorf("Expected x1 approve in flight, got %q %v", action, busy)
	}

	// A second action on the same post is refused
	if _, err := v.Reject(context.Background(), "x1"); !errors.Is(err, service.ErrActionInFlight) {
		t.Errorf("Expected ErrActionInFlight, got %v", err)
	}

	// Other posts are not blocked
	if _, err := v.Reject(context.Background(), "x3"); err != nil {
		t.Errorf("Unexpected error moderating another post: %v", err)
	}
	if _, busy := v.InFlight("x3"); busy {
		t.Error("x3 should not be in flight")
	}

	close(release)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Approve never returned")
	}

	snap := v.Snapshot()
	if fmt.Sprint(itemIDs(snap.Items)) != "[x2]" {
		t.Errorf("Unexpected items: %v", itemIDs(snap.Items))
	}
	if snap.Pagination.TotalPosts != 10 {
		t.Errorf("Expected total 10, got %d", snap.Pagination.TotalPosts)
	}
}
