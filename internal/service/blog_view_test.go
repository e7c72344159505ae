package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bloggify-frontend/internal/debounce"
	"github.com/bloggify-frontend/internal/mocks"
	"github.com/bloggify-frontend/internal/models"
	"github.com/bloggify-frontend/internal/service"
	"github.com/rs/zerolog"
)

// Verify interface compliance
var _ service.BlogAPI = (*mocks.MockBlogAPI)(nil)

const testDebounce = 500 * time.Millisecond

func newBlogView(t *testing.T) (*service.BlogView, *mocks.MockBlogAPI, *mocks.FakeClock) {
	t.Helper()

	api := mocks.NewMockBlogAPI()
	api.ListPostsFunc = func(ctx context.Context, params models.ListParams) (*models.PostPage, error) {
		return postPage(params.Page, 5, 45, "p1", "p2"), nil
	}
	clock := mocks.NewFakeClock()
	v := service.NewBlogView(context.Background(), api, 9, debounce.New(testDebounce, clock), zerolog.Nop())
	return v, api, clock
}

func TestBlogView_TypingCommitsOnceAfterQuietPeriod(t *testing.T) {
	v, api, clock := newBlogView(t)
	v.Show(context.Background(), 0)

	v.Input("a")
	clock.Advance(100 * time.Millisecond)
	v.Input("ab")
	clock.Advance(100 * time.Millisecond)
	v.Input("abc")

	clock.Advance(testDebounce - time.Millisecond)
	if n := api.ListPostsCount(); n != 1 {
		t.Fatalf("Expected no search fetch before the quiet period ends, got %d calls", n)
	}
	if snap := v.Snapshot(); snap.Buffer != "abc" || snap.Query != "" || !snap.SearchPending {
		t.Errorf("Unexpected state while typing: %+v", snap)
	}

	clock.Advance(time.Millisecond)
	if n := api.ListPostsCount(); n != 2 {
		t.Fatalf("Expected exactly one search fetch, got %d calls", n-1)
	}

	last := api.LastListPosts()
	if last.Search != "abc" || last.Page != 1 {
		t.Errorf("Expected page 1 search abc, got %+v", last)
	}
	if q := v.Snapshot().Query; q != "abc" {
		t.Errorf("Expected committed query abc, got %q", q)
	}
}

func TestBlogView_SubmitCommitsImmediately(t *testing.T) {
	v, api, clock := newBlogView(t)
	v.Show(context.Background(), 0)

	v.Input("a")
	v.Input("ab")
	v.Submit("ab")

	if last := api.LastListPosts(); last.Search != "ab" {
		t.Fatalf("Expected immediate fetch for ab, got %+v", last)
	}

	// The submit cancelled the pending commit for ab
	clock.Advance(testDebounce)
	if n := api.ListPostsCount(); n != 2 {
		t.Errorf("Expected 2 fetches, got %d", n)
	}

	v.Input("abc")
	if !v.Snapshot().SearchPending {
		t.Error("abc should be pending after the submit")
	}
	clock.Advance(testDebounce)
	if last := api.LastListPosts(); last.Search != "abc" {
		t.Errorf("Expected abc to commit after its own quiet period, got %+v", last)
	}
}

func TestBlogView_CommitResetsToFirstPage(t *testing.T) {
	v, api, _ := newBlogView(t)

	snap := v.Show(context.Background(), 3)
	if snap.Page != 3 {
		t.Fatalf("Expected page 3, got %d", snap.Page)
	}

	v.Submit("go")
	last := api.LastListPosts()
	if last.Page != 1 || last.Search != "go" {
		t.Errorf("Expected page 1 for new query, got %+v", last)
	}
	if got := v.Snapshot().Page; got != 1 {
		t.Errorf("Expected page 1 after commit, got %d", got)
	}

	// Paging keeps the committed query
	v.Show(context.Background(), 2)
	if last := api.LastListPosts(); last.Page != 2 || last.Search != "go" {
		t.Errorf("Expected page 2 of go, got %+v", last)
	}
}

func TestBlogView_EscapeClearsQuery(t *testing.T) {
	v, api, clock := newBlogView(t)
	v.Submit("go")

	v.Input("gop")
	v.Escape()

	if last := api.LastListPosts(); last.Search != "" || last.Page != 1 {
		t.Errorf("Expected unfiltered first page, got %+v", last)
	}
	before := api.ListPostsCount()
	clock.Advance(testDebounce)
	if api.ListPostsCount() != before {
		t.Error("Escape should cancel the pending commit")
	}

	snap := v.Snapshot()
	if snap.Buffer != "" || snap.Query != "" || snap.SearchPending {
		t.Errorf("Unexpected state after escape: %+v", snap)
	}
}

func TestBlogView_UnchangedQueryDoesNotRefetch(t *testing.T) {
	v, api, clock := newBlogView(t)
	v.Submit("go")
	before := api.ListPostsCount()

	v.Input("go")
	clock.Advance(testDebounce)
	v.Submit("go")

	if api.ListPostsCount() != before {
		t.Errorf("Expected no fetch for an unchanged query, got %d", api.ListPostsCount()-before)
	}
}

func TestBlogView_ResubmitAfterFailedSearch(t *testing.T) {
	v, api, _ := newBlogView(t)
	v.Show(context.Background(), 0)

	api.ListPostsFunc = func(ctx context.Context, params models.ListParams) (*models.PostPage, error) {
		return nil, errors.New("network down")
	}
	v.Submit("go")
	before := api.ListPostsCount()

	api.ListPostsFunc = func(ctx context.Context, params models.ListParams) (*models.PostPage, error) {
		return postPage(params.Page, 1, 1, "g1"), nil
	}
	v.Submit("go")

	if api.ListPostsCount() != before+1 {
		t.Fatalf("Expected the same query to be fetched again, got %d fetches", api.ListPostsCount()-before)
	}
	snap := v.Snapshot()
	if snap.Search != "go" || snap.Query != "go" || len(snap.Items) != 1 || snap.Items[0].ID != "g1" {
		t.Errorf("Expected results for go, got %+v", snap)
	}
}

func TestBlogView_CommitWaitsForShow(t *testing.T) {
	v, api, clock := newBlogView(t)

	started := make(chan struct{})
	release := make(chan struct{})
	api.ListPostsFunc = func(ctx context.Context, params models.ListParams) (*models.PostPage, error) {
		if params.Page == 2 {
			close(started)
			<-release
		}
		return postPage(params.Page, 5, 45, "p1"), nil
	}

	shown := make(chan struct{})
	go func() {
		v.Show(context.Background(), 2)
		close(shown)
	}()
	<-started

	v.Input("go")
	committed := make(chan struct{})
	go func() {
		clock.Advance(testDebounce)
		close(committed)
	}()

	time.Sleep(50 * time.Millisecond)
	if n := api.ListPostsCount(); n != 1 {
		t.Fatalf("Expected the commit to wait for the page fetch, got %d fetches", n)
	}

	close(release)
	for _, ch := range []chan struct{}{shown, committed} {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatal("Show or commit never returned")
		}
	}

	if last := api.LastListPosts(); last.Page != 1 || last.Search != "go" {
		t.Errorf("Expected the commit fetch last, got %+v", last)
	}
	if snap := v.Snapshot(); snap.Page != 1 || snap.Search != "go" {
		t.Errorf("Expected page 1 of go, got page %d search %q", snap.Page, snap.Search)
	}
}

func TestBlogView_CloseDropsPendingCommit(t *testing.T) {
	v, api, clock := newBlogView(t)
	v.Input("late")
	v.Close()

	clock.Advance(testDebounce)
	if api.ListPostsCount() != 0 {
		t.Errorf("Expected no fetch after close, got %d", api.ListPostsCount())
	}
	if clock.PendingTimers() != 0 {
		t.Errorf("Expected no pending timers, got %d", clock.PendingTimers())
	}
}
