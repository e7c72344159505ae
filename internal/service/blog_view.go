package service

import (
	"context"

	"github.com/bloggify-frontend/internal/debounce"
	"github.com/rs/zerolog"
)

// BlogSnapshot is the rendered state of the public post list
type BlogSnapshot struct {
	ListSnapshot
	Buffer        string
	Query         string
	SearchPending bool
}

// BlogView is one visitor's searchable list of published posts
type BlogView struct {
	ctx    context.Context
	list   *ListView
	search *SearchBox
}

// NewBlogView creates a blog view; fetches triggered by search commits run under ctx
func NewBlogView(ctx context.Context, api BlogAPI, limit int, d *debounce.Debouncer, log zerolog.Logger) *BlogView {
	v := &BlogView{
		ctx:  ctx,
		list: NewListView(api.ListPosts, limit, log.With().Str("view", "blog").Logger()),
	}
	v.search = NewSearchBox(d, v.onCommit, v.list.Holds)
	return v
}

// Show makes sure the requested page is held; page 0 keeps the current page.
// The query is read and fetched before any search commit can run, so a commit never
// lands ahead of a fetch for the query it replaced.
func (v *BlogView) Show(ctx context.Context, page int) BlogSnapshot {
	v.search.WithQuery(func(query string) {
		if page < 1 {
			page = v.list.Page()
		}
		v.list.Ensure(ctx, page, query)
	})
	return v.Snapshot()
}

// Input records a keystroke in the search box
func (v *BlogView) Input(value string) {
	v.search.Input(value)
}

// Submit commits value as the search query immediately
func (v *BlogView) Submit(value string) {
	v.search.SubmitValue(value)
}

// Escape clears the search box and the committed query
func (v *BlogView) Escape() {
	v.search.Escape()
}

// Snapshot copies the current state without fetching
func (v *BlogView) Snapshot() BlogSnapshot {
	return BlogSnapshot{
		ListSnapshot:  v.list.Snapshot(),
		Buffer:        v.search.Buffer(),
		Query:         v.search.Query(),
		SearchPending: v.search.Pending(),
	}
}

// Close drops any pending search commit
func (v *BlogView) Close() {
	v.search.Cancel()
}

// onCommit resets to the first page for the new query
func (v *BlogView) onCommit(query string) {
	v.list.Load(v.ctx, 1, query)
}
