package service

import (
	"context"
	"sync"

	"github.com/bloggify-frontend/internal/models"
	"github.com/rs/zerolog"
)

// PageFetcher loads one page of posts from the blog API
type PageFetcher func(ctx context.Context, params models.ListParams) (*models.PostPage, error)

// ListSnapshot is a copy of a list view's state for rendering
type ListSnapshot struct {
	Items      []models.Post
	Pagination models.Pagination
	Page       int
	Search     string
	Loading    bool
	Loaded     bool
}

// ListView holds one page of posts and its pagination state.
// Every fetch is tagged with an increasing request token and only the response to the
// latest token is applied, so a slow superseded response cannot overwrite newer state.
type ListView struct {
	fetch PageFetcher
	limit int
	log   zerolog.Logger

	mu         sync.Mutex
	items      []models.Post
	pagination models.Pagination
	// params is the latest request; held is what items and pagination belong to
	params  models.ListParams
	held    models.ListParams
	loading bool
	loaded  bool
	latest  uint64
}

// NewListView creates an empty list view
func NewListView(fetch PageFetcher, limit int, log zerolog.Logger) *ListView {
	if limit < 1 {
		limit = models.DefaultPageSize
	}
	return &ListView{
		fetch:      fetch,
		limit:      limit,
		log:        log,
		pagination: models.FirstPage(),
		params:     models.ListParams{Page: 1, Limit: limit},
		held:       models.ListParams{Page: 1, Limit: limit},
	}
}

// Load fetches the given page and search, reporting whether the response was applied.
// Failures are logged and swallowed; the previous items stay in place and the view
// falls back to the params they belong to, so asking again re-runs the fetch.
func (v *ListView) Load(ctx context.Context, page int, search string) bool {
	if page < 1 {
		page = 1
	}

	v.mu.Lock()
	v.latest++
	token := v.latest
	v.params = models.ListParams{Page: page, Limit: v.limit, Search: search}
	v.loading = true
	params := v.params
	v.mu.Unlock()

	result, err := v.fetch(ctx, params)

	v.mu.Lock()
	defer v.mu.Unlock()

	if token != v.latest {
		v.log.Debug().
			Uint64("token", token).
			Uint64("latest", v.latest).
			Int("page", page).
			Msg("Discarding superseded list response")
		return false
	}

	v.loading = false
	if err != nil {
		v.log.Error().Err(err).Int("page", page).Str("search", search).Msg("Failed to fetch posts")
		v.params = v.held
		return false
	}

	v.items = append([]models.Post(nil), result.Posts...)
	v.pagination = result.Pagination.Normalized()
	v.held = params
	v.loaded = true
	return true
}

// Ensure loads the page unless it is already held or already being fetched
func (v *ListView) Ensure(ctx context.Context, page int, search string) {
	if page < 1 {
		page = 1
	}

	v.mu.Lock()
	skip := v.requestedLocked(page, search) && (v.loading || v.heldLocked(page, search))
	v.mu.Unlock()

	if !skip {
		v.Load(ctx, page, search)
	}
}

// Holds reports whether the view shows, or is fetching, results for the search
func (v *ListView) Holds(search string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.params.Search == search && (v.loading || (v.loaded && v.held.Search == search))
}

// Page returns the page number of the latest request
func (v *ListView) Page() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.params.Page
}

// Contains reports whether a post with the id is on the held page
func (v *ListView) Contains(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.indexLocked(id) >= 0
}

// Remove drops the post with the id and decrements the known total.
// Total pages are left alone until the next fetch.
func (v *ListView) Remove(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	i := v.indexLocked(id)
	if i < 0 {
		return false
	}
	v.items = append(v.items[:i:i], v.items[i+1:]...)
	if v.pagination.TotalPosts > 0 {
		v.pagination.TotalPosts--
	}
	return true
}

// Snapshot copies the current state
func (v *ListView) Snapshot() ListSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	return ListSnapshot{
		Items:      append([]models.Post(nil), v.items...),
		Pagination: v.pagination,
		Page:       v.params.Page,
		Search:     v.params.Search,
		Loading:    v.loading,
		Loaded:     v.loaded,
	}
}

func (v *ListView) requestedLocked(page int, search string) bool {
	return v.params.Page == page && v.params.Search == search
}

func (v *ListView) heldLocked(page int, search string) bool {
	return v.loaded && v.held.Page == page && v.held.Search == search
}

func (v *ListView) indexLocked(id string) int {
	for i := range v.items {
		if v.items[i].ID == id {
			return i
		}
	}
	return -1
}
