package service

import (
	"context"
	"sync"

	"github.com/bloggify-frontend/internal/models"
	"github.com/rs/zerolog"
)

// AdminSnapshot is the rendered state of the moderation queue
type AdminSnapshot struct {
	ListSnapshot
	InFlight map[string]models.ModerationAction
}

// AdminView is one admin's page of posts awaiting moderation.
// Moderation calls are tracked per post id, so actions on different posts never share state.
type AdminView struct {
	api  BlogAPI
	list *ListView
	log  zerolog.Logger

	mu       sync.Mutex
	inFlight map[string]models.ModerationAction
}

// NewAdminView creates an admin view
func NewAdminView(api BlogAPI, limit int, log zerolog.Logger) *AdminView {
	log = log.With().Str("view", "admin").Logger()
	return &AdminView{
		api:      api,
		list:     NewListView(api.ListUnapproved, limit, log),
		log:      log,
		inFlight: make(map[string]models.ModerationAction),
	}
}

// Show makes sure the requested page is held; page 0 keeps the current page
func (v *AdminView) Show(ctx context.Context, page int) AdminSnapshot {
	if page < 1 {
		page = v.list.Page()
	}
	v.list.Ensure(ctx, page, "")
	return v.Snapshot()
}

// Approve approves the post and removes it from the held page
func (v *AdminView) Approve(ctx context.Context, id string) (string, error) {
	return v.moderate(ctx, id, models.ActionApprove, v.api.ApprovePost)
}

// Reject deletes the post and removes it from the held page
func (v *AdminView) Reject(ctx context.Context, id string) (string, error) {
	return v.moderate(ctx, id, models.ActionReject, v.api.DeletePost)
}

// InFlight reports the pending action for a post, if any
func (v *AdminView) InFlight(id string) (models.ModerationAction, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	action, ok := v.inFlight[id]
	return action, ok
}

// Snapshot copies the current state without fetching
func (v *AdminView) Snapshot() AdminSnapshot {
	v.mu.Lock()
	inFlight := make(map[string]models.ModerationAction, len(v.inFlight))
	for id, action := range v.inFlight {
		inFlight[id] = action
	}
	v.mu.Unlock()

	return AdminSnapshot{
		ListSnapshot: v.list.Snapshot(),
		InFlight:     inFlight,
	}
}

func (v *AdminView) moderate(ctx context.Context, id string, action models.ModerationAction, call func(context.Context, string) (string, error)) (string, error) {
	if !v.list.Contains(id) {
		return "", ErrPostNotFound
	}

	v.mu.Lock()
	if _, busy := v.inFlight[id]; busy {
		v.mu.Unlock()
		return "", ErrActionInFlight
	}
	v.inFlight[id] = action
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		delete(v.inFlight, id)
		v.mu.Unlock()
	}()

	msg, err := call(ctx, id)
	if err != nil {
		v.log.Warn().Err(err).Str("post_id", id).Str("action", string(action)).Msg("Moderation failed")
		return "", err
	}

	v.list.Remove(id)
	v.log.Info().Str("post_id", id).Str("action", string(action)).Msg("Post moderated")
	return msg, nil
}
