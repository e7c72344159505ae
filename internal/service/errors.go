package service

import "errors"

var (
	// ErrPostNotFound is returned when a moderation target is not on the held page
	ErrPostNotFound = errors.New("post not found on current page")
	// ErrActionInFlight is returned when the post already has a pending moderation call
	ErrActionInFlight = errors.New("moderation already in progress for post")
	// ErrMissingToken is returned when a login response carries no token
	ErrMissingToken = errors.New("login response carried no token")
	// ErrInvalidResetLink is returned when a reset link lacks its user id or token
	ErrInvalidResetLink = errors.New("invalid password reset link")
)
