package models

// ModerationAction is the admin action applied to a pending post
type ModerationAction string

const (
	ActionApprove ModerationAction = "approve"
	ActionReject  ModerationAction = "reject"
)

// FlashKind classifies a transient notification
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot notification shown on the next rendered page
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}
