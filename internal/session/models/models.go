package models

import (
	"time"

	dErrors "originstamp/pkg/domain-errors"
)

// Status is the lifecycle state of an art session.
//
// Transitions are driven by the client as the capture flow progresses:
// draft → uploading → active → closed. Certificate issuance is only valid
// while the session is uploading or active.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusUploading Status = "uploading"
	StatusActive    Status = "active"
	StatusClosed    Status = "closed"
)

// ParseStatus constructs a Status from external input, validating it.
func ParseStatus(s string) (Status, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "status cannot be empty")
	}
	st := Status(s)
	if !st.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid status: must be draft, uploading, active or closed")
	}
	return st, nil
}

// IsValid checks if the status is one of the supported enum values.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusUploading, StatusActive, StatusClosed:
		return true
	}
	return false
}

// Certifiable reports whether a certificate may be issued for a session in
// this state.
func (s Status) Certifiable() bool {
	return s == StatusActive || s == StatusUploading
}

// String returns the string representation.
func (s Status) String() string {
	return string(s)
}

// Session records a physical-art creation session: who is creating what, and
// the progress photos captured along the way.
//
// Invariant: PhotoRefs preserves upload order. The minting path depends on it
// (the last photo becomes the token's primary image).
type Session struct {
	SessionID     string    `json:"session_id"`
	OwnerUsername string    `json:"owner_username"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	PhotoRefs     []string  `json:"photo_refs"`
	Status        Status    `json:"status"`
	UploadedBytes uint64    `json:"uploaded_bytes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
