package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrAuthorNotFound = errors.New("post author not found")
	ErrPostNotFound   = errors.New("post not found")
	ErrReportNotFound = errors.New("report not found")

	// ErrSelfValidation rejects an author attesting to their own content.
	ErrSelfValidation = errors.New("author cannot validate own post")
	// ErrDoubleValidation rejects a second vote on the same post by the same user.
	// Returned instead of a silent no-op so callers can distinguish "already voted"
	// from "recorded".
	ErrDoubleValidation = errors.New("post already validated by user")
	ErrDuplicateReport  = errors.New("post already reported by user")

	ErrUserAlreadyExists = errors.New("matricule already registered")
	// ErrReportAlreadyResolved guards the report state machine: VALIDATED and
	// REJECTED are terminal.
	ErrReportAlreadyResolved = errors.New("report already resolved")
	ErrUnauthorized          = errors.New("unauthorized")
	// ErrForbidden signals a non-admin attempting an admin-only action.
	ErrForbidden    = errors.New("administrative privileges required")
	ErrInvalidInput = errors.New("invalid input")

	ErrTrustScoreOutOfRange = errors.New("trust score out of range")

	// ErrVersionConflict signals a lost optimistic-concurrency race on a post row.
	// Engines retry the read-recompute-write loop on it; it never reaches callers.
	ErrVersionConflict = errors.New("post version conflict")
)

// ModerationActionError wraps an unexpected failure inside a moderation workflow
// while preserving the original cause. Invariant violations (duplicate report,
// not-found) propagate unwrapped so callers can special-case them.
type ModerationActionError struct {
	Action string
	Err    error
}

func (e *ModerationActionError) Error() string {
	return fmt.Sprintf("moderation action %s failed: %v", e.Action, e.Err)
}

func (e *ModerationActionError) Unwrap() error { return e.Err }

// SyncError wraps a failure while ingesting from an external source.
type SyncError struct {
	Source string
	Err    error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync from %s failed: %v", e.Source, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// InboundPersistenceError marks a store failure for a specific inbound item.
type InboundPersistenceError struct {
	ExternalID string
	Err        error
}

func (e *InboundPersistenceError) Error() string {
	return fmt.Sprintf("persist inbound post %s failed: %v", e.ExternalID, e.Err)
}

func (e *InboundPersistenceError) Unwrap() error { return e.Err }
