// internal/moderation/machine.go

// Package moderation implements the lifecycle of submitted content items.
// Every book and PDF carries a status of pending, approved, or rejected;
// the transitions here are the only way that status changes. The store's
// row-level policies enforce the same rules independently, but the guard
// below is the check the rest of the codebase relies on and tests against.
package moderation

import (
	"errors"
	"fmt"

	"github.com/gurukulpustakalaya/backend/internal/models"
)

// Action is an administrator operation on a content item.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionDelete  Action = "delete"
)

var (
	// ErrNotAuthorized means the acting principal lacks administrator capability.
	ErrNotAuthorized = errors.New("moderation: administrator capability required")

	// ErrInvalidTransition means the requested action is not defined for the
	// item's current status.
	ErrInvalidTransition = errors.New("moderation: invalid transition")
)

// InitialStatus is the status of every newly created content item.
// Submission code must not accept a caller-supplied status.
const InitialStatus = models.UploadStatusPending

// Authorize is the capability check evaluated before any transition.
// Only the admin role passes; the role must come from a freshly loaded
// profile row, never from a client-supplied claim.
func Authorize(role models.UserRole) error {
	if role != models.UserRoleAdmin {
		return ErrNotAuthorized
	}
	return nil
}

// Transition computes the status that applying action to current yields.
//
//	approve: pending -> approved, approved -> approved (idempotent).
//	         A rejected item cannot be approved; the owner resubmits instead.
//	reject:  settable from any state, idempotent on rejected.
//
// Delete is not a status transition (the row is removed); see CanDelete.
func Transition(current models.UploadStatus, action Action) (models.UploadStatus, error) {
	switch action {
	case ActionApprove:
		switch current {
		case models.UploadStatusPending, models.UploadStatusApproved:
			return models.UploadStatusApproved, nil
		default:
			return current, fmt.Errorf("%w: cannot approve %s item", ErrInvalidTransition, current)
		}
	case ActionReject:
		return models.UploadStatusRejected, nil
	default:
		return current, fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}
}

// CanDelete reports whether an item in the given status may be removed.
// Deletion is valid from every state and is the only way out of rejected.
func CanDelete(current models.UploadStatus) bool {
	switch current {
	case models.UploadStatusPending, models.UploadStatusApproved, models.UploadStatusRejected:
		return true
	}
	return false
}

// Apply runs the capability guard and then the transition, in that order.
// Services call this so the guard can never be skipped accidentally.
func Apply(role models.UserRole, current models.UploadStatus, action Action) (models.UploadStatus, error) {
	if err := Authorize(role); err != nil {
		return current, err
	}
	if action == ActionDelete {
		if !CanDelete(current) {
			return current, fmt.Errorf("%w: cannot delete %s item", ErrInvalidTransition, current)
		}
		return current, nil
	}
	return Transition(current, action)
}
