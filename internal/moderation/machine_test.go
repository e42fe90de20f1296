// internal/moderation/machine_test.go
package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurukulpustakalaya/backend/internal/models"
)

func TestInitialStatusIsPending(t *testing.T) {
	assert.Equal(t, models.UploadStatusPending, InitialStatus)
}

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize(models.UserRoleAdmin))
	assert.ErrorIs(t, Authorize(models.UserRoleBuyer), ErrNotAuthorized)
	assert.ErrorIs(t, Authorize(models.UserRoleSeller), ErrNotAuthorized)
	assert.ErrorIs(t, Authorize(models.UserRole("")), ErrNotAuthorized)
}

func TestApproveTransitions(t *testing.T) {
	next, err := Transition(models.UploadStatusPending, ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, models.UploadStatusApproved, next)

	// Idempotent: approving twice equals approving once.
	next, err = Transition(next, ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, models.UploadStatusApproved, next)

	// Rejected items are terminal for approval.
	_, err = Transition(models.UploadStatusRejected, ActionApprove)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRejectFromAnyState(t *testing.T) {
	for _, from := range []models.UploadStatus{
		models.UploadStatusPending,
		models.UploadStatusApproved,
		models.UploadStatusRejected,
	} {
		next, err := Transition(from, ActionReject)
		require.NoError(t, err, "reject from %s", from)
		assert.Equal(t, models.UploadStatusRejected, next)
	}
}

func TestApproveRejectApproveEndsRejected(t *testing.T) {
	// approve -> reject leaves the item rejected; a further approve is
	// invalid, so the item stays rejected and the caller gets an error.
	s, err := Transition(models.UploadStatusPending, ActionApprove)
	require.NoError(t, err)
	s, err = Transition(s, ActionReject)
	require.NoError(t, err)
	_, err = Transition(s, ActionApprove)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, models.UploadStatusRejected, s)
}

func TestDeleteValidFromEveryState(t *testing.T) {
	for _, from := range []models.UploadStatus{
		models.UploadStatusPending,
		models.UploadStatusApproved,
		models.UploadStatusRejected,
	} {
		assert.True(t, CanDelete(from), "delete from %s", from)
	}
	assert.False(t, CanDelete(models.UploadStatus("bogus")))
}

func TestApplyRunsGuardFirst(t *testing.T) {
	// A non-admin cannot transition regardless of how valid the action is.
	_, err := Apply(models.UserRoleSeller, models.UploadStatusPending, ActionApprove)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = Apply(models.UserRoleBuyer, models.UploadStatusApproved, ActionDelete)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	next, err := Apply(models.UserRoleAdmin, models.UploadStatusPending, ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, models.UploadStatusApproved, next)

	_, err = Apply(models.UserRoleAdmin, models.UploadStatusRejected, ActionDelete)
	assert.NoError(t, err)
}

func TestUnknownActionRejected(t *testing.T) {
	_, err := Transition(models.UploadStatusPending, Action("publish"))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
