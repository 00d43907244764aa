package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

func TestReviewWorkflow_Apply_Succeeds(t *testing.T) {
	var gotID uint
	var gotStatus string
	workflow, err := NewReviewWorkflow(
		func(id uint, toStatus string, updates map[string]interface{}) (bool, error) {
			gotID = id
			gotStatus = toStatus
			return true, nil
		},
		func(id uint) (string, error) {
			t.Fatal("currentStatus must not be called after a won transition")
			return "", nil
		},
	)
	require.NoError(t, err)

	err = workflow.Apply(5, "confirmed", map[string]interface{}{"verified_by_id": uint(1)})
	require.NoError(t, err)
	assert.Equal(t, uint(5), gotID)
	assert.Equal(t, "confirmed", gotStatus)
}

func TestReviewWorkflow_Apply_LostRaceReportsWinningStatus(t *testing.T) {
	workflow, err := NewReviewWorkflow(
		func(id uint, toStatus string, updates map[string]interface{}) (bool, error) {
			return false, nil
		},
		func(id uint) (string, error) {
			return "declined", nil
		},
	)
	require.NoError(t, err)

	err = workflow.Apply(5, "confirmed", nil)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "already declined")
}

func TestReviewWorkflow_Apply_MissingRow(t *testing.T) {
	workflow, err := NewReviewWorkflow(
		func(id uint, toStatus string, updates map[string]interface{}) (bool, error) {
			return false, nil
		},
		func(id uint) (string, error) {
			return "", apperrors.ErrNotFound
		},
	)
	require.NoError(t, err)

	err = workflow.Apply(5, "confirmed", nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestNewReviewWorkflow_RequiresCallbacks(t *testing.T) {
	_, err := NewReviewWorkflow(nil, nil)
	assert.Error(t, err)
}
