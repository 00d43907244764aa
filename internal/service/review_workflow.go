package service

import (
	"errors"
	"fmt"

	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
)

// ReviewWorkflow applies the single pending-to-terminal transition shared by
// everything that gets reviewed. The transition itself is one conditional
// update in the repository, so two concurrent reviewers cannot both win;
// the loser gets a conflict naming the status that beat them.
type ReviewWorkflow struct {
	// transition updates the row only while it is still pending and reports
	// whether a row was hit.
	transition func(id uint, toStatus string, updates map[string]interface{}) (bool, error)
	// currentStatus re-reads the row's status after a lost race.
	currentStatus func(id uint) (string, error)
}

// NewReviewWorkflow creates a workflow over the given repository callbacks.
func NewReviewWorkflow(
	transition func(id uint, toStatus string, updates map[string]interface{}) (bool, error),
	currentStatus func(id uint) (string, error),
) (*ReviewWorkflow, error) {
	if transition == nil || currentStatus == nil {
		return nil, fmt.Errorf("transition and currentStatus callbacks are required")
	}
	return &ReviewWorkflow{
		transition:    transition,
		currentStatus: currentStatus,
	}, nil
}

// Apply moves the row from pending to toStatus with the extra column
// updates. A row that is no longer pending yields ErrConflict, a missing
// row ErrNotFound.
func (w *ReviewWorkflow) Apply(id uint, toStatus string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}

	ok, err := w.transition(id, toStatus, updates)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	status, err := w.currentStatus(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return fmt.Errorf("%w: already %s", apperrors.ErrConflict, status)
}
