package progress

import (
	"context"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// activityCompletionOracle is the default CompletionOracle: a unit
// counts as completed when every one of its declared required
// activities is completed within the unit's scope. Unit kinds with
// other completion rules (e.g. quiz pass marks) supply their own oracle
// from the content management side.
type activityCompletionOracle struct {
	catalog store.ContentUnitCatalog
	tracker Tracker
}

// NewActivityCompletionOracle creates the default completion oracle
// backed by the activity progress tracker.
func NewActivityCompletionOracle(
	catalog store.ContentUnitCatalog,
	tracker Tracker,
) CompletionOracle {
	if catalog == nil {
		panic("catalog cannot be nil")
	}
	if tracker == nil {
		panic("tracker cannot be nil")
	}

	return &activityCompletionOracle{
		catalog: catalog,
		tracker: tracker,
	}
}

// IsUnitCompleted implements CompletionOracle.IsUnitCompleted.
func (o *activityCompletionOracle) IsUnitCompleted(
	ctx context.Context,
	learnerID, unitID uuid.UUID,
) (bool, error) {
	unit, err := o.catalog.GetUnit(ctx, unitID)
	if err != nil {
		return false, err
	}

	// A unit that declares no activities has no measurable completion;
	// treating it as incomplete fails closed, consistent with the rest
	// of the gate.
	if len(unit.RequiredActivities) == 0 {
		return false, nil
	}

	for _, activityID := range unit.RequiredActivities {
		completed, err := o.tracker.IsCompleted(ctx, learnerID, unit.Scope, activityID)
		if err != nil {
			return false, err
		}
		if !completed {
			return false, nil
		}
	}

	return true, nil
}
