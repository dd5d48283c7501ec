package progress_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/mocks"
	"github.com/hanlearn/hanlearn-api/internal/service/progress"
)

// gateFixture bundles the stores and services a gate test needs.
type gateFixture struct {
	catalog       *mocks.MockContentUnitCatalog
	activityStore *mocks.MockActivityProgressStore
	tracker       progress.Tracker
	resolver      progress.GateResolver
}

func newGateFixture() *gateFixture {
	catalog := mocks.NewMockContentUnitCatalog()
	activityStore := mocks.NewMockActivityProgressStore()
	tracker := progress.NewTracker(
		activityStore, mocks.NewMockWordProgressStore(), testLogger())
	oracle := progress.NewActivityCompletionOracle(catalog, tracker)
	resolver := progress.NewGateResolver(catalog, oracle, tracker, testLogger())

	return &gateFixture{
		catalog:       catalog,
		activityStore: activityStore,
		tracker:       tracker,
		resolver:      resolver,
	}
}

func newLesson(scope domain.Scope, prereq *uuid.UUID, activities ...string) *domain.ContentUnit {
	return &domain.ContentUnit{
		ID:                 uuid.New(),
		Kind:               domain.UnitKindLesson,
		Title:              "Lesson",
		PrerequisiteUnitID: prereq,
		RequiredActivities: activities,
		Scope:              scope,
	}
}

func completeAll(t *testing.T, f *gateFixture, learnerID uuid.UUID, unit *domain.ContentUnit) {
	t.Helper()
	for _, activityID := range unit.RequiredActivities {
		_, err := f.tracker.MarkCompleted(
			context.Background(), learnerID, unit.Scope, activityID, nil)
		require.NoError(t, err)
	}
}

func TestCanAccess_UnitNotFound(t *testing.T) {
	t.Parallel()

	f := newGateFixture()

	_, err := f.resolver.CanAccess(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, progress.ErrUnitNotFound)
}

func TestCanAccess_NoPrerequisiteNoActivities(t *testing.T) {
	t.Parallel()

	f := newGateFixture()
	unit := newLesson(domain.LevelScope(1, 1), nil)
	f.catalog.AddUnit(unit)

	decision, err := f.resolver.CanAccess(context.Background(), uuid.New(), unit.ID)

	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, progress.ReasonAllowed, decision.Reason)
}

func TestCanAccess_PrerequisiteIncomplete(t *testing.T) {
	t.Parallel()

	f := newGateFixture()
	first := newLesson(domain.LevelScope(1, 1), nil, domain.ActivityListening)
	second := newLesson(domain.LevelScope(1, 2), &first.ID)
	f.catalog.AddUnit(first)
	f.catalog.AddUnit(second)

	decision, err := f.resolver.CanAccess(context.Background(), uuid.New(), second.ID)

	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, progress.ReasonPrerequisiteIncomplete, decision.Reason)
}

func TestCanAccess_PrerequisiteCompletedUnlocks(t *testing.T) {
	t.Parallel()

	f := newGateFixture()
	learnerID := uuid.New()
	first := newLesson(domain.LevelScope(1, 1), nil, domain.ActivityListening, domain.ActivityQuiz)
	second := newLesson(domain.LevelScope(1, 2), &first.ID)
	f.catalog.AddUnit(first)
	f.catalog.AddUnit(second)

	completeAll(t, f, learnerID, first)

	decision, err := f.resolver.CanAccess(context.Background(), learnerID, second.ID)

	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestCanAccess_OnlyImmediatePrerequisiteIsChecked(t *testing.T) {
	t.Parallel()

	// Chain a -> b -> c. Completing b unlocks c even though a is not
	// completed; the chain condition is on the immediate predecessor.
	f := newGateFixture()
	learnerID := uuid.New()
	a := newLesson(domain.LevelScope(1, 1), nil, domain.ActivityListening)
	b := newLesson(domain.LevelScope(1, 2), &a.ID, domain.ActivityListening)
	c := newLesson(domain.LevelScope(1, 3), &b.ID)
	f.catalog.AddUnit(a)
	f.catalog.AddUnit(b)
	f.catalog.AddUnit(c)

	completeAll(t, f, learnerID, b)

	decision, err := f.resolver.CanAccess(context.Background(), learnerID, c.ID)

	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestCanAccess_OwnActivitiesIncomplete(t *testing.T) {
	t.Parallel()

	f := newGateFixture()
	learnerID := uuid.New()
	unit := newLesson(
		domain.LevelScope(2, 1), nil, domain.ActivityListening, domain.ActivityReading)
	f.catalog.AddUnit(unit)

	// Only one of two required activities completed.
	_, err := f.tracker.MarkCompleted(
		context.Background(), learnerID, unit.Scope, domain.ActivityListening, nil)
	require.NoError(t, err)

	decision, err := f.resolver.CanAccess(context.Background(), learnerID, unit.ID)

	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, progress.ReasonActivitiesIncomplete, decision.Reason)

	// Completing the rest flips the decision.
	_, err = f.tracker.MarkCompleted(
		context.Background(), learnerID, unit.Scope, domain.ActivityReading, nil)
	require.NoError(t, err)

	decision, err = f.resolver.CanAccess(context.Background(), learnerID, unit.ID)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestCanAccess_CyclicChainFailsClosed(t *testing.T) {
	t.Parallel()

	f := newGateFixture()
	learnerID := uuid.New()

	// Build a two-unit cycle directly in the catalog; impossible by
	// construction, but the resolver must deny rather than loop.
	a := newLesson(domain.LevelScope(1, 1), nil)
	b := newLesson(domain.LevelScope(1, 2), &a.ID)
	a.PrerequisiteUnitID = &b.ID
	f.catalog.AddUnit(a)
	f.catalog.AddUnit(b)

	decision, err := f.resolver.CanAccess(context.Background(), learnerID, a.ID)

	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, progress.ReasonCyclicPrerequisite, decision.Reason)
}

func TestCanAccess_SelfReferenceFailsClosed(t *testing.T) {
	t.Parallel()

	f := newGateFixture()
	unit := newLesson(domain.LevelScope(1, 1), nil)
	unit.PrerequisiteUnitID = &unit.ID
	f.catalog.AddUnit(unit)

	decision, err := f.resolver.CanAccess(context.Background(), uuid.New(), unit.ID)

	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, progress.ReasonCyclicPrerequisite, decision.Reason)
}

func TestCanAccess_DanglingPrerequisiteIsNotACycle(t *testing.T) {
	t.Parallel()

	f := newGateFixture()
	missing := uuid.New()
	unit := newLesson(domain.LevelScope(1, 1), &missing)
	f.catalog.AddUnit(unit)

	decision, err := f.resolver.CanAccess(context.Background(), uuid.New(), unit.ID)

	// The immediate-prerequisite check surfaces the missing unit.
	require.Error(t, err)
	assert.False(t, decision.Allowed)
}

func TestIsUnitCompleted_NoActivitiesFailsClosed(t *testing.T) {
	t.Parallel()

	f := newGateFixture()
	learnerID := uuid.New()

	// A prerequisite declaring no activities can never be completed, so
	// its successor stays locked.
	first := newLesson(domain.LevelScope(1, 1), nil)
	second := newLesson(domain.LevelScope(1, 2), &first.ID)
	f.catalog.AddUnit(first)
	f.catalog.AddUnit(second)

	decision, err := f.resolver.CanAccess(context.Background(), learnerID, second.ID)

	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, progress.ReasonPrerequisiteIncomplete, decision.Reason)
}
