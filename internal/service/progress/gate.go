package progress

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/platform/logger"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// CompletionOracle decides whether a learner has completed a content
// unit. The rule belongs to the content management subsystem (it varies
// by unit kind); the gate resolver only consults it.
type CompletionOracle interface {
	IsUnitCompleted(ctx context.Context, learnerID, unitID uuid.UUID) (bool, error)
}

// AccessReason explains a gate decision.
type AccessReason string

// Possible access reasons.
const (
	ReasonAllowed                AccessReason = "allowed"
	ReasonPrerequisiteIncomplete AccessReason = "prerequisite_incomplete"
	ReasonActivitiesIncomplete   AccessReason = "activities_incomplete"
	ReasonCyclicPrerequisite     AccessReason = "cyclic_prerequisite"
)

// AccessDecision is the result of a gate check.
type AccessDecision struct {
	Allowed bool         `json:"allowed"`
	Reason  AccessReason `json:"reason"`
}

// ErrUnitNotFound indicates the content unit does not exist.
var ErrUnitNotFound = errors.New("content unit not found")

// maxChainDepth bounds the prerequisite walk. Chains are short in
// practice; anything deeper than this is treated like a cycle.
const maxChainDepth = 1000

// GateResolver decides whether a learner may access a content unit,
// based on the unit's prerequisite chain and required activity set.
type GateResolver interface {
	// CanAccess evaluates the gate for a unit. A unit with no
	// prerequisite and no required activities is always allowed. The
	// resolver fails closed when the prerequisite pointers form a
	// cycle.
	CanAccess(ctx context.Context, learnerID, unitID uuid.UUID) (AccessDecision, error)
}

// Verify interface compliance at compile time
var _ GateResolver = (*gateResolverImpl)(nil)

// gateResolverImpl implements the GateResolver interface.
type gateResolverImpl struct {
	catalog store.ContentUnitCatalog
	oracle  CompletionOracle
	tracker Tracker
	logger  *slog.Logger
}

// NewGateResolver creates a new GateResolver implementation.
func NewGateResolver(
	catalog store.ContentUnitCatalog,
	oracle CompletionOracle,
	tracker Tracker,
	logger *slog.Logger,
) GateResolver {
	if catalog == nil {
		panic("catalog cannot be nil")
	}
	if oracle == nil {
		panic("oracle cannot be nil")
	}
	if tracker == nil {
		panic("tracker cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &gateResolverImpl{
		catalog: catalog,
		oracle:  oracle,
		tracker: tracker,
		logger:  logger.With(slog.String("component", "gate_resolver")),
	}
}

// CanAccess implements GateResolver.CanAccess.
func (g *gateResolverImpl) CanAccess(
	ctx context.Context,
	learnerID, unitID uuid.UUID,
) (AccessDecision, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)
	denied := AccessDecision{Allowed: false}

	unit, err := g.catalog.GetUnit(ctx, unitID)
	if err != nil {
		if errors.Is(err, store.ErrUnitNotFound) {
			return denied, ErrUnitNotFound
		}
		return denied, &ServiceError{
			Operation: "can_access",
			Message:   "failed to load content unit",
			Err:       err,
		}
	}

	// Defensive cycle check over the whole prerequisite chain.
	// Prerequisite pointers form a chain per container by construction,
	// but a broken catalog must deny access rather than loop.
	if cyclic, err := g.chainHasCycle(ctx, unit); err != nil {
		return denied, err
	} else if cyclic {
		log.Error("cyclic prerequisite chain detected",
			slog.String("unit_id", unitID.String()))
		denied.Reason = ReasonCyclicPrerequisite
		return denied, nil
	}

	// Chain condition: the immediate predecessor must be completed.
	if unit.HasPrerequisite() {
		completed, err := g.oracle.IsUnitCompleted(ctx, learnerID, *unit.PrerequisiteUnitID)
		if err != nil {
			return denied, &ServiceError{
				Operation: "can_access",
				Message:   "failed to check prerequisite completion",
				Err:       err,
			}
		}
		if !completed {
			denied.Reason = ReasonPrerequisiteIncomplete
			return denied, nil
		}
	}

	// Activity condition: every declared activity must be completed
	// within the unit's scope.
	if len(unit.RequiredActivities) > 0 {
		count, err := g.tracker.CountCompleted(ctx, learnerID, unit.Scope)
		if err != nil {
			return denied, err
		}
		if count != len(unit.RequiredActivities) {
			denied.Reason = ReasonActivitiesIncomplete
			return denied, nil
		}
	}

	return AccessDecision{Allowed: true, Reason: ReasonAllowed}, nil
}

// chainHasCycle walks the prerequisite pointers from the unit upward
// and reports whether any unit is revisited.
func (g *gateResolverImpl) chainHasCycle(
	ctx context.Context,
	unit *domain.ContentUnit,
) (bool, error) {
	visited := map[uuid.UUID]bool{unit.ID: true}

	current := unit
	for depth := 0; current.HasPrerequisite(); depth++ {
		if depth >= maxChainDepth {
			return true, nil
		}

		prereqID := *current.PrerequisiteUnitID
		if visited[prereqID] {
			return true, nil
		}
		visited[prereqID] = true

		prereq, err := g.catalog.GetUnit(ctx, prereqID)
		if err != nil {
			if errors.Is(err, store.ErrUnitNotFound) {
				// A dangling pointer is not a cycle; the chain simply
				// ends. The immediate-prerequisite check will decide.
				return false, nil
			}
			return false, &ServiceError{
				Operation: "can_access",
				Message:   "failed to walk prerequisite chain",
				Err:       err,
			}
		}
		current = prereq
	}

	return false, nil
}
