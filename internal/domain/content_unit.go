package domain

import (
	"github.com/google/uuid"
)

// UnitKind identifies the kind of content unit. Prerequisite pointers
// only ever link units of the same kind.
type UnitKind string

// Recognized unit kinds.
const (
	UnitKindCourse   UnitKind = "course"
	UnitKindLesson   UnitKind = "lesson"
	UnitKindTopic    UnitKind = "topic"
	UnitKindExercise UnitKind = "exercise"
)

// ContentUnit abstracts a course, lesson, topic or exercise as seen by
// the prerequisite gate resolver. The records are owned by the content
// management subsystem; this engine only reads them.
//
// Each unit may reference a single predecessor of the same kind,
// forming a chain per container rather than a general DAG, and may
// declare a set of activities that must all be completed within the
// unit's scope before it unlocks.
type ContentUnit struct {
	ID                 uuid.UUID  `json:"id"`
	Kind               UnitKind   `json:"kind"`
	Title              string     `json:"title"`
	PrerequisiteUnitID *uuid.UUID `json:"prerequisite_unit_id,omitempty"`
	RequiredActivities []string   `json:"required_activities,omitempty"`
	Scope              Scope      `json:"scope"`
}

// HasPrerequisite reports whether the unit declares a predecessor.
func (u *ContentUnit) HasPrerequisite() bool {
	return u.PrerequisiteUnitID != nil && *u.PrerequisiteUnitID != uuid.Nil
}
