package models

import (
	"time"

	"github.com/google/uuid"
)

// FollowupStage is one entry in the generated follow-up timeline of a grief
// or accident care event. A stage has at most one active disposition:
// completed or ignored, never both.
type FollowupStage struct {
	ID            uuid.UUID `json:"id" db:"id"`
	CareEventID   uuid.UUID `json:"care_event_id" db:"care_event_id"`
	Stage         string    `json:"stage" db:"stage"`
	ScheduledDate time.Time `json:"-" db:"scheduled_date"`
	Completed     bool      `json:"completed" db:"completed"`
	Ignored       bool      `json:"ignored" db:"ignored"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// FollowupStageResponse is the wire shape for a follow-up stage
type FollowupStageResponse struct {
	ID            uuid.UUID `json:"id"`
	CareEventID   uuid.UUID `json:"care_event_id"`
	Stage         string    `json:"stage"`
	ScheduledDate string    `json:"scheduled_date"`
	Completed     bool      `json:"completed"`
	Ignored       bool      `json:"ignored"`
}

// ToResponse converts a FollowupStage to its wire shape
func (s *FollowupStage) ToResponse() FollowupStageResponse {
	return FollowupStageResponse{
		ID:            s.ID,
		CareEventID:   s.CareEventID,
		Stage:         s.Stage,
		ScheduledDate: s.ScheduledDate.Format("2006-01-02"),
		Completed:     s.Completed,
		Ignored:       s.Ignored,
	}
}

// GriefStageOffsets are the generated grief-support timeline stages, as a
// number of days after the loss.
var GriefStageOffsets = []struct {
	Stage string
	Days  int
}{
	{"initial_visit", 3},
	{"one_week_call", 7},
	{"one_month_visit", 30},
	{"first_anniversary", 365},
}

// AccidentStageOffsets are the generated accident/illness follow-up stages.
var AccidentStageOffsets = []struct {
	Stage string
	Days  int
}{
	{"hospital_visit", 2},
	{"recovery_check", 14},
	{"followup_call", 30},
}
