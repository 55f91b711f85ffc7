package models

import (
	"time"

	"github.com/google/uuid"
)

// AidSchedule is a recurring commitment to provide financial aid. Individual
// occurrences resolve to either a distributed care event or an entry in the
// ignored-occurrence history; next_occurrence is the cached resolver output
// and is null once the schedule is exhausted.
type AidSchedule struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	MemberID       uuid.UUID  `json:"member_id" db:"member_id"`
	CampusID       *uuid.UUID `json:"campus_id,omitempty" db:"campus_id"`
	Title          string     `json:"title" db:"title"`
	AidType        string     `json:"aid_type" db:"aid_type"`
	AidAmount      float64    `json:"aid_amount" db:"aid_amount"`
	Frequency      string     `json:"frequency" db:"frequency"`
	DayOfWeek      *string    `json:"day_of_week,omitempty" db:"day_of_week"`
	DayOfMonth     *int       `json:"day_of_month,omitempty" db:"day_of_month"`
	MonthOfYear    *int       `json:"month_of_year,omitempty" db:"month_of_year"`
	StartDate      time.Time  `json:"-" db:"start_date"`
	EndDate        *time.Time `json:"-" db:"end_date"`
	NextOccurrence *time.Time `json:"-" db:"next_occurrence"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	Ignored        bool       `json:"ignored" db:"ignored"`
	Notes          *string    `json:"notes,omitempty" db:"notes"`
	CreatedBy      *uuid.UUID `json:"created_by,omitempty" db:"created_by"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// ScheduleCreateRequest is the request body for POST /api/financial-aid-schedules.
// A one_time frequency records a settled financial_aid care event directly and
// creates no schedule row.
type ScheduleCreateRequest struct {
	MemberID    uuid.UUID  `json:"member_id" binding:"required"`
	CampusID    *uuid.UUID `json:"campus_id,omitempty"`
	Title       string     `json:"title" binding:"required"`
	AidType     string     `json:"aid_type" binding:"required"`
	AidAmount   float64    `json:"aid_amount" binding:"required"`
	Frequency   string     `json:"frequency" binding:"required"`
	StartDate   string     `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate     *string    `json:"end_date,omitempty"`
	DayOfWeek   *string    `json:"day_of_week,omitempty"`
	DayOfMonth  *int       `json:"day_of_month,omitempty"`
	MonthOfYear *int       `json:"month_of_year,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// StopScheduleRequest optionally marks a stopped schedule as ignored rather
// than merely inactive.
type StopScheduleRequest struct {
	Ignored bool `json:"ignored"`
}

// ScheduleResponse is the wire shape for a schedule, including the
// ignored-occurrence audit list ordered by date.
type ScheduleResponse struct {
	ID                 uuid.UUID  `json:"id"`
	MemberID           uuid.UUID  `json:"member_id"`
	CampusID           *uuid.UUID `json:"campus_id,omitempty"`
	Title              string     `json:"title"`
	AidType            string     `json:"aid_type"`
	AidAmount          float64    `json:"aid_amount"`
	Frequency          string     `json:"frequency"`
	DayOfWeek          *string    `json:"day_of_week,omitempty"`
	DayOfMonth         *int       `json:"day_of_month,omitempty"`
	MonthOfYear        *int       `json:"month_of_year,omitempty"`
	StartDate          string     `json:"start_date"`
	EndDate            *string    `json:"end_date,omitempty"`
	NextOccurrence     *string    `json:"next_occurrence"`
	IsActive           bool       `json:"is_active"`
	Ignored            bool       `json:"ignored"`
	IgnoredOccurrences []string   `json:"ignored_occurrences"`
	Notes              *string    `json:"notes,omitempty"`
	CreatedBy          *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// ToResponse converts an AidSchedule plus its ignored-occurrence history to
// the wire shape. Dates are ISO calendar dates without time-of-day.
func (s *AidSchedule) ToResponse(ignoredOccurrences []time.Time) ScheduleResponse {
	resp := ScheduleResponse{
		ID:                 s.ID,
		MemberID:           s.MemberID,
		CampusID:           s.CampusID,
		Title:              s.Title,
		AidType:            s.AidType,
		AidAmount:          s.AidAmount,
		Frequency:          s.Frequency,
		DayOfWeek:          s.DayOfWeek,
		DayOfMonth:         s.DayOfMonth,
		MonthOfYear:        s.MonthOfYear,
		StartDate:          s.StartDate.Format("2006-01-02"),
		IsActive:           s.IsActive,
		Ignored:            s.Ignored,
		IgnoredOccurrences: []string{},
		Notes:              s.Notes,
		CreatedBy:          s.CreatedBy,
		CreatedAt:          s.CreatedAt,
	}
	if s.EndDate != nil {
		endDate := s.EndDate.Format("2006-01-02")
		resp.EndDate = &endDate
	}
	if s.NextOccurrence != nil {
		next := s.NextOccurrence.Format("2006-01-02")
		resp.NextOccurrence = &next
	}
	for _, d := range ignoredOccurrences {
		resp.IgnoredOccurrences = append(resp.IgnoredOccurrences, d.Format("2006-01-02"))
	}
	return resp
}
