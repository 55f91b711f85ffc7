package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType tags a care event. Type-specific fields are validated with an
// exhaustive switch so a new type cannot silently skip its required fields.
type EventType string

const (
	EventBirthday        EventType = "birthday"
	EventChildbirth      EventType = "childbirth"
	EventGriefLoss       EventType = "grief_loss"
	EventNewHouse        EventType = "new_house"
	EventAccidentIllness EventType = "accident_illness"
	EventFinancialAid    EventType = "financial_aid"
	EventRegularContact  EventType = "regular_contact"
)

var ErrInvalidEventType = errors.New("invalid event type")

// ParseEventType validates a wire value against the known event types.
func ParseEventType(s string) (EventType, error) {
	switch t := EventType(s); t {
	case EventBirthday, EventChildbirth, EventGriefLoss, EventNewHouse,
		EventAccidentIllness, EventFinancialAid, EventRegularContact:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidEventType, s)
}

// CareEvent is an immutable-once-created record of something that happened to
// a member on a specific date. After creation only the completed/ignored
// disposition flags change.
type CareEvent struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	MemberID          uuid.UUID  `json:"member_id" db:"member_id"`
	CampusID          *uuid.UUID `json:"campus_id,omitempty" db:"campus_id"`
	EventType         EventType  `json:"event_type" db:"event_type"`
	EventDate         time.Time  `json:"-" db:"event_date"`
	Title             string     `json:"title" db:"title"`
	Description       *string    `json:"description,omitempty" db:"description"`
	GriefRelationship *string    `json:"grief_relationship,omitempty" db:"grief_relationship"`
	HospitalName      *string    `json:"hospital_name,omitempty" db:"hospital_name"`
	AidType           *string    `json:"aid_type,omitempty" db:"aid_type"`
	AidAmount         *float64   `json:"aid_amount,omitempty" db:"aid_amount"`
	SourceScheduleID  *uuid.UUID `json:"source_schedule_id,omitempty" db:"source_schedule_id"`
	Completed         bool       `json:"completed" db:"completed"`
	Ignored           bool       `json:"ignored" db:"ignored"`
	CreatedBy         *uuid.UUID `json:"created_by,omitempty" db:"created_by"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// CareEventCreateRequest is the request body for POST /api/care-events
type CareEventCreateRequest struct {
	MemberID          uuid.UUID  `json:"member_id" binding:"required"`
	CampusID          *uuid.UUID `json:"campus_id,omitempty"`
	EventType         string     `json:"event_type" binding:"required"`
	EventDate         string     `json:"event_date" binding:"required"` // YYYY-MM-DD
	Title             string     `json:"title" binding:"required"`
	Description       *string    `json:"description,omitempty"`
	GriefRelationship *string    `json:"grief_relationship,omitempty"`
	HospitalName      *string    `json:"hospital_name,omitempty"`
	AidType           *string    `json:"aid_type,omitempty"`
	AidAmount         *float64   `json:"aid_amount,omitempty"`
	Completed         *bool      `json:"completed,omitempty"`
}

// ValidateTypeFields enforces the per-type field invariants: aid_amount is
// present iff the event is financial_aid, grief and accident events carry
// their own detail fields, and no event carries another type's fields.
func (r *CareEventCreateRequest) ValidateTypeFields(eventType EventType) error {
	if eventType != EventFinancialAid && (r.AidAmount != nil || r.AidType != nil) {
		return fmt.Errorf("aid fields are only valid for financial_aid events")
	}
	if eventType != EventGriefLoss && r.GriefRelationship != nil {
		return fmt.Errorf("grief_relationship is only valid for grief_loss events")
	}
	if eventType != EventAccidentIllness && r.HospitalName != nil {
		return fmt.Errorf("hospital_name is only valid for accident_illness events")
	}

	switch eventType {
	case EventFinancialAid:
		if r.AidAmount == nil || *r.AidAmount <= 0 {
			return fmt.Errorf("financial_aid events require a positive aid_amount")
		}
		if r.AidType == nil || *r.AidType == "" {
			return fmt.Errorf("financial_aid events require aid_type")
		}
	case EventGriefLoss:
		if r.GriefRelationship == nil || *r.GriefRelationship == "" {
			return fmt.Errorf("grief_loss events require grief_relationship")
		}
	case EventAccidentIllness, EventBirthday, EventChildbirth, EventNewHouse, EventRegularContact:
		// No further required fields.
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEventType, eventType)
	}
	return nil
}

// CareEventResponse is the wire shape for a single care event
type CareEventResponse struct {
	ID                uuid.UUID  `json:"id"`
	MemberID          uuid.UUID  `json:"member_id"`
	CampusID          *uuid.UUID `json:"campus_id,omitempty"`
	EventType         EventType  `json:"event_type"`
	EventDate         string     `json:"event_date"`
	Title             string     `json:"title"`
	Description       *string    `json:"description,omitempty"`
	GriefRelationship *string    `json:"grief_relationship,omitempty"`
	HospitalName      *string    `json:"hospital_name,omitempty"`
	AidType           *string    `json:"aid_type,omitempty"`
	AidAmount         *float64   `json:"aid_amount,omitempty"`
	SourceScheduleID  *uuid.UUID `json:"source_schedule_id,omitempty"`
	Completed         bool       `json:"completed"`
	Ignored           bool       `json:"ignored"`
	CreatedBy         *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// ToResponse converts a CareEvent to its wire shape
func (e *CareEvent) ToResponse() CareEventResponse {
	return CareEventResponse{
		ID:                e.ID,
		MemberID:          e.MemberID,
		CampusID:          e.CampusID,
		EventType:         e.EventType,
		EventDate:         e.EventDate.Format("2006-01-02"),
		Title:             e.Title,
		Description:       e.Description,
		GriefRelationship: e.GriefRelationship,
		HospitalName:      e.HospitalName,
		AidType:           e.AidType,
		AidAmount:         e.AidAmount,
		SourceScheduleID:  e.SourceScheduleID,
		Completed:         e.Completed,
		Ignored:           e.Ignored,
		CreatedBy:         e.CreatedBy,
		CreatedAt:         e.CreatedAt,
	}
}
