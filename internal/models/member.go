package models

import (
	"time"

	"github.com/google/uuid"
)

// Member represents a congregation member under pastoral care.
type Member struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	CampusID      *uuid.UUID `json:"campus_id,omitempty" db:"campus_id"`
	Name          string     `json:"name" db:"name"`
	Email         *string    `json:"email,omitempty" db:"email"`
	PhoneNumber   *string    `json:"phone_number,omitempty" db:"phone_number"`
	Address       *string    `json:"address,omitempty" db:"address"`
	Birthdate     *time.Time `json:"birthdate,omitempty" db:"birthdate"`
	Gender        *string    `json:"gender,omitempty" db:"gender"`
	MaritalStatus *string    `json:"marital_status,omitempty" db:"marital_status"`
	JoinedAt      *time.Time `json:"joined_at,omitempty" db:"joined_at"`
	Notes         *string    `json:"notes,omitempty" db:"notes"`
	IsActive      bool       `json:"is_active" db:"is_active"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// MemberCreateRequest is the request body for POST /api/members
type MemberCreateRequest struct {
	CampusID      *uuid.UUID `json:"campus_id,omitempty"`
	Name          string     `json:"name" binding:"required"`
	Email         *string    `json:"email,omitempty"`
	PhoneNumber   *string    `json:"phone_number,omitempty"`
	Address       *string    `json:"address,omitempty"`
	Birthdate     *string    `json:"birthdate,omitempty"` // YYYY-MM-DD
	Gender        *string    `json:"gender,omitempty"`
	MaritalStatus *string    `json:"marital_status,omitempty"`
	JoinedAt      *string    `json:"joined_at,omitempty"` // YYYY-MM-DD
	Notes         *string    `json:"notes,omitempty"`
}

// MemberUpdateRequest is the request body for PUT /api/members/:id
type MemberUpdateRequest struct {
	CampusID      *uuid.UUID `json:"campus_id,omitempty"`
	Name          *string    `json:"name,omitempty"`
	Email         *string    `json:"email,omitempty"`
	PhoneNumber   *string    `json:"phone_number,omitempty"`
	Address       *string    `json:"address,omitempty"`
	Birthdate     *string    `json:"birthdate,omitempty"`
	Gender        *string    `json:"gender,omitempty"`
	MaritalStatus *string    `json:"marital_status,omitempty"`
	JoinedAt      *string    `json:"joined_at,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	IsActive      *bool      `json:"is_active,omitempty"`
}

// MemberListResponse is the simplified response for roster lists
type MemberListResponse struct {
	ID          uuid.UUID  `json:"id"`
	CampusID    *uuid.UUID `json:"campus_id,omitempty"`
	Name        string     `json:"name"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	Birthdate   *string    `json:"birthdate,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	IsActive    bool       `json:"is_active"`
}

// MemberDetailResponse includes care totals for member detail pages
type MemberDetailResponse struct {
	Member
	TotalAidGiven  float64 `json:"total_aid_given"`
	CareEventCount int     `json:"care_event_count"`
}

// DemographicsResponse is the aggregate roster breakdown for the stats page
type DemographicsResponse struct {
	TotalMembers  int            `json:"total_members"`
	ActiveMembers int            `json:"active_members"`
	ByGender      map[string]int `json:"by_gender"`
	ByAgeBand     map[string]int `json:"by_age_band"`
	ByMarital     map[string]int `json:"by_marital_status"`
}
