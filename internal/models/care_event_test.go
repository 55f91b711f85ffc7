package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestParseEventType(t *testing.T) {
	got, err := ParseEventType("grief_loss")
	require.NoError(t, err)
	assert.Equal(t, EventGriefLoss, got)

	_, err = ParseEventType("wedding")
	assert.ErrorIs(t, err, ErrInvalidEventType)
}

func TestValidateTypeFieldsFinancialAid(t *testing.T) {
	req := CareEventCreateRequest{
		AidType:   strPtr("living_expenses"),
		AidAmount: f64Ptr(500000),
	}
	assert.NoError(t, req.ValidateTypeFields(EventFinancialAid))

	missing := CareEventCreateRequest{AidType: strPtr("living_expenses")}
	assert.Error(t, missing.ValidateTypeFields(EventFinancialAid))

	negative := CareEventCreateRequest{
		AidType:   strPtr("living_expenses"),
		AidAmount: f64Ptr(-100),
	}
	assert.Error(t, negative.ValidateTypeFields(EventFinancialAid))
}

func TestValidateTypeFieldsRejectsForeignFields(t *testing.T) {
	// Aid fields on a birthday event.
	req := CareEventCreateRequest{AidAmount: f64Ptr(1000)}
	assert.Error(t, req.ValidateTypeFields(EventBirthday))

	// Grief details on an accident event.
	req = CareEventCreateRequest{GriefRelationship: strPtr("mother")}
	assert.Error(t, req.ValidateTypeFields(EventAccidentIllness))

	// Hospital name on a grief event.
	req = CareEventCreateRequest{
		GriefRelationship: strPtr("mother"),
		HospitalName:      strPtr("St. Mary"),
	}
	assert.Error(t, req.ValidateTypeFields(EventGriefLoss))
}

func TestValidateTypeFieldsGriefAndAccident(t *testing.T) {
	grief := CareEventCreateRequest{GriefRelationship: strPtr("father")}
	assert.NoError(t, grief.ValidateTypeFields(EventGriefLoss))

	assert.Error(t, (&CareEventCreateRequest{}).ValidateTypeFields(EventGriefLoss))

	accident := CareEventCreateRequest{HospitalName: strPtr("General Hospital")}
	assert.NoError(t, accident.ValidateTypeFields(EventAccidentIllness))

	// hospital_name is optional for accident events.
	assert.NoError(t, (&CareEventCreateRequest{}).ValidateTypeFields(EventAccidentIllness))
}
