package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrisetu/agrisetu/app/models"
)

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to models.BookingStatus
		allowed  bool
	}{
		{models.BookingPending, models.BookingConfirmed, true},
		{models.BookingPending, models.BookingCancelled, true},
		{models.BookingPending, models.BookingCompleted, false},
		{models.BookingConfirmed, models.BookingCompleted, true},
		{models.BookingConfirmed, models.BookingCancelled, true},
		{models.BookingConfirmed, models.BookingPending, false},
		{models.BookingCompleted, models.BookingCancelled, false},
		{models.BookingCancelled, models.BookingConfirmed, false},
		{models.BookingCancelled, models.BookingPending, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equalf(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.False(t, models.BookingPending.Terminal())
	assert.False(t, models.BookingConfirmed.Terminal())
	assert.True(t, models.BookingCompleted.Terminal())
	assert.True(t, models.BookingCancelled.Terminal())
}

func TestUserTypeValid(t *testing.T) {
	for _, ut := range []models.UserType{
		models.UserTypeFarmer, models.UserTypeBuyer, models.UserTypeTransporter,
		models.UserTypeStorage, models.UserTypeCooperative,
	} {
		assert.Truef(t, ut.Valid(), "%s", ut)
	}
	assert.False(t, models.UserType("admin").Valid())
}
