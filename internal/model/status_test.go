package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	all := []BookingStatus{
		BookingStatusConfirmed, BookingStatusCancelled,
		BookingStatusAttended, BookingStatusNoShow,
	}

	allowed := map[BookingStatus][]BookingStatus{
		BookingStatusConfirmed: {BookingStatusCancelled, BookingStatusAttended, BookingStatusNoShow},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestPaymentStatusTransitions(t *testing.T) {
	all := []PaymentStatus{
		PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed,
		PaymentStatusRefunded, PaymentStatusPartiallyRefunded,
	}

	allowed := map[PaymentStatus][]PaymentStatus{
		PaymentStatusPending:           {PaymentStatusCompleted, PaymentStatusFailed},
		PaymentStatusFailed:            {PaymentStatusPending, PaymentStatusCompleted},
		PaymentStatusCompleted:         {PaymentStatusRefunded, PaymentStatusPartiallyRefunded},
		PaymentStatusPartiallyRefunded: {PaymentStatusRefunded},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestRefundedIsTerminal(t *testing.T) {
	for _, to := range []PaymentStatus{
		PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed,
		PaymentStatusPartiallyRefunded, PaymentStatusRefunded,
	} {
		assert.False(t, PaymentStatusRefunded.CanTransitionTo(to))
	}
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, EventTypeMarathon.Valid())
	assert.False(t, EventType("SNOOKER").Valid())

	assert.True(t, DifficultyExpert.Valid())
	assert.False(t, DifficultyLevel("IMPOSSIBLE").Valid())

	assert.True(t, EventStatusCompleted.Valid())
	assert.False(t, EventStatus("DRAFT").Valid())

	assert.True(t, BookingStatusNoShow.Valid())
	assert.False(t, BookingStatus("PENDING").Valid())

	assert.True(t, PaymentStatusPartiallyRefunded.Valid())
	assert.False(t, PaymentStatus("CHARGEBACK").Valid())
}
