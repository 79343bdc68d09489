package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestEventIsRegistrationOpen(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	event := Event{
		Status:                EventStatusActive,
		RegistrationStartDate: start,
		RegistrationEndDate:   end,
	}

	assert.False(t, event.IsRegistrationOpen(start.Add(-time.Second)))
	assert.True(t, event.IsRegistrationOpen(start))
	assert.True(t, event.IsRegistrationOpen(start.Add(24*time.Hour)))
	assert.True(t, event.IsRegistrationOpen(end.Add(-time.Second)))
	// The window is half-open: the end instant itself is closed
	assert.False(t, event.IsRegistrationOpen(end))
	assert.False(t, event.IsRegistrationOpen(end.Add(time.Hour)))
}

func TestEventIsRegistrationOpenRequiresActiveStatus(t *testing.T) {
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

	for _, status := range []EventStatus{EventStatusInactive, EventStatusCancelled, EventStatusCompleted} {
		event := Event{
			Status:                status,
			RegistrationStartDate: now.AddDate(0, 0, -1),
			RegistrationEndDate:   now.AddDate(0, 0, 1),
		}
		assert.False(t, event.IsRegistrationOpen(now), "status %s", status)
	}
}

func TestEventHasAvailableSlots(t *testing.T) {
	unlimited := Event{MaxParticipants: nil}
	assert.True(t, unlimited.HasAvailableSlots(0))
	assert.True(t, unlimited.HasAvailableSlots(1_000_000))

	capped := Event{MaxParticipants: intPtr(3)}
	assert.True(t, capped.HasAvailableSlots(0))
	assert.True(t, capped.HasAvailableSlots(2))
	assert.False(t, capped.HasAvailableSlots(3))
	assert.False(t, capped.HasAvailableSlots(4))
}

func TestBookingIsConfirmed(t *testing.T) {
	booking := Booking{BookingStatus: BookingStatusConfirmed, PaymentStatus: PaymentStatusCompleted}
	assert.True(t, booking.IsConfirmed())

	booking.PaymentStatus = PaymentStatusPending
	assert.False(t, booking.IsConfirmed())

	booking.PaymentStatus = PaymentStatusCompleted
	booking.BookingStatus = BookingStatusCancelled
	assert.False(t, booking.IsConfirmed())
}

func TestBookingCanBeCancelled(t *testing.T) {
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	event := Event{
		Status:                EventStatusActive,
		RegistrationStartDate: now.AddDate(0, 0, -5),
		RegistrationEndDate:   now.AddDate(0, 0, 5),
	}

	booking := Booking{BookingStatus: BookingStatusConfirmed}
	assert.True(t, booking.CanBeCancelled(&event, now))

	// Already cancelled bookings stay cancelled
	booking.BookingStatus = BookingStatusCancelled
	assert.False(t, booking.CanBeCancelled(&event, now))

	// A closed registration window blocks cancellation
	booking.BookingStatus = BookingStatusConfirmed
	assert.False(t, booking.CanBeCancelled(&event, event.RegistrationEndDate.Add(time.Hour)))
}
