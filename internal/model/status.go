package model

// EventType defines the sport discipline of an event
type EventType string

const (
	EventTypeRunning     EventType = "RUNNING"
	EventTypeCycling     EventType = "CYCLING"
	EventTypeSwimming    EventType = "SWIMMING"
	EventTypeFootball    EventType = "FOOTBALL"
	EventTypeBasketball  EventType = "BASKETBALL"
	EventTypeTennis      EventType = "TENNIS"
	EventTypeCricket     EventType = "CRICKET"
	EventTypeVolleyball  EventType = "VOLLEYBALL"
	EventTypeBadminton   EventType = "BADMINTON"
	EventTypeTableTennis EventType = "TABLE_TENNIS"
	EventTypeAthletics   EventType = "ATHLETICS"
	EventTypeMarathon    EventType = "MARATHON"
	EventTypeTriathlon   EventType = "TRIATHLON"
	EventTypeOther       EventType = "OTHER"
)

// Valid reports whether the value is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeRunning, EventTypeCycling, EventTypeSwimming, EventTypeFootball,
		EventTypeBasketball, EventTypeTennis, EventTypeCricket, EventTypeVolleyball,
		EventTypeBadminton, EventTypeTableTennis, EventTypeAthletics,
		EventTypeMarathon, EventTypeTriathlon, EventTypeOther:
		return true
	}
	return false
}

// DifficultyLevel defines how demanding an event is
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "BEGINNER"
	DifficultyIntermediate DifficultyLevel = "INTERMEDIATE"
	DifficultyAdvanced     DifficultyLevel = "ADVANCED"
	DifficultyExpert       DifficultyLevel = "EXPERT"
)

// Valid reports whether the value is a known difficulty level.
func (d DifficultyLevel) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert:
		return true
	}
	return false
}

// EventStatus defines the lifecycle status of an event
type EventStatus string

const (
	EventStatusActive    EventStatus = "ACTIVE"
	EventStatusInactive  EventStatus = "INACTIVE"
	EventStatusCancelled EventStatus = "CANCELLED"
	EventStatusCompleted EventStatus = "COMPLETED"
)

// Valid reports whether the value is a known event status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusActive, EventStatusInactive, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}

// BookingStatus defines the lifecycle status of a booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusAttended  BookingStatus = "ATTENDED"
	BookingStatusNoShow    BookingStatus = "NO_SHOW"
)

// Valid reports whether the value is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusCancelled, BookingStatusAttended, BookingStatusNoShow:
		return true
	}
	return false
}

// bookingTransitions is the allowed booking status transition table.
// CONFIRMED is the only non-terminal state.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusConfirmed: {BookingStatusCancelled, BookingStatusAttended, BookingStatusNoShow},
}

// CanTransitionTo reports whether the booking status may move to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentStatus defines the payment state of a booking
type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "PENDING"
	PaymentStatusCompleted         PaymentStatus = "COMPLETED"
	PaymentStatusFailed            PaymentStatus = "FAILED"
	PaymentStatusRefunded          PaymentStatus = "REFUNDED"
	PaymentStatusPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
)

// Valid reports whether the value is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed,
		PaymentStatusRefunded, PaymentStatusPartiallyRefunded:
		return true
	}
	return false
}

// paymentTransitions is the allowed payment status transition table.
// A failed payment may be retried; refunds only follow a completed
// payment; REFUNDED is terminal.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:           {PaymentStatusCompleted, PaymentStatusFailed},
	PaymentStatusFailed:            {PaymentStatusPending, PaymentStatusCompleted},
	PaymentStatusCompleted:         {PaymentStatusRefunded, PaymentStatusPartiallyRefunded},
	PaymentStatusPartiallyRefunded: {PaymentStatusRefunded},
}

// CanTransitionTo reports whether the payment status may move to next.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
