package model

import (
	"time"
)

// Category groups events by sport. Identity is the unique name.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex"`
	Description string    `json:"description"`
	IconURL     string    `json:"icon_url"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Venue is a physical location that hosts events.
type Venue struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Address     string    `json:"address" gorm:"not null"`
	City        string    `json:"city" gorm:"not null;index"`
	State       string    `json:"state"`
	PostalCode  string    `json:"postal_code"`
	Country     string    `json:"country"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Capacity    *int      `json:"capacity"`
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description"`
	Amenities   string    `json:"amenities"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Event is a bookable sports event. Category and venue references are
// explicit foreign keys; related rows are loaded at the repository
// boundary, never implicitly.
type Event struct {
	ID                    uint             `json:"id" gorm:"primaryKey"`
	Title                 string           `json:"title" gorm:"not null"`
	Description           string           `json:"description"`
	EventDate             time.Time        `json:"event_date" gorm:"not null;index"`
	RegistrationStartDate time.Time        `json:"registration_start_date" gorm:"not null"`
	RegistrationEndDate   time.Time        `json:"registration_end_date" gorm:"not null"`
	MaxParticipants       *int             `json:"max_participants"`
	Price                 *float64         `json:"price"`
	ImageURL              string           `json:"image_url"`
	BannerURL             string           `json:"banner_url"`
	EventType             EventType        `json:"event_type" gorm:"not null"`
	DifficultyLevel       *DifficultyLevel `json:"difficulty_level"`
	Status                EventStatus      `json:"status" gorm:"not null;default:ACTIVE;index"`
	Rules                 string           `json:"rules"`
	PrizeInfo             string           `json:"prize_info"`
	ContactInfo           string           `json:"contact_info"`
	CategoryID            uint             `json:"category_id" gorm:"not null;index"`
	Category              *Category        `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	VenueID               uint             `json:"venue_id" gorm:"not null;index"`
	Venue                 *Venue           `json:"venue,omitempty" gorm:"foreignKey:VenueID"`
	CreatedAt             time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt             time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// IsRegistrationOpen reports whether bookings may be created at the given
// instant. The registration window is half-open: [start, end).
func (e *Event) IsRegistrationOpen(now time.Time) bool {
	if e.Status != EventStatusActive {
		return false
	}
	return !now.Before(e.RegistrationStartDate) && now.Before(e.RegistrationEndDate)
}

// HasAvailableSlots reports whether the event can take another confirmed
// booking given the current confirmed count. A nil MaxParticipants means
// unlimited capacity.
func (e *Event) HasAvailableSlots(confirmedCount int64) bool {
	if e.MaxParticipants == nil {
		return true
	}
	return confirmedCount < int64(*e.MaxParticipants)
}

// User is a participant who books events.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FirstName   string    `json:"first_name" gorm:"not null"`
	LastName    string    `json:"last_name" gorm:"not null"`
	Email       string    `json:"email" gorm:"not null;uniqueIndex"`
	PhoneNumber string    `json:"phone_number"`
	City        string    `json:"city" gorm:"index"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Booking ties a user to an event. At most one booking may exist per
// (user, event) pair; the composite unique index backs that invariant at
// the storage level. Bookings are never hard-deleted, only transitioned.
type Booking struct {
	ID               uint          `json:"id" gorm:"primaryKey"`
	UserID           uint          `json:"user_id" gorm:"not null;uniqueIndex:idx_bookings_user_event"`
	User             *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	EventID          uint          `json:"event_id" gorm:"not null;uniqueIndex:idx_bookings_user_event"`
	Event            *Event        `json:"event,omitempty" gorm:"foreignKey:EventID"`
	BookingDate      time.Time     `json:"booking_date" gorm:"not null;index"`
	TotalAmount      *float64      `json:"total_amount"`
	PaymentStatus    PaymentStatus `json:"payment_status" gorm:"not null;default:PENDING"`
	BookingStatus    BookingStatus `json:"booking_status" gorm:"not null;default:CONFIRMED;index"`
	PaymentReference string        `json:"payment_reference"`
	Notes            string        `json:"notes"`
	EmergencyContact string        `json:"emergency_contact"`
	CreatedAt        time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// IsConfirmed reports whether the booking is confirmed and paid.
func (b *Booking) IsConfirmed() bool {
	return b.BookingStatus == BookingStatusConfirmed && b.PaymentStatus == PaymentStatusCompleted
}

// CanBeCancelled reports whether the booking may still be cancelled: it
// must be CONFIRMED and the event's registration window still open.
func (b *Booking) CanBeCancelled(event *Event, now time.Time) bool {
	if b.BookingStatus != BookingStatusConfirmed {
		return false
	}
	return event.IsRegistrationOpen(now)
}
