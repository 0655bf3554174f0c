package model

import "time"

// BookingStatus is the closed set of booking lifecycle states.
type BookingStatus string

const (
	StatusPending    BookingStatus = "PENDING"
	StatusConfirmed  BookingStatus = "CONFIRMED"
	StatusCheckedIn  BookingStatus = "CHECKED_IN"
	StatusCheckedOut BookingStatus = "CHECKED_OUT"
	StatusCancelled  BookingStatus = "CANCELLED"
)

// allowedTransitions is the explicit transition table. Terminal states
// (CHECKED_OUT, CANCELLED) have no outgoing transitions.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCheckedIn, StatusCancelled},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCheckedOut, StatusCancelled},
}

// Valid reports whether s is a known status value.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s is an end state.
func (s BookingStatus) Terminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// Blocking reports whether a booking in this status occupies its room for the
// purposes of the overlap check. PENDING and terminal bookings do not block.
func (s BookingStatus) Blocking() bool {
	return s == StatusConfirmed || s == StatusCheckedIn
}

// CanTransitionTo reports whether the transition s -> next is allowed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, t := range allowedTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Booking is a reservation of one room by one customer over a half-open date
// range [CheckIn, CheckOut): the checkout day itself is not occupied.
type Booking struct {
	ID          int64         `gorm:"primaryKey" json:"id"`
	CustomerID  int64         `gorm:"index;not null" json:"customer_id"`
	RoomID      int64         `gorm:"index;not null" json:"room_id"`
	CheckIn     time.Time     `gorm:"not null" json:"check_in"`
	CheckOut    time.Time     `gorm:"not null" json:"check_out"`
	TotalAmount float64       `gorm:"not null" json:"total_amount"`
	Status      BookingStatus `gorm:"size:16;not null;index" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Associations
	Customer Customer `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Room     Room     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Nights returns the number of occupied nights. The checkout day is exclusive,
// so 2024-06-01 to 2024-06-04 is 3 nights.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// AmountFor computes nights x price. The stored TotalAmount is normally seeded
// from this at creation but remains independently editable afterwards.
func (b *Booking) AmountFor(pricePerNight float64) float64 {
	return float64(b.Nights()) * pricePerNight
}

// Overlaps reports whether the half-open intervals of b and other intersect.
// [a1,a2) and [b1,b2) overlap iff a1 < b2 && b1 < a2; intervals that merely
// touch at a boundary do not overlap.
func (b *Booking) Overlaps(other *Booking) bool {
	return b.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(b.CheckOut)
}

// BookingDetail is the listing projection: a booking joined with the display
// fields the admin screens need.
type BookingDetail struct {
	Booking
	CustomerName  string  `json:"customer_name"`
	RoomNumber    string  `json:"room_number"`
	RoomType      string  `json:"room_type"`
	PricePerNight float64 `json:"price_per_night"`
}
