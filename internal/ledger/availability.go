package ledger

import (
	"context"

	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/store"
)

// Coordinator keeps each room's availability flag in step with admitted
// bookings. The flag is a plain toggle, not a reference count: it means "this
// room has an admitted, non-terminal booking", not "this room is occupied
// right now". A far-future booking therefore marks the room unavailable even
// though the conflicting stay is weeks away. Callers must run these inside
// the same transaction as the booking write they accompany.
type Coordinator struct{}

// OnBookingAdmitted marks the room unavailable. Triggered once, when a
// booking is created.
func (Coordinator) OnBookingAdmitted(ctx context.Context, s store.Store, roomID int64) error {
	return s.Rooms().SetAvailability(ctx, roomID, false)
}

// OnBookingReleased marks the room available again. Triggered when a booking
// reaches CANCELLED or CHECKED_OUT.
func (Coordinator) OnBookingReleased(ctx context.Context, s store.Store, roomID int64) error {
	return s.Rooms().SetAvailability(ctx, roomID, true)
}
