package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/model"
	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/store"
)

var (
	// ErrInvalidDateRange rejects requests whose check-out is not strictly
	// after check-in.
	ErrInvalidDateRange = errors.New("check-out date must be after check-in date")
	// ErrRoomUnavailable is the distinguished availability-conflict rejection,
	// so callers can present "dates unavailable" separately from a generic
	// persistence failure.
	ErrRoomUnavailable = errors.New("room not available for selected dates")
	// ErrInvalidTransition rejects a status change the transition table does
	// not allow.
	ErrInvalidTransition = errors.New("invalid booking status transition")
	// ErrInvalidStatus rejects an unknown status value.
	ErrInvalidStatus = errors.New("unknown booking status")
)

// Event describes a booking lifecycle change for the notification layer.
type Event struct {
	BookingID int64
	RoomID    int64
	Status    model.BookingStatus
}

// Notifier receives booking lifecycle events. Dispatch must not block.
type Notifier interface {
	Dispatch(evt Event)
}

// Ledger owns booking records: it enforces the interval-overlap invariant on
// admission and drives room availability through status transitions.
type Ledger struct {
	store    store.Store
	avail    Coordinator
	notifier Notifier
}

// New creates a Ledger on top of the given store. notifier may be nil.
func New(s store.Store, notifier Notifier) *Ledger {
	return &Ledger{store: s, notifier: notifier}
}

// Create admits a new booking for the room and date range, or rejects it.
//
// The overlap check and the insert run in one transaction with the room row
// locked, so two simultaneous requests for overlapping dates on the same room
// cannot both pass the check. A zero totalAmount is seeded from nights times
// the room's price per night. The booking starts in PENDING and the room is
// flagged unavailable in the same transaction.
func (l *Ledger) Create(ctx context.Context, customerID, roomID int64, checkIn, checkOut time.Time, totalAmount float64) (*model.Booking, error) {
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}

	booking := &model.Booking{
		CustomerID:  customerID,
		RoomID:      roomID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		TotalAmount: totalAmount,
		Status:      model.StatusPending,
	}

	err := l.store.Transaction(ctx, func(tx store.Store) error {
		room, err := tx.Rooms().GetByIDForUpdate(ctx, roomID)
		if err != nil {
			return fmt.Errorf("room %d: %w", roomID, err)
		}
		if _, err := tx.Customers().GetByID(ctx, customerID); err != nil {
			return fmt.Errorf("customer %d: %w", customerID, err)
		}

		// The flag rejects rooms already claimed by any admitted booking,
		// including a PENDING one the overlap predicate would not see.
		if !room.IsAvailable {
			return ErrRoomUnavailable
		}
		overlaps, err := tx.Bookings().CountBlockingOverlaps(ctx, roomID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if overlaps > 0 {
			return ErrRoomUnavailable
		}

		if booking.TotalAmount == 0 {
			booking.TotalAmount = booking.AmountFor(room.PricePerNight)
		}
		if err := tx.Bookings().Create(ctx, booking); err != nil {
			return err
		}
		return l.avail.OnBookingAdmitted(ctx, tx, roomID)
	})
	if err != nil {
		return nil, err
	}

	l.notify(Event{BookingID: booking.ID, RoomID: roomID, Status: booking.Status})
	return booking, nil
}

// SetStatus applies a status transition. Transitions into CANCELLED or
// CHECKED_OUT release the room in the same transaction.
func (l *Ledger) SetStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var roomID int64
	err := l.store.Transaction(ctx, func(tx store.Store) error {
		booking, err := tx.Bookings().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !booking.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, status)
		}
		if err := tx.Bookings().UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		roomID = booking.RoomID
		if status.Terminal() {
			return l.avail.OnBookingReleased(ctx, tx, booking.RoomID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	l.notify(Event{BookingID: id, RoomID: roomID, Status: status})
	return nil
}

// Update writes booking fields directly. The date range and status value are
// validated, but the overlap invariant is NOT re-checked on edits; moving a
// booking onto conflicting dates through Update is possible and matches the
// original operational surface.
func (l *Ledger) Update(ctx context.Context, booking *model.Booking) error {
	if !booking.CheckOut.After(booking.CheckIn) {
		return ErrInvalidDateRange
	}
	if !booking.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, booking.Status)
	}
	return l.store.Bookings().Update(ctx, booking)
}

// Delete hard-deletes the booking record. The room's availability flag is
// left untouched; cancel the booking first if the room should reopen.
func (l *Ledger) Delete(ctx context.Context, id int64) error {
	return l.store.Bookings().Delete(ctx, id)
}

// GetByID returns one booking with its display fields.
func (l *Ledger) GetByID(ctx context.Context, id int64) (*model.BookingDetail, error) {
	return l.store.Bookings().GetByID(ctx, id)
}

// List returns all bookings, newest first.
func (l *Ledger) List(ctx context.Context) ([]model.BookingDetail, error) {
	return l.store.Bookings().List(ctx)
}

// ListByCustomer returns one customer's bookings, newest first.
func (l *Ledger) ListByCustomer(ctx context.Context, customerID int64) ([]model.BookingDetail, error) {
	return l.store.Bookings().ListByCustomer(ctx, customerID)
}

// ListByStatus returns bookings in the given status, newest first.
func (l *Ledger) ListByStatus(ctx context.Context, status model.BookingStatus) ([]model.BookingDetail, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return l.store.Bookings().ListByStatus(ctx, status)
}

func (l *Ledger) notify(evt Event) {
	if l.notifier != nil {
		l.notifier.Dispatch(evt)
	}
}
