package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/model"
)

// ErrNotFound is returned when an operation targets a missing identifier.
var ErrNotFound = errors.New("record not found")

// RoomStore is the data-access interface for the room catalog and its
// availability flag.
type RoomStore interface {
	Create(ctx context.Context, room *model.Room) error
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Room, error)
	// GetByIDForUpdate locks the room row for the duration of the enclosing
	// transaction, serializing admission per room.
	GetByIDForUpdate(ctx context.Context, id int64) (*model.Room, error)
	GetByNumber(ctx context.Context, number string) (*model.Room, error)
	List(ctx context.Context) ([]model.Room, error)
	ListAvailable(ctx context.Context) ([]model.Room, error)
	ListByType(ctx context.Context, roomType string, availableOnly bool) ([]model.Room, error)
	Search(ctx context.Context, term string) ([]model.Room, error)
	SetAvailability(ctx context.Context, id int64, available bool) error
	Count(ctx context.Context) (int64, error)
	CountAvailable(ctx context.Context) (int64, error)
}

// BookingStore is the data-access interface for booking records.
type BookingStore interface {
	Create(ctx context.Context, booking *model.Booking) error
	Update(ctx context.Context, booking *model.Booking) error
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.BookingDetail, error)
	List(ctx context.Context) ([]model.BookingDetail, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.BookingDetail, error)
	ListByStatus(ctx context.Context, status model.BookingStatus) ([]model.BookingDetail, error)
	// CountBlockingOverlaps counts CONFIRMED/CHECKED_IN bookings on roomID whose
	// half-open [check_in, check_out) interval intersects [checkIn, checkOut).
	CountBlockingOverlaps(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[model.BookingStatus]int64, error)
}

// CustomerStore is the data-access interface for guest records.
type CustomerStore interface {
	Create(ctx context.Context, customer *model.Customer) error
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	Count(ctx context.Context) (int64, error)
}

// Store bundles the entity stores together with a transaction scope. Callers
// that need multiple writes to land atomically run them inside Transaction,
// where the callback receives a Store bound to the transaction.
type Store interface {
	Rooms() RoomStore
	Bookings() BookingStore
	Customers() CustomerStore
	Transaction(ctx context.Context, fn func(txStore Store) error) error
	DB() *gorm.DB
}

// gormStore implements Store using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Rooms() RoomStore         { return &roomStore{db: s.db} }
func (s *gormStore) Bookings() BookingStore   { return &bookingStore{db: s.db} }
func (s *gormStore) Customers() CustomerStore { return &customerStore{db: s.db} }
func (s *gormStore) DB() *gorm.DB             { return s.db }

func (s *gormStore) Transaction(ctx context.Context, fn func(txStore Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
