package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/model"
)

type bookingStore struct {
	db *gorm.DB
}

func (s *bookingStore) Create(ctx context.Context, booking *model.Booking) error {
	if err := s.db.WithContext(ctx).Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (s *bookingStore) Update(ctx context.Context, booking *model.Booking) error {
	res := s.db.WithContext(ctx).Model(&model.Booking{}).Where("id = ?", booking.ID).
		Select("customer_id", "room_id", "check_in", "check_out", "total_amount", "status").
		Updates(booking)
	if res.Error != nil {
		return fmt.Errorf("failed to update booking %d: %w", booking.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *bookingStore) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	res := s.db.WithContext(ctx).Model(&model.Booking{}).Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status of booking %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *bookingStore) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Booking{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete booking %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *bookingStore) GetByID(ctx context.Context, id int64) (*model.BookingDetail, error) {
	var booking model.Booking
	err := s.db.WithContext(ctx).Preload("Customer").Preload("Room").
		First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking %d: %w", id, err)
	}
	detail := toDetail(booking)
	return &detail, nil
}

func (s *bookingStore) List(ctx context.Context) ([]model.BookingDetail, error) {
	return s.listWhere(ctx, nil)
}

func (s *bookingStore) ListByCustomer(ctx context.Context, customerID int64) ([]model.BookingDetail, error) {
	return s.listWhere(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("customer_id = ?", customerID)
	})
}

func (s *bookingStore) ListByStatus(ctx context.Context, status model.BookingStatus) ([]model.BookingDetail, error) {
	return s.listWhere(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", status)
	})
}

// listWhere runs a booking listing query with the join fields preloaded,
// newest first.
func (s *bookingStore) listWhere(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]model.BookingDetail, error) {
	q := s.db.WithContext(ctx).Preload("Customer").Preload("Room").
		Order("created_at DESC")
	if scope != nil {
		q = scope(q)
	}

	var bookings []model.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	details := make([]model.BookingDetail, len(bookings))
	for i, b := range bookings {
		details[i] = toDetail(b)
	}
	return details, nil
}

func toDetail(b model.Booking) model.BookingDetail {
	return model.BookingDetail{
		Booking:       b,
		CustomerName:  b.Customer.FullName(),
		RoomNumber:    b.Room.RoomNumber,
		RoomType:      b.Room.RoomType,
		PricePerNight: b.Room.PricePerNight,
	}
}

// CountBlockingOverlaps counts admitted bookings on roomID that collide with
// the half-open interval [checkIn, checkOut). Two intervals [a1,a2) and
// [b1,b2) overlap iff a1 < b2 AND b1 < a2; intervals touching at a boundary
// (back-to-back stays) do not collide.
func (s *bookingStore) CountBlockingOverlaps(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Booking{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", []model.BookingStatus{model.StatusConfirmed, model.StatusCheckedIn}).
		Where("check_in < ? AND ? < check_out", checkOut, checkIn).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping bookings for room %d: %w", roomID, err)
	}
	return n, nil
}

func (s *bookingStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Booking{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return n, nil
}

func (s *bookingStore) CountByStatus(ctx context.Context) (map[model.BookingStatus]int64, error) {
	type row struct {
		Status model.BookingStatus
		N      int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&model.Booking{}).
		Select("status, COUNT(*) as n").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}

	counts := make(map[model.BookingStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}
