package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/model"
)

type roomStore struct {
	db *gorm.DB
}

func (s *roomStore) Create(ctx context.Context, room *model.Room) error {
	if err := s.db.WithContext(ctx).Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (s *roomStore) Update(ctx context.Context, room *model.Room) error {
	res := s.db.WithContext(ctx).Model(&model.Room{}).Where("id = ?", room.ID).
		Select("room_number", "room_type", "price_per_night", "is_available", "description").
		Updates(room)
	if res.Error != nil {
		return fmt.Errorf("failed to update room %d: %w", room.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *roomStore) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Room{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete room %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *roomStore) GetByID(ctx context.Context, id int64) (*model.Room, error) {
	var room model.Room
	if err := s.db.WithContext(ctx).First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get room %d: %w", id, err)
	}
	return &room, nil
}

func (s *roomStore) GetByIDForUpdate(ctx context.Context, id int64) (*model.Room, error) {
	tx := s.db.WithContext(ctx)
	// SQLite has no FOR UPDATE and serializes writers on its own.
	if tx.Dialector.Name() == "postgres" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var room model.Room
	if err := tx.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock room %d: %w", id, err)
	}
	return &room, nil
}

func (s *roomStore) GetByNumber(ctx context.Context, number string) (*model.Room, error) {
	var room model.Room
	if err := s.db.WithContext(ctx).First(&room, "room_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get room %q: %w", number, err)
	}
	return &room, nil
}

func (s *roomStore) List(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := s.db.WithContext(ctx).Order("room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *roomStore) ListAvailable(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := s.db.WithContext(ctx).Where("is_available = ?", true).
		Order("room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list available rooms: %w", err)
	}
	return rooms, nil
}

func (s *roomStore) ListByType(ctx context.Context, roomType string, availableOnly bool) ([]model.Room, error) {
	q := s.db.WithContext(ctx).Where("room_type = ?", roomType)
	if availableOnly {
		q = q.Where("is_available = ?", true)
	}
	var rooms []model.Room
	if err := q.Order("room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms of type %q: %w", roomType, err)
	}
	return rooms, nil
}

func (s *roomStore) Search(ctx context.Context, term string) ([]model.Room, error) {
	pattern := "%" + term + "%"
	var rooms []model.Room
	if err := s.db.WithContext(ctx).
		Where("room_number LIKE ? OR room_type LIKE ? OR description LIKE ?", pattern, pattern, pattern).
		Order("room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to search rooms: %w", err)
	}
	return rooms, nil
}

func (s *roomStore) SetAvailability(ctx context.Context, id int64, available bool) error {
	res := s.db.WithContext(ctx).Model(&model.Room{}).Where("id = ?", id).
		Update("is_available", available)
	if res.Error != nil {
		return fmt.Errorf("failed to set availability for room %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *roomStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Room{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return n, nil
}

func (s *roomStore) CountAvailable(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Room{}).
		Where("is_available = ?", true).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count available rooms: %w", err)
	}
	return n, nil
}
