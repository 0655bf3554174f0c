package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/internal/model"
)

type customerStore struct {
	db *gorm.DB
}

func (s *customerStore) Create(ctx context.Context, customer *model.Customer) error {
	if err := s.db.WithContext(ctx).Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (s *customerStore) Update(ctx context.Context, customer *model.Customer) error {
	res := s.db.WithContext(ctx).Model(&model.Customer{}).Where("id = ?", customer.ID).
		Select("first_name", "last_name", "email", "phone", "address").
		Updates(customer)
	if res.Error != nil {
		return fmt.Errorf("failed to update customer %d: %w", customer.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *customerStore) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Customer{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete customer %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *customerStore) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var customer model.Customer
	if err := s.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer %d: %w", id, err)
	}
	return &customer, nil
}

func (s *customerStore) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	var customer model.Customer
	if err := s.db.WithContext(ctx).First(&customer, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer by email: %w", err)
	}
	return &customer, nil
}

func (s *customerStore) List(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (s *customerStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Customer{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return n, nil
}
