package model

import (
	"strings"
	"time"
)

// Customer is a guest identity record. It is referenced by bookings but
// carries no booking invariants of its own.
type Customer struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:64;not null" json:"first_name"`
	LastName  string    `gorm:"size:64;not null" json:"last_name"`
	Email     string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Address   string    `gorm:"size:256" json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName joins first and last name for display.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
