package model

import "time"

// Room represents a single hotel room in the inventory.
//
// IsAvailable is derived-but-persisted: it mirrors "this room has at least one
// admitted (CONFIRMED or CHECKED_IN... or freshly created PENDING) booking" and
// is toggled by the ledger on qualifying booking transitions rather than
// recomputed from a live date query.
type Room struct {
	ID            int64   `gorm:"primaryKey" json:"id"`
	RoomNumber    string  `gorm:"uniqueIndex;size:32;not null" json:"room_number"`
	RoomType      string  `gorm:"size:64;not null" json:"room_type"`
	PricePerNight float64 `gorm:"not null" json:"price_per_night"`
	IsAvailable   bool    `gorm:"not null;default:true" json:"is_available"`
	Description   string  `gorm:"size:1024" json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
