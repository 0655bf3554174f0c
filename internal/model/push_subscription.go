package model

import "time"

// PushSubscription holds a browser push subscription for a front-desk
// dashboard. Every subscription receives booking lifecycle notifications.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}
