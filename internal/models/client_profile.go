package models

import "time"

// ClientProfile carries the loyalty counters. They only move through
// recorded LoyaltyTransaction rows; nothing in the booking flow
// decrements them.
type ClientProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	LoyaltyPoints     int     `gorm:"default:0" json:"loyalty_points"`
	TotalAppointments int     `gorm:"default:0" json:"total_appointments"`
	TotalSpent        float64 `gorm:"default:0" json:"total_spent"`
	Tier              string  `gorm:"size:20;default:'bronze'" json:"tier"`
	ReferralCode      string  `gorm:"size:40;uniqueIndex" json:"referral_code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
