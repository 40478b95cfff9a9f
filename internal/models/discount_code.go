package models

import "time"

type DiscountCode struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Code        string  `gorm:"size:40;uniqueIndex;not null" json:"code"`
	Description string  `gorm:"size:255" json:"description"`
	Percent     float64 `json:"percent"`

	MaxUses   int  `gorm:"default:0" json:"max_uses"` // 0 = unlimited
	UsedCount int  `gorm:"default:0" json:"used_count"`
	Active    bool `gorm:"default:true" json:"active"`

	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
