package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Category    string  `gorm:"size:50" json:"category"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`

	Active         bool `gorm:"default:true" json:"active"`
	OnlineBookable bool `gorm:"default:true" json:"online_bookable"`
	IsPopular      bool `gorm:"default:false" json:"is_popular"`
	DisplayOrder   int  `gorm:"default:0" json:"display_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
