package models

import "time"

type InventoryItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	SKU      string `gorm:"size:40;uniqueIndex" json:"sku"`
	Category string `gorm:"size:50" json:"category"`
	Supplier string `gorm:"size:100" json:"supplier"`

	Quantity    int     `gorm:"default:0" json:"quantity"`
	MinQuantity int     `gorm:"default:0" json:"min_quantity"`
	Price       float64 `json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
