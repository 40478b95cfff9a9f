package models

import "time"

type Sale struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID      uint  `gorm:"index" json:"client_id"`
	AppointmentID *uint `json:"appointment_id"`

	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Tip      float64 `json:"tip"`
	Total    float64 `json:"total"`

	PaymentMethod     string `gorm:"size:20" json:"payment_method"`
	PaymentStatus     string `gorm:"size:20;default:'paid'" json:"payment_status"`
	LoyaltyPointsUsed int    `json:"loyalty_points_used"`
	DiscountCode      string `gorm:"size:40" json:"discount_code"`

	ReceiptNumber string `gorm:"size:40;uniqueIndex" json:"receipt_number"`
	Notes         string `gorm:"size:255" json:"notes"`

	Items []SaleItem `json:"items"`

	CreatedAt time.Time `json:"created_at"`
}

type SaleItem struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	SaleID uint `gorm:"index" json:"sale_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Discount float64 `json:"discount"`
}
