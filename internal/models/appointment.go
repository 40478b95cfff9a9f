package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint          `json:"client_id"`
	Client   ClientProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	WorkerID uint          `json:"worker_id"`
	Worker   WorkerProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"worker"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Date carries the calendar day only; Time is the "HH:MM" slot on
	// the 30-minute grid. Together with WorkerID they form the logical
	// booking key enforced by idx_active_slot (see db package).
	Date time.Time `gorm:"type:date" json:"date"`
	Time string    `gorm:"size:5" json:"time"`

	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`

	Status       string `gorm:"size:20;default:'pending'" json:"status"`
	CancelReason string `gorm:"size:255" json:"cancel_reason"`
	Notes        string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
