package models

import "time"

// WorkerSchedule is the weekly availability template. At most one row
// per (worker, day-of-week); the booking flow only reads it.
type WorkerSchedule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	WorkerID uint `gorm:"uniqueIndex:idx_worker_day" json:"worker_id"`

	DayOfWeek int `gorm:"uniqueIndex:idx_worker_day" json:"day_of_week"`

	StartTime   string `gorm:"size:5" json:"start_time"`
	EndTime     string `gorm:"size:5" json:"end_time"`
	IsAvailable bool   `gorm:"default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
