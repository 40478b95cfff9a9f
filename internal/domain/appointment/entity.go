package appointment

import "time"

// RewardPoints is the fixed loyalty accrual for a completed appointment.
const RewardPoints = 5

type AvailabilityInput struct {
	WorkerID uint
	Date     time.Time
}

type Actor struct {
	UserID uint
	Role   string
}

type ListFilter struct {
	ClientID uint
	WorkerID uint
	Status   string
	DateFrom time.Time
}
