package appointment

import (
	"context"
	"fmt"

	domain "github.com/bellenoire/salon-api/internal/domain/appointment"
	"gorm.io/gorm"
)

type GetAvailableSlots struct {
	repo domain.Repository
}

func NewGetAvailableSlots(repo domain.Repository) *GetAvailableSlots {
	return &GetAvailableSlots{repo: repo}
}

// Execute returns the bookable "HH:MM" slots for the worker on the
// given date, ascending. Pure read: no side effects.
func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	date := domain.NormalizeDate(in.Date)

	sch, err := uc.repo.GetSchedule(ctx, in.WorkerID, int(date.Weekday()))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// No hours that day.
			return []string{}, nil
		}
		return nil, err
	}
	if !sch.IsAvailable {
		return []string{}, nil
	}

	booked, err := uc.repo.ListActiveTimes(ctx, in.WorkerID, date)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(booked))
	for _, t := range booked {
		taken[t] = true
	}

	return generateSlots(sch.StartTime, sch.EndTime, taken), nil
}

// generateSlots enumerates the 30-minute grid anchored at startTime.
// The end bound uses only the hour component of endTime: a schedule
// ending 17:30 produces the same grid as one ending 17:00. Existing
// schedule rows were written against that behavior, so it stays.
func generateSlots(startTime, endTime string, taken map[string]bool) []string {
	start := domain.HourOf(startTime)*60 + domain.MinuteOf(startTime)
	end := domain.HourOf(endTime) * 60

	slots := []string{}
	for m := start; m < end; m += domain.SlotMinutes {
		t := fmt.Sprintf("%02d:%02d", m/60, m%60)
		if !taken[t] {
			slots = append(slots, t)
		}
	}
	return slots
}
