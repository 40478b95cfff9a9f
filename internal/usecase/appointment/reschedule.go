package appointment

import (
	"context"
	"time"

	"github.com/bellenoire/salon-api/internal/audit"
	domain "github.com/bellenoire/salon-api/internal/domain/appointment"
	"github.com/bellenoire/salon-api/internal/httperr"
	"github.com/bellenoire/salon-api/internal/models"
)

type RescheduleInput struct {
	NewTime string
	// Zero value keeps the current date / worker.
	NewDate     time.Time
	NewWorkerID uint
}

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute moves the appointment and resets it to pending. The reset is
// deliberate: a moved appointment needs re-confirmation by the worker,
// whatever state it was in before.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actor domain.Actor,
	in RescheduleInput,
) (*models.Appointment, error) {

	if in.NewTime == "" {
		return nil, httperr.ErrBusiness("time_required")
	}
	if !domain.ValidTime(in.NewTime) {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	newDate := ap.Date
	if !in.NewDate.IsZero() {
		newDate = domain.NormalizeDate(in.NewDate)
	}

	newWorkerID := ap.WorkerID
	if in.NewWorkerID != 0 {
		if _, err := uc.repo.GetWorkerProfile(ctx, in.NewWorkerID); err != nil {
			return nil, httperr.ErrBusiness("worker_not_found")
		}
		newWorkerID = in.NewWorkerID
	}

	if err := uc.repo.RescheduleAppointment(ctx, ap, newDate, in.NewTime, newWorkerID); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
