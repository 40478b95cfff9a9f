package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/bellenoire/salon-api/internal/audit"
	domain "github.com/bellenoire/salon-api/internal/domain/appointment"
	"github.com/bellenoire/salon-api/internal/httperr"
	"github.com/bellenoire/salon-api/internal/models"
	"github.com/bellenoire/salon-api/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	ClientUserID uint
	WorkerID     uint
	ServiceID    uint

	Date  time.Time
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	notifier *notify.Emitter
	audit    *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	notifier *notify.Emitter,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Appointment, error) {

	if !domain.ValidTime(in.Time) {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	client, err := uc.repo.GetClientProfileByUser(ctx, in.ClientUserID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	worker, err := uc.repo.GetWorkerProfile(ctx, in.WorkerID)
	if err != nil {
		return nil, httperr.ErrBusiness("worker_not_found")
	}

	date := domain.NormalizeDate(in.Date)

	ap := &models.Appointment{
		ClientID:    client.ID,
		WorkerID:    worker.ID,
		ServiceID:   service.ID,
		Date:        date,
		Time:        in.Time,
		DurationMin: service.DurationMin,
		Price:       service.Price,
		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
	}

	// Conflict check + insert are one atomic unit against the store.
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.notifier.Emit(
		ctx,
		worker.UserID,
		"appointment_booked",
		"New appointment",
		fmt.Sprintf("New appointment for %s on %s at %s",
			service.Name, date.Format(domain.DateLayout), in.Time),
		fmt.Sprintf("/dashboard/worker/appointments?id=%d", ap.ID),
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClientUserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
