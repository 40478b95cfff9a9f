package appointment

import (
	"context"
	"fmt"

	"github.com/bellenoire/salon-api/internal/audit"
	domain "github.com/bellenoire/salon-api/internal/domain/appointment"
	"github.com/bellenoire/salon-api/internal/httperr"
	"github.com/bellenoire/salon-api/internal/models"
	"github.com/bellenoire/salon-api/internal/notify"
)

type CancelAppointment struct {
	repo     domain.Repository
	notifier *notify.Emitter
	audit    *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	notifier *notify.Emitter,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute cancels the appointment and records the reason. Clients may
// only cancel their own; workers and admins may cancel any. The status
// update is the primary guarantee; the notifications are best-effort.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actor domain.Actor,
	reason string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if actor.Role == models.RoleClient {
		client, err := uc.repo.GetClientProfileByUser(ctx, actor.UserID)
		if err != nil || client.ID != ap.ClientID {
			return nil, httperr.ErrBusiness("forbidden")
		}
	}

	if _, err := domain.Transition(domain.Status(ap.Status), domain.StatusCancelled); err != nil {
		return nil, err
	}

	ap.Status = string(domain.StatusCancelled)
	ap.CancelReason = reason

	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if worker, err := uc.repo.GetWorkerProfile(ctx, ap.WorkerID); err == nil {
		uc.notifier.Emit(
			ctx,
			worker.UserID,
			"appointment_cancelled",
			"Appointment cancelled",
			fmt.Sprintf("An appointment was cancelled. Reason: %s", reason),
			fmt.Sprintf("/dashboard/worker?cancelled=%d", ap.ID),
		)
	}

	if client, err := uc.repo.GetClientProfile(ctx, ap.ClientID); err == nil {
		uc.notifier.Emit(
			ctx,
			client.UserID,
			"appointment_cancelled",
			"Appointment cancelled",
			fmt.Sprintf("Your appointment was cancelled. Reason: %s", reason),
			fmt.Sprintf("/dashboard/client?cancelled=%d", ap.ID),
		)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
