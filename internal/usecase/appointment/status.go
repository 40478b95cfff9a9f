package appointment

import (
	"context"

	"github.com/bellenoire/salon-api/internal/audit"
	domain "github.com/bellenoire/salon-api/internal/domain/appointment"
	"github.com/bellenoire/salon-api/internal/httperr"
	"github.com/bellenoire/salon-api/internal/models"
)

type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: audit,
	}
}

// Execute runs one transition of the appointment state machine and
// dispatches the effect the transition carries. Only the move into
// completed accrues rewards; every other transition is a bare field
// update. Restricted to workers and admins.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	actor domain.Actor,
	to domain.Status,
) (*models.Appointment, error) {

	if actor.Role == models.RoleClient {
		return nil, httperr.ErrBusiness("forbidden")
	}

	if !to.Valid() {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	effect, err := domain.Transition(domain.Status(ap.Status), to)
	if err != nil {
		return nil, err
	}

	ap.Status = string(to)

	switch effect {
	case domain.EffectReward:
		err = uc.repo.CompleteWithRewards(ctx, ap, domain.RewardPoints)
	default:
		err = uc.repo.SaveAppointment(ctx, ap)
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_" + string(to),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
