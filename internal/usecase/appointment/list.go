package appointment

import (
	"context"

	domain "github.com/bellenoire/salon-api/internal/domain/appointment"
	"github.com/bellenoire/salon-api/internal/httperr"
	"github.com/bellenoire/salon-api/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists appointments scoped by role: clients see their own,
// workers theirs unless they filter by client, admins whatever the
// filter asks for.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	actor domain.Actor,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	switch actor.Role {
	case models.RoleClient:
		client, err := uc.repo.GetClientProfileByUser(ctx, actor.UserID)
		if err != nil {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		f.ClientID = client.ID

	case models.RoleWorker:
		if f.ClientID == 0 {
			worker, err := uc.repo.GetWorkerProfileByUser(ctx, actor.UserID)
			if err != nil {
				return nil, httperr.ErrBusiness("worker_not_found")
			}
			f.WorkerID = worker.ID
		}
	}

	return uc.repo.ListAppointments(ctx, f)
}
