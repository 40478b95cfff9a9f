package appointment

import (
	"context"
	"time"

	"github.com/bellenoire/salon-api/internal/models"
)

type Repository interface {
	// -------- Catalog / profiles --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetClientProfile(
		ctx context.Context,
		id uint,
	) (*models.ClientProfile, error)

	GetClientProfileByUser(
		ctx context.Context,
		userID uint,
	) (*models.ClientProfile, error)

	GetWorkerProfile(
		ctx context.Context,
		id uint,
	) (*models.WorkerProfile, error)

	GetWorkerProfileByUser(
		ctx context.Context,
		userID uint,
	) (*models.WorkerProfile, error)

	// -------- Availability --------
	GetSchedule(
		ctx context.Context,
		workerID uint,
		dayOfWeek int,
	) (*models.WorkerSchedule, error)

	ListActiveTimes(
		ctx context.Context,
		workerID uint,
		date time.Time,
	) ([]string, error)

	// -------- Booking (atomic against the store) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
		newDate time.Time,
		newTime string,
		newWorkerID uint,
	) error

	// -------- State changes --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	SaveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// CompleteWithRewards persists the completed status together with
	// the client counter increments, the ledger entry and the client
	// notification. All four writes commit or none do.
	CompleteWithRewards(
		ctx context.Context,
		ap *models.Appointment,
		points int,
	) error

	// -------- Listing --------
	ListAppointments(
		ctx context.Context,
		f ListFilter,
	) ([]models.Appointment, error)
}
