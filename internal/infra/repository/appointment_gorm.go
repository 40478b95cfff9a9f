package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/bellenoire/salon-api/internal/domain/appointment"
	"github.com/bellenoire/salon-api/internal/httperr"
	"github.com/bellenoire/salon-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Catalog / profiles
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetClientProfile(
	ctx context.Context,
	id uint,
) (*models.ClientProfile, error) {

	var cp models.ClientProfile
	if err := r.db.WithContext(ctx).Preload("User").First(&cp, id).Error; err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *AppointmentGormRepository) GetClientProfileByUser(
	ctx context.Context,
	userID uint,
) (*models.ClientProfile, error) {

	var cp models.ClientProfile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cp).Error; err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *AppointmentGormRepository) GetWorkerProfile(
	ctx context.Context,
	id uint,
) (*models.WorkerProfile, error) {

	var wp models.WorkerProfile
	if err := r.db.WithContext(ctx).Preload("User").First(&wp, id).Error; err != nil {
		return nil, err
	}
	return &wp, nil
}

func (r *AppointmentGormRepository) GetWorkerProfileByUser(
	ctx context.Context,
	userID uint,
) (*models.WorkerProfile, error) {

	var wp models.WorkerProfile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&wp).Error; err != nil {
		return nil, err
	}
	return &wp, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSchedule(
	ctx context.Context,
	workerID uint,
	dayOfWeek int,
) (*models.WorkerSchedule, error) {

	var sch models.WorkerSchedule
	if err := r.db.WithContext(ctx).
		Where("worker_id = ? AND day_of_week = ?", workerID, dayOfWeek).
		First(&sch).Error; err != nil {
		return nil, err
	}
	return &sch, nil
}

func (r *AppointmentGormRepository) ListActiveTimes(
	ctx context.Context,
	workerID uint,
	date time.Time,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"worker_id = ? AND date = ? AND status IN ?",
			workerID, date, domain.ActiveStatuses,
		).
		Order("time ASC").
		Pluck("time", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

// CreateAppointment runs the conflict check and the insert as one
// transactional unit. The check rows are locked FOR UPDATE; the partial
// unique index idx_active_slot backs it up, so two concurrent requests
// for the same slot end with one insert and one conflict error.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertSlotFree(tx, ap.WorkerID, ap.Date, ap.Time, 0); err != nil {
			return err
		}
		return tx.Create(ap).Error
	})

	if httperr.IsSlotConflict(err) {
		return httperr.ErrBusiness("slot_conflict")
	}
	return err
}

// RescheduleAppointment moves the appointment to the new triple and
// resets it to pending, atomically with the conflict re-check. On any
// failure the stored row is untouched.
func (r *AppointmentGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
	newDate time.Time,
	newTime string,
	newWorkerID uint,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertSlotFree(tx, newWorkerID, newDate, newTime, ap.ID); err != nil {
			return err
		}

		ap.Date = newDate
		ap.Time = newTime
		ap.WorkerID = newWorkerID
		ap.Status = string(domain.StatusPending)

		return tx.Save(ap).Error
	})

	if httperr.IsSlotConflict(err) {
		return httperr.ErrBusiness("slot_conflict")
	}
	return err
}

func assertSlotFree(
	tx *gorm.DB,
	workerID uint,
	date time.Time,
	timeStr string,
	excludeID uint,
) error {

	q := tx.Model(&models.Appointment{})

	// sqlite has no row locks; its writes serialize anyway.
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	q = q.Where(
		"worker_id = ? AND date = ? AND time = ? AND status IN ?",
		workerID, date, timeStr, domain.ActiveStatuses,
	)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return httperr.ErrBusiness("slot_conflict")
	}
	return nil
}

// --------------------------------------------------
// State changes
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) SaveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// CompleteWithRewards commits the completed status, the client counter
// increments, the ledger entry and the client notification as a single
// transaction. Partial application would break the ledger-backed
// counter invariant, so any failure rolls everything back.
//
// The status flip is guarded: it only lands on a row still in
// in_progress, so of two racing completions exactly one accrues the
// rewards. The caller's transition check reads a snapshot; this is the
// authoritative one.
func (r *AppointmentGormRepository) CompleteWithRewards(
	ctx context.Context,
	ap *models.Appointment,
	points int,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		flip := tx.Model(&models.Appointment{}).
			Where("id = ? AND status = ?", ap.ID, string(domain.StatusInProgress)).
			Update("status", string(domain.StatusCompleted))
		if flip.Error != nil {
			return flip.Error
		}
		if flip.RowsAffected == 0 {
			return httperr.ErrBusiness("invalid_transition")
		}

		res := tx.Model(&models.ClientProfile{}).
			Where("id = ?", ap.ClientID).
			Updates(map[string]any{
				"total_appointments": gorm.Expr("total_appointments + ?", 1),
				"total_spent":        gorm.Expr("total_spent + ?", ap.Price),
				"loyalty_points":     gorm.Expr("loyalty_points + ?", points),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		relatedID := ap.ID
		entry := models.LoyaltyTransaction{
			ClientID:    ap.ClientID,
			Points:      points,
			Type:        models.LoyaltyEarnedAppointment,
			Description: "Points earned for a completed appointment",
			RelatedID:   &relatedID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		var client models.ClientProfile
		if err := tx.First(&client, ap.ClientID).Error; err != nil {
			return err
		}

		notif := models.Notification{
			UserID:  client.UserID,
			Type:    "loyalty_reward",
			Title:   "Loyalty points",
			Message: fmt.Sprintf("You earned %d loyalty points!", points),
		}
		return tx.Create(&notif).Error
	})
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client.User").
		Preload("Worker.User").
		Preload("Service")

	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.WorkerID != 0 {
		q = q.Where("worker_id = ?", f.WorkerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if !f.DateFrom.IsZero() {
		q = q.Where("date >= ?", f.DateFrom)
	}

	var aps []models.Appointment
	if err := q.
		Order("date ASC, time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
