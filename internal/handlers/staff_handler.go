package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domainAppointment "github.com/bellenoire/salon-api/internal/domain/appointment"
	"github.com/bellenoire/salon-api/internal/httperr"
	"github.com/bellenoire/salon-api/internal/models"
)

type StaffHandler struct {
	db *gorm.DB
}

func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{db: db}
}

func (h *StaffHandler) List(c *gin.Context) {
	q := h.db.Preload("User").
		Joins("JOIN users ON users.id = worker_profiles.user_id").
		Where("users.is_active = ?", true)

	if category := c.Query("category"); category != "" {
		q = q.Where("specialties LIKE ?", "%"+category+"%")
	}

	var staff []models.WorkerProfile
	if err := q.Order("worker_profiles.id ASC").Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Could not list staff.")
		return
	}

	c.JSON(http.StatusOK, staff)
}

// Available returns the workers free at the requested date and time:
// marked available, scheduled that weekday, and without an active
// appointment holding the slot.
func (h *StaffHandler) Available(c *gin.Context) {
	dateStr := c.Query("date")
	timeStr := c.Query("time")

	if dateStr == "" || timeStr == "" {
		httperr.BadRequest(c, "missing_params", "date and time are required.")
		return
	}

	date, err := domainAppointment.ParseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}
	if !domainAppointment.ValidTime(timeStr) {
		httperr.BadRequest(c, "invalid_time", "time must be HH:MM.")
		return
	}

	var staff []models.WorkerProfile
	if err := h.db.Preload("User").
		Where("is_available = ?", true).
		Find(&staff).Error; err != nil {

		httperr.Internal(c, "failed_to_list_staff", "Could not list staff.")
		return
	}

	weekday := int(date.Weekday())
	available := make([]models.WorkerProfile, 0, len(staff))

	for _, w := range staff {
		var scheduled int64
		h.db.Model(&models.WorkerSchedule{}).
			Where(
				"worker_id = ? AND day_of_week = ? AND is_available = ?",
				w.ID, weekday, true,
			).
			Count(&scheduled)
		if scheduled == 0 {
			continue
		}

		var busy int64
		h.db.Model(&models.Appointment{}).
			Where(
				"worker_id = ? AND date = ? AND time = ? AND status IN ?",
				w.ID, date, timeStr, domainAppointment.ActiveStatuses,
			).
			Count(&busy)
		if busy > 0 {
			continue
		}

		available = append(available, w)
	}

	c.JSON(http.StatusOK, available)
}
