package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bellenoire/salon-api/internal/httperr"
	"github.com/bellenoire/salon-api/internal/models"
)

type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

type UpsertScheduleRequest struct {
	DayOfWeek   *int   `json:"day_of_week" binding:"required"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

// Get returns the worker's full weekly template, ordered by weekday.
func (h *ScheduleHandler) Get(c *gin.Context) {
	workerID, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid worker id.")
		return
	}

	var schedule []models.WorkerSchedule
	if err := h.db.
		Where("worker_id = ?", workerID).
		Order("day_of_week ASC").
		Find(&schedule).Error; err != nil {

		httperr.Internal(c, "failed_to_get_schedule", "Could not load the schedule.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// Upsert writes one weekday row. The (worker, day-of-week) pair is
// unique; an existing row is updated in place.
func (h *ScheduleHandler) Upsert(c *gin.Context) {
	workerID, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid worker id.")
		return
	}

	var req UpsertScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DayOfWeek == nil {
		httperr.BadRequest(c, "invalid_request", "day_of_week is required.")
		return
	}
	if *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
		httperr.BadRequest(c, "invalid_day", "day_of_week must be in [0,6].")
		return
	}

	var sch models.WorkerSchedule
	err = h.db.
		Where("worker_id = ? AND day_of_week = ?", workerID, *req.DayOfWeek).
		First(&sch).Error

	if err == gorm.ErrRecordNotFound {
		sch = models.WorkerSchedule{
			WorkerID:  workerID,
			DayOfWeek: *req.DayOfWeek,
		}
	} else if err != nil {
		httperr.Internal(c, "failed_to_get_schedule", "Could not load the schedule.")
		return
	}

	sch.StartTime = req.StartTime
	sch.EndTime = req.EndTime
	sch.IsAvailable = req.IsAvailable

	if err := h.db.Save(&sch).Error; err != nil {
		httperr.Internal(c, "failed_to_save_schedule", "Could not save the schedule.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Schedule updated",
		"schedule": sch,
	})
}
