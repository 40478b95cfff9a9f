package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bellenoire/salon-api/internal/cache"
	domain "github.com/bellenoire/salon-api/internal/domain/appointment"
	"github.com/bellenoire/salon-api/internal/httperr"
	"github.com/bellenoire/salon-api/internal/httpresp"
	"github.com/bellenoire/salon-api/internal/middleware"
	ucAppointment "github.com/bellenoire/salon-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	slotsUC      *ucAppointment.GetAvailableSlots
	createUC     *ucAppointment.CreateAppointment
	rescheduleUC *ucAppointment.RescheduleAppointment
	cancelUC     *ucAppointment.CancelAppointment
	statusUC     *ucAppointment.UpdateStatus
	listUC       *ucAppointment.ListAppointments

	slotCache *cache.SlotCache
}

func NewAppointmentHandler(
	slotsUC *ucAppointment.GetAvailableSlots,
	createUC *ucAppointment.CreateAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	statusUC *ucAppointment.UpdateStatus,
	listUC *ucAppointment.ListAppointments,
	slotCache *cache.SlotCache,
) *AppointmentHandler {
	return &AppointmentHandler{
		slotsUC:      slotsUC,
		createUC:     createUC,
		rescheduleUC: rescheduleUC,
		cancelUC:     cancelUC,
		statusUC:     statusUC,
		listUC:       listUC,
		slotCache:    slotCache,
	}
}

func actorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{
		UserID: c.MustGet(middleware.ContextUserID).(uint),
		Role:   c.MustGet(middleware.ContextUserRole).(string),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	WorkerID  uint   `json:"worker_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Notes     string `json:"notes"`
}

type RescheduleRequest struct {
	NewTime    string `json:"new_time"`
	NewDate    string `json:"new_date"`
	NewStaffID uint   `json:"new_staff_id"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// AVAILABLE SLOTS
// ======================================================

func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	dateStr := c.Query("date")
	workerStr := c.Query("worker_id")

	if dateStr == "" || workerStr == "" {
		httperr.BadRequest(c, "missing_params", "date and worker_id are required.")
		return
	}

	workerID, err := strconv.ParseUint(workerStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_worker_id", "worker_id must be numeric.")
		return
	}

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	if slots, ok := h.slotCache.Get(c.Request.Context(), uint(workerID), dateStr); ok {
		httpresp.OK(c, gin.H{"slots": slots})
		return
	}

	slots, err := h.slotsUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		WorkerID: uint(workerID),
		Date:     date,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_get_slots", "Could not compute availability.")
		return
	}

	h.slotCache.Set(c.Request.Context(), uint(workerID), dateStr, slots)

	httpresp.OK(c, gin.H{"slots": slots})
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	actor := actorFrom(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateInput{
		ClientUserID: actor.UserID,
		WorkerID:     req.WorkerID,
		ServiceID:    req.ServiceID,
		Date:         date,
		Time:         req.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		writeBookingErr(c, err)
		return
	}

	h.slotCache.Invalidate(c.Request.Context(), ap.WorkerID, req.Date)

	httpresp.Created(c, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	actor := actorFrom(c)

	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	in := ucAppointment.RescheduleInput{
		NewTime:     req.NewTime,
		NewWorkerID: req.NewStaffID,
	}

	if req.NewDate != "" {
		d, err := domain.ParseDate(req.NewDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "new_date must be YYYY-MM-DD.")
			return
		}
		in.NewDate = d
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), id, actor, in)
	if err != nil {
		writeBookingErr(c, err)
		return
	}

	h.slotCache.Invalidate(c.Request.Context(), ap.WorkerID, ap.Date.Format(domain.DateLayout))
	if req.NewDate != "" {
		h.slotCache.Invalidate(c.Request.Context(), ap.WorkerID, req.NewDate)
	}

	httpresp.OK(c, ap)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	actor := actorFrom(c)

	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req CancelRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.cancelUC.Execute(c.Request.Context(), id, actor, req.Reason)
	if err != nil {
		writeBookingErr(c, err)
		return
	}

	h.slotCache.Invalidate(c.Request.Context(), ap.WorkerID, ap.Date.Format(domain.DateLayout))

	httpresp.OK(c, gin.H{
		"message":     "Appointment cancelled",
		"appointment": ap,
	})
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	actor := actorFrom(c)

	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "status is required.")
		return
	}

	ap, err := h.statusUC.Execute(c.Request.Context(), id, actor, domain.Status(req.Status))
	if err != nil {
		writeBookingErr(c, err)
		return
	}

	h.slotCache.Invalidate(c.Request.Context(), ap.WorkerID, ap.Date.Format(domain.DateLayout))

	httpresp.OK(c, gin.H{
		"message":     "Status updated",
		"appointment": ap,
	})
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	actor := actorFrom(c)

	f := domain.ListFilter{
		Status: c.Query("status"),
	}

	if v := c.Query("worker_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			f.WorkerID = uint(id)
		}
	}
	if v := c.Query("client_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			f.ClientID = uint(id)
		}
	}
	if v := c.Query("date"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
			return
		}
		f.DateFrom = d
	}

	aps, err := h.listUC.Execute(c.Request.Context(), actor, f)
	if err != nil {
		writeBookingErr(c, err)
		return
	}

	httpresp.List(c, aps)
}

// ======================================================
// HELPERS
// ======================================================

func paramID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err
}

// writeBookingErr maps business error codes from the booking usecases
// onto the HTTP taxonomy: 400 validation, 403 ownership/role, 404
// missing entity, 409 slot conflict, 500 otherwise.
func writeBookingErr(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "slot_conflict"):
		httperr.Conflict(c, "slot_conflict", "This slot is not available.")
	case httperr.IsBusiness(err, "forbidden"):
		httperr.Forbidden(c, "forbidden", "You are not allowed to perform this action.")
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.NotFound(c, "service_not_found", "Service not found.")
	case httperr.IsBusiness(err, "worker_not_found"):
		httperr.NotFound(c, "worker_not_found", "Worker not found.")
	case httperr.IsBusiness(err, "client_not_found"):
		httperr.NotFound(c, "client_not_found", "Client profile not found.")
	case httperr.IsBusiness(err, "time_required"):
		httperr.BadRequest(c, "time_required", "new_time is required.")
	case httperr.IsBusiness(err, "invalid_time"):
		httperr.BadRequest(c, "invalid_time", "Time must be HH:MM.")
	case httperr.IsBusiness(err, "invalid_status"):
		httperr.BadRequest(c, "invalid_status", "Unknown appointment status.")
	case httperr.IsBusiness(err, "invalid_transition"):
		httperr.BadRequest(c, "invalid_transition", "This status change is not allowed.")
	default:
		httperr.Internal(c, "internal_error", "An unexpected error occurred.")
	}
}
