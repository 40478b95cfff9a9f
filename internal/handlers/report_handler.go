package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bellenoire/salon-api/internal/httperr"
	"github.com/bellenoire/salon-api/internal/models"
)

type ReportHandler struct {
	db *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

func reportRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, -1, 0)
	to := now

	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return from, to, err
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return from, to, err
		}
		to = t.AddDate(0, 0, 1) // inclusive end day
	}

	return from, to, nil
}

// Revenue aggregates sales over the period, defaulting to the last
// month.
func (h *ReportHandler) Revenue(c *gin.Context) {
	from, to, err := reportRange(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_range", "from/to must be YYYY-MM-DD.")
		return
	}

	type totals struct {
		Count    int64   `json:"sales_count"`
		Revenue  float64 `json:"revenue"`
		Discount float64 `json:"discount"`
		Tips     float64 `json:"tips"`
	}

	var t totals
	if err := h.db.Model(&models.Sale{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Select(
			"COUNT(*) AS count, " +
				"COALESCE(SUM(total), 0) AS revenue, " +
				"COALESCE(SUM(discount), 0) AS discount, " +
				"COALESCE(SUM(tip), 0) AS tips",
		).
		Scan(&t).Error; err != nil {

		httperr.Internal(c, "failed_to_aggregate", "Could not compute the revenue report.")
		return
	}

	type dayRow struct {
		Day     string  `json:"day"`
		Revenue float64 `json:"revenue"`
	}

	var byDay []dayRow
	h.db.Model(&models.Sale{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Select("DATE(created_at) AS day, COALESCE(SUM(total), 0) AS revenue").
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&byDay)

	c.JSON(http.StatusOK, gin.H{
		"from":    from.Format("2006-01-02"),
		"to":      to.AddDate(0, 0, -1).Format("2006-01-02"),
		"totals":  t,
		"per_day": byDay,
	})
}

// PeakHours counts appointments by starting hour over the period,
// cancelled ones excluded.
func (h *ReportHandler) PeakHours(c *gin.Context) {
	from, to, err := reportRange(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_range", "from/to must be YYYY-MM-DD.")
		return
	}

	type hourRow struct {
		Hour  string `json:"hour"`
		Count int64  `json:"count"`
	}

	var rows []hourRow
	if err := h.db.Model(&models.Appointment{}).
		Where("date >= ? AND date < ? AND status <> ?", from, to, "cancelled").
		Select("SUBSTR(time, 1, 2) AS hour, COUNT(*) AS count").
		Group("SUBSTR(time, 1, 2)").
		Order("hour ASC").
		Scan(&rows).Error; err != nil {

		httperr.Internal(c, "failed_to_aggregate", "Could not compute the peak-hours report.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":  from.Format("2006-01-02"),
		"to":    to.AddDate(0, 0, -1).Format("2006-01-02"),
		"hours": rows,
	})
}
