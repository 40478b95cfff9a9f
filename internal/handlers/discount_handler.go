package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bellenoire/salon-api/internal/httperr"
	"github.com/bellenoire/salon-api/internal/models"
)

type DiscountHandler struct {
	db *gorm.DB
}

func NewDiscountHandler(db *gorm.DB) *DiscountHandler {
	return &DiscountHandler{db: db}
}

// lookupDiscountCode returns the code when it is usable, or a reason
// string when it is not. Shared with the sale flow.
func lookupDiscountCode(db *gorm.DB, code string) (*models.DiscountCode, string) {
	var dc models.DiscountCode
	err := db.Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&dc).Error
	if err != nil {
		return nil, "Discount code not found."
	}

	if !dc.Active {
		return nil, "Discount code is inactive."
	}
	if dc.ExpiresAt != nil && dc.ExpiresAt.Before(time.Now()) {
		return nil, "Discount code has expired."
	}
	if dc.MaxUses > 0 && dc.UsedCount >= dc.MaxUses {
		return nil, "Discount code has reached its usage limit."
	}

	return &dc, ""
}

type CreateDiscountRequest struct {
	Code        string     `json:"code" binding:"required"`
	Description string     `json:"description"`
	Percent     float64    `json:"percent" binding:"required,gt=0,lte=100"`
	MaxUses     int        `json:"max_uses"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

func (h *DiscountHandler) Create(c *gin.Context) {
	var req CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	dc := models.DiscountCode{
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		Description: req.Description,
		Percent:     req.Percent,
		MaxUses:     req.MaxUses,
		Active:      true,
		ExpiresAt:   req.ExpiresAt,
	}

	if err := h.db.Create(&dc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_discount", "Could not create the discount code.")
		return
	}

	c.JSON(http.StatusCreated, dc)
}

func (h *DiscountHandler) List(c *gin.Context) {
	var codes []models.DiscountCode
	if err := h.db.Order("created_at DESC").Find(&codes).Error; err != nil {
		httperr.Internal(c, "failed_to_list_discounts", "Could not list discount codes.")
		return
	}

	c.JSON(http.StatusOK, codes)
}

func (h *DiscountHandler) Validate(c *gin.Context) {
	dc, reason := lookupDiscountCode(h.db, c.Param("code"))
	if reason != "" {
		c.JSON(http.StatusOK, gin.H{"valid": false, "reason": reason})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":   true,
		"code":    dc.Code,
		"percent": dc.Percent,
	})
}
