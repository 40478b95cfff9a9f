package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bellenoire/salon-api/internal/httperr"
	"github.com/bellenoire/salon-api/internal/middleware"
	"github.com/bellenoire/salon-api/internal/models"
)

type LoyaltyHandler struct {
	db *gorm.DB
}

func NewLoyaltyHandler(db *gorm.DB) *LoyaltyHandler {
	return &LoyaltyHandler{db: db}
}

// Points returns the client's balance, tier and recent ledger, plus a
// consistency flag: the balance rebuilt from the full ledger must equal
// the stored counter. A false here means a write bypassed the ledger.
func (h *LoyaltyHandler) Points(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var client models.ClientProfile
	if err := h.db.Where("user_id = ?", userID).First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client profile not found.")
		return
	}

	var transactions []models.LoyaltyTransaction
	if err := h.db.
		Where("client_id = ?", client.ID).
		Order("created_at DESC").
		Limit(20).
		Find(&transactions).Error; err != nil {

		httperr.Internal(c, "failed_to_list_transactions", "Could not load loyalty history.")
		return
	}

	var ledgerSum int64
	h.db.Model(&models.LoyaltyTransaction{}).
		Where("client_id = ?", client.ID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&ledgerSum)

	c.JSON(http.StatusOK, gin.H{
		"points":            client.LoyaltyPoints,
		"tier":              client.Tier,
		"transactions":      transactions,
		"ledger_consistent": int(ledgerSum) == client.LoyaltyPoints,
	})
}

func (h *LoyaltyHandler) ReferralCode(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var client models.ClientProfile
	if err := h.db.Where("user_id = ?", userID).First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client profile not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"referral_code": client.ReferralCode})
}
