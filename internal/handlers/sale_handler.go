package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bellenoire/salon-api/internal/audit"
	"github.com/bellenoire/salon-api/internal/httperr"
	"github.com/bellenoire/salon-api/internal/middleware"
	"github.com/bellenoire/salon-api/internal/models"
	"github.com/bellenoire/salon-api/internal/pdfgen"
)

// Each redeemed loyalty point is worth this much off the total.
const loyaltyPointValue = 0.10

type SaleHandler struct {
	db         *gorm.DB
	dispatcher *audit.Dispatcher
}

func NewSaleHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *SaleHandler {
	return &SaleHandler{db: db, dispatcher: dispatcher}
}

type SaleItemRequest struct {
	ServiceID uint    `json:"service_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Discount  float64 `json:"discount"`
}

type CreateSaleRequest struct {
	ClientID      uint              `json:"client_id" binding:"required"`
	AppointmentID *uint             `json:"appointment_id"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1"`
	PaymentMethod string            `json:"payment_method" binding:"required"`
	Tip           float64           `json:"tip"`
	Tax           float64           `json:"tax"`
	DiscountCode  string            `json:"discount_code"`
	LoyaltyPoints int               `json:"loyalty_points"`
	Notes         string            `json:"notes"`
}

// Create records a sale in a single transaction: items priced from the
// catalog, optional discount code (use counted), optional loyalty
// redemption written as a negative ledger entry next to the counter
// update.
func (h *SaleHandler) Create(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.LoyaltyPoints < 0 {
		httperr.BadRequest(c, "invalid_loyalty_points", "loyalty_points cannot be negative.")
		return
	}

	var client models.ClientProfile
	if err := h.db.First(&client, req.ClientID).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}
	if req.LoyaltyPoints > client.LoyaltyPoints {
		httperr.BadRequest(c, "insufficient_points", "Client does not have enough loyalty points.")
		return
	}

	sale := models.Sale{
		ClientID:      client.ID,
		AppointmentID: req.AppointmentID,
		PaymentMethod: req.PaymentMethod,
		Tip:           req.Tip,
		Tax:           req.Tax,
		Notes:         req.Notes,
		ReceiptNumber: fmt.Sprintf("RC-%s", strings.ToUpper(uuid.NewString()[:8])),
	}

	for _, it := range req.Items {
		var service models.Service
		if err := h.db.First(&service, it.ServiceID).Error; err != nil {
			httperr.NotFound(c, "service_not_found", fmt.Sprintf("Service %d not found.", it.ServiceID))
			return
		}
		sale.Items = append(sale.Items, models.SaleItem{
			ServiceID: service.ID,
			Quantity:  it.Quantity,
			Price:     service.Price,
			Discount:  it.Discount,
		})
		sale.Subtotal += service.Price * float64(it.Quantity)
		sale.Discount += it.Discount
	}

	var code *models.DiscountCode
	if req.DiscountCode != "" {
		found, reason := lookupDiscountCode(h.db, req.DiscountCode)
		if reason != "" {
			httperr.BadRequest(c, "invalid_discount_code", reason)
			return
		}
		code = found
		sale.Discount += sale.Subtotal * code.Percent / 100
		sale.DiscountCode = code.Code
	}

	sale.LoyaltyPointsUsed = req.LoyaltyPoints
	sale.Discount += float64(req.LoyaltyPoints) * loyaltyPointValue

	sale.Total = sale.Subtotal - sale.Discount + sale.Tax + sale.Tip
	if sale.Total < 0 {
		sale.Total = 0
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		if code != nil {
			if err := tx.Model(&models.DiscountCode{}).
				Where("id = ?", code.ID).
				Update("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
				return err
			}
		}

		if req.LoyaltyPoints > 0 {
			if err := redeemPoints(tx, client.ID, req.LoyaltyPoints, sale.ID, sale.ReceiptNumber); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if httperr.IsBusiness(err, "insufficient_points") {
			httperr.BadRequest(c, "insufficient_points", "Client does not have enough loyalty points.")
			return
		}
		httperr.Internal(c, "failed_to_create_sale", "Could not record the sale.")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	h.dispatcher.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "sale_created",
		Entity:   "sale",
		EntityID: &sale.ID,
		Metadata: gin.H{"total": sale.Total, "client_id": client.ID},
	})

	c.JSON(http.StatusCreated, sale)
}

// redeemPoints burns loyalty points against a sale. The decrement
// carries its own balance guard: the handler's earlier check reads a
// snapshot, and only the conditional UPDATE decides whether the client
// still holds enough points. The balance can never go below zero.
func redeemPoints(tx *gorm.DB, clientID uint, points int, saleID uint, receipt string) error {
	res := tx.Model(&models.ClientProfile{}).
		Where("id = ? AND loyalty_points >= ?", clientID, points).
		Update("loyalty_points", gorm.Expr("loyalty_points - ?", points))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("insufficient_points")
	}

	ledger := models.LoyaltyTransaction{
		ClientID:    clientID,
		Points:      -points,
		Type:        models.LoyaltyRedeemed,
		Description: fmt.Sprintf("Redeemed on sale %s", receipt),
		RelatedID:   &saleID,
	}
	return tx.Create(&ledger).Error
}

func (h *SaleHandler) List(c *gin.Context) {
	q := h.db.Preload("Items.Service")

	if clientID := c.Query("client_id"); clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}
	if from := c.Query("from"); from != "" {
		q = q.Where("created_at >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("created_at <= ?", to)
	}

	var sales []models.Sale
	if err := q.Order("created_at DESC").Limit(100).Find(&sales).Error; err != nil {
		httperr.Internal(c, "failed_to_list_sales", "Could not list sales.")
		return
	}

	c.JSON(http.StatusOK, sales)
}

func (h *SaleHandler) Receipt(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid sale id.")
		return
	}

	var sale models.Sale
	if err := h.db.Preload("Items.Service").First(&sale, id).Error; err != nil {
		httperr.NotFound(c, "sale_not_found", "Sale not found.")
		return
	}

	var client models.ClientProfile
	clientName := ""
	if err := h.db.Preload("User").First(&client, sale.ClientID).Error; err == nil {
		clientName = client.User.Name
	}

	pdf, err := pdfgen.Receipt(&sale, clientName)
	if err != nil {
		httperr.Internal(c, "failed_to_render_receipt", "Could not render the receipt.")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s.pdf", sale.ReceiptNumber))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
