package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bellenoire/salon-api/internal/httperr"
	"github.com/bellenoire/salon-api/internal/models"
)

type InventoryHandler struct {
	db *gorm.DB
}

func NewInventoryHandler(db *gorm.DB) *InventoryHandler {
	return &InventoryHandler{db: db}
}

type CreateInventoryItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	SKU         string  `json:"sku" binding:"required"`
	Category    string  `json:"category"`
	Supplier    string  `json:"supplier"`
	Quantity    int     `json:"quantity"`
	MinQuantity int     `json:"min_quantity"`
	Price       float64 `json:"price"`
}

type UpdateInventoryItemRequest struct {
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Supplier    *string  `json:"supplier,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	MinQuantity *int     `json:"min_quantity,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

func (h *InventoryHandler) List(c *gin.Context) {
	q := h.db.Session(&gorm.Session{})

	if category := strings.ToLower(strings.TrimSpace(c.Query("category"))); category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if c.Query("low_stock") == "true" {
		q = q.Where("quantity <= min_quantity")
	}

	var items []models.InventoryItem
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		httperr.Internal(c, "failed_to_list_inventory", "Could not list inventory.")
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	item := models.InventoryItem{
		Name:        req.Name,
		SKU:         strings.ToUpper(strings.TrimSpace(req.SKU)),
		Category:    strings.ToLower(req.Category),
		Supplier:    req.Supplier,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Price:       req.Price,
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_create_item", "Could not create the inventory item.")
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid item id.")
		return
	}

	var item models.InventoryItem
	if err := h.db.First(&item, id).Error; err != nil {
		httperr.NotFound(c, "item_not_found", "Inventory item not found.")
		return
	}

	var req UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = strings.ToLower(*req.Category)
	}
	if req.Supplier != nil {
		item.Supplier = *req.Supplier
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.MinQuantity != nil {
		item.MinQuantity = *req.MinQuantity
	}
	if req.Price != nil {
		item.Price = *req.Price
	}

	if err := h.db.Save(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_update_item", "Could not update the inventory item.")
		return
	}

	c.JSON(http.StatusOK, item)
}
