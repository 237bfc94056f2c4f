package handlers

import (
	"net/http"
	"strconv"

	"cafe-ordering-api/apperr"
	"cafe-ordering-api/catalog"
	"cafe-ordering-api/flow"
	"cafe-ordering-api/models"
	"cafe-ordering-api/pricing"
	"cafe-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Café Ordering API",
		"version": "1.0.0",
	})
}

// ListMenu returns menu items, filtered by category, diet and search text
func (h *Handler) ListMenu(c *gin.Context) {
	items, err := h.Catalog.List(c.Request.Context(), catalog.Filter{
		Category: c.Query("category"),
		Diet:     c.Query("diet"),
		Search:   c.Query("search"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":      len(items),
		"categories": models.Categories,
		"menu":       items,
	})
}

func (h *Handler) GetMenuItem(c *gin.Context) {
	item, err := h.Catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// ListTables returns the floor, optionally only tables with ?seats=N
func (h *Handler) ListTables(c *gin.Context) {
	seats := 0
	if s := c.Query("seats"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			ve := &apperr.ValidationError{}
			ve.Add("seats", apperr.InvalidRequest, "seats must be a non-negative number")
			h.writeError(c, ve)
			return
		}
		seats = n
	}
	list, err := h.Tables.List(c.Request.Context(), seats)
	if err != nil {
		h.writeError(c, err)
		return
	}
	available := 0
	for _, t := range list {
		if t.Status == models.TableAvailable {
			available++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(list),
		"available": available,
		"tables":    list,
	})
}

// GetStateMachineInfo returns the full state machine for informational purposes
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	paths := gin.H{}
	for _, mode := range []models.FulfillmentType{models.Takeaway, models.DineIn, models.RoomDelivery} {
		paths[string(mode)] = gin.H{
			"path":           statemachine.Path(mode),
			"description":    statemachine.Describe(mode),
			"estimated_time": statemachine.EstimatedTime(mode),
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"paths":           paths,
		"terminal_states": []models.OrderStatus{models.StatusCompleted, models.StatusDelivered},
		"description":     "Café Order Lifecycle State Machine",
	})
}

// GetCheckoutOptions lists tip presets, charges and delivery hostels
func (h *Handler) GetCheckoutOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tip_presets":     pricing.TipPresets,
		"tax_rate":        pricing.TaxRate.String(),
		"service_charge":  pricing.ServiceCharge,
		"payment_methods": []models.PaymentMethod{models.PaymentUPI, models.PaymentCard, models.PaymentCash},
		"hostels":         flow.Hostels,
	})
}
