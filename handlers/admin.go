package handlers

import (
	"net/http"

	"cafe-ordering-api/middleware"
	"cafe-ordering-api/models"
	"cafe-ordering-api/tracking"

	"github.com/gin-gonic/gin"
)

// AdminListOrders returns orders with a status summary and revenue for the dashboard
func (h *Handler) AdminListOrders(c *gin.Context) {
	sum, err := h.Tracking.List(c.Request.Context(), tracking.Filter{
		Status: models.OrderStatus(c.Query("status")),
		Type:   models.FulfillmentType(c.Query("type")),
		Search: c.Query("search"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

type AdvanceOrderRequest struct {
	Note string `json:"note" binding:"max=200"`
}

// AdvanceOrder moves an order to the next status on its path
func (h *Handler) AdvanceOrder(c *gin.Context) {
	var req AdvanceOrderRequest
	if c.Request.ContentLength > 0 && !h.bindJSON(c, &req) {
		return
	}
	prev, err := h.Tracking.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	order, err := h.Tracking.Advance(c.Request.Context(), prev.Number, middleware.GetUsername(c), req.Note)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.Number,
		"previous_status": prev.Status,
		"current_status":  order.Status,
		"order":           tracking.NewView(order),
	})
}

type ForceOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Reason string             `json:"reason" binding:"max=200"`
}

// AdminForceOrderStatus lets admin override any order state (emergency use)
func (h *Handler) AdminForceOrderStatus(c *gin.Context) {
	var req ForceOrderStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.Tracking.Force(c.Request.Context(), c.Param("id"), req.Status, middleware.GetUsername(c), req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Order status forced",
		"order_id":       order.Number,
		"current_status": order.Status,
	})
}

type SetAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// SetMenuAvailability toggles whether an item can be ordered
func (h *Handler) SetMenuAvailability(c *gin.Context) {
	var req SetAvailabilityRequest
	if !h.bindJSON(c, &req) {
		return
	}
	item, err := h.Catalog.SetAvailability(c.Request.Context(), c.Param("id"), *req.Available)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.Log.InfoContext(c.Request.Context(), "menu availability changed",
		"item_id", item.ID,
		"available", item.IsAvailable,
		"changed_by", middleware.GetUsername(c))
	c.JSON(http.StatusOK, gin.H{"item": item})
}
