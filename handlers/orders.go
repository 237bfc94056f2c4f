package handlers

import (
	"net/http"

	"cafe-ordering-api/cart"
	"cafe-ordering-api/checkout"
	"cafe-ordering-api/models"
	"cafe-ordering-api/tracking"

	"github.com/gin-gonic/gin"
)

type OrderLineRequest struct {
	ItemID   string `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1,max=50"`
	Note     string `json:"note" binding:"max=200"`
}

type DeliveryRequest struct {
	HostelName   string `json:"hostel_name" binding:"required"`
	RoomNumber   string `json:"room_number" binding:"required"`
	FloorNumber  string `json:"floor_number"`
	Landmark     string `json:"landmark"`
	ContactPhone string `json:"contact_phone" binding:"required,phone10"`
	Instructions string `json:"instructions"`
}

type FulfillmentRequest struct {
	Type        models.FulfillmentType `json:"type" binding:"required"`
	TableNumber int                    `json:"table_number"`
	Delivery    *DeliveryRequest       `json:"delivery"`
}

type CustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CreateOrderRequest carries everything needed to place an order in one call.
type CreateOrderRequest struct {
	Items               []OrderLineRequest   `json:"items" binding:"required,min=1,dive"`
	Fulfillment         FulfillmentRequest   `json:"fulfillment"`
	Customer            CustomerRequest      `json:"customer"`
	Tip                 models.Money         `json:"tip"`
	PaymentMethod       models.PaymentMethod `json:"payment_method"`
	SpecialInstructions string               `json:"special_instructions" binding:"max=500"`
}

func (r FulfillmentRequest) toModel() models.Fulfillment {
	f := models.Fulfillment{Type: r.Type, TableNumber: r.TableNumber}
	if d := r.Delivery; d != nil {
		f.Delivery = &models.DeliveryDetails{
			HostelName:   d.HostelName,
			RoomNumber:   d.RoomNumber,
			FloorNumber:  d.FloorNumber,
			Landmark:     d.Landmark,
			ContactPhone: d.ContactPhone,
			Instructions: d.Instructions,
		}
	}
	return f
}

// CreateOrder places an order without a server-side session
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	ct := cart.New()
	for _, line := range req.Items {
		item, err := h.Catalog.Orderable(ctx, line.ItemID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		// repeated ids accumulate into one line
		for i := 0; i < line.Quantity; i++ {
			ct.AddItem(item)
		}
		if line.Note != "" {
			if err := ct.SetNote(item.ID, line.Note); err != nil {
				h.writeError(c, err)
				return
			}
		}
	}

	order, err := h.Checkout.PlaceOrder(ctx, checkout.PlaceOrderInput{
		Cart:                ct,
		Fulfillment:         req.Fulfillment.toModel(),
		CustomerName:        req.Customer.Name,
		CustomerPhone:       req.Customer.Phone,
		Tip:                 req.Tip,
		PaymentMethod:       req.PaymentMethod,
		SpecialInstructions: req.SpecialInstructions,
		IdempotencyKey:      c.GetHeader(IdempotencyHeader),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"order_id":    order.Number,
		"status":      order.Status,
		"grand_total": order.Bill.Total,
	})
}

// GetOrder is the confirmation and tracking view of one order
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.Tracking.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": tracking.NewView(order)})
}
