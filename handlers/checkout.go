package handlers

import (
	"fmt"
	"net/http"

	"cafe-ordering-api/apperr"
	"cafe-ordering-api/checkout"
	"cafe-ordering-api/flow"
	"cafe-ordering-api/middleware"
	"cafe-ordering-api/models"
	"cafe-ordering-api/pricing"
	"cafe-ordering-api/session"
	"cafe-ordering-api/tracking"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const IdempotencyHeader = "Idempotency-Key"

var errCheckoutNotStarted = fmt.Errorf("%w: checkout has not been started", apperr.ErrInvalidStep)

func checkoutView(st *session.State) gin.H {
	body := gin.H{
		"state":    st.Selector.State(),
		"pending":  st.Selector.Pending(),
		"subtotal": st.Cart.Subtotal(),
	}
	if f, err := st.Selector.Selection(); err == nil {
		body["selection"] = f
	}
	return body
}

// withSelector runs fn against the active order-type selector and replies
// with the resulting checkout state.
func (h *Handler) withSelector(c *gin.Context, fn func(*flow.Selector) error) {
	var body gin.H
	err := middleware.GetSession(c).Do(func(st *session.State) error {
		if st.Selector == nil {
			return errCheckoutNotStarted
		}
		if err := fn(st.Selector); err != nil {
			return err
		}
		body = checkoutView(st)
		return nil
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

// StartCheckout opens order-type selection. An empty cart sends the client back to the menu.
func (h *Handler) StartCheckout(c *gin.Context) {
	var body gin.H
	err := middleware.GetSession(c).Do(func(st *session.State) error {
		sel, err := flow.Start(st.Cart, h.Tables)
		if err != nil {
			st.Selector = nil
			return err
		}
		st.Selector = sel
		body = checkoutView(st)
		return nil
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

type ChooseOrderTypeRequest struct {
	Type models.FulfillmentType `json:"type" binding:"required"`
}

func (h *Handler) ChooseOrderType(c *gin.Context) {
	var req ChooseOrderTypeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.withSelector(c, func(s *flow.Selector) error { return s.Choose(req.Type) })
}

type SelectTableRequest struct {
	TableNumber int `json:"table_number" binding:"required,min=1"`
}

func (h *Handler) SelectTable(c *gin.Context) {
	var req SelectTableRequest
	if !h.bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	h.withSelector(c, func(s *flow.Selector) error { return s.SelectTable(ctx, req.TableNumber) })
}

// SubmitDelivery collects room delivery details; violations come back together
func (h *Handler) SubmitDelivery(c *gin.Context) {
	var req models.DeliveryDetails
	if !h.bindJSON(c, &req) {
		return
	}
	h.withSelector(c, func(s *flow.Selector) error { return s.SubmitDelivery(req) })
}

func (h *Handler) CheckoutBack(c *gin.Context) {
	h.withSelector(c, func(s *flow.Selector) error {
		s.Back()
		return nil
	})
}

func parseTip(raw string) (models.Money, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		ve := &apperr.ValidationError{}
		ve.Add("tip", apperr.InvalidRequest, "tip must be an amount in rupees")
		return 0, ve
	}
	tip, err := models.MoneyFromDecimal(d)
	if err != nil {
		ve := &apperr.ValidationError{}
		ve.Add("tip", apperr.InvalidRequest, err.Error())
		return 0, ve
	}
	return tip, nil
}

// GetBill previews the bill for the completed selection and an optional ?tip=
func (h *Handler) GetBill(c *gin.Context) {
	tip, err := parseTip(c.Query("tip"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	var body gin.H
	err = middleware.GetSession(c).Do(func(st *session.State) error {
		if st.Selector == nil {
			return errCheckoutNotStarted
		}
		f, err := st.Selector.Selection()
		if err != nil {
			return err
		}
		bill, err := pricing.ComputeBill(st.Cart.Subtotal(), f.Type, tip)
		if err != nil {
			return err
		}
		body = gin.H{"selection": f, "bill": bill, "tip_presets": pricing.TipPresets}
		return nil
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

type PlaceSessionOrderRequest struct {
	CustomerName        string               `json:"customer_name"`
	CustomerPhone       string               `json:"customer_phone"`
	Tip                 models.Money         `json:"tip"`
	SpecialInstructions string               `json:"special_instructions" binding:"max=500"`
	PaymentMethod       models.PaymentMethod `json:"payment_method"`
}

// PlaceSessionOrder submits the session cart with its completed selection
func (h *Handler) PlaceSessionOrder(c *gin.Context) {
	var req PlaceSessionOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	var order *models.Order
	err := middleware.GetSession(c).Do(func(st *session.State) error {
		if st.Selector == nil {
			return errCheckoutNotStarted
		}
		f, err := st.Selector.Selection()
		if err != nil {
			return err
		}
		order, err = h.Checkout.PlaceOrder(c.Request.Context(), checkout.PlaceOrderInput{
			Cart:                st.Cart,
			Fulfillment:         f,
			CustomerName:        req.CustomerName,
			CustomerPhone:       req.CustomerPhone,
			Tip:                 req.Tip,
			PaymentMethod:       req.PaymentMethod,
			SpecialInstructions: req.SpecialInstructions,
			IdempotencyKey:      c.GetHeader(IdempotencyHeader),
		})
		if err != nil {
			return err
		}
		if st.Cart.IsEmpty() {
			st.Selector = nil
		}
		return nil
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, placedView(order))
}

func placedView(o *models.Order) gin.H {
	return gin.H{
		"message":     "Order placed successfully",
		"order_id":    o.Number,
		"status":      o.Status,
		"grand_total": o.Bill.Total,
		"order":       tracking.NewView(o),
	}
}
