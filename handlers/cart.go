package handlers

import (
	"net/http"

	"cafe-ordering-api/apperr"
	"cafe-ordering-api/cart"
	"cafe-ordering-api/middleware"
	"cafe-ordering-api/models"
	"cafe-ordering-api/session"

	"github.com/gin-gonic/gin"
)

type cartLine struct {
	Item      models.MenuItem `json:"item"`
	Quantity  int             `json:"quantity"`
	Note      string          `json:"note,omitempty"`
	LineTotal models.Money    `json:"line_total"`
}

func cartView(c *cart.Cart) gin.H {
	lines := c.Lines()
	out := make([]cartLine, len(lines))
	for i, l := range lines {
		out[i] = cartLine{Item: l.Item, Quantity: l.Quantity, Note: l.Note, LineTotal: l.LineTotal()}
	}
	return gin.H{
		"lines":      out,
		"item_count": c.ItemCount(),
		"subtotal":   c.Subtotal(),
	}
}

// withCart runs fn on the session cart and replies with the resulting cart.
// An emptied cart also abandons any checkout in progress.
func (h *Handler) withCart(c *gin.Context, status int, fn func(*cart.Cart) error) {
	var body gin.H
	err := middleware.GetSession(c).Do(func(st *session.State) error {
		if err := fn(st.Cart); err != nil {
			return err
		}
		if st.Cart.IsEmpty() {
			st.Selector = nil
		}
		body = cartView(st.Cart)
		return nil
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(status, body)
}

func (h *Handler) GetCart(c *gin.Context) {
	h.withCart(c, http.StatusOK, func(*cart.Cart) error { return nil })
}

type AddCartItemRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

// AddCartItem adds one unit of a menu item, merging with an existing line
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	item, err := h.Catalog.Orderable(c.Request.Context(), req.ItemID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.withCart(c, http.StatusOK, func(ct *cart.Cart) error {
		ct.AddItem(item)
		return nil
	})
}

type UpdateCartItemRequest struct {
	Quantity *int    `json:"quantity" binding:"omitempty,max=50"`
	Note     *string `json:"note" binding:"omitempty,max=200"`
}

// UpdateCartItem sets quantity and/or note; quantity <= 0 removes the line
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if req.Quantity == nil && req.Note == nil {
		ve := &apperr.ValidationError{}
		ve.Add("quantity", apperr.InvalidRequest, "quantity or note is required")
		h.writeError(c, ve)
		return
	}
	id := c.Param("id")
	h.withCart(c, http.StatusOK, func(ct *cart.Cart) error {
		if req.Quantity != nil {
			if err := ct.UpdateQuantity(id, *req.Quantity); err != nil {
				return err
			}
			if *req.Quantity <= 0 {
				return nil
			}
		}
		if req.Note != nil {
			return ct.SetNote(id, *req.Note)
		}
		return nil
	})
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	id := c.Param("id")
	h.withCart(c, http.StatusOK, func(ct *cart.Cart) error {
		ct.RemoveItem(id)
		return nil
	})
}

func (h *Handler) ClearCart(c *gin.Context) {
	h.withCart(c, http.StatusOK, func(ct *cart.Cart) error {
		ct.Clear()
		return nil
	})
}
