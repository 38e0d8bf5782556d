package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/mattertouch/storefront/app/middlewares"
	"github.com/mattertouch/storefront/app/models"
	"github.com/mattertouch/storefront/app/services"
	"github.com/mattertouch/storefront/app/utils/format"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type CartHandler struct {
	render    *render.Render
	cartSvc   *services.CartService
	validator *validator.Validate
}

func NewCartHandler(r *render.Render, cartSvc *services.CartService, validator *validator.Validate) *CartHandler {
	return &CartHandler{
		render:    r,
		cartSvc:   cartSvc,
		validator: validator,
	}
}

type cartResponse struct {
	*models.Cart
	ItemCount       int    `json:"itemCount"`
	Subtotal        string `json:"subtotal"`
	SubtotalDisplay string `json:"subtotalDisplay"`
}

func newCartResponse(cart *models.Cart) cartResponse {
	count := 0
	subtotal := decimal.Zero
	for _, item := range cart.Items {
		count += item.Quantity
		// Unpriced products (price on request) contribute nothing.
		if item.Product != nil && item.Product.Price != nil {
			subtotal = subtotal.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}
	return cartResponse{
		Cart:            cart,
		ItemCount:       count,
		Subtotal:        subtotal.StringFixed(2),
		SubtotalDisplay: format.Price(&subtotal),
	}
}

// GetCart returns the caller's cart, creating it on first access.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	identity, _ := middlewares.IdentityFrom(r.Context())

	cart, err := h.cartSvc.GetOrCreateCart(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(h.render, w, "CartHandler.GetCart", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, newCartResponse(cart))
}

type AddItemPayload struct {
	ProductID     string  `json:"productId" validate:"required"`
	Quantity      int     `json:"quantity" validate:"omitempty,gte=1"`
	SelectedColor *string `json:"selectedColor"`
	SelectedSize  *string `json:"selectedSize"`
}

// AddItem answers 201 when a new line item was created and 200 when the
// request merged into an existing one.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	identity, _ := middlewares.IdentityFrom(r.Context())

	var payload AddItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(h.render, w, "invalid request body")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		writeBadRequest(h.render, w, "productId is required")
		return
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	item, created, err := h.cartSvc.AddItem(r.Context(), identity.UserID, payload.ProductID, payload.Quantity, payload.SelectedColor, payload.SelectedSize)
	if err != nil {
		writeServiceError(h.render, w, "CartHandler.AddItem", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	_ = h.render.JSON(w, status, item)
}

type UpdateItemPayload struct {
	Quantity int `json:"quantity"`
}

// UpdateItem changes a line item's quantity. Quantity below 1 is a 400; the
// client is expected to call delete instead, not to update to zero.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	identity, _ := middlewares.IdentityFrom(r.Context())
	itemID := mux.Vars(r)["itemId"]

	var payload UpdateItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(h.render, w, "invalid request body")
		return
	}
	if payload.Quantity < 1 {
		writeBadRequest(h.render, w, "quantity must be at least 1")
		return
	}

	item, err := h.cartSvc.UpdateItemQuantity(r.Context(), identity.UserID, itemID, payload.Quantity)
	if err != nil {
		writeServiceError(h.render, w, "CartHandler.UpdateItem", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, item)
}

func (h *CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	identity, _ := middlewares.IdentityFrom(r.Context())
	itemID := mux.Vars(r)["itemId"]

	if err := h.cartSvc.RemoveItem(r.Context(), identity.UserID, itemID); err != nil {
		writeServiceError(h.render, w, "CartHandler.DeleteItem", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "item removed"})
}
