package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/fnbapp/backend/app/apperror"
	"github.com/fnbapp/backend/app/middlewares"
	"github.com/fnbapp/backend/app/services"
)

type CartHandler struct {
	render    *render.Render
	cartSvc   *services.CartService
	validator *validator.Validate
}

func NewCartHandler(r *render.Render, cartSvc *services.CartService, validate *validator.Validate) *CartHandler {
	return &CartHandler{render: r, cartSvc: cartSvc, validator: validate}
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Qty       int    `json:"qty" validate:"required,gt=0"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.UserIDFromContext(r.Context())
	if !ok {
		writeError(h.render, w, apperror.ErrInvalidCredentials)
		return
	}

	cart, err := h.cartSvc.GetCart(r.Context(), userID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	writeSuccess(h.render, w, "", cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.UserIDFromContext(r.Context())
	if !ok {
		writeError(h.render, w, apperror.ErrInvalidCredentials)
		return
	}

	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(h.render, w, "Invalid request body")
		return
	}
	defer r.Body.Close()
	if err := h.validator.Struct(req); err != nil {
		writeError(h.render, w, err)
		return
	}

	cart, err := h.cartSvc.AddItem(r.Context(), userID, req.ProductID, req.Qty)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	writeSuccess(h.render, w, "Item added to cart", cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.UserIDFromContext(r.Context())
	if !ok {
		writeError(h.render, w, apperror.ErrInvalidCredentials)
		return
	}

	itemID := mux.Vars(r)["id"]
	cart, err := h.cartSvc.RemoveItem(r.Context(), userID, itemID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	writeSuccess(h.render, w, "Item removed from cart", cart)
}
