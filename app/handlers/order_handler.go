package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/fnbapp/backend/app/apperror"
	"github.com/fnbapp/backend/app/middlewares"
	"github.com/fnbapp/backend/app/models"
	"github.com/fnbapp/backend/app/services"
)

type OrderHandler struct {
	render   *render.Render
	orderSvc *services.OrderService
}

func NewOrderHandler(r *render.Render, orderSvc *services.OrderService) *OrderHandler {
	return &OrderHandler{render: r, orderSvc: orderSvc}
}

type orderListResult struct {
	Orders []models.Order `json:"orders"`
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
}

func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.UserIDFromContext(r.Context())
	if !ok {
		writeError(h.render, w, apperror.ErrInvalidCredentials)
		return
	}

	order, err := h.orderSvc.PlaceOrder(r.Context(), userID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	writeSuccess(h.render, w, "Order placed successfully", order)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.UserIDFromContext(r.Context())
	if !ok {
		writeError(h.render, w, apperror.ErrInvalidCredentials)
		return
	}

	limit, offset, page := paginationParams(r)
	orders, total, err := h.orderSvc.ListOrders(r.Context(), userID, limit, offset)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	writeSuccess(h.render, w, "", orderListResult{
		Orders: orders,
		Total:  total,
		Page:   page,
		Limit:  limit,
	})
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.UserIDFromContext(r.Context())
	if !ok {
		writeError(h.render, w, apperror.ErrInvalidCredentials)
		return
	}

	order, err := h.orderSvc.GetOrder(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	writeSuccess(h.render, w, "", order)
}
