package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"

	"github.com/fnbapp/backend/app/apperror"
	"github.com/fnbapp/backend/app/helpers"
	"github.com/fnbapp/backend/app/models"
	"github.com/fnbapp/backend/app/repositories"
)

// StaffHandler covers catalog management, available to staff tier and above.
type StaffHandler struct {
	render      *render.Render
	productRepo repositories.ProductRepositoryImpl
	promoRepo   repositories.PromotionRepositoryImpl
	validator   *validator.Validate
}

func NewStaffHandler(
	r *render.Render,
	productRepo repositories.ProductRepositoryImpl,
	promoRepo repositories.PromotionRepositoryImpl,
	validate *validator.Validate,
) *StaffHandler {
	return &StaffHandler{
		render:      r,
		productRepo: productRepo,
		promoRepo:   promoRepo,
		validator:   validate,
	}
}

type ProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	Description string  `json:"description"`
	Price       string  `json:"price" validate:"required"`
	Stock       int     `json:"stock" validate:"gte=0"`
	CategoryID  *string `json:"category_id"`
	BrandID     *string `json:"brand_id"`
}

type PromotionRequest struct {
	Name               string    `json:"name" validate:"required,min=2,max=255"`
	DiscountPercentage string    `json:"discount_percentage" validate:"required"`
	StartDate          time.Time `json:"start_date" validate:"required"`
	EndDate            time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
	ProductIDs         []string  `json:"product_ids"`
}

func (h *StaffHandler) decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.New(http.StatusBadRequest, "Invalid request body")
	}
	defer r.Body.Close()
	return h.validator.Struct(dst)
}

func (h *StaffHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(h.render, w, err)
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		writeBadRequest(h.render, w, "Price must be a non-negative decimal")
		return
	}

	product := &models.Product{
		Name:        req.Name,
		Slug:        helpers.GenerateSlug(req.Name),
		Description: req.Description,
		Price:       price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
	}

	if err := h.productRepo.Create(r.Context(), product); err != nil {
		writeError(h.render, w, err)
		return
	}
	writeSuccess(h.render, w, "Product created successfully", product)
}

func (h *StaffHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.productRepo.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if product == nil {
		writeError(h.render, w, apperror.New(http.StatusNotFound, "Product not found"))
		return
	}

	var req ProductRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(h.render, w, err)
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		writeBadRequest(h.render, w, "Price must be a non-negative decimal")
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = price
	product.Stock = req.Stock
	product.CategoryID = req.CategoryID
	product.BrandID = req.BrandID

	if err := h.productRepo.Update(r.Context(), product); err != nil {
		writeError(h.render, w, err)
		return
	}
	writeSuccess(h.render, w, "Product updated successfully", product)
}

func (h *StaffHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.productRepo.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if product == nil {
		writeError(h.render, w, apperror.New(http.StatusNotFound, "Product not found"))
		return
	}

	if err := h.productRepo.Delete(r.Context(), product.ID); err != nil {
		writeError(h.render, w, err)
		return
	}
	writeSuccess(h.render, w, "Product deleted successfully", nil)
}

func (h *StaffHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var req PromotionRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(h.render, w, err)
		return
	}

	discount, err := decimal.NewFromString(req.DiscountPercentage)
	if err != nil || discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(100)) {
		writeBadRequest(h.render, w, "Discount percentage must be between 0 and 100")
		return
	}

	promotion := &models.Promotion{
		Name:               req.Name,
		DiscountPercentage: discount,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
	}

	if err := h.promoRepo.Create(r.Context(), promotion); err != nil {
		writeError(h.render, w, err)
		return
	}
	if err := h.promoRepo.AttachProducts(r.Context(), promotion, req.ProductIDs); err != nil {
		writeError(h.render, w, err)
		return
	}
	writeSuccess(h.render, w, "Promotion created successfully", promotion)
}

func (h *StaffHandler) ListPromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.promoRepo.List(r.Context())
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	writeSuccess(h.render, w, "", promotions)
}
