package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/fnbapp/backend/app/apperror"
	"github.com/fnbapp/backend/app/models"
	"github.com/fnbapp/backend/app/repositories"
)

const defaultPageSize = 20

type ProductHandler struct {
	render      *render.Render
	productRepo repositories.ProductRepositoryImpl
}

func NewProductHandler(r *render.Render, productRepo repositories.ProductRepositoryImpl) *ProductHandler {
	return &ProductHandler{render: r, productRepo: productRepo}
}

func paginationParams(r *http.Request) (limit, offset, page int) {
	page = 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	limit = defaultPageSize
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	return limit, (page - 1) * limit, page
}

type productListResult struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

// List serves the public catalog, optionally filtered by search keyword or
// category slug.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, page := paginationParams(r)

	var (
		products []models.Product
		total    int64
		err      error
	)

	keyword := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	switch {
	case keyword != "":
		products, total, err = h.productRepo.SearchPaginated(r.Context(), keyword, limit, offset)
	case category != "":
		products, total, err = h.productRepo.GetByCategorySlugPaginated(r.Context(), category, limit, offset)
	default:
		products, total, err = h.productRepo.GetPaginated(r.Context(), limit, offset)
	}
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	writeSuccess(h.render, w, "", productListResult{
		Products: products,
		Total:    total,
		Page:     page,
		Limit:    limit,
	})
}

func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	product, err := h.productRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if product == nil {
		writeError(h.render, w, apperror.New(http.StatusNotFound, "Product not found"))
		return
	}

	writeSuccess(h.render, w, "", product)
}
